package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-planner/backend/internal/models"
	"study-planner/backend/internal/services"
	"study-planner/backend/testutil"
)

type progressResponse struct {
	Overall         float64                                       `json:"overall"`
	Counts          services.TaskCounts                           `json:"counts"`
	ByPriority      map[models.Priority]services.PriorityProgress `json:"by_priority"`
	Weekly          []services.PeriodProgress                     `json:"weekly"`
	Monthly         []services.PeriodProgress                     `json:"monthly"`
	RecentCompleted []models.TaskView                             `json:"recent_completed"`
}

func getProgress(t *testing.T, env *testutil.Env, token string) progressResponse {
	t.Helper()
	w := doRequest(t, env, http.MethodGet, "/api/progress", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp progressResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetProgress_EmptyOwner(t *testing.T) {
	env := testutil.SetupRouter(t)

	resp := getProgress(t, env, env.TokenFor(t, 1))
	assert.Equal(t, 0.0, resp.Overall)
	assert.Equal(t, services.TaskCounts{}, resp.Counts)
	require.Len(t, resp.ByPriority, 3, "all priority levels present even with no tasks")
	assert.Equal(t, services.PriorityProgress{}, resp.ByPriority[models.PriorityHigh])
	assert.Empty(t, resp.Weekly)
	assert.Empty(t, resp.Monthly)
	assert.Empty(t, resp.RecentCompleted)
}

func TestGetProgress_ScenarioReport(t *testing.T) {
	env := testutil.SetupRouter(t)
	token := env.TokenFor(t, 1)

	createTask(t, env, token, "A", deadlineIn(2), "high")
	createTask(t, env, token, "B", deadlineIn(-3), "low")
	c := createTask(t, env, token, "C", deadlineIn(1), "medium")
	w := doRequest(t, env, http.MethodPost, fmt.Sprintf("/api/tasks/%d/toggle", c.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := getProgress(t, env, token)

	assert.InDelta(t, 33.33, resp.Overall, 0.01)
	assert.Equal(t, services.TaskCounts{Total: 3, Completed: 1, Pending: 2}, resp.Counts)
	assert.Equal(t, services.PriorityProgress{Total: 1, Completed: 0, Percentage: 0}, resp.ByPriority[models.PriorityHigh])
	assert.Equal(t, services.PriorityProgress{Total: 1, Completed: 1, Percentage: 100}, resp.ByPriority[models.PriorityMedium])

	require.Len(t, resp.RecentCompleted, 1)
	assert.Equal(t, "C", resp.RecentCompleted[0].Title)
	assert.True(t, resp.RecentCompleted[0].Completed)

	// Only B's deadline sits inside the trailing weekly window.
	require.NotEmpty(t, resp.Weekly)
	var weeklyTotal int
	for _, bucket := range resp.Weekly {
		weeklyTotal += bucket.Total
	}
	assert.Equal(t, 1, weeklyTotal)
}

func TestGetProgress_OwnerScoped(t *testing.T) {
	env := testutil.SetupRouter(t)
	createTask(t, env, env.TokenFor(t, 2), "Theirs", deadlineIn(1), "high")

	resp := getProgress(t, env, env.TokenFor(t, 1))
	assert.Equal(t, 0, resp.Counts.Total, "another owner's tasks never affect my progress")
}

func TestGetProgress_RequiresAuth(t *testing.T) {
	env := testutil.SetupRouter(t)

	w := doRequest(t, env, http.MethodGet, "/api/progress", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
