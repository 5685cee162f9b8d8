package testutil

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"study-planner/backend/internal/routes"
	"study-planner/backend/internal/services"
)

// TestSecret signs tokens in the test suite.
const TestSecret = "test-secret"

// DefaultTestDate is the pinned "today" for date-sensitive tests: a plain
// mid-week, mid-month date.
var DefaultTestDate = time.Date(2026, time.March, 18, 10, 0, 0, 0, time.UTC)

// Env bundles the router and its collaborators for a handler test.
type Env struct {
	Router *gin.Engine
	Tasks  *MemTaskStore
	Notes  *MemNoteStore
	Clock  *Clock
	JWT    *services.JWTService
}

// SetupRouter builds the full gin router over in-memory stores and a pinned
// clock.
func SetupRouter(t *testing.T) *Env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clk := NewClock(DefaultTestDate)
	taskStore := NewMemTaskStore(clk)
	noteStore := NewMemNoteStore(clk)

	taskService := services.NewTaskService(taskStore, clk)
	progressService := services.NewProgressService(taskStore, clk)
	noteService := services.NewNoteService(noteStore)
	jwtService := services.NewJWTServiceWithSecret(TestSecret)

	return &Env{
		Router: routes.NewRouter(taskService, progressService, noteService, jwtService),
		Tasks:  taskStore,
		Notes:  noteStore,
		Clock:  clk,
		JWT:    jwtService,
	}
}

// TokenFor mints a bearer token for userID.
func (e *Env) TokenFor(t *testing.T, userID int) string {
	t.Helper()
	token, err := e.JWT.GenerateToken(userID)
	require.NoError(t, err)
	return token
}
