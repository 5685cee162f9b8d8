package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"study-planner/backend/internal/models"
	"study-planner/backend/internal/services"
)

// ProgressHandler serves the progress statistics endpoint.
type ProgressHandler struct {
	progressService *services.ProgressService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// progressResponse is the wire form of a progress report; the recently
// completed tasks are rendered as task views.
type progressResponse struct {
	Overall         float64                                       `json:"overall"`
	Counts          services.TaskCounts                           `json:"counts"`
	ByPriority      map[models.Priority]services.PriorityProgress `json:"by_priority"`
	Weekly          []services.PeriodProgress                     `json:"weekly"`
	Monthly         []services.PeriodProgress                     `json:"monthly"`
	RecentCompleted []models.TaskView                             `json:"recent_completed"`
}

// GetProgressHandler returns the full progress report for the authenticated
// user: overall percentage, counts, per-priority breakdown, weekly and
// monthly trends, and the most recently completed tasks.
func (h *ProgressHandler) GetProgressHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	report, err := h.progressService.Report(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute progress"})
		return
	}

	resp := progressResponse{
		Overall:         report.Overall,
		Counts:          report.Counts,
		ByPriority:      report.ByPriority,
		Weekly:          report.Weekly,
		Monthly:         report.Monthly,
		RecentCompleted: models.NewTaskViews(report.RecentCompleted, h.progressService.Today()),
	}
	if resp.Weekly == nil {
		resp.Weekly = []services.PeriodProgress{}
	}
	if resp.Monthly == nil {
		resp.Monthly = []services.PeriodProgress{}
	}
	c.JSON(http.StatusOK, resp)
}
