package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"study-planner/backend/internal/models"
	"study-planner/backend/internal/repositories"
	"study-planner/backend/internal/services"
)

// NoteHandler serves the note CRUD and search endpoints.
type NoteHandler struct {
	noteService *services.NoteService
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// CreateNoteHandler creates a new note for the authenticated user.
func (h *NoteHandler) CreateNoteHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	note, err := h.noteService.Create(userID, req)
	if err != nil {
		writeServiceError(c, err, repositories.ErrNoteNotFound, "Note not found")
		return
	}
	c.JSON(http.StatusCreated, models.NewNoteView(*note))
}

// UpdateNoteHandler applies a partial update to one of the user's notes.
func (h *NoteHandler) UpdateNoteHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req models.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	note, err := h.noteService.Update(userID, id, req)
	if err != nil {
		writeServiceError(c, err, repositories.ErrNoteNotFound, "Note not found")
		return
	}
	c.JSON(http.StatusOK, models.NewNoteView(*note))
}

// DeleteNoteHandler deletes one of the user's notes. Missing and foreign ids
// are treated as already deleted.
func (h *NoteHandler) DeleteNoteHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.noteService.Delete(userID, id); err != nil {
		writeServiceError(c, err, repositories.ErrNoteNotFound, "Note not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetNotesHandler lists the user's notes, optionally restricted by exact
// category and case-insensitive title/content search.
func (h *NoteHandler) GetNotesHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	q := models.NoteQuery{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	notes, err := h.noteService.List(userID, q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notes"})
		return
	}
	c.JSON(http.StatusOK, models.NewNoteViews(notes))
}

// GetCategoriesHandler lists the distinct categories used by the user's
// notes.
func (h *NoteHandler) GetCategoriesHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	categories, err := h.noteService.DistinctCategories(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	if categories == nil {
		categories = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
