// Package routes wires the planner services into the gin router.
package routes

import (
	"database/sql"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"study-planner/backend/internal/clock"
	"study-planner/backend/internal/handlers"
	"study-planner/backend/internal/repositories"
	"study-planner/backend/internal/services"
)

// SetupRouter builds the gin router over the MySQL stores and registers all
// endpoints.
func SetupRouter(db *sql.DB) *gin.Engine {
	clk := clock.System{}
	taskRepo := repositories.NewTaskRepository(db, clk)
	noteRepo := repositories.NewNoteRepository(db, clk)

	taskService := services.NewTaskService(taskRepo, clk)
	progressService := services.NewProgressService(taskRepo, clk)
	noteService := services.NewNoteService(noteRepo)
	jwtService := services.NewJWTService()

	r := NewRouter(taskService, progressService, noteService, jwtService)

	r.GET("/api/healthz", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database connection failed", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Database connection is healthy"})
	})

	return r
}

// NewRouter registers the planner endpoints over already-constructed
// services. Tests call it directly with in-memory stores.
func NewRouter(taskService *services.TaskService, progressService *services.ProgressService,
	noteService *services.NoteService, jwtService *services.JWTService) *gin.Engine {

	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"http://localhost:3000"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.AllowCredentials = true
	r.Use(cors.New(config))

	taskHandler := handlers.NewTaskHandler(taskService)
	progressHandler := handlers.NewProgressHandler(progressService)
	noteHandler := handlers.NewNoteHandler(noteService)

	authorized := r.Group("/")
	authorized.Use(AuthMiddleware(jwtService))
	{
		authorized.GET("/api/tasks", taskHandler.GetTasksHandler)
		authorized.GET("/api/tasks/upcoming", taskHandler.GetUpcomingTasksHandler)
		authorized.GET("/api/tasks/overdue", taskHandler.GetOverdueTasksHandler)
		authorized.GET("/api/tasks/:id", taskHandler.GetTaskHandler)
		authorized.POST("/api/tasks", taskHandler.CreateTaskHandler)
		authorized.PUT("/api/tasks/:id", taskHandler.UpdateTaskHandler)
		authorized.POST("/api/tasks/:id/toggle", taskHandler.ToggleTaskHandler)
		authorized.DELETE("/api/tasks/:id", taskHandler.DeleteTaskHandler)

		authorized.GET("/api/progress", progressHandler.GetProgressHandler)

		authorized.GET("/api/notes", noteHandler.GetNotesHandler)
		authorized.GET("/api/notes/categories", noteHandler.GetCategoriesHandler)
		authorized.POST("/api/notes", noteHandler.CreateNoteHandler)
		authorized.PUT("/api/notes/:id", noteHandler.UpdateNoteHandler)
		authorized.DELETE("/api/notes/:id", noteHandler.DeleteNoteHandler)
	}

	return r
}
