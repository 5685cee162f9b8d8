package repositories

import (
	"database/sql"
	"errors"
	"log"

	"study-planner/backend/internal/clock"
	"study-planner/backend/internal/models"
)

// TaskRepository persists tasks in MySQL.
type TaskRepository struct {
	DB    *sql.DB
	Clock clock.Clock
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *sql.DB, clk clock.Clock) *TaskRepository {
	return &TaskRepository{DB: db, Clock: clk}
}

// Insert stores a new task and fills in its id and timestamps.
func (r *TaskRepository) Insert(t *models.Task) error {
	now := r.Clock.Now()
	query := `INSERT INTO tasks (user_id, title, description, deadline, priority, completed, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.DB.Exec(query, t.UserID, t.Title, t.Description,
		t.Deadline.Format(models.DeadlineFormat), string(t.Priority), t.Completed, now, now)
	if err != nil {
		log.Printf("Failed to insert task: %v", err)
		return models.NewStorageError("task insert", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.NewStorageError("task insert", err)
	}
	t.ID = int(id)
	t.CreatedAt = now
	t.UpdatedAt = now

	return nil
}

// FindByID loads the task with the given id if it belongs to userID.
func (r *TaskRepository) FindByID(userID, id int) (*models.Task, error) {
	query := `SELECT id, user_id, title, description, deadline, priority, completed, created_at, updated_at
	          FROM tasks WHERE id = ? AND user_id = ?`

	var t models.Task
	var priority string
	err := r.DB.QueryRow(query, id, userID).Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.Deadline,
		&priority, &t.Completed, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		log.Printf("Failed to query task by ID: %v", err)
		return nil, models.NewStorageError("task find", err)
	}
	t.Priority = models.ParsePriority(priority)

	return &t, nil
}

// ListByOwner returns all of userID's tasks ordered by deadline ascending.
func (r *TaskRepository) ListByOwner(userID int) ([]models.Task, error) {
	query := `SELECT id, user_id, title, description, deadline, priority, completed, created_at, updated_at
	          FROM tasks WHERE user_id = ? ORDER BY deadline ASC, id ASC`

	rows, err := r.DB.Query(query, userID)
	if err != nil {
		log.Printf("Failed to query tasks: %v", err)
		return nil, models.NewStorageError("task list", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		var priority string
		err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Deadline,
			&priority, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			log.Printf("Failed to scan task: %v", err)
			return nil, models.NewStorageError("task list", err)
		}
		t.Priority = models.ParsePriority(priority)
		tasks = append(tasks, t)
	}
	if err = rows.Err(); err != nil {
		return nil, models.NewStorageError("task list", err)
	}

	return tasks, nil
}

// Update rewrites the stored task keyed by (id, user_id) and refreshes
// updated_at. Existence is checked by the caller via FindByID; a row that
// vanished in between is treated like an idempotent delete.
func (r *TaskRepository) Update(t *models.Task) error {
	now := r.Clock.Now()
	query := `UPDATE tasks SET title = ?, description = ?, deadline = ?, priority = ?, completed = ?, updated_at = ?
	          WHERE id = ? AND user_id = ?`

	_, err := r.DB.Exec(query, t.Title, t.Description,
		t.Deadline.Format(models.DeadlineFormat), string(t.Priority), t.Completed, now,
		t.ID, t.UserID)
	if err != nil {
		log.Printf("Failed to update task: %v", err)
		return models.NewStorageError("task update", err)
	}
	t.UpdatedAt = now

	return nil
}

// ToggleCompleted flips the completion flag in a single conditional UPDATE so
// concurrent toggles of the same row serialize on the row lock instead of
// losing writes. Returns the task as stored after the flip.
func (r *TaskRepository) ToggleCompleted(userID, id int) (*models.Task, error) {
	now := r.Clock.Now()
	query := `UPDATE tasks SET completed = NOT completed, updated_at = ?
	          WHERE id = ? AND user_id = ?`

	result, err := r.DB.Exec(query, now, id, userID)
	if err != nil {
		log.Printf("Failed to toggle task: %v", err)
		return nil, models.NewStorageError("task toggle", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, models.NewStorageError("task toggle", err)
	}
	if rowsAffected == 0 {
		return nil, ErrTaskNotFound
	}

	return r.FindByID(userID, id)
}

// Delete removes the task if it exists and belongs to userID. Deleting a
// missing or foreign task is a no-op.
func (r *TaskRepository) Delete(userID, id int) error {
	query := "DELETE FROM tasks WHERE id = ? AND user_id = ?"

	if _, err := r.DB.Exec(query, id, userID); err != nil {
		log.Printf("Failed to delete task: %v", err)
		return models.NewStorageError("task delete", err)
	}

	return nil
}
