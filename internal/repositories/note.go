package repositories

import (
	"database/sql"
	"errors"
	"log"

	"study-planner/backend/internal/clock"
	"study-planner/backend/internal/models"
)

// NoteRepository persists notes in MySQL.
type NoteRepository struct {
	DB    *sql.DB
	Clock clock.Clock
}

// NewNoteRepository creates a new NoteRepository.
func NewNoteRepository(db *sql.DB, clk clock.Clock) *NoteRepository {
	return &NoteRepository{DB: db, Clock: clk}
}

// Insert stores a new note and fills in its id and timestamps.
func (r *NoteRepository) Insert(n *models.Note) error {
	now := r.Clock.Now()
	query := `INSERT INTO notes (user_id, title, content, category, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.DB.Exec(query, n.UserID, n.Title, n.Content, n.Category, now, now)
	if err != nil {
		log.Printf("Failed to insert note: %v", err)
		return models.NewStorageError("note insert", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.NewStorageError("note insert", err)
	}
	n.ID = int(id)
	n.CreatedAt = now
	n.UpdatedAt = now

	return nil
}

// FindByID loads the note with the given id if it belongs to userID.
func (r *NoteRepository) FindByID(userID, id int) (*models.Note, error) {
	query := `SELECT id, user_id, title, content, category, created_at, updated_at
	          FROM notes WHERE id = ? AND user_id = ?`

	var n models.Note
	err := r.DB.QueryRow(query, id, userID).Scan(
		&n.ID, &n.UserID, &n.Title, &n.Content, &n.Category, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoteNotFound
		}
		log.Printf("Failed to query note by ID: %v", err)
		return nil, models.NewStorageError("note find", err)
	}

	return &n, nil
}

// ListByOwner returns all of userID's notes, most recently touched first.
func (r *NoteRepository) ListByOwner(userID int) ([]models.Note, error) {
	query := `SELECT id, user_id, title, content, category, created_at, updated_at
	          FROM notes WHERE user_id = ? ORDER BY updated_at DESC, id DESC`

	rows, err := r.DB.Query(query, userID)
	if err != nil {
		log.Printf("Failed to query notes: %v", err)
		return nil, models.NewStorageError("note list", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.Category,
			&n.CreatedAt, &n.UpdatedAt)
		if err != nil {
			log.Printf("Failed to scan note: %v", err)
			return nil, models.NewStorageError("note list", err)
		}
		notes = append(notes, n)
	}
	if err = rows.Err(); err != nil {
		return nil, models.NewStorageError("note list", err)
	}

	return notes, nil
}

// Update rewrites the stored note keyed by (id, user_id) and refreshes
// updated_at.
func (r *NoteRepository) Update(n *models.Note) error {
	now := r.Clock.Now()
	query := `UPDATE notes SET title = ?, content = ?, category = ?, updated_at = ?
	          WHERE id = ? AND user_id = ?`

	_, err := r.DB.Exec(query, n.Title, n.Content, n.Category, now, n.ID, n.UserID)
	if err != nil {
		log.Printf("Failed to update note: %v", err)
		return models.NewStorageError("note update", err)
	}
	n.UpdatedAt = now

	return nil
}

// Delete removes the note if it exists and belongs to userID. Deleting a
// missing or foreign note is a no-op.
func (r *NoteRepository) Delete(userID, id int) error {
	query := "DELETE FROM notes WHERE id = ? AND user_id = ?"

	if _, err := r.DB.Exec(query, id, userID); err != nil {
		log.Printf("Failed to delete note: %v", err)
		return models.NewStorageError("note delete", err)
	}

	return nil
}
