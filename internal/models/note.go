package models

import "time"

// Note is a free-form study note owned by a single user. Content is stored
// in full; previews are truncated by the display layer only.
type Note struct {
	ID        int       `json:"id,omitempty"`
	UserID    int       `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PreviewLength is the display truncation length for note content.
const PreviewLength = 150

// Preview returns the content truncated for list display.
func (n Note) Preview() string {
	runes := []rune(n.Content)
	if len(runes) <= PreviewLength {
		return n.Content
	}
	return string(runes[:PreviewLength]) + "..."
}

// NoteQuery carries the optional note listing filters. Empty values mean the
// filter is not applied; both filters combine with AND.
type NoteQuery struct {
	Category string
	Search   string
}

// CreateNoteRequest is the payload for creating a note.
type CreateNoteRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// UpdateNoteRequest is the payload for a partial note update. Nil fields are
// left untouched.
type UpdateNoteRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
}

// NoteView is a note as rendered in list responses.
type NoteView struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Preview   string    `json:"preview"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewNoteView builds the presentation form of a note.
func NewNoteView(n Note) NoteView {
	return NoteView{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Preview:   n.Preview(),
		Category:  n.Category,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// NewNoteViews maps a note slice to its presentation form.
func NewNoteViews(notes []Note) []NoteView {
	views := make([]NoteView, 0, len(notes))
	for _, n := range notes {
		views = append(views, NewNoteView(n))
	}
	return views
}
