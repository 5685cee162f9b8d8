package services

import (
	"sort"
	"strings"

	"study-planner/backend/internal/models"
)

// NoteStore is the storage collaborator for notes.
type NoteStore interface {
	Insert(n *models.Note) error
	FindByID(userID, id int) (*models.Note, error)
	ListByOwner(userID int) ([]models.Note, error)
	Update(n *models.Note) error
	Delete(userID, id int) error
}

// NoteService owns note CRUD, category filtering, and substring search.
type NoteService struct {
	store NoteStore
}

// NewNoteService creates a new NoteService.
func NewNoteService(store NoteStore) *NoteService {
	return &NoteService{store: store}
}

// Create validates and stores a new note for userID.
func (s *NoteService) Create(userID int, req models.CreateNoteRequest) (*models.Note, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, models.NewValidationError("title", "title is required")
	}

	note := &models.Note{
		UserID:   userID,
		Title:    title,
		Content:  req.Content,
		Category: strings.TrimSpace(req.Category),
	}
	if err := s.store.Insert(note); err != nil {
		return nil, err
	}
	return note, nil
}

// Update applies the non-nil fields of req to the note with the given id.
// The note must belong to userID.
func (s *NoteService) Update(userID, id int, req models.UpdateNoteRequest) (*models.Note, error) {
	note, err := s.store.FindByID(userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, models.NewValidationError("title", "title is required")
		}
		note.Title = title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Category != nil {
		note.Category = strings.TrimSpace(*req.Category)
	}

	if err := s.store.Update(note); err != nil {
		return nil, err
	}
	return note, nil
}

// Delete removes the note with the given id if it belongs to userID.
// Deleting a missing or foreign note is a silent no-op.
func (s *NoteService) Delete(userID, id int) error {
	return s.store.Delete(userID, id)
}

// Get loads a single note owned by userID.
func (s *NoteService) Get(userID, id int) (*models.Note, error) {
	return s.store.FindByID(userID, id)
}

// List returns userID's notes, most recently touched first. A non-empty
// category restricts to exact matches; a non-empty search restricts to notes
// whose title or content contains it, case-insensitively. Both filters
// combine with AND.
func (s *NoteService) List(userID int, q models.NoteQuery) ([]models.Note, error) {
	notes, err := s.store.ListByOwner(userID)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(q.Search))
	filtered := notes[:0:0]
	for _, n := range notes {
		if q.Category != "" && n.Category != q.Category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(n.Title), needle) &&
			!strings.Contains(strings.ToLower(n.Content), needle) {
			continue
		}
		filtered = append(filtered, n)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].UpdatedAt.After(filtered[j].UpdatedAt)
	})
	return filtered, nil
}

// DistinctCategories returns the non-empty category labels used by userID's
// notes, deduplicated and sorted alphabetically.
func (s *NoteService) DistinctCategories(userID int) ([]string, error) {
	notes, err := s.store.ListByOwner(userID)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var categories []string
	for _, n := range notes {
		if n.Category == "" || seen[n.Category] {
			continue
		}
		seen[n.Category] = true
		categories = append(categories, n.Category)
	}
	sort.Strings(categories)
	return categories, nil
}
