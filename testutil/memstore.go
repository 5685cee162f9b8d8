// Package testutil provides hermetic in-memory implementations of the
// storage collaborators plus a router fixture, so the suite runs without a
// MySQL instance.
package testutil

import (
	"sort"
	"sync"
	"time"

	"study-planner/backend/internal/models"
	"study-planner/backend/internal/repositories"
)

// Clock is a mutable test clock.
type Clock struct {
	Current time.Time
}

// NewClock returns a Clock pinned at t.
func NewClock(t time.Time) *Clock { return &Clock{Current: t} }

func (c *Clock) Now() time.Time { return c.Current }

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) { c.Current = c.Current.Add(d) }

// MemTaskStore is an in-memory services.TaskStore.
type MemTaskStore struct {
	mu     sync.Mutex
	clock  *Clock
	nextID int
	tasks  map[int]models.Task
}

// NewMemTaskStore creates an empty task store driven by clk.
func NewMemTaskStore(clk *Clock) *MemTaskStore {
	return &MemTaskStore{clock: clk, nextID: 1, tasks: map[int]models.Task{}}
}

func (s *MemTaskStore) Insert(t *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	t.ID = s.nextID
	s.nextID++
	t.CreatedAt = now
	t.UpdatedAt = now
	s.tasks[t.ID] = *t
	return nil
}

func (s *MemTaskStore) FindByID(userID, id int) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return nil, repositories.ErrTaskNotFound
	}
	return &t, nil
}

func (s *MemTaskStore) ListByOwner(userID int) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tasks []models.Task
	for _, t := range s.tasks {
		if t.UserID == userID {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (s *MemTaskStore) Update(t *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.tasks[t.ID]
	if !ok || stored.UserID != t.UserID {
		return nil
	}
	t.UpdatedAt = s.clock.Now()
	s.tasks[t.ID] = *t
	return nil
}

func (s *MemTaskStore) ToggleCompleted(userID, id int) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return nil, repositories.ErrTaskNotFound
	}
	t.Completed = !t.Completed
	t.UpdatedAt = s.clock.Now()
	s.tasks[id] = t
	return &t, nil
}

func (s *MemTaskStore) Delete(userID, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.tasks[id]; ok && t.UserID == userID {
		delete(s.tasks, id)
	}
	return nil
}

// MemNoteStore is an in-memory services.NoteStore.
type MemNoteStore struct {
	mu     sync.Mutex
	clock  *Clock
	nextID int
	notes  map[int]models.Note
}

// NewMemNoteStore creates an empty note store driven by clk.
func NewMemNoteStore(clk *Clock) *MemNoteStore {
	return &MemNoteStore{clock: clk, nextID: 1, notes: map[int]models.Note{}}
}

func (s *MemNoteStore) Insert(n *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	n.ID = s.nextID
	s.nextID++
	n.CreatedAt = now
	n.UpdatedAt = now
	s.notes[n.ID] = *n
	return nil
}

func (s *MemNoteStore) FindByID(userID, id int) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[id]
	if !ok || n.UserID != userID {
		return nil, repositories.ErrNoteNotFound
	}
	return &n, nil
}

func (s *MemNoteStore) ListByOwner(userID int) ([]models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var notes []models.Note
	for _, n := range s.notes {
		if n.UserID == userID {
			notes = append(notes, n)
		}
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })
	return notes, nil
}

func (s *MemNoteStore) Update(n *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.notes[n.ID]
	if !ok || stored.UserID != n.UserID {
		return nil
	}
	n.UpdatedAt = s.clock.Now()
	s.notes[n.ID] = *n
	return nil
}

func (s *MemNoteStore) Delete(userID, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n, ok := s.notes[id]; ok && n.UserID == userID {
		delete(s.notes, id)
	}
	return nil
}
