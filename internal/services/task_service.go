// Package services holds the planner's business rules: task state
// transitions, the query engine, the progress aggregator, and note search.
// Services take the store collaborators as interfaces so the logic runs the
// same against MySQL and the in-memory test stores.
package services

import (
	"sort"
	"strings"
	"time"

	"study-planner/backend/internal/clock"
	"study-planner/backend/internal/models"
)

// TaskStore is the storage collaborator for tasks. Implementations must
// scope every operation by the owning user id.
type TaskStore interface {
	Insert(t *models.Task) error
	FindByID(userID, id int) (*models.Task, error)
	ListByOwner(userID int) ([]models.Task, error)
	Update(t *models.Task) error
	ToggleCompleted(userID, id int) (*models.Task, error)
	Delete(userID, id int) error
}

// TaskService owns task CRUD, ownership enforcement, and the filtered/sorted
// query engine.
type TaskService struct {
	store TaskStore
	clock clock.Clock
}

// NewTaskService creates a new TaskService.
func NewTaskService(store TaskStore, clk clock.Clock) *TaskService {
	return &TaskService{store: store, clock: clk}
}

// Create validates and stores a new task for userID. Title and deadline are
// required; an unrecognized priority becomes medium; completion starts false.
func (s *TaskService) Create(userID int, req models.CreateTaskRequest) (*models.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, models.NewValidationError("title", "title is required")
	}
	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		UserID:      userID,
		Title:       title,
		Description: req.Description,
		Deadline:    deadline,
		Priority:    models.ParsePriority(req.Priority),
		Completed:   false,
	}
	if err := s.store.Insert(task); err != nil {
		return nil, err
	}
	return task, nil
}

// Update applies the non-nil fields of req to the task with the given id.
// The task must belong to userID. updated_at is refreshed even when no field
// value changes.
func (s *TaskService) Update(userID, id int, req models.UpdateTaskRequest) (*models.Task, error) {
	task, err := s.store.FindByID(userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, models.NewValidationError("title", "title is required")
		}
		task.Title = title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Deadline != nil {
		deadline, err := parseDeadline(*req.Deadline)
		if err != nil {
			return nil, err
		}
		task.Deadline = deadline
	}
	if req.Priority != nil {
		task.Priority = models.ParsePriority(*req.Priority)
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	if err := s.store.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

// Toggle flips the completion flag of the task with the given id. The flip
// happens as a single conditional write at the store, so toggling twice
// always lands back on the original state.
func (s *TaskService) Toggle(userID, id int) (*models.Task, error) {
	return s.store.ToggleCompleted(userID, id)
}

// Delete removes the task with the given id if it belongs to userID.
// Deleting a missing or foreign task is a silent no-op.
func (s *TaskService) Delete(userID, id int) error {
	return s.store.Delete(userID, id)
}

// Get loads a single task owned by userID.
func (s *TaskService) Get(userID, id int) (*models.Task, error) {
	return s.store.FindByID(userID, id)
}

// List returns userID's tasks filtered and sorted per q. Malformed query
// values never reach here; ParseTaskQuery already folded them to defaults.
func (s *TaskService) List(userID int, q models.TaskQuery) ([]models.Task, error) {
	tasks, err := s.store.ListByOwner(userID)
	if err != nil {
		return nil, err
	}

	filtered := tasks[:0:0]
	for _, t := range tasks {
		switch q.Filter {
		case models.FilterCompleted:
			if !t.Completed {
				continue
			}
		case models.FilterPending:
			if t.Completed {
				continue
			}
		}
		filtered = append(filtered, t)
	}

	sortTasks(filtered, q.Sort, q.Order)
	return filtered, nil
}

// Upcoming returns the pending tasks with a deadline within the next
// withinDays days (today inclusive), nearest first, capped at limit.
func (s *TaskService) Upcoming(userID, withinDays, limit int) ([]models.Task, error) {
	tasks, err := s.store.ListByOwner(userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	var upcoming []models.Task
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		days := models.DaysUntil(now, t.Deadline)
		if days < 0 || days > withinDays {
			continue
		}
		upcoming = append(upcoming, t)
	}

	sortTasks(upcoming, models.SortByDeadline, models.OrderAscending)
	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming, nil
}

// Overdue returns the pending tasks whose deadline has already passed,
// oldest deadline first. Days overdue are derived per task at render time.
func (s *TaskService) Overdue(userID int) ([]models.Task, error) {
	tasks, err := s.store.ListByOwner(userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	var overdue []models.Task
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		if models.DaysUntil(now, t.Deadline) < 0 {
			overdue = append(overdue, t)
		}
	}

	sortTasks(overdue, models.SortByDeadline, models.OrderAscending)
	return overdue, nil
}

// Today reports the current calendar date, for due-status annotation at the
// presentation boundary.
func (s *TaskService) Today() time.Time {
	return models.DateOnly(s.clock.Now())
}

func sortTasks(tasks []models.Task, key models.SortKey, order models.SortOrder) {
	less := func(a, b models.Task) bool {
		switch key {
		case models.SortByPriority:
			return a.Priority.Rank() < b.Priority.Rank()
		case models.SortByTitle:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case models.SortByCreated:
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return a.Deadline.Before(b.Deadline)
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		if order == models.OrderDescending {
			return less(tasks[j], tasks[i])
		}
		return less(tasks[i], tasks[j])
	})
}

func parseDeadline(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, models.NewValidationError("deadline", "deadline is required")
	}
	deadline, err := time.Parse(models.DeadlineFormat, raw)
	if err != nil {
		return time.Time{}, models.NewValidationError("deadline", "deadline must use the YYYY-MM-DD format")
	}
	return deadline, nil
}
