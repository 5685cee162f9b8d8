// Package models defines the study planner entities, the closed enumerations
// parsed from boundary query parameters, and the request/response shapes used
// by the API layer.
package models

import (
	"strings"
	"time"
)

// Priority of a task. Stored as its string value.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority maps a raw priority string to a Priority. Unrecognized or
// empty values become PriorityMedium.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow
	case "high":
		return PriorityHigh
	case "medium":
		return PriorityMedium
	default:
		return PriorityMedium
	}
}

// Rank orders priorities for sorting: high before medium before low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// StatusFilter restricts a task listing by completion state.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterCompleted StatusFilter = "completed"
	FilterPending   StatusFilter = "pending"
)

// ParseStatusFilter maps a raw filter string to a StatusFilter, falling back
// to FilterAll for anything unrecognized.
func ParseStatusFilter(s string) StatusFilter {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "completed":
		return FilterCompleted
	case "pending":
		return FilterPending
	default:
		return FilterAll
	}
}

// SortKey selects the task listing sort column.
type SortKey string

const (
	SortByDeadline SortKey = "deadline"
	SortByPriority SortKey = "priority"
	SortByTitle    SortKey = "title"
	SortByCreated  SortKey = "created"
)

// ParseSortKey maps a raw sort string to a SortKey, falling back to
// SortByDeadline for anything unrecognized.
func ParseSortKey(s string) SortKey {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "priority":
		return SortByPriority
	case "title":
		return SortByTitle
	case "created", "created_at":
		return SortByCreated
	default:
		return SortByDeadline
	}
}

// SortOrder is the listing direction.
type SortOrder string

const (
	OrderAscending  SortOrder = "asc"
	OrderDescending SortOrder = "desc"
)

// ParseSortOrder maps a raw order string to a SortOrder, falling back to
// OrderAscending for anything unrecognized.
func ParseSortOrder(s string) SortOrder {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desc", "descending":
		return OrderDescending
	default:
		return OrderAscending
	}
}

// TaskQuery carries the parsed listing parameters.
type TaskQuery struct {
	Filter StatusFilter
	Sort   SortKey
	Order  SortOrder
}

// ParseTaskQuery parses the raw filter/sort/order query parameters, applying
// the default for every value it does not recognize.
func ParseTaskQuery(filter, sort, order string) TaskQuery {
	return TaskQuery{
		Filter: ParseStatusFilter(filter),
		Sort:   ParseSortKey(sort),
		Order:  ParseSortOrder(order),
	}
}

// DueStatus classifies a task against the current date. It is derived at
// read time and never persisted.
type DueStatus string

const (
	DueNormal  DueStatus = "normal"
	DueSoon    DueStatus = "due_soon"
	DueOverdue DueStatus = "overdue"
)

// DueSoonDays is the inclusive classification window for DueSoon.
const DueSoonDays = 3

// Task is a study task owned by a single user.
type Task struct {
	ID          int       `json:"id,omitempty"`
	UserID      int       `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DateOnly truncates t to midnight of its calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DueStatusOn classifies the task relative to today. Completed tasks are
// always DueNormal.
func (t Task) DueStatusOn(today time.Time) DueStatus {
	if t.Completed {
		return DueNormal
	}
	days := DaysUntil(today, t.Deadline)
	switch {
	case days < 0:
		return DueOverdue
	case days <= DueSoonDays:
		return DueSoon
	default:
		return DueNormal
	}
}

// DaysOverdueOn reports how many whole calendar days past its deadline the
// task is, or 0 when the deadline has not passed.
func (t Task) DaysOverdueOn(today time.Time) int {
	if days := DaysUntil(today, t.Deadline); days < 0 {
		return -days
	}
	return 0
}

// DaysUntil counts calendar days from today to the deadline; negative when
// the deadline is in the past. Both sides are normalized to their calendar
// date so the count is exact regardless of time zone or time of day.
func DaysUntil(today, deadline time.Time) int {
	from := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(deadline.Year(), deadline.Month(), deadline.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// DeadlineFormat is the wire format for task deadlines.
const DeadlineFormat = "2006-01-02"

// CreateTaskRequest is the payload for creating a task. Deadline uses the
// YYYY-MM-DD format.
type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Deadline    string `json:"deadline" binding:"required"`
	Priority    string `json:"priority"`
}

// UpdateTaskRequest is the payload for a partial task update. Nil fields are
// left untouched.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Deadline    *string `json:"deadline"`
	Priority    *string `json:"priority"`
	Completed   *bool   `json:"completed"`
}

// TaskView is a task as rendered in list responses, annotated with the
// read-time due classification.
type TaskView struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Deadline    string    `json:"deadline"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
	DueStatus   DueStatus `json:"due_status"`
	DaysOverdue int       `json:"days_overdue,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTaskView builds the presentation form of a task for the given date.
func NewTaskView(t Task, today time.Time) TaskView {
	return TaskView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Deadline:    t.Deadline.Format(DeadlineFormat),
		Priority:    t.Priority,
		Completed:   t.Completed,
		DueStatus:   t.DueStatusOn(today),
		DaysOverdue: t.DaysOverdueOn(today),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// NewTaskViews maps a task slice to its presentation form.
func NewTaskViews(tasks []Task, today time.Time) []TaskView {
	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, NewTaskView(t, today))
	}
	return views
}
