package services

import (
	"fmt"
	"sort"
	"time"

	"study-planner/backend/internal/clock"
	"study-planner/backend/internal/models"
)

// TaskLister is the slice of the task store the aggregator needs. It never
// mutates data.
type TaskLister interface {
	ListByOwner(userID int) ([]models.Task, error)
}

// Default aggregation windows, matching the progress page of the planner.
const (
	DefaultWindowWeeks  = 4
	DefaultWindowMonths = 6
	DefaultRecentLimit  = 5
)

// PriorityProgress is the completion breakdown for one priority level.
type PriorityProgress struct {
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	Percentage float64 `json:"percentage"`
}

// PeriodProgress is the completion breakdown for one calendar week or month.
type PeriodProgress struct {
	Key        string  `json:"key"`
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	Percentage float64 `json:"percentage"`
}

// TaskCounts summarizes a task set by completion state.
type TaskCounts struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// ProgressReport bundles every aggregate view for one owner, computed from a
// single fetch so the views are mutually consistent.
type ProgressReport struct {
	Overall         float64                              `json:"overall"`
	Counts          TaskCounts                           `json:"counts"`
	ByPriority      map[models.Priority]PriorityProgress `json:"by_priority"`
	Weekly          []PeriodProgress                     `json:"weekly"`
	Monthly         []PeriodProgress                     `json:"monthly"`
	RecentCompleted []models.Task                        `json:"recent_completed"`
}

// ProgressService computes read-side completion statistics over an owner's
// task set. It never mutates data and never fails on an empty set.
type ProgressService struct {
	store TaskLister
	clock clock.Clock
}

// NewProgressService creates a new ProgressService.
func NewProgressService(store TaskLister, clk clock.Clock) *ProgressService {
	return &ProgressService{store: store, clock: clk}
}

// Overall returns the completion percentage across all of userID's tasks,
// 0 when there are none.
func (s *ProgressService) Overall(userID int) (float64, error) {
	tasks, err := s.store.ListByOwner(userID)
	if err != nil {
		return 0, err
	}
	c := countTasks(tasks)
	return percentage(c.Completed, c.Total), nil
}

// Counts returns the total/completed/pending summary for userID.
func (s *ProgressService) Counts(userID int) (TaskCounts, error) {
	tasks, err := s.store.ListByOwner(userID)
	if err != nil {
		return TaskCounts{}, err
	}
	return countTasks(tasks), nil
}

// ByPriority breaks completion down per priority level. Every level is
// present in the result, zeroed when the owner has no tasks at that level.
func (s *ProgressService) ByPriority(userID int) (map[models.Priority]PriorityProgress, error) {
	tasks, err := s.store.ListByOwner(userID)
	if err != nil {
		return nil, err
	}
	return progressByPriority(tasks), nil
}

// ByWeek groups completion by ISO week over the trailing windowWeeks weeks.
// Only weeks containing at least one task appear, ordered ascending.
func (s *ProgressService) ByWeek(userID, windowWeeks int) ([]PeriodProgress, error) {
	tasks, err := s.store.ListByOwner(userID)
	if err != nil {
		return nil, err
	}
	return progressByWeek(tasks, models.DateOnly(s.clock.Now()), windowWeeks), nil
}

// ByMonth groups completion by calendar month over the trailing windowMonths
// months, ordered ascending. Keys are display labels like "Mar 2026".
func (s *ProgressService) ByMonth(userID, windowMonths int) ([]PeriodProgress, error) {
	tasks, err := s.store.ListByOwner(userID)
	if err != nil {
		return nil, err
	}
	return progressByMonth(tasks, models.DateOnly(s.clock.Now()), windowMonths), nil
}

// RecentlyCompleted returns the most recently touched completed tasks,
// capped at limit.
func (s *ProgressService) RecentlyCompleted(userID, limit int) ([]models.Task, error) {
	tasks, err := s.store.ListByOwner(userID)
	if err != nil {
		return nil, err
	}
	return recentlyCompleted(tasks, limit), nil
}

// Today reports the current calendar date.
func (s *ProgressService) Today() time.Time {
	return models.DateOnly(s.clock.Now())
}

// Report computes every aggregate view with the default windows from one
// fetch of the owner's tasks.
func (s *ProgressService) Report(userID int) (*ProgressReport, error) {
	tasks, err := s.store.ListByOwner(userID)
	if err != nil {
		return nil, err
	}

	today := models.DateOnly(s.clock.Now())
	counts := countTasks(tasks)
	return &ProgressReport{
		Overall:         percentage(counts.Completed, counts.Total),
		Counts:          counts,
		ByPriority:      progressByPriority(tasks),
		Weekly:          progressByWeek(tasks, today, DefaultWindowWeeks),
		Monthly:         progressByMonth(tasks, today, DefaultWindowMonths),
		RecentCompleted: recentlyCompleted(tasks, DefaultRecentLimit),
	}, nil
}

// percentage computes completed/total*100, defined as 0 for an empty set.
func percentage(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

func countTasks(tasks []models.Task) TaskCounts {
	var c TaskCounts
	for _, t := range tasks {
		c.Total++
		if t.Completed {
			c.Completed++
		} else {
			c.Pending++
		}
	}
	return c
}

func progressByPriority(tasks []models.Task) map[models.Priority]PriorityProgress {
	totals := map[models.Priority]*PriorityProgress{
		models.PriorityLow:    {},
		models.PriorityMedium: {},
		models.PriorityHigh:   {},
	}
	for _, t := range tasks {
		p := totals[t.Priority]
		p.Total++
		if t.Completed {
			p.Completed++
		}
	}

	out := make(map[models.Priority]PriorityProgress, len(totals))
	for prio, p := range totals {
		p.Percentage = percentage(p.Completed, p.Total)
		out[prio] = *p
	}
	return out
}

// periodBucket accumulates one week or month bucket. Buckets are keyed by a
// chronological ordinal so they sort independently of the display key.
type periodBucket struct {
	key       string
	total     int
	completed int
}

func progressByWeek(tasks []models.Task, today time.Time, windowWeeks int) []PeriodProgress {
	buckets := map[int]*periodBucket{}

	for _, t := range tasks {
		days := models.DaysUntil(today, t.Deadline)
		if days > 0 || days < -7*windowWeeks {
			continue
		}
		year, week := t.Deadline.ISOWeek()
		ord := year*100 + week
		b := buckets[ord]
		if b == nil {
			b = &periodBucket{key: fmt.Sprintf("%d-W%02d", year, week)}
			buckets[ord] = b
		}
		b.total++
		if t.Completed {
			b.completed++
		}
	}

	return sortBuckets(buckets)
}

func progressByMonth(tasks []models.Task, today time.Time, windowMonths int) []PeriodProgress {
	from := today.AddDate(0, -windowMonths, 0)
	buckets := map[int]*periodBucket{}

	for _, t := range tasks {
		if models.DaysUntil(today, t.Deadline) > 0 || models.DaysUntil(from, t.Deadline) < 0 {
			continue
		}
		ord := t.Deadline.Year()*12 + int(t.Deadline.Month()-1)
		b := buckets[ord]
		if b == nil {
			b = &periodBucket{key: t.Deadline.Format("Jan 2006")}
			buckets[ord] = b
		}
		b.total++
		if t.Completed {
			b.completed++
		}
	}

	return sortBuckets(buckets)
}

func sortBuckets(buckets map[int]*periodBucket) []PeriodProgress {
	ords := make([]int, 0, len(buckets))
	for ord := range buckets {
		ords = append(ords, ord)
	}
	sort.Ints(ords)
	sorted := make([]PeriodProgress, 0, len(buckets))
	for _, ord := range ords {
		b := buckets[ord]
		sorted = append(sorted, PeriodProgress{
			Key:        b.key,
			Total:      b.total,
			Completed:  b.completed,
			Percentage: percentage(b.completed, b.total),
		})
	}
	return sorted
}

func recentlyCompleted(tasks []models.Task, limit int) []models.Task {
	var done []models.Task
	for _, t := range tasks {
		if t.Completed {
			done = append(done, t)
		}
	}
	sort.SliceStable(done, func(i, j int) bool {
		return done[i].UpdatedAt.After(done[j].UpdatedAt)
	})
	if limit > 0 && len(done) > limit {
		done = done[:limit]
	}
	return done
}
