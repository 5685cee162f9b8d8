package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-planner/backend/internal/models"
	"study-planner/backend/internal/services"
	"study-planner/backend/testutil"
)

func newProgressFixture(t *testing.T) (*services.ProgressService, *services.TaskService, *testutil.Clock) {
	t.Helper()
	clk := testutil.NewClock(testutil.DefaultTestDate)
	store := testutil.NewMemTaskStore(clk)
	return services.NewProgressService(store, clk), services.NewTaskService(store, clk), clk
}

func TestOverall_ZeroTasksIsZeroPercent(t *testing.T) {
	progress, _, _ := newProgressFixture(t)

	overall, err := progress.Overall(1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, overall, "empty set must yield 0, not a division failure")
}

func TestByPriority_AllLevelsAlwaysPresent(t *testing.T) {
	progress, tasks, _ := newProgressFixture(t)
	mustCreate(t, tasks, 1, "Only high", deadlineIn(1), "high")

	byPriority, err := progress.ByPriority(1)
	require.NoError(t, err)
	require.Len(t, byPriority, 3)

	assert.Equal(t, services.PriorityProgress{Total: 1, Completed: 0, Percentage: 0}, byPriority[models.PriorityHigh])
	assert.Equal(t, services.PriorityProgress{}, byPriority[models.PriorityMedium])
	assert.Equal(t, services.PriorityProgress{}, byPriority[models.PriorityLow])
}

func TestByPriority_SumsMatchOverallCounts(t *testing.T) {
	progress, tasks, _ := newProgressFixture(t)
	for i := 0; i < 4; i++ {
		mustCreate(t, tasks, 1, fmt.Sprintf("low %d", i), deadlineIn(i), "low")
	}
	for i := 0; i < 3; i++ {
		task := mustCreate(t, tasks, 1, fmt.Sprintf("high %d", i), deadlineIn(i), "high")
		if i%2 == 0 {
			_, err := tasks.Toggle(1, task.ID)
			require.NoError(t, err)
		}
	}

	byPriority, err := progress.ByPriority(1)
	require.NoError(t, err)
	counts, err := progress.Counts(1)
	require.NoError(t, err)

	var total, completed int
	for _, p := range byPriority {
		total += p.Total
		completed += p.Completed
	}
	assert.Equal(t, counts.Total, total)
	assert.Equal(t, counts.Completed, completed)
}

func TestScenario_ThreeTasksOneCompleted(t *testing.T) {
	// Owner U: A(+2d, high, pending), B(-3d, low, pending),
	// C(+1d, medium, completed).
	progress, tasks, clk := newProgressFixture(t)
	mustCreate(t, tasks, 1, "A", deadlineIn(2), "high")
	mustCreate(t, tasks, 1, "B", deadlineIn(-3), "low")
	c := mustCreate(t, tasks, 1, "C", deadlineIn(1), "medium")
	_, err := tasks.Toggle(1, c.ID)
	require.NoError(t, err)

	overdue, err := tasks.Overdue(1)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "B", overdue[0].Title)
	assert.Equal(t, 3, overdue[0].DaysOverdueOn(models.DateOnly(clk.Now())))

	upcoming, err := tasks.Upcoming(1, 7, 5)
	require.NoError(t, err)
	require.Len(t, upcoming, 1, "C is completed and B is overdue")
	assert.Equal(t, "A", upcoming[0].Title)

	overall, err := progress.Overall(1)
	require.NoError(t, err)
	assert.InDelta(t, 33.33, overall, 0.01)

	byPriority, err := progress.ByPriority(1)
	require.NoError(t, err)
	assert.Equal(t, services.PriorityProgress{Total: 1, Completed: 0, Percentage: 0}, byPriority[models.PriorityHigh])
	assert.Equal(t, services.PriorityProgress{Total: 1, Completed: 1, Percentage: 100}, byPriority[models.PriorityMedium])
}

func TestByWeek_BucketsByISOWeekWithinWindow(t *testing.T) {
	progress, tasks, clk := newProgressFixture(t)
	today := models.DateOnly(clk.Now())

	mustCreate(t, tasks, 1, "This week", deadlineIn(-1), "medium")
	done := mustCreate(t, tasks, 1, "This week done", deadlineIn(-2), "medium")
	_, err := tasks.Toggle(1, done.ID)
	require.NoError(t, err)
	mustCreate(t, tasks, 1, "Two weeks back", deadlineIn(-14), "medium")
	mustCreate(t, tasks, 1, "Outside window", deadlineIn(-40), "medium")
	mustCreate(t, tasks, 1, "Future", deadlineIn(2), "medium")

	weekly, err := progress.ByWeek(1, 4)
	require.NoError(t, err)
	require.Len(t, weekly, 2, "only weeks inside the trailing window with tasks appear")

	oldYear, oldWeek := today.AddDate(0, 0, -14).ISOWeek()
	curYear, curWeek := today.AddDate(0, 0, -1).ISOWeek()
	assert.Equal(t, fmt.Sprintf("%d-W%02d", oldYear, oldWeek), weekly[0].Key, "chronological ascending")
	assert.Equal(t, fmt.Sprintf("%d-W%02d", curYear, curWeek), weekly[1].Key)

	assert.Equal(t, 1, weekly[0].Total)
	assert.Equal(t, 2, weekly[1].Total)
	assert.Equal(t, 1, weekly[1].Completed)
	assert.InDelta(t, 50.0, weekly[1].Percentage, 0.01)
}

func TestByMonth_HumanReadableKeysAscending(t *testing.T) {
	progress, tasks, clk := newProgressFixture(t)
	today := models.DateOnly(clk.Now())

	mustCreate(t, tasks, 1, "This month", deadlineIn(-2), "medium")
	mustCreate(t, tasks, 1, "Last month", today.AddDate(0, -1, 0).Format(models.DeadlineFormat), "medium")
	mustCreate(t, tasks, 1, "Too old", today.AddDate(0, -8, 0).Format(models.DeadlineFormat), "medium")

	monthly, err := progress.ByMonth(1, 6)
	require.NoError(t, err)
	require.Len(t, monthly, 2)
	assert.Equal(t, today.AddDate(0, -1, 0).Format("Jan 2006"), monthly[0].Key)
	assert.Equal(t, today.Format("Jan 2006"), monthly[1].Key)
}

func TestByWeekAndByMonth_WindowEdgesIgnoreClockZone(t *testing.T) {
	newZonedFixture := func(t *testing.T, loc *time.Location) (*services.ProgressService, *services.TaskService) {
		t.Helper()
		d := testutil.DefaultTestDate
		clk := testutil.NewClock(time.Date(d.Year(), d.Month(), d.Day(), 10, 0, 0, 0, loc))
		store := testutil.NewMemTaskStore(clk)
		return services.NewProgressService(store, clk), services.NewTaskService(store, clk)
	}
	bucketTotal := func(buckets []services.PeriodProgress) int {
		var n int
		for _, b := range buckets {
			n += b.Total
		}
		return n
	}

	t.Run("west of UTC keeps the oldest edge inside the windows", func(t *testing.T) {
		progress, tasks := newZonedFixture(t, time.FixedZone("UTC-8", -8*60*60))
		today := models.DateOnly(testutil.DefaultTestDate)
		mustCreate(t, tasks, 1, "Today", deadlineIn(0), "medium")
		mustCreate(t, tasks, 1, "Week edge", deadlineIn(-28), "medium")
		mustCreate(t, tasks, 1, "Past the week window", deadlineIn(-29), "medium")
		mustCreate(t, tasks, 1, "Month edge", today.AddDate(0, -6, 0).Format(models.DeadlineFormat), "medium")

		weekly, err := progress.ByWeek(1, 4)
		require.NoError(t, err)
		assert.Equal(t, 2, bucketTotal(weekly), "both edges in, one day past the window out")

		monthly, err := progress.ByMonth(1, 6)
		require.NoError(t, err)
		assert.Equal(t, 4, bucketTotal(monthly))
	})

	t.Run("east of UTC keeps today inside the windows", func(t *testing.T) {
		progress, tasks := newZonedFixture(t, time.FixedZone("UTC+9", 9*60*60))
		mustCreate(t, tasks, 1, "Today", deadlineIn(0), "medium")

		weekly, err := progress.ByWeek(1, 4)
		require.NoError(t, err)
		assert.Equal(t, 1, bucketTotal(weekly))

		monthly, err := progress.ByMonth(1, 6)
		require.NoError(t, err)
		assert.Equal(t, 1, bucketTotal(monthly))
	})
}

func TestRecentlyCompleted_OrderedByUpdatedAtDescending(t *testing.T) {
	progress, tasks, clk := newProgressFixture(t)
	first := mustCreate(t, tasks, 1, "First done", deadlineIn(1), "medium")
	second := mustCreate(t, tasks, 1, "Second done", deadlineIn(2), "medium")
	mustCreate(t, tasks, 1, "Never done", deadlineIn(3), "medium")

	_, err := tasks.Toggle(1, first.ID)
	require.NoError(t, err)
	clk.Advance(time.Hour)
	_, err = tasks.Toggle(1, second.ID)
	require.NoError(t, err)

	recent, err := progress.RecentlyCompleted(1, 5)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Second done", recent[0].Title, "most recently touched first")
	assert.Equal(t, "First done", recent[1].Title)

	capped, err := progress.RecentlyCompleted(1, 1)
	require.NoError(t, err)
	require.Len(t, capped, 1)
	assert.Equal(t, "Second done", capped[0].Title)
}

func TestReport_ViewsAreMutuallyConsistent(t *testing.T) {
	progress, tasks, _ := newProgressFixture(t)
	for i := 0; i < 5; i++ {
		prio := []string{"low", "medium", "high"}[i%3]
		task := mustCreate(t, tasks, 1, fmt.Sprintf("task %d", i), deadlineIn(i-2), prio)
		if i < 2 {
			_, err := tasks.Toggle(1, task.ID)
			require.NoError(t, err)
		}
	}

	report, err := progress.Report(1)
	require.NoError(t, err)

	assert.Equal(t, 5, report.Counts.Total)
	assert.Equal(t, 2, report.Counts.Completed)
	assert.Equal(t, 3, report.Counts.Pending)
	assert.InDelta(t, 40.0, report.Overall, 0.01)

	var total, completed int
	for _, p := range report.ByPriority {
		total += p.Total
		completed += p.Completed
	}
	assert.Equal(t, report.Counts.Total, total)
	assert.Equal(t, report.Counts.Completed, completed)

	assert.Len(t, report.RecentCompleted, 2)
	for _, task := range report.RecentCompleted {
		assert.True(t, task.Completed)
	}
}

func TestReport_EmptyOwnerYieldsZeroedStructures(t *testing.T) {
	progress, _, _ := newProgressFixture(t)

	report, err := progress.Report(1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, report.Overall)
	assert.Equal(t, services.TaskCounts{}, report.Counts)
	assert.Len(t, report.ByPriority, 3)
	assert.Empty(t, report.Weekly)
	assert.Empty(t, report.Monthly)
	assert.Empty(t, report.RecentCompleted)
}
