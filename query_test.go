package taskpad

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Text
	}
	return out
}

// seedQueryStore creates a small mixed collection:
//
//	Overdue report   work     high    deadline -1h   pending
//	Buy milk         shopping low     deadline +2h   pending
//	Read book        learning medium  no deadline    completed
//	Gym session      health   medium  deadline -3h   completed
//	Plan trip        personal high    no deadline    pending
func seedQueryStore(t *testing.T) (*Store, *FakeClock) {
	t.Helper()
	store, clock, _ := newTestStore()
	now := clock.Now()

	add := func(text string, c Category, p Priority, deadline *time.Time) Task {
		task, err := store.Add(AddRequest{Text: text, Category: c, Priority: p, Deadline: deadline})
		require.NoError(t, err)
		clock.Advance(time.Minute)
		return task
	}

	add("Overdue report", CategoryWork, PriorityHigh, timePtr(now.Add(-time.Hour)))
	add("Buy milk", CategoryShopping, PriorityLow, timePtr(now.Add(2*time.Hour)))
	book := add("Read book", CategoryLearning, PriorityMedium, nil)
	gym := add("Gym session", CategoryHealth, PriorityMedium, timePtr(now.Add(-3*time.Hour)))
	add("Plan trip", CategoryPersonal, PriorityHigh, nil)

	store.Toggle(book.ID)
	store.Toggle(gym.ID)
	return store, clock
}

// TestQueryStatusFilters tests each status filter against a fixed clock
func TestQueryStatusFilters(t *testing.T) {
	store, _ := seedQueryStore(t)

	tests := []struct {
		status   StatusFilter
		expected []string
	}{
		{StatusAll, []string{"Plan trip", "Gym session", "Read book", "Buy milk", "Overdue report"}},
		{StatusPending, []string{"Plan trip", "Buy milk", "Overdue report"}},
		{StatusCompleted, []string{"Gym session", "Read book"}},
		{StatusOverdue, []string{"Overdue report"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			state := DefaultViewState()
			state.Status = tt.status
			assert.Equal(t, tt.expected, texts(store.Query(state)))
		})
	}
}

// TestQueryOverdueFollowsClock tests that overdue is recomputed live
func TestQueryOverdueFollowsClock(t *testing.T) {
	store, clock := seedQueryStore(t)
	state := DefaultViewState()
	state.Status = StatusOverdue

	clock.Advance(3 * time.Hour)

	assert.ElementsMatch(t, []string{"Overdue report", "Buy milk"}, texts(store.Query(state)))
	for _, task := range store.Query(state) {
		assert.False(t, task.Completed)
		require.NotNil(t, task.Deadline)
		assert.True(t, task.Deadline.Before(clock.Now()))
	}
}

// TestQuerySearch tests case-insensitive matching on text or category
func TestQuerySearch(t *testing.T) {
	store, _ := seedQueryStore(t)
	state := DefaultViewState()

	state.Search = "MILK"
	assert.Equal(t, []string{"Buy milk"}, texts(store.Query(state)))

	state.Search = "work"
	assert.Equal(t, []string{"Overdue report"}, texts(store.Query(state)))

	state.Search = "   "
	assert.Empty(t, store.Query(state))

	state.Search = "nothing matches"
	assert.Empty(t, store.Query(state))
}

// TestQuerySearchWhitespace tests that spaces in the query are matched, not trimmed
func TestQuerySearchWhitespace(t *testing.T) {
	store, _, _ := newTestStore()
	store.Add(AddRequest{Text: "buymilk"})
	store.Add(AddRequest{Text: "buy milk"})

	state := DefaultViewState()
	state.Search = " "
	assert.Equal(t, []string{"buy milk"}, texts(store.Query(state)))

	state.Search = ""
	assert.Len(t, store.Query(state), 2)
}

// TestQueryCategoryFilter tests the exact category match and its combination with status
func TestQueryCategoryFilter(t *testing.T) {
	store, _ := seedQueryStore(t)

	state := DefaultViewState()
	state.Category = CategoryHealth
	assert.Equal(t, []string{"Gym session"}, texts(store.Query(state)))

	state.Status = StatusPending
	assert.Empty(t, store.Query(state))
}

// TestQuerySortPriority tests [low, high, medium] → [high, medium, low]
func TestQuerySortPriority(t *testing.T) {
	store, _, _ := newTestStore()
	store.Add(AddRequest{Text: "low", Priority: PriorityLow})
	store.Add(AddRequest{Text: "high", Priority: PriorityHigh})
	store.Add(AddRequest{Text: "medium", Priority: PriorityMedium})

	state := DefaultViewState()
	state.Sort = SortPriority

	assert.Equal(t, []string{"high", "medium", "low"}, texts(store.Query(state)))
}

// TestQuerySortDeadline tests that tasks without a deadline go last in insertion order
func TestQuerySortDeadline(t *testing.T) {
	store, clock, _ := newTestStore()
	now := clock.Now()
	store.Add(AddRequest{Text: "none-1"})
	store.Add(AddRequest{Text: "late", Deadline: timePtr(now.Add(48 * time.Hour))})
	store.Add(AddRequest{Text: "none-2"})
	store.Add(AddRequest{Text: "soon", Deadline: timePtr(now.Add(time.Hour))})
	store.Add(AddRequest{Text: "none-3"})

	state := DefaultViewState()
	state.Sort = SortDeadline

	assert.Equal(t, []string{"soon", "late", "none-1", "none-2", "none-3"}, texts(store.Query(state)))
}

// TestQuerySortCategory tests ascending category order
func TestQuerySortCategory(t *testing.T) {
	store, _ := seedQueryStore(t)
	state := DefaultViewState()
	state.Sort = SortCategory

	var categories []Category
	for _, task := range store.Query(state) {
		categories = append(categories, task.Category)
	}
	assert.Equal(t, []Category{CategoryHealth, CategoryLearning, CategoryPersonal, CategoryShopping, CategoryWork}, categories)
}

// TestQuerySortCreated tests newest-first ordering
func TestQuerySortCreated(t *testing.T) {
	store, clock, _ := newTestStore()
	store.Add(AddRequest{Text: "first"})
	clock.Advance(time.Second)
	store.Add(AddRequest{Text: "second"})

	assert.Equal(t, []string{"second", "first"}, texts(store.Query(DefaultViewState())))
}

// TestQueryDoesNotMutate tests that the projection is a copy
func TestQueryDoesNotMutate(t *testing.T) {
	store, _ := seedQueryStore(t)
	before := store.Export()

	state := DefaultViewState()
	state.Sort = SortPriority
	result := store.Query(state)
	result[0].Text = "mutated"

	assert.Equal(t, before, store.Export())
}

// TestStats tests counts and completion percentage
func TestStats(t *testing.T) {
	store, _ := seedQueryStore(t)

	stats := store.Stats()
	assert.Equal(t, Stats{Total: 5, Completed: 2, Pending: 3, Overdue: 1, Percent: 40}, stats)

	empty, _, _ := newTestStore()
	assert.Equal(t, Stats{}, empty.Stats())
}

// TestParseViewValues tests the view state parsers
func TestParseViewValues(t *testing.T) {
	status, err := ParseStatusFilter("Overdue")
	require.NoError(t, err)
	assert.Equal(t, StatusOverdue, status)

	_, err = ParseStatusFilter("later")
	assert.ErrorIs(t, err, ErrValidation)

	category, err := ParseCategoryFilter("")
	require.NoError(t, err)
	assert.Equal(t, CategoryAll, category)

	category, err = ParseCategoryFilter("work")
	require.NoError(t, err)
	assert.Equal(t, CategoryWork, category)

	key, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortCreated, key)

	_, err = ParseSortKey("alphabetical")
	assert.ErrorIs(t, err, ErrValidation)
}
