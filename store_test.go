package taskpad

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAddTask tests that a valid add appends a pending task with defaults
func TestAddTask(t *testing.T) {
	store, clock, _ := newTestStore()

	task, err := store.Add(AddRequest{Text: "  Write report  ", Priority: PriorityHigh})
	require.NoError(t, err)

	assert.Equal(t, "T-1", task.ID)
	assert.Equal(t, "Write report", task.Text)
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedAt)
	assert.Equal(t, CategoryOther, task.Category)
	assert.Equal(t, PriorityHigh, task.Priority)
	assert.Equal(t, RecurNone, task.Recurring)
	assert.Equal(t, clock.Now(), task.CreatedAt)
	assert.Equal(t, 1, store.Len())
}

// TestAddTaskRejectsEmptyText tests that whitespace-only text leaves the collection unchanged
func TestAddTaskRejectsEmptyText(t *testing.T) {
	store, _, slots := newTestStore()

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := store.Add(AddRequest{Text: text})
		assert.ErrorIs(t, err, ErrValidation)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "text", verr.Field)
	}

	assert.Equal(t, 0, store.Len())
	_, saved, _ := slots.Get(DefaultStorageKey)
	assert.False(t, saved, "rejected adds must not persist")
}

// TestAddTaskRejectsUnknownEnums tests the closed enumerations
func TestAddTaskRejectsUnknownEnums(t *testing.T) {
	store, _, _ := newTestStore()

	_, err := store.Add(AddRequest{Text: "x", Category: "garden"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = store.Add(AddRequest{Text: "x", Priority: "urgent"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = store.Add(AddRequest{Text: "x", Recurring: "yearly"})
	assert.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, 0, store.Len())
}

// TestAddTaskKeepsPastDeadline tests that past deadlines are legal and immediately overdue
func TestAddTaskKeepsPastDeadline(t *testing.T) {
	store, clock, _ := newTestStore()

	task, err := store.Add(AddRequest{Text: "Late", Deadline: timePtr(clock.Now().Add(-time.Hour))})
	require.NoError(t, err)

	assert.True(t, task.IsOverdue(clock.Now()))
	assert.Equal(t, 1, store.Stats().Overdue)
}

// TestToggleTwice tests that toggling twice restores the original state
func TestToggleTwice(t *testing.T) {
	store, clock, _ := newTestStore()
	task, err := store.Add(AddRequest{Text: "Walk the dog"})
	require.NoError(t, err)

	clock.Advance(time.Minute)
	result, ok := store.Toggle(task.ID)
	require.True(t, ok)
	assert.True(t, result.Task.Completed)
	require.NotNil(t, result.Task.CompletedAt)
	assert.Equal(t, clock.Now(), *result.Task.CompletedAt)
	assert.Nil(t, result.Successor)

	result, ok = store.Toggle(task.ID)
	require.True(t, ok)
	assert.False(t, result.Task.Completed)
	assert.Nil(t, result.Task.CompletedAt)
	assert.Equal(t, 1, store.Len())
}

// TestToggleMissingIsNoop tests the silent no-op policy shared by toggle and delete
func TestToggleMissingIsNoop(t *testing.T) {
	store, _, slots := newTestStore()

	_, ok := store.Toggle("T-404")
	assert.False(t, ok)
	assert.False(t, store.Delete("T-404"))

	_, saved, _ := slots.Get(DefaultStorageKey)
	assert.False(t, saved)
}

// TestCompletedAtInvariant tests completed == (completedAt != nil) across mutations
func TestCompletedAtInvariant(t *testing.T) {
	store, _, _ := newTestStore()

	a, _ := store.Add(AddRequest{Text: "a", Recurring: RecurDaily})
	b, _ := store.Add(AddRequest{Text: "b"})
	store.Toggle(a.ID)
	store.Toggle(b.ID)
	store.Toggle(b.ID)

	for _, task := range store.Export() {
		assert.Equal(t, task.Completed, task.CompletedAt != nil, "task %s", task.ID)
	}
}

// TestRecurringTaskSpawnsSuccessor tests recurrence synthesis for each interval
func TestRecurringTaskSpawnsSuccessor(t *testing.T) {
	tests := []struct {
		recurring Recurrence
		expected  func(time.Time) time.Time
	}{
		{RecurDaily, func(now time.Time) time.Time { return now.Add(24 * time.Hour) }},
		{RecurWeekly, func(now time.Time) time.Time { return now.Add(7 * 24 * time.Hour) }},
		{RecurMonthly, func(now time.Time) time.Time { return now.AddDate(0, 1, 0) }},
	}

	for _, tt := range tests {
		t.Run(string(tt.recurring), func(t *testing.T) {
			store, clock, _ := newTestStore()

			// Original deadline far in the past: the successor must not chain from it
			task, err := store.Add(AddRequest{
				Text:      "Water plants",
				Category:  CategoryPersonal,
				Priority:  PriorityLow,
				Deadline:  timePtr(clock.Now().Add(-72 * time.Hour)),
				Recurring: tt.recurring,
			})
			require.NoError(t, err)

			clock.Advance(5 * time.Hour)
			result, ok := store.Toggle(task.ID)
			require.True(t, ok)
			require.NotNil(t, result.Successor)
			assert.Equal(t, 2, store.Len())

			next := result.Successor
			assert.NotEqual(t, task.ID, next.ID)
			assert.Equal(t, "Water plants", next.Text)
			assert.Equal(t, CategoryPersonal, next.Category)
			assert.Equal(t, PriorityLow, next.Priority)
			assert.Equal(t, tt.recurring, next.Recurring)
			assert.False(t, next.Completed)
			assert.Nil(t, next.CompletedAt)
			assert.Equal(t, clock.Now(), next.CreatedAt)
			require.NotNil(t, next.Deadline)
			assert.WithinDuration(t, tt.expected(clock.Now()), *next.Deadline, time.Second)

			stored, ok := store.Get(next.ID)
			require.True(t, ok)
			assert.Equal(t, *next, stored)
		})
	}
}

// TestUncompletingRecurringTaskDoesNotSpawn tests that only false→true triggers recurrence
func TestUncompletingRecurringTaskDoesNotSpawn(t *testing.T) {
	store, _, _ := newTestStore()
	task, _ := store.Add(AddRequest{Text: "Stretch", Recurring: RecurDaily})

	store.Toggle(task.ID) // complete, spawns one
	result, ok := store.Toggle(task.ID)
	require.True(t, ok)

	assert.Nil(t, result.Successor)
	assert.Equal(t, 2, store.Len())
}

// TestDeleteTask tests removal by id
func TestDeleteTask(t *testing.T) {
	store, _, _ := newTestStore()
	a, _ := store.Add(AddRequest{Text: "a"})
	b, _ := store.Add(AddRequest{Text: "b"})

	assert.True(t, store.Delete(a.ID))

	tasks := store.Export()
	require.Len(t, tasks, 1)
	assert.Equal(t, b.ID, tasks[0].ID)
}

// TestClearCompleted tests that only completed tasks are removed and counted
func TestClearCompleted(t *testing.T) {
	store, _, _ := newTestStore()
	a, _ := store.Add(AddRequest{Text: "a"})
	store.Add(AddRequest{Text: "b"})
	c, _ := store.Add(AddRequest{Text: "c"})
	store.Toggle(a.ID)
	store.Toggle(c.ID)

	removed := store.ClearCompleted()

	assert.Equal(t, 2, removed)
	tasks := store.Export()
	require.Len(t, tasks, 1)
	assert.Equal(t, "b", tasks[0].Text)
	assert.Equal(t, 0, store.ClearCompleted())
}

// TestClearAll tests confirmation and the returned prior count
func TestClearAll(t *testing.T) {
	store, _, _ := newTestStore()
	store.Add(AddRequest{Text: "a"})
	store.Add(AddRequest{Text: "b"})

	removed, err := store.ClearAll(false)
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Equal(t, 0, removed)
	assert.Equal(t, 2, store.Len())

	removed, err = store.ClearAll(true)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, store.Len())
}

// TestExportIsACopy tests that mutating an export does not reach the store
func TestExportIsACopy(t *testing.T) {
	store, clock, _ := newTestStore()
	store.Add(AddRequest{Text: "a", Deadline: timePtr(clock.Now())})

	exported := store.Export()
	exported[0].Text = "changed"
	*exported[0].Deadline = clock.Now().Add(time.Hour)

	again := store.Export()
	assert.Equal(t, "a", again[0].Text)
	assert.Equal(t, clock.Now(), *again[0].Deadline)
}

// TestMutationsPersist tests that every mutation flushes a snapshot a new store can load
func TestMutationsPersist(t *testing.T) {
	store, clock, slots := newTestStore()
	a, _ := store.Add(AddRequest{Text: "a", Recurring: RecurWeekly})
	store.Toggle(a.ID)

	reloaded := NewStore(NewSlotPersistence(slots, "", nil), WithClock(clock))

	assert.Equal(t, store.Export(), reloaded.Export())
}

// TestPersistenceFailureKeepsMutation tests that a failed save does not roll back
func TestPersistenceFailureKeepsMutation(t *testing.T) {
	slots := newFailingSlots()
	var reported []error
	store := NewStore(
		NewSlotPersistence(slots, "", nil),
		WithClock(NewFakeClock(testEpoch)),
		WithPersistErrorHandler(func(err error) { reported = append(reported, err) }),
	)

	task, err := store.Add(AddRequest{Text: "still here"})
	require.NoError(t, err)

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1, slots.writes)
	require.Len(t, reported, 1)

	var perr *PersistenceError
	require.True(t, errors.As(reported[0], &perr))
	assert.Equal(t, "save", perr.Op)

	_, ok := store.Toggle(task.ID)
	assert.True(t, ok)
	assert.Len(t, reported, 2)
}

// TestIDsStayUniqueOnCollision tests that a colliding generator is retried
func TestIDsStayUniqueOnCollision(t *testing.T) {
	ids := []string{"T-a", "T-a", "T-a", "T-b"}
	store := NewStore(
		NewSlotPersistence(NewMemorySlotStore(), "", nil),
		WithIDGenerator(func() string {
			id := ids[0]
			ids = ids[1:]
			return id
		}),
	)

	a, _ := store.Add(AddRequest{Text: "a"})
	b, _ := store.Add(AddRequest{Text: "b"})

	assert.Equal(t, "T-a", a.ID)
	assert.Equal(t, "T-b", b.ID)
}

// TestDefaultIDFormat tests the generated id shape
func TestDefaultIDFormat(t *testing.T) {
	id := generateTaskID()
	assert.Regexp(t, `^T-[0-9a-f]{8}$`, id)
}

// TestResolve tests exact and prefix lookup
func TestResolve(t *testing.T) {
	store := NewStore(NewSlotPersistence(NewMemorySlotStore(), "", nil),
		WithIDGenerator(func() func() string {
			ids := []string{"T-abc111", "T-abd222"}
			return func() string {
				id := ids[0]
				ids = ids[1:]
				return id
			}
		}()))
	store.Add(AddRequest{Text: "first"})
	store.Add(AddRequest{Text: "second"})

	task, ok := store.Resolve("T-abc111")
	require.True(t, ok)
	assert.Equal(t, "first", task.Text)

	task, ok = store.Resolve("abd")
	require.True(t, ok)
	assert.Equal(t, "second", task.Text)

	_, ok = store.Resolve("ab")
	assert.False(t, ok, "ambiguous prefix")

	_, ok = store.Resolve("zzz")
	assert.False(t, ok)
}

// TestLoadSanitizesInvariants tests that loaded data is brought back within the invariants
func TestLoadSanitizesInvariants(t *testing.T) {
	slots := NewMemorySlotStore()
	require.NoError(t, slots.Set(DefaultStorageKey, `[
		{"id":"T-1","text":"done without timestamp","completed":true,"category":"work","priority":"high","deadline":null,"recurring":"none","createdAt":1700000000000,"completedAt":null},
		{"id":"T-1","text":"duplicate id","completed":false,"category":"bogus","priority":"bogus","deadline":null,"recurring":"bogus","createdAt":1700000000000,"completedAt":1700000000000},
		{"id":"T-3","text":"   ","completed":false,"category":"other","priority":"low","deadline":null,"recurring":"none","createdAt":1700000000000,"completedAt":null}
	]`))

	store := NewStore(NewSlotPersistence(slots, "", nil), WithIDGenerator(sequentialIDs()))
	tasks := store.Export()
	require.Len(t, tasks, 2)

	assert.Equal(t, "T-1", tasks[0].ID)
	require.NotNil(t, tasks[0].CompletedAt)
	assert.Equal(t, tasks[0].CreatedAt, *tasks[0].CompletedAt)

	assert.NotEqual(t, "T-1", tasks[1].ID)
	assert.Equal(t, CategoryOther, tasks[1].Category)
	assert.Equal(t, PriorityMedium, tasks[1].Priority)
	assert.Equal(t, RecurNone, tasks[1].Recurring)
	assert.Nil(t, tasks[1].CompletedAt)
}
