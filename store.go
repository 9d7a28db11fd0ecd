package taskpad

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store owns the task collection. It is driven by a single actor and takes
// no locks; every mutation flushes a snapshot to the Persistence port.
type Store struct {
	tasks   []Task
	persist Persistence
	clock   Clock
	logger  *slog.Logger
	newID   func() string

	onPersistError func(error)
}

// Option configures a Store
type Option func(*Store)

// WithClock sets the time source used for createdAt, completion, recurrence
// and overdue checks
func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithLogger sets the observability sink for persistence failures
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithIDGenerator replaces the default ID generator. The store still retries
// until the ID is unused.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithPersistErrorHandler registers a callback for failed loads and saves
func WithPersistErrorHandler(fn func(error)) Option {
	return func(s *Store) { s.onPersistError = fn }
}

// OnPersistError replaces the persistence failure callback
func (s *Store) OnPersistError(fn func(error)) {
	s.onPersistError = fn
}

// AddRequest holds the fields of a new task. Zero enum values take their
// defaults (other, medium, none).
type AddRequest struct {
	Text      string
	Category  Category
	Priority  Priority
	Deadline  *time.Time
	Recurring Recurrence
}

// ToggleResult describes a completed toggle
type ToggleResult struct {
	Task Task
	// Successor is the next occurrence of a recurring task that was just completed
	Successor *Task
}

// NewStore creates a store and loads the persisted snapshot
func NewStore(p Persistence, opts ...Option) *Store {
	s := &Store{
		persist: p,
		clock:   RealClock{},
		logger:  slog.Default(),
		newID:   generateTaskID,
	}
	for _, opt := range opts {
		opt(s)
	}

	loaded, err := p.Load()
	if err != nil {
		s.reportPersistError(err)
	}
	s.tasks = s.sanitize(loaded)
	return s
}

// Len returns the number of tasks
func (s *Store) Len() int {
	return len(s.tasks)
}

// Now returns the store's current time
func (s *Store) Now() time.Time {
	return s.clock.Now()
}

// Get returns the task with id
func (s *Store) Get(id string) (Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i].clone(), true
}

// Resolve finds a task by exact ID or unique ID prefix
func (s *Store) Resolve(ref string) (Task, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Task{}, false
	}
	if t, ok := s.Get(ref); ok {
		return t, true
	}

	match := -1
	for i, t := range s.tasks {
		if strings.HasPrefix(t.ID, ref) || strings.HasPrefix(strings.TrimPrefix(t.ID, "T-"), ref) {
			if match >= 0 {
				return Task{}, false
			}
			match = i
		}
	}
	if match < 0 {
		return Task{}, false
	}
	return s.tasks[match].clone(), true
}

// Add validates and appends a new task
func (s *Store) Add(req AddRequest) (Task, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return Task{}, &ValidationError{Field: "text", Reason: "task description is empty"}
	}

	category, err := ParseCategory(string(req.Category))
	if err != nil {
		return Task{}, err
	}
	priority, err := ParsePriority(string(req.Priority))
	if err != nil {
		return Task{}, err
	}
	recurring, err := ParseRecurrence(string(req.Recurring))
	if err != nil {
		return Task{}, err
	}

	task := Task{
		ID:        s.uniqueID(),
		Text:      text,
		Category:  category,
		Priority:  priority,
		Recurring: recurring,
		CreatedAt: s.clock.Now(),
	}
	if req.Deadline != nil {
		d := *req.Deadline
		task.Deadline = &d
	}

	s.tasks = append(s.tasks, task)
	s.save()
	return task.clone(), nil
}

// Delete removes the task with id. A missing id is a no-op and returns false.
func (s *Store) Delete(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.save()
	return true
}

// Toggle flips a task's completion. Completing a recurring task appends its
// next occurrence. A missing id is a no-op and returns false.
func (s *Store) Toggle(id string) (ToggleResult, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return ToggleResult{}, false
	}

	now := s.clock.Now()
	task := &s.tasks[i]
	task.Completed = !task.Completed

	var result ToggleResult
	if task.Completed {
		completedAt := now
		task.CompletedAt = &completedAt

		if next, ok := s.successor(*task, now); ok {
			s.tasks = append(s.tasks, next)
			task = &s.tasks[i]
			result.Successor = &next
		}
	} else {
		task.CompletedAt = nil
	}

	result.Task = task.clone()
	if result.Successor != nil {
		succ := result.Successor.clone()
		result.Successor = &succ
	}

	s.save()
	return result, true
}

// successor builds the next occurrence of a recurring task. The deadline is
// anchored at the completion time, not the previous deadline.
func (s *Store) successor(done Task, now time.Time) (Task, bool) {
	deadline, ok := done.Recurring.Next(now)
	if !ok {
		return Task{}, false
	}
	return Task{
		ID:        s.uniqueID(),
		Text:      done.Text,
		Category:  done.Category,
		Priority:  done.Priority,
		Deadline:  &deadline,
		Recurring: done.Recurring,
		CreatedAt: now,
	}, true
}

// ClearCompleted removes every completed task and returns how many were removed
func (s *Store) ClearCompleted() int {
	kept := s.tasks[:0]
	removed := 0
	for _, t := range s.tasks {
		if t.Completed {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	s.save()
	return removed
}

// ClearAll removes every task. The caller must pass confirmed=true; the store
// never prompts.
func (s *Store) ClearAll(confirmed bool) (int, error) {
	if !confirmed {
		return 0, ErrNotConfirmed
	}
	removed := len(s.tasks)
	s.tasks = []Task{}
	s.save()
	return removed, nil
}

// Export returns a copy of every task in insertion order
func (s *Store) Export() []Task {
	out := make([]Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.clone()
	}
	return out
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
}

// save flushes the snapshot. Failures are logged and reported, never rolled back.
func (s *Store) save() {
	if err := s.persist.Save(s.Export()); err != nil {
		s.reportPersistError(err)
	}
}

func (s *Store) reportPersistError(err error) {
	s.logger.Error("persisting tasks failed", "error", err)
	if s.onPersistError != nil {
		s.onPersistError(err)
	}
}

// sanitize restores the Task invariants on loaded data: non-empty text, known
// enum values, completedAt iff completed, unique IDs.
func (s *Store) sanitize(loaded []Task) []Task {
	out := make([]Task, 0, len(loaded))
	seen := make(map[string]bool, len(loaded))
	dropped := 0

	for _, t := range loaded {
		t.Text = strings.TrimSpace(t.Text)
		if t.Text == "" {
			dropped++
			continue
		}
		if !t.Category.Valid() {
			t.Category = CategoryOther
		}
		if !t.Priority.Valid() {
			t.Priority = PriorityMedium
		}
		if !t.Recurring.Valid() {
			t.Recurring = RecurNone
		}
		if t.Completed && t.CompletedAt == nil {
			completedAt := t.CreatedAt
			t.CompletedAt = &completedAt
		}
		if !t.Completed {
			t.CompletedAt = nil
		}
		if t.ID == "" || seen[t.ID] {
			for t.ID == "" || seen[t.ID] {
				t.ID = s.newID()
			}
		}
		seen[t.ID] = true
		out = append(out, t)
	}

	if dropped > 0 {
		s.logger.Warn("dropped tasks with empty text", "count", dropped)
	}
	return out
}

func generateTaskID() string {
	// Generate short UUID-based ID
	return "T-" + uuid.New().String()[:8]
}
