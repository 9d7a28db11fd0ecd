package taskpad

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Category groups tasks. The set is closed.
type Category string

const (
	CategoryPersonal Category = "personal"
	CategoryWork     Category = "work"
	CategoryHealth   Category = "health"
	CategoryLearning Category = "learning"
	CategoryShopping Category = "shopping"
	CategoryOther    Category = "other"
)

// Categories lists every category in display order
var Categories = []Category{
	CategoryPersonal,
	CategoryWork,
	CategoryHealth,
	CategoryLearning,
	CategoryShopping,
	CategoryOther,
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory parses a category name, defaulting empty input to "other"
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryOther, nil
	}
	c := Category(s)
	if !c.Valid() {
		return "", &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", s)}
	}
	return c, nil
}

// Priority is the urgency of a task
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank orders priorities: high=3, medium=2, low=1
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether p is a known priority
func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// ParsePriority parses a priority name, defaulting empty input to "medium"
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PriorityMedium, nil
	}
	p := Priority(s)
	if !p.Valid() {
		return "", &ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown priority %q", s)}
	}
	return p, nil
}

// Recurrence controls whether completing a task schedules a successor
type Recurrence string

const (
	RecurNone    Recurrence = "none"
	RecurDaily   Recurrence = "daily"
	RecurWeekly  Recurrence = "weekly"
	RecurMonthly Recurrence = "monthly"
)

// Valid reports whether r is a known recurrence
func (r Recurrence) Valid() bool {
	switch r {
	case RecurNone, RecurDaily, RecurWeekly, RecurMonthly:
		return true
	}
	return false
}

// ParseRecurrence parses a recurrence name, defaulting empty input to "none"
func ParseRecurrence(s string) (Recurrence, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RecurNone, nil
	}
	r := Recurrence(s)
	if !r.Valid() {
		return "", &ValidationError{Field: "recurring", Reason: fmt.Sprintf("unknown recurrence %q", s)}
	}
	return r, nil
}

// Next returns the deadline of the next occurrence, anchored at now
func (r Recurrence) Next(now time.Time) (time.Time, bool) {
	switch r {
	case RecurDaily:
		return now.AddDate(0, 0, 1), true
	case RecurWeekly:
		return now.AddDate(0, 0, 7), true
	case RecurMonthly:
		return now.AddDate(0, 1, 0), true
	default:
		return time.Time{}, false
	}
}

// Task represents a task in the list
type Task struct {
	ID          string
	Text        string
	Completed   bool
	Category    Category
	Priority    Priority
	Deadline    *time.Time
	Recurring   Recurrence
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// IsOverdue reports whether the task is pending with a deadline before now
func (t Task) IsOverdue(now time.Time) bool {
	return !t.Completed && t.Deadline != nil && t.Deadline.Before(now)
}

// clone returns a copy that shares no pointers with t
func (t Task) clone() Task {
	c := t
	if t.Deadline != nil {
		d := *t.Deadline
		c.Deadline = &d
	}
	if t.CompletedAt != nil {
		d := *t.CompletedAt
		c.CompletedAt = &d
	}
	return c
}

// taskJSON is the persisted shape: camelCase keys, instants as Unix milliseconds
type taskJSON struct {
	ID          json.RawMessage `json:"id"`
	Text        string          `json:"text"`
	Completed   bool            `json:"completed"`
	Category    Category        `json:"category"`
	Priority    Priority        `json:"priority"`
	Deadline    *int64          `json:"deadline"`
	Recurring   Recurrence      `json:"recurring"`
	CreatedAt   int64           `json:"createdAt"`
	CompletedAt *int64          `json:"completedAt"`
}

// MarshalJSON implements json.Marshaler
func (t Task) MarshalJSON() ([]byte, error) {
	id, err := json.Marshal(t.ID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(taskJSON{
		ID:          id,
		Text:        t.Text,
		Completed:   t.Completed,
		Category:    t.Category,
		Priority:    t.Priority,
		Deadline:    toMillis(t.Deadline),
		Recurring:   t.Recurring,
		CreatedAt:   t.CreatedAt.UnixMilli(),
		CompletedAt: toMillis(t.CompletedAt),
	})
}

// UnmarshalJSON implements json.Unmarshaler. Numeric IDs are kept as their
// decimal text.
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw taskJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, err := decodeID(raw.ID)
	if err != nil {
		return err
	}

	*t = Task{
		ID:          id,
		Text:        raw.Text,
		Completed:   raw.Completed,
		Category:    raw.Category,
		Priority:    raw.Priority,
		Deadline:    fromMillis(raw.Deadline),
		Recurring:   raw.Recurring,
		CreatedAt:   time.UnixMilli(raw.CreatedAt).UTC(),
		CompletedAt: fromMillis(raw.CompletedAt),
	}
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("invalid task id %s: %w", raw, err)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return "", fmt.Errorf("invalid task id %s: %w", raw, err)
	}
	return n.String(), nil
}

func toMillis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func fromMillis(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms).UTC()
	return &t
}
