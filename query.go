package taskpad

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// StatusFilter selects tasks by completion state
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPending   StatusFilter = "pending"
	StatusCompleted StatusFilter = "completed"
	StatusOverdue   StatusFilter = "overdue"
)

// ParseStatusFilter parses a status filter, defaulting empty input to "all"
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch f := StatusFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return StatusAll, nil
	case StatusAll, StatusPending, StatusCompleted, StatusOverdue:
		return f, nil
	default:
		return "", &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status filter %q", s)}
	}
}

// CategoryAll disables the category filter
const CategoryAll Category = "all"

// ParseCategoryFilter parses a category filter; "all" or empty matches every category
func ParseCategoryFilter(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == string(CategoryAll) {
		return CategoryAll, nil
	}
	return ParseCategory(s)
}

// SortKey orders the projected list
type SortKey string

const (
	SortCreated  SortKey = "created"
	SortDeadline SortKey = "deadline"
	SortPriority SortKey = "priority"
	SortCategory SortKey = "category"
)

// ParseSortKey parses a sort key, defaulting empty input to "created"
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortCreated, nil
	case SortCreated, SortDeadline, SortPriority, SortCategory:
		return k, nil
	default:
		return "", &ValidationError{Field: "sort", Reason: fmt.Sprintf("unknown sort key %q", s)}
	}
}

// ViewState is the ephemeral filter/sort selection. It is never persisted.
type ViewState struct {
	Status   StatusFilter
	Category Category
	Search   string
	Sort     SortKey
}

// DefaultViewState shows every task, newest first
func DefaultViewState() ViewState {
	return ViewState{
		Status:   StatusAll,
		Category: CategoryAll,
		Sort:     SortCreated,
	}
}

// Stats summarises the collection
type Stats struct {
	Total     int
	Completed int
	Pending   int
	Overdue   int
	// Percent is the rounded share of completed tasks, 0 when empty
	Percent int
}

// Query returns the filtered, sorted tasks for state. It does not mutate the
// store or state.
func (s *Store) Query(state ViewState) []Task {
	now := s.clock.Now()
	query := strings.ToLower(state.Search)

	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if query != "" &&
			!strings.Contains(strings.ToLower(t.Text), query) &&
			!strings.Contains(strings.ToLower(string(t.Category)), query) {
			continue
		}

		switch state.Status {
		case StatusPending:
			if t.Completed {
				continue
			}
		case StatusCompleted:
			if !t.Completed {
				continue
			}
		case StatusOverdue:
			if !t.IsOverdue(now) {
				continue
			}
		}

		if state.Category != "" && state.Category != CategoryAll && t.Category != state.Category {
			continue
		}

		out = append(out, t.clone())
	}

	sortTasks(out, state.Sort)
	return out
}

// sortTasks sorts in place. The sort is stable, so ties keep insertion order.
func sortTasks(tasks []Task, key SortKey) {
	switch key {
	case SortDeadline:
		sort.SliceStable(tasks, func(i, j int) bool {
			a, b := tasks[i].Deadline, tasks[j].Deadline
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.Before(*b)
			}
		})
	case SortPriority:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Priority.Rank() > tasks[j].Priority.Rank()
		})
	case SortCategory:
		col := collate.New(language.English)
		sort.SliceStable(tasks, func(i, j int) bool {
			return col.CompareString(string(tasks[i].Category), string(tasks[j].Category)) < 0
		})
	default:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
	}
}

// Stats counts tasks against the current time
func (s *Store) Stats() Stats {
	now := s.clock.Now()
	st := Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			st.Completed++
		}
		if t.IsOverdue(now) {
			st.Overdue++
		}
	}
	st.Pending = st.Total - st.Completed
	if st.Total > 0 {
		st.Percent = int(math.Round(float64(st.Completed) / float64(st.Total) * 100))
	}
	return st
}

// Overdue returns the pending tasks whose deadline has passed
func (s *Store) Overdue() []Task {
	state := DefaultViewState()
	state.Status = StatusOverdue
	state.Sort = SortDeadline
	return s.Query(state)
}
