package taskpad

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

var categoryLabels = map[Category]string{
	CategoryPersonal: "👤 Personal",
	CategoryWork:     "💼 Work",
	CategoryHealth:   "🏃 Health",
	CategoryLearning: "📚 Learning",
	CategoryShopping: "🛒 Shopping",
	CategoryOther:    "📝 Other",
}

// CategoryLabel returns the display name of a category
func CategoryLabel(c Category) string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// FormatDeadline describes a task's deadline relative to now. Tasks without a
// deadline return "".
func FormatDeadline(t Task, now time.Time) string {
	if t.Deadline == nil {
		return ""
	}

	diff := t.Deadline.Sub(now)
	if diff < 0 {
		if t.Completed {
			return "Was due " + t.Deadline.Local().Format("Jan 2 15:04")
		}
		days, hours := splitDays(-diff)
		return fmt.Sprintf("⚠️ Overdue by %dd %dh", days, hours)
	}

	days, hours := splitDays(diff)
	switch days {
	case 0:
		return fmt.Sprintf("⏰ Due in %dh", hours)
	case 1:
		return "⏰ Due tomorrow"
	default:
		return fmt.Sprintf("⏰ Due in %dd", days)
	}
}

func splitDays(d time.Duration) (days, hours int) {
	const day = 24 * time.Hour
	return int(d / day), int((d % day) / time.Hour)
}

// Title names the list shown for state. Search wins over category, category
// wins over status.
func Title(state ViewState) string {
	title := "All Tasks"
	if state.Status != "" && state.Status != StatusAll {
		title = capitalize(string(state.Status)) + " Tasks"
	}
	if state.Category != "" && state.Category != CategoryAll {
		title = capitalize(string(state.Category)) + " Tasks"
	}
	if state.Search != "" {
		title = `Search Results for "` + strings.ToLower(state.Search) + `"`
	}
	return title
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Artifact is a named, downloadable export
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

// ExportArtifact serialises tasks as pretty-printed JSON named after the date
// of now in UTC: tasks-YYYY-MM-DD.json
func ExportArtifact(tasks []Task, now time.Time) (Artifact, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to encode export: %w", err)
	}
	return Artifact{
		Name:        fmt.Sprintf("tasks-%s.json", now.UTC().Format("2006-01-02")),
		ContentType: "application/json",
		Data:        data,
	}, nil
}
