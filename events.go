package taskpad

import "time"

// IntentKind names a user intent surfaced by a presenter
type IntentKind string

const (
	IntentAdd            IntentKind = "add"
	IntentToggle         IntentKind = "toggle"
	IntentDelete         IntentKind = "delete"
	IntentSetFilter      IntentKind = "set_filter"
	IntentSetCategory    IntentKind = "set_category"
	IntentSetSearch      IntentKind = "set_search"
	IntentSetSort        IntentKind = "set_sort"
	IntentClearCompleted IntentKind = "clear_completed"
	IntentClearAll       IntentKind = "clear_all"
	IntentExport         IntentKind = "export"
)

// Intent is one user action. Only the fields relevant to Kind are read.
type Intent struct {
	Kind IntentKind

	// TaskID is read by toggle and delete
	TaskID string

	// Value is read by set_filter, set_category, set_search and set_sort
	Value string

	// Add is read by add
	Add AddRequest

	// Confirmed must be true for clear_all to remove anything
	Confirmed bool
}

func AddIntent(req AddRequest) Intent { return Intent{Kind: IntentAdd, Add: req} }

func ToggleIntent(id string) Intent { return Intent{Kind: IntentToggle, TaskID: id} }

func DeleteIntent(id string) Intent { return Intent{Kind: IntentDelete, TaskID: id} }

func ClearAllIntent(confirmed bool) Intent {
	return Intent{Kind: IntentClearAll, Confirmed: confirmed}
}

// NoticeLevel is the severity of a transient message
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a transient user-facing message
type Notice struct {
	Level   NoticeLevel
	Message string
	At      time.Time
}

// Expired reports whether the notice has outlived ttl at now
func (n Notice) Expired(now time.Time, ttl time.Duration) bool {
	return !now.Before(n.At.Add(ttl))
}
