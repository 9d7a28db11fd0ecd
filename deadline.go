package taskpad

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var deadlineLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDeadline parses a user-entered deadline in the local zone. Accepted
// forms are absolute dates ("2025-03-12", "2025-03-12T15:04") and offsets from
// now ("+3h", "+90m", "+2d"). Empty input means no deadline.
func ParseDeadline(s string, now time.Time) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if strings.HasPrefix(s, "+") {
		d, err := parseOffset(s[1:])
		if err != nil {
			return nil, &ValidationError{Field: "deadline", Reason: err.Error()}
		}
		t := now.Add(d)
		return &t, nil
	}

	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, &ValidationError{Field: "deadline", Reason: fmt.Sprintf("cannot parse %q (use YYYY-MM-DD, YYYY-MM-DDTHH:MM or +N[mhd])", s)}
}

func parseOffset(s string) (time.Duration, error) {
	if n, ok := strings.CutSuffix(s, "d"); ok {
		days, err := strconv.Atoi(n)
		if err != nil || days < 0 {
			return 0, fmt.Errorf("invalid day offset %q", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid offset %q", s)
	}
	return d, nil
}
