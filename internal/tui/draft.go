package tui

import (
	"strings"
	"time"

	"github.com/fmizzell/taskpad"
)

// parseDraft turns the add-mode input line into an AddRequest. Words with a
// prefix set a field and are removed from the text:
//
//	#work          category
//	!high          priority
//	*weekly        recurrence
//	due:+3h        deadline (any form ParseDeadline accepts)
func parseDraft(line string, now time.Time) (taskpad.AddRequest, error) {
	var req taskpad.AddRequest
	var words []string

	for _, word := range strings.Fields(line) {
		var err error
		switch {
		case len(word) > 1 && word[0] == '#':
			req.Category, err = taskpad.ParseCategory(word[1:])
		case len(word) > 1 && word[0] == '!':
			req.Priority, err = taskpad.ParsePriority(word[1:])
		case len(word) > 1 && word[0] == '*':
			req.Recurring, err = taskpad.ParseRecurrence(word[1:])
		case strings.HasPrefix(word, "due:") && len(word) > 4:
			req.Deadline, err = taskpad.ParseDeadline(word[4:], now)
		default:
			words = append(words, word)
		}
		if err != nil {
			return taskpad.AddRequest{}, err
		}
	}

	req.Text = strings.Join(words, " ")
	return req, nil
}
