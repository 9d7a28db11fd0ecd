package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/fmizzell/taskpad"
)

// Styles contains the visual styling for the task list.
type Styles struct {
	Title    lipgloss.Style
	Stats    lipgloss.Style
	Cursor   lipgloss.Style
	Done     lipgloss.Style
	Overdue  lipgloss.Style
	Subtle   lipgloss.Style
	Help     lipgloss.Style
	Priority map[taskpad.Priority]lipgloss.Style
	Notice   map[taskpad.NoticeLevel]lipgloss.Style
}

// DefaultStyles returns the default styling.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1),
		Stats:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Cursor:  lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true),
		Done:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true),
		Overdue: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Subtle:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
		Priority: map[taskpad.Priority]lipgloss.Style{
			taskpad.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			taskpad.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			taskpad.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		},
		Notice: map[taskpad.NoticeLevel]lipgloss.Style{
			taskpad.NoticeSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
			taskpad.NoticeInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
			taskpad.NoticeWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			taskpad.NoticeError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		},
	}
}
