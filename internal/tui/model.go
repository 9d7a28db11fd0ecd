// Package tui is the interactive terminal presenter for taskpad.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fmizzell/taskpad"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeSearch
	modeConfirmClear
)

var (
	statusCycle = []taskpad.StatusFilter{taskpad.StatusAll, taskpad.StatusPending, taskpad.StatusCompleted, taskpad.StatusOverdue}
	sortCycle   = []taskpad.SortKey{taskpad.SortCreated, taskpad.SortDeadline, taskpad.SortPriority, taskpad.SortCategory}
)

const noticeRefresh = 500 * time.Millisecond

// Options configures the interactive session
type Options struct {
	OverdueInterval time.Duration
	NoticeTTL       time.Duration
	ExportDir       string
	Sort            taskpad.SortKey
}

type overdueMsg time.Time

type noticeMsg time.Time

// Model is the bubbletea model around a taskpad App
type Model struct {
	app    *taskpad.App
	screen *screen
	opts   Options
	styles Styles

	mode   mode
	input  textinput.Model
	cursor int
	width  int
}

// New creates a model over store, renders the first view and runs the
// startup overdue check
func New(store *taskpad.Store, opts Options) Model {
	if opts.OverdueInterval <= 0 {
		opts.OverdueInterval = time.Minute
	}
	if opts.NoticeTTL <= 0 {
		opts.NoticeTTL = 3 * time.Second
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}

	scr := &screen{exportDir: opts.ExportDir}
	app := taskpad.NewApp(store, scr)
	if opts.Sort != "" {
		state := app.State()
		state.Sort = opts.Sort
		app.SetState(state)
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 60

	m := Model{
		app:    app,
		screen: scr,
		opts:   opts,
		styles: DefaultStyles(),
		input:  ti,
		mode:   modeList,
	}
	app.Refresh()
	app.CheckOverdue()
	return m
}

// Run starts the interactive program
func Run(store *taskpad.Store, opts Options) error {
	p := tea.NewProgram(New(store, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(overdueTick(m.opts.OverdueInterval), noticeTick())
}

func overdueTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return overdueMsg(t) })
}

func noticeTick() tea.Cmd {
	return tea.Tick(noticeRefresh, func(t time.Time) tea.Msg { return noticeMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m.updateAddMode(msg)
		case modeSearch:
			return m.updateSearchMode(msg)
		case modeConfirmClear:
			return m.updateConfirmMode(msg.String())
		default:
			return m.updateListMode(msg.String())
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-10, 20)
	case overdueMsg:
		m.app.CheckOverdue()
		m.app.Refresh()
		return m, overdueTick(m.opts.OverdueInterval)
	case noticeMsg:
		m.pruneNotices()
		// Deadline countdowns are relative to now
		m.app.Refresh()
		return m, noticeTick()
	}
	return m, nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	tasks := m.tasks()

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, len(tasks))
	case "up", "k":
		m.cursor = clampCursor(m.cursor-1, len(tasks))
	case "a":
		m.mode = modeAdd
		m.input.Placeholder = "Task  #category !priority *recurrence due:+1d"
		m.input.SetValue("")
		return m, m.input.Focus()
	case "/":
		m.mode = modeSearch
		m.input.Placeholder = "Search tasks"
		m.input.SetValue(m.app.State().Search)
		return m, m.input.Focus()
	case "esc":
		if m.app.State().Search != "" {
			_ = m.app.Dispatch(taskpad.Intent{Kind: taskpad.IntentSetSearch})
		}
	case " ", "enter", "x":
		if len(tasks) > 0 {
			_ = m.app.Dispatch(taskpad.ToggleIntent(tasks[m.cursor].ID))
		}
	case "d", "delete":
		if len(tasks) > 0 {
			_ = m.app.Dispatch(taskpad.DeleteIntent(tasks[m.cursor].ID))
		}
	case "f":
		next := cycle(statusCycle, m.app.State().Status)
		_ = m.app.Dispatch(taskpad.Intent{Kind: taskpad.IntentSetFilter, Value: string(next)})
	case "c":
		categories := append([]taskpad.Category{taskpad.CategoryAll}, taskpad.Categories...)
		next := cycle(categories, m.app.State().Category)
		_ = m.app.Dispatch(taskpad.Intent{Kind: taskpad.IntentSetCategory, Value: string(next)})
	case "s":
		next := cycle(sortCycle, m.app.State().Sort)
		_ = m.app.Dispatch(taskpad.Intent{Kind: taskpad.IntentSetSort, Value: string(next)})
	case "C":
		_ = m.app.Dispatch(taskpad.Intent{Kind: taskpad.IntentClearCompleted})
	case "X":
		if m.app.Store().Len() == 0 {
			_ = m.app.Dispatch(taskpad.ClearAllIntent(false))
			break
		}
		m.mode = modeConfirmClear
	case "e":
		_ = m.app.Dispatch(taskpad.Intent{Kind: taskpad.IntentExport})
	}

	m.cursor = clampCursor(m.cursor, len(m.tasks()))
	return m, nil
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.leaveInput()
		return m, nil
	case "enter":
		req, err := parseDraft(m.input.Value(), m.app.Store().Now())
		if err != nil {
			m.screen.Notify(taskpad.Notice{Level: taskpad.NoticeError, Message: err.Error(), At: m.app.Store().Now()})
			return m, nil
		}
		if err := m.app.Dispatch(taskpad.AddIntent(req)); err != nil {
			// The App already posted a notice; keep the draft for editing
			return m, nil
		}
		m.leaveInput()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		_ = m.app.Dispatch(taskpad.Intent{Kind: taskpad.IntentSetSearch})
		m.leaveInput()
		return m, nil
	case "enter":
		m.leaveInput()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		_ = m.app.Dispatch(taskpad.Intent{Kind: taskpad.IntentSetSearch, Value: m.input.Value()})
		m.cursor = clampCursor(m.cursor, len(m.tasks()))
		return m, cmd
	}
}

func (m Model) updateConfirmMode(key string) (tea.Model, tea.Cmd) {
	m.mode = modeList
	if key == "y" || key == "Y" {
		_ = m.app.Dispatch(taskpad.ClearAllIntent(true))
		m.cursor = 0
	}
	return m, nil
}

func (m *Model) leaveInput() {
	m.mode = modeList
	m.input.SetValue("")
	m.input.Blur()
	m.cursor = clampCursor(m.cursor, len(m.tasks()))
}

func (m *Model) pruneNotices() {
	now := m.app.Store().Now()
	kept := m.screen.notices[:0]
	for _, n := range m.screen.notices {
		if !n.Expired(now, m.opts.NoticeTTL) {
			kept = append(kept, n)
		}
	}
	m.screen.notices = kept
}

func (m Model) tasks() []taskpad.Task {
	return m.screen.view.Tasks
}

func (m Model) View() string {
	var b strings.Builder
	view := m.screen.view

	b.WriteString(m.styles.Title.Render(view.Title))
	b.WriteString("\n")
	b.WriteString(m.renderStats(view.Stats))
	b.WriteString("\n\n")

	if len(view.Tasks) == 0 {
		b.WriteString(m.styles.Subtle.Render("No tasks here. Press a to add one."))
		b.WriteString("\n")
	}
	for i, task := range view.Tasks {
		b.WriteString(m.renderTask(task, i == m.cursor, view.Now))
		b.WriteString("\n")
	}

	switch m.mode {
	case modeAdd, modeSearch:
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case modeConfirmClear:
		b.WriteString("\n")
		b.WriteString(m.styles.Overdue.Render("Are you sure you want to delete all tasks? This action cannot be undone. (y/n)"))
		b.WriteString("\n")
	}

	if len(m.screen.notices) > 0 {
		b.WriteString("\n")
		for _, n := range m.screen.notices {
			b.WriteString(m.styles.Notice[n.Level].Render(n.Message))
			b.WriteString("\n")
		}
	}

	b.WriteString(m.styles.Help.Render(m.help()))
	return b.String()
}

func (m Model) renderStats(s taskpad.Stats) string {
	const barWidth = 20
	filled := barWidth * s.Percent / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return m.styles.Stats.Render(fmt.Sprintf("%d total · %d done · %d pending · %d overdue  %s %d%%",
		s.Total, s.Completed, s.Pending, s.Overdue, bar, s.Percent))
}

func (m Model) renderTask(task taskpad.Task, selected bool, now time.Time) string {
	cursor := "  "
	if selected {
		cursor = m.styles.Cursor.Render("› ")
	}
	check := "[ ]"
	text := task.Text
	if task.Completed {
		check = "[x]"
		text = m.styles.Done.Render(text)
	}

	parts := []string{
		check,
		text,
		m.styles.Subtle.Render(taskpad.CategoryLabel(task.Category)),
		m.styles.Priority[task.Priority].Render(string(task.Priority)),
	}
	if deadline := taskpad.FormatDeadline(task, now); deadline != "" {
		if task.IsOverdue(now) {
			deadline = m.styles.Overdue.Render(deadline)
		}
		parts = append(parts, deadline)
	}
	if task.Recurring != taskpad.RecurNone {
		parts = append(parts, m.styles.Subtle.Render("↻ "+string(task.Recurring)))
	}
	return cursor + strings.Join(parts, "  ")
}

func (m Model) help() string {
	switch m.mode {
	case modeAdd:
		return "enter: add • esc: cancel"
	case modeSearch:
		return "enter: keep • esc: clear"
	case modeConfirmClear:
		return "y: clear all • any key: cancel"
	}
	state := m.app.State()
	return fmt.Sprintf("a: add • space: toggle • d: delete • /: search • f: %s • c: %s • s: sort %s • C: clear done • X: clear all • e: export • q: quit",
		state.Status, state.Category, state.Sort)
}

func cycle[T comparable](values []T, current T) T {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
