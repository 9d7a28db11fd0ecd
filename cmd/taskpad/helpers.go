package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/fmizzell/taskpad"
	"github.com/fmizzell/taskpad/internal/config"
)

// loadConfig merges defaults, config file, TASKPAD_* env and global flags
func loadConfig() (config.Config, error) {
	v := config.NewViper(cfgFile)
	if err := config.ReadFile(v); err != nil {
		return config.Config{}, err
	}
	if verbose && v.ConfigFileUsed() != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", v.ConfigFileUsed())
	}

	// Flags win over every other source
	if dataDirFlag != "" {
		v.Set("data_dir", dataDirFlag)
	}
	if backendFlag != "" {
		v.Set("backend", backendFlag)
	}
	return config.Load(v)
}

// storeOptions are applied to every store a session opens
var storeOptions []taskpad.Option

// session is an App opened against the configured backend
type session struct {
	cfg       config.Config
	app       *taskpad.App
	presenter *cliPresenter
	closer    io.Closer
}

func (s *session) Close() {
	if err := s.closer.Close(); err != nil {
		slog.Warn("failed to close slot store", "error", err)
	}
}

// openSession loads config, opens the store and wires a CLI presenter
func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	store, closer, err := config.OpenStore(cfg, slog.Default(), storeOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to open task store: %w", err)
	}

	presenter := newCLIPresenter(os.Stdout, cfg.ExportDir)
	app := taskpad.NewApp(store, presenter)
	state := app.State()
	state.Sort = cfg.SortKey()
	app.SetState(state)

	return &session{cfg: cfg, app: app, presenter: presenter, closer: closer}, nil
}

// resolveTask finds a task by full ID or unique ID prefix
func resolveTask(store *taskpad.Store, ref string) (taskpad.Task, error) {
	task, ok := store.Resolve(ref)
	if !ok {
		return taskpad.Task{}, fmt.Errorf("task not found: %s", ref)
	}
	return task, nil
}

// cliPresenter prints notices and, when asked, the task list
type cliPresenter struct {
	out       io.Writer
	notices   io.Writer
	color     bool
	exportDir string

	// render controls whether Render prints; mutations only print notices
	render bool
	// exported holds the paths written by Deliver
	exported []string
}

func newCLIPresenter(out io.Writer, exportDir string) *cliPresenter {
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd())
	}
	return &cliPresenter{out: out, notices: out, color: color, exportDir: exportDir}
}

func (p *cliPresenter) Render(view taskpad.View) {
	if !p.render {
		return
	}
	printView(p.out, view, p.color)
}

var noticeIcons = map[taskpad.NoticeLevel]string{
	taskpad.NoticeSuccess: "✓",
	taskpad.NoticeInfo:    "ℹ",
	taskpad.NoticeWarning: "⚠",
	taskpad.NoticeError:   "✗",
}

var noticeColors = map[taskpad.NoticeLevel]lipgloss.Color{
	taskpad.NoticeSuccess: "46",
	taskpad.NoticeInfo:    "39",
	taskpad.NoticeWarning: "214",
	taskpad.NoticeError:   "196",
}

func (p *cliPresenter) Notify(notice taskpad.Notice) {
	line := noticeIcons[notice.Level] + " " + notice.Message
	if p.color {
		line = lipgloss.NewStyle().Foreground(noticeColors[notice.Level]).Render(line)
	}
	fmt.Fprintln(p.notices, line)
}

// Deliver writes the artifact into the export directory, or to the output
// stream when the directory is "-"
func (p *cliPresenter) Deliver(artifact taskpad.Artifact) error {
	if p.exportDir == "-" {
		_, err := fmt.Fprintln(p.out, string(artifact.Data))
		return err
	}
	if err := os.MkdirAll(p.exportDir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(p.exportDir, artifact.Name)
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	p.exported = append(p.exported, path)
	return nil
}

// printView writes the title, stats and one line per task
func printView(out io.Writer, view taskpad.View, color bool) {
	subtle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	overdue := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	paint := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	fmt.Fprintf(out, "📋 %s\n", view.Title)
	fmt.Fprintln(out, paint(subtle, formatStats(view.Stats)))
	fmt.Fprintln(out)

	if len(view.Tasks) == 0 {
		fmt.Fprintln(out, "No tasks found.")
		return
	}

	for _, task := range view.Tasks {
		icon := "○"
		if task.Completed {
			icon = "✓"
		}
		parts := []string{
			fmt.Sprintf("%s [%s] %s", icon, task.ID, task.Text),
			taskpad.CategoryLabel(task.Category),
			string(task.Priority),
		}
		if deadline := taskpad.FormatDeadline(task, view.Now); deadline != "" {
			if task.IsOverdue(view.Now) {
				deadline = paint(overdue, deadline)
			}
			parts = append(parts, deadline)
		}
		if task.Recurring != taskpad.RecurNone {
			parts = append(parts, "↻ "+string(task.Recurring))
		}
		fmt.Fprintln(out, strings.Join(parts, "  "))
	}
}

func formatStats(s taskpad.Stats) string {
	return fmt.Sprintf("%d total · %d completed · %d pending · %d overdue · %d%% done",
		s.Total, s.Completed, s.Pending, s.Overdue, s.Percent)
}

// confirm asks a yes/no question on the terminal. Non-interactive input
// counts as "no".
func confirm(in *os.File, out io.Writer, question string) bool {
	if !isatty.IsTerminal(in.Fd()) {
		return false
	}
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
