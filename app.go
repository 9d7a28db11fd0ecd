package taskpad

import (
	"errors"
	"fmt"
	"time"
)

// View is everything a presenter needs to draw the list
type View struct {
	Tasks []Task
	Stats Stats
	Title string
	State ViewState
	Now   time.Time
}

// Presenter renders views, shows transient notices and delivers export
// artifacts. It also owns any confirmation prompt; the store never asks.
type Presenter interface {
	Render(view View)
	Notify(notice Notice)
	Deliver(artifact Artifact) error
}

// App wires the single Store to a Presenter and holds the ephemeral view
// state. Every intent flows: mutation → persist → recompute view → render.
type App struct {
	store     *Store
	state     ViewState
	presenter Presenter
}

// NewApp creates an App around store. Persistence failures reported by the
// store are surfaced to the presenter as info notices.
func NewApp(store *Store, presenter Presenter) *App {
	a := &App{
		store:     store,
		state:     DefaultViewState(),
		presenter: presenter,
	}
	store.OnPersistError(a.persistFailed)
	return a
}

// Store returns the owned store
func (a *App) Store() *Store {
	return a.store
}

// State returns the current view state
func (a *App) State() ViewState {
	return a.state
}

// SetState replaces the view state without rendering
func (a *App) SetState(state ViewState) {
	a.state = state
}

// View computes the current derived view
func (a *App) View() View {
	return View{
		Tasks: a.store.Query(a.state),
		Stats: a.store.Stats(),
		Title: Title(a.state),
		State: a.state,
		Now:   a.store.Now(),
	}
}

// Refresh renders the current view
func (a *App) Refresh() {
	a.presenter.Render(a.View())
}

// Dispatch is the single entry point for user intents
func (a *App) Dispatch(in Intent) error {
	switch in.Kind {
	case IntentAdd:
		return a.add(in.Add)
	case IntentToggle:
		a.toggle(in.TaskID)
	case IntentDelete:
		if a.store.Delete(in.TaskID) {
			a.notify(NoticeInfo, "Task deleted successfully!")
		}
	case IntentSetFilter:
		status, err := ParseStatusFilter(in.Value)
		if err != nil {
			return a.reject(err)
		}
		a.state.Status = status
	case IntentSetCategory:
		category, err := ParseCategoryFilter(in.Value)
		if err != nil {
			return a.reject(err)
		}
		a.state.Category = category
	case IntentSetSearch:
		a.state.Search = in.Value
	case IntentSetSort:
		key, err := ParseSortKey(in.Value)
		if err != nil {
			return a.reject(err)
		}
		a.state.Sort = key
	case IntentClearCompleted:
		n := a.store.ClearCompleted()
		a.notify(NoticeInfo, fmt.Sprintf("%d completed tasks cleared!", n))
	case IntentClearAll:
		return a.clearAll(in.Confirmed)
	case IntentExport:
		return a.export()
	default:
		return fmt.Errorf("unknown intent: %q", in.Kind)
	}

	a.Refresh()
	return nil
}

func (a *App) add(req AddRequest) error {
	if _, err := a.store.Add(req); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) && verr.Field == "text" {
			a.notify(NoticeError, "Please enter a task description")
			return err
		}
		return a.reject(err)
	}
	a.Refresh()
	a.notify(NoticeSuccess, "Task added successfully!")
	return nil
}

func (a *App) toggle(id string) {
	result, ok := a.store.Toggle(id)
	if !ok {
		return
	}
	if result.Successor != nil {
		a.notify(NoticeInfo, fmt.Sprintf("Next %s task created!", result.Task.Recurring))
	}
	if result.Task.Completed {
		a.notify(NoticeSuccess, "Task completed!")
	} else {
		a.notify(NoticeSuccess, "Task marked as pending")
	}
}

func (a *App) clearAll(confirmed bool) error {
	if a.store.Len() == 0 {
		a.notify(NoticeWarning, "No tasks to clear!")
		return nil
	}
	n, err := a.store.ClearAll(confirmed)
	if err != nil {
		return err
	}
	a.Refresh()
	a.notify(NoticeInfo, fmt.Sprintf("%d tasks cleared!", n))
	return nil
}

func (a *App) export() error {
	artifact, err := ExportArtifact(a.store.Export(), a.store.Now())
	if err != nil {
		return a.reject(err)
	}
	if err := a.presenter.Deliver(artifact); err != nil {
		a.notify(NoticeError, "Export failed: "+err.Error())
		return fmt.Errorf("failed to deliver export: %w", err)
	}
	a.notify(NoticeSuccess, "Tasks exported successfully!")
	return nil
}

// CheckOverdue warns about pending tasks past their deadline and returns how
// many there are. Presenters call it at startup and on a fixed interval.
func (a *App) CheckOverdue() int {
	n := a.store.Stats().Overdue
	if n > 0 {
		a.notify(NoticeWarning, fmt.Sprintf("You have %d overdue task(s)!", n))
	}
	return n
}

func (a *App) reject(err error) error {
	a.notify(NoticeError, err.Error())
	return err
}

func (a *App) persistFailed(err error) {
	a.notify(NoticeInfo, "Changes could not be saved")
}

func (a *App) notify(level NoticeLevel, message string) {
	a.presenter.Notify(Notice{Level: level, Message: message, At: a.store.Now()})
}
