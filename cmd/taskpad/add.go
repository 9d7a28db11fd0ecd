package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fmizzell/taskpad"
)

var (
	addCategory string
	addPriority string
	addDue      string
	addRepeat   string
)

var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a new task",
	Long: `Add a new task. Deadlines accept YYYY-MM-DD, YYYY-MM-DDTHH:MM or an
offset from now such as +3h, +90m or +2d.`,
	Args: cobra.MinimumNArgs(1),
	RunE: addTask,
}

func init() {
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "other", "personal, work, health, learning, shopping or other")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "medium", "low, medium or high")
	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "deadline")
	addCmd.Flags().StringVarP(&addRepeat, "repeat", "r", "none", "none, daily, weekly or monthly")
}

func addTask(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	now := s.app.Store().Now()
	deadline, err := taskpad.ParseDeadline(addDue, now)
	if err != nil {
		s.presenter.Notify(taskpad.Notice{Level: taskpad.NoticeError, Message: err.Error(), At: now})
		return err
	}

	req := taskpad.AddRequest{
		Text:      strings.Join(args, " "),
		Category:  taskpad.Category(addCategory),
		Priority:  taskpad.Priority(addPriority),
		Deadline:  deadline,
		Recurring: taskpad.Recurrence(addRepeat),
	}
	if err := s.app.Dispatch(taskpad.AddIntent(req)); err != nil {
		return err
	}

	tasks := s.app.Store().Export()
	task := tasks[len(tasks)-1]
	fmt.Printf("  ID: %s\n", task.ID)
	fmt.Printf("  %s · %s", taskpad.CategoryLabel(task.Category), task.Priority)
	if d := taskpad.FormatDeadline(task, s.app.Store().Now()); d != "" {
		fmt.Printf(" · %s", d)
	}
	if task.Recurring != taskpad.RecurNone {
		fmt.Printf(" · ↻ %s", task.Recurring)
	}
	fmt.Println()
	return nil
}
