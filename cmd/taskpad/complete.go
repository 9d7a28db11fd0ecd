package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fmizzell/taskpad"
)

var toggleCmd = &cobra.Command{
	Use:     "toggle <task-id>",
	Aliases: []string{"done", "complete"},
	Short:   "Toggle a task between pending and completed",
	Long: `Toggle a task between pending and completed. Completing a recurring task
creates its next occurrence. The task ID may be shortened to any unique prefix.`,
	Args: cobra.ExactArgs(1),
	RunE: toggleTask,
}

var deleteCmd = &cobra.Command{
	Use:     "delete <task-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE:    deleteTask,
}

func toggleTask(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	task, err := resolveTask(s.app.Store(), args[0])
	if err != nil {
		return err
	}
	if err := s.app.Dispatch(taskpad.ToggleIntent(task.ID)); err != nil {
		return err
	}
	fmt.Printf("  [%s] %s\n", task.ID, task.Text)
	return nil
}

func deleteTask(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	task, err := resolveTask(s.app.Store(), args[0])
	if err != nil {
		return err
	}
	if err := s.app.Dispatch(taskpad.DeleteIntent(task.ID)); err != nil {
		return err
	}
	fmt.Printf("  [%s] %s\n", task.ID, task.Text)
	return nil
}
