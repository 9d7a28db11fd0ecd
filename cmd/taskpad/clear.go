package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fmizzell/taskpad"
)

var clearAllYes bool

var clearCompletedCmd = &cobra.Command{
	Use:   "clear-completed",
	Short: "Remove every completed task",
	Args:  cobra.NoArgs,
	RunE:  clearCompleted,
}

var clearAllCmd = &cobra.Command{
	Use:   "clear-all",
	Short: "Remove every task",
	Long:  `Remove every task. Asks for confirmation unless --yes is given; without a terminal and without --yes nothing is removed.`,
	Args:  cobra.NoArgs,
	RunE:  clearAll,
}

func init() {
	clearAllCmd.Flags().BoolVarP(&clearAllYes, "yes", "y", false, "skip the confirmation prompt")
}

func clearCompleted(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	return s.app.Dispatch(taskpad.Intent{Kind: taskpad.IntentClearCompleted})
}

func clearAll(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	confirmed := clearAllYes
	if !confirmed && s.app.Store().Len() > 0 {
		confirmed = confirm(os.Stdin, os.Stdout, "Are you sure you want to delete all tasks? This action cannot be undone.")
	}

	err = s.app.Dispatch(taskpad.ClearAllIntent(confirmed))
	if errors.Is(err, taskpad.ErrNotConfirmed) {
		fmt.Println("Aborted, no tasks were removed.")
		return nil
	}
	return err
}
