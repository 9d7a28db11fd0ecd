package main

import (
	"github.com/spf13/cobra"

	"github.com/fmizzell/taskpad"
)

var (
	statusFilter   string
	categoryFilter string
	searchFilter   string
	sortFlag       string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long:    `List tasks, optionally filtered by status, category or a search term and sorted by created, deadline, priority or category.`,
	RunE:    listTasks,
}

func init() {
	listCmd.Flags().StringVarP(&statusFilter, "status", "s", "all", "all, pending, completed or overdue")
	listCmd.Flags().StringVarP(&categoryFilter, "category", "c", "all", "category to show, or all")
	listCmd.Flags().StringVarP(&searchFilter, "search", "q", "", "case-insensitive text or category match")
	listCmd.Flags().StringVar(&sortFlag, "sort", "", "created, deadline, priority or category (default from config)")
}

func listTasks(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	intents := []taskpad.Intent{
		{Kind: taskpad.IntentSetFilter, Value: statusFilter},
		{Kind: taskpad.IntentSetCategory, Value: categoryFilter},
		{Kind: taskpad.IntentSetSearch, Value: searchFilter},
	}
	if sortFlag != "" {
		intents = append(intents, taskpad.Intent{Kind: taskpad.IntentSetSort, Value: sortFlag})
	}
	for _, in := range intents {
		if err := s.app.Dispatch(in); err != nil {
			return err
		}
	}

	s.presenter.render = true
	s.app.Refresh()
	return nil
}
