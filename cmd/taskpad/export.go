package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fmizzell/taskpad"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every task as JSON",
	Long:  `Write every task to tasks-YYYY-MM-DD.json in the export directory. Use -o - to print the JSON instead.`,
	Args:  cobra.NoArgs,
	RunE:  exportTasks,
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "output", "o", "", "export directory, or - for stdout (default from config)")
}

func exportTasks(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if exportDir != "" {
		s.presenter.exportDir = exportDir
	}
	if s.presenter.exportDir == "-" {
		// Keep stdout valid JSON
		s.presenter.notices = os.Stderr
	}

	if err := s.app.Dispatch(taskpad.Intent{Kind: taskpad.IntentExport}); err != nil {
		return err
	}
	for _, path := range s.presenter.exported {
		fmt.Printf("  %s\n", path)
	}
	return nil
}
