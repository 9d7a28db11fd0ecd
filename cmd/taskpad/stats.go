package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fmizzell/taskpad"
	"github.com/fmizzell/taskpad/internal/config"
	"github.com/fmizzell/taskpad/internal/tui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task counts and completion progress",
	Args:  cobra.NoArgs,
	RunE:  showStats,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive task list",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  showConfig,
}

func showStats(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	stats := s.app.Store().Stats()
	fmt.Printf("Total:     %d\n", stats.Total)
	fmt.Printf("Completed: %d\n", stats.Completed)
	fmt.Printf("Pending:   %d\n", stats.Pending)
	fmt.Printf("Overdue:   %d\n", stats.Overdue)
	fmt.Printf("Progress:  %d%%\n", stats.Percent)

	if stats.Overdue > 0 {
		fmt.Println()
		s.app.CheckOverdue()
		for _, task := range s.app.Store().Overdue() {
			fmt.Printf("  [%s] %s  %s\n", task.ID, task.Text, taskpad.FormatDeadline(task, s.app.Store().Now()))
		}
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	return tui.Run(s.app.Store(), tui.Options{
		OverdueInterval: s.cfg.OverdueInterval,
		NoticeTTL:       s.cfg.NoticeTTL,
		ExportDir:       s.cfg.ExportDir,
		Sort:            s.cfg.SortKey(),
	})
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := cfg.YAML()
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	fmt.Print(string(data))
	if cfg.Backend == config.BackendSQLite {
		fmt.Printf("# database: %s/%s\n", cfg.DataDir, config.SQLiteFile)
	}
	return nil
}
