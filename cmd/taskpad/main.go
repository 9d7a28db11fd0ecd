package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fmizzell/taskpad"
)

var (
	cfgFile     string
	dataDirFlag string
	backendFlag string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "taskpad",
	Short: "Personal task tracker",
	Long: `taskpad keeps a personal task list with categories, priorities,
deadlines and recurring tasks.

Quick start:
  taskpad add "Buy milk" -c shopping -d +3h     Add a task
  taskpad list --status pending                 Show pending tasks
  taskpad done T-1a2b                           Complete a task
  taskpad tui                                   Interactive mode`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .taskpad/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "directory holding task data (default .taskpad)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "storage backend: file, sqlite or memory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(clearCompletedCmd)
	rootCmd.AddCommand(clearAllCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(configCmd)
}

// initLogging routes slog to stderr. Only warnings show unless --verbose.
func initLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Validation failures were already shown as notices
		if !errors.Is(err, taskpad.ErrValidation) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
