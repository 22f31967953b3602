package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"moving-progress/config"
	"moving-progress/internal/app"
	"moving-progress/internal/dashboard"
	"moving-progress/pkg/log"
)

var (
	configPath string
	refresh    bool

	// dash is built by the persistent pre-run hook.
	dash *app.App
)

var rootCmd = &cobra.Command{
	Use:   "movectl",
	Short: "Moving checklist progress from the terminal",
	Long: `movectl shows moving progress per stage and manages the priority list
and custom tasks against the Moovey backend.

Connection settings come from config.yaml (see --config) or the
MOOVEY_URL, MOOVEY_CSRF_TOKEN and MOOVEY_SESSION_COOKIE variables.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, rootCmd)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// run executes cmd and releases the dashboard whether or not it failed.
func run(ctx context.Context, cmd *cobra.Command) error {
	defer closeDashboard()
	return cmd.ExecuteContext(ctx)
}

func closeDashboard() {
	if dash == nil {
		return
	}
	if err := dash.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close dashboard: %v\n", err)
	}
	dash = nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config.yaml")
	rootCmd.PersistentFlags().BoolVar(&refresh, "refresh", false, "Bypass cached backend data")

	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(priorityCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(detailsCmd)
	rootCmd.AddCommand(mutationsCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Keep the terminal for command output.
	logger := log.Init(log.ZapConfig{
		Level:    "error",
		Mode:     cfg.Logger.Mode,
		Encoding: "console",
	})

	dash, err = app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize dashboard: %w", err)
	}
	return nil
}

// load fetches the three stages before any read or mutation.
func load(ctx context.Context) error {
	if _, err := dash.UseCase.Load(ctx, dashboard.LoadInput{Refresh: refresh}); err != nil {
		return fmt.Errorf("load dashboard: %w", err)
	}
	return nil
}
