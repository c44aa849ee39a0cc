package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	gcal "github.com/teemow/tasksync/internal/calendar"
	"github.com/teemow/tasksync/internal/config"
	"github.com/teemow/tasksync/internal/google"
	"github.com/teemow/tasksync/internal/instrumentation"
	"github.com/teemow/tasksync/internal/logging"
	"github.com/teemow/tasksync/internal/mirror"
	"github.com/teemow/tasksync/internal/notion"
	"github.com/teemow/tasksync/internal/sync"
)

func newSyncCmd() *cobra.Command {
	var configPath string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one reconciliation pass between Notion tasks and Google Calendar",
		Long: `Fetch the active tasks from the Notion database, project each onto a
calendar event and issue the minimal set of create, update, archive and
delete calls against Google Calendar.

Failures on individual tasks are logged and retried on the next pass; the
command exits non-zero only when the pass could not start at all.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			log := logging.New(cfg.LogLevel)

			provider, err := instrumentation.NewProvider(ctx, "tasksync", version, cfg.Metrics)
			if err != nil {
				return fmt.Errorf("failed to initialize instrumentation: %w", err)
			}
			defer func() {
				if err := provider.Shutdown(ctx); err != nil {
					log.Warn("failed to flush metrics", logging.Err(err))
				}
			}()

			store, err := mirror.Open(cfg.Mirror.Path)
			if err != nil {
				return fmt.Errorf("failed to open mirror store: %w", err)
			}
			defer store.Close()

			tasks, err := notion.NewClient(cfg.Notion, log)
			if err != nil {
				return fmt.Errorf("failed to create Notion client: %w", err)
			}

			httpClient, err := google.GetHTTPClient(ctx)
			if err != nil {
				return fmt.Errorf("failed to authenticate with Google: %w", err)
			}
			cal, err := gcal.NewClient(ctx, httpClient, cfg.Calendar.ID, cfg.Calendar.ReminderMinutes)
			if err != nil {
				return fmt.Errorf("failed to create Calendar client: %w", err)
			}

			engine := sync.NewEngine(tasks, cal, store, log, provider.Metrics(), sync.Options{
				Window:       cfg.Window(),
				ArchiveAfter: cfg.ArchiveAfter(),
				Throttle:     cfg.Throttle(),
				DryRun:       dryRun,
			})

			// Per-item failures are already logged and counted; they do
			// not fail the process.
			if _, err := engine.Run(ctx); err != nil {
				return fmt.Errorf("reconciliation pass failed to start: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultPath(), "Path to the config file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log decisions without writing to Notion or Google Calendar")
	return cmd
}
