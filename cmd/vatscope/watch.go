package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ternarybob/vatscope/internal/common"
)

var watchNow bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Refresh the financial data of the watchlist on the configured schedule",
	Long:  `Runs until SIGINT or SIGTERM, re-extracting every watchlist company on the [scheduler] cron schedule to keep the cache warm.`,
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchNow, "now", false, "Run a refresh immediately after starting")
}

func runWatch(cmd *cobra.Command, args []string) error {
	common.InstallCrashHandler("")
	defer common.RecoverWithCrashFile()

	common.PrintBanner()

	application, logger, err := newApp(true)
	if err != nil {
		return err
	}
	defer application.Close()

	if len(config.Scheduler.Watchlist) == 0 {
		logger.Warn().Msg("Scheduler watchlist is empty, nothing will be refreshed")
	}

	if err := application.SchedulerService.Start(config.Scheduler.Schedule); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watchNow {
		common.SafeGo(logger, "watch-initial-refresh", func() {
			if err := application.SchedulerService.TriggerNow(); err != nil {
				logger.Warn().Err(err).Msg("Initial refresh finished with errors")
			}
		}, nil)
	}

	status := application.SchedulerService.Status()
	event := logger.Info().
		Str("schedule", status.Schedule).
		Strs("watchlist", config.Scheduler.Watchlist)
	if status.NextRun != nil {
		event = event.Str("next_run", status.NextRun.Format("2006-01-02 15:04:05"))
	}
	event.Msg("Watching, press Ctrl+C to stop")

	<-ctx.Done()
	if ctx.Err() == context.Canceled {
		logger.Info().Msg("Shutdown signal received")
	}
	return nil
}
