package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/concert-events/internal/clock"
	"github.com/pfrederiksen/concert-events/internal/config"
	"github.com/pfrederiksen/concert-events/internal/logger"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Scrape the listing page on a cron schedule",
		RunE:  runWatch,
	}

	cmd.Flags().StringVar(&flagURL, "url", "", "Listing page URL (overrides config)")
	cmd.Flags().StringVar(&flagDataDir, "data-dir", "", "Data directory (overrides config)")
	cmd.Flags().StringVar(&flagPublish, "publish", "", "Publish sink: a JSONL file path, or '-' for stdout")
	cmd.Flags().StringVar(&flagCron, "cron", "", "Cron schedule (overrides config)")
	cmd.Flags().BoolVar(&flagNoEnrich, "no-enrich", false, "Skip band metadata enrichment")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	log := logger.New(flagVerbose, flagLogJSON)

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	applyOverrides(cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := func() {
		if _, err := scrapeOnce(ctx, cfg, clock.NewSystem(), log); err != nil {
			log.Error().Err(err).Msg("scrape run failed")
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.WatchCron, run); err != nil {
		return err
	}

	log.Info().Str("schedule", cfg.WatchCron).Msg("watching listing")
	run()
	c.Start()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	ctxStop := c.Stop()
	<-ctxStop.Done()
	return nil
}
