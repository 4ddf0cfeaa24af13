package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/concert-events/internal/clock"
	"github.com/pfrederiksen/concert-events/internal/config"
	"github.com/pfrederiksen/concert-events/internal/enrich"
	"github.com/pfrederiksen/concert-events/internal/fetch"
	"github.com/pfrederiksen/concert-events/internal/index"
	"github.com/pfrederiksen/concert-events/internal/logger"
	"github.com/pfrederiksen/concert-events/internal/parser"
	"github.com/pfrederiksen/concert-events/internal/publish"
	"github.com/pfrederiksen/concert-events/internal/storage"
)

const (
	ExitSuccess   = 0
	ExitError     = 1
	ExitNewEvents = 2
)

var (
	flagConfig  string
	flagVerbose bool
	flagLogJSON bool

	flagURL      string
	flagInput    string
	flagDataDir  string
	flagFormat   string
	flagOutput   string
	flagPublish  string
	flagNow      string
	flagNoEnrich bool
	flagDryRun   bool
	flagCron     string
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "concert-events",
		Short: "Scrape concert listings into structured event records",
		Long: `Scrapes an event-listing page, recovers structured concert records
(date, band, venue, price, availability) from its loosely formatted lines,
and hands them to local sinks: JSON run dumps, a sqlite index, and a
publish stream.`,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "Log JSON lines instead of console output")

	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newWatchCmd())

	return cmd
}

func newScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Run one scrape of the listing page",
		RunE:  runScrape,
	}

	cmd.Flags().StringVar(&flagURL, "url", "", "Listing page URL (overrides config)")
	cmd.Flags().StringVar(&flagInput, "input", "", "Read lines from a local text or HTML file instead of fetching")
	cmd.Flags().StringVar(&flagDataDir, "data-dir", "", "Data directory (overrides config)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flagOutput, "output", "", "Run dump path (file or directory; default: data dir)")
	cmd.Flags().StringVar(&flagPublish, "publish", "", "Publish sink: a JSONL file path, or '-' for stdout")
	cmd.Flags().StringVar(&flagNow, "now", "", "Fixed reference time (RFC3339) for date resolution")
	cmd.Flags().BoolVar(&flagNoEnrich, "no-enrich", false, "Skip band metadata enrichment")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Log instead of publishing")

	return cmd
}

func runScrape(cmd *cobra.Command, args []string) error {
	log := logger.New(flagVerbose, flagLogJSON)

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	applyOverrides(cfg)

	clk, err := buildClock()
	if err != nil {
		return err
	}

	result, err := scrapeOnce(cmd.Context(), cfg, clk, log)
	if err != nil {
		return err
	}

	format := OutputFormat(flagFormat)
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	if err := WriteOutput(os.Stdout, result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if len(result.NewEvents) > 0 {
		os.Exit(ExitNewEvents)
	}
	os.Exit(ExitSuccess)
	return nil
}

func applyOverrides(cfg *config.Config) {
	if flagURL != "" {
		cfg.SourceURL = flagURL
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagCron != "" {
		cfg.WatchCron = flagCron
	}
	if flagNoEnrich {
		cfg.Enrich.Enabled = false
	}
}

func buildClock() (clock.Clock, error) {
	if flagNow == "" {
		return clock.NewSystem(), nil
	}
	t, err := time.Parse(time.RFC3339, flagNow)
	if err != nil {
		return nil, fmt.Errorf("invalid --now value: %w", err)
	}
	return clock.NewFixed(t), nil
}

// scrapeOnce runs the full pipeline: fetch, parse, enrich, persist, index,
// publish.
func scrapeOnce(ctx context.Context, cfg *config.Config, clk clock.Clock, log zerolog.Logger) (*Result, error) {
	fetcher, err := buildFetcher(cfg)
	if err != nil {
		return nil, err
	}

	log.Info().Str("url", cfg.SourceURL).Msg("fetching listing")
	lines, err := fetcher.Lines(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching lines: %w", err)
	}
	log.Debug().Int("lines", len(lines)).Msg("fetched listing")

	now := clk.Now()
	events := parser.New(cfg.ParserConfig()).Parse(lines, now)
	log.Info().Int("events", len(events)).Msg("parsed listing")

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	if cfg.Enrich.Enabled {
		cache, err := store.LoadEnrichCache(time.Duration(cfg.Enrich.CacheTTLHours) * time.Hour)
		if err != nil {
			log.Warn().Err(err).Msg("enrichment cache unreadable, starting empty")
			cache = enrich.NewCache(time.Duration(cfg.Enrich.CacheTTLHours) * time.Hour)
		}
		client := enrich.NewClient(cfg.Enrich.MaxGenres, cfg.Enrich.MaxRetries, cache, log)
		client.EnrichEvents(ctx, events)
		if err := store.SaveEnrichCache(client.Cache()); err != nil {
			log.Warn().Err(err).Msg("saving enrichment cache failed")
		}
	}

	dumpPath, err := store.SaveRun(events, flagOutput)
	if err != nil {
		return nil, fmt.Errorf("saving run: %w", err)
	}
	log.Info().Str("path", dumpPath).Msg("saved run dump")

	previous, err := store.LoadSnapshot()
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	newEvents := storage.Diff(previous, events)
	if err := store.SaveSnapshot(events); err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}

	ix, err := index.Open(indexPath(store))
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}
	defer ix.Close()
	written, err := ix.UpsertAll(events)
	if err != nil {
		return nil, fmt.Errorf("indexing events: %w", err)
	}
	log.Info().Int("written", written).Msg("indexed events")

	if pub := buildPublisher(log); pub != nil {
		if err := pub.Publish(ctx, events); err != nil {
			return nil, fmt.Errorf("publishing events: %w", err)
		}
	}

	return &Result{
		CheckedAt: now,
		Source:    cfg.SourceURL,
		Events:    events,
		NewEvents: newEvents,
		DumpPath:  dumpPath,
	}, nil
}

func buildFetcher(cfg *config.Config) (fetch.Fetcher, error) {
	if flagInput != "" {
		return fetch.NewFile(flagInput), nil
	}
	if cfg.SourceURL == "" {
		return nil, fmt.Errorf("no source URL configured (use --url or the config file)")
	}
	timeout := time.Duration(cfg.Fetch.TimeoutSec) * time.Second
	switch cfg.Fetch.Mode {
	case "", "http":
		return fetch.NewHTTP(cfg.SourceURL, timeout), nil
	case "browser":
		return fetch.NewBrowser(cfg.SourceURL, timeout), nil
	default:
		return nil, fmt.Errorf("unknown fetch mode: %s", cfg.Fetch.Mode)
	}
}

func buildPublisher(log zerolog.Logger) publish.Publisher {
	if flagDryRun {
		return publish.NewDryRun(log)
	}
	switch flagPublish {
	case "":
		return nil
	case "-":
		return publish.NewStdout(os.Stdout)
	default:
		return publish.NewJSONL(flagPublish)
	}
}

func indexPath(store *storage.Storage) string {
	return store.DataDir() + string(os.PathSeparator) + "events.db"
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
