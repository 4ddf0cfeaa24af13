package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/concert-events/internal/parser"
)

// FetchConfig selects how the listing page is turned into text lines.
type FetchConfig struct {
	// Mode is "http" (plain GET plus HTML text extraction) or "browser"
	// (headless Chromium render for script-heavy pages).
	Mode string `yaml:"mode"`

	// TimeoutSec bounds one fetch. Zero means the fetcher's default.
	TimeoutSec int `yaml:"timeout_sec"`
}

// StatusConfig externalizes the status keyword sets. Defaults are the German
// source keywords; swapping the lists retargets the parser to another locale.
type StatusConfig struct {
	SoldOut     []string `yaml:"sold_out"`
	Cancelled   []string `yaml:"cancelled"`
	Rescheduled []string `yaml:"rescheduled"`
}

// ParserConfig holds the parse-time knobs.
type ParserConfig struct {
	ExcludedSections []string     `yaml:"excluded_sections"`
	Status           StatusConfig `yaml:"status"`
	Prepositions     []string     `yaml:"prepositions"`
	Articles         []string     `yaml:"articles"`
	PastWindowDays   int          `yaml:"past_window_days"`
}

// EnrichConfig controls the band metadata lookup.
type EnrichConfig struct {
	Enabled    bool `yaml:"enabled"`
	MaxGenres  int  `yaml:"max_genres"`
	MaxRetries int  `yaml:"max_retries"`
	// CacheTTLHours is how long a cached lookup stays valid.
	CacheTTLHours int `yaml:"cache_ttl_hours"`
}

// Config is the top-level application configuration.
type Config struct {
	// SourceURL is the listing page to scrape.
	SourceURL string `yaml:"source_url"`

	// DataDir holds run dumps, the snapshot, the enrichment cache, and the
	// event index.
	DataDir string `yaml:"data_dir"`

	// WatchCron is the cron schedule for watch mode.
	WatchCron string `yaml:"watch_cron"`

	Fetch  FetchConfig  `yaml:"fetch"`
	Parser ParserConfig `yaml:"parser"`
	Enrich EnrichConfig `yaml:"enrich"`
}

// Default returns the configuration for the original source listing.
func Default() *Config {
	pc := parser.DefaultConfig()
	return &Config{
		SourceURL: "https://underdogrecordstore.de/vorverkauf",
		DataDir:   "~/.local/share/concert-events",
		WatchCron: "0 */6 * * *",
		Fetch: FetchConfig{
			Mode:       "http",
			TimeoutSec: 30,
		},
		Parser: ParserConfig{
			ExcludedSections: []string{"Underdog Shows"},
			Status: StatusConfig{
				SoldOut:     pc.SoldOutKeywords,
				Cancelled:   pc.CancelledKeywords,
				Rescheduled: pc.RescheduledKeywords,
			},
			Prepositions:   pc.Prepositions,
			Articles:       pc.Articles,
			PastWindowDays: pc.PastWindowDays,
		},
		Enrich: EnrichConfig{
			Enabled:       false,
			MaxGenres:     3,
			MaxRetries:    3,
			CacheTTLHours: 7 * 24,
		},
	}
}

// Load reads a YAML config file. A missing file is not an error; defaults
// apply. Values absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML, useful for generating a starter
// config file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ParserConfig maps the file representation onto the parser's configuration.
func (c *Config) ParserConfig() parser.Config {
	return parser.Config{
		ExcludedSections:    c.Parser.ExcludedSections,
		SoldOutKeywords:     c.Parser.Status.SoldOut,
		CancelledKeywords:   c.Parser.Status.Cancelled,
		RescheduledKeywords: c.Parser.Status.Rescheduled,
		Prepositions:        c.Parser.Prepositions,
		Articles:            c.Parser.Articles,
		PastWindowDays:      c.Parser.PastWindowDays,
	}
}
