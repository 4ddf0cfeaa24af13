package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pfrederiksen/concert-events/internal/enrich"
	"github.com/pfrederiksen/concert-events/internal/event"
)

// Storage handles persistence of run dumps, the last-run snapshot, and the
// enrichment cache under a data directory.
type Storage struct {
	dataDir string
}

// New creates a Storage instance, expanding a leading ~ and creating the data
// directory if needed.
func New(dataDir string) (*Storage, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{dataDir: dataDir}, nil
}

// DataDir returns the resolved data directory.
func (s *Storage) DataDir() string {
	return s.dataDir
}

// SaveRun writes a run's events to a timestamped JSON file and returns the
// full path. When path is empty the file goes into the data directory; a
// directory path gets a timestamped file inside it; a path ending in .json is
// used as-is; anything else gets a timestamp appended.
func (s *Storage) SaveRun(events []*event.Event, path string) (string, error) {
	ts := time.Now().UTC().Format("20060102_150405")

	var filename string
	switch {
	case path == "":
		filename = filepath.Join(s.dataDir, fmt.Sprintf("concert_events_%s.json", ts))
	case isDir(path) || strings.HasSuffix(path, string(os.PathSeparator)):
		if err := os.MkdirAll(path, 0o755); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
		filename = filepath.Join(path, fmt.Sprintf("concert_events_%s.json", ts))
	case strings.HasSuffix(strings.ToLower(path), ".json"):
		if parent := filepath.Dir(path); parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return "", fmt.Errorf("creating output directory: %w", err)
			}
		}
		filename = path
	default:
		filename = fmt.Sprintf("%s_%s.json", path, ts)
	}

	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding events: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("writing events: %w", err)
	}
	return filename, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Snapshot is the set of events seen on the last run, keyed by event ID.
type Snapshot struct {
	Events    map[string]*event.Event `json:"events"`
	UpdatedAt string                  `json:"updated_at"`
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{Events: make(map[string]*event.Event)}
}

func (s *Storage) snapshotPath() string {
	return filepath.Join(s.dataDir, "snapshot.json")
}

// LoadSnapshot loads the last run's snapshot; a missing file yields an empty
// one.
func (s *Storage) LoadSnapshot() (*Snapshot, error) {
	data, err := os.ReadFile(s.snapshotPath())
	if err != nil {
		if os.IsNotExist(err) {
			return NewSnapshot(), nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	if snapshot.Events == nil {
		snapshot.Events = make(map[string]*event.Event)
	}
	return &snapshot, nil
}

// SaveSnapshot replaces the snapshot with the given events.
func (s *Storage) SaveSnapshot(events []*event.Event) error {
	snapshot := NewSnapshot()
	snapshot.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	for _, ev := range events {
		snapshot.Events[ev.ID] = ev
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.WriteFile(s.snapshotPath(), data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// Diff returns the events from current that were not present in the previous
// snapshot, keeping current's order.
func Diff(previous *Snapshot, current []*event.Event) []*event.Event {
	if previous == nil {
		previous = NewSnapshot()
	}
	newEvents := make([]*event.Event, 0)
	for _, ev := range current {
		if _, seen := previous.Events[ev.ID]; !seen {
			newEvents = append(newEvents, ev)
		}
	}
	return newEvents
}

func (s *Storage) enrichCachePath() string {
	return filepath.Join(s.dataDir, "enrich_cache.json")
}

// LoadEnrichCache loads the persisted enrichment cache; a missing file yields
// an empty cache with the given TTL.
func (s *Storage) LoadEnrichCache(ttl time.Duration) (*enrich.Cache, error) {
	cache := enrich.NewCache(ttl)

	data, err := os.ReadFile(s.enrichCachePath())
	if err != nil {
		if os.IsNotExist(err) {
			return cache, nil
		}
		return nil, fmt.Errorf("reading enrichment cache: %w", err)
	}

	if err := json.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("parsing enrichment cache: %w", err)
	}
	// TTL is excluded from JSON; restore it after decoding.
	cache.TTL = enrich.DefaultTTL
	if ttl > 0 {
		cache.TTL = ttl
	}
	if cache.Entries == nil {
		cache.Entries = make(map[string]enrich.Info)
	}
	if cache.CachedAt == nil {
		cache.CachedAt = make(map[string]time.Time)
	}
	return cache, nil
}

// SaveEnrichCache persists the enrichment cache, dropping expired entries
// first.
func (s *Storage) SaveEnrichCache(cache *enrich.Cache) error {
	cache.CleanExpired()
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding enrichment cache: %w", err)
	}
	if err := os.WriteFile(s.enrichCachePath(), data, 0o644); err != nil {
		return fmt.Errorf("writing enrichment cache: %w", err)
	}
	return nil
}
