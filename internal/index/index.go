package index

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pfrederiksen/concert-events/internal/event"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS events (
    id          TEXT PRIMARY KEY,
    band        TEXT NOT NULL,
    location    TEXT NOT NULL DEFAULT '',
    date        TEXT NOT NULL,
    status_kind TEXT NOT NULL,
    doc         TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS events_date ON events(date);
CREATE INDEX IF NOT EXISTS events_status ON events(status_kind);
`

// Index is the local event store the search boundary writes into. Records are
// keyed by their deterministic ID so repeated scrapes converge.
type Index struct {
	db *sql.DB
}

// Open opens (creating if needed) the index database at dbPath.
func Open(dbPath string) (*Index, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating index dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing index schema: %w", err)
	}
	return &Index{db: db}, nil
}

// Close closes the underlying database.
func (ix *Index) Close() error {
	return ix.db.Close()
}

// Upsert stores an event. A new ID is inserted; an existing record is
// replaced only when the incoming one carries at least as much enrichment
// data, so a later un-enriched scrape never wipes members and genres already
// indexed. Returns whether the record was written.
func (ix *Index) Upsert(ev *event.Event) (bool, error) {
	var doc string
	err := ix.db.QueryRow("SELECT doc FROM events WHERE id = ?", ev.ID).Scan(&doc)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("looking up event %s: %w", ev.ID, err)
	}

	if err == nil {
		var existing event.Event
		if jsonErr := json.Unmarshal([]byte(doc), &existing); jsonErr == nil {
			if ev.EnrichmentSize() < existing.EnrichmentSize() {
				return false, nil
			}
		}
	}

	encoded, err := json.Marshal(ev)
	if err != nil {
		return false, fmt.Errorf("encoding event %s: %w", ev.ID, err)
	}

	_, err = ix.db.Exec(`
		INSERT INTO events (id, band, location, date, status_kind, doc)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		    band = excluded.band,
		    location = excluded.location,
		    date = excluded.date,
		    status_kind = excluded.status_kind,
		    doc = excluded.doc`,
		ev.ID, ev.Band, ev.Location, ev.Date.UTC().Format(time.RFC3339),
		string(ev.StatusKind), string(encoded))
	if err != nil {
		return false, fmt.Errorf("storing event %s: %w", ev.ID, err)
	}
	return true, nil
}

// UpsertAll stores a batch of events and returns how many were written.
func (ix *Index) UpsertAll(events []*event.Event) (int, error) {
	written := 0
	for _, ev := range events {
		ok, err := ix.Upsert(ev)
		if err != nil {
			return written, err
		}
		if ok {
			written++
		}
	}
	return written, nil
}

// ByDateRange returns events with from <= date < to, ordered by date.
func (ix *Index) ByDateRange(from, to time.Time) ([]*event.Event, error) {
	rows, err := ix.db.Query(
		"SELECT doc FROM events WHERE date >= ? AND date < ? ORDER BY date",
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("querying by date range: %w", err)
	}
	defer rows.Close()
	return scanDocs(rows)
}

// ByStatus returns events with the given status kind, ordered by date.
func (ix *Index) ByStatus(kind event.StatusKind) ([]*event.Event, error) {
	rows, err := ix.db.Query(
		"SELECT doc FROM events WHERE status_kind = ? ORDER BY date", string(kind))
	if err != nil {
		return nil, fmt.Errorf("querying by status: %w", err)
	}
	defer rows.Close()
	return scanDocs(rows)
}

// Count returns the number of indexed events.
func (ix *Index) Count() (int, error) {
	var n int
	if err := ix.db.QueryRow("SELECT COUNT(*) FROM events").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting events: %w", err)
	}
	return n, nil
}

func scanDocs(rows *sql.Rows) ([]*event.Event, error) {
	var events []*event.Event
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		var ev event.Event
		if err := json.Unmarshal([]byte(doc), &ev); err != nil {
			return nil, fmt.Errorf("decoding event doc: %w", err)
		}
		events = append(events, &ev)
	}
	return events, rows.Err()
}
