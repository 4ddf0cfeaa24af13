package event

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StatusKind classifies an event's availability. The values are the literal
// keywords of the source listing so downstream consumers can key on them
// unchanged.
type StatusKind string

const (
	StatusAvailable   StatusKind = "verfügbar"
	StatusSoldOut     StatusKind = "ausverkauft"
	StatusCancelled   StatusKind = "abgesagt"
	StatusRescheduled StatusKind = "verlegt"
)

// Event represents one structured concert record recovered from a listing line
type Event struct {
	ID          string     `json:"id"`
	Origin      string     `json:"origin"`
	Date        time.Time  `json:"date"`
	Band        string     `json:"band"`
	Location    string     `json:"location"`
	PriceEUR    *float64   `json:"price_eur"`
	StatusKind  StatusKind `json:"status_kind"`
	NewLocation string     `json:"new_location"`
	StatusRaw   string     `json:"status_raw"`
	Section     string     `json:"section"`
	Members     []string   `json:"members"`
	Genres      []string   `json:"genres"`
}

// GenerateID creates a deterministic ID for an event. Records for the same
// date, band, and location collapse to the same ID across runs, which is what
// the index relies on for upserts.
func GenerateID(date time.Time, band, location string) string {
	if band == "" {
		band = "unknown"
	}
	if location == "" {
		location = "unknown"
	}
	base := fmt.Sprintf("%s::%s::%s",
		date.Format("2006-01-02T15:04:05"),
		strings.ToLower(band),
		strings.ToLower(location))
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(base)).String()
}

// New creates an Event with its ID populated and enrichment lists initialized
// empty. Members and genres are filled in later by the enrichment client.
func New(origin string, date time.Time, band, location string) *Event {
	return &Event{
		ID:         GenerateID(date, band, location),
		Origin:     origin,
		Date:       date,
		Band:       band,
		Location:   location,
		StatusKind: StatusAvailable,
		Members:    []string{},
		Genres:     []string{},
	}
}

// EnrichmentSize returns how much enrichment data the record carries. Used by
// the index to decide whether an incoming record supersedes a stored one.
func (e *Event) EnrichmentSize() int {
	return len(e.Members) + len(e.Genres)
}
