package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/concert-events/internal/event"
)

// Parser turns the plain-text lines of a listing page into structured event
// records. It holds no state between runs; Parse is a pure function of
// (lines, now, configuration).
type Parser struct {
	cfg     Config
	matcher *Matcher
}

// New creates a Parser for the given configuration.
func New(cfg Config) *Parser {
	if cfg.PastWindowDays <= 0 {
		cfg.PastWindowDays = DefaultConfig().PastWindowDays
	}
	return &Parser{cfg: cfg, matcher: NewMatcher(cfg)}
}

// Parse runs the full pipeline over a document. Two passes: the first
// collects every heading into the known-locations set, the second extracts
// records against the completed set, so a rescheduled line can reference a
// heading that appears later in the page. The result is sorted ascending by
// resolved date; ties keep document order.
func (p *Parser) Parse(lines []string, now time.Time) []*event.Event {
	known := KnownLocations(lines)
	classifier := NewClassifier(p.cfg, known)
	tracker := newSectionTracker(p.cfg.ExcludedSections)

	var events []*event.Event
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if tracker.Observe(line) {
			continue
		}
		if tracker.Skipping() {
			continue
		}
		if ev := p.assemble(line, tracker.Current(), classifier, now); ev != nil {
			events = append(events, ev)
		}
	}

	event.SortByDate(events)
	return events
}

// assemble merges one matched line, the current section, the classifier's
// verdict, and the resolved date into a record. Returns nil when the line is
// not an event or its date token cannot be resolved.
func (p *Parser) assemble(line, section string, classifier *Classifier, now time.Time) *event.Event {
	fields, ok := p.matcher.Match(line)
	if !ok {
		return nil
	}

	day, month, err := ParseDayMonth(fields.DateToken)
	if err != nil {
		return nil
	}
	date, err := ResolveDate(day, month, now, p.cfg.PastWindowDays)
	if err != nil {
		return nil
	}

	location := fields.Location
	if location == "" {
		location = section
	}

	ev := event.New(line, date, fields.Band, location)
	ev.Section = section

	if fields.Price != "" {
		if price, err := strconv.ParseFloat(strings.ReplaceAll(fields.Price, ",", "."), 64); err == nil {
			ev.PriceEUR = &price
		}
	}

	cls := classifier.Classify(line)
	ev.StatusKind = cls.Kind
	ev.NewLocation = cls.NewLocation
	ev.StatusRaw = cls.Raw

	return ev
}
