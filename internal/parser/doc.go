// Package parser recovers structured concert records from the loosely
// formatted text lines of an event listing page.
//
// The pipeline is: section tracking (headings set location context and feed
// the known-locations set), line matching (an anchored composite pattern with
// lazy, terminator-driven band and location capture), status classification
// (priority-ordered keyword taxonomy with known-location resolution for
// rescheduled events), and date disambiguation (day/month tokens carry no
// year; the year is inferred from a rolling window around the injected
// clock). The whole package performs no I/O and holds no state across runs.
package parser
