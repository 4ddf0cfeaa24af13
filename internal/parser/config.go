package parser

// Config holds the keyword sets and tuning knobs for a parse run. The lists
// are configuration rather than literals so a deployment can point the parser
// at a listing in another locale without a rebuild.
type Config struct {
	// ExcludedSections names headings whose following lines are dropped
	// entirely until the next heading.
	ExcludedSections []string

	// SoldOutKeywords and CancelledKeywords match case-insensitively and
	// anchored to the end of the line.
	SoldOutKeywords   []string
	CancelledKeywords []string

	// RescheduledKeywords match case-insensitively anywhere and may be
	// followed by arbitrary destination text.
	RescheduledKeywords []string

	// Prepositions and Articles drive the fallback extraction of a
	// rescheduled event's destination when no known location matches.
	Prepositions []string
	Articles     []string

	// PastWindowDays is how far back a day/month token may resolve before it
	// is pushed into the next year.
	PastWindowDays int
}

// DefaultConfig returns the keyword set of the German source listing.
func DefaultConfig() Config {
	return Config{
		SoldOutKeywords:     []string{"ausverkauft"},
		CancelledKeywords:   []string{"abgesagt"},
		RescheduledKeywords: []string{"verlegt"},
		Prepositions:        []string{"in", "nach", "vom", "von"},
		Articles:            []string{"die", "den", "das", "dem", "der"},
		PastWindowDays:      90,
	}
}

func (c Config) statusKeywords() []string {
	var all []string
	all = append(all, c.SoldOutKeywords...)
	all = append(all, c.CancelledKeywords...)
	all = append(all, c.RescheduledKeywords...)
	return all
}
