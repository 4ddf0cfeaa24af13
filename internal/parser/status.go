package parser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pfrederiksen/concert-events/internal/event"
)

// Classification is the status classifier's verdict for one line.
type Classification struct {
	Kind        event.StatusKind
	NewLocation string
	Raw         string
}

type statusPattern struct {
	re   *regexp.Regexp
	kind event.StatusKind
}

// Classifier maps a raw line plus the document's known locations to a status
// kind. Keyword priority is fixed: sold out beats cancelled beats rescheduled,
// first match wins.
type Classifier struct {
	patterns   []statusPattern
	reschedRes []*regexp.Regexp
	fallbackRe *regexp.Regexp
	known      []string
	knownRes   []*regexp.Regexp
}

// NewClassifier builds a classifier for the configured keyword sets and the
// completed set of known locations. Location candidates are tried longest
// name first so a short name never shadows a longer one it is a substring of.
func NewClassifier(cfg Config, knownLocations []string) *Classifier {
	c := &Classifier{}

	// Sold-out and cancelled keywords anchor to end of line; a rescheduled
	// keyword is followed by a destination description, so it captures the
	// rest of the line.
	for _, kw := range cfg.SoldOutKeywords {
		c.patterns = append(c.patterns, statusPattern{
			re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `!?$`),
			kind: event.StatusSoldOut,
		})
	}
	for _, kw := range cfg.CancelledKeywords {
		c.patterns = append(c.patterns, statusPattern{
			re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `!?$`),
			kind: event.StatusCancelled,
		})
	}
	for _, kw := range cfg.RescheduledKeywords {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b.*`)
		c.patterns = append(c.patterns, statusPattern{re: re, kind: event.StatusRescheduled})
		c.reschedRes = append(c.reschedRes, regexp.MustCompile(`(?i)^`+regexp.QuoteMeta(kw)))
	}

	c.known = append([]string(nil), knownLocations...)
	// Longest name first.
	sort.SliceStable(c.known, func(i, j int) bool {
		return len(c.known[i]) > len(c.known[j])
	})
	for _, loc := range c.known {
		c.knownRes = append(c.knownRes, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(loc)+`\b`))
	}

	c.fallbackRe = buildFallbackRe(cfg.Prepositions, cfg.Articles)
	return c
}

func buildFallbackRe(preps, articles []string) *regexp.Regexp {
	quote := func(words []string) string {
		quoted := make([]string, len(words))
		for i, w := range words {
			quoted[i] = regexp.QuoteMeta(w)
		}
		return strings.Join(quoted, "|")
	}
	pat := `(?i)^`
	if len(preps) > 0 {
		pat += `(?:(?:` + quote(preps) + `)\s+)?`
	}
	if len(articles) > 0 {
		pat += `(?:(?:` + quote(articles) + `)\s+)?`
	}
	pat += `([^,(]+)`
	return regexp.MustCompile(pat)
}

// Classify returns the status kind for a line, the rescheduled destination
// when one can be recovered, and the raw status text.
func (c *Classifier) Classify(line string) Classification {
	var cls Classification
	for _, p := range c.patterns {
		m := p.re.FindString(line)
		if m == "" {
			continue
		}
		cls.Kind = p.kind
		cls.Raw = strings.TrimSpace(m)
		break
	}

	if cls.Kind == event.StatusRescheduled {
		cls.Raw = c.lowerKeyword(cls.Raw)
		cls.NewLocation = c.newLocation(cls.Raw)
	}

	if cls.Kind == "" {
		cls.Kind = event.StatusAvailable
	}
	return cls
}

// lowerKeyword normalizes the leading rescheduled keyword to lowercase so the
// raw status text is stable regardless of how the page capitalized it.
func (c *Classifier) lowerKeyword(raw string) string {
	for _, re := range c.reschedRes {
		if m := re.FindString(raw); m != "" {
			return strings.ToLower(m) + raw[len(m):]
		}
	}
	return raw
}

// newLocation resolves the destination of a rescheduled event: a known
// location mentioned in the status text wins; otherwise the text after a
// locative preposition, up to the next comma or opening parenthesis. An empty
// result is a valid outcome, not a failure.
func (c *Classifier) newLocation(raw string) string {
	for i, re := range c.knownRes {
		if re.MatchString(raw) {
			return c.known[i]
		}
	}

	rest := raw
	for _, re := range c.reschedRes {
		if m := re.FindString(rest); m != "" {
			rest = strings.TrimSpace(rest[len(m):])
			break
		}
	}
	if rest == "" {
		return ""
	}
	if m := c.fallbackRe.FindStringSubmatch(rest); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
