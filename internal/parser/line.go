package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Fields is the raw extraction result for one line. DateToken and Band are
// always present and non-empty when a line matches; everything else is
// optional.
type Fields struct {
	DateToken string
	Band      string
	Location  string
	Price     string
	Status    string
}

// Matcher extracts Fields from a single listing line. A line must match, from
// its start, the shape
//
//	<DD.MM.> <band> [@ <location>] [price] [status-text]
//
// Band and location are captured lazily: the capture ends at the first
// position where one of the terminator predicates fires. A fixed character
// class cannot delimit the band because band names themselves contain digits,
// slashes, and punctuation; only the terminator set defines the boundary.
type Matcher struct {
	dateRe  *regexp.Regexp
	atRe    *regexp.Regexp
	atEatRe *regexp.Regexp
	priceRe *regexp.Regexp
	parenRe *regexp.Regexp
	eolRe   *regexp.Regexp

	priceEatRe  *regexp.Regexp
	statusRe    *regexp.Regexp // nil when no keywords are configured
	statusEatRe *regexp.Regexp
}

// NewMatcher compiles the line pattern for the given keyword configuration.
func NewMatcher(cfg Config) *Matcher {
	m := &Matcher{
		dateRe:  regexp.MustCompile(`^\s*(\d{2}\.\d{2}\.)\s+`),
		atRe:    regexp.MustCompile(`^\s+@\s`),
		atEatRe: regexp.MustCompile(`^\s+@\s*`),
		// A price is an optional asterisk and/or "ab" marker, digits, an
		// optional decimal separator with one or two fractional digits, and
		// an optional euro sign.
		priceRe:    regexp.MustCompile(`^\s+\*?(?:ab\s*)?\d+(?:[.,]\d{1,2})?\s*€?`),
		priceEatRe: regexp.MustCompile(`^\s+\*?(?:ab\s*)?(\d+(?:[.,]\d{1,2})?)\s*€?`),
		parenRe:    regexp.MustCompile(`^\s*\(`),
		eolRe:      regexp.MustCompile(`^\s*$`),
	}
	if kws := cfg.statusKeywords(); len(kws) > 0 {
		quoted := make([]string, len(kws))
		for i, kw := range kws {
			quoted[i] = regexp.QuoteMeta(kw)
		}
		alt := strings.Join(quoted, "|")
		m.statusRe = regexp.MustCompile(`^\s*(?i:` + alt + `)`)
		m.statusEatRe = regexp.MustCompile(`^\s*((?i:` + alt + `).*)$`)
	}
	return m
}

// Match extracts Fields from a line, or rejects it. Rejection is not an
// error; most lines on a listing page are not events.
func (m *Matcher) Match(line string) (Fields, bool) {
	dm := m.dateRe.FindStringSubmatch(line)
	if dm == nil {
		return Fields{}, false
	}
	rest := line[len(dm[0]):]

	band, rest, ok := m.scanField(rest, true)
	if !ok {
		return Fields{}, false
	}
	f := Fields{DateToken: dm[1], Band: band}

	if at := m.atEatRe.FindString(rest); at != "" {
		if loc, after, ok := m.scanField(rest[len(at):], false); ok {
			f.Location = loc
			rest = after
		}
	}

	if pm := m.priceEatRe.FindStringSubmatch(rest); pm != nil {
		f.Price = pm[1]
		rest = rest[len(pm[0]):]
	}

	if m.statusEatRe != nil {
		if sm := m.statusEatRe.FindStringSubmatch(rest); sm != nil {
			f.Status = strings.TrimSpace(sm[1])
		}
	}

	return f, true
}

// scanField performs the lazy, boundary-driven capture: it returns the
// shortest non-empty prefix of s after which a terminator fires, along with
// the remainder. allowAt controls whether an "@ location" marker terminates
// the capture (it does for the band, not for the location itself).
func (m *Matcher) scanField(s string, allowAt bool) (string, string, bool) {
	for i := 1; i <= len(s); i++ {
		if i < len(s) && !utf8.RuneStart(s[i]) {
			continue
		}
		if !m.terminates(s[i:], allowAt) {
			continue
		}
		field := strings.TrimSpace(s[:i])
		if field == "" {
			continue
		}
		return field, s[i:], true
	}
	return "", "", false
}

// terminates is the named terminator predicate set: end of line, an "@"
// marker, a price start, an opening parenthesis, or a status keyword.
func (m *Matcher) terminates(sub string, allowAt bool) bool {
	if m.eolRe.MatchString(sub) {
		return true
	}
	if allowAt && m.atRe.MatchString(sub) {
		return true
	}
	if m.priceRe.MatchString(sub) {
		return true
	}
	if m.parenRe.MatchString(sub) {
		return true
	}
	if m.statusRe != nil && m.statusRe.MatchString(sub) {
		return true
	}
	return false
}
