package parser

import "strings"

// IsHeading reports whether a line introduces a new section. Headings are
// lines whose trailing character is a colon.
func IsHeading(line string) bool {
	return strings.HasSuffix(line, ":")
}

// HeadingName strips the trailing colon and surrounding whitespace.
func HeadingName(line string) string {
	return strings.TrimSpace(strings.TrimSuffix(line, ":"))
}

// KnownLocations collects every heading name in the document, in order of
// first appearance. The full set must exist before classification starts
// because a "verlegt" line may reference a heading that only appears later in
// the page.
func KnownLocations(lines []string) []string {
	var locs []string
	seen := make(map[string]bool)
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if !IsHeading(line) {
			continue
		}
		name := HeadingName(line)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		locs = append(locs, name)
	}
	return locs
}

// sectionTracker carries the current heading context through a parse pass.
type sectionTracker struct {
	current  string
	excluded map[string]bool
	skipping bool
}

func newSectionTracker(excludedSections []string) *sectionTracker {
	excluded := make(map[string]bool, len(excludedSections))
	for _, name := range excludedSections {
		excluded[name] = true
	}
	return &sectionTracker{excluded: excluded}
}

// Observe consumes a line if it is a heading, updating the current section,
// and reports whether the line was consumed.
func (t *sectionTracker) Observe(line string) bool {
	if !IsHeading(line) {
		return false
	}
	t.current = HeadingName(line)
	t.skipping = t.excluded[t.current]
	return true
}

// Current returns the current section name, or "" before the first heading.
func (t *sectionTracker) Current() string {
	return t.current
}

// Skipping reports whether lines are currently being dropped because the
// active section is excluded.
func (t *sectionTracker) Skipping() bool {
	return t.skipping
}
