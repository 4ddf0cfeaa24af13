package parser

import (
	"reflect"
	"testing"
)

func TestIsHeading(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Club Berlin:", true},
		{"Underdog Shows:", true},
		{":", true},
		{"Club Berlin", false},
		{"09.10. Foo Fighters", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsHeading(tt.line); got != tt.want {
			t.Errorf("IsHeading(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestKnownLocations(t *testing.T) {
	lines := []string{
		"Some noise",
		"Club Berlin:",
		"09.10. Foo Fighters",
		"Underdog Shows:",
		"Huxleys:",
		"Club Berlin:", // duplicate heading
		"  Lido:  ",
	}

	got := KnownLocations(lines)
	want := []string{"Club Berlin", "Underdog Shows", "Huxleys", "Lido"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("KnownLocations = %v, want %v", got, want)
	}
}

func TestSectionTracker(t *testing.T) {
	tr := newSectionTracker([]string{"Underdog Shows"})

	if tr.Current() != "" {
		t.Errorf("initial section = %q, want empty", tr.Current())
	}
	if tr.Observe("09.10. Foo Fighters") {
		t.Error("non-heading line was consumed")
	}

	if !tr.Observe("Club Berlin:") {
		t.Fatal("heading line was not consumed")
	}
	if tr.Current() != "Club Berlin" {
		t.Errorf("section = %q, want %q", tr.Current(), "Club Berlin")
	}
	if tr.Skipping() {
		t.Error("unexpectedly skipping under a normal section")
	}

	tr.Observe("Underdog Shows:")
	if !tr.Skipping() {
		t.Error("not skipping under an excluded section")
	}

	tr.Observe("Huxleys:")
	if tr.Skipping() {
		t.Error("still skipping after leaving the excluded section")
	}
	if tr.Current() != "Huxleys" {
		t.Errorf("section = %q, want %q", tr.Current(), "Huxleys")
	}
}
