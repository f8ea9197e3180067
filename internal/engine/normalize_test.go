package engine

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase and trim", "  Milk  ", "milk"},
		{"strips punctuation", "half-and-half!", "halfandhalf"},
		{"drops qualifier words", "Fresh Chopped Onions", "onion"},
		{"keeps digits", "2% Milk", "2 milk"},
		{"strips single trailing s", "tomatoes", "tomatoe"},
		{"single letter s survives", "s", "s"},
		{"collapses whitespace", "olive   oil", "olive oil"},
		{"extra virgin stripped", "Extra Virgin Olive Oil", "olive oil"},
		{"empty input", "", ""},
		{"only qualifiers", "fresh frozen", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Fresh Chopped Onions", "tomatoes", "2% Milk", "Extra Virgin Olive Oil", "eggs"}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestHistoryKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Whole Milk ", "whole milk"},
		{"BANANAS", "bananas"},
	}

	for _, tt := range tests {
		got := HistoryKey(tt.input)
		if got != tt.want {
			t.Errorf("HistoryKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	// Qualifiers are kept, unlike Normalize
	if got := HistoryKey("fresh basil"); got != "fresh basil" {
		t.Errorf("HistoryKey(\"fresh basil\") = %q, want \"fresh basil\"", got)
	}
}
