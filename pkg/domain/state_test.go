package domain

import "testing"

func TestSourceMatches(t *testing.T) {
	tests := []struct {
		name   string
		source Source
		state  State
		want   bool
	}{
		{"single match", From("draft"), "draft", true},
		{"single mismatch", From("draft"), "submitted", false},
		{"set member", From("draft", "submitted"), "submitted", true},
		{"set non-member", From("draft", "submitted"), "rejected", false},
		{"wildcard matches anything", FromAny(), "whatever", true},
		{"empty set matches nothing", From(), "draft", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.source.Matches(tt.state); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

func TestSourceString(t *testing.T) {
	if got := FromAny().String(); got != "*" {
		t.Errorf("wildcard String() = %q, want %q", got, "*")
	}
	if got := From("a", "b").String(); got != "a|b" {
		t.Errorf("set String() = %q, want %q", got, "a|b")
	}
}

func TestSourceStatesIsACopy(t *testing.T) {
	src := From("draft")
	states := src.States()
	states[0] = "mutated"

	if !src.Matches("draft") {
		t.Error("mutating the returned slice must not affect the Source")
	}
}
