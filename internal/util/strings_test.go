package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPluralize(t *testing.T) {
	assert.Equal(t, "issue", Pluralize(1, "issue", "issues"))
	assert.Equal(t, "issues", Pluralize(0, "issue", "issues"))
	assert.Equal(t, "issues", Pluralize(3, "issue", "issues"))
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"once", "once", 0},
		{"wacth", "watch", 2},
		{"agent", "agents", 1},
		{"doctor", "docter", 1},
		{"kitten", "sitting", 3},
		{"●", "○", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"->"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, LevenshteinDistance(tt.a, tt.b))
		})
	}
}

func TestSuggestSimilar(t *testing.T) {
	candidates := []string{"watch", "once", "init", "agent", "doctor", "version", "completion"}

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"transposition", "wacth", []string{"watch"}},
		{"missing char", "onc", []string{"once"}},
		{"nearest first", "onit", []string{"init", "once"}},
		{"case insensitive", "DOCTOR", []string{"doctor"}},
		{"no close match", "xyzzy", nil},
		{"empty input", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SuggestSimilar(tt.input, candidates, 3))
		})
	}
}

func TestSuggestSimilar_EmptyCandidates(t *testing.T) {
	assert.Nil(t, SuggestSimilar("watch", nil, 3))
	assert.Nil(t, SuggestSimilar("watch", []string{}, 3))
}
