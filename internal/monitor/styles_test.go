package monitor

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/pulse/internal/render"
	"github.com/rileyhilliard/pulse/internal/tier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSSColor(t *testing.T) {
	tests := []struct {
		in   string
		want lipgloss.Color
		ok   bool
	}{
		{tier.ColorGood, lipgloss.Color(tier.ColorGood), true},
		{" #f38ba8 ", lipgloss.Color("#f38ba8"), true},
		{"rgba(0, 0, 0, 0)", ColorBase, true},
		{"rgba(255, 255, 255, 1)", lipgloss.Color("#ffffff"), true},
		{"", "", false},
		{"#zzzzzz", "", false},
		{"red", "", false},
		{"rgba(1, 2, 3)", "", false},
		{"rgba(a, b, c, d)", "", false},
		{"rgb(1, 2, 3, 4", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := CSSColor(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCSSColor_IndicatorBackgroundsAreDark(t *testing.T) {
	for _, bg := range []string{render.LiveBackground, render.OfflineBackground} {
		got, ok := CSSColor(bg)
		require.True(t, ok, bg)
		assert.NotEqual(t, ColorBase, got, "a 10%% tint should move off the base")
		assert.True(t, strings.HasPrefix(string(got), "#"))
	}
}

func TestParseWidth(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42.5%", 42.5, true},
		{"0%", 0, true},
		{"100%", 100, true},
		{"40", 0, false},
		{"abc%", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseWidth(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProgressBar(t *testing.T) {
	plainColors(t)

	tests := []struct {
		name    string
		percent float64
		filled  int
	}{
		{"empty", 0, 0},
		{"half", 50, 5},
		{"full", 100, 10},
		{"over", 150, 10},
		{"negative", -5, 0},
		{"nan", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := ProgressBar(10, tt.percent, lipgloss.Color(tier.ColorGood))
			assert.Equal(t, tt.filled, strings.Count(bar, barFilled))
			assert.Equal(t, 10-tt.filled, strings.Count(bar, barEmpty))
		})
	}
}

func TestSparkline(t *testing.T) {
	plainColors(t)

	assert.Empty(t, Sparkline(nil, 10, true))
	assert.Empty(t, Sparkline([]float64{1}, 0, true))

	assert.Equal(t, "▁█", Sparkline([]float64{0, 100}, 10, true))
	assert.Equal(t, "█▁", Sparkline([]float64{50, 100, 0}, 2, true), "keeps the newest points")
	assert.Equal(t, "▁", Sparkline([]float64{math.NaN()}, 5, false))
}
