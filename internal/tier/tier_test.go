package tier

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_HigherIsBetter(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  Tier
	}{
		{"perfect", 100, Good},
		{"just above high", 80.0001, Good},
		{"at high threshold", 80, Medium},
		{"mid", 65, Medium},
		{"just above low", 50.0001, Medium},
		{"at low threshold", 50, Bad},
		{"low", 10, Bad},
		{"zero", 0, Bad},
		{"negative", -5, Bad},
		{"above range", 150, Good},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.value, true))
		})
	}
}

func TestClassify_LowerIsBetter(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  Tier
	}{
		{"idle", 0, Good},
		{"just below low", 49.999, Good},
		{"at low threshold", 50, Medium},
		{"mid", 65, Medium},
		{"just below high", 79.999, Medium},
		{"at high threshold", 80, Bad},
		{"saturated", 100, Bad},
		{"over committed", 150, Bad},
		{"negative", -1, Good},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.value, false))
		})
	}
}

// Sweep the 0-100 range in small steps and check each result against the
// rule written out directly.
func TestClassify_MatchesRuleAcrossRange(t *testing.T) {
	for i := -100; i <= 1200; i++ {
		v := float64(i) / 10

		var wantScore Tier
		switch {
		case v > 80:
			wantScore = Good
		case v <= 50:
			wantScore = Bad
		default:
			wantScore = Medium
		}

		var wantUsage Tier
		switch {
		case v < 50:
			wantUsage = Good
		case v >= 80:
			wantUsage = Bad
		default:
			wantUsage = Medium
		}

		assert.Equal(t, wantScore, Classify(v, true), "score %v", v)
		assert.Equal(t, wantUsage, Classify(v, false), "usage %v", v)
	}
}

func TestClassify_Pure(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, Medium, Classify(80, true))
		assert.Equal(t, Bad, Classify(80, false))
	}
}

func TestClassify_NonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.Equal(t, Unknown, Classify(v, true))
		assert.Equal(t, Unknown, Classify(v, false))
	}
}

func TestTier_Color(t *testing.T) {
	assert.Equal(t, "#a6e3a1", Good.Color())
	assert.Equal(t, "#f9e2af", Medium.Color())
	assert.Equal(t, "#f38ba8", Bad.Color())
	assert.Equal(t, "#6c7086", Unknown.Color())
	assert.Equal(t, "#6c7086", Tier(42).Color())
}

func TestTier_String(t *testing.T) {
	tests := []struct {
		tier Tier
		want string
	}{
		{Good, "good"},
		{Medium, "medium"},
		{Bad, "bad"},
		{Unknown, "unknown"},
		{Tier(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tier.String())
		})
	}
}

func TestColorFor(t *testing.T) {
	assert.Equal(t, ColorGood, ColorFor(85, true))
	assert.Equal(t, ColorBad, ColorFor(90, false))
	assert.Equal(t, ColorGood, ColorFor(40, false))
}
