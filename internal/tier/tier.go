// Package tier classifies numeric health signals into severity tiers.
package tier

import "math"

// Tier is the severity classification of a numeric signal.
type Tier int

const (
	// Good is a healthy reading.
	Good Tier = iota
	// Medium is a reading worth watching.
	Medium
	// Bad is an unhealthy reading.
	Bad
	// Unknown marks a value with no meaningful classification (NaN or ±Inf).
	Unknown
)

// Fixed tier colors.
const (
	ColorGood    = "#a6e3a1" // green
	ColorMedium  = "#f9e2af" // yellow
	ColorBad     = "#f38ba8" // red
	ColorUnknown = "#6c7086" // gray
)

// Thresholds shared by both directionalities. Both are half-open: a value
// sitting exactly on a threshold falls to the less favourable tier.
const (
	LowThreshold  = 50.0
	HighThreshold = 80.0
)

// Classify maps a value to a tier. When higherIsBetter is true (scores),
// values above 80 are Good, above 50 Medium, and the rest Bad. Otherwise
// (usage percentages) values below 50 are Good, below 80 Medium, and the rest
// Bad. NaN and infinities are Unknown.
func Classify(value float64, higherIsBetter bool) Tier {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Unknown
	}

	if higherIsBetter {
		switch {
		case value > HighThreshold:
			return Good
		case value > LowThreshold:
			return Medium
		default:
			return Bad
		}
	}

	switch {
	case value < LowThreshold:
		return Good
	case value < HighThreshold:
		return Medium
	default:
		return Bad
	}
}

// Color returns the fixed color bound to the tier.
func (t Tier) Color() string {
	switch t {
	case Good:
		return ColorGood
	case Medium:
		return ColorMedium
	case Bad:
		return ColorBad
	default:
		return ColorUnknown
	}
}

// String returns a human-readable tier name.
func (t Tier) String() string {
	switch t {
	case Good:
		return "good"
	case Medium:
		return "medium"
	case Bad:
		return "bad"
	default:
		return "unknown"
	}
}

// ColorFor is shorthand for Classify(value, higherIsBetter).Color().
func ColorFor(value float64, higherIsBetter bool) string {
	return Classify(value, higherIsBetter).Color()
}
