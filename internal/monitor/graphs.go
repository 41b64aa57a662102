package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/pulse/internal/tier"
)

// sparklineBlocks are block characters for 8-level vertical resolution (lowest to highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders the most recent width values on a fixed 0-100 scale,
// colored by the tier of the latest value.
func Sparkline(data []float64, width int, higherIsBetter bool) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}
	if len(data) > width {
		data = data[len(data)-width:]
	}

	var sb strings.Builder
	levels := len(sparklineBlocks)
	for _, v := range data {
		level := int(clamp01(v/100) * float64(levels-1))
		sb.WriteRune(sparklineBlocks[level])
	}

	color := lipgloss.Color(tier.ColorFor(data[len(data)-1], higherIsBetter))
	return lipgloss.NewStyle().Foreground(color).Render(sb.String())
}
