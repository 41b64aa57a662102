// Package render translates snapshots and offline signals into writes on a
// presentation surface.
package render

import (
	"math"
	"strconv"

	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/rileyhilliard/pulse/internal/logger"
	"github.com/rileyhilliard/pulse/internal/snapshot"
	"github.com/rileyhilliard/pulse/internal/surface"
	"github.com/rileyhilliard/pulse/internal/tier"
)

// Connection indicator presentation.
const (
	LiveText       = "● Live"
	LiveColor      = "#a6e3a1"
	LiveBackground = "rgba(166, 227, 161, 0.1)"

	OfflineText       = "● Offline"
	OfflineColor      = "#f38ba8"
	OfflineBackground = "rgba(243, 139, 168, 0.1)"
)

// Renderer is the only writer of a surface.
type Renderer struct {
	surface surface.Surface
	log     logger.Logger
}

// New creates a renderer writing to s. A nil logger discards messages.
func New(s surface.Surface, log logger.Logger) *Renderer {
	if log == nil {
		log = logger.Noop()
	}
	return &Renderer{surface: s, log: log}
}

// RenderOffline switches the connection indicator to offline. Every other
// region keeps its last rendered value.
func (r *Renderer) RenderOffline() {
	r.connection(OfflineText, OfflineColor, OfflineBackground)
}

// RenderLive writes a full snapshot to the surface.
func (r *Renderer) RenderLive(s snapshot.Snapshot) {
	out := r.surface

	r.connection(LiveText, LiveColor, LiveBackground)

	out.SetText(surface.Timestamp, s.Timestamp)
	out.SetText(surface.Uptime, s.UptimeSeconds.String())

	// Health score: one color for the number, its ring and the message
	scoreColor := tier.ColorFor(s.Score(), true)
	out.SetText(surface.HealthScore, s.HealthScore.String())
	out.SetText(surface.StatusMessage, s.Message)
	out.SetStyle(surface.ScoreCircle, surface.BorderColor, scoreColor)
	out.SetStyle(surface.ScoreCircle, surface.Color, scoreColor)
	out.SetStyle(surface.StatusMessage, surface.Color, scoreColor)

	cpu := s.CPU
	usage := cpu.Signals.CurrentUsagePercent.String() + "%"
	out.SetText(surface.CPUUsage, usage)
	out.SetStyle(surface.CPUBar, surface.Width, usage)
	out.SetStyle(surface.CPUBar, surface.BackgroundColor, tier.ColorFor(cpu.Signals.Usage(), false))
	out.SetText(surface.Load1m, cpu.Signals.LoadAverage.Last1Min.String())
	out.SetText(surface.Load5m, cpu.Signals.LoadAverage.Last5Min.String())
	out.SetText(surface.CPUCores, cpu.Capacity.AllocatedVCPUs.String())
	out.SetText(surface.CPURatio, cpu.Capacity.UtilizationRatio.String())

	mem := s.Memory
	out.SetText(surface.MemUsed, mem.Signals.UsedMB.String())
	out.SetText(surface.MemTotal, mem.Signals.TotalMB.String())
	out.SetText(surface.MemAvailable, mem.Signals.AvailableMB.String())
	out.SetText(surface.MemHeadroom, mem.Capacity.HeadroomPercent.String()+"%")

	usedPercent, err := mem.Signals.UsedPercent()
	if err != nil {
		r.log.Warn("%s", errors.Summary(err))
		usedPercent = math.NaN()
	}
	out.SetStyle(surface.MemBar, surface.Width, Percent(usedPercent))
	out.SetStyle(surface.MemBar, surface.BackgroundColor, tier.ColorFor(usedPercent, false))
}

func (r *Renderer) connection(text, color, background string) {
	r.surface.SetText(surface.ConnectionStatus, text)
	r.surface.SetStyle(surface.ConnectionStatus, surface.Color, color)
	r.surface.SetStyle(surface.ConnectionStatus, surface.Background, background)
}

// Percent formats a computed percentage for a width property, rounded to two
// decimals with trailing zeros dropped. Non-finite input renders as "0%".
func Percent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0%"
	}
	rounded := math.Round(v*100) / 100
	if rounded == 0 {
		rounded = 0 // normalize -0
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64) + "%"
}
