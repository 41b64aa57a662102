package render

import (
	"math"
	"testing"

	"github.com/rileyhilliard/pulse/internal/logger"
	snaptest "github.com/rileyhilliard/pulse/internal/snapshot/testing"
	"github.com/rileyhilliard/pulse/internal/surface"
	"github.com/rileyhilliard/pulse/internal/tier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func region(t *testing.T, b *surface.Board, id surface.RegionID) surface.Region {
	t.Helper()
	r, ok := b.Region(id)
	require.True(t, ok)
	return r
}

func TestRenderLive_WritesEveryRegion(t *testing.T) {
	b := surface.NewBoard()
	New(b, nil).RenderLive(snaptest.Sample())

	want := map[surface.RegionID]string{
		surface.ConnectionStatus: "● Live",
		surface.Timestamp:        "2026-10-14T12:00:00Z",
		surface.Uptime:           "86400",
		surface.HealthScore:      "85",
		surface.StatusMessage:    "All systems nominal",
		surface.CPUUsage:         "42.5%",
		surface.Load1m:           "0.52",
		surface.Load5m:           "0.71",
		surface.CPUCores:         "4",
		surface.CPURatio:         "0.13",
		surface.MemUsed:          "400",
		surface.MemTotal:         "1000",
		surface.MemAvailable:     "600",
		surface.MemHeadroom:      "60%",
	}
	for id, text := range want {
		assert.Equal(t, text, region(t, b, id).Text, "region %s", id)
	}

	status := region(t, b, surface.ConnectionStatus)
	assert.Equal(t, LiveColor, status.Style(surface.Color))
	assert.Equal(t, LiveBackground, status.Style(surface.Background))

	cpuBar := region(t, b, surface.CPUBar)
	assert.Equal(t, "42.5%", cpuBar.Style(surface.Width))
	assert.Equal(t, tier.ColorGood, cpuBar.Style(surface.BackgroundColor))
}

func TestRenderLive_HealthyScoreIsGreen(t *testing.T) {
	b := surface.NewBoard()
	New(b, nil).RenderLive(snaptest.With(snaptest.Score("85")))

	circle := region(t, b, surface.ScoreCircle)
	assert.Equal(t, "#a6e3a1", circle.Style(surface.BorderColor))
	assert.Equal(t, "#a6e3a1", circle.Style(surface.Color))
	assert.Equal(t, "#a6e3a1", region(t, b, surface.StatusMessage).Style(surface.Color))
}

func TestRenderLive_ScoreTiers(t *testing.T) {
	tests := []struct {
		score string
		color string
	}{
		{"100", tier.ColorGood},
		{"80", tier.ColorMedium},
		{"51", tier.ColorMedium},
		{"50", tier.ColorBad},
		{"0", tier.ColorBad},
	}

	for _, tt := range tests {
		t.Run(tt.score, func(t *testing.T) {
			b := surface.NewBoard()
			New(b, nil).RenderLive(snaptest.With(snaptest.Score(tt.score)))

			assert.Equal(t, tt.score, region(t, b, surface.HealthScore).Text)
			assert.Equal(t, tt.color, region(t, b, surface.ScoreCircle).Style(surface.Color))
			assert.Equal(t, tt.color, region(t, b, surface.StatusMessage).Style(surface.Color))
		})
	}
}

func TestRenderLive_BusyCPUIsRed(t *testing.T) {
	b := surface.NewBoard()
	New(b, nil).RenderLive(snaptest.With(snaptest.CPUUsage("90")))

	bar := region(t, b, surface.CPUBar)
	assert.Equal(t, "90%", bar.Style(surface.Width))
	assert.Equal(t, "#f38ba8", bar.Style(surface.BackgroundColor))
	assert.Equal(t, "90%", region(t, b, surface.CPUUsage).Text)
}

func TestRenderLive_MemoryBar(t *testing.T) {
	tests := []struct {
		name  string
		used  string
		total string
		width string
		color string
	}{
		{"forty percent is green", "400", "1000", "40%", tier.ColorGood},
		{"half is yellow", "512", "1024", "50%", tier.ColorMedium},
		{"eighty is red", "800", "1000", "80%", tier.ColorBad},
		{"thirds are rounded", "1", "3", "33.33%", tier.ColorGood},
		{"over committed", "1500", "1000", "150%", tier.ColorBad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := surface.NewBoard()
			New(b, nil).RenderLive(snaptest.With(snaptest.Memory(tt.used, tt.total)))

			bar := region(t, b, surface.MemBar)
			assert.Equal(t, tt.width, bar.Style(surface.Width))
			assert.Equal(t, tt.color, bar.Style(surface.BackgroundColor))
		})
	}
}

func TestRenderLive_ZeroTotalMemory(t *testing.T) {
	b := surface.NewBoard()
	log := logger.NewBufferLogger()

	New(b, log).RenderLive(snaptest.With(snaptest.Memory("400", "0")))

	bar := region(t, b, surface.MemBar)
	assert.Equal(t, "0%", bar.Style(surface.Width))
	assert.Equal(t, tier.ColorUnknown, bar.Style(surface.BackgroundColor))
	assert.Equal(t, "0", region(t, b, surface.MemTotal).Text)
	assert.True(t, log.HasLevel("warn"))

	// The rest of the snapshot still renders
	assert.Equal(t, "● Live", region(t, b, surface.ConnectionStatus).Text)
	assert.Equal(t, "85", region(t, b, surface.HealthScore).Text)
}

func TestRenderOffline_OnlyTouchesIndicator(t *testing.T) {
	b := surface.NewBoard()
	r := New(b, nil)

	r.RenderLive(snaptest.Sample())
	before := b.State()

	r.RenderOffline()
	after := b.State()

	status := after[surface.ConnectionStatus]
	assert.Equal(t, "● Offline", status.Text)
	assert.Equal(t, "#f38ba8", status.Style(surface.Color))
	assert.Equal(t, OfflineBackground, status.Style(surface.Background))

	for _, id := range surface.Regions {
		if id == surface.ConnectionStatus {
			continue
		}
		assert.Equal(t, before[id], after[id], "region %s changed", id)
	}
}

func TestRenderOffline_BeforeAnyLiveRender(t *testing.T) {
	b := surface.NewBoard()
	New(b, nil).RenderOffline()

	assert.Equal(t, OfflineText, region(t, b, surface.ConnectionStatus).Text)
	assert.Empty(t, region(t, b, surface.HealthScore).Text)
}

func TestRenderLive_Idempotent(t *testing.T) {
	b := surface.NewBoard()
	r := New(b, nil)
	s := snaptest.With(snaptest.CPUUsage("77.7"), snaptest.Memory("3", "7"))

	r.RenderLive(s)
	first := b.State()
	r.RenderLive(s)
	second := b.State()

	assert.Equal(t, first, second)
}

func TestRenderLive_RecoversFromOffline(t *testing.T) {
	b := surface.NewBoard()
	r := New(b, nil)

	r.RenderOffline()
	r.RenderLive(snaptest.Sample())

	status := region(t, b, surface.ConnectionStatus)
	assert.Equal(t, LiveText, status.Text)
	assert.Equal(t, LiveColor, status.Style(surface.Color))
}

func TestPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{40, "40%"},
		{40.00000000000001, "40%"},
		{33.333333333, "33.33%"},
		{99.996, "100%"},
		{0, "0%"},
		{-0.001, "0%"},
		{150, "150%"},
		{math.NaN(), "0%"},
		{math.Inf(1), "0%"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Percent(tt.in))
		})
	}
}
