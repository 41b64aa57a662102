// Package agent serves /analyze snapshots built from the local host, so the
// dashboard has something real to watch without a separate deployment.
package agent

import (
	"context"
	"time"

	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// DefaultSampleWindow is how long CPU usage is measured when none is set.
const DefaultSampleWindow = 200 * time.Millisecond

// Reading is one raw sample of host resources.
type Reading struct {
	Time           time.Time
	UptimeSeconds  uint64
	CPUPercent     float64
	VCPUs          int
	Load1          float64
	Load5          float64
	UsedBytes      uint64
	TotalBytes     uint64
	AvailableBytes uint64
}

// Sampler takes readings of the host.
type Sampler interface {
	Sample(ctx context.Context) (Reading, error)
}

// HostSampler reads the local machine through gopsutil.
type HostSampler struct {
	// Window is the CPU measurement interval. Each Sample blocks for it.
	Window time.Duration
}

// NewHostSampler creates a sampler with the given CPU window.
func NewHostSampler(window time.Duration) *HostSampler {
	if window <= 0 {
		window = DefaultSampleWindow
	}
	return &HostSampler{Window: window}
}

// Sample collects CPU, load, memory and uptime. Load averages are optional
// (not every platform has them); everything else is required.
func (h *HostSampler) Sample(ctx context.Context) (Reading, error) {
	r := Reading{Time: time.Now().UTC()}

	percents, err := cpu.PercentWithContext(ctx, h.Window, false)
	if err != nil {
		return Reading{}, errors.WrapWithCode(err, errors.ErrAgent,
			"Cannot read CPU usage", "")
	}
	if len(percents) > 0 {
		r.CPUPercent = percents[0]
	}

	r.VCPUs, err = cpu.CountsWithContext(ctx, true)
	if err != nil || r.VCPUs <= 0 {
		return Reading{}, errors.WrapWithCode(err, errors.ErrAgent,
			"Cannot count CPU cores", "")
	}

	if avg, err := load.AvgWithContext(ctx); err == nil {
		r.Load1 = avg.Load1
		r.Load5 = avg.Load5
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Reading{}, errors.WrapWithCode(err, errors.ErrAgent,
			"Cannot read memory usage", "")
	}
	r.UsedBytes = vm.Used
	r.TotalBytes = vm.Total
	r.AvailableBytes = vm.Available

	r.UptimeSeconds, err = host.UptimeWithContext(ctx)
	if err != nil {
		return Reading{}, errors.WrapWithCode(err, errors.ErrAgent,
			"Cannot read host uptime", "")
	}

	return r, nil
}
