package doctor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/rileyhilliard/pulse/internal/poll"
	"github.com/rileyhilliard/pulse/internal/snapshot"
)

// probe fetches one snapshot and remembers it for the checks that follow.
type probe struct {
	fetcher poll.Fetcher
	timeout time.Duration

	once     sync.Once
	snap     snapshot.Snapshot
	err      error
	duration time.Duration
}

// EndpointChecks returns the checks that need a live snapshot. They share a
// single request.
func EndpointChecks(f poll.Fetcher, timeout, interval time.Duration) []Check {
	p := &probe{fetcher: f, timeout: timeout}
	return []Check{
		&EndpointReachableCheck{probe: p},
		&SnapshotCheck{probe: p},
		&LatencyCheck{probe: p, Interval: interval},
	}
}

func (p *probe) fetch(ctx context.Context) (snapshot.Snapshot, time.Duration, error) {
	p.once.Do(func() {
		if p.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, p.timeout)
			defer cancel()
		}
		start := time.Now()
		p.snap, p.err = p.fetcher.Fetch(ctx)
		p.duration = time.Since(start)
	})
	return p.snap, p.duration, p.err
}

// EndpointReachableCheck verifies the endpoint answers with a 2xx.
type EndpointReachableCheck struct {
	probe *probe
}

func (c *EndpointReachableCheck) Name() string     { return "endpoint_reachable" }
func (c *EndpointReachableCheck) Category() string { return "ENDPOINT" }

func (c *EndpointReachableCheck) Run(ctx context.Context) CheckResult {
	_, _, err := c.probe.fetch(ctx)
	if err != nil && !errors.IsCode(err, errors.ErrDecode) {
		return failure(err, "Start the agent with 'pulse agent' or check --endpoint")
	}
	return CheckResult{Status: StatusPass, Message: "Endpoint answered"}
}

// SnapshotCheck verifies the body is a snapshot the dashboard can render in
// full.
type SnapshotCheck struct {
	probe *probe
}

func (c *SnapshotCheck) Name() string     { return "snapshot_valid" }
func (c *SnapshotCheck) Category() string { return "ENDPOINT" }

func (c *SnapshotCheck) Run(ctx context.Context) CheckResult {
	snap, _, err := c.probe.fetch(ctx)
	switch {
	case errors.IsCode(err, errors.ErrDecode):
		return failure(err, "")
	case err != nil:
		return CheckResult{Status: StatusFail, Message: "No snapshot to check"}
	}
	if _, err := snap.Memory.Signals.UsedPercent(); err != nil {
		return CheckResult{
			Status:     StatusWarn,
			Message:    errors.Summary(err),
			Suggestion: "The memory bar will show as unknown until total_mb is non-zero",
		}
	}
	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("Snapshot OK: health %s, %q", snap.HealthScore, snap.Message),
	}
}

// LatencyCheck warns when a request takes longer than the poll interval,
// which means ticks will be skipped or cycles will overlap.
type LatencyCheck struct {
	probe    *probe
	Interval time.Duration
}

func (c *LatencyCheck) Name() string     { return "latency" }
func (c *LatencyCheck) Category() string { return "ENDPOINT" }

func (c *LatencyCheck) Run(ctx context.Context) CheckResult {
	_, d, err := c.probe.fetch(ctx)
	if err != nil && !errors.IsCode(err, errors.ErrDecode) {
		return CheckResult{Status: StatusFail, Message: "No response to time"}
	}
	d = d.Round(time.Millisecond)
	if c.Interval > 0 && d >= c.Interval {
		return CheckResult{
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Response took %s, longer than the %s interval", d, c.Interval),
			Suggestion: "Raise --interval or look at what slows the endpoint down",
		}
	}
	return CheckResult{Status: StatusPass, Message: fmt.Sprintf("Response in %s", d)}
}
