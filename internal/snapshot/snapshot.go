// Package snapshot defines the host health payload served by the /analyze
// endpoint and decodes it.
//
// Numeric fields keep the exact text the endpoint sent (json.Number) so that
// display regions can show values verbatim, while accessors expose them as
// float64 for classification. A Snapshot contains only value types: copying
// it copies everything, so a Snapshot handed to a renderer cannot be changed
// behind its back.
package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/rileyhilliard/pulse/internal/errors"
)

// Snapshot is one decoded payload of host health metrics.
type Snapshot struct {
	Timestamp     string       `json:"timestamp"`
	UptimeSeconds json.Number  `json:"uptime_seconds"`
	HealthScore   json.Number  `json:"health_score"`
	Message       string       `json:"message"`
	CPU           CPUMetric    `json:"cpu_metric"`
	Memory        MemoryMetric `json:"memory_metric"`
}

// CPUMetric groups CPU usage signals and capacity.
type CPUMetric struct {
	Signals  CPUSignals  `json:"signals"`
	Capacity CPUCapacity `json:"capacity"`
}

// CPUSignals are the live CPU readings.
type CPUSignals struct {
	CurrentUsagePercent json.Number `json:"current_usage_percent"`
	LoadAverage         LoadAverage `json:"load_average"`
}

// LoadAverage holds the 1 and 5 minute load averages.
type LoadAverage struct {
	Last1Min json.Number `json:"last_1_min"`
	Last5Min json.Number `json:"last_5_min"`
}

// CPUCapacity describes the CPU allocation.
type CPUCapacity struct {
	AllocatedVCPUs   json.Number `json:"allocated_vcpus"`
	UtilizationRatio json.Number `json:"utilization_ratio"`
}

// MemoryMetric groups memory usage signals and capacity.
type MemoryMetric struct {
	Signals  MemorySignals  `json:"signals"`
	Capacity MemoryCapacity `json:"capacity"`
}

// MemorySignals are the live memory readings, in megabytes.
type MemorySignals struct {
	UsedMB      json.Number `json:"used_mb"`
	TotalMB     json.Number `json:"total_mb"`
	AvailableMB json.Number `json:"available_mb"`
}

// MemoryCapacity describes remaining memory headroom.
type MemoryCapacity struct {
	HeadroomPercent json.Number `json:"headroom_percent"`
}

// Score returns the health score (conceptually 0-100, higher is better).
func (s Snapshot) Score() float64 {
	return number(s.HealthScore)
}

// Usage returns the current CPU usage percentage.
func (c CPUSignals) Usage() float64 {
	return number(c.CurrentUsagePercent)
}

// UsedPercent returns used_mb as a percentage of total_mb.
// A zero total has no defined percentage and yields an ErrCompute error.
func (m MemorySignals) UsedPercent() (float64, error) {
	total := number(m.TotalMB)
	if total == 0 {
		return 0, errors.New(errors.ErrCompute,
			fmt.Sprintf("Memory usage is undefined: total_mb is %s", m.TotalMB),
			"The endpoint reported no memory; check the agent's memory probe")
	}
	// Multiply first so round figures stay exact (400*100/1000 == 40).
	return number(m.UsedMB) * 100 / total, nil
}

// number converts a validated json.Number. Decode rejects values that do not
// parse, so the error is unreachable for decoded snapshots.
func number(n json.Number) float64 {
	f, err := n.Float64()
	if err != nil {
		return 0
	}
	return f
}
