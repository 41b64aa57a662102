// Package testing provides snapshot fixtures for tests.
package testing

import (
	"encoding/json"

	"github.com/rileyhilliard/pulse/internal/snapshot"
)

// SampleJSON is a complete, healthy /analyze payload.
const SampleJSON = `{
  "timestamp": "2026-10-14T12:00:00Z",
  "uptime_seconds": 86400,
  "health_score": 85,
  "message": "All systems nominal",
  "cpu_metric": {
    "signals": {
      "current_usage_percent": 42.5,
      "load_average": {"last_1_min": 0.52, "last_5_min": 0.71}
    },
    "capacity": {"allocated_vcpus": 4, "utilization_ratio": 0.13}
  },
  "memory_metric": {
    "signals": {"used_mb": 400, "total_mb": 1000, "available_mb": 600},
    "capacity": {"headroom_percent": 60}
  }
}`

// Sample returns SampleJSON decoded. It panics if the fixture is invalid.
func Sample() snapshot.Snapshot {
	s, err := snapshot.Decode([]byte(SampleJSON))
	if err != nil {
		panic(err)
	}
	return s
}

// With returns Sample with each mutator applied in order.
func With(mutators ...func(*snapshot.Snapshot)) snapshot.Snapshot {
	s := Sample()
	for _, m := range mutators {
		m(&s)
	}
	return s
}

// Score sets health_score.
func Score(v string) func(*snapshot.Snapshot) {
	return func(s *snapshot.Snapshot) { s.HealthScore = json.Number(v) }
}

// CPUUsage sets cpu_metric.signals.current_usage_percent.
func CPUUsage(v string) func(*snapshot.Snapshot) {
	return func(s *snapshot.Snapshot) { s.CPU.Signals.CurrentUsagePercent = json.Number(v) }
}

// Memory sets memory_metric.signals.used_mb and total_mb.
func Memory(used, total string) func(*snapshot.Snapshot) {
	return func(s *snapshot.Snapshot) {
		s.Memory.Signals.UsedMB = json.Number(used)
		s.Memory.Signals.TotalMB = json.Number(total)
	}
}

// Message sets message.
func Message(v string) func(*snapshot.Snapshot) {
	return func(s *snapshot.Snapshot) { s.Message = v }
}

// Encode marshals a snapshot back to its wire form.
func Encode(s snapshot.Snapshot) []byte {
	data, err := json.Marshal(s)
	if err != nil {
		panic(err)
	}
	return data
}
