package agent

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/rileyhilliard/pulse/internal/snapshot"
	"github.com/rileyhilliard/pulse/internal/tier"
)

const mib = 1024 * 1024

// Status messages, one per score tier.
const (
	MessageGood   = "All systems nominal"
	MessageMedium = "Elevated resource usage"
	MessageBad    = "System under heavy load"
)

// Score weighs CPU and memory pressure into a 0-100 health score, rounded to
// one decimal.
func Score(cpuPercent, memPercent float64) float64 {
	s := 100 - (0.6*cpuPercent + 0.4*memPercent)
	return round(math.Max(0, math.Min(100, s)), 1)
}

// Message describes a score.
func Message(score float64) string {
	switch tier.Classify(score, true) {
	case tier.Good:
		return MessageGood
	case tier.Medium:
		return MessageMedium
	default:
		return MessageBad
	}
}

// Build turns a reading into the /analyze payload.
func Build(r Reading) snapshot.Snapshot {
	used := math.Round(float64(r.UsedBytes) / mib)
	total := math.Round(float64(r.TotalBytes) / mib)
	avail := math.Round(float64(r.AvailableBytes) / mib)

	var memPercent, headroom float64
	if r.TotalBytes > 0 {
		memPercent = float64(r.UsedBytes) * 100 / float64(r.TotalBytes)
		headroom = float64(r.AvailableBytes) * 100 / float64(r.TotalBytes)
	}

	var ratio float64
	if r.VCPUs > 0 {
		ratio = r.Load1 / float64(r.VCPUs)
	}

	cpuPercent := round(r.CPUPercent, 1)
	score := Score(cpuPercent, memPercent)

	return snapshot.Snapshot{
		Timestamp:     r.Time.UTC().Format(time.RFC3339),
		UptimeSeconds: json.Number(strconv.FormatUint(r.UptimeSeconds, 10)),
		HealthScore:   num(score),
		Message:       Message(score),
		CPU: snapshot.CPUMetric{
			Signals: snapshot.CPUSignals{
				CurrentUsagePercent: num(cpuPercent),
				LoadAverage: snapshot.LoadAverage{
					Last1Min: num(round(r.Load1, 2)),
					Last5Min: num(round(r.Load5, 2)),
				},
			},
			Capacity: snapshot.CPUCapacity{
				AllocatedVCPUs:   json.Number(strconv.Itoa(r.VCPUs)),
				UtilizationRatio: num(round(ratio, 2)),
			},
		},
		Memory: snapshot.MemoryMetric{
			Signals: snapshot.MemorySignals{
				UsedMB:      num(used),
				TotalMB:     num(total),
				AvailableMB: num(avail),
			},
			Capacity: snapshot.MemoryCapacity{
				HeadroomPercent: num(round(headroom, 1)),
			},
		},
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func num(v float64) json.Number {
	return json.Number(strconv.FormatFloat(v, 'f', -1, 64))
}
