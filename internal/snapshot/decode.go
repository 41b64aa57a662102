package snapshot

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/rileyhilliard/pulse/internal/errors"
)

// presence detects string fields that were absent or null, which plain
// unmarshalling into string cannot distinguish from "".
type presence struct {
	Timestamp *string `json:"timestamp"`
	Message   *string `json:"message"`
}

// Decode parses and validates a snapshot payload. Every field of the payload
// shape is required; any failure is returned as an ErrDecode error.
func Decode(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, errors.WrapWithCode(err, errors.ErrDecode,
			"Invalid snapshot JSON",
			"Check that the endpoint serves the /analyze payload")
	}

	var p presence
	// Cannot fail: the same bytes just unmarshalled into a superset.
	_ = json.Unmarshal(data, &p)

	var missing []string
	if p.Timestamp == nil {
		missing = append(missing, "timestamp")
	}
	if p.Message == nil {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return Snapshot{}, errors.New(errors.ErrDecode,
			"Snapshot is missing "+strings.Join(missing, ", "),
			"Check that the endpoint serves the /analyze payload")
	}

	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	if quoted := quotedNumbers(data, s.numericFields()); len(quoted) > 0 {
		return Snapshot{}, errors.New(errors.ErrDecode,
			"Snapshot has invalid values: "+strings.Join(quoted, ", "),
			"Numeric fields must be JSON numbers, not strings")
	}
	return s, nil
}

// quotedNumbers lists numeric fields that arrived as JSON strings. json.Number
// accepts "85" as readily as 85, so the raw token has to be checked.
func quotedNumbers(data []byte, fields []numericField) []string {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil
	}

	var quoted []string
	for _, f := range fields {
		if raw, ok := lookup(root, strings.Split(f.path, ".")); ok && len(raw) > 0 && raw[0] == '"' {
			quoted = append(quoted, fmt.Sprintf("%s=%s (want number)", f.path, raw))
		}
	}
	return quoted
}

// lookup walks a dotted path through nested objects.
func lookup(obj map[string]json.RawMessage, path []string) (json.RawMessage, bool) {
	raw, ok := obj[path[0]]
	if !ok {
		return nil, false
	}
	if len(path) == 1 {
		return raw, true
	}
	var next map[string]json.RawMessage
	if err := json.Unmarshal(raw, &next); err != nil {
		return nil, false
	}
	return lookup(next, path[1:])
}

type numericField struct {
	path            string
	value           json.Number
	positiveInteger bool
}

func (s Snapshot) numericFields() []numericField {
	return []numericField{
		{path: "uptime_seconds", value: s.UptimeSeconds},
		{path: "health_score", value: s.HealthScore},
		{path: "cpu_metric.signals.current_usage_percent", value: s.CPU.Signals.CurrentUsagePercent},
		{path: "cpu_metric.signals.load_average.last_1_min", value: s.CPU.Signals.LoadAverage.Last1Min},
		{path: "cpu_metric.signals.load_average.last_5_min", value: s.CPU.Signals.LoadAverage.Last5Min},
		{path: "cpu_metric.capacity.allocated_vcpus", value: s.CPU.Capacity.AllocatedVCPUs, positiveInteger: true},
		{path: "cpu_metric.capacity.utilization_ratio", value: s.CPU.Capacity.UtilizationRatio},
		{path: "memory_metric.signals.used_mb", value: s.Memory.Signals.UsedMB},
		{path: "memory_metric.signals.total_mb", value: s.Memory.Signals.TotalMB},
		{path: "memory_metric.signals.available_mb", value: s.Memory.Signals.AvailableMB},
		{path: "memory_metric.capacity.headroom_percent", value: s.Memory.Capacity.HeadroomPercent},
	}
}

// Validate checks that every numeric field is present and finite, and that
// allocated_vcpus is a positive whole number (4 and 4.0 alike). Other ranges
// are not enforced: out-of-range values are displayed as the endpoint sent
// them.
func (s Snapshot) Validate() error {
	var missing, invalid []string

	for _, f := range s.numericFields() {
		if f.value == "" {
			missing = append(missing, f.path)
			continue
		}
		v, err := f.value.Float64()
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			invalid = append(invalid, fmt.Sprintf("%s=%s", f.path, f.value))
			continue
		}
		if f.positiveInteger && (v != math.Trunc(v) || v <= 0) {
			invalid = append(invalid, fmt.Sprintf("%s=%s (want positive integer)", f.path, f.value))
		}
	}

	if len(missing) > 0 {
		return errors.New(errors.ErrDecode,
			"Snapshot is missing "+strings.Join(missing, ", "),
			"Check that the endpoint serves the /analyze payload")
	}
	if len(invalid) > 0 {
		return errors.New(errors.ErrDecode,
			"Snapshot has invalid values: "+strings.Join(invalid, ", "),
			"")
	}
	return nil
}
