package poll

import (
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/pulse/internal/snapshot"
	"github.com/rileyhilliard/pulse/internal/surface"
)

// ConnectionState reflects the outcome of the latest completed poll cycle.
type ConnectionState int

const (
	// Offline means the latest cycle failed, or none has completed yet.
	Offline ConnectionState = iota
	// Live means the latest cycle succeeded.
	Live
)

// String returns a human-readable state.
func (s ConnectionState) String() string {
	switch s {
	case Live:
		return "live"
	default:
		return "offline"
	}
}

// OverlapPolicy decides what happens when a tick fires while an earlier
// cycle is still in flight.
type OverlapPolicy string

const (
	// OverlapSkip drops the tick; at most one cycle is in flight.
	OverlapSkip OverlapPolicy = "skip"
	// OverlapAllow starts another cycle anyway. Cycles may then complete out
	// of order and the last one to complete wins the surface.
	OverlapAllow OverlapPolicy = "allow"
)

// ParseOverlap parses a policy name, case-insensitively. Empty means skip.
func ParseOverlap(s string) (OverlapPolicy, error) {
	switch OverlapPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", OverlapSkip:
		return OverlapSkip, nil
	case OverlapAllow:
		return OverlapAllow, nil
	default:
		return "", fmt.Errorf("unknown overlap policy %q (want skip or allow)", s)
	}
}

// Result describes one completed poll cycle.
type Result struct {
	Seq      uint64 // send order, starting at 1
	State    ConnectionState
	Snapshot snapshot.Snapshot // zero value when Err is set
	Err      error
	// Surface is what Options.View returned right after this cycle's
	// render. Nil when no View is set or the cycle was discarded.
	Surface  surface.State
	Started  time.Time
	Duration time.Duration
}

// OK reports whether the cycle produced a snapshot.
func (r Result) OK() bool {
	return r.Err == nil
}
