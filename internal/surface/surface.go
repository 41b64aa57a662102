// Package surface models the presentation surface the dashboard renders
// into: a fixed set of addressable regions, each holding text content and a
// handful of style properties.
//
// Renderers write through the Surface interface and never know how (or
// whether) the regions are drawn. Board is the in-memory implementation the
// terminal view and the tests read back from.
package surface

// RegionID is the stable identifier of one writable display region.
type RegionID string

// Region identifiers.
const (
	ConnectionStatus RegionID = "connection-status"
	Timestamp        RegionID = "timestamp"
	Uptime           RegionID = "uptime"
	HealthScore      RegionID = "health-score"
	ScoreCircle      RegionID = "score-circle"
	StatusMessage    RegionID = "status-message"
	CPUUsage         RegionID = "cpu-usage"
	CPUBar           RegionID = "cpu-bar"
	Load1m           RegionID = "load-1m"
	Load5m           RegionID = "load-5m"
	CPUCores         RegionID = "cpu-cores"
	CPURatio         RegionID = "cpu-ratio"
	MemUsed          RegionID = "mem-used"
	MemTotal         RegionID = "mem-total"
	MemAvailable     RegionID = "mem-available"
	MemHeadroom      RegionID = "mem-headroom"
	MemBar           RegionID = "mem-bar"
)

// Regions lists every region identifier in display order.
var Regions = []RegionID{
	ConnectionStatus,
	Timestamp,
	Uptime,
	HealthScore,
	ScoreCircle,
	StatusMessage,
	CPUUsage,
	CPUBar,
	Load1m,
	Load5m,
	CPUCores,
	CPURatio,
	MemUsed,
	MemTotal,
	MemAvailable,
	MemHeadroom,
	MemBar,
}

// Property is a style attribute that can be set on a region.
type Property string

// Style properties.
const (
	Color           Property = "color"
	Background      Property = "background"
	BackgroundColor Property = "background-color"
	BorderColor     Property = "border-color"
	Width           Property = "width" // percentage string, e.g. "42.5%"
)

// Surface is a writable set of regions.
type Surface interface {
	SetText(id RegionID, text string)
	SetStyle(id RegionID, prop Property, value string)
}
