package monitor

import (
	"sync"

	"github.com/rileyhilliard/pulse/internal/snapshot"
)

// DefaultHistorySize is the default number of data points to retain per metric.
const DefaultHistorySize = 60

// History keeps recent score, CPU and memory values in ring buffers for
// sparkline rendering. It is safe for concurrent use.
type History struct {
	mu    sync.RWMutex
	score *ringBuffer
	cpu   *ringBuffer
	mem   *ringBuffer
}

// ringBuffer is a fixed-size circular buffer for float64 values.
type ringBuffer struct {
	data  []float64
	head  int
	count int
	size  int
}

// NewHistory creates a new history tracker with the specified buffer size.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{
		score: newRingBuffer(size),
		cpu:   newRingBuffer(size),
		mem:   newRingBuffer(size),
	}
}

// Push records a snapshot. Memory is skipped when its percentage is undefined.
func (h *History) Push(s snapshot.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.score.push(s.Score())
	h.cpu.push(s.CPU.Signals.Usage())
	if pct, err := s.Memory.Signals.UsedPercent(); err == nil {
		h.mem.push(pct)
	}
}

// Score returns the recorded health scores, oldest first.
func (h *History) Score() []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.score.values()
}

// CPU returns the recorded CPU usage percentages, oldest first.
func (h *History) CPU() []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cpu.values()
}

// Memory returns the recorded memory usage percentages, oldest first.
func (h *History) Memory() []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.mem.values()
}

// Len returns the number of recorded snapshots.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.score.count
}

func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]float64, size),
		size: size,
	}
}

func (r *ringBuffer) push(v float64) {
	r.data[r.head] = v
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// values returns a copy in insertion order.
func (r *ringBuffer) values() []float64 {
	out := make([]float64, r.count)
	start := (r.head - r.count + r.size) % r.size
	for i := 0; i < r.count; i++ {
		out[i] = r.data[(start+i)%r.size]
	}
	return out
}
