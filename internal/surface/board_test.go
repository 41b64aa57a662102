package surface

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard_HasEveryRegion(t *testing.T) {
	b := NewBoard()
	state := b.State()

	assert.Len(t, state, len(Regions))
	for _, id := range Regions {
		r, ok := b.Region(id)
		require.True(t, ok, "region %s should exist", id)
		assert.Empty(t, r.Text)
		assert.Empty(t, r.Styles)
	}
}

func TestRegionIDsAreUnique(t *testing.T) {
	seen := make(map[RegionID]bool)
	for _, id := range Regions {
		assert.False(t, seen[id], "duplicate region %s", id)
		seen[id] = true
	}
}

func TestBoard_SetTextAndStyle(t *testing.T) {
	b := NewBoard()

	b.SetText(CPUUsage, "42%")
	b.SetStyle(CPUBar, Width, "42%")
	b.SetStyle(CPUBar, BackgroundColor, "#a6e3a1")

	usage, _ := b.Region(CPUUsage)
	assert.Equal(t, "42%", usage.Text)

	bar, _ := b.Region(CPUBar)
	assert.Equal(t, "42%", bar.Style(Width))
	assert.Equal(t, "#a6e3a1", bar.Style(BackgroundColor))
	assert.Equal(t, "", bar.Style(Color))

	assert.Equal(t, uint64(3), b.Writes())
}

func TestBoard_UnknownRegionIsDropped(t *testing.T) {
	b := NewBoard()

	b.SetText("gpu-usage", "12%")
	b.SetStyle("gpu-bar", Width, "12%")

	_, ok := b.Region("gpu-usage")
	assert.False(t, ok)
	assert.Len(t, b.State(), len(Regions))
	assert.Equal(t, uint64(0), b.Writes())
}

func TestBoard_CopiesAreIndependent(t *testing.T) {
	b := NewBoard()
	b.SetStyle(MemBar, Width, "40%")

	state := b.State()
	state[MemBar].Styles[Width] = "99%"

	r, _ := b.Region(MemBar)
	r.Styles[Width] = "1%"

	again, _ := b.Region(MemBar)
	assert.Equal(t, "40%", again.Style(Width))
}

func TestBoard_ConcurrentWrites(t *testing.T) {
	b := NewBoard()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.SetText(Timestamp, "t")
			b.SetStyle(ConnectionStatus, Color, "#a6e3a1")
			_ = b.State()
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(100), b.Writes())
}
