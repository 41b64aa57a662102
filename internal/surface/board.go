package surface

import (
	"sync"
)

// Region is the current content of one display region.
type Region struct {
	Text   string              `json:"text"`
	Styles map[Property]string `json:"styles,omitempty"`
}

// Style returns the value of a style property, or "" when unset.
func (r Region) Style(prop Property) string {
	return r.Styles[prop]
}

// State is a point-in-time copy of every region on a board.
type State map[RegionID]Region

// Board is an in-memory Surface holding exactly the regions in Regions.
// Writes to identifiers outside that set are dropped. It is safe for
// concurrent use: poll cycles write while the view reads.
type Board struct {
	mu      sync.RWMutex
	regions map[RegionID]*Region
	writes  uint64
}

// NewBoard creates a board with every known region empty.
func NewBoard() *Board {
	regions := make(map[RegionID]*Region, len(Regions))
	for _, id := range Regions {
		regions[id] = &Region{Styles: make(map[Property]string)}
	}
	return &Board{regions: regions}
}

// SetText replaces a region's text content.
func (b *Board) SetText(id RegionID, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	r, ok := b.regions[id]
	if !ok {
		return
	}
	r.Text = text
	b.writes++
}

// SetStyle sets one style property on a region.
func (b *Board) SetStyle(id RegionID, prop Property, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	r, ok := b.regions[id]
	if !ok {
		return
	}
	r.Styles[prop] = value
	b.writes++
}

// Region returns a copy of one region. Unknown identifiers return an empty
// region and false.
func (b *Board) Region(id RegionID) (Region, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	r, ok := b.regions[id]
	if !ok {
		return Region{}, false
	}
	return copyRegion(r), true
}

// State returns a deep copy of every region.
func (b *Board) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()

	state := make(State, len(b.regions))
	for id, r := range b.regions {
		state[id] = copyRegion(r)
	}
	return state
}

// Writes returns the number of accepted writes since the board was created.
func (b *Board) Writes() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.writes
}

func copyRegion(r *Region) Region {
	styles := make(map[Property]string, len(r.Styles))
	for k, v := range r.Styles {
		styles[k] = v
	}
	return Region{Text: r.Text, Styles: styles}
}
