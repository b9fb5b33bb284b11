package board

// A Slot is one of the fixed positions of the grid. A slot is either empty or
// holds a GridItem.
type Slot struct {
	Position int       `json:"position"`
	Item     *GridItem `json:"item,omitempty"`
}

// Occupied reports whether the slot holds an item.
func (s Slot) Occupied() bool {
	return s.Item != nil
}

// GridState is a read-only snapshot of the grid contents. The length of Slots
// always equals MaxGridSize.
type GridState struct {
	Slots       []Slot `json:"slots"`
	MaxGridSize int    `json:"max_grid_size"`
}

// InBounds reports whether the position falls in [0, MaxGridSize).
func (s GridState) InBounds(position int) bool {
	return position >= 0 && position < s.MaxGridSize
}

// ItemAt returns the item at the position, or nil if the position is out of
// bounds or the slot is empty.
func (s GridState) ItemAt(position int) *GridItem {
	if !s.InBounds(position) {
		return nil
	}

	return s.Slots[position].Item
}

// OccupiedCount returns the number of occupied slots.
func (s GridState) OccupiedCount() int {
	count := 0
	for _, slot := range s.Slots {
		if slot.Occupied() {
			count++
		}
	}

	return count
}
