// Package grid provides the in-memory grid container.
package grid

import (
	"fmt"

	"github.com/xkazm04/goat/board"
	"github.com/xkazm04/goat/board/hooking"
	"github.com/xkazm04/goat/board/session"
)

// HookPosGridAssign marks when an item is placed into a slot.
var HookPosGridAssign = &hooking.HookPos{Name: "Grid Assign"}

// HookPosGridRemove marks when a slot is reset to empty.
var HookPosGridRemove = &hooking.HookPos{Name: "Grid Remove"}

// HookPosGridMove marks when a slot content moves, including swaps.
var HookPosGridMove = &hooking.HookPos{Name: "Grid Move"}

// HookPosGridClear marks when the whole grid is emptied.
var HookPosGridClear = &hooking.HookPos{Name: "Grid Clear"}

// Comp is a fixed-capacity grid of ranking slots implementing board.Grid.
// Every mutation is propagated to the session store before it returns.
type Comp struct {
	hooking.HookableBase

	name    string
	slots   []*board.GridItem
	session *session.Store
}

// Builder can help building grids.
type Builder struct {
	capacity int
	session  *session.Store
}

// MakeBuilder creates a Builder.
func MakeBuilder() Builder {
	return Builder{}
}

// WithCapacity defines the number of slots of the grid. The capacity is fixed
// for the lifetime of the grid.
func (b Builder) WithCapacity(capacity int) Builder {
	b.capacity = capacity
	return b
}

// WithSession defines the session store the grid propagates its mutations to.
func (b Builder) WithSession(s *session.Store) Builder {
	b.session = s
	return b
}

// Build builds a new grid.
func (b Builder) Build(name string) *Comp {
	if b.capacity <= 0 {
		panic("grid capacity must be positive")
	}

	c := &Comp{
		name:    name,
		slots:   make([]*board.GridItem, b.capacity),
		session: b.session,
	}

	c.propagate()

	return c
}

// Name returns the name of the grid.
func (c *Comp) Name() string {
	return c.name
}

// Capacity returns the number of slots.
func (c *Comp) Capacity() int {
	return len(c.slots)
}

// State returns a snapshot of the grid contents.
func (c *Comp) State() board.GridState {
	state := board.GridState{
		Slots:       make([]board.Slot, len(c.slots)),
		MaxGridSize: len(c.slots),
	}

	for i, item := range c.slots {
		state.Slots[i].Position = i
		if item != nil {
			copied := *item
			state.Slots[i].Item = &copied
		}
	}

	return state
}

// AssignToGrid places the item into the slot at the position.
func (c *Comp) AssignToGrid(item board.GridItem, position int) error {
	if err := c.positionMustBeInRange(position); err != nil {
		return err
	}

	if c.slots[position] != nil {
		return fmt.Errorf("slot %d is already occupied", position)
	}

	item.Position = position
	item.Matched = true
	c.slots[position] = &item

	c.propagate()
	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosGridAssign,
		Item:   item,
	})

	return nil
}

// RemoveFromGrid resets the slot at the position to empty. Removing from an
// empty slot is a no-op.
func (c *Comp) RemoveFromGrid(position int) error {
	if err := c.positionMustBeInRange(position); err != nil {
		return err
	}

	removed := c.slots[position]
	if removed == nil {
		return nil
	}

	c.slots[position] = nil

	c.propagate()
	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosGridRemove,
		Item:   *removed,
	})

	return nil
}

// Move relocates the occupant of from to to. When the target slot is
// occupied, the two slots exchange their contents. Moving from an empty slot
// is a no-op.
func (c *Comp) Move(from, to int) error {
	if err := c.positionMustBeInRange(from); err != nil {
		return err
	}

	if err := c.positionMustBeInRange(to); err != nil {
		return err
	}

	if c.slots[from] == nil || from == to {
		return nil
	}

	c.slots[from], c.slots[to] = c.slots[to], c.slots[from]
	c.slots[to].Position = to
	if c.slots[from] != nil {
		c.slots[from].Position = from
	}

	c.propagate()
	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosGridMove,
		Item:   *c.slots[to],
	})

	return nil
}

// ClearAll empties every slot.
func (c *Comp) ClearAll() error {
	for i := range c.slots {
		c.slots[i] = nil
	}

	c.propagate()
	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosGridClear,
	})

	return nil
}

func (c *Comp) positionMustBeInRange(position int) error {
	if position < 0 || position >= len(c.slots) {
		return fmt.Errorf("position %d is outside [0, %d)",
			position, len(c.slots))
	}

	return nil
}

func (c *Comp) propagate() {
	if c.session == nil {
		return
	}

	c.session.Update(c.State())
}
