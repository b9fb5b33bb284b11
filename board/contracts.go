package board

// InventoryAccessor is the read-only view of the backlog that the Authority
// consults during validation.
type InventoryAccessor interface {
	// ItemByID returns the backlog item with the given id.
	ItemByID(id string) (BacklogItem, bool)

	// IsUsed reports whether the item currently occupies a grid slot.
	IsUsed(id string) bool
}

// Backlog is the pool of placeable items. Only the used flag is mutated
// through this contract; item creation and destruction belong to the pool
// owner.
type Backlog interface {
	InventoryAccessor

	// MarkUsed sets the used flag of the item with the given id.
	MarkUsed(id string, used bool) error
}

// Grid owns the ordered, fixed-length sequence of ranking slots. Every
// mutation must be propagated to the session store synchronously before the
// call returns.
type Grid interface {
	// State returns a snapshot of the grid contents.
	State() GridState

	// AssignToGrid places the item into the slot at the position.
	AssignToGrid(item GridItem, position int) error

	// RemoveFromGrid resets the slot at the position to empty. Removing from
	// an empty slot is a no-op.
	RemoveFromGrid(position int) error

	// Move relocates the occupant of from to to. When the target slot is
	// occupied, the two slots exchange their contents instead.
	Move(from, to int) error

	// ClearAll empties every slot.
	ClearAll() error
}

// Authority is the stateless rule evaluator that decides whether a proposed
// transfer is legal against a grid snapshot.
type Authority interface {
	// CanTransfer answers whether the transfer is legal.
	CanTransfer(
		req TransferRequest,
		state GridState,
		inventory InventoryAccessor,
	) Decision

	// IsPositionInBounds answers whether the position falls inside the grid.
	IsPositionInBounds(position int, state GridState) Decision

	// CanReceiveAtPosition reports whether the position is in bounds and
	// currently empty.
	CanReceiveAtPosition(position int, state GridState) bool
}

// Notifier receives validation-error codes for user-facing surfacing. Calls
// are fire-and-forget.
type Notifier interface {
	EmitValidationError(code Code)
}
