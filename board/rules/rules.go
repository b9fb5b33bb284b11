// Package rules provides the default bounds/occupancy authority.
package rules

import (
	"fmt"

	"github.com/xkazm04/goat/board"
)

// Evaluator is a stateless rule evaluator implementing board.Authority.
type Evaluator struct {
}

// NewEvaluator creates a new Evaluator.
func NewEvaluator() Evaluator {
	return Evaluator{}
}

// CanTransfer answers whether the proposed transfer is legal against the grid
// snapshot.
//
// Placements from the backlog require the destination slot to be empty and
// the item to exist and be unused. Grid-to-grid transfers only check bounds:
// an occupied destination means a swap and an empty source is left to the
// grid container to treat as a no-op.
func (e Evaluator) CanTransfer(
	req board.TransferRequest,
	state board.GridState,
	inventory board.InventoryAccessor,
) board.Decision {
	if req.From.Kind == board.EndpointGrid {
		if d := e.IsPositionInBounds(req.From.Position, state); !d.IsValid {
			return d
		}
	}

	if req.To.Kind == board.EndpointGrid {
		if d := e.IsPositionInBounds(req.To.Position, state); !d.IsValid {
			return d
		}
	}

	if req.From.Kind == board.EndpointBacklog &&
		req.To.Kind == board.EndpointGrid {
		return e.canPlaceFromBacklog(req, state, inventory)
	}

	return board.Allow()
}

func (e Evaluator) canPlaceFromBacklog(
	req board.TransferRequest,
	state board.GridState,
	inventory board.InventoryAccessor,
) board.Decision {
	if occupant := state.ItemAt(req.To.Position); occupant != nil {
		return board.Deny(
			board.CodePositionOccupied,
			fmt.Sprintf("position %d is already occupied", req.To.Position),
			map[string]any{
				"position":    req.To.Position,
				"occupant_id": occupant.ID,
			},
		)
	}

	if _, found := inventory.ItemByID(req.ItemID); !found {
		return board.Deny(
			board.CodeItemNotFound,
			fmt.Sprintf("backlog item %q does not exist", req.ItemID),
			map[string]any{"item_id": req.ItemID},
		)
	}

	if inventory.IsUsed(req.ItemID) {
		return board.Deny(
			board.CodeItemAlreadyUsed,
			fmt.Sprintf("backlog item %q is already placed", req.ItemID),
			map[string]any{"item_id": req.ItemID},
		)
	}

	return board.Allow()
}

// IsPositionInBounds answers whether the position falls in
// [0, state.MaxGridSize).
func (e Evaluator) IsPositionInBounds(
	position int,
	state board.GridState,
) board.Decision {
	if state.InBounds(position) {
		return board.Allow()
	}

	return board.Deny(
		board.CodePositionOutOfBounds,
		fmt.Sprintf("position %d is outside [0, %d)",
			position, state.MaxGridSize),
		map[string]any{
			"position":      position,
			"max_grid_size": state.MaxGridSize,
		},
	)
}

// CanReceiveAtPosition reports whether the position is in bounds and the slot
// is currently empty.
func (e Evaluator) CanReceiveAtPosition(
	position int,
	state board.GridState,
) bool {
	return state.InBounds(position) && state.ItemAt(position) == nil
}
