// Package orchestrating provides the command executor that keeps the grid,
// the backlog, and the session snapshot mutually consistent. It is the only
// component that issues mutations against the containers; callers talk to it
// through the five commands and two query helpers, and branch on the returned
// result instead of handling errors.
package orchestrating

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/xkazm04/goat/board"
	"github.com/xkazm04/goat/board/hooking"
	"github.com/xkazm04/goat/board/id"
	"github.com/xkazm04/goat/board/naming"
)

// PositionNone is the sentinel NextAvailablePosition returns when the grid is
// full.
const PositionNone = -1

// An Orchestrator executes assign, move, swap, remove, and clear commands
// atomically across its injected containers. It owns no state besides the
// operation-id counter; construct one per session, or share it across
// sessions when the injected containers are session-scoped.
//
// The orchestrator is synchronous and assumes a single logical caller thread.
// Concurrent invocation against the same container set must be serialized by
// the caller.
type Orchestrator struct {
	naming.NamedBase
	hooking.HookableBase

	grid      board.Grid
	backlog   board.Backlog
	authority board.Authority
	notifier  board.Notifier
	itemIDs   id.Generator

	opSeq atomic.Uint64
}

// Assign places a backlog item into the grid at the position. When
// skipValidation is set the authority is not consulted; this is meant for
// trusted internal callers such as bulk session restore. The used-flag
// bookkeeping still happens.
func (o *Orchestrator) Assign(
	item board.BacklogItem,
	position int,
	skipValidation bool,
) board.Result {
	opID := o.nextOpID()
	hooking.StartOp(opID, o, string(board.CommandAssign),
		fmt.Sprintf("item %s -> position %d", item.ID, position))

	if !skipValidation {
		req := board.TransferRequest{
			ItemID: item.ID,
			From:   board.BacklogEndpoint(),
			To:     board.GridEndpoint(position),
		}

		decision := o.authority.CanTransfer(req, o.grid.State(), o.backlog)
		if !decision.IsValid {
			return o.validationFailure(board.CommandAssign, opID, decision)
		}
	}

	debug := map[string]any{"item_id": item.ID, "position": position}

	return o.runMutatePhase(board.CommandAssign, opID, debug,
		func() board.Result {
			gridItem := o.newGridItem(item, position)

			if err := o.grid.AssignToGrid(gridItem, position); err != nil {
				return o.orchestrationFailure(
					board.CommandAssign, opID, err, debug)
			}

			if err := o.backlog.MarkUsed(item.ID, true); err != nil {
				return o.orchestrationFailure(
					board.CommandAssign, opID, err, debug)
			}

			return o.succeed(board.CommandAssign, opID,
				board.Metadata{
					ItemID:     item.ID,
					GridItemID: gridItem.ID,
					Position:   position,
				},
				fmt.Sprintf("item %s placed at %d", item.ID, position))
		})
}

// Move relocates whatever occupies from to to. When the target slot is
// occupied the grid performs a swap instead, and the result is reported with
// the swap command tag. Moving within the grid never changes any used flag.
func (o *Orchestrator) Move(from, to int) board.Result {
	opID := o.nextOpID()
	hooking.StartOp(opID, o, string(board.CommandMove),
		fmt.Sprintf("position %d -> position %d", from, to))

	state := o.grid.State()

	req := board.TransferRequest{
		From: board.GridEndpoint(from),
		To:   board.GridEndpoint(to),
	}
	if occupant := state.ItemAt(from); occupant != nil {
		req.ItemID = occupant.ID
	}

	decision := o.authority.CanTransfer(req, state, o.backlog)
	if !decision.IsValid {
		return o.validationFailure(board.CommandMove, opID, decision)
	}

	// The reclassification is informational only; the container call is the
	// same either way.
	command := board.CommandMove
	wasSwap := state.ItemAt(to) != nil
	if wasSwap {
		command = board.CommandSwap
	}

	debug := map[string]any{"from": from, "to": to}

	return o.runMutatePhase(command, opID, debug, func() board.Result {
		if err := o.grid.Move(from, to); err != nil {
			return o.orchestrationFailure(command, opID, err, debug)
		}

		return o.succeed(command, opID,
			board.Metadata{
				FromPosition: from,
				ToPosition:   to,
				WasSwap:      wasSwap,
			},
			fmt.Sprintf("position %d -> position %d", from, to))
	})
}

// Swap exchanges the contents of two occupied positions. Unlike Move, both
// slots are required to already hold an item.
func (o *Orchestrator) Swap(positionA, positionB int) board.Result {
	opID := o.nextOpID()
	hooking.StartOp(opID, o, string(board.CommandSwap),
		fmt.Sprintf("position %d <-> position %d", positionA, positionB))

	state := o.grid.State()

	for _, position := range []int{positionA, positionB} {
		decision := o.authority.IsPositionInBounds(position, state)
		if !decision.IsValid {
			return o.validationFailure(board.CommandSwap, opID, decision)
		}
	}

	itemA := state.ItemAt(positionA)
	itemB := state.ItemAt(positionB)

	for _, side := range []struct {
		position int
		item     *board.GridItem
	}{
		{positionA, itemA},
		{positionB, itemB},
	} {
		if side.item == nil {
			return o.validationFailure(board.CommandSwap, opID, board.Deny(
				board.CodeSourceSlotEmpty,
				fmt.Sprintf("position %d holds no item to swap",
					side.position),
				map[string]any{"position": side.position},
			))
		}
	}

	debug := map[string]any{"position_a": positionA, "position_b": positionB}

	return o.runMutatePhase(board.CommandSwap, opID, debug,
		func() board.Result {
			if err := o.grid.Move(positionA, positionB); err != nil {
				return o.orchestrationFailure(
					board.CommandSwap, opID, err, debug)
			}

			return o.succeed(board.CommandSwap, opID,
				board.Metadata{
					PositionA: positionA,
					PositionB: positionB,
					ItemAID:   itemA.ID,
					ItemBID:   itemB.ID,
				},
				fmt.Sprintf("position %d <-> position %d",
					positionA, positionB))
		})
}

// Remove clears a slot, freeing its item back to the backlog. Removing an
// already-empty slot is a success, flagged through metadata.
func (o *Orchestrator) Remove(position int) board.Result {
	opID := o.nextOpID()
	hooking.StartOp(opID, o, string(board.CommandRemove),
		fmt.Sprintf("position %d", position))

	state := o.grid.State()

	decision := o.authority.IsPositionInBounds(position, state)
	if !decision.IsValid {
		return o.validationFailure(board.CommandRemove, opID, decision)
	}

	removed := state.ItemAt(position)
	if removed == nil {
		return o.succeed(board.CommandRemove, opID,
			board.Metadata{Position: position, WasEmpty: true},
			fmt.Sprintf("position %d already empty", position))
	}

	debug := map[string]any{"position": position}

	return o.runMutatePhase(board.CommandRemove, opID, debug,
		func() board.Result {
			if err := o.grid.RemoveFromGrid(position); err != nil {
				return o.orchestrationFailure(
					board.CommandRemove, opID, err, debug)
			}

			// Items placed without a backlog origin leave the pool untouched.
			if removed.BacklogItemID != "" {
				err := o.backlog.MarkUsed(removed.BacklogItemID, false)
				if err != nil {
					return o.orchestrationFailure(
						board.CommandRemove, opID, err, debug)
				}
			}

			return o.succeed(board.CommandRemove, opID,
				board.Metadata{
					Position:   position,
					ItemID:     removed.BacklogItemID,
					GridItemID: removed.ID,
				},
				fmt.Sprintf("position %d cleared", position))
		})
}

// Clear empties the entire grid and releases every referenced backlog item.
// Clearing is always legal, so no validation applies.
func (o *Orchestrator) Clear() board.Result {
	opID := o.nextOpID()
	hooking.StartOp(opID, o, string(board.CommandClear), "clear all")

	state := o.grid.State()

	clearedCount := 0
	backlogItemIDs := make([]string, 0, len(state.Slots))
	for _, slot := range state.Slots {
		if !slot.Occupied() {
			continue
		}

		clearedCount++
		if slot.Item.BacklogItemID != "" {
			backlogItemIDs = append(backlogItemIDs, slot.Item.BacklogItemID)
		}
	}

	debug := map[string]any{"cleared_count": clearedCount}

	return o.runMutatePhase(board.CommandClear, opID, debug,
		func() board.Result {
			if err := o.grid.ClearAll(); err != nil {
				return o.orchestrationFailure(
					board.CommandClear, opID, err, debug)
			}

			for _, itemID := range backlogItemIDs {
				if err := o.backlog.MarkUsed(itemID, false); err != nil {
					return o.orchestrationFailure(
						board.CommandClear, opID, err, debug)
				}
			}

			return o.succeed(board.CommandClear, opID,
				board.Metadata{
					ClearedCount:   clearedCount,
					BacklogItemIDs: backlogItemIDs,
				},
				fmt.Sprintf("%d slots cleared", clearedCount))
		})
}

// IsPositionAvailable reports whether the position is in bounds and currently
// empty.
func (o *Orchestrator) IsPositionAvailable(position int) bool {
	return o.authority.CanReceiveAtPosition(position, o.grid.State())
}

// NextAvailablePosition returns the lowest-index empty slot, or PositionNone
// when the grid is full. The scan order makes first-fit placement
// deterministic for any automatic-assignment caller.
func (o *Orchestrator) NextAvailablePosition() int {
	state := o.grid.State()

	for _, slot := range state.Slots {
		if !slot.Occupied() {
			return slot.Position
		}
	}

	return PositionNone
}

func (o *Orchestrator) newGridItem(
	item board.BacklogItem,
	position int,
) board.GridItem {
	return board.GridItem{
		ID:            o.itemIDs.Generate(),
		BacklogItemID: item.ID,
		Position:      position,
		Matched:       true,
		Title:         item.Title,
		Subtitle:      item.Description,
		ImageURL:      item.ImageURL,
	}
}

// nextOpID generates a monotonically increasing identifier used purely for
// tracing. It carries no ordering guarantee between concurrent callers.
func (o *Orchestrator) nextOpID() string {
	return strconv.FormatUint(o.opSeq.Add(1), 10)
}

// runMutatePhase runs the mutate phase of a command, converting any container
// panic into an orchestration-failure result. Mutations applied before the
// failing call stay applied; the accepted no-rollback contract keeps the
// inconsistency visible instead of hiding it.
func (o *Orchestrator) runMutatePhase(
	command board.Command,
	opID string,
	debug map[string]any,
	mutate func() board.Result,
) (result board.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = o.orchestrationFailure(
				command, opID, fmt.Errorf("%v", r), debug)
		}
	}()

	return mutate()
}

func (o *Orchestrator) succeed(
	command board.Command,
	opID string,
	metadata board.Metadata,
	detail string,
) board.Result {
	hooking.SucceedOp(opID, o, string(command), detail)

	return board.Result{
		Success:     true,
		Command:     command,
		OperationID: opID,
		Metadata:    metadata,
	}
}

// validationFailure surfaces the error code to the notification channel and
// builds the failure result. Nothing has been mutated at this point.
func (o *Orchestrator) validationFailure(
	command board.Command,
	opID string,
	decision board.Decision,
) board.Result {
	o.notifier.EmitValidationError(decision.ErrorCode)

	hooking.FailOp(opID, o, string(command),
		string(decision.ErrorCode), decision.ErrorMessage)

	return board.Result{
		Success:     false,
		Command:     command,
		OperationID: opID,
		Error: &board.OpError{
			Code:    decision.ErrorCode,
			Message: decision.ErrorMessage,
			Debug:   decision.Debug,
		},
	}
}

// orchestrationFailure wraps a container error raised during the mutate
// phase. It is a programming or integration defect, not a user-correctable
// condition, so the notification channel is not involved.
func (o *Orchestrator) orchestrationFailure(
	command board.Command,
	opID string,
	err error,
	debug map[string]any,
) board.Result {
	hooking.FailOp(opID, o, string(command),
		string(board.CodeOrchestrationFailure), err.Error())

	return board.Result{
		Success:     false,
		Command:     command,
		OperationID: opID,
		Error: &board.OpError{
			Code:    board.CodeOrchestrationFailure,
			Message: err.Error(),
			Debug:   debug,
		},
	}
}
