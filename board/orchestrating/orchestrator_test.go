package orchestrating

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/xkazm04/goat/board"
	"github.com/xkazm04/goat/board/hooking"
	"github.com/xkazm04/goat/board/id"
)

type hookRecorder struct {
	ctxs []hooking.HookCtx
}

func (r *hookRecorder) Func(ctx hooking.HookCtx) {
	r.ctxs = append(r.ctxs, ctx)
}

func emptyState(size int) board.GridState {
	state := board.GridState{
		Slots:       make([]board.Slot, size),
		MaxGridSize: size,
	}
	for i := range state.Slots {
		state.Slots[i].Position = i
	}

	return state
}

func occupy(
	state board.GridState,
	position int,
	item board.GridItem,
) board.GridState {
	item.Position = position
	item.Matched = true
	state.Slots[position].Item = &item

	return state
}

var _ = Describe("Orchestrator", func() {
	var (
		mockCtrl     *gomock.Controller
		mockGrid     *MockGrid
		mockBacklog  *MockBacklog
		authority    *MockAuthority
		notifier     *MockNotifier
		orchestrator *Orchestrator
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockGrid = NewMockGrid(mockCtrl)
		mockBacklog = NewMockBacklog(mockCtrl)
		authority = NewMockAuthority(mockCtrl)
		notifier = NewMockNotifier(mockCtrl)

		orchestrator = MakeBuilder().
			WithGrid(mockGrid).
			WithBacklog(mockBacklog).
			WithAuthority(authority).
			WithNotifier(notifier).
			WithItemIDGenerator(id.NewSequentialGenerator()).
			Build("Orchestrator")
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	Context("assign", func() {
		It("should place an item and mark it used", func() {
			item := board.BacklogItem{ID: "x", Title: "X"}

			mockGrid.EXPECT().State().Return(emptyState(3))
			authority.EXPECT().
				CanTransfer(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(
					req board.TransferRequest,
					_ board.GridState,
					_ board.InventoryAccessor,
				) board.Decision {
					Expect(req.ItemID).To(Equal("x"))
					Expect(req.From.Kind).To(Equal(board.EndpointBacklog))
					Expect(req.To.Kind).To(Equal(board.EndpointGrid))
					Expect(req.To.Position).To(Equal(1))
					return board.Allow()
				})
			mockGrid.EXPECT().
				AssignToGrid(gomock.Any(), 1).
				DoAndReturn(func(gi board.GridItem, _ int) error {
					Expect(gi.BacklogItemID).To(Equal("x"))
					Expect(gi.Position).To(Equal(1))
					Expect(gi.Matched).To(BeTrue())
					Expect(gi.Title).To(Equal("X"))
					return nil
				})
			mockBacklog.EXPECT().MarkUsed("x", true).Return(nil)

			result := orchestrator.Assign(item, 1, false)

			Expect(result.Success).To(BeTrue())
			Expect(result.Command).To(Equal(board.CommandAssign))
			Expect(result.Metadata.ItemID).To(Equal("x"))
			Expect(result.Metadata.Position).To(Equal(1))
			Expect(result.Metadata.GridItemID).NotTo(BeEmpty())
		})

		It("should reject an illegal transfer without mutating", func() {
			mockGrid.EXPECT().State().Return(emptyState(3))
			authority.EXPECT().
				CanTransfer(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(board.Deny(
					board.CodePositionOccupied, "occupied", nil))
			notifier.EXPECT().
				EmitValidationError(board.CodePositionOccupied)

			result := orchestrator.Assign(
				board.BacklogItem{ID: "y"}, 1, false)

			Expect(result.Success).To(BeFalse())
			Expect(result.Error.Code).To(Equal(board.CodePositionOccupied))
		})

		It("should bypass the authority when validation is skipped", func() {
			mockGrid.EXPECT().AssignToGrid(gomock.Any(), 0).Return(nil)
			mockBacklog.EXPECT().MarkUsed("x", true).Return(nil)

			result := orchestrator.Assign(
				board.BacklogItem{ID: "x"}, 0, true)

			Expect(result.Success).To(BeTrue())
		})

		It("should wrap a grid error as orchestration failure", func() {
			mockGrid.EXPECT().State().Return(emptyState(3))
			authority.EXPECT().
				CanTransfer(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(board.Allow())
			mockGrid.EXPECT().
				AssignToGrid(gomock.Any(), 1).
				Return(errors.New("grid broken"))

			result := orchestrator.Assign(
				board.BacklogItem{ID: "x"}, 1, false)

			Expect(result.Success).To(BeFalse())
			Expect(result.Error.Code).
				To(Equal(board.CodeOrchestrationFailure))
			Expect(result.Error.Message).To(ContainSubstring("grid broken"))
			Expect(result.Error.Debug).To(HaveKeyWithValue("position", 1))
		})

		It("should recover a panicking container", func() {
			mockGrid.EXPECT().State().Return(emptyState(3))
			authority.EXPECT().
				CanTransfer(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(board.Allow())
			mockGrid.EXPECT().
				AssignToGrid(gomock.Any(), 1).
				DoAndReturn(func(board.GridItem, int) error {
					panic("container exploded")
				})

			result := orchestrator.Assign(
				board.BacklogItem{ID: "x"}, 1, false)

			Expect(result.Success).To(BeFalse())
			Expect(result.Error.Code).
				To(Equal(board.CodeOrchestrationFailure))
			Expect(result.Error.Message).
				To(ContainSubstring("container exploded"))
		})
	})

	Context("move", func() {
		It("should report a plain move when the target is empty", func() {
			state := occupy(emptyState(3), 1, board.GridItem{ID: "g1"})

			mockGrid.EXPECT().State().Return(state)
			authority.EXPECT().
				CanTransfer(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(board.Allow())
			mockGrid.EXPECT().Move(1, 2).Return(nil)

			result := orchestrator.Move(1, 2)

			Expect(result.Success).To(BeTrue())
			Expect(result.Command).To(Equal(board.CommandMove))
			Expect(result.Metadata.WasSwap).To(BeFalse())
			Expect(result.Metadata.FromPosition).To(Equal(1))
			Expect(result.Metadata.ToPosition).To(Equal(2))
		})

		It("should reclassify as swap when the target is occupied", func() {
			state := occupy(emptyState(3), 1, board.GridItem{ID: "g1"})
			state = occupy(state, 2, board.GridItem{ID: "g2"})

			mockGrid.EXPECT().State().Return(state)
			authority.EXPECT().
				CanTransfer(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(board.Allow())
			mockGrid.EXPECT().Move(1, 2).Return(nil)

			result := orchestrator.Move(1, 2)

			Expect(result.Success).To(BeTrue())
			Expect(result.Command).To(Equal(board.CommandSwap))
			Expect(result.Metadata.WasSwap).To(BeTrue())
		})

		It("should surface validation failures", func() {
			mockGrid.EXPECT().State().Return(emptyState(3))
			authority.EXPECT().
				CanTransfer(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(board.Deny(
					board.CodePositionOutOfBounds, "out of bounds", nil))
			notifier.EXPECT().
				EmitValidationError(board.CodePositionOutOfBounds)

			result := orchestrator.Move(1, 7)

			Expect(result.Success).To(BeFalse())
			Expect(result.Command).To(Equal(board.CommandMove))
			Expect(result.Error.Code).
				To(Equal(board.CodePositionOutOfBounds))
		})
	})

	Context("swap", func() {
		It("should exchange two occupied positions", func() {
			state := occupy(emptyState(3), 0, board.GridItem{ID: "g1"})
			state = occupy(state, 2, board.GridItem{ID: "g2"})

			mockGrid.EXPECT().State().Return(state)
			authority.EXPECT().
				IsPositionInBounds(0, gomock.Any()).
				Return(board.Allow())
			authority.EXPECT().
				IsPositionInBounds(2, gomock.Any()).
				Return(board.Allow())
			mockGrid.EXPECT().Move(0, 2).Return(nil)

			result := orchestrator.Swap(0, 2)

			Expect(result.Success).To(BeTrue())
			Expect(result.Command).To(Equal(board.CommandSwap))
			Expect(result.Metadata.PositionA).To(Equal(0))
			Expect(result.Metadata.PositionB).To(Equal(2))
			Expect(result.Metadata.ItemAID).To(Equal("g1"))
			Expect(result.Metadata.ItemBID).To(Equal("g2"))
		})

		It("should refuse to swap with an empty slot", func() {
			state := occupy(emptyState(3), 0, board.GridItem{ID: "g1"})

			mockGrid.EXPECT().State().Return(state)
			authority.EXPECT().
				IsPositionInBounds(gomock.Any(), gomock.Any()).
				Return(board.Allow()).
				Times(2)
			notifier.EXPECT().
				EmitValidationError(board.CodeSourceSlotEmpty)

			result := orchestrator.Swap(0, 2)

			Expect(result.Success).To(BeFalse())
			Expect(result.Error.Code).To(Equal(board.CodeSourceSlotEmpty))
			Expect(result.Error.Debug).To(HaveKeyWithValue("position", 2))
		})

		It("should reject out-of-bounds positions before touching "+
			"occupancy", func() {
			mockGrid.EXPECT().State().Return(emptyState(3))
			authority.EXPECT().
				IsPositionInBounds(0, gomock.Any()).
				Return(board.Allow())
			authority.EXPECT().
				IsPositionInBounds(5, gomock.Any()).
				Return(board.Deny(
					board.CodePositionOutOfBounds, "out of bounds", nil))
			notifier.EXPECT().
				EmitValidationError(board.CodePositionOutOfBounds)

			result := orchestrator.Swap(0, 5)

			Expect(result.Success).To(BeFalse())
			Expect(result.Error.Code).
				To(Equal(board.CodePositionOutOfBounds))
		})
	})

	Context("remove", func() {
		It("should clear the slot and free the backlog item", func() {
			state := occupy(emptyState(3), 2,
				board.GridItem{ID: "g1", BacklogItemID: "x"})

			mockGrid.EXPECT().State().Return(state)
			authority.EXPECT().
				IsPositionInBounds(2, gomock.Any()).
				Return(board.Allow())
			mockGrid.EXPECT().RemoveFromGrid(2).Return(nil)
			mockBacklog.EXPECT().MarkUsed("x", false).Return(nil)

			result := orchestrator.Remove(2)

			Expect(result.Success).To(BeTrue())
			Expect(result.Metadata.WasEmpty).To(BeFalse())
			Expect(result.Metadata.ItemID).To(Equal("x"))
			Expect(result.Metadata.GridItemID).To(Equal("g1"))
		})

		It("should treat removing an empty slot as a success", func() {
			mockGrid.EXPECT().State().Return(emptyState(3))
			authority.EXPECT().
				IsPositionInBounds(1, gomock.Any()).
				Return(board.Allow())

			result := orchestrator.Remove(1)

			Expect(result.Success).To(BeTrue())
			Expect(result.Metadata.WasEmpty).To(BeTrue())
			Expect(result.Metadata.Position).To(Equal(1))
		})

		It("should skip the backlog for items without an origin", func() {
			state := occupy(emptyState(3), 0, board.GridItem{ID: "g1"})

			mockGrid.EXPECT().State().Return(state)
			authority.EXPECT().
				IsPositionInBounds(0, gomock.Any()).
				Return(board.Allow())
			mockGrid.EXPECT().RemoveFromGrid(0).Return(nil)

			result := orchestrator.Remove(0)

			Expect(result.Success).To(BeTrue())
			Expect(result.Metadata.ItemID).To(BeEmpty())
		})

		It("should reject out-of-bounds positions", func() {
			mockGrid.EXPECT().State().Return(emptyState(3))
			authority.EXPECT().
				IsPositionInBounds(9, gomock.Any()).
				Return(board.Deny(
					board.CodePositionOutOfBounds, "out of bounds", nil))
			notifier.EXPECT().
				EmitValidationError(board.CodePositionOutOfBounds)

			result := orchestrator.Remove(9)

			Expect(result.Success).To(BeFalse())
			Expect(result.Error.Code).
				To(Equal(board.CodePositionOutOfBounds))
		})
	})

	Context("clear", func() {
		It("should empty the grid and free every referenced item", func() {
			state := occupy(emptyState(3), 0,
				board.GridItem{ID: "g1", BacklogItemID: "x"})
			state = occupy(state, 2, board.GridItem{ID: "g2"})

			mockGrid.EXPECT().State().Return(state)
			mockGrid.EXPECT().ClearAll().Return(nil)
			mockBacklog.EXPECT().MarkUsed("x", false).Return(nil)

			result := orchestrator.Clear()

			Expect(result.Success).To(BeTrue())
			Expect(result.Metadata.ClearedCount).To(Equal(2))
			Expect(result.Metadata.BacklogItemIDs).To(Equal([]string{"x"}))
		})

		It("should succeed on an already-empty grid", func() {
			mockGrid.EXPECT().State().Return(emptyState(3))
			mockGrid.EXPECT().ClearAll().Return(nil)

			result := orchestrator.Clear()

			Expect(result.Success).To(BeTrue())
			Expect(result.Metadata.ClearedCount).To(Equal(0))
		})
	})

	Context("query helpers", func() {
		It("should delegate availability to the authority", func() {
			mockGrid.EXPECT().State().Return(emptyState(3))
			authority.EXPECT().
				CanReceiveAtPosition(1, gomock.Any()).
				Return(true)

			Expect(orchestrator.IsPositionAvailable(1)).To(BeTrue())
		})

		It("should return the first empty slot", func() {
			state := occupy(emptyState(3), 0, board.GridItem{ID: "g1"})

			mockGrid.EXPECT().State().Return(state)

			Expect(orchestrator.NextAvailablePosition()).To(Equal(1))
		})

		It("should report a full grid", func() {
			state := occupy(emptyState(2), 0, board.GridItem{ID: "g1"})
			state = occupy(state, 1, board.GridItem{ID: "g2"})

			mockGrid.EXPECT().State().Return(state)

			Expect(orchestrator.NextAvailablePosition()).
				To(Equal(PositionNone))
		})
	})

	Context("tracing", func() {
		It("should emit matching start and success events with "+
			"increasing operation ids", func() {
			recorder := &hookRecorder{}
			orchestrator.AcceptHook(recorder)

			mockGrid.EXPECT().State().Return(emptyState(3)).AnyTimes()
			authority.EXPECT().
				CanTransfer(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(board.Allow())
			mockGrid.EXPECT().AssignToGrid(gomock.Any(), 0).Return(nil)
			mockBacklog.EXPECT().MarkUsed("x", true).Return(nil)
			mockGrid.EXPECT().ClearAll().Return(nil)

			first := orchestrator.Assign(board.BacklogItem{ID: "x"}, 0, false)
			second := orchestrator.Clear()

			Expect(first.OperationID).To(Equal("1"))
			Expect(second.OperationID).To(Equal("2"))

			Expect(recorder.ctxs).To(HaveLen(4))
			Expect(recorder.ctxs[0].Pos).To(Equal(hooking.HookPosOpStart))
			Expect(recorder.ctxs[1].Pos).To(Equal(hooking.HookPosOpSuccess))
			Expect(recorder.ctxs[0].Item.(hooking.OpStart).ID).To(Equal("1"))
			Expect(recorder.ctxs[1].Item.(hooking.OpSuccess).ID).
				To(Equal("1"))
			Expect(recorder.ctxs[2].Item.(hooking.OpStart).ID).To(Equal("2"))
		})
	})
})
