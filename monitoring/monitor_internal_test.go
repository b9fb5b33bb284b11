package monitoring

import (
	"encoding/json"
	"net/http/httptest"

	"github.com/xkazm04/goat/board"
	"github.com/xkazm04/goat/board/naming"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type sampleGrid struct {
	naming.NamedBase

	state board.GridState
}

func (g *sampleGrid) State() board.GridState {
	return g.state
}

type sampleBacklog struct {
	naming.NamedBase

	items []board.BacklogItem
}

func (p *sampleBacklog) Items() []board.BacklogItem {
	return p.items
}

func newSampleGrid() *sampleGrid {
	g := &sampleGrid{NamedBase: naming.MakeNamedBase("Grid")}
	g.state = board.GridState{
		Slots: []board.Slot{
			{Position: 0},
			{Position: 1, Item: &board.GridItem{
				ID:       "g1",
				Position: 1,
				Title:    "First",
			}},
			{Position: 2},
		},
		MaxGridSize: 3,
	}

	return g
}

var _ = Describe("Monitor", func() {
	var (
		m *Monitor
	)

	BeforeEach(func() {
		m = NewMonitor()
	})

	It("should register grid and backlog as components", func() {
		m.RegisterGrid(newSampleGrid())
		m.RegisterBacklog(&sampleBacklog{
			NamedBase: naming.MakeNamedBase("Backlog"),
		})

		Expect(m.components).To(HaveLen(2))
	})

	It("should list registered component names", func() {
		m.RegisterGrid(newSampleGrid())

		w := httptest.NewRecorder()
		m.listComponents(w, nil)

		var names []string
		err := json.Unmarshal(w.Body.Bytes(), &names)

		Expect(err).To(BeNil())
		Expect(names).To(ConsistOf("Grid"))
	})

	It("should serve the grid state", func() {
		m.RegisterGrid(newSampleGrid())

		w := httptest.NewRecorder()
		m.gridState(w, nil)

		var state board.GridState
		err := json.Unmarshal(w.Body.Bytes(), &state)

		Expect(err).To(BeNil())
		Expect(state.MaxGridSize).To(Equal(3))
		Expect(state.ItemAt(1).ID).To(Equal("g1"))
		Expect(state.ItemAt(0)).To(BeNil())
	})

	It("should return 404 when no grid is registered", func() {
		w := httptest.NewRecorder()
		m.gridState(w, nil)

		Expect(w.Code).To(Equal(404))
	})

	It("should serve the backlog items", func() {
		m.RegisterBacklog(&sampleBacklog{
			NamedBase: naming.MakeNamedBase("Backlog"),
			items: []board.BacklogItem{
				{ID: "x", Title: "X"},
				{ID: "y", Title: "Y", Used: true},
			},
		})

		w := httptest.NewRecorder()
		m.backlogItems(w, nil)

		var items []board.BacklogItem
		err := json.Unmarshal(w.Body.Bytes(), &items)

		Expect(err).To(BeNil())
		Expect(items).To(HaveLen(2))
		Expect(items[1].Used).To(BeTrue())
	})

	It("should return 404 for an unknown component", func() {
		w := httptest.NewRecorder()
		c := m.findComponentOr404(w, "Nope")

		Expect(c).To(BeNil())
		Expect(w.Code).To(Equal(404))
	})
})
