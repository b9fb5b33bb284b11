package orchestrating

import (
	"github.com/xkazm04/goat/board"
	"github.com/xkazm04/goat/board/hooking"
	"github.com/xkazm04/goat/board/id"
	"github.com/xkazm04/goat/board/naming"
)

// Builder can help building orchestrators.
type Builder struct {
	grid      board.Grid
	backlog   board.Backlog
	authority board.Authority
	notifier  board.Notifier
	itemIDs   id.Generator
}

// MakeBuilder creates a Builder.
func MakeBuilder() Builder {
	return Builder{}
}

// WithGrid defines the grid container the orchestrator mutates.
func (b Builder) WithGrid(g board.Grid) Builder {
	b.grid = g
	return b
}

// WithBacklog defines the backlog pool the orchestrator mutates.
func (b Builder) WithBacklog(p board.Backlog) Builder {
	b.backlog = p
	return b
}

// WithAuthority defines the rule evaluator consulted before mutating.
func (b Builder) WithAuthority(a board.Authority) Builder {
	b.authority = a
	return b
}

// WithNotifier defines the channel validation errors are surfaced on.
func (b Builder) WithNotifier(n board.Notifier) Builder {
	b.notifier = n
	return b
}

// WithItemIDGenerator defines the generator used for grid item identities.
// Defaults to a globally unique generator; tests use a sequential one.
func (b Builder) WithItemIDGenerator(g id.Generator) Builder {
	b.itemIDs = g
	return b
}

// Build builds a new Orchestrator.
func (b Builder) Build(name string) *Orchestrator {
	b.collaboratorsMustBeSet()

	if b.itemIDs == nil {
		b.itemIDs = id.NewXIDGenerator()
	}

	return &Orchestrator{
		NamedBase:    naming.MakeNamedBase(name),
		HookableBase: hooking.HookableBase{},

		grid:      b.grid,
		backlog:   b.backlog,
		authority: b.authority,
		notifier:  b.notifier,
		itemIDs:   b.itemIDs,
	}
}

func (b Builder) collaboratorsMustBeSet() {
	if b.grid == nil {
		panic("orchestrator requires a grid")
	}

	if b.backlog == nil {
		panic("orchestrator requires a backlog")
	}

	if b.authority == nil {
		panic("orchestrator requires an authority")
	}

	if b.notifier == nil {
		panic("orchestrator requires a notifier")
	}
}
