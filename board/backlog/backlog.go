// Package backlog provides the in-memory pool of placeable items.
package backlog

import (
	"fmt"

	"github.com/xkazm04/goat/board"
)

// A Pool is an ordered collection of backlog items implementing
// board.Backlog.
type Pool struct {
	name  string
	items map[string]*board.BacklogItem
	order []string
}

// Builder can help building backlog pools.
type Builder struct {
	items []board.BacklogItem
}

// MakeBuilder creates a Builder.
func MakeBuilder() Builder {
	return Builder{}
}

// WithItems defines the initial items of the pool.
func (b Builder) WithItems(items ...board.BacklogItem) Builder {
	b.items = append(b.items, items...)
	return b
}

// Build builds a new Pool.
func (b Builder) Build(name string) *Pool {
	p := &Pool{
		name:  name,
		items: make(map[string]*board.BacklogItem),
	}

	for _, item := range b.items {
		p.Add(item)
	}

	return p
}

// Name returns the name of the pool.
func (p *Pool) Name() string {
	return p.name
}

// Add puts an item into the pool. Adding an item with a duplicated id panics.
func (p *Pool) Add(item board.BacklogItem) {
	if _, ok := p.items[item.ID]; ok {
		panic("backlog item " + item.ID + " already exists")
	}

	stored := item
	p.items[item.ID] = &stored
	p.order = append(p.order, item.ID)
}

// ItemByID returns the item with the given id.
func (p *Pool) ItemByID(id string) (board.BacklogItem, bool) {
	item, ok := p.items[id]
	if !ok {
		return board.BacklogItem{}, false
	}

	return *item, true
}

// IsUsed reports whether the item with the given id currently occupies a grid
// slot. Unknown ids report false.
func (p *Pool) IsUsed(id string) bool {
	item, ok := p.items[id]
	if !ok {
		return false
	}

	return item.Used
}

// MarkUsed sets the used flag of the item with the given id.
func (p *Pool) MarkUsed(id string, used bool) error {
	item, ok := p.items[id]
	if !ok {
		return fmt.Errorf("backlog item %q does not exist", id)
	}

	item.Used = used

	return nil
}

// Items returns the pool contents in insertion order.
func (p *Pool) Items() []board.BacklogItem {
	items := make([]board.BacklogItem, 0, len(p.order))
	for _, id := range p.order {
		items = append(items, *p.items[id])
	}

	return items
}
