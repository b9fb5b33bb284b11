// Package board defines the data model and collaborator contracts of the
// ranking board: a fixed-capacity grid of positions, a backlog of placeable
// items, and the validation and notification surfaces the orchestrator is
// wired with.
package board

// A BacklogItem is a candidate for placement on the grid.
type BacklogItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`

	// Used reports whether the item currently occupies some grid slot.
	Used bool `json:"used"`
}

// A GridItem is an item placed on the grid. It carries a grid-local identity,
// distinct from the backlog identity it was created from.
type GridItem struct {
	ID string `json:"id"`

	// BacklogItemID references the BacklogItem this item was created from.
	// Empty for items placed without a backlog origin.
	BacklogItemID string `json:"backlog_item_id,omitempty"`

	// Position must always equal the index of the slot holding the item.
	Position int `json:"position"`

	// Matched is true iff the item occupies a slot.
	Matched bool `json:"matched"`

	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}
