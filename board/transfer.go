package board

// EndpointKind tells which container one end of a transfer refers to.
type EndpointKind string

const (
	// EndpointBacklog refers to the backlog pool.
	EndpointBacklog EndpointKind = "backlog"

	// EndpointGrid refers to a grid position.
	EndpointGrid EndpointKind = "grid"
)

// An Endpoint is one end of a proposed transfer. Position is only meaningful
// when Kind is EndpointGrid.
type Endpoint struct {
	Kind     EndpointKind `json:"kind"`
	Position int          `json:"position"`
}

// BacklogEndpoint makes an endpoint referring to the backlog pool.
func BacklogEndpoint() Endpoint {
	return Endpoint{Kind: EndpointBacklog}
}

// GridEndpoint makes an endpoint referring to a grid position.
func GridEndpoint(position int) Endpoint {
	return Endpoint{Kind: EndpointGrid, Position: position}
}

// A TransferRequest describes a proposed movement of an item between the
// backlog and the grid, or within the grid. It only lives during validation.
type TransferRequest struct {
	ItemID string   `json:"item_id"`
	From   Endpoint `json:"from"`
	To     Endpoint `json:"to"`
}
