package board

// Command tags the kind of operation a result belongs to.
type Command string

const (
	CommandAssign Command = "assign"
	CommandMove   Command = "move"
	CommandSwap   Command = "swap"
	CommandRemove Command = "remove"
	CommandClear  Command = "clear"
)

// An OpError is a structured, non-thrown command error.
type OpError struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Debug   map[string]any `json:"debug,omitempty"`
}

// Metadata carries command-specific facts about a finished operation. Which
// fields are meaningful depends on the command:
//
//   - assign: ItemID, GridItemID, Position
//   - move:   FromPosition, ToPosition, WasSwap
//   - swap:   PositionA, PositionB, ItemAID, ItemBID
//   - remove: Position, WasEmpty, ItemID, GridItemID
//   - clear:  ClearedCount, BacklogItemIDs
type Metadata struct {
	// The position ints never carry omitempty: 0 is a valid grid position
	// and must survive serialization.
	Position     int `json:"position"`
	FromPosition int `json:"from_position"`
	ToPosition   int `json:"to_position"`
	PositionA    int `json:"position_a"`
	PositionB    int `json:"position_b"`

	ItemID     string `json:"item_id,omitempty"`
	GridItemID string `json:"grid_item_id,omitempty"`
	ItemAID    string `json:"item_a_id,omitempty"`
	ItemBID    string `json:"item_b_id,omitempty"`

	// WasSwap is true when a move command degraded into a swap because the
	// target slot was occupied.
	WasSwap bool `json:"was_swap,omitempty"`

	// WasEmpty marks a removal that found the slot already empty.
	WasEmpty bool `json:"was_empty,omitempty"`

	ClearedCount   int      `json:"cleared_count"`
	BacklogItemIDs []string `json:"backlog_item_ids,omitempty"`
}

// A Result is the record every command returns. Callers branch on Success;
// commands never raise errors to the caller.
type Result struct {
	Success     bool     `json:"success"`
	Command     Command  `json:"command"`
	OperationID string   `json:"operation_id"`
	Error       *OpError `json:"error,omitempty"`
	Metadata    Metadata `json:"metadata"`
}
