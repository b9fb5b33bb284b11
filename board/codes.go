package board

// Code is a machine-readable error code. Validation-class codes are owned by
// the Authority; the orchestration-failure code is owned by the orchestrator.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Validation errors
	CodePositionOutOfBounds Code = "POSITION_OUT_OF_BOUNDS"
	CodePositionOccupied    Code = "POSITION_OCCUPIED"
	CodeItemNotFound        Code = "ITEM_NOT_FOUND"
	CodeItemAlreadyUsed     Code = "ITEM_ALREADY_USED"
	CodeSourceSlotEmpty     Code = "SOURCE_SLOT_EMPTY"

	// CodeOrchestrationFailure covers any container error raised during the
	// mutate phase of a command.
	CodeOrchestrationFailure Code = "ORCHESTRATION_FAILURE"
)

// A Decision is the Authority's answer to a validation question.
type Decision struct {
	IsValid      bool           `json:"is_valid"`
	ErrorCode    Code           `json:"error_code,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	Debug        map[string]any `json:"debug,omitempty"`
}

// Allow makes a passing decision.
func Allow() Decision {
	return Decision{IsValid: true}
}

// Deny makes a failing decision with the given code and message.
func Deny(code Code, message string, debug map[string]any) Decision {
	return Decision{
		IsValid:      false,
		ErrorCode:    code,
		ErrorMessage: message,
		Debug:        debug,
	}
}
