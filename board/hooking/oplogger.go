package hooking

import (
	"log"
)

// OpLogger is a hook that prints operation lifecycle information.
type OpLogger struct {
	*log.Logger
}

// NewOpLogger returns a new OpLogger which will write into the logger.
func NewOpLogger(logger *log.Logger) *OpLogger {
	h := new(OpLogger)
	h.Logger = logger
	return h
}

// Func writes the operation information into the logger.
func (h *OpLogger) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosOpStart:
		op := ctx.Item.(OpStart)
		h.Printf("op %s start, %s @ %s, %s",
			op.ID, op.Command, op.Where, op.Detail)
	case HookPosOpSuccess:
		op := ctx.Item.(OpSuccess)
		h.Printf("op %s success, %s, %s", op.ID, op.Command, op.Detail)
	case HookPosOpFailure:
		op := ctx.Item.(OpFailure)
		h.Printf("op %s failure, %s, [%s] %s",
			op.ID, op.Command, op.ErrorCode, op.ErrorMessage)
	}
}
