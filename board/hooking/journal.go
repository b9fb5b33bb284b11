package hooking

// OpRecord is one finished operation, flattened for storage.
type OpRecord struct {
	ID           string `json:"id"`
	Command      string `json:"command"`
	Where        string `json:"where"`
	Success      bool   `json:"success"`
	ErrorCode    string `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	Detail       string `json:"detail,omitempty"`
}

// JournalBackend is a backend that can store operation records. This interface
// is recreated here to break a circular dependency between the datarecording
// package and the hooking package.
type JournalBackend interface {
	// Write writes a record to the storage.
	Write(r OpRecord)

	// Flush flushes the records to the storage, in case if the backend
	// buffers the records.
	Flush()
}

// OpJournal is a hook that stores finished operations into a backend.
type OpJournal struct {
	backend    JournalBackend
	pendingOps map[string]OpRecord
}

// NewOpJournal creates an OpJournal that writes into the given backend.
func NewOpJournal(backend JournalBackend) *OpJournal {
	return &OpJournal{
		backend:    backend,
		pendingOps: make(map[string]OpRecord),
	}
}

// Func records operation lifecycle events.
func (j *OpJournal) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosOpStart:
		j.startOp(ctx.Item.(OpStart))
	case HookPosOpSuccess:
		j.succeedOp(ctx.Item.(OpSuccess))
	case HookPosOpFailure:
		j.failOp(ctx.Item.(OpFailure))
	}
}

func (j *OpJournal) startOp(op OpStart) {
	j.startingOpMustBeValid(op)

	j.pendingOps[op.ID] = OpRecord{
		ID:      op.ID,
		Command: op.Command,
		Where:   op.Where,
		Detail:  op.Detail,
	}
}

func (j *OpJournal) startingOpMustBeValid(op OpStart) {
	if op.ID == "" {
		panic("operation ID must be set")
	}

	if op.Command == "" {
		panic("operation command must be set")
	}

	if op.Where == "" {
		panic("operation where must be set")
	}
}

func (j *OpJournal) succeedOp(op OpSuccess) {
	record, ok := j.pendingOps[op.ID]
	if !ok {
		return
	}

	delete(j.pendingOps, op.ID)

	record.Success = true
	if op.Detail != "" {
		record.Detail = op.Detail
	}

	j.backend.Write(record)
}

func (j *OpJournal) failOp(op OpFailure) {
	record, ok := j.pendingOps[op.ID]
	if !ok {
		return
	}

	delete(j.pendingOps, op.ID)

	record.Success = false
	record.ErrorCode = op.ErrorCode
	record.ErrorMessage = op.ErrorMessage

	j.backend.Write(record)
}

// Flush flushes the backend.
func (j *OpJournal) Flush() {
	j.backend.Flush()
}
