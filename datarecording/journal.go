package datarecording

import (
	"github.com/xkazm04/goat/board/hooking"
)

// OperationTable is the table the journal backend writes operation records
// into.
const OperationTable = "operations"

// JournalBackend adapts a DataRecorder into a backend the hooking.OpJournal
// can write to.
type JournalBackend struct {
	recorder DataRecorder
}

// NewJournalBackend creates a JournalBackend and prepares the operation
// table.
func NewJournalBackend(recorder DataRecorder) *JournalBackend {
	recorder.CreateTable(OperationTable, hooking.OpRecord{})

	return &JournalBackend{recorder: recorder}
}

// Write buffers one finished operation.
func (b *JournalBackend) Write(r hooking.OpRecord) {
	b.recorder.InsertData(OperationTable, r)
}

// Flush flushes the buffered operations into the database.
func (b *JournalBackend) Flush() {
	b.recorder.Flush()
}
