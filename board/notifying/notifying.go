// Package notifying provides simple notification channel implementations.
package notifying

import (
	"log"

	"github.com/xkazm04/goat/board"
)

// A Collector accumulates emitted validation-error codes. Useful for tests
// and for surfacing batched feedback.
type Collector struct {
	codes []board.Code
}

// NewCollector creates a Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// EmitValidationError records the code.
func (c *Collector) EmitValidationError(code board.Code) {
	c.codes = append(c.codes, code)
}

// Codes returns the recorded codes in emission order.
func (c *Collector) Codes() []board.Code {
	return c.codes
}

// Reset drops all recorded codes.
func (c *Collector) Reset() {
	c.codes = nil
}

// A LogNotifier writes validation-error codes into a logger.
type LogNotifier struct {
	*log.Logger
}

// NewLogNotifier creates a LogNotifier which will write into the logger.
func NewLogNotifier(logger *log.Logger) *LogNotifier {
	return &LogNotifier{Logger: logger}
}

// EmitValidationError logs the code.
func (n *LogNotifier) EmitValidationError(code board.Code) {
	n.Printf("validation error: %s", code)
}
