package id

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/xid"
)

// Generator can generate IDs.
type Generator interface {
	Generate() string
}

// NewSequentialGenerator returns a generator that produces deterministic,
// monotonically increasing IDs. Suitable for tests and single-session tracing.
func NewSequentialGenerator() Generator {
	return &sequentialGenerator{}
}

// NewXIDGenerator returns a generator that produces globally unique IDs. The
// IDs generated are not deterministic.
func NewXIDGenerator() Generator {
	return xidGenerator{}
}

type sequentialGenerator struct {
	nextID uint64
}

func (g *sequentialGenerator) Generate() string {
	idNumber := atomic.AddUint64(&g.nextID, 1)
	id := strconv.FormatUint(idNumber, 10)

	return id
}

type xidGenerator struct {
}

func (g xidGenerator) Generate() string {
	return xid.New().String()
}
