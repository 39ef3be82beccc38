// Package spigot implements the Rabinowitz-Wagon spigot algorithm for the
// decimal digits of π, in three execution shapes: sequential, a shared-memory
// worker pipeline, and a message-passing pipeline (see the distributed
// subpackage). All three shapes are built from the same three primitives:
// Denominator, Partition and CarryStream.
package spigot

import (
	"errors"
	"fmt"
)

// ErrOverflow reports that a settled accumulator cell would exceed the 32-bit
// range this module guarantees for steady-state values. The distributed
// RunWorker returns it; the sequential and parallel engines log the overflow
// and close their stream early instead of returning an error. Intermediate
// arithmetic is always done in int64; this only fires for N far beyond any
// value this implementation has been exercised at.
var ErrOverflow = errors.New("spigot: arithmetic overflow")

// ErrBadColumn is returned by Denominator for a column index outside
// [0, MaxColumn].
var ErrBadColumn = errors.New("spigot: column index out of range")

// ErrWorkerPanic describes a recovered worker panic. The engines in this
// package do not return it: a recovered panic is logged and the digit stream
// is closed early, so the consumer sees only a short stream.
type ErrWorkerPanic struct {
	Worker int
	Cause  any
}

func (e *ErrWorkerPanic) Error() string {
	return fmt.Sprintf("spigot: worker %d panicked: %v", e.Worker, e.Cause)
}
