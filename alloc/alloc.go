// Package alloc is the allocation seam of the clone engine.
//
// Every node, string, sequence and buffer the engine creates is requested
// from an Allocator before it is built and returned to it when released.
// Go's garbage collector still owns the memory; the Allocator owns the
// accounting. That makes three things possible that a bare heap does not
// offer:
//   - a byte budget that a clone may not exceed (Counter)
//   - an exact live allocation count, so a failed clone can be shown to
//     leave nothing behind (Counter.Live)
//   - deterministic failure at the n-th allocation (FailAt)
//
// All allocators in this package are safe for concurrent use.
package alloc

// Kind classifies an allocation request.
type Kind uint8

const (
	// KindNode is a single tree node (a struct container).
	KindNode Kind = iota

	// KindString is the storage of a non-empty string.
	KindString

	// KindSequence is the backing array of an owned sequence.
	KindSequence

	// KindBuffer is the module's code buffer.
	KindBuffer
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindBuffer:
		return "buffer"
	default:
		return "unknown"
	}
}

// Allocator accounts for allocations made by the clone engine.
//
// Allocate is called before an object of the given kind and size is
// created and may refuse it by returning an error, in which case nothing
// was allocated. Free is called exactly once for every successful Allocate,
// with the same kind and size.
type Allocator interface {
	Allocate(kind Kind, size int) error
	Free(kind Kind, size int)
}

// Heap is the unbounded allocator. It never fails and keeps no state.
type Heap struct{}

func (Heap) Allocate(Kind, int) error { return nil }
func (Heap) Free(Kind, int)           {}
