package alloc

import (
	"fmt"
	"sync/atomic"
)

// FailAt wraps an Allocator and refuses exactly the n-th Allocate call
// (1-based). Every other call, and every Free, is passed through.
// With n <= 0 it never fails and only counts.
type FailAt struct {
	next  Allocator
	n     int64
	calls atomic.Int64
	hit   atomic.Bool
}

// NewFailAt returns an allocator failing the n-th request made through it.
// A nil next allocator means Heap.
func NewFailAt(next Allocator, n int) *FailAt {
	if next == nil {
		next = Heap{}
	}
	return &FailAt{next: next, n: int64(n)}
}

// Allocate implements Allocator.
func (f *FailAt) Allocate(kind Kind, size int) error {
	call := f.calls.Add(1)
	if call == f.n {
		f.hit.Store(true)
		return NewError(ErrInjectedFault, kind, size, fmt.Sprintf("injected fault at allocation #%d", call))
	}
	return f.next.Allocate(kind, size)
}

// Free implements Allocator.
func (f *FailAt) Free(kind Kind, size int) {
	f.next.Free(kind, size)
}

// Calls returns the number of Allocate calls seen so far, including the
// refused one.
func (f *FailAt) Calls() int { return int(f.calls.Load()) }

// Triggered reports whether the fault has been injected.
func (f *FailAt) Triggered() bool { return f.hit.Load() }
