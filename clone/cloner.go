package clone

import (
	"io"
	"strings"
	"unsafe"

	"github.com/charmbracelet/log"

	"github.com/gogpu/fxclone/alloc"
)

// Options configures a Cloner.
type Options struct {
	// Allocator accounts for every allocation. Nil means alloc.Heap.
	Allocator alloc.Allocator

	// Logger receives debug records about completed and rolled back
	// module clones. Nil discards them.
	Logger *log.Logger

	// Parallel clones the top-level sequences of a module concurrently.
	Parallel bool
}

// DefaultOptions returns sequential cloning on the unbounded heap without
// logging.
func DefaultOptions() Options {
	return Options{
		Allocator: alloc.Heap{},
		Logger:    nil,
		Parallel:  false,
	}
}

// Cloner clones and releases fx trees through one allocator.
type Cloner struct {
	alloc    alloc.Allocator
	logger   *log.Logger
	parallel bool
}

// New creates a Cloner.
func New(opts Options) *Cloner {
	c := &Cloner{
		alloc:    opts.Allocator,
		logger:   opts.Logger,
		parallel: opts.Parallel,
	}
	if c.alloc == nil {
		c.alloc = alloc.Heap{}
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c
}

// Allocator returns the allocator the Cloner accounts against.
func (c *Cloner) Allocator() alloc.Allocator { return c.alloc }

func sizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

var (
	pointerSize = int(unsafe.Sizeof(uintptr(0)))
	idSize      = int(unsafe.Sizeof(uint32(0)))
)

// newNode allocates an empty node container.
func newNode[T any](c *Cloner) (*T, error) {
	if err := c.alloc.Allocate(alloc.KindNode, sizeOf[T]()); err != nil {
		return nil, wrap(err)
	}
	return new(T), nil
}

// freeNode clears n and returns its container.
func freeNode[T any](c *Cloner, n *T) {
	var zero T
	*n = zero
	c.alloc.Free(alloc.KindNode, sizeOf[T]())
}

// stringField names one string to copy into a node.
type stringField struct {
	name string
	dst  *string
	src  string
}

// cloneStrings copies each source string into fresh storage, in order.
// Empty strings are not allocations and stay empty. On failure the strings
// copied so far are left in place for the caller's release.
func (c *Cloner) cloneStrings(fields ...stringField) error {
	for _, f := range fields {
		if f.src == "" {
			*f.dst = ""
			continue
		}
		if err := c.alloc.Allocate(alloc.KindString, len(f.src)); err != nil {
			return at(err, f.name)
		}
		*f.dst = strings.Clone(f.src)
	}
	return nil
}

// releaseStrings returns the storage of every non-empty string and clears it.
func (c *Cloner) releaseStrings(ss ...*string) {
	for _, s := range ss {
		if *s == "" {
			continue
		}
		c.alloc.Free(alloc.KindString, len(*s))
		*s = ""
	}
}

// cloneSeq clones an owned sequence in order. The backing array is
// allocated even for an empty source so the result is never nil. On
// failure every element cloned so far and the backing array are released
// and nil is returned.
func cloneSeq[T any](c *Cloner, name string, src []*T, clone func(*T) (*T, error), release func(*T)) ([]*T, error) {
	if err := c.alloc.Allocate(alloc.KindSequence, len(src)*pointerSize); err != nil {
		return nil, at(err, name)
	}
	dst := make([]*T, 0, len(src))
	for i, s := range src {
		d, err := clone(s)
		if err != nil {
			releaseSeq(c, dst, release)
			return nil, atIndex(err, name, i)
		}
		dst = append(dst, d)
	}
	return dst, nil
}

// releaseSeq releases every element of seq and its backing array. The
// element count is the slice length recorded while cloning.
func releaseSeq[T any](c *Cloner, seq []*T, release func(*T)) {
	if seq == nil {
		return
	}
	for i, n := range seq {
		release(n)
		seq[i] = nil
	}
	c.alloc.Free(alloc.KindSequence, cap(seq)*pointerSize)
}

// cloneIDs copies a plain id sequence.
func (c *Cloner) cloneIDs(name string, src []uint32) ([]uint32, error) {
	if err := c.alloc.Allocate(alloc.KindSequence, len(src)*idSize); err != nil {
		return nil, at(err, name)
	}
	dst := make([]uint32, len(src))
	copy(dst, src)
	return dst, nil
}

func (c *Cloner) releaseIDs(ids *[]uint32) {
	if *ids == nil {
		return
	}
	c.alloc.Free(alloc.KindSequence, cap(*ids)*idSize)
	*ids = nil
}

// rollback runs release when *err is set. Clone calls defer it right
// after their container was allocated.
func rollback(err *error, release func()) {
	if *err != nil {
		release()
	}
}
