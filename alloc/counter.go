package alloc

import (
	"fmt"
	"sync"
)

// Stats is a snapshot of a Counter.
type Stats struct {
	Allocs     int // successful Allocate calls
	Frees      int // Free calls
	Failed     int // refused Allocate calls
	LiveCount  int // Allocs - Frees
	LiveBytes  int // bytes allocated and not yet freed
	PeakBytes  int // highest LiveBytes observed
	TotalBytes int // bytes ever allocated
}

// Counter is the allocation-counting harness. It tracks live allocations
// per kind and optionally refuses requests past a byte budget.
type Counter struct {
	mu     sync.Mutex
	budget int
	stats  Stats
	live   [KindBuffer + 1]int
}

// NewCounter returns a Counter that refuses allocations once the live
// bytes would exceed budget. A budget of 0 means unlimited.
func NewCounter(budget int) *Counter {
	return &Counter{budget: budget}
}

// Allocate implements Allocator.
func (c *Counter) Allocate(kind Kind, size int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.budget > 0 && c.stats.LiveBytes+size > c.budget {
		c.stats.Failed++
		return NewError(ErrBudgetExceeded, kind, size,
			fmt.Sprintf("%d of %d bytes in use", c.stats.LiveBytes, c.budget))
	}

	c.stats.Allocs++
	c.stats.LiveCount++
	c.stats.LiveBytes += size
	c.stats.TotalBytes += size
	if c.stats.LiveBytes > c.stats.PeakBytes {
		c.stats.PeakBytes = c.stats.LiveBytes
	}
	if int(kind) < len(c.live) {
		c.live[kind]++
	}
	return nil
}

// Free implements Allocator.
func (c *Counter) Free(kind Kind, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.Frees++
	c.stats.LiveCount--
	c.stats.LiveBytes -= size
	if int(kind) < len(c.live) {
		c.live[kind]--
	}
}

// Live returns the number of live allocations and their total size.
func (c *Counter) Live() (count, bytes int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats.LiveCount, c.stats.LiveBytes
}

// LiveOf returns the number of live allocations of one kind.
func (c *Counter) LiveOf(kind Kind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if int(kind) >= len(c.live) {
		return 0
	}
	return c.live[kind]
}

// Stats returns a snapshot of the counter.
func (c *Counter) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Reset clears all counts. The budget is kept.
func (c *Counter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = Stats{}
	c.live = [KindBuffer + 1]int{}
}
