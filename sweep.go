package fxclone

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/gogpu/fxclone/alloc"
	"github.com/gogpu/fxclone/clone"
	"github.com/gogpu/fxclone/fx"
)

// ErrLeak is returned by Sweep when a failed clone left allocations behind.
var ErrLeak = errors.New("fxclone: allocations leaked after a failed clone")

// SweepOptions configures Sweep.
type SweepOptions struct {
	// Parallel clones the top-level sequences concurrently in every attempt.
	Parallel bool

	// Logger receives one debug record per site and a warning per leak.
	// Nil discards them.
	Logger *log.Logger

	// Progress, when set, is called after every attempt with the site just
	// tried and the total number of sites.
	Progress func(site, sites int)
}

// Leak is a site whose failed clone left live allocations.
type Leak struct {
	Site  int
	Path  string
	Count int
	Bytes int
}

// SweepReport summarizes a fault injection sweep.
type SweepReport struct {
	// Sites is the number of allocations a clean clone makes.
	Sites int

	// Failures counts attempts that returned an error and no module.
	Failures int

	// Paths holds the failing path of every site, indexed by site-1. The
	// module node itself is reported as "".
	Paths []string

	// Leaks lists the sites that did not roll back completely.
	Leaks []Leak

	// CleanBytes is the peak live size of the clean clone.
	CleanBytes int
}

// Sweep clones src once to count its allocation sites, then clones it again
// once per site with exactly that allocation failing. Every attempt must
// fail and must leave no live allocation behind. The returned error wraps
// ErrLeak when at least one site leaked.
func Sweep(src *fx.Module, opts SweepOptions) (SweepReport, error) {
	var report SweepReport
	if src == nil {
		return report, fmt.Errorf("fxclone: sweep of a nil module")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	counter := alloc.NewCounter(0)
	tally := alloc.NewFailAt(counter, 0)
	c := clone.New(clone.Options{Allocator: tally, Parallel: opts.Parallel})
	m, err := c.CloneModule(src)
	if err != nil {
		return report, fmt.Errorf("fxclone: clean clone failed: %w", err)
	}
	c.ReleaseModule(m)
	if n, b := counter.Live(); n != 0 {
		report.Leaks = append(report.Leaks, Leak{Site: 0, Count: n, Bytes: b})
		return report, fmt.Errorf("%w: release of the clean clone left %d allocations", ErrLeak, n)
	}
	report.Sites = tally.Calls()
	report.CleanBytes = counter.Stats().PeakBytes
	report.Paths = make([]string, report.Sites)

	for site := 1; site <= report.Sites; site++ {
		counter.Reset()
		fault := alloc.NewFailAt(counter, site)
		c := clone.New(clone.Options{Allocator: fault, Parallel: opts.Parallel})

		m, err := c.CloneModule(src)
		switch {
		case err == nil:
			// The injected fault was never reached; keep the clone from
			// being counted as a leak.
			c.ReleaseModule(m)
			logger.Warn("fault not reached", "site", site)
		case m != nil:
			logger.Warn("failed clone returned a module", "site", site)
		default:
			report.Failures++
		}

		var cloneErr *clone.Error
		if errors.As(err, &cloneErr) {
			report.Paths[site-1] = cloneErr.Path
		}
		if n, b := counter.Live(); n != 0 || b != 0 {
			leak := Leak{Site: site, Path: report.Paths[site-1], Count: n, Bytes: b}
			report.Leaks = append(report.Leaks, leak)
			logger.Warn("leak", "site", site, "path", leak.Path, "count", n, "bytes", b)
		}
		logger.Debug("site", "n", site, "path", report.Paths[site-1])
		if opts.Progress != nil {
			opts.Progress(site, report.Sites)
		}
	}

	if len(report.Leaks) > 0 {
		return report, fmt.Errorf("%w: %d of %d sites", ErrLeak, len(report.Leaks), report.Sites)
	}
	return report, nil
}
