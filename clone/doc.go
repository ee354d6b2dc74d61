// Package clone deep-copies and releases fx reflection trees.
//
// Every entity of the fx model has a Clone/Release pair on Cloner:
//
//	c := clone.New(clone.DefaultOptions())
//	dst, err := c.CloneModule(src)
//	if err != nil {
//	    // nothing was kept; there is nothing to release
//	}
//	defer c.ReleaseModule(dst)
//
// # Allocation discipline
//
// Every node container, non-empty string, sequence backing array and the
// code buffer is requested from the Cloner's alloc.Allocator before it is
// created, and returned to it on release. Any request may fail. A Clone
// call either returns a fully built node or nil and an error; in the error
// case every allocation made during the call has already been returned.
//
// Rollback is not written out per failure site. Each Clone call defers the
// matching Release of its partially built node, which is safe because
// Release tolerates absent children, empty strings and nil sequences and
// frees exactly what is present, once.
//
// # Release
//
// Release on nil is a no-op. Release frees children first, then strings
// and sequences, clears the node and returns the container. A node must not
// be used after it was released, and must not be released twice.
//
// # Concurrency
//
// A Cloner has no mutable state of its own. With Options.Parallel set,
// CloneModule clones the module's top-level sequences on separate
// goroutines; each goroutine only writes its own sequence and the module
// is assembled after all of them finished. The allocator must then be safe
// for concurrent use, which every allocator in package alloc is.
package clone
