// Package fxclone deep-copies effect modules with all-or-nothing
// allocation semantics.
//
// An effect module is the reflection tree a shader compiler produces for
// one effect: its code, entry points, textures, samplers, storages,
// uniforms, specialization constants and techniques. fxclone turns a
// read-only producer tree into an independently owned copy, or into
// nothing at all when an allocation fails on the way.
//
// Example usage:
//
//	src, err := fxclone.Load("blur.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m, err := fxclone.Clone(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer fxclone.Release(m)
//
// For accounting, budgets or fault injection, build a clone.Cloner over an
// alloc.Counter or alloc.FailAt:
//
//	counter := alloc.NewCounter(1 << 20)
//	c := clone.New(clone.Options{Allocator: counter})
//	m, err := c.CloneModule(src)
//
// Sweep runs the fault injection harness over a whole module.
package fxclone

import (
	"fmt"

	"github.com/gogpu/fxclone/clone"
	"github.com/gogpu/fxclone/fx"
	"github.com/gogpu/fxclone/fxload"
)

var defaultCloner = clone.New(clone.DefaultOptions())

// Clone deep-copies src on the unbounded heap. A nil src yields nil.
func Clone(src *fx.Module) (*fx.Module, error) {
	return defaultCloner.CloneModule(src)
}

// CloneWithOptions deep-copies src through a Cloner built from opts.
func CloneWithOptions(src *fx.Module, opts clone.Options) (*fx.Module, error) {
	return clone.New(opts).CloneModule(src)
}

// Release releases a module returned by Clone. Nil is a no-op.
func Release(m *fx.Module) {
	defaultCloner.ReleaseModule(m)
}

// Load reads a TOML or YAML fixture into a source module.
func Load(path string) (*fx.Module, error) {
	return fxload.Load(path)
}

// CloneFile loads the fixture at path and clones it through a Cloner built
// from opts. The loaded source is dropped; only the clone is returned.
func CloneFile(path string, opts clone.Options) (*fx.Module, error) {
	src, err := Load(path)
	if err != nil {
		return nil, fmt.Errorf("load error: %w", err)
	}
	m, err := CloneWithOptions(src, opts)
	if err != nil {
		return nil, fmt.Errorf("clone error: %w", err)
	}
	return m, nil
}

// Validate checks a module for internal consistency.
//
// Validation checks include:
//   - Resource references (samplers and storages name known textures)
//   - Entry point stages of every pass
//   - Initializer presence and LOD ordering
//
// Returns a slice of validation errors. If the slice is empty, validation passed.
func Validate(m *fx.Module) ([]fx.ValidationError, error) {
	return fx.Validate(m)
}
