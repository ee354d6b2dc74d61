// Package fx defines the reflection model of a compiled effect module.
//
// A Module describes everything a renderer needs to know about one compiled
// shader program without looking at the compiler's internals:
//   - Code: the generated shader code as an opaque byte buffer
//   - EntryPoints: named shader entry points with their stage
//   - Textures, Samplers, Storages: resources with their opaque bindings
//   - Uniforms, SpecConstants: uniform-shaped variables and their annotations
//   - Techniques: named groups of passes with pipeline state
//
// # Ownership
//
// The model is a tree. Every node is owned by exactly one parent, there are
// no back-references and no cycles. Children are held by pointer and owned
// sequences by slices of pointers whose length is the element count.
// Strings are never absent: a missing name is the empty string. The code
// buffer is nil only when absent; an empty but valid buffer is a non-nil,
// zero-length slice.
//
// Packages clone and alloc build independent copies of this tree and
// account for every node they allocate. The fx package itself holds no
// allocation policy.
//
// # Identifiers
//
// ID, Binding, Definition and Index fields are opaque integers assigned by
// the producing compiler. Nothing in this package interprets them, with the
// exception of Validate, which is a consumer-side check and never part of
// cloning.
package fx
