package clone

import (
	"fmt"
	"strings"
)

// Error reports a failed clone and where in the tree it failed.
type Error struct {
	// Path locates the allocation that failed, relative to the node passed
	// to the Clone call, e.g. "techniques[0].passes[1].samplers[0].name".
	// It is empty when the node's own container could not be allocated.
	Path string

	// Err is the allocation failure.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("clone: %v", e.Err)
	}
	return fmt.Sprintf("clone %s: %v", e.Path, e.Err)
}

// Unwrap returns the allocation failure.
func (e *Error) Unwrap() error { return e.Err }

// at prefixes the path of err with segment, wrapping err in an *Error
// first if needed.
func at(err error, segment string) error {
	if err == nil {
		return nil
	}
	ce, ok := err.(*Error)
	if !ok {
		return &Error{Path: segment, Err: err}
	}
	ce.Path = joinPath(segment, ce.Path)
	return ce
}

func atIndex(err error, name string, i int) error {
	return at(err, fmt.Sprintf("%s[%d]", name, i))
}

func joinPath(segment, rest string) string {
	switch {
	case segment == "":
		return rest
	case rest == "":
		return segment
	case strings.HasPrefix(rest, "["):
		return segment + rest
	default:
		return segment + "." + rest
	}
}

// wrap turns a bare allocation failure of the node's own container into an
// *Error with an empty path.
func wrap(err error) error {
	if _, ok := err.(*Error); ok {
		return err
	}
	return &Error{Err: err}
}
