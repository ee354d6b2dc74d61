package alloc

import (
	"errors"
	"fmt"
)

// ErrOutOfMemory is matched by every allocation failure:
// errors.Is(err, ErrOutOfMemory) holds for any *Error.
var ErrOutOfMemory = errors.New("out of memory")

// ErrorKind categorizes allocation failures.
type ErrorKind uint8

const (
	// ErrBudgetExceeded indicates the request would exceed the byte budget.
	ErrBudgetExceeded ErrorKind = iota

	// ErrInjectedFault indicates a failure injected by FailAt.
	ErrInjectedFault
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrBudgetExceeded:
		return "BudgetExceeded"
	case ErrInjectedFault:
		return "InjectedFault"
	default:
		return "Unknown"
	}
}

// Error is an allocation failure.
type Error struct {
	// Kind categorizes the failure.
	Kind ErrorKind

	// Request is the kind of object that could not be allocated.
	Request Kind

	// Size is the requested size in bytes.
	Size int

	// Message provides details about the failure.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("out of memory: %s allocating %s of %d bytes: %s", e.Kind, e.Request, e.Size, e.Message)
}

// Is reports ErrOutOfMemory as matching every allocation error.
func (e *Error) Is(target error) bool {
	return target == ErrOutOfMemory
}

// NewError creates a new allocation error.
func NewError(kind ErrorKind, request Kind, size int, message string) *Error {
	return &Error{
		Kind:    kind,
		Request: request,
		Size:    size,
		Message: message,
	}
}
