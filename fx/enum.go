package fx

import (
	"fmt"
	"sort"
	"strings"
)

// enumValue is the set of underlying kinds an enum table can hold.
type enumValue interface{ ~uint8 | ~uint32 }

// enumTable maps enum values to their lower-case names and back.
type enumTable[T enumValue] struct {
	kind   string
	names  map[T]string
	values map[string]T
}

func newEnumTable[T enumValue](kind string, names map[T]string) *enumTable[T] {
	values := make(map[string]T, len(names))
	for v, n := range names {
		values[n] = v
	}
	return &enumTable[T]{kind: kind, names: names, values: values}
}

// name returns the name of v, or kind(N) when v is not a known value.
func (t *enumTable[T]) name(v T) string {
	if n, ok := t.names[v]; ok {
		return n
	}
	return fmt.Sprintf("%s(%d)", t.kind, v)
}

func (t *enumTable[T]) parse(s string) (T, error) {
	if v, ok := t.values[strings.ToLower(strings.TrimSpace(s))]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("unknown %s %q (want one of %s)", t.kind, s, strings.Join(t.known(), ", "))
}

func (t *enumTable[T]) known() []string {
	out := make([]string, 0, len(t.values))
	for n := range t.values {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (t *enumTable[T]) marshal(v T) ([]byte, error) {
	n, ok := t.names[v]
	if !ok {
		return nil, fmt.Errorf("invalid %s value %d", t.kind, v)
	}
	return []byte(n), nil
}
