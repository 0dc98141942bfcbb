package toolchain

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// PathTable maps symbolic configuration keys to absolute paths.
// Entries can only be added: a key, once set, keeps its value for the
// lifetime of the table. Iteration is always in ascending key order.
//
// The zero value is an empty table ready to use.
type PathTable struct {
	entries map[string]string
}

// NewPathTable returns an empty table.
func NewPathTable() *PathTable {
	return &PathTable{entries: map[string]string{}}
}

// Set adds the key with the given path. Keys must be identifiers made of
// ASCII letters, digits and underscores, not starting with a digit.
// The path must be absolute as defined by IsAbs.
func (t *PathTable) Set(key, path string) error {
	if !isValidKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if !IsAbs(path) {
		return fmt.Errorf("%w: %s = %q", ErrRelativePath, key, path)
	}
	if _, ok := t.entries[key]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}

	if t.entries == nil {
		t.entries = map[string]string{}
	}
	t.entries[key] = path

	return nil
}

// Merge adds every entry of other to t. It stops at the first entry that
// cannot be set, leaving the entries merged so far in place.
func (t *PathTable) Merge(other *PathTable) error {
	for key, path := range other.All() {
		if err := t.Set(key, path); err != nil {
			return err
		}
	}

	return nil
}

// Get returns the path stored under key.
func (t *PathTable) Get(key string) (string, bool) {
	path, ok := t.entries[key]
	return path, ok
}

// Len returns the number of entries.
func (t *PathTable) Len() int {
	return len(t.entries)
}

// Keys returns the keys sorted ascending.
func (t *PathTable) Keys() []string {
	return slices.Sorted(maps.Keys(t.entries))
}

// All iterates the entries in ascending key order.
func (t *PathTable) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, key := range t.Keys() {
			if !yield(key, t.entries[key]) {
				return
			}
		}
	}
}

func isValidKey(key string) bool {
	if key == "" {
		return false
	}

	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}

	return true
}
