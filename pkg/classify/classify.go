// Package classify provides a small, immutable lookup table for function
// names, keyed by a case-folding FNV-1a 64 hash.
//
// Dialects build one table for their aggregate functions when they are
// constructed. Lookups hash the candidate name and binary search the sorted
// hash array, then compare the stored name to rule out collisions.
package classify

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
)

const (
	offset64 = 0xcbf29ce484222325
	prime64  = 0x100000001b3
)

var (
	// ErrEmptyName is returned by Build when a name is empty.
	ErrEmptyName = errors.New("classify: empty name")
	// ErrHashCollision is returned by Build when two distinct names share a hash.
	ErrHashCollision = errors.New("classify: hash collision")
)

// Hash returns the FNV-1a 64 hash of name with ASCII letters folded to
// lower case, so "Avg", "AVG" and "avg" hash identically.
func Hash(name string) uint64 {
	h := uint64(offset64)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		h ^= uint64(c)
		h *= prime64
	}
	return h
}

// Table is a sorted hash table of upper-case names.
// hashes is strictly increasing and names[i] is the name whose hash is hashes[i].
type Table struct {
	hashes []uint64
	names  []string
}

// Build normalizes names to upper case, drops exact duplicates and returns
// the resulting table.
func Build(names ...string) (*Table, error) {
	seen := make(map[string]struct{}, len(names))
	normalized := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			return nil, ErrEmptyName
		}
		up := strings.ToUpper(n)
		if _, ok := seen[up]; ok {
			continue
		}
		seen[up] = struct{}{}
		normalized = append(normalized, up)
	}
	return buildFromHashes(normalized, Hash)
}

// buildFromHashes builds a table from distinct upper-case names.
func buildFromHashes(normalized []string, hash func(string) uint64) (*Table, error) {
	hashes := make([]uint64, len(normalized))
	for i, n := range normalized {
		hashes[i] = hash(n)
	}
	slices.Sort(hashes)

	for i := 1; i < len(hashes); i++ {
		if hashes[i] == hashes[i-1] {
			return nil, fmt.Errorf("%w: %#x", ErrHashCollision, hashes[i])
		}
	}

	// Names are placed by looking their hash up in the sorted array.
	placed := make([]string, len(hashes))
	for _, n := range normalized {
		h := hash(n)
		idx := sort.Search(len(hashes), func(i int) bool { return hashes[i] >= h })
		placed[idx] = n
	}

	return &Table{hashes: hashes, names: placed}, nil
}

// MustBuild is like Build but panics on error. Intended for fixed lists.
func MustBuild(names ...string) *Table {
	t, err := Build(names...)
	if err != nil {
		panic(err)
	}
	return t
}

// Contains reports whether name is in the table, ignoring case.
// A nil table contains nothing.
func (t *Table) Contains(name string) bool {
	if t == nil || name == "" {
		return false
	}
	h := Hash(name)
	idx, found := slices.BinarySearch(t.hashes, h)
	if !found {
		return false
	}
	return strings.EqualFold(t.names[idx], name)
}

// Len returns the number of names in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.names)
}

// Names returns a copy of the names in hash order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.names)
}
