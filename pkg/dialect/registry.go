package dialect

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Dialect registry. Constructors are registered from init() and run at most
// once, on first lookup.
var (
	dialectsMu sync.RWMutex
	dialects   = make(map[string]func() *Dialect)
)

var (
	// ErrDialectRequired is returned when a dialect is required but not provided.
	ErrDialectRequired = errors.New("dialect is required")
	// ErrUnknownDialect is returned when no dialect is registered under a name.
	ErrUnknownDialect = errors.New("unknown dialect")
)

// Register registers a dialect constructor in the global registry.
// Called by dialect implementations in their init() functions.
// The constructor runs once, the first time the dialect is requested.
func Register(name string, ctor func() *Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialects[strings.ToLower(name)] = sync.OnceValue(ctor)
}

// Get returns a dialect by name.
func Get(name string) (*Dialect, bool) {
	dialectsMu.RLock()
	ctor, ok := dialects[strings.ToLower(name)]
	dialectsMu.RUnlock()
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// Lookup is like Get but reports a missing dialect as an error.
func Lookup(name string) (*Dialect, error) {
	if name == "" {
		return nil, ErrDialectRequired
	}
	d, ok := Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownDialect, name, strings.Join(List(), ", "))
	}
	return d, nil
}

// MustGet returns a dialect by name and panics if it is not registered.
func MustGet(name string) *Dialect {
	d, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return d
}

// List returns all registered dialect names (sorted).
func List() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
