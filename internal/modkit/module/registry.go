package module

import (
	"slices"
	"sync"
)

var (
	mu  sync.RWMutex
	reg = map[string]Module{}
)

// Register records m under its name; a later module with the same name replaces it
func Register(m Module) {
	mu.Lock()
	reg[m.Name()] = m
	mu.Unlock()
}

// Lookup resolves T from the ports of the module registered as name
func Lookup[T any](name string) (T, bool) {
	mu.RLock()
	m, ok := reg[name]
	mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	return PortsOf[T](m)
}

// Names lists registered modules, sorted
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(reg))
	for n := range reg {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Reset empties the registry between tests
func Reset() {
	mu.Lock()
	reg = map[string]Module{}
	mu.Unlock()
}
