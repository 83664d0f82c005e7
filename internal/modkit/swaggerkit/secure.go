package swaggerkit

import (
	"strings"
	"sync"
)

var (
	secureMu sync.RWMutex
	secured  = map[string]struct{}{}
)

func secureKey(path, method string) string { return strings.ToLower(method) + " " + path }

// MarkSecurePath records that method on path requires a bearer token.
// path uses chi syntax relative to the API base, e.g. /scopes/{id}
func MarkSecurePath(path, method string) {
	secureMu.Lock()
	secured[secureKey(path, method)] = struct{}{}
	secureMu.Unlock()
}

// Secured reports whether MarkSecurePath saw method on path
func Secured(path, method string) bool {
	secureMu.RLock()
	defer secureMu.RUnlock()
	_, ok := secured[secureKey(path, method)]
	return ok
}

func resetSecure() {
	secureMu.Lock()
	secured = map[string]struct{}{}
	secureMu.Unlock()
}

func applySecurity(spec map[string]any) {
	operations(spec, func(path, method string, op map[string]any) {
		if Secured(path, method) {
			op["security"] = []any{map[string]any{"BearerAuth": []any{}}}
		}
	})
}
