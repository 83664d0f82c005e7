// Package module holds the module contract and the process wide port registry
package module

import phttp "scopegen/internal/platform/net/http"

// Module mounts its routes and exposes ports other modules consume
type Module interface {
	Name() string
	Ports() any
	MountRoutes(r phttp.Router)
}
