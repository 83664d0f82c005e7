// Package module mounts the public meta endpoints
package module

import (
	"time"

	"scopegen/internal/adapters/llm"
	modkit "scopegen/internal/modkit"
	"scopegen/internal/modkit/httpkit"
	"scopegen/internal/modkit/module"
	metahttp "scopegen/internal/services/api/meta/http"
	teldom "scopegen/internal/services/telemetry/domain"
)

// Ports carries what meta reports about generation
type Ports struct {
	Generator llm.Info
	// Stats is nil when run telemetry is disabled
	Stats teldom.QueryPort
}

func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)...)
	injected, _ := b.Ports.(Ports)

	d := metahttp.Deps{
		ServiceName: "scopegen-api",
		StartedAt:   time.Now(),
		Generator:   injected.Generator,
		Stats:       injected.Stats,
		Modules:     module.Names,
		PG:          deps.PG,
		CH:          deps.CH,
	}
	return modkit.NewMounter(b, nil, func(r httpkit.Router) { metahttp.Register(r, d) })
}
