// Package module wires intakes into the API
package module

import (
	modkit "scopegen/internal/modkit"
	"scopegen/internal/modkit/httpkit"
	"scopegen/internal/services/api/intakes/domain"
	ihttp "scopegen/internal/services/api/intakes/http"
	irepo "scopegen/internal/services/api/intakes/repo"
	isvc "scopegen/internal/services/api/intakes/service"
)

// Ports is what the intakes module exposes to other modules
type Ports struct {
	Service domain.ServicePort
}

// Reader narrows the exposed service to read access
func (p Ports) Reader() domain.ReaderPort { return p.Service }

// New builds the module mounted at /intakes.
// Other modules attach routes beneath it with modkit.WithRegister.
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("intakes"), modkit.WithPrefix("/intakes")}, opts...)...)
	svc := isvc.New(deps.PG, irepo.NewPG())
	return modkit.NewMounter(b, Ports{Service: svc}, func(r httpkit.Router) { ihttp.Register(r, svc) })
}

// Schema returns the DDL this module needs
func Schema() []string { return irepo.Schema }
