// Package module wires scope documents into the API
package module

import (
	"time"

	modkit "scopegen/internal/modkit"
	"scopegen/internal/modkit/httpkit"
	"scopegen/internal/modkit/repokit"
	intakesdom "scopegen/internal/services/api/intakes/domain"
	"scopegen/internal/services/api/scopes/domain"
	shttp "scopegen/internal/services/api/scopes/http"
	srepo "scopegen/internal/services/api/scopes/repo"
	ssvc "scopegen/internal/services/api/scopes/service"
	teldom "scopegen/internal/services/telemetry/domain"
)

// Module serves /scopes and lends generate and list routes to intakes
type Module struct {
	*modkit.Mounter
	svc ssvc.Service
}

// Ports declares what the module needs injected
type Ports struct {
	Intakes   intakesdom.ReaderPort
	Generator domain.Generator
	// Recorder is optional
	Recorder teldom.RecorderPort
	Provider string
	Model    string
	// LockTimeout bounds waits on the per-intake version lock, 0 leaves the server default
	LockTimeout time.Duration
}

// Exposed is what the module offers other modules
type Exposed struct {
	Service domain.ServicePort
}

// New constructs the scopes module; Intakes and Generator must be injected with modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("scopes"), modkit.WithPrefix("/scopes")}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Intakes == nil || injected.Generator == nil {
		panic("scopes module requires Intakes and Generator ports")
	}

	db := deps.PG
	if db != nil && injected.LockTimeout > 0 {
		db = repokit.WithBeginHooks(db, srepo.LockTimeout(injected.LockTimeout))
	}
	svc := ssvc.New(db, srepo.NewPG(), injected.Intakes, injected.Generator, injected.Recorder, ssvc.Config{
		Provider: injected.Provider,
		Model:    injected.Model,
	})

	m := &Module{svc: svc}
	m.Mounter = modkit.NewMounter(b, Exposed{Service: svc}, func(r httpkit.Router) { shttp.Register(r, svc) })
	return m
}

// IntakeRoutes registers generate and list under an intakes router
func (m *Module) IntakeRoutes(r httpkit.Router) { shttp.RegisterIntakeRoutes(r, m.svc) }

// Schema returns the DDL this module needs; it must run after the intakes schema
func Schema() []string { return srepo.Schema }

