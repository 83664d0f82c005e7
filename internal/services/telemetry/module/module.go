// Package module implements the generation telemetry service module
package module

import (
	"context"

	"scopegen/internal/modkit"
	"scopegen/internal/modkit/httpkit"
	"scopegen/internal/services/telemetry/domain"
	"scopegen/internal/services/telemetry/repo"
	"scopegen/internal/services/telemetry/service"
)

// Ports exposed by the telemetry module
type Ports struct {
	Recorder domain.RecorderPort
	Query    domain.QueryPort
}

// Module implements the telemetry service module
type Module struct {
	deps    modkit.Deps
	opts    Options
	storage repo.Storage
	ports   Ports
}

// New constructs the telemetry module; without clickhouse it records nothing
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)
	m := &Module{deps: deps, opts: opts, ports: Ports{Recorder: service.Nop{}, Query: service.Nop{}}}
	if deps.CH == nil {
		return m
	}

	storage, err := repo.NewCH(deps.CH, opts.Table)
	if err != nil {
		panic(err)
	}
	svc := service.New(storage, service.Config{WriteTimeout: opts.WriteTimeout})
	m.storage = storage
	m.ports = Ports{Recorder: svc, Query: svc}
	return m
}

// Enabled reports whether runs reach a sink
func (m *Module) Enabled() bool { return m.storage != nil }

// Migrate creates the runs table when enabled and configured to
func (m *Module) Migrate(ctx context.Context) error {
	if m.storage == nil || !m.opts.AutoMigrate {
		return nil
	}
	return m.storage.Migrate(ctx)
}

func (m *Module) Name() string { return "telemetry" }
func (m *Module) Ports() any   { return m.ports }

// MountRoutes mounts nothing; stats are served by meta
func (m *Module) MountRoutes(httpkit.Router) {}
