// Package api provides the HTTP API for the application
package api

import (
	"context"
	"time"

	"scopegen/internal/adapters/llm"
	"scopegen/internal/platform/config"
	"scopegen/internal/platform/logger"
	phttp "scopegen/internal/platform/net/http"
	"scopegen/internal/platform/store"

	"scopegen/internal/modkit"
	"scopegen/internal/modkit/httpkit"
	"scopegen/internal/modkit/module"
	"scopegen/internal/modkit/swaggerkit"

	intakesmod "scopegen/internal/services/api/intakes/module"
	metamod "scopegen/internal/services/api/meta/module"
	scopesdom "scopegen/internal/services/api/scopes/domain"
	scopesmod "scopegen/internal/services/api/scopes/module"
	telmod "scopegen/internal/services/telemetry/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool

	// Generator runs the generation pipeline; GeneratorInfo describes it for meta
	Generator     scopesdom.Generator
	GeneratorInfo llm.Info
	// Telemetry is optional; without it runs are not recorded
	Telemetry *telmod.Module
}

// Schema is the postgres DDL for every module, in dependency order
func Schema() []string {
	return append(append([]string{}, intakesmod.Schema()...), scopesmod.Schema()...)
}

// Migrate applies Schema in one transaction
func Migrate(ctx context.Context, st *store.Store) error {
	return store.Migrate(ctx, st.PG, Schema()...)
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	l := opt.Logger
	if l == nil {
		l = logger.Named("api")
	}

	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	tokens, err := ParseTokens(opt.Config.MayString("AUTH_TOKENS", ""))
	if err != nil {
		l.Panic().Err(err).Msg("CORE_API_AUTH_TOKENS invalid")
	}
	if len(tokens) == 0 {
		l.Warn().Msg("no CORE_API_AUTH_TOKENS configured, every protected route answers 401")
	}
	auth := TokenPort(tokens)

	if opt.Telemetry != nil {
		module.Register(opt.Telemetry)
	}
	tel, _ := module.Lookup[telmod.Ports]("telemetry")

	// intakes owns /intakes; scopes attaches generate and list beneath it
	var scopes *scopesmod.Module
	intakes := intakesmod.New(deps, modkit.WithRegister(func(rr httpkit.Router) { scopes.IntakeRoutes(rr) }))
	scopes = scopesmod.New(deps, modkit.WithPorts(scopesmod.Ports{
		Intakes:   module.MustPortsOf[intakesmod.Ports](intakes).Reader(),
		Generator: opt.Generator,
		Recorder:  tel.Recorder,
		Provider:  opt.GeneratorInfo.Provider,
		Model:     opt.GeneratorInfo.Model,

		LockTimeout: opt.Config.MayDuration("VERSION_LOCK_TIMEOUT", 10*time.Second),
	}))

	stats := tel.Query
	if opt.Telemetry == nil || !opt.Telemetry.Enabled() {
		stats = nil
	}
	meta := metamod.New(deps, modkit.WithPorts(metamod.Ports{
		Generator: opt.GeneratorInfo,
		Stats:     stats,
	}))

	public := []module.Module{meta}
	protected := []module.Module{intakes, scopes}

	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: opt.Config.MayCSV("CORS_ORIGINS", nil),
		Timeout:     opt.Config.MayDuration("REQUEST_TIMEOUT", 5*time.Minute),
		Slow:        opt.Config.MayDuration("SLOW_REQUEST", 30*time.Second),
	})

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, swaggerkit.Options{
			Enabled:     opt.EnableSwagger,
			TitleSuffix: opt.Config.MayString("DOCS_TITLE_SUFFIX", ""),
		})
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range public {
			module.Register(m)
			m.MountRoutes(api)
		}
		httpkit.Protected(api, auth, func(pr httpkit.Router) {
			for _, m := range protected {
				module.Register(m)
				m.MountRoutes(pr)
			}
		})
	})
}
