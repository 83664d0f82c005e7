// @title         scopegen API
// @version       0.1.0
// @description   Client intakes in, scope of work documents out
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scopegen/internal/adapters/llm"
	"scopegen/internal/core/generate"
	"scopegen/internal/core/version"
	"scopegen/internal/modkit"
	"scopegen/internal/modkit/repokit"
	"scopegen/internal/platform/config"
	"scopegen/internal/platform/logger"
	phttp "scopegen/internal/platform/net/http"
	"scopegen/internal/platform/store"
	"scopegen/internal/services/api"
	telmod "scopegen/internal/services/telemetry/module"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	l := logger.Get()
	if err := run(ctx, config.New(), l); err != nil {
		l.Fatal().Err(err).Msg("scopegen-api stopped")
	}
}

// storeConfig reads SERVICE_PGSQL_* and SERVICE_CLICKHOUSE_*
func storeConfig(root config.Conf) store.Config {
	pg := root.Prefix("SERVICE_PGSQL_")
	ch := root.Prefix("SERVICE_CLICKHOUSE_")

	cfg := store.Config{
		AppName: "scopegen-api",
		PG: store.PGConfig{
			Enabled:        true,
			URL:            pg.MustString("DBURL"),
			MaxConns:       int32(pg.MayInt("MAX_CONNS", 4)),
			LogSQL:         pg.MayBool("LOG_SQL", true),
			SlowQuery:      time.Duration(pg.MayInt("SLOW_MS", 500)) * time.Millisecond,
			ConnectRetries: pg.MayInt("CONNECT_RETRIES", 0),
		},
		CH: store.CHConfig{
			Enabled: ch.MayBool("ENABLED", false),
			Role:    "api",
			Tag:     version.Info().Version,
		},
	}
	if cfg.CH.Enabled {
		cfg.CH.URL = ch.MustString("DBURL")
	}
	return cfg
}

func run(ctx context.Context, root config.Conf, l *logger.Logger) error {
	apiCfg := root.Prefix("CORE_API_")

	st, err := store.Open(ctx, storeConfig(root), store.WithLogger(*l))
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("store close")
		}
	}()
	repokit.MustGuard(ctx, st)

	if root.Prefix("SERVICE_PGSQL_").MayBool("AUTO_MIGRATE", true) {
		if err := api.Migrate(ctx, st); err != nil {
			return err
		}
	}

	telemetry := telmod.New(modkit.Deps{Cfg: root, CH: st.CH})
	if err := telemetry.Migrate(ctx); err != nil {
		// runs are still attempted and each failed write is logged
		l.Error().Err(err).Msg("telemetry migrate")
	}

	// a missing key fails generate requests with 503, not startup
	settings := llm.FromConfig(root.Prefix("GENERATOR_"))
	backend, err := llm.New(ctx, settings)
	if err != nil {
		return err
	}
	info := settings.Info()
	if !info.Configured {
		l.Warn().Str("provider", info.Provider).Msg("GENERATOR_API_KEY not set")
	}
	l.Info().
		Str("provider", info.Provider).
		Str("model", info.Model).
		Bool("telemetry", telemetry.Enabled()).
		Msg("generator ready")

	srv := phttp.NewServer(apiCfg)
	api.Mount(srv.Router(), api.Options{
		Config:         apiCfg,
		Store:          st,
		Logger:         l,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		Generator:      generate.New(backend, settings.Options()...),
		GeneratorInfo:  info,
		Telemetry:      telemetry,
	})
	return srv.Run(ctx)
}
