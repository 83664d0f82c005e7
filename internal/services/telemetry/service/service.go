// Package service records generation runs
package service

import (
	"context"
	"time"

	perr "scopegen/internal/platform/errors"
	"scopegen/internal/platform/logger"
	"scopegen/internal/services/telemetry/domain"
	"scopegen/internal/services/telemetry/repo"
)

// Config for the recorder
type Config struct {
	WriteTimeout time.Duration
}

// Service implements domain.RecorderPort and domain.QueryPort
type Service struct {
	Storage repo.Storage
	cfg     Config
	log     logger.Logger
}

// New constructs a recorder over storage
func New(storage repo.Storage, cfg Config) *Service {
	if storage == nil {
		panic("telemetry.Service requires a non nil storage")
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}
	return &Service{Storage: storage, cfg: cfg, log: *logger.Named("telemetry")}
}

// Record writes one run. It outlives request cancellation and only logs failures.
func (s *Service) Record(ctx context.Context, run domain.Run) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.WriteTimeout)
	defer cancel()
	if err := s.Storage.Insert(ctx, []domain.Run{run}); err != nil {
		s.log.Warn().Err(err).
			Str("run_id", run.ID.String()).
			Str("outcome", string(run.Outcome)).
			Msg("generation run not recorded")
	}
}

// Summary groups runs since a point in time
func (s *Service) Summary(ctx context.Context, since time.Time) ([]domain.OutcomeCount, error) {
	out, err := s.Storage.Summary(ctx, since)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "telemetry summary unavailable")
	}
	return out, nil
}

// Nop is the recorder used when no analytics sink is configured
type Nop struct{}

// Record implements domain.RecorderPort
func (Nop) Record(context.Context, domain.Run) {}

// Summary implements domain.QueryPort
func (Nop) Summary(context.Context, time.Time) ([]domain.OutcomeCount, error) {
	return nil, perr.Unavailablef("generation telemetry is disabled")
}

var (
	_ domain.RecorderPort = (*Service)(nil)
	_ domain.QueryPort    = (*Service)(nil)
	_ domain.RecorderPort = Nop{}
	_ domain.QueryPort    = Nop{}
)
