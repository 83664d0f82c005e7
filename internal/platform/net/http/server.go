package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"scopegen/internal/platform/config"
	"scopegen/internal/platform/logger"
)

const shutdownGrace = 15 * time.Second

// Server owns the root chi mux and the listener
type Server struct {
	mux *chi.Mux
	srv *stdhttp.Server
}

// NewServer listens on API_PORT, ":4000" by default
func NewServer(cfg config.Conf) *Server {
	m := chi.NewRouter()
	return &Server{
		mux: m,
		srv: &stdhttp.Server{
			Addr:              cfg.MayString("API_PORT", ":4000"),
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Router() Router { return AdaptChi(s.mux) }
func (s *Server) Addr() string   { return s.srv.Addr }

// Run serves until ctx ends, then drains in-flight requests for up to 15s
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	log.Info().Str("addr", s.srv.Addr).Msg("http listening")

	stop := context.AfterFunc(ctx, func() {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownGrace)
		defer cancel()
		if err := s.srv.Shutdown(sctx); err != nil {
			log.Error().Err(err).Msg("http shutdown")
		}
	})
	defer stop()

	if err := s.srv.ListenAndServe(); !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}
