// Package http serves the public meta endpoints
package http

import (
	"context"
	"net/http"
	"time"

	"scopegen/internal/adapters/llm"
	"scopegen/internal/core/version"
	"scopegen/internal/modkit/httpkit"
	perr "scopegen/internal/platform/errors"
	"scopegen/internal/platform/store"
	ptime "scopegen/internal/platform/time"
	teldom "scopegen/internal/services/telemetry/domain"
)

const (
	defaultStatsHours = 24
	maxStatsHours     = 24 * 30
	readyTimeout      = 2 * time.Second
)

// Deps are the handler dependencies; nil PG or CH reads as skipped
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          any
	CH          any
	Generator   llm.Info
	Stats       teldom.QueryPort
	Modules     func() []string
	Now         func() time.Time
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"scopegen-api"`
	Started string `json:"started" example:"2026-03-04T10:00:00.000Z"`
	Now     string `json:"now"     example:"2026-03-04T10:05:00.000Z"`
}

// ReadyCheck is one dependency probe: ok, fail, skipped or unknown
type ReadyCheck struct {
	Name   string `json:"name"            example:"pg"`
	Status string `json:"status"          example:"ok"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse is ok when every probe passed, fail when any failed, degraded otherwise
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-03-04T10:05:00.000Z"`
}

type ServiceResponse struct {
	Name    string   `json:"name"    example:"scopegen-api"`
	Started string   `json:"started" example:"2026-03-04T10:00:00.000Z"`
	Uptime  int64    `json:"uptime"  example:"300"`
	Modules []string `json:"modules" example:"intakes,meta,scopes"`
}

type GeneratorResponse struct {
	Generator llm.Info          `json:"generator"`
	Build     version.BuildInfo `json:"build"`
}

// GeneratorStatsResponse counts recent generation runs by outcome
type GeneratorStatsResponse struct {
	Since string                `json:"since" example:"2026-03-03T10:00:00.000Z"`
	Hours int                   `json:"hours" example:"24"`
	Rows  []teldom.OutcomeCount `json:"rows"`
}

type handlers struct{ Deps }

// Register mounts the meta routes on r
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Modules == nil {
		d.Modules = func() []string { return nil }
	}
	h := handlers{d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", func(*http.Request) (any, error) { return version.Info(), nil })
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/generator", h.generator)
	httpkit.Get(r, "/generator/stats", h.generatorStats)
}

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h handlers) health(*http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.ServiceName,
		Started: ptime.RFC3339(h.StartedAt),
		Now:     ptime.RFC3339(h.Now()),
	}, nil
}

func probe(ctx context.Context, name string, dep any) ReadyCheck {
	c := ReadyCheck{Name: name, Status: "unknown"}
	if dep == nil {
		c.Status = "skipped"
	} else if p, ok := dep.(store.Pinger); ok {
		c.Status = "ok"
		if err := p.Ping(ctx); err != nil {
			c.Status, c.Error = "fail", err.Error()
		}
	}
	return c
}

// @Summary Readiness with dependency probes
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (h handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	out := ReadyResponse{Status: "ok", Now: ptime.RFC3339(h.Now())}
	for _, c := range []ReadyCheck{probe(ctx, "pg", h.PG), probe(ctx, "ch", h.CH)} {
		switch {
		case c.Status == "fail":
			out.Status = "fail"
		case c.Status != "ok" && out.Status == "ok":
			out.Status = "degraded"
		}
		out.Checks = append(out.Checks, c)
	}
	return out, nil
}

// @Summary Service uptime and mounted modules
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h handlers) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.ServiceName,
		Started: ptime.RFC3339(h.StartedAt),
		Uptime:  int64(h.Now().Sub(h.StartedAt) / time.Second),
		Modules: h.Modules(),
	}, nil
}

// @Summary Generation backend settings, never the key
// @Tags Meta
// @Produce json
// @Success 200 {object} GeneratorResponse
// @Router /meta/generator [get]
func (h handlers) generator(*http.Request) (any, error) {
	return GeneratorResponse{Generator: h.Generator, Build: version.Info()}, nil
}

// @Summary Generation run outcomes over a recent window
// @Tags Meta
// @Produce json
// @Param hours query int false "window in hours (1-720)"
// @Success 200 {object} GeneratorStatsResponse
// @Failure 503 {object} httpkit.Envelope "telemetry disabled or unreachable"
// @Router /meta/generator/stats [get]
func (h handlers) generatorStats(r *http.Request) (any, error) {
	if h.Stats == nil {
		return nil, perr.Unavailablef("generation telemetry is disabled")
	}
	hours := httpkit.QueryInt(r, "hours", defaultStatsHours)
	if hours < 1 || hours > maxStatsHours {
		hours = defaultStatsHours
	}
	since := h.Now().Add(-time.Duration(hours) * time.Hour)
	rows, err := h.Stats.Summary(r.Context(), since)
	if err != nil {
		return nil, err
	}
	return GeneratorStatsResponse{Since: ptime.RFC3339(since), Hours: hours, Rows: rows}, nil
}
