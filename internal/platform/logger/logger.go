// Package logger owns the process wide zerolog root.
// The root is built from LOG_* the first time anything logs, unless Init ran earlier.
package logger

import (
	"context"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"scopegen/internal/platform/config/raw"
)

type Logger = zerolog.Logger

// Options shape the root logger
type Options struct {
	Level       string
	Format      string // console or json
	Service     string
	Caller      bool
	SampleEvery int
	Writer      io.Writer // stdout when nil
}

// FromEnv reads LOG_*; it uses the raw config view because config itself logs
func FromEnv() Options {
	rc := raw.New().Prefix("LOG_")
	return Options{
		Level:       rc.Get("LEVEL", "debug"),
		Format:      strings.ToLower(rc.Get("FORMAT", "console")),
		Service:     rc.Get("SERVICE", ""),
		Caller:      rc.GetBool("CALLER", false),
		SampleEvery: rc.GetInt("SAMPLE_EVERY", 0),
	}
}

var (
	once sync.Once
	root atomic.Pointer[Logger]
)

// Init builds the root from opt; only the first call, or the first Get, has any effect
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		l := build(opt)
		root.Store(&l)
	})
}

func Get() *Logger {
	Init(FromEnv())
	return root.Load()
}

func build(opt Options) Logger {
	w := opt.Writer
	if w == nil {
		w = os.Stdout
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(w).Level(parseLevel(opt.Level)).With().
		Timestamp().
		Str("go_version", runtime.Version())
	if opt.Service != "" {
		ctx = ctx.Str("service", opt.Service)
	}
	if opt.Caller {
		ctx = ctx.Caller()
	}
	l := ctx.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return l
}

// parseLevel defaults to debug for empty or unknown input
func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.DebugLevel
	}
	return lvl
}

type ctxKey int

const (
	keyRequestID ctxKey = iota
	keyUserID
)

// WithRequest stores ids for C; empty values are skipped
func WithRequest(ctx context.Context, reqID, userID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, keyRequestID, reqID)
	}
	if userID != "" {
		ctx = context.WithValue(ctx, keyUserID, userID)
	}
	return ctx
}

// C is the root enriched with request_id and user_id from ctx.
// The request id falls back to the one chi's RequestID middleware stored.
func C(ctx context.Context) *Logger {
	b := Get().With()
	rid, _ := ctx.Value(keyRequestID).(string)
	if rid == "" {
		rid = chimw.GetReqID(ctx)
	}
	if rid != "" {
		b = b.Str("request_id", rid)
	}
	if uid, _ := ctx.Value(keyUserID).(string); uid != "" {
		b = b.Str("user_id", uid)
	}
	l := b.Logger()
	return &l
}

// Named is the root with a component field
func Named(component string) *Logger {
	l := Get().With().Str("component", component).Logger()
	return &l
}
