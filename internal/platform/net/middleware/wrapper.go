package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"

	pstrings "scopegen/internal/platform/strings"
)

type mw = func(http.Handler) http.Handler

func RequestID() mw              { return chimw.RequestID }
func RealIP() mw                 { return chimw.RealIP }
func NoCache() mw                { return chimw.NoCache }
func RedirectSlashes() mw        { return chimw.RedirectSlashes }
func StripSlashes() mw           { return chimw.StripSlashes }
func Heartbeat(path string) mw   { return chimw.Heartbeat(path) }
func Timeout(d time.Duration) mw { return chimw.Timeout(d) }
func Compress(level int) mw      { return chimw.Compress(level) }

// CORSOptions is the subset of go-chi/cors the API configures
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

var (
	defaultCORSMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	defaultCORSHeaders = []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"}
)

// CORS allows the API verbs and the bearer header unless o overrides them
func CORS(o CORSOptions) mw {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   o.AllowedOrigins,
		AllowedMethods:   pstrings.IfEmpty(o.AllowedMethods, defaultCORSMethods),
		AllowedHeaders:   pstrings.IfEmpty(o.AllowedHeaders, defaultCORSHeaders),
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}
