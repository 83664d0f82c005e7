// Package version provides information about the build version of the service.
package version

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information for the API server. The version, commit,
// and date variables are intended to be set at build time using -ldflags:
//
//	-X 'scopegen/internal/core/version.version=v0.1.0'
//	-X 'scopegen/internal/core/version.commit=abcd'
//	-X 'scopegen/internal/core/version.date=2026-03-02'
func Info() BuildInfo { return For("scopegen-api") }

// For returns the build information under another binary name
func For(service string) BuildInfo {
	if service == "" {
		service = "scopegen"
	}
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
