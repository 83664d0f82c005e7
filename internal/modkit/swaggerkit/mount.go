// Package swaggerkit serves the Swagger UI and the patched OpenAPI document
package swaggerkit

import (
	"net/http"
	"path"

	phttp "scopegen/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Options configures the docs mount; a zero Base serves under /api/docs
type Options struct {
	Enabled     bool
	Base        string
	TitleSuffix string
}

// Mount serves the UI and doc.json under opts.Base when enabled
func Mount(r phttp.Router, opts Options) {
	if !opts.Enabled {
		return
	}
	base := path.Clean("/" + opts.Base)
	if opts.Base == "" {
		base = "/api/docs"
	}
	docURL := base + "/doc.json"

	r.Get(base, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, base+"/", http.StatusPermanentRedirect)
	})
	r.Get(docURL, serveDocJSON(opts.TitleSuffix))
	r.Handle(base+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL(docURL),
	))
}
