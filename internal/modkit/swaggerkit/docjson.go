package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	perr "scopegen/internal/platform/errors"
	pnet "scopegen/internal/platform/net"

	docs "scopegen/internal/services/api/docs"
)

const errorRef = "#/components/schemas/ErrorResponse"

// docReader is swapped in tests
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// serveDocJSON decodes the generated document, patches it and writes it back
func serveDocJSON(titleSuffix string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		ensureServers(spec, "/api/v1")
		suffixTitle(spec, titleSuffix)
		ensureErrorSchema(spec)
		addDefaultResponses(spec)
		applySecurity(spec)

		w.Header().Set("Cache-Control", "no-store")
		pnet.WriteJSON(w, http.StatusOK, spec)
	}
}

// ensureServers pins the document to OAS 3.0.3, the newest the UI renders
func ensureServers(spec map[string]any, url string) {
	delete(spec, "swagger")
	if v, _ := spec["openapi"].(string); !strings.HasPrefix(v, "3.0") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

func suffixTitle(spec map[string]any, suffix string) {
	info, _ := spec["info"].(map[string]any)
	if title, ok := info["title"].(string); ok && suffix != "" {
		info["title"] = title + " " + suffix
	}
}

// child returns m[key] as an object, creating it when absent
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

// ensureErrorSchema documents the failure envelope unless annotations already did
func ensureErrorSchema(spec map[string]any) {
	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	str := map[string]any{"type": "string"}
	num := map[string]any{"type": "integer", "format": "int32"}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Standard error response",
		"properties": map[string]any{
			"status_code": num,
			"status":      str,
			"code":        num,
			"error":       str,
			"request_id":  str,
			"data":        map[string]any{"description": "client safe details, e.g. validation issues"},
		},
		"required": []any{"status_code", "status"},
	}
}

// errorResponse renders err through the same envelope the server writes
func errorResponse(err error) (string, map[string]any) {
	status, env := pnet.Fail(err, "579f33bf50b1/abc-000001")
	return strconv.Itoa(status), map[string]any{
		"description": env.Status,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": errorRef},
				"example": env,
			},
		},
	}
}

// operations calls fn for every path and method in the document
func operations(spec map[string]any, fn func(path, method string, op map[string]any)) {
	paths, _ := spec["paths"].(map[string]any)
	for p, node := range paths {
		methods, _ := node.(map[string]any)
		for m, v := range methods {
			if op, ok := v.(map[string]any); ok {
				fn(p, m, op)
			}
		}
	}
}

// addDefaultResponses gives every operation a 400 and a 500, and secured ones a 401
func addDefaultResponses(spec map[string]any) {
	common := []error{
		perr.New(perr.ErrorCodeValidation, "status must be one of [draft generated final]"),
		perr.PanicErrf("internal error"),
	}
	unauth := perr.Unauthorizedf("missing bearer token")

	operations(spec, func(path, method string, op map[string]any) {
		resps := child(op, "responses")
		errs := common
		if Secured(path, method) {
			errs = append(errs[:len(errs):len(errs)], unauth)
		}
		for _, err := range errs {
			code, resp := errorResponse(err)
			if _, ok := resps[code]; !ok {
				resps[code] = resp
			}
		}
	})
}
