// Package bind decodes and validates JSON request bodies
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"

	perr "scopegen/internal/platform/errors"
	"scopegen/internal/platform/validate"
)

// JSONOptions bound and tighten decoding; the zero value means no size limit and lenient fields
type JSONOptions struct {
	MaxBytes        int64
	DisallowUnknown bool
}

// Strict is used when ParseJSON gets no options
var Strict = JSONOptions{MaxBytes: 1 << 20, DisallowUnknown: true}

// ParseJSON decodes exactly one JSON value from the body into T.
// Struct targets are validated after decoding; every failed rule lands in details.issues.
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var out T
	o := Strict
	if len(opts) > 0 {
		o = opts[0]
	}

	raw, err := readBody(r.Body, o.MaxBytes)
	if err != nil {
		return out, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&out); err != nil {
		return out, decodeError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return out, perr.JSONErrf("unexpected data after the JSON value")
	}

	if isStruct(out) {
		if issues := validate.Struct(out); len(issues) > 0 {
			return out, ValidationError(issues)
		}
	}
	return out, nil
}

func readBody(body io.Reader, limit int64) ([]byte, error) {
	if body == nil {
		return nil, perr.JSONErrf("empty body")
	}
	if limit > 0 {
		body = io.LimitReader(body, limit+1)
	}
	raw, err := io.ReadAll(body)
	switch {
	case err != nil:
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "reading body")
	case limit > 0 && int64(len(raw)) > limit:
		return nil, perr.JSONErrf("body exceeds %d bytes", limit)
	case len(bytes.TrimSpace(raw)) == 0:
		return nil, perr.JSONErrf("empty body")
	}
	return raw, nil
}

// decodeError names the offending field when the decoder knows it
func decodeError(err error) error {
	var typ *json.UnmarshalTypeError
	if errors.As(err, &typ) && typ.Field != "" {
		return perr.WithField(perr.JSONErrf("%s must be %s, got %s", typ.Field, typ.Type, typ.Value), typ.Field)
	}
	return perr.JSONErrf("invalid JSON: %v", err)
}

// ValidationError builds a validation-coded error carrying issues under details.issues
func ValidationError(issues []validate.Issue) error {
	err := perr.Newf(perr.ErrorCodeValidation, "%s", validate.Summary(issues))
	if len(issues) == 1 {
		err = perr.WithField(err, issues[0].Field)
	}
	return perr.WithDetails(err, map[string]any{"issues": issues})
}

func isStruct(v any) bool {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t != nil && t.Kind() == reflect.Struct
}
