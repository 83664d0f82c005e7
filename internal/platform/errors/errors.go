// Package errors provides the coded error type shared by every layer
//
// Import it as perr. Handlers never pick HTTP statuses themselves; they
// return a coded error and the transport maps the code.
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies an error for callers and for the wire
// Values are part of the API payload, append only
type ErrorCode uint16

const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodePanic
	ErrorCodeUnavailable
	ErrorCodeTooManyRequests
	ErrorCodeConflict
	ErrorCodeUnauthorized
	ErrorCodeForbidden
	ErrorCodeInvalidArgument
	ErrorCodeValidation
	ErrorCodeJSON
	ErrorCodeNotFound
	ErrorCodeDuplicateKey
	ErrorCodeDB

	// ErrorCodeGeneration means the generation backend answered with unusable output
	ErrorCodeGeneration

	// ErrorCodeConfiguration means the generation backend is missing or misconfigured
	ErrorCodeConfiguration
)

var statusByCode = map[ErrorCode]int{
	ErrorCodeNotFound:        http.StatusNotFound,
	ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
	ErrorCodeDuplicateKey:    http.StatusConflict,
	ErrorCodeConflict:        http.StatusConflict,
	ErrorCodeValidation:      http.StatusBadRequest,
	ErrorCodeJSON:            http.StatusBadRequest,
	ErrorCodeUnauthorized:    http.StatusUnauthorized,
	ErrorCodeForbidden:       http.StatusForbidden,
	ErrorCodeTooManyRequests: http.StatusTooManyRequests,
	ErrorCodeUnavailable:     http.StatusServiceUnavailable,
	ErrorCodeConfiguration:   http.StatusServiceUnavailable,
	ErrorCodeGeneration:      http.StatusBadGateway,
}

// HTTPStatusCode maps a code to a status, anything unmapped is a 500
func HTTPStatusCode(c ErrorCode) int {
	if s, ok := statusByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// ErrNotFound is returned by store helpers when no row matched
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error carries a code, a developer facing message and optional metadata.
// details must be safe to show clients (validation issues, schema violations).
type Error struct {
	orig    error
	msg     string
	code    ErrorCode
	field   string
	op      string
	details any
}

// Wire is the error payload embedded in API responses
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	Details any       `json:"details,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

func (e *Error) Unwrap() error   { return e.orig }
func (e *Error) Code() ErrorCode { return e.code }
func (e *Error) Field() string   { return e.field }
func (e *Error) Op() string      { return e.op }
func (e *Error) Details() any    { return e.details }

// WireFrom renders any error for the wire; foreign errors become Unknown
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return Wire{Code: e.code, Message: e.msg, Field: e.field, Details: e.details}
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// Root returns the innermost cause
func Root(err error) error {
	for err != nil {
		next := stderrs.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	return err
}

// As finds the outermost *Error in the chain
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns the code of err, Unknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus maps any error to a status
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// with copies the *Error in err before mutating it; foreign errors pass through
func with(err error, set func(*Error)) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	set(&c)
	return &c
}

// WithField names the offending input field
func WithField(err error, field string) error {
	return with(err, func(e *Error) { e.field = field })
}

// WithOp labels the operation that failed
func WithOp(err error, op string) error {
	return with(err, func(e *Error) { e.op = op })
}

// WithDetails attaches a client safe payload
func WithDetails(err error, details any) error {
	return with(err, func(e *Error) { e.details = details })
}

func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap keeps orig reachable through errors.Is and errors.As
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

func NotFoundf(format string, a ...any) error     { return Newf(ErrorCodeNotFound, format, a...) }
func InvalidArgf(format string, a ...any) error   { return Newf(ErrorCodeInvalidArgument, format, a...) }
func DBf(format string, a ...any) error           { return Newf(ErrorCodeDB, format, a...) }
func JSONErrf(format string, a ...any) error      { return Newf(ErrorCodeJSON, format, a...) }
func PanicErrf(format string, a ...any) error     { return Newf(ErrorCodePanic, format, a...) }
func Unauthorizedf(format string, a ...any) error { return Newf(ErrorCodeUnauthorized, format, a...) }
func Unavailablef(format string, a ...any) error  { return Newf(ErrorCodeUnavailable, format, a...) }
func Generationf(format string, a ...any) error   { return Newf(ErrorCodeGeneration, format, a...) }
