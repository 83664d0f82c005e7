package net

import (
	"encoding/json"
	"net/http"

	perr "scopegen/internal/platform/errors"
)

// Envelope is the body of every JSON response, success or failure
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Reply is a success envelope
func Reply(status int, data any, reqID string) Envelope {
	return Envelope{StatusCode: status, Status: http.StatusText(status), RequestID: reqID, Data: data}
}

// Fail maps err to its status; client safe details ride in Data
func Fail(err error, reqID string) (int, Envelope) {
	status := perr.HTTPStatus(err)
	w := perr.WireFrom(err)
	env := Reply(status, w.Details, reqID)
	env.Code, env.Error = w.Code, w.Message
	return status, env
}

// WriteJSON writes v with status as application/json
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
