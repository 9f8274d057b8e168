package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"scorepanel/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

type unavailableError struct{ msg string }

func (e unavailableError) Error() string   { return e.msg }
func (e unavailableError) StatusCode() int { return http.StatusServiceUnavailable }

// ErrUnavailable reports that the panel cannot answer, typically because it is
// shutting down.
func ErrUnavailable(msg string) error { return unavailableError{msg: msg} }

// writeServiceError maps err to a status code, writes it and returns the code.
func writeServiceError(w http.ResponseWriter, err error) int {
	var he HTTPError
	switch {
	case errors.As(err, &he):
		writeJSONError(w, he.StatusCode(), he.Error())
		return he.StatusCode()
	case errors.Is(err, context.DeadlineExceeded):
		writeJSONError(w, http.StatusGatewayTimeout, "panel did not answer in time")
		return http.StatusGatewayTimeout
	default:
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return http.StatusInternalServerError
	}
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}
