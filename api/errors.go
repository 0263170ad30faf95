package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ruteri/tee-intent-signer/intent"
)

// RequestError provides structured error information for HTTP responses.
// It includes both an HTTP status code and the underlying error.
type RequestError struct {
	// StatusCode is the HTTP status code to return.
	StatusCode int

	// Err is the underlying error.
	Err error
}

// Error returns the error message from the underlying error.
func (e *RequestError) Error() string {
	return e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

const internalErrorMessage = "internal server error"

// ErrorResponse maps an error from the signing pipeline to the status code
// and message returned to the caller.
func ErrorResponse(err error) (int, string) {
	var validationErr *intent.ValidationError
	var requestErr *RequestError
	var clockErr *intent.ClockError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Error()
	case errors.As(err, &requestErr):
		if requestErr.StatusCode >= http.StatusInternalServerError {
			return requestErr.StatusCode, internalErrorMessage
		}
		return requestErr.StatusCode, requestErr.Error()
	case errors.As(err, &clockErr):
		return http.StatusInternalServerError, clockErr.Error()
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}

// FailureKind names the metrics label for a server-side failure.
func FailureKind(err error) string {
	var clockErr *intent.ClockError
	var encodingErr *intent.EncodingError
	var signingErr *intent.SigningError

	switch {
	case errors.As(err, &clockErr):
		return "clock"
	case errors.As(err, &encodingErr):
		return "encoding"
	case errors.As(err, &signingErr):
		return "signing"
	default:
		return "unknown"
	}
}

// WriteError logs err and writes the mapped response.
func WriteError(w http.ResponseWriter, log *slog.Logger, err error) {
	status, msg := ErrorResponse(err)
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", "err", err, "status", status)
	} else {
		log.Info("Request rejected", "err", err, "status", status)
	}
	http.Error(w, msg, status)
}
