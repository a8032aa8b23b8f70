package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"todoapi/internal/redact"
)

// ErrorResponse defines the standard error response structure. Fields
// carries the names of the request fields that failed validation, when
// the error is a validation failure.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Fields  []string `json:"fields,omitempty"`
	Code    int      `json:"-"` // Not serialized to JSON, used for logging
	TraceID string   `json:"trace_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response with the given status
// code and message. It also sets the TraceID from the request context
// if available.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithValidationError(w, r, status, message, nil)
}

// RespondWithValidationError writes a structured error response that
// enumerates the failing request fields.
func RespondWithValidationError(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	message string,
	fields []string,
) {
	traceID := GetTraceID(r.Context())

	errorResponse := ErrorResponse{
		Error:   message,
		Fields:  fields,
		Code:    status,
		TraceID: traceID,
	}

	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, errorResponse)
}

// RespondWithErrorAndLog writes a JSON error response and also logs the
// detailed error. The full error goes to the logs (redacted); only the
// sanitized message reaches the client.
//
// Log level strategy: 5xx at ERROR, everything else at DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
) {
	traceID := GetTraceID(r.Context())

	errorResponse := ErrorResponse{
		Error:   userMessage,
		Code:    status,
		TraceID: traceID,
	}

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}

	if err != nil {
		logAttrs = append(logAttrs, slog.String("error", redact.Error(err)))
		logAttrs = append(logAttrs, slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}

	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, errorResponse)
}
