package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/example/hrms-lite/internal/application"
	"github.com/example/hrms-lite/internal/validation"
)

var (
	errBadRequestBody = errors.New("Invalid request body")
	errMissingID      = errors.New("Employee ID is required")
)

const genericErrorDetail = "Internal server error"

type responder struct {
	logger      *slog.Logger
	errorDetail bool
}

func newResponder(logger *slog.Logger, errorDetail bool) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger, errorDetail: errorDetail}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) success(ctx context.Context, w http.ResponseWriter, status int, message string, data any) {
	r.writeJSON(ctx, w, status, envelope{Success: true, Message: message, Data: data})
}

func (r responder) fail(ctx context.Context, w http.ResponseWriter, status int, message, detail string) {
	r.writeJSON(ctx, w, status, envelope{Message: message, Error: detail})
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := http.StatusText(status)
	if err != nil {
		message = err.Error()
		r.loggerFor(ctx).WarnContext(ctx, "request rejected", "status", status, "error", err)
	}
	r.fail(ctx, w, status, message, "")
}

// handleServiceError maps service failures onto status codes. Storage detail is
// only exposed when errorDetail is set.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.fail(ctx, w, http.StatusInternalServerError, "Internal server error", r.detail(errors.New("unknown error"), genericErrorDetail))
		return
	}

	var vErr *validation.ValidationError
	switch {
	case errors.As(err, &vErr):
		r.writeJSON(ctx, w, http.StatusBadRequest, envelope{
			Message: "Validation failed",
			Error:   vErr.Error(),
			Errors:  vErr.FieldErrors,
		})
	case errors.Is(err, application.ErrNotFound):
		r.fail(ctx, w, http.StatusNotFound, "Employee not found", r.detail(err, ""))
	case errors.Is(err, application.ErrConflict):
		r.fail(ctx, w, http.StatusBadRequest, "Employee ID or email already exists", r.detail(err, "Duplicate entry"))
	case errors.Is(err, application.ErrConstraint):
		r.fail(ctx, w, http.StatusBadRequest, `Invalid status. Must be "Present" or "Absent"`, r.detail(err, "Check constraint violation"))
	case errors.Is(err, application.ErrMalformed):
		r.fail(ctx, w, http.StatusBadRequest, "Invalid data format", r.detail(err, "Invalid input syntax"))
	default:
		r.loggerFor(ctx).ErrorContext(ctx, "unhandled service error", "error", err, "error_kind", application.ErrorKind(err))
		r.fail(ctx, w, http.StatusInternalServerError, "Internal server error", r.detail(err, genericErrorDetail))
	}
}

func (r responder) detail(err error, fallback string) string {
	if r.errorDetail && err != nil {
		return err.Error()
	}
	return fallback
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

// envelope is the body of every JSON response.
type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    any               `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}
