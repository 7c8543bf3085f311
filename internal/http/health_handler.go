package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// schemaVersioner is implemented by stores that track versioned migrations.
type schemaVersioner interface {
	SchemaVersion(ctx context.Context) (string, error)
}

type HealthHandler struct {
	storage   pinger
	responder responder
	logger    *slog.Logger
	now       func() time.Time
	timeout   time.Duration
}

func NewHealthHandler(storage pinger, now func() time.Time, logger *slog.Logger) *HealthHandler {
	if now == nil {
		now = time.Now
	}
	base := defaultLogger(logger)
	return &HealthHandler{storage: storage, responder: newResponder(base, false), logger: base, now: now, timeout: 2 * time.Second}
}

// Check answers 200 while the storage responds to a ping and 503 otherwise.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	payload := healthDTO{
		Status:    "ok",
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
		Storage:   "ok",
	}

	if h.storage != nil {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()
		if err := h.storage.Ping(ctx); err != nil {
			handlerLogger(r.Context(), h.logger, "HealthHandler", "Check").ErrorContext(r.Context(), "storage ping failed", "error", err)
			payload.Status = "degraded"
			payload.Storage = "unavailable"
			h.responder.writeJSON(r.Context(), w, http.StatusServiceUnavailable, envelope{
				Message: "Storage unavailable",
				Data:    payload,
			})
			return
		}

		if versioner, ok := h.storage.(schemaVersioner); ok {
			version, err := versioner.SchemaVersion(ctx)
			payload.SchemaVersion = version
			if err != nil {
				handlerLogger(r.Context(), h.logger, "HealthHandler", "Check").ErrorContext(r.Context(), "schema check failed", "error", err)
				payload.Status = "degraded"
				payload.Storage = "schema_outdated"
				h.responder.writeJSON(r.Context(), w, http.StatusServiceUnavailable, envelope{
					Message: "Storage schema out of date",
					Data:    payload,
				})
				return
			}
		}
	}

	h.responder.success(r.Context(), w, http.StatusOK, "HRMS Lite API is running", payload)
}

type healthDTO struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Storage   string `json:"storage"`

	SchemaVersion string `json:"schema_version,omitempty"`
}
