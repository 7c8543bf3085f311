package http

import (
	"log/slog"
	"net/http"
	"strings"
)

type RouterConfig struct {
	Employees  *EmployeeHandler
	Attendance *AttendanceHandler
	Health     *HealthHandler
	Logger     *slog.Logger
	Middleware []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	fallback := newResponder(cfg.Logger, false)

	if cfg.Health != nil {
		mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				methodNotAllowed(fallback, w, r, http.MethodGet)
				return
			}
			cfg.Health.Check(w, r)
		})
	}

	if cfg.Employees != nil {
		mux.HandleFunc("/api/employees", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Employees.List(w, r)
			case http.MethodPost:
				cfg.Employees.Create(w, r)
			default:
				methodNotAllowed(fallback, w, r, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/api/employees/{employeeId}", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Employees.Get(w, r)
			case http.MethodDelete:
				cfg.Employees.Delete(w, r)
			default:
				methodNotAllowed(fallback, w, r, http.MethodGet, http.MethodDelete)
			}
		})
	}

	if cfg.Attendance != nil {
		mux.HandleFunc("/api/attendance", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(fallback, w, r, http.MethodPost)
				return
			}
			cfg.Attendance.Mark(w, r)
		})
		mux.HandleFunc("/api/attendance/summary", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(fallback, w, r, http.MethodGet)
				return
			}
			cfg.Attendance.Summary(w, r)
		})
		// {date...} also captures slashes so "2024/01/15" reaches date validation.
		mux.HandleFunc("/api/attendance/date/{date...}", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(fallback, w, r, http.MethodGet)
				return
			}
			cfg.Attendance.ByDate(w, r)
		})
		mux.HandleFunc("/api/attendance/{employeeId}", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(fallback, w, r, http.MethodGet)
				return
			}
			cfg.Attendance.ByEmployee(w, r)
		})
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fallback.fail(r.Context(), w, http.StatusNotFound, "Route "+r.URL.RequestURI()+" not found", "")
	})

	var handler http.Handler = mux
	if len(cfg.Middleware) > 0 {
		for i := len(cfg.Middleware) - 1; i >= 0; i-- {
			if cfg.Middleware[i] != nil {
				handler = cfg.Middleware[i](handler)
			}
		}
	}

	return handler
}

func methodNotAllowed(resp responder, w http.ResponseWriter, r *http.Request, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	resp.fail(r.Context(), w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), "")
}
