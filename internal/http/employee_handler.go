package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/hrms-lite/internal/application"
	"github.com/example/hrms-lite/internal/export"
	"github.com/example/hrms-lite/internal/validation"
)

const maxRequestBody = 1 << 20

type employeeService interface {
	ListEmployees(ctx context.Context) ([]application.Employee, error)
	GetEmployee(ctx context.Context, employeeID string) (application.Employee, error)
	CreateEmployee(ctx context.Context, input validation.EmployeeInput) (application.Employee, error)
	DeleteEmployee(ctx context.Context, employeeID string) (application.Employee, error)
}

// HandlerOption customises a handler.
type HandlerOption func(*handlerOptions)

type handlerOptions struct {
	errorDetail bool
}

// WithErrorDetail exposes storage error detail in 500 responses. Meant for development.
func WithErrorDetail(enabled bool) HandlerOption {
	return func(o *handlerOptions) {
		o.errorDetail = enabled
	}
}

func applyHandlerOptions(opts []HandlerOption) handlerOptions {
	var o handlerOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type EmployeeHandler struct {
	service   employeeService
	responder responder
	logger    *slog.Logger
}

func NewEmployeeHandler(service employeeService, logger *slog.Logger, opts ...HandlerOption) *EmployeeHandler {
	base := defaultLogger(logger)
	o := applyHandlerOptions(opts)
	return &EmployeeHandler{service: service, responder: newResponder(base, o.errorDetail), logger: base}
}

func (h *EmployeeHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "EmployeeHandler", operation, attrs...)
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")
	employees, err := h.service.ListEmployees(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "employee list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(employees)).InfoContext(r.Context(), "employees listed")
	if wantsWorkbook(r) {
		var buf bytes.Buffer
		if err := export.WriteEmployees(&buf, employees); err != nil {
			logger.ErrorContext(r.Context(), "employee export failed", "error", err)
			h.responder.handleServiceError(r.Context(), w, err)
			return
		}
		writeWorkbook(w, "employees.xlsx", buf.Bytes())
		return
	}

	h.responder.success(r.Context(), w, http.StatusOK, "Employees retrieved successfully", toEmployeeDTOs(employees))
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	employeeID := strings.TrimSpace(r.PathValue("employeeId"))
	logger := h.log(r.Context(), "Get", "employee_id", employeeID)

	employee, err := h.service.GetEmployee(r.Context(), employeeID)
	if err != nil {
		logger.WarnContext(r.Context(), "employee lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.success(r.Context(), w, http.StatusOK, "Employee retrieved successfully", toEmployeeDTO(employee))
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req employeeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").WarnContext(r.Context(), "failed to decode employee request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create", "employee_id", strings.TrimSpace(req.EmployeeID))

	employee, err := h.service.CreateEmployee(r.Context(), req.toInput())
	if err != nil {
		logger.WarnContext(r.Context(), "employee creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "employee created")
	h.responder.success(r.Context(), w, http.StatusCreated, "Employee created successfully", toEmployeeDTO(employee))
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	employeeID := strings.TrimSpace(r.PathValue("employeeId"))
	if employeeID == "" {
		h.log(r.Context(), "Delete", "error_kind", "bad_request").WarnContext(r.Context(), "missing employee id for delete")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingID)
		return
	}

	logger := h.log(r.Context(), "Delete", "employee_id", employeeID)
	employee, err := h.service.DeleteEmployee(r.Context(), employeeID)
	if err != nil {
		logger.WarnContext(r.Context(), "employee delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "employee deleted")
	h.responder.success(r.Context(), w, http.StatusOK, "Employee and associated attendance records deleted successfully", toEmployeeDTO(employee))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	return json.NewDecoder(r.Body).Decode(dst)
}

func wantsWorkbook(r *http.Request) bool {
	return strings.EqualFold(r.URL.Query().Get("format"), "xlsx")
}

func writeWorkbook(w http.ResponseWriter, filename string, body []byte) {
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

type employeeRequest struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

func (r employeeRequest) toInput() validation.EmployeeInput {
	return validation.EmployeeInput{
		EmployeeID: r.EmployeeID,
		FullName:   r.FullName,
		Email:      r.Email,
		Department: r.Department,
	}
}

type employeeDTO struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	CreatedAt  string `json:"created_at"`
}

func toEmployeeDTO(employee application.Employee) employeeDTO {
	return employeeDTO{
		EmployeeID: employee.EmployeeID,
		FullName:   employee.FullName,
		Email:      employee.Email,
		Department: employee.Department,
		CreatedAt:  employee.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toEmployeeDTOs(employees []application.Employee) []employeeDTO {
	out := make([]employeeDTO, 0, len(employees))
	for _, employee := range employees {
		out = append(out, toEmployeeDTO(employee))
	}
	return out
}
