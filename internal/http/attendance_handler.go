package http

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Azure/go-autorest/autorest/date"

	"github.com/example/hrms-lite/internal/application"
	"github.com/example/hrms-lite/internal/export"
	"github.com/example/hrms-lite/internal/validation"
)

type attendanceService interface {
	MarkAttendance(ctx context.Context, input validation.AttendanceInput) (application.AttendanceRecord, error)
	AttendanceByEmployee(ctx context.Context, employeeID string) ([]application.AttendanceEntry, error)
	AttendanceByDate(ctx context.Context, date string) ([]application.AttendanceEntry, error)
	Summary(ctx context.Context, date string) (application.Summary, error)
}

type AttendanceHandler struct {
	service   attendanceService
	responder responder
	logger    *slog.Logger
	now       func() time.Time
}

func NewAttendanceHandler(service attendanceService, now func() time.Time, logger *slog.Logger, opts ...HandlerOption) *AttendanceHandler {
	if now == nil {
		now = time.Now
	}
	base := defaultLogger(logger)
	o := applyHandlerOptions(opts)
	return &AttendanceHandler{service: service, responder: newResponder(base, o.errorDetail), logger: base, now: now}
}

func (h *AttendanceHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "AttendanceHandler", operation, attrs...)
}

func (h *AttendanceHandler) Mark(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req attendanceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.log(r.Context(), "Mark", "error_kind", "bad_request").WarnContext(r.Context(), "failed to decode attendance request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Mark", "employee_id", strings.TrimSpace(req.EmployeeID), "date", strings.TrimSpace(req.Date))

	record, err := h.service.MarkAttendance(r.Context(), req.toInput())
	if err != nil {
		logger.WarnContext(r.Context(), "attendance mark failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("attendance_id", record.ID, "status", record.Status).InfoContext(r.Context(), "attendance marked")
	h.responder.success(r.Context(), w, http.StatusCreated, "Attendance marked successfully", toAttendanceDTO(record))
}

func (h *AttendanceHandler) ByEmployee(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	employeeID := strings.TrimSpace(r.PathValue("employeeId"))
	logger := h.log(r.Context(), "ByEmployee", "employee_id", employeeID)

	entries, err := h.service.AttendanceByEmployee(r.Context(), employeeID)
	if err != nil {
		logger.WarnContext(r.Context(), "attendance lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(entries)).InfoContext(r.Context(), "attendance listed")
	h.responder.success(r.Context(), w, http.StatusOK, "Attendance records retrieved successfully", toAttendanceEntryDTOs(entries))
}

func (h *AttendanceHandler) ByDate(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	day := r.PathValue("date")
	logger := h.log(r.Context(), "ByDate", "date", day)

	entries, err := h.service.AttendanceByDate(r.Context(), day)
	if err != nil {
		logger.WarnContext(r.Context(), "attendance lookup failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(entries)).InfoContext(r.Context(), "attendance listed")
	if wantsWorkbook(r) {
		var buf bytes.Buffer
		if err := export.WriteAttendance(&buf, entries); err != nil {
			logger.ErrorContext(r.Context(), "attendance export failed", "error", err)
			h.responder.handleServiceError(r.Context(), w, err)
			return
		}
		writeWorkbook(w, "attendance-"+day+".xlsx", buf.Bytes())
		return
	}

	h.responder.success(r.Context(), w, http.StatusOK, "Attendance records retrieved successfully", toAttendanceEntryDTOs(entries))
}

// Summary reports the headcount for ?date=, or for today's UTC date when the
// parameter is absent.
func (h *AttendanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	day := r.URL.Query().Get("date")
	if day == "" {
		day = date.Date{Time: h.now().UTC()}.String()
	}
	logger := h.log(r.Context(), "Summary", "date", day)

	summary, err := h.service.Summary(r.Context(), day)
	if err != nil {
		logger.WarnContext(r.Context(), "attendance summary failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.success(r.Context(), w, http.StatusOK, "Attendance summary retrieved successfully", toSummaryDTO(summary))
}

type attendanceRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

func (r attendanceRequest) toInput() validation.AttendanceInput {
	return validation.AttendanceInput{
		EmployeeID: r.EmployeeID,
		Date:       r.Date,
		Status:     r.Status,
	}
}

type attendanceDTO struct {
	ID         int64  `json:"id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}

type attendanceEntryDTO struct {
	attendanceDTO
	FullName   string `json:"full_name"`
	Email      string `json:"email,omitempty"`
	Department string `json:"department"`
}

type summaryDTO struct {
	Date           string `json:"date"`
	TotalEmployees int    `json:"totalEmployees"`
	Present        int    `json:"present"`
	Absent         int    `json:"absent"`
	NotMarked      int    `json:"notMarked"`
}

func toAttendanceDTO(record application.AttendanceRecord) attendanceDTO {
	return attendanceDTO{
		ID:         record.ID,
		EmployeeID: record.EmployeeID,
		Date:       record.Date,
		Status:     record.Status,
		CreatedAt:  record.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toAttendanceEntryDTOs(entries []application.AttendanceEntry) []attendanceEntryDTO {
	out := make([]attendanceEntryDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, attendanceEntryDTO{
			attendanceDTO: toAttendanceDTO(entry.AttendanceRecord),
			FullName:      entry.FullName,
			Email:         entry.Email,
			Department:    entry.Department,
		})
	}
	return out
}

func toSummaryDTO(summary application.Summary) summaryDTO {
	return summaryDTO{
		Date:           summary.Date,
		TotalEmployees: summary.TotalEmployees,
		Present:        summary.Present,
		Absent:         summary.Absent,
		NotMarked:      summary.NotMarked,
	}
}
