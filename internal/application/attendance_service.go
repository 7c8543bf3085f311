package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/hrms-lite/internal/validation"
)

// AttendanceRepository captures the persistence operations needed by the attendance service.
type AttendanceRepository interface {
	MarkAttendance(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)
	ListAttendanceByEmployee(ctx context.Context, employeeID string) ([]AttendanceEntry, error)
	ListAttendanceByDate(ctx context.Context, date string) ([]AttendanceEntry, error)
	CountAttendanceByStatus(ctx context.Context, date string) ([]StatusCount, error)
}

// EmployeeDirectory resolves employees referenced by attendance operations.
type EmployeeDirectory interface {
	GetEmployee(ctx context.Context, employeeID string) (Employee, error)
	CountEmployees(ctx context.Context) (int, error)
}

// AttendanceService orchestrates validation and persistence for attendance marks.
type AttendanceService struct {
	attendance AttendanceRepository
	employees  EmployeeDirectory
	now        func() time.Time
	logger     *slog.Logger
}

// NewAttendanceService constructs an attendance service with the provided dependencies.
func NewAttendanceService(attendance AttendanceRepository, employees EmployeeDirectory, now func() time.Time, logger *slog.Logger) *AttendanceService {
	if now == nil {
		now = time.Now
	}
	return &AttendanceService{attendance: attendance, employees: employees, now: now, logger: defaultLogger(logger)}
}

func (s *AttendanceService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AttendanceService", operation, attrs...)
}

func (s *AttendanceService) configured() error {
	if s == nil || s.attendance == nil || s.employees == nil {
		return fmt.Errorf("attendance repositories not configured")
	}
	return nil
}

// MarkAttendance records the status of an employee on a date, replacing any
// earlier mark for the same day.
func (s *AttendanceService) MarkAttendance(ctx context.Context, input validation.AttendanceInput) (record AttendanceRecord, err error) {
	if err = s.configured(); err != nil {
		return AttendanceRecord{}, err
	}

	normalized := input.Normalize()
	logger := s.loggerWith(ctx, "MarkAttendance",
		"employee_id", normalized.EmployeeID,
		"date", normalized.Date,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to mark attendance", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("attendance_id", record.ID, "status", record.Status).InfoContext(ctx, "attendance marked")
	}()

	if err = validation.ValidateAttendanceInput(normalized); err != nil {
		return AttendanceRecord{}, err
	}

	if _, err = s.employees.GetEmployee(ctx, normalized.EmployeeID); err != nil {
		err = mapRepoError(err)
		return AttendanceRecord{}, err
	}

	record, err = s.attendance.MarkAttendance(ctx, AttendanceRecord{
		EmployeeID: normalized.EmployeeID,
		Date:       normalized.Date,
		Status:     normalized.Status,
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		err = mapRepoError(err)
		return AttendanceRecord{}, err
	}

	return record, nil
}

// AttendanceByEmployee returns one employee's attendance, most recent first.
func (s *AttendanceService) AttendanceByEmployee(ctx context.Context, employeeID string) (entries []AttendanceEntry, err error) {
	if err = s.configured(); err != nil {
		return nil, err
	}

	employeeID = strings.TrimSpace(employeeID)
	logger := s.loggerWith(ctx, "AttendanceByEmployee", "employee_id", employeeID)
	defer func() {
		if err != nil && ErrorKind(err) == "unexpected" {
			logger.ErrorContext(ctx, "failed to list attendance", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	if employeeID == "" {
		return nil, ErrNotFound
	}

	if _, err = s.employees.GetEmployee(ctx, employeeID); err != nil {
		err = mapRepoError(err)
		return nil, err
	}

	entries, err = s.attendance.ListAttendanceByEmployee(ctx, employeeID)
	if err != nil {
		err = mapRepoError(err)
		return nil, err
	}
	if entries == nil {
		entries = []AttendanceEntry{}
	}
	return entries, nil
}

// AttendanceByDate returns every mark recorded for date, ordered by employee name.
func (s *AttendanceService) AttendanceByDate(ctx context.Context, date string) (entries []AttendanceEntry, err error) {
	if err = s.configured(); err != nil {
		return nil, err
	}

	date = strings.TrimSpace(date)
	logger := s.loggerWith(ctx, "AttendanceByDate", "date", date)
	defer func() {
		if err != nil && ErrorKind(err) == "unexpected" {
			logger.ErrorContext(ctx, "failed to list attendance", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	if err = validation.ValidateDate(date); err != nil {
		return nil, err
	}

	entries, err = s.attendance.ListAttendanceByDate(ctx, date)
	if err != nil {
		err = mapRepoError(err)
		return nil, err
	}
	if entries == nil {
		entries = []AttendanceEntry{}
	}
	return entries, nil
}

// Summary computes the present, absent and unmarked headcount for date.
func (s *AttendanceService) Summary(ctx context.Context, date string) (summary Summary, err error) {
	if err = s.configured(); err != nil {
		return Summary{}, err
	}

	date = strings.TrimSpace(date)
	logger := s.loggerWith(ctx, "Summary", "date", date)
	defer func() {
		if err != nil {
			if ErrorKind(err) == "unexpected" {
				logger.ErrorContext(ctx, "failed to summarize attendance", "error", err, "error_kind", ErrorKind(err))
			}
			return
		}
		if summary.NotMarked < 0 {
			logger.WarnContext(ctx, "attendance exceeds employee count", "total_employees", summary.TotalEmployees,
				"present", summary.Present, "absent", summary.Absent)
		}
	}()

	if err = validation.ValidateDate(date); err != nil {
		return Summary{}, err
	}

	total, err := s.employees.CountEmployees(ctx)
	if err != nil {
		err = mapRepoError(err)
		return Summary{}, err
	}

	counts, err := s.attendance.CountAttendanceByStatus(ctx, date)
	if err != nil {
		err = mapRepoError(err)
		return Summary{}, err
	}

	return NewSummary(date, total, counts), nil
}
