package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/hrms-lite/internal/persistence"
	"github.com/example/hrms-lite/internal/validation"
)

type attendanceRepoStub struct {
	markErr error
	marked  []AttendanceRecord

	byEmployee    []AttendanceEntry
	byEmployeeErr error
	byDate        []AttendanceEntry
	byDateErr     error
	listedDate    string

	counts   []StatusCount
	countErr error
}

func (r *attendanceRepoStub) MarkAttendance(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error) {
	if r.markErr != nil {
		return AttendanceRecord{}, r.markErr
	}
	record.ID = int64(len(r.marked) + 1)
	r.marked = append(r.marked, record)
	return record, nil
}

func (r *attendanceRepoStub) ListAttendanceByEmployee(ctx context.Context, employeeID string) ([]AttendanceEntry, error) {
	return r.byEmployee, r.byEmployeeErr
}

func (r *attendanceRepoStub) ListAttendanceByDate(ctx context.Context, date string) ([]AttendanceEntry, error) {
	r.listedDate = date
	return r.byDate, r.byDateErr
}

func (r *attendanceRepoStub) CountAttendanceByStatus(ctx context.Context, date string) ([]StatusCount, error) {
	return r.counts, r.countErr
}

func newAttendanceTestService(attendance *attendanceRepoStub, employees *employeeRepoStub) *AttendanceService {
	return NewAttendanceService(attendance, employees, fixedClock, nil)
}

func knownEmployee() *employeeRepoStub {
	return &employeeRepoStub{getEmployee: Employee{EmployeeID: "EMP001", FullName: "Ada Lovelace"}}
}

func TestAttendanceService_MarkAttendance(t *testing.T) {
	ctx := context.Background()

	t.Run("validates before touching the store", func(t *testing.T) {
		attendance := &attendanceRepoStub{}
		svc := newAttendanceTestService(attendance, knownEmployee())

		_, err := svc.MarkAttendance(ctx, validation.AttendanceInput{EmployeeID: "EMP001", Date: "15-01-2024", Status: "present"})

		var vErr *validation.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors[validation.FieldDate]; !ok {
			t.Fatalf("expected date error, got %v", vErr.FieldErrors)
		}
		if _, ok := vErr.FieldErrors[validation.FieldStatus]; !ok {
			t.Fatalf("expected status error, got %v", vErr.FieldErrors)
		}
		if len(attendance.marked) != 0 {
			t.Fatalf("store must not be called")
		}
	})

	t.Run("unknown employee", func(t *testing.T) {
		attendance := &attendanceRepoStub{}
		svc := newAttendanceTestService(attendance, &employeeRepoStub{})

		_, err := svc.MarkAttendance(ctx, validation.AttendanceInput{EmployeeID: "EMP404", Date: "2024-01-15", Status: "Present"})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if len(attendance.marked) != 0 {
			t.Fatalf("no row may be written for a missing employee")
		}
	})

	t.Run("employee removed between check and write", func(t *testing.T) {
		svc := newAttendanceTestService(&attendanceRepoStub{markErr: persistence.ErrForeignKeyViolation}, knownEmployee())

		_, err := svc.MarkAttendance(ctx, validation.AttendanceInput{EmployeeID: "EMP001", Date: "2024-01-15", Status: "Present"})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("store constraint violation", func(t *testing.T) {
		svc := newAttendanceTestService(&attendanceRepoStub{markErr: persistence.ErrConstraintViolation}, knownEmployee())

		_, err := svc.MarkAttendance(ctx, validation.AttendanceInput{EmployeeID: "EMP001", Date: "2024-01-15", Status: "Present"})
		if !errors.Is(err, ErrConstraint) {
			t.Fatalf("expected ErrConstraint, got %v", err)
		}
	})

	t.Run("malformed literal", func(t *testing.T) {
		svc := newAttendanceTestService(&attendanceRepoStub{markErr: persistence.ErrMalformed}, knownEmployee())

		_, err := svc.MarkAttendance(ctx, validation.AttendanceInput{EmployeeID: "EMP001", Date: "2024-01-15", Status: "Present"})
		if !errors.Is(err, ErrMalformed) {
			t.Fatalf("expected ErrMalformed, got %v", err)
		}
	})

	t.Run("writes normalized record", func(t *testing.T) {
		attendance := &attendanceRepoStub{}
		svc := newAttendanceTestService(attendance, knownEmployee())

		record, err := svc.MarkAttendance(ctx, validation.AttendanceInput{EmployeeID: " EMP001 ", Date: " 2024-01-15 ", Status: "Absent"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record.ID != 1 || record.EmployeeID != "EMP001" || record.Date != "2024-01-15" || record.Status != "Absent" {
			t.Fatalf("unexpected record %+v", record)
		}
		if !record.CreatedAt.Equal(fixedNow) {
			t.Fatalf("expected created_at %v, got %v", fixedNow, record.CreatedAt)
		}
	})
}

func TestAttendanceService_AttendanceByEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown employee", func(t *testing.T) {
		svc := newAttendanceTestService(&attendanceRepoStub{}, &employeeRepoStub{})

		if _, err := svc.AttendanceByEmployee(ctx, "EMP404"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("known employee without records", func(t *testing.T) {
		svc := newAttendanceTestService(&attendanceRepoStub{}, knownEmployee())

		entries, err := svc.AttendanceByEmployee(ctx, "EMP001")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entries == nil || len(entries) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", entries)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		boom := errors.New("connection reset")
		svc := newAttendanceTestService(&attendanceRepoStub{byEmployeeErr: boom}, knownEmployee())

		if _, err := svc.AttendanceByEmployee(ctx, "EMP001"); !errors.Is(err, boom) {
			t.Fatalf("expected raw error, got %v", err)
		}
	})
}

func TestAttendanceService_AttendanceByDate(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects malformed dates", func(t *testing.T) {
		for _, date := range []string{"15-01-2024", "2024/01/15", "", "today"} {
			attendance := &attendanceRepoStub{}
			svc := newAttendanceTestService(attendance, knownEmployee())

			_, err := svc.AttendanceByDate(ctx, date)
			var vErr *validation.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("%q: expected ValidationError, got %v", date, err)
			}
			if attendance.listedDate != "" {
				t.Fatalf("%q: store must not be called", date)
			}
		}
	})

	t.Run("lists entries", func(t *testing.T) {
		attendance := &attendanceRepoStub{byDate: []AttendanceEntry{{FullName: "Ada"}, {FullName: "Grace"}}}
		svc := newAttendanceTestService(attendance, knownEmployee())

		entries, err := svc.AttendanceByDate(ctx, "2024-01-15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 2 || attendance.listedDate != "2024-01-15" {
			t.Fatalf("unexpected entries %+v for %q", entries, attendance.listedDate)
		}
	})
}

func TestAttendanceService_Summary(t *testing.T) {
	ctx := context.Background()

	t.Run("three present one absent of five", func(t *testing.T) {
		attendance := &attendanceRepoStub{counts: []StatusCount{{Status: "Present", Count: 3}, {Status: "Absent", Count: 1}}}
		employees := &employeeRepoStub{count: 5}
		svc := newAttendanceTestService(attendance, employees)

		summary, err := svc.Summary(ctx, "2024-01-15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := Summary{Date: "2024-01-15", TotalEmployees: 5, Present: 3, Absent: 1, NotMarked: 1}
		if summary != want {
			t.Fatalf("expected %+v, got %+v", want, summary)
		}
	})

	t.Run("empty store", func(t *testing.T) {
		svc := newAttendanceTestService(&attendanceRepoStub{}, &employeeRepoStub{})

		summary, err := svc.Summary(ctx, "2024-01-15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary != (Summary{Date: "2024-01-15"}) {
			t.Fatalf("expected zero summary, got %+v", summary)
		}
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		svc := newAttendanceTestService(&attendanceRepoStub{}, &employeeRepoStub{})

		_, err := svc.Summary(ctx, "2024/01/15")
		var vErr *validation.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("count failure", func(t *testing.T) {
		boom := errors.New("timeout")
		svc := newAttendanceTestService(&attendanceRepoStub{countErr: boom}, &employeeRepoStub{count: 2})

		if _, err := svc.Summary(ctx, "2024-01-15"); !errors.Is(err, boom) {
			t.Fatalf("expected raw error, got %v", err)
		}
	})
}
