package testfixtures

import (
	"context"
	"testing"

	"github.com/example/hrms-lite/internal/application"
)

type capturingEmployeeRepo struct {
	created application.Employee
}

func (c *capturingEmployeeRepo) CreateEmployee(ctx context.Context, employee application.Employee) (application.Employee, error) {
	c.created = employee
	return employee, nil
}

func (c *capturingEmployeeRepo) GetEmployee(ctx context.Context, employeeID string) (application.Employee, error) {
	if c.created.EmployeeID == employeeID {
		return c.created, nil
	}
	return application.Employee{}, application.ErrNotFound
}

func (c *capturingEmployeeRepo) ListEmployees(ctx context.Context) ([]application.Employee, error) {
	return nil, nil
}

func (c *capturingEmployeeRepo) DeleteEmployee(ctx context.Context, employeeID string) (application.Employee, error) {
	return application.Employee{}, application.ErrNotFound
}

func (c *capturingEmployeeRepo) CountEmployees(ctx context.Context) (int, error) {
	return 1, nil
}

type countingAttendanceRepo struct {
	marked []application.AttendanceRecord
}

func (c *countingAttendanceRepo) MarkAttendance(ctx context.Context, record application.AttendanceRecord) (application.AttendanceRecord, error) {
	c.marked = append(c.marked, record)
	return record, nil
}

func (c *countingAttendanceRepo) ListAttendanceByEmployee(ctx context.Context, employeeID string) ([]application.AttendanceEntry, error) {
	return nil, nil
}

func (c *countingAttendanceRepo) ListAttendanceByDate(ctx context.Context, date string) ([]application.AttendanceEntry, error) {
	return nil, nil
}

func (c *countingAttendanceRepo) CountAttendanceByStatus(ctx context.Context, date string) ([]application.StatusCount, error) {
	return nil, nil
}

func TestServiceFactoryNewEmployeeService(t *testing.T) {
	factory := NewServiceFactory()
	repo := &capturingEmployeeRepo{}

	svc := factory.NewEmployeeService(repo)
	employee, err := svc.CreateEmployee(context.Background(), NewEmployeeFixture(WithEmployeeID("EMP001")).Input())
	if err != nil {
		t.Fatalf("CreateEmployee returned error: %v", err)
	}

	if employee.EmployeeID != "EMP001" || repo.created.EmployeeID != "EMP001" {
		t.Fatalf("repository received unexpected employee: %+v", repo.created)
	}
	if !employee.CreatedAt.Equal(factory.Clock.Current()) {
		t.Fatalf("expected timestamp %v, got %v", factory.Clock.Current(), employee.CreatedAt)
	}
}

func TestServiceFactoryNewAttendanceService(t *testing.T) {
	factory := NewServiceFactory(WithClock(NewClock(ReferenceTime())))
	employees := &capturingEmployeeRepo{created: NewEmployeeFixture(WithEmployeeID("EMP001")).Application()}
	attendance := &countingAttendanceRepo{}

	svc := factory.NewAttendanceService(attendance, employees)
	record, err := svc.MarkAttendance(context.Background(), NewAttendanceFixture("EMP001", Absent()).Input())
	if err != nil {
		t.Fatalf("MarkAttendance returned error: %v", err)
	}
	if len(attendance.marked) != 1 || record.Status != "Absent" || !record.CreatedAt.Equal(ReferenceTime()) {
		t.Fatalf("unexpected record %+v", record)
	}

	summary, err := svc.Summary(context.Background(), ReferenceDate())
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if summary.TotalEmployees != 1 || summary.NotMarked != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}
