package main

import (
	"context"

	"github.com/example/hrms-lite/internal/application"
	"github.com/example/hrms-lite/internal/persistence"
)

// storeAdapter exposes a persistence.Store through the application
// repository interfaces. Errors pass through untouched; the services map
// persistence sentinels themselves.
type storeAdapter struct {
	store persistence.Store
}

var (
	_ application.EmployeeRepository   = (*storeAdapter)(nil)
	_ application.EmployeeDirectory    = (*storeAdapter)(nil)
	_ application.AttendanceRepository = (*storeAdapter)(nil)
)

func newStoreAdapter(store persistence.Store) *storeAdapter {
	return &storeAdapter{store: store}
}

func (a *storeAdapter) CreateEmployee(ctx context.Context, employee application.Employee) (application.Employee, error) {
	stored, err := a.store.CreateEmployee(ctx, toPersistenceEmployee(employee))
	if err != nil {
		return application.Employee{}, err
	}
	return toApplicationEmployee(stored), nil
}

func (a *storeAdapter) GetEmployee(ctx context.Context, employeeID string) (application.Employee, error) {
	stored, err := a.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return application.Employee{}, err
	}
	return toApplicationEmployee(stored), nil
}

func (a *storeAdapter) ListEmployees(ctx context.Context) ([]application.Employee, error) {
	models, err := a.store.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	employees := make([]application.Employee, 0, len(models))
	for _, model := range models {
		employees = append(employees, toApplicationEmployee(model))
	}
	return employees, nil
}

func (a *storeAdapter) DeleteEmployee(ctx context.Context, employeeID string) (application.Employee, error) {
	deleted, err := a.store.DeleteEmployee(ctx, employeeID)
	if err != nil {
		return application.Employee{}, err
	}
	return toApplicationEmployee(deleted), nil
}

func (a *storeAdapter) CountEmployees(ctx context.Context) (int, error) {
	return a.store.CountEmployees(ctx)
}

func (a *storeAdapter) MarkAttendance(ctx context.Context, record application.AttendanceRecord) (application.AttendanceRecord, error) {
	stored, err := a.store.MarkAttendance(ctx, persistence.AttendanceRecord{
		ID:         record.ID,
		EmployeeID: record.EmployeeID,
		Date:       record.Date,
		Status:     record.Status,
		CreatedAt:  record.CreatedAt,
	})
	if err != nil {
		return application.AttendanceRecord{}, err
	}
	return toApplicationRecord(stored), nil
}

func (a *storeAdapter) ListAttendanceByEmployee(ctx context.Context, employeeID string) ([]application.AttendanceEntry, error) {
	models, err := a.store.ListAttendanceByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return toApplicationEntries(models), nil
}

func (a *storeAdapter) ListAttendanceByDate(ctx context.Context, date string) ([]application.AttendanceEntry, error) {
	models, err := a.store.ListAttendanceByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return toApplicationEntries(models), nil
}

func (a *storeAdapter) CountAttendanceByStatus(ctx context.Context, date string) ([]application.StatusCount, error) {
	models, err := a.store.CountAttendanceByStatus(ctx, date)
	if err != nil {
		return nil, err
	}
	counts := make([]application.StatusCount, 0, len(models))
	for _, model := range models {
		counts = append(counts, application.StatusCount{Status: model.Status, Count: model.Count})
	}
	return counts, nil
}

func toApplicationEmployee(model persistence.Employee) application.Employee {
	return application.Employee{
		EmployeeID: model.EmployeeID,
		FullName:   model.FullName,
		Email:      model.Email,
		Department: model.Department,
		CreatedAt:  model.CreatedAt,
	}
}

func toPersistenceEmployee(employee application.Employee) persistence.Employee {
	return persistence.Employee{
		EmployeeID: employee.EmployeeID,
		FullName:   employee.FullName,
		Email:      employee.Email,
		Department: employee.Department,
		CreatedAt:  employee.CreatedAt,
	}
}

func toApplicationRecord(model persistence.AttendanceRecord) application.AttendanceRecord {
	return application.AttendanceRecord{
		ID:         model.ID,
		EmployeeID: model.EmployeeID,
		Date:       model.Date,
		Status:     model.Status,
		CreatedAt:  model.CreatedAt,
	}
}

func toApplicationEntries(models []persistence.AttendanceEntry) []application.AttendanceEntry {
	entries := make([]application.AttendanceEntry, 0, len(models))
	for _, model := range models {
		entries = append(entries, application.AttendanceEntry{
			AttendanceRecord: toApplicationRecord(model.AttendanceRecord),
			FullName:         model.FullName,
			Email:            model.Email,
			Department:       model.Department,
		})
	}
	return entries
}
