package persistence

import "context"

// EmployeeRepository exposes the employee operations of the record store.
type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, employee Employee) (Employee, error)
	GetEmployee(ctx context.Context, employeeID string) (Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
	// DeleteEmployee removes the employee and all of its attendance in one
	// transaction and returns the deleted record.
	DeleteEmployee(ctx context.Context, employeeID string) (Employee, error)
	CountEmployees(ctx context.Context) (int, error)
}

// AttendanceRepository exposes the attendance operations of the record store.
type AttendanceRepository interface {
	// MarkAttendance inserts or overwrites the record for (EmployeeID, Date) in
	// a single statement and returns the stored row.
	MarkAttendance(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)
	ListAttendanceByEmployee(ctx context.Context, employeeID string) ([]AttendanceEntry, error)
	ListAttendanceByDate(ctx context.Context, date string) ([]AttendanceEntry, error)
	CountAttendanceByStatus(ctx context.Context, date string) ([]StatusCount, error)
}

// Store is a complete backend: both repositories plus lifecycle hooks.
type Store interface {
	EmployeeRepository
	AttendanceRepository
	Ping(ctx context.Context) error
	Close() error
}
