package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/hrms-lite/internal/validation"
)

// EmployeeRepository captures the persistence operations needed by the employee service.
type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, employee Employee) (Employee, error)
	GetEmployee(ctx context.Context, employeeID string) (Employee, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
	DeleteEmployee(ctx context.Context, employeeID string) (Employee, error)
	CountEmployees(ctx context.Context) (int, error)
}

// EmployeeService orchestrates validation and persistence for employees.
type EmployeeService struct {
	employees EmployeeRepository
	now       func() time.Time
	logger    *slog.Logger
}

// NewEmployeeService constructs an employee service with the provided dependencies.
func NewEmployeeService(employees EmployeeRepository, now func() time.Time, logger *slog.Logger) *EmployeeService {
	if now == nil {
		now = time.Now
	}
	return &EmployeeService{employees: employees, now: now, logger: defaultLogger(logger)}
}

func (s *EmployeeService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "EmployeeService", operation, attrs...)
}

// ListEmployees returns every employee, newest first.
func (s *EmployeeService) ListEmployees(ctx context.Context) (employees []Employee, err error) {
	if s == nil || s.employees == nil {
		return nil, fmt.Errorf("employee repository not configured")
	}

	logger := s.loggerWith(ctx, "ListEmployees")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list employees", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.DebugContext(ctx, "employees listed", "count", len(employees))
	}()

	employees, err = s.employees.ListEmployees(ctx)
	if err != nil {
		err = mapRepoError(err)
		return nil, err
	}
	if employees == nil {
		employees = []Employee{}
	}
	return employees, nil
}

// GetEmployee returns the employee identified by employeeID.
func (s *EmployeeService) GetEmployee(ctx context.Context, employeeID string) (employee Employee, err error) {
	if s == nil || s.employees == nil {
		return Employee{}, fmt.Errorf("employee repository not configured")
	}

	employeeID = strings.TrimSpace(employeeID)
	logger := s.loggerWith(ctx, "GetEmployee", "employee_id", employeeID)
	defer func() {
		if err != nil && ErrorKind(err) == "unexpected" {
			logger.ErrorContext(ctx, "failed to get employee", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	if employeeID == "" {
		return Employee{}, ErrNotFound
	}

	employee, err = s.employees.GetEmployee(ctx, employeeID)
	if err != nil {
		err = mapRepoError(err)
		return Employee{}, err
	}
	return employee, nil
}

// CreateEmployee validates input and persists a new employee.
func (s *EmployeeService) CreateEmployee(ctx context.Context, input validation.EmployeeInput) (employee Employee, err error) {
	if s == nil || s.employees == nil {
		return Employee{}, fmt.Errorf("employee repository not configured")
	}

	normalized := input.Normalize()
	logger := s.loggerWith(ctx, "CreateEmployee", "employee_id", normalized.EmployeeID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create employee", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "employee created")
	}()

	if err = validation.ValidateEmployeeInput(normalized); err != nil {
		return Employee{}, err
	}

	employee = Employee{
		EmployeeID: normalized.EmployeeID,
		FullName:   normalized.FullName,
		Email:      normalized.Email,
		Department: normalized.Department,
		CreatedAt:  s.now().UTC(),
	}

	var persisted Employee
	persisted, err = s.employees.CreateEmployee(ctx, employee)
	if err != nil {
		err = mapRepoError(err)
		return Employee{}, err
	}

	return persisted, nil
}

// DeleteEmployee removes an employee together with all of its attendance
// records and returns the removed employee.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, employeeID string) (employee Employee, err error) {
	if s == nil || s.employees == nil {
		return Employee{}, fmt.Errorf("employee repository not configured")
	}

	employeeID = strings.TrimSpace(employeeID)
	logger := s.loggerWith(ctx, "DeleteEmployee", "employee_id", employeeID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete employee", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "employee deleted")
	}()

	if employeeID == "" {
		return Employee{}, ErrNotFound
	}

	employee, err = s.employees.DeleteEmployee(ctx, employeeID)
	if err != nil {
		err = mapRepoError(err)
		return Employee{}, err
	}
	return employee, nil
}

// CountEmployees returns the number of employees on record.
func (s *EmployeeService) CountEmployees(ctx context.Context) (int, error) {
	if s == nil || s.employees == nil {
		return 0, fmt.Errorf("employee repository not configured")
	}

	count, err := s.employees.CountEmployees(ctx)
	if err != nil {
		return 0, mapRepoError(err)
	}
	return count, nil
}
