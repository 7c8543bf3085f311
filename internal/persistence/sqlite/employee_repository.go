package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/hrms-lite/internal/persistence"
)

const employeeColumns = `employee_id, full_name, email, department, created_at`

// EmployeeRepository implements persistence.EmployeeRepository using SQLite
type EmployeeRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
	now    func() time.Time
}

// NewEmployeeRepository creates a new SQLite employee repository
func NewEmployeeRepository(pool *ConnectionPool, now func() time.Time) *EmployeeRepository {
	if now == nil {
		now = time.Now
	}
	return &EmployeeRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
		now:    now,
	}
}

// CreateEmployee inserts a new employee. A zero CreatedAt is stamped with the
// repository clock.
func (r *EmployeeRepository) CreateEmployee(ctx context.Context, employee persistence.Employee) (persistence.Employee, error) {
	if employee.EmployeeID == "" {
		return persistence.Employee{}, persistence.ErrConstraintViolation
	}
	if employee.CreatedAt.IsZero() {
		employee.CreatedAt = r.now()
	}
	employee.CreatedAt = employee.CreatedAt.UTC()

	query := `
		INSERT INTO employees (employee_id, full_name, email, department, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.pool.db.ExecContext(ctx, query,
		employee.EmployeeID,
		employee.FullName,
		employee.Email,
		employee.Department,
		formatTimestamp(employee.CreatedAt),
	)
	if err != nil {
		return persistence.Employee{}, r.mapper.MapError(err)
	}

	return employee, nil
}

// GetEmployee retrieves an employee by ID
func (r *EmployeeRepository) GetEmployee(ctx context.Context, employeeID string) (persistence.Employee, error) {
	if employeeID == "" {
		return persistence.Employee{}, persistence.ErrNotFound
	}

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = ?`

	employee, err := scanEmployee(r.helper.QueryRow(ctx, query, employeeID))
	if err != nil {
		return persistence.Employee{}, r.mapper.MapError(err)
	}
	return employee, nil
}

// ListEmployees returns all employees, newest first
func (r *EmployeeRepository) ListEmployees(ctx context.Context) ([]persistence.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		ORDER BY created_at DESC, employee_id ASC
	`

	rows, err := r.helper.Query(ctx, query)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	employees := make([]persistence.Employee, 0)
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return employees, nil
}

// DeleteEmployee removes an employee and every attendance record it owns in
// one transaction, returning the deleted employee.
func (r *EmployeeRepository) DeleteEmployee(ctx context.Context, employeeID string) (persistence.Employee, error) {
	if employeeID == "" {
		return persistence.Employee{}, persistence.ErrNotFound
	}

	var deleted persistence.Employee
	err := r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = ?`
		employee, err := scanEmployee(r.helper.QueryRowTx(ctx, tx, query, employeeID))
		if err != nil {
			return r.mapper.MapError(err)
		}

		if _, err := r.helper.ExecTx(ctx, tx, `DELETE FROM attendance WHERE employee_id = ?`, employeeID); err != nil {
			return r.mapper.MapError(err)
		}

		result, err := r.helper.ExecTx(ctx, tx, `DELETE FROM employees WHERE employee_id = ?`, employeeID)
		if err != nil {
			return r.mapper.MapError(err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return persistence.ErrNotFound
		}

		deleted = employee
		return nil
	})
	if err != nil {
		return persistence.Employee{}, err
	}

	return deleted, nil
}

// CountEmployees returns the number of stored employees
func (r *EmployeeRepository) CountEmployees(ctx context.Context) (int, error) {
	var count int
	if err := r.helper.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count); err != nil {
		return 0, r.mapper.MapError(err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (persistence.Employee, error) {
	var (
		employee     persistence.Employee
		createdAtStr string
	)
	if err := row.Scan(
		&employee.EmployeeID,
		&employee.FullName,
		&employee.Email,
		&employee.Department,
		&createdAtStr,
	); err != nil {
		return persistence.Employee{}, err
	}

	createdAt, err := parseTimestamp(createdAtStr)
	if err != nil {
		return persistence.Employee{}, err
	}
	employee.CreatedAt = createdAt

	return employee, nil
}
