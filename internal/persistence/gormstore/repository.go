package gormstore

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/hrms-lite/internal/persistence"
)

const entryColumns = "a.id, a.employee_id, a.date, a.status, a.created_at, e.full_name, e.email, e.department"

// CreateEmployee inserts a new employee. A zero CreatedAt is stamped with the
// store clock.
func (s *Storage) CreateEmployee(ctx context.Context, employee persistence.Employee) (persistence.Employee, error) {
	if employee.EmployeeID == "" {
		return persistence.Employee{}, persistence.ErrConstraintViolation
	}
	if employee.CreatedAt.IsZero() {
		employee.CreatedAt = s.now()
	}
	employee.CreatedAt = employee.CreatedAt.UTC()

	row := employeeRow{
		EmployeeID: employee.EmployeeID,
		FullName:   employee.FullName,
		Email:      employee.Email,
		Department: employee.Department,
		CreatedAt:  employee.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return persistence.Employee{}, translateError(err, "create employee")
	}
	return employee, nil
}

// GetEmployee retrieves an employee by ID.
func (s *Storage) GetEmployee(ctx context.Context, employeeID string) (persistence.Employee, error) {
	if employeeID == "" {
		return persistence.Employee{}, persistence.ErrNotFound
	}

	var row employeeRow
	if err := s.db.WithContext(ctx).Where("employee_id = ?", employeeID).First(&row).Error; err != nil {
		return persistence.Employee{}, translateError(err, "get employee")
	}
	return toEmployee(row), nil
}

// ListEmployees returns all employees, newest first.
func (s *Storage) ListEmployees(ctx context.Context) ([]persistence.Employee, error) {
	var rows []employeeRow
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("employee_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err, "list employees")
	}

	employees := make([]persistence.Employee, 0, len(rows))
	for _, row := range rows {
		employees = append(employees, toEmployee(row))
	}
	return employees, nil
}

// DeleteEmployee removes an employee and its attendance in one transaction,
// returning the deleted employee.
func (s *Storage) DeleteEmployee(ctx context.Context, employeeID string) (persistence.Employee, error) {
	if employeeID == "" {
		return persistence.Employee{}, persistence.ErrNotFound
	}

	var deleted employeeRow
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", employeeID).First(&deleted).Error; err != nil {
			return translateError(err, "load employee")
		}
		if err := tx.Where("employee_id = ?", employeeID).Delete(&attendanceRow{}).Error; err != nil {
			return translateError(err, "delete attendance")
		}

		result := tx.Where("employee_id = ?", employeeID).Delete(&employeeRow{})
		if result.Error != nil {
			return translateError(result.Error, "delete employee")
		}
		if result.RowsAffected == 0 {
			return persistence.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return persistence.Employee{}, err
	}
	return toEmployee(deleted), nil
}

// CountEmployees returns the number of stored employees.
func (s *Storage) CountEmployees(ctx context.Context) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&employeeRow{}).Count(&count).Error; err != nil {
		return 0, translateError(err, "count employees")
	}
	return int(count), nil
}

// MarkAttendance inserts the record for (employee_id, date) or overwrites the
// status of the existing one, refreshing created_at either way.
func (s *Storage) MarkAttendance(ctx context.Context, record persistence.AttendanceRecord) (persistence.AttendanceRecord, error) {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = s.now()
	}

	row := attendanceRow{
		EmployeeID: record.EmployeeID,
		Date:       record.Date,
		Status:     record.Status,
		CreatedAt:  record.CreatedAt.UTC(),
	}

	var stored attendanceRow
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "created_at"}),
		}).Create(&row).Error
		if err != nil {
			return translateError(err, "upsert attendance")
		}

		// The generated id is not reported on the update path under MySQL.
		err = tx.Where("employee_id = ? AND date = ?", record.EmployeeID, record.Date).First(&stored).Error
		return translateError(err, "load attendance")
	})
	if err != nil {
		return persistence.AttendanceRecord{}, err
	}
	return toAttendance(stored), nil
}

// ListAttendanceByEmployee returns one employee's records, most recent date first.
// Email is left empty on these entries.
func (s *Storage) ListAttendanceByEmployee(ctx context.Context, employeeID string) ([]persistence.AttendanceEntry, error) {
	entries, err := s.listEntries(ctx, "list attendance by employee", func(q *gorm.DB) *gorm.DB {
		return q.Where("a.employee_id = ?", employeeID).Order("a.date DESC").Order("a.id DESC")
	})
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Email = ""
	}
	return entries, nil
}

// ListAttendanceByDate returns every record for date ordered by employee name.
func (s *Storage) ListAttendanceByDate(ctx context.Context, date string) ([]persistence.AttendanceEntry, error) {
	return s.listEntries(ctx, "list attendance by date", func(q *gorm.DB) *gorm.DB {
		return q.Where("a.date = ?", date).Order("e.full_name ASC").Order("a.employee_id ASC")
	})
}

// CountAttendanceByStatus groups the records of date by status.
func (s *Storage) CountAttendanceByStatus(ctx context.Context, date string) ([]persistence.StatusCount, error) {
	var rows []statusCountRow
	err := s.db.WithContext(ctx).
		Model(&attendanceRow{}).
		Select("status, COUNT(*) AS count").
		Where("date = ?", date).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err, "count attendance")
	}

	counts := make([]persistence.StatusCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, persistence.StatusCount{Status: row.Status, Count: row.Count})
	}
	return counts, nil
}

func (s *Storage) listEntries(ctx context.Context, op string, scope func(*gorm.DB) *gorm.DB) ([]persistence.AttendanceEntry, error) {
	var rows []entryRow
	query := s.db.WithContext(ctx).
		Table("attendance AS a").
		Select(entryColumns).
		Joins("JOIN employees e ON e.employee_id = a.employee_id")
	if err := scope(query).Scan(&rows).Error; err != nil {
		return nil, translateError(err, op)
	}

	entries := make([]persistence.AttendanceEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, persistence.AttendanceEntry{
			AttendanceRecord: persistence.AttendanceRecord{
				ID:         row.ID,
				EmployeeID: row.EmployeeID,
				Date:       row.Date,
				Status:     row.Status,
				CreatedAt:  row.CreatedAt.UTC(),
			},
			FullName:   row.FullName,
			Email:      row.Email,
			Department: row.Department,
		})
	}
	return entries, nil
}

func toEmployee(row employeeRow) persistence.Employee {
	return persistence.Employee{
		EmployeeID: row.EmployeeID,
		FullName:   row.FullName,
		Email:      row.Email,
		Department: row.Department,
		CreatedAt:  row.CreatedAt.UTC(),
	}
}

func toAttendance(row attendanceRow) persistence.AttendanceRecord {
	return persistence.AttendanceRecord{
		ID:         row.ID,
		EmployeeID: row.EmployeeID,
		Date:       row.Date,
		Status:     row.Status,
		CreatedAt:  row.CreatedAt.UTC(),
	}
}
