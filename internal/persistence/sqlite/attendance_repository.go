package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/hrms-lite/internal/persistence"
)

// AttendanceRepository implements persistence.AttendanceRepository using SQLite
type AttendanceRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
	now    func() time.Time
}

// NewAttendanceRepository creates a new SQLite attendance repository
func NewAttendanceRepository(pool *ConnectionPool, now func() time.Time) *AttendanceRepository {
	if now == nil {
		now = time.Now
	}
	return &AttendanceRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
		now:    now,
	}
}

// MarkAttendance inserts the record for (employee_id, date) or overwrites the
// status of the existing one. created_at is refreshed either way.
func (r *AttendanceRepository) MarkAttendance(ctx context.Context, record persistence.AttendanceRecord) (persistence.AttendanceRecord, error) {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = r.now()
	}

	query := `
		INSERT INTO attendance (employee_id, date, status, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			status = excluded.status,
			created_at = excluded.created_at
		RETURNING id, employee_id, date, status, created_at
	`

	row := r.helper.QueryRow(ctx, query,
		record.EmployeeID,
		record.Date,
		record.Status,
		formatTimestamp(record.CreatedAt),
	)

	stored, err := scanAttendance(row)
	if err != nil {
		return persistence.AttendanceRecord{}, r.mapper.MapError(err)
	}
	return stored, nil
}

// ListAttendanceByEmployee returns one employee's records, most recent date first
func (r *AttendanceRepository) ListAttendanceByEmployee(ctx context.Context, employeeID string) ([]persistence.AttendanceEntry, error) {
	query := `
		SELECT a.id, a.employee_id, a.date, a.status, a.created_at, e.full_name, '', e.department
		FROM attendance a
		JOIN employees e ON e.employee_id = a.employee_id
		WHERE a.employee_id = ?
		ORDER BY a.date DESC, a.id DESC
	`
	return r.listEntries(ctx, query, employeeID)
}

// ListAttendanceByDate returns every record for date ordered by employee name
func (r *AttendanceRepository) ListAttendanceByDate(ctx context.Context, date string) ([]persistence.AttendanceEntry, error) {
	query := `
		SELECT a.id, a.employee_id, a.date, a.status, a.created_at, e.full_name, e.email, e.department
		FROM attendance a
		JOIN employees e ON e.employee_id = a.employee_id
		WHERE a.date = ?
		ORDER BY e.full_name ASC, a.employee_id ASC
	`
	return r.listEntries(ctx, query, date)
}

// CountAttendanceByStatus groups the records of date by status
func (r *AttendanceRepository) CountAttendanceByStatus(ctx context.Context, date string) ([]persistence.StatusCount, error) {
	query := `
		SELECT status, COUNT(*)
		FROM attendance
		WHERE date = ?
		GROUP BY status
		ORDER BY status ASC
	`

	rows, err := r.helper.Query(ctx, query, date)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	counts := make([]persistence.StatusCount, 0, 2)
	for rows.Next() {
		var count persistence.StatusCount
		if err := rows.Scan(&count.Status, &count.Count); err != nil {
			return nil, r.mapper.MapError(err)
		}
		counts = append(counts, count)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return counts, nil
}

func (r *AttendanceRepository) listEntries(ctx context.Context, query string, arg string) ([]persistence.AttendanceEntry, error) {
	rows, err := r.helper.Query(ctx, query, arg)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	entries := make([]persistence.AttendanceEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return entries, nil
}

func scanAttendance(row rowScanner) (persistence.AttendanceRecord, error) {
	var (
		record       persistence.AttendanceRecord
		createdAtStr string
	)
	if err := row.Scan(&record.ID, &record.EmployeeID, &record.Date, &record.Status, &createdAtStr); err != nil {
		return persistence.AttendanceRecord{}, err
	}

	createdAt, err := parseTimestamp(createdAtStr)
	if err != nil {
		return persistence.AttendanceRecord{}, err
	}
	record.CreatedAt = createdAt

	return record, nil
}

func scanEntry(rows *sql.Rows) (persistence.AttendanceEntry, error) {
	var (
		entry        persistence.AttendanceEntry
		createdAtStr string
	)
	if err := rows.Scan(
		&entry.ID,
		&entry.EmployeeID,
		&entry.Date,
		&entry.Status,
		&createdAtStr,
		&entry.FullName,
		&entry.Email,
		&entry.Department,
	); err != nil {
		return persistence.AttendanceEntry{}, err
	}

	createdAt, err := parseTimestamp(createdAtStr)
	if err != nil {
		return persistence.AttendanceEntry{}, err
	}
	entry.CreatedAt = createdAt

	return entry, nil
}
