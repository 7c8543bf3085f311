package persistence

import "time"

// Employee represents a stored employee record. EmployeeID is the natural key.
type Employee struct {
	EmployeeID string
	FullName   string
	Email      string
	Department string
	CreatedAt  time.Time
}

// AttendanceRecord represents one attendance mark. At most one exists per
// (EmployeeID, Date); CreatedAt is refreshed on every write.
type AttendanceRecord struct {
	ID         int64
	EmployeeID string
	Date       string
	Status     string
	CreatedAt  time.Time
}

// AttendanceEntry is an attendance record joined with the owning employee's
// display fields.
type AttendanceEntry struct {
	AttendanceRecord
	FullName   string
	Email      string
	Department string
}

// StatusCount is one row of a GROUP BY status aggregation.
type StatusCount struct {
	Status string
	Count  int
}
