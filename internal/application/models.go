package application

import "time"

// Employee is a member of staff tracked by the system.
type Employee struct {
	EmployeeID string
	FullName   string
	Email      string
	Department string
	CreatedAt  time.Time
}

// AttendanceRecord is the attendance mark of one employee on one date.
type AttendanceRecord struct {
	ID         int64
	EmployeeID string
	Date       string
	Status     string
	CreatedAt  time.Time
}

// AttendanceEntry is an attendance record with the employee's display fields.
// Email is empty on per-employee listings.
type AttendanceEntry struct {
	AttendanceRecord
	FullName   string
	Email      string
	Department string
}

// StatusCount is the number of records carrying Status on a date.
type StatusCount struct {
	Status string
	Count  int
}

// Summary is the attendance headcount for a single date.
type Summary struct {
	Date           string
	TotalEmployees int
	Present        int
	Absent         int
	NotMarked      int
}
