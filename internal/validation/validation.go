// Package validation holds the field rules for employee and attendance input.
// The HTTP boundary, the application services and any other client share these
// checks; the storage constraints remain the authoritative enforcement.
package validation

import (
	"regexp"
	"strings"
)

// Attendance status values accepted by the store.
const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

// Field names reported in ValidationError.FieldErrors.
const (
	FieldEmployeeID = "employee_id"
	FieldFullName   = "full_name"
	FieldEmail      = "email"
	FieldDepartment = "department"
	FieldDate       = "date"
	FieldStatus     = "status"
)

var (
	employeeIDPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	datePattern       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// EmployeeInput carries the caller supplied employee fields.
type EmployeeInput struct {
	EmployeeID string
	FullName   string
	Email      string
	Department string
}

// Normalize trims surrounding whitespace from every field.
func (in EmployeeInput) Normalize() EmployeeInput {
	return EmployeeInput{
		EmployeeID: strings.TrimSpace(in.EmployeeID),
		FullName:   strings.TrimSpace(in.FullName),
		Email:      strings.TrimSpace(in.Email),
		Department: strings.TrimSpace(in.Department),
	}
}

// AttendanceInput carries the caller supplied attendance mark.
type AttendanceInput struct {
	EmployeeID string
	Date       string
	Status     string
}

// Normalize trims surrounding whitespace from every field. Status casing is
// left untouched because the status check is case-sensitive.
func (in AttendanceInput) Normalize() AttendanceInput {
	return AttendanceInput{
		EmployeeID: strings.TrimSpace(in.EmployeeID),
		Date:       strings.TrimSpace(in.Date),
		Status:     strings.TrimSpace(in.Status),
	}
}

// ValidateEmployeeInput checks required fields, the email shape and the
// employee ID alphabet. It returns a *ValidationError or nil.
func ValidateEmployeeInput(in EmployeeInput) error {
	vErr := &ValidationError{}

	switch id := strings.TrimSpace(in.EmployeeID); {
	case id == "":
		vErr.add(FieldEmployeeID, "Employee ID is required")
	case !employeeIDPattern.MatchString(id):
		vErr.add(FieldEmployeeID, "Employee ID must be alphanumeric with no spaces")
	}

	if strings.TrimSpace(in.FullName) == "" {
		vErr.add(FieldFullName, "Full name is required")
	}

	switch email := strings.TrimSpace(in.Email); {
	case email == "":
		vErr.add(FieldEmail, "Email is required")
	case !emailPattern.MatchString(email):
		vErr.add(FieldEmail, "Invalid email format")
	}

	if strings.TrimSpace(in.Department) == "" {
		vErr.add(FieldDepartment, "Department is required")
	}

	return vErr.orNil()
}

// ValidateAttendanceInput checks required fields, the status enumeration and
// the date shape. It returns a *ValidationError or nil.
func ValidateAttendanceInput(in AttendanceInput) error {
	vErr := &ValidationError{}

	if strings.TrimSpace(in.EmployeeID) == "" {
		vErr.add(FieldEmployeeID, "Employee ID is required")
	}

	vErr.merge(dateError(in.Date))

	switch status := strings.TrimSpace(in.Status); {
	case status == "":
		vErr.add(FieldStatus, "Status is required")
	case !IsStatus(status):
		vErr.add(FieldStatus, `Status must be either "Present" or "Absent"`)
	}

	return vErr.orNil()
}

// ValidateDate checks that value has the YYYY-MM-DD shape. The check is
// syntactic only: 2024-02-30 passes.
func ValidateDate(value string) error {
	return dateError(value).orNil()
}

// IsStatus reports whether status is one of the accepted attendance values.
func IsStatus(status string) bool {
	return status == StatusPresent || status == StatusAbsent
}

func dateError(value string) *ValidationError {
	vErr := &ValidationError{}
	switch date := strings.TrimSpace(value); {
	case date == "":
		vErr.add(FieldDate, "Date is required")
	case !datePattern.MatchString(date):
		vErr.add(FieldDate, "Date must be in YYYY-MM-DD format")
	}
	return vErr
}
