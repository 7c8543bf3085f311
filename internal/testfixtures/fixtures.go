package testfixtures

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/example/hrms-lite/internal/application"
	"github.com/example/hrms-lite/internal/persistence"
	"github.com/example/hrms-lite/internal/validation"
)

var employeeCounter uint64

var referenceTime = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ReferenceDate is ReferenceTime as a YYYY-MM-DD attendance date.
func ReferenceDate() string {
	return referenceTime.Format("2006-01-02")
}

// EmployeeFixture is a deterministic, valid employee.
type EmployeeFixture struct {
	EmployeeID string
	FullName   string
	Email      string
	Department string
	CreatedAt  time.Time
}

// EmployeeOption configures the generated employee fixture.
type EmployeeOption func(*EmployeeFixture)

// NewEmployeeFixture returns a unique, valid employee with optional overrides.
func NewEmployeeFixture(opts ...EmployeeOption) EmployeeFixture {
	idx := atomic.AddUint64(&employeeCounter, 1)
	id := fmt.Sprintf("FX%04d", idx)
	fixture := EmployeeFixture{
		EmployeeID: id,
		FullName:   fmt.Sprintf("Employee %04d", idx),
		Email:      strings.ToLower(id) + "@example.com",
		Department: "Engineering",
		CreatedAt:  referenceTime.Add(time.Duration(idx) * time.Minute),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithEmployeeID overrides the generated identifier.
func WithEmployeeID(id string) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.EmployeeID = id
	}
}

// WithFullName overrides the generated name.
func WithFullName(name string) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.FullName = name
	}
}

// WithEmail overrides the generated email address.
func WithEmail(email string) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.Email = email
	}
}

// WithDepartment overrides the department.
func WithDepartment(department string) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.Department = department
	}
}

// WithEmployeeCreatedAt overrides the creation timestamp.
func WithEmployeeCreatedAt(ts time.Time) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.CreatedAt = ts
	}
}

// Input converts the fixture into a create request.
func (f EmployeeFixture) Input() validation.EmployeeInput {
	return validation.EmployeeInput{
		EmployeeID: f.EmployeeID,
		FullName:   f.FullName,
		Email:      f.Email,
		Department: f.Department,
	}
}

// Application converts the fixture into the service model.
func (f EmployeeFixture) Application() application.Employee {
	return application.Employee{
		EmployeeID: f.EmployeeID,
		FullName:   f.FullName,
		Email:      f.Email,
		Department: f.Department,
		CreatedAt:  f.CreatedAt,
	}
}

// Persistence converts the fixture into the storage model.
func (f EmployeeFixture) Persistence() persistence.Employee {
	return persistence.Employee{
		EmployeeID: f.EmployeeID,
		FullName:   f.FullName,
		Email:      f.Email,
		Department: f.Department,
		CreatedAt:  f.CreatedAt,
	}
}

// AttendanceFixture is a valid attendance mark.
type AttendanceFixture struct {
	EmployeeID string
	Date       string
	Status     string
}

// AttendanceOption configures the generated attendance fixture.
type AttendanceOption func(*AttendanceFixture)

// NewAttendanceFixture marks employeeID Present on ReferenceDate unless overridden.
func NewAttendanceFixture(employeeID string, opts ...AttendanceOption) AttendanceFixture {
	fixture := AttendanceFixture{
		EmployeeID: employeeID,
		Date:       ReferenceDate(),
		Status:     validation.StatusPresent,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// OnDate overrides the attendance date.
func OnDate(date string) AttendanceOption {
	return func(f *AttendanceFixture) {
		f.Date = date
	}
}

// Absent marks the fixture as Absent.
func Absent() AttendanceOption {
	return WithStatus(validation.StatusAbsent)
}

// WithStatus overrides the status verbatim, including invalid values.
func WithStatus(status string) AttendanceOption {
	return func(f *AttendanceFixture) {
		f.Status = status
	}
}

// Input converts the fixture into a mark request.
func (f AttendanceFixture) Input() validation.AttendanceInput {
	return validation.AttendanceInput{
		EmployeeID: f.EmployeeID,
		Date:       f.Date,
		Status:     f.Status,
	}
}

// Persistence converts the fixture into a storage record. CreatedAt is left
// zero for the store to stamp.
func (f AttendanceFixture) Persistence() persistence.AttendanceRecord {
	return persistence.AttendanceRecord{
		EmployeeID: f.EmployeeID,
		Date:       f.Date,
		Status:     f.Status,
	}
}
