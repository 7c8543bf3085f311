package validation

import (
	"errors"
	"testing"
)

func validEmployee() EmployeeInput {
	return EmployeeInput{
		EmployeeID: "EMP001",
		FullName:   "Ada Lovelace",
		Email:      "ada@example.com",
		Department: "Engineering",
	}
}

func TestValidateEmployeeInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		mutate     func(*EmployeeInput)
		wantFields map[string]string
	}{
		{
			name:   "accepts a complete record",
			mutate: func(*EmployeeInput) {},
		},
		{
			name: "reports every missing field",
			mutate: func(in *EmployeeInput) {
				*in = EmployeeInput{}
			},
			wantFields: map[string]string{
				FieldEmployeeID: "Employee ID is required",
				FieldFullName:   "Full name is required",
				FieldEmail:      "Email is required",
				FieldDepartment: "Department is required",
			},
		},
		{
			name: "treats whitespace as missing",
			mutate: func(in *EmployeeInput) {
				in.FullName = "   "
				in.Department = "\t"
			},
			wantFields: map[string]string{
				FieldFullName:   "Full name is required",
				FieldDepartment: "Department is required",
			},
		},
		{
			name: "rejects employee IDs with spaces",
			mutate: func(in *EmployeeInput) {
				in.EmployeeID = "EMP 001"
			},
			wantFields: map[string]string{FieldEmployeeID: "Employee ID must be alphanumeric with no spaces"},
		},
		{
			name: "rejects employee IDs with punctuation",
			mutate: func(in *EmployeeInput) {
				in.EmployeeID = "EMP-001"
			},
			wantFields: map[string]string{FieldEmployeeID: "Employee ID must be alphanumeric with no spaces"},
		},
		{
			name: "rejects non-ascii employee IDs",
			mutate: func(in *EmployeeInput) {
				in.EmployeeID = "ÉMP1"
			},
			wantFields: map[string]string{FieldEmployeeID: "Employee ID must be alphanumeric with no spaces"},
		},
		{
			name: "rejects email without domain dot",
			mutate: func(in *EmployeeInput) {
				in.Email = "ada@example"
			},
			wantFields: map[string]string{FieldEmail: "Invalid email format"},
		},
		{
			name: "rejects email with inner space",
			mutate: func(in *EmployeeInput) {
				in.Email = "ada lovelace@example.com"
			},
			wantFields: map[string]string{FieldEmail: "Invalid email format"},
		},
		{
			name: "rejects email with two at signs",
			mutate: func(in *EmployeeInput) {
				in.Email = "ada@@example.com"
			},
			wantFields: map[string]string{FieldEmail: "Invalid email format"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			in := validEmployee()
			tc.mutate(&in)

			err := ValidateEmployeeInput(in)
			if len(tc.wantFields) == 0 {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %T (%v)", err, err)
			}
			if len(vErr.FieldErrors) != len(tc.wantFields) {
				t.Fatalf("expected %d field errors, got %v", len(tc.wantFields), vErr.FieldErrors)
			}
			for field, msg := range tc.wantFields {
				if got := vErr.FieldErrors[field]; got != msg {
					t.Fatalf("field %s: expected %q, got %q", field, msg, got)
				}
			}
		})
	}
}

func TestValidateAttendanceInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		in         AttendanceInput
		wantFields []string
	}{
		{name: "present", in: AttendanceInput{EmployeeID: "EMP001", Date: "2024-01-15", Status: "Present"}},
		{name: "absent", in: AttendanceInput{EmployeeID: "EMP001", Date: "2024-01-15", Status: "Absent"}},
		{name: "calendar invalid date passes", in: AttendanceInput{EmployeeID: "EMP001", Date: "2024-02-30", Status: "Present"}},
		{name: "month thirteen passes", in: AttendanceInput{EmployeeID: "EMP001", Date: "2024-13-40", Status: "Absent"}},
		{name: "all missing", in: AttendanceInput{}, wantFields: []string{FieldEmployeeID, FieldDate, FieldStatus}},
		{name: "day first date", in: AttendanceInput{EmployeeID: "EMP001", Date: "15-01-2024", Status: "Present"}, wantFields: []string{FieldDate}},
		{name: "slash date", in: AttendanceInput{EmployeeID: "EMP001", Date: "2024/01/15", Status: "Present"}, wantFields: []string{FieldDate}},
		{name: "date with time", in: AttendanceInput{EmployeeID: "EMP001", Date: "2024-01-15T00:00:00Z", Status: "Present"}, wantFields: []string{FieldDate}},
		{name: "lowercase status", in: AttendanceInput{EmployeeID: "EMP001", Date: "2024-01-15", Status: "present"}, wantFields: []string{FieldStatus}},
		{name: "unknown status", in: AttendanceInput{EmployeeID: "EMP001", Date: "2024-01-15", Status: "Late"}, wantFields: []string{FieldStatus}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAttendanceInput(tc.in)
			if len(tc.wantFields) == 0 {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %T (%v)", err, err)
			}
			got := vErr.Fields()
			if len(got) != len(tc.wantFields) {
				t.Fatalf("expected fields %v, got %v", tc.wantFields, got)
			}
			for i, field := range tc.wantFields {
				if got[i] != field {
					t.Fatalf("expected fields %v in order, got %v", tc.wantFields, got)
				}
			}
		})
	}
}

func TestValidateDate(t *testing.T) {
	t.Parallel()

	if err := ValidateDate("2024-01-15"); err != nil {
		t.Fatalf("expected valid date, got %v", err)
	}
	if err := ValidateDate("2024-1-15"); err == nil {
		t.Fatalf("expected single digit month to fail")
	}
	if err := ValidateDate(""); err == nil || err.Error() != "Date is required" {
		t.Fatalf("expected required message, got %v", err)
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	var nilErr *ValidationError
	if nilErr.Error() != "" {
		t.Fatalf("expected empty string for nil error, got %q", nilErr.Error())
	}

	if got := (&ValidationError{}).Error(); got != "validation failed" {
		t.Fatalf("expected generic message for empty error, got %q", got)
	}

	vErr := &ValidationError{}
	vErr.add(FieldFullName, "Full name is required")
	vErr.add(FieldEmail, "Email is required")
	vErr.add(FieldEmail, "ignored")
	if got := vErr.Error(); got != "Full name is required; Email is required" {
		t.Fatalf("unexpected message %q", got)
	}

	literal := &ValidationError{FieldErrors: map[string]string{"b": "second", "a": "first"}}
	if got := literal.Error(); got != "first; second" {
		t.Fatalf("expected alphabetical order for literal errors, got %q", got)
	}
}

func TestValidationError_Merge(t *testing.T) {
	t.Parallel()

	base := &ValidationError{}
	base.merge(nil)
	if base.HasErrors() {
		t.Fatalf("expected merge with nil to leave error empty")
	}

	base.merge(&ValidationError{FieldErrors: map[string]string{FieldDate: "Date is required"}})
	if got := base.FieldErrors[FieldDate]; got != "Date is required" {
		t.Fatalf("expected merged field, got %q", got)
	}
}
