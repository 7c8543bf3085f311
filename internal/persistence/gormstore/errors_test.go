package gormstore

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/example/hrms-lite/internal/persistence"
)

func TestTranslateError(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")
	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "record not found", in: gorm.ErrRecordNotFound, want: persistence.ErrNotFound},
		{name: "duplicated key", in: gorm.ErrDuplicatedKey, want: persistence.ErrDuplicate},
		{name: "foreign key", in: gorm.ErrForeignKeyViolated, want: persistence.ErrForeignKeyViolation},
		{name: "check constraint", in: gorm.ErrCheckConstraintViolated, want: persistence.ErrConstraintViolation},
		{name: "pg unique", in: &pgconn.PgError{Code: "23505"}, want: persistence.ErrDuplicate},
		{name: "pg foreign key", in: &pgconn.PgError{Code: "23503"}, want: persistence.ErrForeignKeyViolation},
		{name: "pg not null", in: &pgconn.PgError{Code: "23502"}, want: persistence.ErrConstraintViolation},
		{name: "pg check", in: fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23514"}), want: persistence.ErrConstraintViolation},
		{name: "pg invalid datetime", in: &pgconn.PgError{Code: "22008"}, want: persistence.ErrMalformed},
		{name: "pg value too long", in: &pgconn.PgError{Code: "22001"}, want: persistence.ErrMalformed},
		{name: "mysql duplicate", in: &mysql.MySQLError{Number: 1062}, want: persistence.ErrDuplicate},
		{name: "mysql foreign key", in: &mysql.MySQLError{Number: 1452}, want: persistence.ErrForeignKeyViolation},
		{name: "mysql check", in: &mysql.MySQLError{Number: 3819}, want: persistence.ErrConstraintViolation},
		{name: "mysql too long", in: &mysql.MySQLError{Number: 1406}, want: persistence.ErrMalformed},
		{name: "sqlite unique", in: errors.New("constraint failed: UNIQUE constraint failed: employees.email (2067)"), want: persistence.ErrDuplicate},
		{name: "sqlite primary key", in: errors.New("constraint failed: UNIQUE constraint failed: employees.employee_id (1555)"), want: persistence.ErrDuplicate},
		{name: "sqlite foreign key", in: errors.New("constraint failed: FOREIGN KEY constraint failed (787)"), want: persistence.ErrForeignKeyViolation},
		{name: "sqlite check", in: errors.New("constraint failed: CHECK constraint failed: chk_attendance_status (275)"), want: persistence.ErrConstraintViolation},
		{name: "sqlite not null", in: errors.New("NOT NULL constraint failed: employees.email"), want: persistence.ErrConstraintViolation},
		{name: "unknown", in: boom, want: boom},
		{name: "unknown pg code", in: &pgconn.PgError{Code: "40001"}, want: nil},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := translateError(tc.in, "op")
			if got == nil {
				t.Fatalf("expected an error for %v", tc.in)
			}
			if tc.want != nil && !errors.Is(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			if !errors.Is(got, tc.in) && tc.want == nil {
				t.Fatalf("expected original error to stay reachable, got %v", got)
			}
		})
	}
}

func TestTranslateError_Nil(t *testing.T) {
	if err := translateError(nil, "op"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestTranslateError_KeepsOperation(t *testing.T) {
	err := translateError(gorm.ErrDuplicatedKey, "create employee")
	if got := err.Error(); got != "create employee: duplicated key not allowed: persistence: duplicate record" {
		t.Fatalf("unexpected message %q", got)
	}
}
