package application

import (
	"errors"
	"fmt"
	"testing"

	"github.com/example/hrms-lite/internal/persistence"
	"github.com/example/hrms-lite/internal/validation"
)

func TestMapRepoError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "nil", in: nil, want: nil},
		{name: "not found", in: persistence.ErrNotFound, want: ErrNotFound},
		{name: "wrapped not found", in: fmt.Errorf("lookup: %w", persistence.ErrNotFound), want: ErrNotFound},
		{name: "foreign key", in: persistence.ErrForeignKeyViolation, want: ErrNotFound},
		{name: "duplicate", in: fmt.Errorf("%w: UNIQUE constraint failed", persistence.ErrDuplicate), want: ErrConflict},
		{name: "constraint", in: persistence.ErrConstraintViolation, want: ErrConstraint},
		{name: "malformed", in: persistence.ErrMalformed, want: ErrMalformed},
		{name: "already mapped", in: ErrNotFound, want: ErrNotFound},
		{name: "unknown", in: boom, want: boom},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := mapRepoError(tc.in)
			if tc.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if !errors.Is(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestErrorKind(t *testing.T) {
	t.Parallel()

	tests := map[string]error{
		"":           nil,
		"not_found":  ErrNotFound,
		"conflict":   fmt.Errorf("create: %w", ErrConflict),
		"constraint": ErrConstraint,
		"malformed":  ErrMalformed,
		"validation": validation.ValidateDate("nope"),
		"unexpected": errors.New("boom"),
	}

	for want, err := range tests {
		if got := ErrorKind(err); got != want {
			t.Errorf("ErrorKind(%v) = %q, want %q", err, got, want)
		}
	}
}
