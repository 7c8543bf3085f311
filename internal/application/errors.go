package application

import (
	"errors"

	"github.com/example/hrms-lite/internal/persistence"
)

var (
	// ErrNotFound is returned when the requested employee does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrConflict is returned when an employee ID or email is already taken.
	ErrConflict = errors.New("application: employee id or email already exists")
	// ErrConstraint is returned when the store rejects a value its constraints forbid.
	ErrConstraint = errors.New("application: constraint violation")
	// ErrMalformed is returned when the store rejects a literal it cannot parse.
	ErrMalformed = errors.New("application: malformed value")
)

// mapRepoError translates persistence sentinels into service errors. A
// foreign key violation means the referenced employee vanished, so it is
// reported as not found.
func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, persistence.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrForeignKeyViolation):
		return ErrNotFound
	case errors.Is(err, persistence.ErrDuplicate):
		return ErrConflict
	case errors.Is(err, persistence.ErrConstraintViolation):
		return ErrConstraint
	case errors.Is(err, persistence.ErrMalformed):
		return ErrMalformed
	}
	return err
}
