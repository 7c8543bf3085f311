package gormstore

import (
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/example/hrms-lite/internal/persistence"
)

// MySQL server error numbers.
const (
	mysqlDuplicateEntry   = 1062
	mysqlColumnCannotNull = 1048
	mysqlRowIsReferenced  = 1451
	mysqlNoReferencedRow  = 1452
	mysqlDataTooLong      = 1406
	mysqlTruncatedValue   = 1292
	mysqlDataTruncated    = 1265
	mysqlIncorrectValue   = 1366
	mysqlCheckViolated    = 3819
)

// translateError maps gorm and driver errors onto the persistence sentinels.
// Anything unrecognised is wrapped with op and returned as is.
func translateError(err error, op string) error {
	if err == nil {
		return nil
	}

	if sentinel := classify(err); sentinel != nil {
		return errors.Wrapf(sentinel, "%s: %v", op, err)
	}
	return errors.Wrap(err, op)
}

func classify(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return persistence.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return persistence.ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return persistence.ErrForeignKeyViolation
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return persistence.ErrConstraintViolation
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			return persistence.ErrDuplicate
		case pgErr.Code == "23503":
			return persistence.ErrForeignKeyViolation
		case pgErr.Code == "23502", pgErr.Code == "23514":
			return persistence.ErrConstraintViolation
		case strings.HasPrefix(pgErr.Code, "22"):
			return persistence.ErrMalformed
		}
		return nil
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDuplicateEntry:
			return persistence.ErrDuplicate
		case mysqlRowIsReferenced, mysqlNoReferencedRow:
			return persistence.ErrForeignKeyViolation
		case mysqlColumnCannotNull, mysqlCheckViolated:
			return persistence.ErrConstraintViolation
		case mysqlDataTooLong, mysqlTruncatedValue, mysqlDataTruncated, mysqlIncorrectValue:
			return persistence.ErrMalformed
		}
	}

	return classifyMessage(err.Error())
}

// classifyMessage recognises SQLite constraint failures, which carry no typed
// error outside the driver.
func classifyMessage(msg string) error {
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"), strings.Contains(msg, "PRIMARY KEY constraint failed"):
		return persistence.ErrDuplicate
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return persistence.ErrForeignKeyViolation
	case strings.Contains(msg, "CHECK constraint failed"), strings.Contains(msg, "NOT NULL constraint failed"):
		return persistence.ErrConstraintViolation
	}
	return nil
}
