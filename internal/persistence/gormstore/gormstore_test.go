package gormstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/example/hrms-lite/internal/logging"
	"github.com/example/hrms-lite/internal/persistence"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{name: "postgres", config: Config{Driver: "postgres", DSN: "host=localhost"}},
		{name: "mysql upper case", config: Config{Driver: "MySQL", DSN: "user@tcp(localhost)/hrms"}},
		{name: "unknown driver", config: Config{Driver: "oracle", DSN: "x"}, wantErr: "unsupported database driver"},
		{name: "empty dsn", config: Config{Driver: "postgres", DSN: "  "}, wantErr: "DSN cannot be empty"},
		{name: "negative pool", config: Config{Driver: "postgres", DSN: "x", MaxOpenConns: -1}, wantErr: "pool sizes"},
		{name: "negative lifetime", config: Config{Driver: "mysql", DSN: "x", ConnMaxLifetime: -time.Second}, wantErr: "ConnMaxLifetime"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.config.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestConfig_Dialector(t *testing.T) {
	if got := (Config{Driver: "mysql", DSN: "x"}).dialector().Name(); got != "mysql" {
		t.Fatalf("expected mysql dialector, got %s", got)
	}
	if got := (Config{Driver: "postgres", DSN: "x"}).dialector().Name(); got != "postgres" {
		t.Fatalf("expected postgres dialector, got %s", got)
	}
}

func TestOpen_RejectsInvalidConfig(t *testing.T) {
	if _, err := Open(context.Background(), Config{Driver: "sqlserver", DSN: "x"}); err == nil {
		t.Fatal("expected invalid config to be rejected")
	}
}

func TestSlogLogger(t *testing.T) {
	t.Run("reports failed statements on the request logger", func(t *testing.T) {
		var base, scoped bytes.Buffer
		l := newSlogLogger(slog.New(slog.NewJSONHandler(&base, nil)))
		ctx := logging.ContextWithLogger(context.Background(), slog.New(slog.NewJSONHandler(&scoped, nil)))

		l.Trace(ctx, time.Now(), func() (string, int64) { return "INSERT INTO employees", 0 }, errors.New("boom"))

		if base.Len() != 0 {
			t.Fatalf("expected base logger to stay silent, got %s", base.String())
		}
		out := scoped.String()
		for _, want := range []string{`"msg":"query failed"`, `"component":"gormstore"`, `"sql":"INSERT INTO employees"`, `"error":"boom"`} {
			if !strings.Contains(out, want) {
				t.Fatalf("expected %s in %s", want, out)
			}
		}
	})

	t.Run("ignores missing rows", func(t *testing.T) {
		var buf bytes.Buffer
		l := newSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

		l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT", 0 }, gorm.ErrRecordNotFound)

		if buf.Len() != 0 {
			t.Fatalf("expected no output, got %s", buf.String())
		}
	})

	t.Run("reports slow statements", func(t *testing.T) {
		var buf bytes.Buffer
		l := newSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

		l.Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) { return "SELECT", 1 }, nil)

		if !strings.Contains(buf.String(), `"msg":"slow query"`) {
			t.Fatalf("expected slow query warning, got %s", buf.String())
		}
	})

	t.Run("silent mode", func(t *testing.T) {
		var buf bytes.Buffer
		l := newSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil))).LogMode(gormlogger.Silent)

		l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT", 0 }, errors.New("boom"))
		l.Error(context.Background(), "failed %d", 1)

		if buf.Len() != 0 {
			t.Fatalf("expected no output, got %s", buf.String())
		}
	})
}

func TestSchemaSession(t *testing.T) {
	t.Run("mysql tables use a binary collation", func(t *testing.T) {
		db, err := gorm.Open(mysql.New(mysql.Config{
			DSN:                       "hrms@tcp(127.0.0.1:1)/hrms",
			SkipInitializeWithVersion: true,
		}), &gorm.Config{DisableAutomaticPing: true})
		if err != nil {
			t.Fatalf("open: %v", err)
		}

		options, ok := schemaSession(db).Get("gorm:table_options")
		if !ok || !strings.Contains(fmt.Sprint(options), "COLLATE=utf8mb4_bin") {
			t.Fatalf("expected binary collation table options, got %v", options)
		}
		if _, ok := db.Get("gorm:table_options"); ok {
			t.Fatal("expected the base session to stay untouched")
		}
	})

	t.Run("other dialects keep their defaults", func(t *testing.T) {
		store := openSQLiteStore(t)

		if options, ok := schemaSession(store.db).Get("gorm:table_options"); ok {
			t.Fatalf("expected no table options, got %v", options)
		}
	})
}

// The contract suite always runs on an embedded SQLite database. Live servers
// named by HRMS_TEST_POSTGRES_DSN or HRMS_TEST_MYSQL_DSN are covered too; their
// tables are dropped and recreated.
func TestStorage_SQLiteContract(t *testing.T) {
	runStoreSuite(t, openSQLiteStore(t))
}

func TestStorage_Integration(t *testing.T) {
	targets := map[string]string{
		DriverPostgres: os.Getenv("HRMS_TEST_POSTGRES_DSN"),
		DriverMySQL:    os.Getenv("HRMS_TEST_MYSQL_DSN"),
	}

	for driver, dsn := range targets {
		driver, dsn := driver, dsn
		t.Run(driver, func(t *testing.T) {
			if dsn == "" {
				t.Skipf("%s DSN not set", driver)
			}
			config := Config{Driver: driver, DSN: dsn}
			if err := config.Validate(); err != nil {
				t.Fatalf("invalid config: %v", err)
			}
			runStoreSuite(t, newTestStore(t, config.dialector(), config))
		})
	}
}

func openSQLiteStore(t *testing.T) *Storage {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "hrms.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	return newTestStore(t, gormsqlite.Open(dsn), Config{MaxOpenConns: 1})
}

func newTestStore(t *testing.T, dialector gorm.Dialector, config Config) *Storage {
	t.Helper()

	ctx := context.Background()
	current := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	clock := func() time.Time {
		current = current.Add(time.Second)
		return current
	}

	store, err := open(ctx, dialector, config, WithClock(clock))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.db.Migrator().DropTable(&attendanceRow{}, &employeeRow{}); err != nil {
		t.Fatalf("drop tables: %v", err)
	}
	if err := store.Migrate(ctx, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func runStoreSuite(t *testing.T, store *Storage) {
	ctx := context.Background()

	create := func(id, email string) persistence.Employee {
		t.Helper()
		employee, err := store.CreateEmployee(ctx, persistence.Employee{
			EmployeeID: id, FullName: "Name " + id, Email: email, Department: "Engineering",
		})
		if err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
		return employee
	}

	create("EMP001", "one@example.com")
	create("EMP002", "two@example.com")

	if _, err := store.CreateEmployee(ctx, persistence.Employee{EmployeeID: "EMP001", FullName: "x", Email: "x@example.com", Department: "x"}); !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected duplicate id, got %v", err)
	}
	if _, err := store.CreateEmployee(ctx, persistence.Employee{EmployeeID: "EMP003", FullName: "x", Email: "one@example.com", Department: "x"}); !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected duplicate email, got %v", err)
	}

	if count, err := store.CountEmployees(ctx); err != nil || count != 2 {
		t.Fatalf("expected rejected inserts to leave 2 employees, got %d (%v)", count, err)
	}

	// Keys differing only in case are distinct.
	create("emp001", "ONE@example.com")
	lower, err := store.GetEmployee(ctx, "emp001")
	if err != nil || lower.EmployeeID != "emp001" || lower.Email != "ONE@example.com" {
		t.Fatalf("expected exact-match lookup of emp001, got %+v (%v)", lower, err)
	}
	upper, err := store.GetEmployee(ctx, "EMP001")
	if err != nil || upper.Email != "one@example.com" {
		t.Fatalf("expected exact-match lookup of EMP001, got %+v (%v)", upper, err)
	}

	employees, err := store.ListEmployees(ctx)
	if err != nil || len(employees) != 3 || employees[0].EmployeeID != "emp001" || employees[1].EmployeeID != "EMP002" {
		t.Fatalf("expected newest first, got %+v (%v)", employees, err)
	}

	first, err := store.MarkAttendance(ctx, persistence.AttendanceRecord{EmployeeID: "EMP001", Date: "2024-01-15", Status: "Present"})
	if err != nil {
		t.Fatalf("mark: %v", err)
	}
	second, err := store.MarkAttendance(ctx, persistence.AttendanceRecord{EmployeeID: "EMP001", Date: "2024-01-15", Status: "Absent"})
	if err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if second.ID != first.ID || second.Status != "Absent" || !second.CreatedAt.After(first.CreatedAt) {
		t.Fatalf("expected overwrite of %+v, got %+v", first, second)
	}

	if _, err := store.MarkAttendance(ctx, persistence.AttendanceRecord{EmployeeID: "EMP404", Date: "2024-01-15", Status: "Present"}); !errors.Is(err, persistence.ErrForeignKeyViolation) {
		t.Fatalf("expected foreign key violation, got %v", err)
	}
	if _, err := store.MarkAttendance(ctx, persistence.AttendanceRecord{EmployeeID: "EMP002", Date: "2024-01-15", Status: "Late"}); !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("expected check violation, got %v", err)
	}

	byDate, err := store.ListAttendanceByDate(ctx, "2024-01-15")
	if err != nil || len(byDate) != 1 || byDate[0].Email != "one@example.com" {
		t.Fatalf("unexpected by-date listing %+v (%v)", byDate, err)
	}
	byEmployee, err := store.ListAttendanceByEmployee(ctx, "EMP001")
	if err != nil || len(byEmployee) != 1 || byEmployee[0].Email != "" {
		t.Fatalf("unexpected by-employee listing %+v (%v)", byEmployee, err)
	}

	counts, err := store.CountAttendanceByStatus(ctx, "2024-01-15")
	if err != nil || len(counts) != 1 || counts[0] != (persistence.StatusCount{Status: "Absent", Count: 1}) {
		t.Fatalf("unexpected counts %+v (%v)", counts, err)
	}

	if _, err := store.DeleteEmployee(ctx, "EMP001"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.DeleteEmployee(ctx, "EMP001"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
	if remaining, _ := store.ListAttendanceByDate(ctx, "2024-01-15"); len(remaining) != 0 {
		t.Fatalf("expected attendance to be removed, got %+v", remaining)
	}
	if count, err := store.CountEmployees(ctx); err != nil || count != 2 {
		t.Fatalf("expected two employees left, got %d (%v)", count, err)
	}
	if _, err := store.GetEmployee(ctx, "emp001"); err != nil {
		t.Fatalf("expected emp001 to survive deleting EMP001, got %v", err)
	}
}
