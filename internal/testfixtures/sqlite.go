package testfixtures

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/hrms-lite/internal/persistence/sqlite"
	"github.com/example/hrms-lite/internal/persistence/sqlite/migration"
)

// SQLiteHarness is a migrated SQLite store in a temporary directory. Its clock
// steps one second per write so created_at orderings are deterministic.
type SQLiteHarness struct {
	Storage *sqlite.Storage
	Clock   *Clock
	Path    string

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness opens and migrates a fresh database. Close is registered
// with tb.Cleanup.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "hrms.db")
	clock := NewSteppingClock(ReferenceTime(), time.Second)
	ctx := context.Background()

	storage, err := sqlite.Open(ctx, migration.TempFileTestSQLiteConfig(path), sqlite.WithClock(clock.NowFunc()))
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	if err := storage.Migrate(ctx, slog.New(slog.NewTextHandler(io.Discard, nil))); err != nil {
		_ = storage.Close()
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	harness := &SQLiteHarness{
		Storage: storage,
		Clock:   clock,
		Path:    path,
		cleanup: func() {
			_ = storage.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}

// SeedEmployees stores each fixture and fails the test on error.
func (h *SQLiteHarness) SeedEmployees(tb testing.TB, fixtures ...EmployeeFixture) {
	tb.Helper()
	for _, fixture := range fixtures {
		if _, err := h.Storage.CreateEmployee(context.Background(), fixture.Persistence()); err != nil {
			tb.Fatalf("failed to seed employee %s: %v", fixture.EmployeeID, err)
		}
	}
}

// SeedAttendance stores each fixture and fails the test on error.
func (h *SQLiteHarness) SeedAttendance(tb testing.TB, fixtures ...AttendanceFixture) {
	tb.Helper()
	for _, fixture := range fixtures {
		if _, err := h.Storage.MarkAttendance(context.Background(), fixture.Persistence()); err != nil {
			tb.Fatalf("failed to seed attendance %s/%s: %v", fixture.EmployeeID, fixture.Date, err)
		}
	}
}
