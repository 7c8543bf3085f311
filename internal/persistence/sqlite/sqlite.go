package sqlite

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/hrms-lite/internal/persistence"
	"github.com/example/hrms-lite/internal/persistence/sqlite/migration"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrationDir is the directory inside the embedded filesystem holding the schema files.
const MigrationDir = "migrations"

var _ persistence.Store = (*Storage)(nil)

// Storage is the SQLite-backed record store.
type Storage struct {
	*EmployeeRepository
	*AttendanceRepository

	pool *ConnectionPool
}

// Option customises a Storage.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock sets the time source used to stamp created_at.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// Open connects to the database described by config. Call Migrate before use
// on a fresh database.
func Open(ctx context.Context, config migration.SQLiteConfig, opts ...Option) (*Storage, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	pool, err := NewConnectionPool(ctx, config)
	if err != nil {
		return nil, err
	}

	return &Storage{
		EmployeeRepository:   NewEmployeeRepository(pool, o.now),
		AttendanceRepository: NewAttendanceRepository(pool, o.now),
		pool:                 pool,
	}, nil
}

func (s *Storage) migrations(logger *slog.Logger) migration.MigrationManager {
	return migration.NewMigrationManager(
		migration.NewFileScanner(migrationFiles),
		migration.NewSQLiteExecutor(s.pool.DB()),
		MigrationDir,
		logger,
	)
}

// Migrate applies the embedded schema migrations.
func (s *Storage) Migrate(ctx context.Context, logger *slog.Logger) error {
	if err := s.migrations(logger).RunMigrations(ctx); err != nil {
		return fmt.Errorf("sqlite: migrate: %w", err)
	}
	return nil
}

// SchemaVersion reports the highest applied migration version. It fails when
// embedded migrations are still pending.
func (s *Storage) SchemaVersion(ctx context.Context) (string, error) {
	status, err := s.migrations(nil).GetMigrationStatus(ctx)
	if err != nil {
		return "", fmt.Errorf("sqlite: schema status: %w", err)
	}
	if status.PendingCount > 0 {
		return status.CurrentVersion, fmt.Errorf("sqlite: %d migrations pending", status.PendingCount)
	}
	return status.CurrentVersion, nil
}

// Ping verifies the database is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Storage) Close() error {
	return s.pool.Close()
}
