// Package gormstore implements the record store on gorm for server databases
// (PostgreSQL or MySQL).
package gormstore

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/example/hrms-lite/internal/persistence"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// mysqlTableOptions gives MySQL tables a binary collation so employee ids and
// emails compare byte for byte.
const mysqlTableOptions = "ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin"

var _ persistence.Store = (*Storage)(nil)

// Config selects the database server to connect to.
type Config struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Validate reports configuration errors before a connection is attempted.
func (c Config) Validate() error {
	switch strings.ToLower(c.Driver) {
	case DriverPostgres, DriverMySQL:
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Driver)
	}
	if strings.TrimSpace(c.DSN) == "" {
		return errors.New("database DSN cannot be empty")
	}
	if c.MaxOpenConns < 0 || c.MaxIdleConns < 0 {
		return errors.New("connection pool sizes cannot be negative")
	}
	if c.ConnMaxLifetime < 0 {
		return errors.New("ConnMaxLifetime cannot be negative")
	}
	return nil
}

func (c Config) dialector() gorm.Dialector {
	if strings.ToLower(c.Driver) == DriverMySQL {
		return mysql.Open(c.DSN)
	}
	return postgres.Open(c.DSN)
}

// Storage is the gorm-backed record store.
type Storage struct {
	db  *gorm.DB
	now func() time.Time
}

// Option customises a Storage.
type Option func(*options)

type options struct {
	now    func() time.Time
	logger *slog.Logger
}

// WithClock sets the time source used to stamp created_at.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithLogger sets the logger receiving failed and slow statements.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Open connects to the configured server. Call Migrate before use on a fresh
// database.
func Open(ctx context.Context, config Config, opts ...Option) (*Storage, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "gormstore: invalid config")
	}
	return open(ctx, config.dialector(), config, opts...)
}

// open connects through dialector and applies the pool settings of config.
func open(ctx context.Context, dialector gorm.Dialector, config Config, opts ...Option) (*Storage, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newSlogLogger(o.logger),
		NowFunc:        func() time.Time { return o.now().UTC() },
	})
	if err != nil {
		return nil, errors.Wrapf(err, "gormstore: open %s", dialector.Name())
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "gormstore: access connection pool")
	}
	if config.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	}
	if config.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	}
	if config.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "gormstore: ping")
	}

	return &Storage{db: db, now: o.now}, nil
}

// Migrate creates or updates the employees and attendance tables together
// with their unique, check and cascading foreign key constraints.
func (s *Storage) Migrate(ctx context.Context, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "migration", "store", s.db.Dialector.Name())

	logger.InfoContext(ctx, "auto-migrating schema")
	if err := schemaSession(s.db.WithContext(ctx)).AutoMigrate(&employeeRow{}, &attendanceRow{}); err != nil {
		logger.ErrorContext(ctx, "auto-migration failed", "error", err)
		return errors.Wrap(err, "gormstore: migrate")
	}
	logger.InfoContext(ctx, "schema is up to date")
	return nil
}

// schemaSession carries the dialect specific table options used when tables
// are created. Existing tables keep their collation.
func schemaSession(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == DriverMySQL {
		return db.Set("gorm:table_options", mysqlTableOptions)
	}
	return db
}

// Ping verifies the database is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "gormstore: access connection pool")
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "gormstore: access connection pool")
	}
	return sqlDB.Close()
}
