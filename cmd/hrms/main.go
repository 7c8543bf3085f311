package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/hrms-lite/internal/application"
	"github.com/example/hrms-lite/internal/config"
	httptransport "github.com/example/hrms-lite/internal/http"
	"github.com/example/hrms-lite/internal/logging"
	"github.com/example/hrms-lite/internal/persistence"
	"github.com/example/hrms-lite/internal/persistence/gormstore"
	"github.com/example/hrms-lite/internal/persistence/sqlite"
	"github.com/example/hrms-lite/internal/persistence/sqlite/migration"
)

func main() {
	bootstrap := logging.New(os.Stdout, "info", "json")

	cfg, err := config.Load()
	if err != nil {
		bootstrap.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format).With("service", "hrms-lite")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// migratingStore is a record store that can bring its own schema up to date.
type migratingStore interface {
	persistence.Store
	Migrate(ctx context.Context, logger *slog.Logger) error
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	store, err := openStore(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := store.Migrate(ctx, logger); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           newHandler(cfg, store, time.Now, logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("HRMS Lite API listening",
		"addr", server.Addr,
		"environment", cfg.Environment,
		"storage_driver", cfg.Storage.Driver,
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-shutdownDone
	return nil
}

func openStore(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (migratingStore, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		storage, err := sqlite.Open(ctx, sqliteConfig(cfg))
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		return storage, nil
	case config.DriverPostgres, config.DriverMySQL:
		storage, err := gormstore.Open(ctx, gormstore.Config{
			Driver:          cfg.Driver,
			DSN:             cfg.DSN,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxOpenConns,
			ConnMaxLifetime: 30 * time.Minute,
		}, gormstore.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("open %s storage: %w", cfg.Driver, err)
		}
		return storage, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

func sqliteConfig(cfg config.StorageConfig) migration.SQLiteConfig {
	if cfg.SQLitePath == migration.MemoryPath {
		return migration.InMemorySQLiteConfig()
	}
	sc := migration.DefaultSQLiteConfig(cfg.SQLitePath)
	if cfg.MaxOpenConns > 0 {
		sc.MaxOpenConns = cfg.MaxOpenConns
		sc.MaxIdleConns = min(sc.MaxIdleConns, cfg.MaxOpenConns)
	}
	return sc
}

// newHandler wires services, handlers and middleware over store.
func newHandler(cfg config.Config, store persistence.Store, now func() time.Time, logger *slog.Logger) http.Handler {
	repos := newStoreAdapter(store)

	employeeService := application.NewEmployeeService(repos, now, logger)
	attendanceService := application.NewAttendanceService(repos, repos, now, logger)

	detail := httptransport.WithErrorDetail(cfg.IsDevelopment())

	return httptransport.NewRouter(httptransport.RouterConfig{
		Employees:  httptransport.NewEmployeeHandler(employeeService, logger, detail),
		Attendance: httptransport.NewAttendanceHandler(attendanceService, now, logger, detail),
		Health:     httptransport.NewHealthHandler(store, now, logger),
		Logger:     logger,
		Middleware: middleware(cfg, logger),
	})
}

// middleware lists the router middleware, outermost first. Recover runs inside
// RequestLogger so a recovered panic is logged with its request id and a 500.
func middleware(cfg config.Config, logger *slog.Logger) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		httptransport.RequestLogger(logger),
		httptransport.Recover(logger),
		httptransport.SecurityHeaders(),
		httptransport.CORS(cfg.CORSOrigins),
	}
}
