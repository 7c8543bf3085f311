// Package migration applies versioned SQL files to a SQLite database.
//
// Files are read from an fs.FS (usually an embed.FS compiled into the binary)
// and must be named {version}_{description}.sql, e.g. "001_create_employees.sql".
// Each file runs inside its own transaction and is recorded in the
// schema_migrations table together with its checksum, so a file that changes
// after it was applied is reported instead of silently skipped.
//
// Example usage:
//
//	scanner := migration.NewFileScanner(files)
//	executor := migration.NewSQLiteExecutor(db)
//	manager := migration.NewMigrationManager(scanner, executor, "migrations", logger)
//	if err := manager.RunMigrations(ctx); err != nil {
//		return err
//	}
package migration
