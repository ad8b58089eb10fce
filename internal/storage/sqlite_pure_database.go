package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"yogaday/local-app/internal/log"

	_ "modernc.org/sqlite"
)

// SQLitePureDatabase implements the Database interface for SQLite through the
// pure Go driver, for builds without cgo.
type SQLitePureDatabase struct {
	BaseDatabase
}

// Open opens a connection to the SQLite database
func (s *SQLitePureDatabase) Open(dataSourceName string) error {
	ctx := context.Background()
	s.logger.Info(ctx, "Opening pure Go SQLite database", log.Fields{"dbPath": filepath.Base(dataSourceName)})

	if err := ensureDir(dataSourceName); err != nil {
		s.logger.Error(ctx, "Failed to create database directory", log.Fields{"error": err})
		return err
	}

	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		s.logger.Error(ctx, "Failed to open SQLite database", log.Fields{"error": err})
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// A single connection keeps pragmas and writes on one handle
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return fmt.Errorf("failed to set SQLite journal pragma: %w", err)
	}
	if err := applyPragmas(ctx, db); err != nil {
		db.Close()
		s.logger.Error(ctx, "Failed to set SQLite pragmas", log.Fields{"error": err})
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		s.logger.Error(ctx, "Failed to verify database connection", log.Fields{"error": err})
		return fmt.Errorf("failed to verify database connection: %w", err)
	}

	s.db = db
	s.logger.Info(ctx, "SQLite database opened successfully", nil)
	return nil
}

// Close closes the connection to the SQLite database
func (s *SQLitePureDatabase) Close() error {
	return s.close("SQLite")
}
