package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"yogaday/local-app/internal/log"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDatabase implements the Database interface for SQLite through the cgo driver
type SQLiteDatabase struct {
	BaseDatabase
}

// Open opens a connection to the SQLite database
func (s *SQLiteDatabase) Open(dataSourceName string) error {
	ctx := context.Background()
	s.logger.Info(ctx, "Opening SQLite database", log.Fields{"dbPath": filepath.Base(dataSourceName)})

	if err := ensureDir(dataSourceName); err != nil {
		s.logger.Error(ctx, "Failed to create database directory", log.Fields{"error": err})
		return err
	}

	// Open the database connection with additional parameters
	db, err := sql.Open("sqlite3", dataSourceName+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		s.logger.Error(ctx, "Failed to open SQLite database", log.Fields{"error": err})
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := applyPragmas(ctx, db); err != nil {
		db.Close()
		s.logger.Error(ctx, "Failed to set SQLite pragmas", log.Fields{"error": err})
		return err
	}

	// Verify the connection
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
func (s *SQLiteDatabase) Close() error {
	return s.close("SQLite")
}

// ensureDir creates the directory that will hold the database file.
func ensureDir(dataSourceName string) error {
	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("failed to create database directory '%s': %w", dbDir, err)
	}
	return nil
}

// applyPragmas sets pragmas for better performance and reliability
func applyPragmas(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, "PRAGMA synchronous = NORMAL"); err != nil {
		return fmt.Errorf("failed to set SQLite synchronous pragma: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA cache_size = 5000"); err != nil {
		return fmt.Errorf("failed to set SQLite cache pragma: %w", err)
	}
	return nil
}
