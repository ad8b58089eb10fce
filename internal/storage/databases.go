// Package storage provides functionality for persisting and retrieving Yoga Day data.
// This file handles the general SQL database interfaces and schema.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"yogaday/local-app/internal/log"
)

// DBDriver represents the type of database driver
type DBDriver string

const (
	SQLite     DBDriver = "sqlite"
	SQLitePure DBDriver = "sqlite-pure"
	PostgreSQL DBDriver = "postgres"
	Memory     DBDriver = "memory"
)

// Database interface defines common database operations
type Database interface {
	Open(dataSourceName string) error
	Close() error
	Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row
	InitSchema(ctx context.Context) error
}

// NewDatabase creates a new Database instance based on the specified driver
func NewDatabase(driver DBDriver, logger *log.Logger) (Database, error) {
	switch driver {
	case SQLite:
		return &SQLiteDatabase{BaseDatabase: BaseDatabase{logger: logger}}, nil
	case SQLitePure:
		return &SQLitePureDatabase{BaseDatabase: BaseDatabase{logger: logger}}, nil
	case PostgreSQL:
		return &PostgresDatabase{BaseDatabase: BaseDatabase{logger: logger, numbered: true}}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// BaseDatabase provides a base implementation of some Database methods
type BaseDatabase struct {
	db       *sql.DB
	logger   *log.Logger
	numbered bool // driver expects $1 placeholders instead of ?
}

// Exec executes a query without returning any rows
func (b *BaseDatabase) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	b.logger.Debug(ctx, "Executing query", log.Fields{"query": query})
	return b.db.ExecContext(ctx, b.rebind(query), args...)
}

// QueryRow executes a query that is expected to return at most one row
func (b *BaseDatabase) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	b.logger.Debug(ctx, "Querying", log.Fields{"query": query})
	return b.db.QueryRowContext(ctx, b.rebind(query), args...)
}

// InitSchema initializes the database schema
func (b *BaseDatabase) InitSchema(ctx context.Context) error {
	b.logger.Info(ctx, "Initializing database schema", nil)

	_, err := b.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS kv_store (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		b.logger.Error(ctx, "Failed to create tables", log.Fields{"error": err})
		return fmt.Errorf("failed to create tables: %w", err)
	}
	b.logger.Info(ctx, "Database schema initialized successfully", nil)
	return nil
}

// close closes the underlying connection pool, if any.
func (b *BaseDatabase) close(name string) error {
	ctx := context.Background()
	b.logger.Info(ctx, "Closing "+name+" database", nil)
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			b.logger.Error(ctx, "Failed to close "+name+" database", log.Fields{"error": err})
			return fmt.Errorf("failed to close %s database: %w", name, err)
		}
	}
	b.logger.Info(ctx, name+" database closed successfully", nil)
	return nil
}

// rebind rewrites ? placeholders into $n for drivers that need numbered ones.
func (b *BaseDatabase) rebind(query string) string {
	if !b.numbered {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// validateDBDriver checks if the provided driver is supported
func validateDBDriver(driver string) (DBDriver, error) {
	switch DBDriver(driver) {
	case SQLite:
		return SQLite, nil
	case SQLitePure:
		return SQLitePure, nil
	case PostgreSQL:
		return PostgreSQL, nil
	case Memory:
		return Memory, nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", driver)
	}
}
