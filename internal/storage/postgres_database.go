package storage

import (
	"context"
	"database/sql"
	"fmt"

	"yogaday/local-app/internal/log"

	_ "github.com/lib/pq"
)

// PostgresDatabase implements the Database interface for PostgreSQL
type PostgresDatabase struct {
	BaseDatabase
}

// Open opens a connection to the PostgreSQL server named by the DSN
func (p *PostgresDatabase) Open(dataSourceName string) error {
	ctx := context.Background()
	p.logger.Info(ctx, "Opening PostgreSQL database", nil)

	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		p.logger.Error(ctx, "Failed to open PostgreSQL database", log.Fields{"error": err})
		return fmt.Errorf("failed to open PostgreSQL database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		p.logger.Error(ctx, "Failed to verify database connection", log.Fields{"error": err})
		return fmt.Errorf("failed to verify database connection: %w", err)
	}

	p.db = db
	p.logger.Info(ctx, "PostgreSQL database opened successfully", nil)
	return nil
}

// Close closes the connection to the PostgreSQL server
func (p *PostgresDatabase) Close() error {
	return p.close("PostgreSQL")
}
