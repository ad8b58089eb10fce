package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"yogaday/local-app/internal/log"
	"yogaday/local-app/internal/model"
)

// NewStorage opens the key-value backend selected by the configuration
func NewStorage(cfg *model.Config, logger *log.Logger) (KVStore, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if logger == nil {
		return nil, errors.New("logger is nil")
	}

	driver, err := validateDBDriver(cfg.DatabaseType)
	if err != nil {
		return nil, err
	}
	if driver == Memory {
		logger.Info(context.Background(), "Using in-memory storage", nil)
		return NewMemoryKVStore(), nil
	}

	db, err := NewDatabase(driver, logger)
	if err != nil {
		return nil, err
	}

	dsn := filepath.Join(cfg.DatabaseDir, cfg.DatabaseFile)
	if driver == PostgreSQL {
		if cfg.DatabaseDSN == "" {
			return nil, errors.New("database_dsn is required for postgres")
		}
		dsn = cfg.DatabaseDSN
	}

	if err := db.Open(dsn); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.InitSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	return NewSQLKVStore(db, logger)
}
