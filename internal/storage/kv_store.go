package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"yogaday/local-app/internal/log"
)

// KVStore is a string-keyed store of opaque values
type KVStore interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
	Close() error
}

// SQLKVStore keeps values in the kv_store table of a SQL database
type SQLKVStore struct {
	db     Database
	logger *log.Logger
}

// NewSQLKVStore creates a KVStore over an opened database with an initialized schema
func NewSQLKVStore(db Database, logger *log.Logger) (*SQLKVStore, error) {
	if db == nil {
		return nil, errors.New("database is nil")
	}
	if logger == nil {
		return nil, errors.New("logger is nil")
	}
	return &SQLKVStore{db: db, logger: logger}, nil
}

// Load returns the value stored under key, and false when there is none
func (s *SQLKVStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRow(ctx, "SELECT value FROM kv_store WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		s.logger.Error(ctx, "Failed to load key", log.Fields{"key": key, "error": err})
		return nil, false, fmt.Errorf("failed to load key %s: %w", key, err)
	}
	return []byte(value), true, nil
}

// Save replaces the value stored under key
func (s *SQLKVStore) Save(ctx context.Context, key string, value []byte) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO kv_store (key, value, updated) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated = excluded.updated
	`, key, string(value), time.Now().UTC())
	if err != nil {
		s.logger.Error(ctx, "Failed to save key", log.Fields{"key": key, "error": err})
		return fmt.Errorf("failed to save key %s: %w", key, err)
	}
	s.logger.Debug(ctx, "Key saved", log.Fields{"key": key, "bytes": len(value)})
	return nil
}

// Close closes the underlying database
func (s *SQLKVStore) Close() error {
	return s.db.Close()
}

// MemoryKVStore is a KVStore that lives only as long as the process
type MemoryKVStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryKVStore creates an empty in-memory store
func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{values: make(map[string][]byte)}
}

func (m *MemoryKVStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryKVStore) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKVStore) Close() error {
	return nil
}
