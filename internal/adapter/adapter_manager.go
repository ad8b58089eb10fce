// Package adapter connects client front ends (the interactive shell, the HTTP
// server) to the session layer.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"yogaday/local-app/internal/log"
	"yogaday/local-app/internal/model"
	"yogaday/local-app/internal/session"
)

// AdapterInstance represents an instance of an adapter
type AdapterInstance interface {
	// AdapterStart starts the adapter instance
	AdapterStart() error

	// AdapterStop terminates the adapter instance
	AdapterStop() error

	// GetType returns the type of the adapter
	GetType() string
}

// AdapterManager manages all adapter instances
type AdapterManager struct {
	instances      sync.Map // map[string]AdapterInstance, keyed by type
	sessionManager *session.SessionManager
	logger         *log.Logger
}

// NewAdapterManager creates a new AdapterManager
func NewAdapterManager(sm *session.SessionManager, logger *log.Logger) (*AdapterManager, error) {
	if sm == nil {
		return nil, errors.New("session manager is nil")
	}
	if logger == nil {
		return nil, errors.New("logger is nil")
	}
	return &AdapterManager{
		sessionManager: sm,
		logger:         logger,
	}, nil
}

// AdapterAdd registers an adapter instance. One instance per type is allowed.
func (am *AdapterManager) AdapterAdd(instance AdapterInstance) error {
	if _, loaded := am.instances.LoadOrStore(instance.GetType(), instance); loaded {
		return fmt.Errorf("adapter %s already registered", instance.GetType())
	}
	am.logger.Info(context.Background(), "Adapter registered", log.Fields{"type": instance.GetType()})
	return nil
}

// AdapterGet returns the registered adapter of the given type
func (am *AdapterManager) AdapterGet(adapterType string) (AdapterInstance, bool) {
	instance, ok := am.instances.Load(adapterType)
	if !ok {
		return nil, false
	}
	return instance.(AdapterInstance), true
}

// SessionAdd creates a new session
func (am *AdapterManager) SessionAdd() (string, error) {
	return am.sessionManager.SessionAdd()
}

// SessionGet retrieves a session
func (am *AdapterManager) SessionGet(sessionID string) (*session.Session, bool) {
	return am.sessionManager.SessionGet(sessionID)
}

// SessionDelete removes a session
func (am *AdapterManager) SessionDelete(sessionID string) {
	am.sessionManager.SessionDelete(sessionID)
}

// CommandRun runs a command in the given session
func (am *AdapterManager) CommandRun(sessionID string, cmd model.Command) (interface{}, error) {
	return am.sessionManager.SessionRun(sessionID, cmd)
}

// Shutdown stops all adapter instances
func (am *AdapterManager) Shutdown() {
	ctx := context.Background()
	am.instances.Range(func(key, value interface{}) bool {
		instance := value.(AdapterInstance)
		if err := instance.AdapterStop(); err != nil {
			am.logger.Error(ctx, "Failed to stop adapter", log.Fields{"type": key, "error": err})
		}
		am.instances.Delete(key)
		return true
	})
}
