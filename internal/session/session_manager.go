package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"yogaday/local-app/internal/data"
	"yogaday/local-app/internal/log"
	"yogaday/local-app/internal/model"
)

const (
	defaultCleanupInterval = 5 * time.Minute
	defaultSessionTimeout  = 30 * time.Minute
)

// ErrSessionNotFound is returned for commands addressed to an unknown session
var ErrSessionNotFound = errors.New("session not found")

// SessionManager owns the sessions and the single goroutine that executes
// every command and applies every finished image read.
type SessionManager struct {
	sessions      map[string]*Session
	mu            sync.RWMutex
	dataManager   *data.DataManager
	cleanupTicker *time.Ticker
	ctx           context.Context
	cancel        context.CancelFunc
	done          chan struct{}
	stopOnce      sync.Once
	commandQueue  chan commandExecution
	logger        *log.Logger
}

// commandExecution represents a command to be executed in a session and the channel for its outcome
type commandExecution struct {
	session *Session
	command model.Command
	reply   chan commandResult
}

type commandResult struct {
	value interface{}
	err   error
}

// NewSessionManager starts the command execution goroutine
func NewSessionManager(dataManager *data.DataManager, logger *log.Logger) *SessionManager {
	ctx := context.Background()
	logger.Info(ctx, "Creating new SessionManager", nil)

	sm := &SessionManager{
		sessions:     make(map[string]*Session),
		dataManager:  dataManager,
		done:         make(chan struct{}),
		commandQueue: make(chan commandExecution),
		logger:       logger,
	}
	sm.ctx, sm.cancel = context.WithCancel(context.Background())
	sm.cleanupTicker = time.NewTicker(defaultCleanupInterval)
	go sm.commandExecutor()

	logger.Info(ctx, "SessionManager created successfully", nil)
	return sm
}

// SessionAdd creates a new session and returns its ID
func (sm *SessionManager) SessionAdd() (string, error) {
	ctx := context.Background()
	sessionID := uuid.NewString()

	session := NewSession(sessionID, sm.dataManager, sm.logger)
	session.ctx = sm.ctx

	sm.mu.Lock()
	sm.sessions[sessionID] = session
	sm.mu.Unlock()

	sm.logger.Info(ctx, "New session added", log.Fields{"sessionID": sessionID})
	return sessionID, nil
}

// SessionGet retrieves a session by its ID
func (sm *SessionManager) SessionGet(sessionID string) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	session, exists := sm.sessions[sessionID]
	return session, exists
}

// SessionDelete removes a session
func (sm *SessionManager) SessionDelete(sessionID string) {
	ctx := context.Background()
	sm.mu.Lock()
	_, exists := sm.sessions[sessionID]
	delete(sm.sessions, sessionID)
	sm.mu.Unlock()

	if !exists {
		sm.logger.Warn(ctx, "Attempted to delete non-existent session", log.Fields{"sessionID": sessionID})
		return
	}
	sm.logger.Info(ctx, "Session deleted", log.Fields{"sessionID": sessionID})
}

// SessionRun executes a command for a specific session and waits for the outcome
func (sm *SessionManager) SessionRun(sessionID string, cmd model.Command) (interface{}, error) {
	ctx := context.Background()

	session, exists := sm.SessionGet(sessionID)
	if !exists {
		sm.logger.Error(ctx, "Session not found", log.Fields{"sessionID": sessionID})
		return nil, ErrSessionNotFound
	}

	// Log command in command log
	sm.logger.Command(ctx, "Command received", log.Fields{
		"sessionID": sessionID,
		"scope":     cmd.Scope,
		"operation": cmd.Operation,
		"args":      cmd.Args,
	})

	reply := make(chan commandResult, 1)
	select {
	case sm.commandQueue <- commandExecution{session: session, command: cmd, reply: reply}:
	case <-sm.done:
		return nil, errors.New("session manager stopped")
	}

	res := <-reply
	if res.err != nil {
		sm.logger.Warn(ctx, "Command execution failed", log.Fields{"sessionID": sessionID, "error": res.err})
		return nil, res.err
	}
	sm.logger.Debug(ctx, "Command executed successfully", log.Fields{"sessionID": sessionID})
	return res.value, nil
}

// commandExecutor processes queued commands, finished image reads and session
// cleanup, one at a time
func (sm *SessionManager) commandExecutor() {
	ctx := context.Background()
	sm.logger.Info(ctx, "Starting command executor", nil)

	images := sm.dataManager.ImageResults()
	for {
		select {
		case exec := <-sm.commandQueue:
			value, err := exec.session.CommandRun(exec.command)
			exec.reply <- commandResult{value: value, err: err}
		case res := <-images:
			if _, err := sm.dataManager.ImageApply(res); err != nil {
				sm.logger.Warn(ctx, "Image not attached", log.Fields{"asanaID": res.AsanaID, "error": err})
			}
		case now := <-sm.cleanupTicker.C:
			sm.cleanupInactiveSessions(now)
		case <-sm.done:
			sm.logger.Info(ctx, "Stopping command executor", nil)
			sm.cleanupTicker.Stop()
			return
		}
	}
}

// Stop stops the executor and the cleanup routine and cancels the context of
// every session, which abandons image reads still in flight.
func (sm *SessionManager) Stop() {
	sm.stopOnce.Do(func() {
		sm.logger.Info(context.Background(), "Stopping SessionManager", nil)
		sm.cancel()
		close(sm.done)
	})
}

// cleanupInactiveSessions removes sessions idle for longer than the timeout
func (sm *SessionManager) cleanupInactiveSessions(now time.Time) {
	sm.mu.RLock()
	var stale []string
	for id, session := range sm.sessions {
		if now.Sub(session.LastActivity) > defaultSessionTimeout {
			stale = append(stale, id)
		}
	}
	sm.mu.RUnlock()

	for _, id := range stale {
		sm.logger.Info(context.Background(), "Removing inactive session", log.Fields{"sessionID": id})
		sm.SessionDelete(id)
	}
}
