// Package session runs commands against the library on behalf of adapters.
package session

import (
	"context"
	"errors"
	"time"

	"yogaday/local-app/internal/data"
	"yogaday/local-app/internal/log"
	"yogaday/local-app/internal/model"
)

// CommandHandler is a function type for command handlers
type CommandHandler func(*Session, model.Command) (interface{}, error)

// Confirmer asks the user to approve a destructive action
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface
type ConfirmFunc func(prompt string) (bool, error)

// Confirm calls f(prompt)
func (f ConfirmFunc) Confirm(prompt string) (bool, error) {
	return f(prompt)
}

// Session represents an individual client session
type Session struct {
	ID              string
	DataManager     *data.DataManager
	View            model.View
	Confirmer       Confirmer
	LastActivity    time.Time
	ctx             context.Context
	commandHandlers map[string]map[string]CommandHandler
	logger          *log.Logger
}

// NewSession creates a new Session instance
func NewSession(id string, dataManager *data.DataManager, logger *log.Logger) *Session {
	ctx := context.Background()
	logger.Info(ctx, "Creating new Session", log.Fields{"sessionID": id})

	s := &Session{
		ID:           id,
		DataManager:  dataManager,
		View:         model.ViewCards,
		LastActivity: time.Now(),
		ctx:          context.Background(),
		logger:       logger,
	}
	s.initCommandHandlers()

	logger.Info(ctx, "New Session created successfully", log.Fields{"sessionID": id})
	return s
}

// Context is cancelled when the session's manager stops. Background work
// started by a command uses it.
func (s *Session) Context() context.Context {
	return s.ctx
}

// initCommandHandlers initializes the command handlers map
func (s *Session) initCommandHandlers() {
	s.commandHandlers = map[string]map[string]CommandHandler{
		"asana":   initAsanaCommandHandlers(),
		"flow":    initFlowCommandHandlers(),
		"tag":     initTagCommandHandlers(),
		"filter":  initFilterCommandHandlers(),
		"drop":    {"": handleDrop},
		"view":    {"": handleView},
		"library": initLibraryCommandHandlers(),
		"system":  initSystemCommandHandlers(),
	}
}

// CommandRun executes a command within the session context
func (s *Session) CommandRun(cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Debug(ctx, "Running command", log.Fields{"scope": cmd.Scope, "operation": cmd.Operation, "args": cmd.Args})
	s.LastActivity = time.Now()

	scopeHandlers, ok := s.commandHandlers[cmd.Scope]
	if !ok {
		s.logger.Warn(ctx, "Invalid command scope", log.Fields{"scope": cmd.Scope})
		return nil, errors.New("invalid command scope")
	}

	handler, ok := scopeHandlers[cmd.Operation]
	if !ok {
		s.logger.Warn(ctx, "Invalid command operation", log.Fields{"scope": cmd.Scope, "operation": cmd.Operation})
		return nil, errors.New("invalid command operation")
	}

	return handler(s, cmd)
}

// Scopes lists the command scopes and their operations
func (s *Session) Scopes() map[string][]string {
	out := make(map[string][]string, len(s.commandHandlers))
	for scope, ops := range s.commandHandlers {
		for op := range ops {
			out[scope] = append(out[scope], op)
		}
	}
	return out
}

// confirm asks the session's Confirmer, unless the command carries --yes.
func (s *Session) confirm(cmd model.Command, prompt string) (bool, error) {
	if cmd.HasFlag("--yes") {
		return true, nil
	}
	if s.Confirmer == nil {
		return false, ErrConfirmationRequired
	}
	return s.Confirmer.Confirm(prompt)
}
