package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"yogaday/local-app/internal/log"
	"yogaday/local-app/internal/model"
	"yogaday/local-app/internal/session"
)

// ErrEmptyCommand is returned for blank input lines
var ErrEmptyCommand = errors.New("empty command")

// scopes whose arguments start right after the scope word
var operationlessScopes = map[string]bool{
	"drop": true,
	"view": true,
	"help": true,
}

// CLIAdapter provides command-line interface support for managing multiple CLI connections
type CLIAdapter struct {
	sessions       map[string]*session.Session
	sessionMutex   sync.RWMutex
	adapterManager *AdapterManager
	logger         *log.Logger
}

// NewCLIAdapter creates a new instance of CLIAdapter
func NewCLIAdapter(am *AdapterManager, logger *log.Logger) (*CLIAdapter, error) {
	if am == nil {
		return nil, errors.New("adapter manager is nil")
	}
	logger.Info(context.Background(), "Creating new CLI adapter", nil)
	return &CLIAdapter{
		sessions:       make(map[string]*session.Session),
		adapterManager: am,
		logger:         logger,
	}, nil
}

// AdapterStart starts the CLI adapter
func (a *CLIAdapter) AdapterStart() error {
	a.logger.Info(context.Background(), "CLI adapter started", nil)
	return nil
}

// AdapterStop removes every CLI session
func (a *CLIAdapter) AdapterStop() error {
	ctx := context.Background()
	a.logger.Info(ctx, "CLI adapter stopping", nil)

	a.sessionMutex.Lock()
	for sessionID := range a.sessions {
		delete(a.sessions, sessionID)
		a.adapterManager.SessionDelete(sessionID)
		a.logger.Debug(ctx, "Removed session during adapter stop", log.Fields{"sessionID": sessionID})
	}
	a.sessionMutex.Unlock()

	a.logger.Info(ctx, "CLI adapter stopped", nil)
	return nil
}

// GetType returns "cli"
func (a *CLIAdapter) GetType() string {
	return "cli"
}

// SessionAdd adds a new cli session. The confirmer, when not nil, answers
// the prompts of destructive commands.
func (a *CLIAdapter) SessionAdd(confirmer session.Confirmer) (string, error) {
	sessionID, err := a.adapterManager.SessionAdd()
	if err != nil {
		return "", err
	}

	s, exists := a.adapterManager.SessionGet(sessionID)
	if !exists {
		a.logger.Error(context.Background(), "Session does not exist", log.Fields{"sessionID": sessionID})
		return "", fmt.Errorf("session %s does not exist after addition by cli adapter", sessionID)
	}
	s.Confirmer = confirmer

	a.sessionMutex.Lock()
	a.sessions[sessionID] = s
	a.sessionMutex.Unlock()
	a.logger.Info(context.Background(), "New CLI session added", log.Fields{"sessionID": sessionID})

	return sessionID, nil
}

// SessionDelete deletes a cli session
func (a *CLIAdapter) SessionDelete(sessionID string) {
	a.sessionMutex.Lock()
	delete(a.sessions, sessionID)
	a.sessionMutex.Unlock()
	a.adapterManager.SessionDelete(sessionID)
	a.logger.Info(context.Background(), "CLI session removed", log.Fields{"sessionID": sessionID})
}

// ProcessInput converts the input string into a command and runs it
func (a *CLIAdapter) ProcessInput(sessionID string, input string) (interface{}, error) {
	cmd, err := a.ParseCommand(input)
	if err != nil {
		return nil, err
	}
	return a.CommandRun(sessionID, cmd)
}

// CommandRun runs an already parsed command
func (a *CLIAdapter) CommandRun(sessionID string, cmd model.Command) (interface{}, error) {
	return a.adapterManager.CommandRun(sessionID, cmd)
}

// ParseCommand splits an input line into scope, operation and arguments.
// A lone exit or quit is shorthand for the system command.
func (a *CLIAdapter) ParseCommand(input string) (model.Command, error) {
	args := ParseArgs(input)
	if len(args) == 0 {
		return model.Command{}, ErrEmptyCommand
	}

	cmd := model.Command{
		Scope: strings.ToLower(args[0]),
		Args:  []string{},
	}

	switch {
	case len(args) == 1 && (cmd.Scope == "exit" || cmd.Scope == "quit"):
		cmd.Operation = cmd.Scope
		cmd.Scope = "system"
	case operationlessScopes[cmd.Scope]:
		cmd.Args = args[1:]
	case len(args) > 1:
		cmd.Operation = strings.ToLower(args[1])
		cmd.Args = args[2:]
	}

	a.logger.Debug(context.Background(), "Command parsed", log.Fields{"scope": cmd.Scope, "operation": cmd.Operation, "args": cmd.Args})
	return cmd, nil
}

// ParseArgs splits a line on spaces, keeping double-quoted text together
func ParseArgs(input string) []string {
	var args []string
	var currentArg strings.Builder
	inQuotes := false
	quoted := false

	for _, char := range input {
		switch char {
		case '"':
			inQuotes = !inQuotes
			quoted = true
		case ' ', '\t':
			if inQuotes {
				currentArg.WriteRune(char)
				continue
			}
			if currentArg.Len() > 0 || quoted {
				args = append(args, currentArg.String())
				currentArg.Reset()
			}
			quoted = false
		default:
			currentArg.WriteRune(char)
		}
	}

	if currentArg.Len() > 0 || quoted {
		args = append(args, currentArg.String())
	}

	return args
}

// PromptGet gets the current prompt of the session
func (a *CLIAdapter) PromptGet(sessionID string) string {
	a.sessionMutex.RLock()
	defer a.sessionMutex.RUnlock()

	s, exists := a.sessions[sessionID]
	if !exists {
		a.logger.Warn(context.Background(), "Session not found", log.Fields{"sessionID": sessionID})
		return "yogaday > "
	}
	return fmt.Sprintf("yogaday [%s] > ", s.View)
}
