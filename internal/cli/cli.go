// Package cli provides the interactive shell of Yoga Day.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"yogaday/local-app/internal/adapter"
	"yogaday/local-app/internal/log"
	"yogaday/local-app/internal/session"
	"yogaday/local-app/internal/ui"
)

// CLI represents the command-line interface
type CLI struct {
	adapter   *adapter.CLIAdapter
	sessionID string
	ui        *ui.UI
	rl        *readline.Instance
	logger    *log.Logger
}

// NewCLI creates a CLI with its own session. Output goes to w.
func NewCLI(cliAdapter *adapter.CLIAdapter, w io.Writer, useColor bool, confirmer session.Confirmer, logger *log.Logger) (*CLI, error) {
	if cliAdapter == nil {
		return nil, errors.New("cli adapter is nil")
	}
	sessionID, err := cliAdapter.SessionAdd(confirmer)
	if err != nil {
		return nil, fmt.Errorf("failed to add cli session: %w", err)
	}
	return &CLI{
		adapter:   cliAdapter,
		sessionID: sessionID,
		ui:        ui.NewUI(w, useColor),
		logger:    logger,
	}, nil
}

// SessionID returns the session the CLI runs commands in
func (c *CLI) SessionID() string {
	return c.sessionID
}

// Run reads commands until exit, end of input or a second interrupt
func (c *CLI) Run(historyFile string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          c.prompt(),
		HistoryFile:     historyFile,
		AutoComplete:    completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	c.rl = rl
	defer rl.Close()

	c.ui.Println("Welcome to Yoga Day!")
	c.ui.Println("Type 'help' for a list of commands or 'exit' to quit.")

	for {
		rl.SetPrompt(c.prompt())
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				c.ui.Info("Use 'exit' or 'quit' to exit the program.")
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if c.ExecuteLine(line) {
			return nil
		}
	}
}

// Stop closes the prompt, which ends Run
func (c *CLI) Stop() {
	if c.rl != nil {
		c.rl.Close()
	}
	c.adapter.SessionDelete(c.sessionID)
}

func (c *CLI) prompt() string {
	return c.ui.PromptString(c.adapter.PromptGet(c.sessionID))
}

// ExecuteLine runs one input line and reports whether the shell should exit.
// Blank lines and lines starting with # are ignored.
func (c *CLI) ExecuteLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false
	}

	cmd, err := c.adapter.ParseCommand(line)
	if err != nil {
		c.ui.Error(err.Error())
		return false
	}

	if cmd.Scope == "help" {
		c.printHelp(cmd.Args)
		return false
	}

	result, err := c.adapter.CommandRun(c.sessionID, cmd)
	if err != nil {
		c.logger.Warn(context.Background(), "Command failed", log.Fields{"input": line, "error": err})
		c.ui.Error(err.Error())
		return false
	}
	return c.render(result)
}

// ExecuteScript runs every line of a script file, echoing each command.
// An exit command stops the script and is reported through the return value.
func (c *CLI) ExecuteScript(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()
	return c.executeLines(f)
}

func (c *CLI) executeLines(r io.Reader) (bool, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c.ui.PrintlnColored(c.adapter.PromptGet(c.sessionID)+line, ui.ColorWhite)
		if c.ExecuteLine(line) {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("failed to read script: %w", err)
	}
	return false, nil
}

// completer offers scopes and operations from the help table
func completer() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	seen := map[string]bool{}
	ops := map[string][]readline.PrefixCompleterInterface{}
	var scopes []string
	for _, h := range commandHelps {
		if !seen[h.Scope] {
			seen[h.Scope] = true
			scopes = append(scopes, h.Scope)
		}
		if h.Operation != "" {
			ops[h.Scope] = append(ops[h.Scope], readline.PcItem(h.Operation))
		}
	}
	for _, scope := range scopes {
		items = append(items, readline.PcItem(scope, ops[scope]...))
	}
	items = append(items, readline.PcItem("help"), readline.PcItem("exit"), readline.PcItem("quit"))
	return readline.NewPrefixCompleter(items...)
}
