package model

// Command represents a user command with its scope, operation, and arguments.
// Payload carries a typed body when the command originates from a structured
// adapter (HTTP) instead of a text line.
type Command struct {
	Scope     string
	Operation string
	Args      []string
	Payload   interface{}
}

// HasFlag reports whether the literal flag (for example "--yes") is among the arguments.
func (c Command) HasFlag(flag string) bool {
	for _, arg := range c.Args {
		if arg == flag {
			return true
		}
	}
	return false
}

// Positional returns the arguments with flags ("--x") removed.
func (c Command) Positional() []string {
	var args []string
	for _, arg := range c.Args {
		if len(arg) > 2 && arg[:2] == "--" {
			continue
		}
		args = append(args, arg)
	}
	return args
}
