package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrConfirmationRequired is returned when a destructive command cannot ask for confirmation
	ErrConfirmationRequired = errors.New("confirmation required, repeat with --yes")
	// ErrUsage wraps argument errors
	ErrUsage = errors.New("usage")
)

func usage(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, a...))
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, usage("invalid id %q", s)
	}
	return id, nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, usage("invalid index %q", s)
	}
	return i, nil
}

// parseFields reads key=value arguments. Unknown keys are rejected.
func parseFields(args []string, allowed ...string) (map[string]string, error) {
	fields := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, usage("expected key=value, got %q", arg)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		known := false
		for _, a := range allowed {
			if a == key {
				known = true
				break
			}
		}
		if !known {
			return nil, usage("unknown field %q, expected one of %s", key, strings.Join(allowed, ", "))
		}
		fields[key] = value
	}
	return fields, nil
}

// splitList splits a comma separated value, dropping blanks. An empty value is an empty list.
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseDuration reads a duration in minutes; anything unparsable or negative is 0.
func parseDuration(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
