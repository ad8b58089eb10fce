package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/eiannone/keyboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainStyles(buf *bytes.Buffer) styles {
	return newStyles(lipgloss.NewRenderer(buf), false)
}

func TestFormatLogEntry(t *testing.T) {
	var buf bytes.Buffer
	entry, err := parseEntry(`{"time":"2024-06-21T07:30:00.123456Z","level":"WARN","msg":"Asana update rejected","error":"name is empty","asanaID":42}`)
	require.NoError(t, err)

	out := formatLogEntry(plainStyles(&buf), "info", entry)
	assert.Equal(t, "24-06-21 07:30:00.123456 WARN  info     Asana update rejected\n    asanaID: 42\n    error: name is empty", out)
}

func TestMatches(t *testing.T) {
	debug := LogEntry{"level": "DEBUG", "msg": "Running command"}
	warn := LogEntry{"level": "WARN", "msg": "Tag removal declined"}

	assert.True(t, matches(debug, "Running command", "", ""))
	assert.False(t, matches(debug, "Running command", "", "INFO"))
	assert.True(t, matches(warn, "Tag removal declined", "TAG", "INFO"))
	assert.False(t, matches(warn, "Tag removal declined", "asana", ""))
}

func TestEditFilter(t *testing.T) {
	f := editFilter("", 'a', 0)
	f = editFilter(f, 0, keyboard.KeySpace)
	f = editFilter(f, 'ü', 0)
	assert.Equal(t, "a ü", f)
	f = editFilter(f, 0, keyboard.KeyBackspace2)
	assert.Equal(t, "a ", f)
	assert.Equal(t, "", editFilter("", 0, keyboard.KeyBackspace))
}

func TestScanFollowsAppends(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "commands.log")
	require.NoError(t, os.WriteFile(path, []byte(`{"time":"x","level":"INFO","msg":"Command received","scope":"asana"}`+"\n"), 0644))

	var buf bytes.Buffer
	v := newViewer(dir, time.Second, "", &buf, plainStyles(&buf))
	v.scan()
	assert.Contains(t, buf.String(), "New log file detected: commands.log")
	assert.Contains(t, buf.String(), "commands Command received")
	assert.Contains(t, buf.String(), "scope: asana")

	// a partial line waits for its newline
	buf.Reset()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString(`{"time":"x","level":"INFO","msg":"second"`)
	require.NoError(t, err)
	v.scan()
	assert.Empty(t, buf.String())

	_, err = f.WriteString("}\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	v.scan()
	assert.Contains(t, buf.String(), "second")
	assert.NotContains(t, buf.String(), "Command received")

	// truncation restarts from the top
	buf.Reset()
	require.NoError(t, os.WriteFile(path, []byte(`{"level":"ERROR","msg":"fresh"}`+"\n"), 0644))
	v.scan()
	assert.Contains(t, buf.String(), "truncated")
	assert.Contains(t, buf.String(), "fresh")
}

func TestSourceName(t *testing.T) {
	assert.Equal(t, "errors", sourceName("logs/errors.log"))
}
