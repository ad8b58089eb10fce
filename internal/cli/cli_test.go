package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yogaday/local-app/internal/adapter"
	"yogaday/local-app/internal/config"
	"yogaday/local-app/internal/data"
	"yogaday/local-app/internal/log"
	"yogaday/local-app/internal/session"
	"yogaday/local-app/internal/storage"
)

func newTestCLI(t *testing.T, confirmer session.Confirmer) (*CLI, *bytes.Buffer, *data.DataManager) {
	t.Helper()
	logger := log.NewDiscardLogger()
	store, err := storage.NewLibraryStore(storage.NewMemoryKVStore(), logger)
	require.NoError(t, err)
	cfg := config.Defaults()
	cfg.ExportFile = filepath.Join(t.TempDir(), "yoga-data.json")
	dm, err := data.NewDataManager(store, cfg, logger)
	require.NoError(t, err)

	sm := session.NewSessionManager(dm, logger)
	t.Cleanup(sm.Stop)
	am, err := adapter.NewAdapterManager(sm, logger)
	require.NoError(t, err)
	cliAdapter, err := adapter.NewCLIAdapter(am, logger)
	require.NoError(t, err)

	var out bytes.Buffer
	c, err := NewCLI(cliAdapter, &out, false, confirmer, logger)
	require.NoError(t, err)
	return c, &out, dm
}

func TestExecuteLine(t *testing.T) {
	c, out, dm := newTestCLI(t, nil)

	assert.False(t, c.ExecuteLine("asana add"))
	require.Len(t, dm.AsanaList(), 1)
	id := dm.AsanaList()[0].ID
	assert.Contains(t, out.String(), "New Asana")

	out.Reset()
	assert.False(t, c.ExecuteLine(`asana update `+itoa(id)+` "name=Tree Pose"`))
	assert.Contains(t, out.String(), "Tree Pose")

	out.Reset()
	assert.False(t, c.ExecuteLine("asana show nope"))
	assert.Contains(t, out.String(), "! ")

	out.Reset()
	assert.False(t, c.ExecuteLine("# a comment"))
	assert.False(t, c.ExecuteLine("   "))
	assert.Empty(t, out.String())

	assert.True(t, c.ExecuteLine("exit"))
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestTagRemoveConfirmation(t *testing.T) {
	answer := false
	c, out, dm := newTestCLI(t, session.ConfirmFunc(func(string) (bool, error) {
		return answer, nil
	}))

	c.ExecuteLine("tag add asana standing")
	c.ExecuteLine("tag remove asana standing")
	assert.Contains(t, out.String(), "Tag removal cancelled")
	assert.Equal(t, []string{"standing"}, dm.TagList("asana"))

	answer = true
	c.ExecuteLine("tag remove asana standing")
	assert.Empty(t, dm.TagList("asana"))
}

func TestTagRemoveWithoutTerminal(t *testing.T) {
	c, out, dm := newTestCLI(t, nil)

	c.ExecuteLine("tag add flow morning")
	c.ExecuteLine("tag remove flow morning")
	assert.Contains(t, out.String(), "--yes")
	assert.Equal(t, []string{"morning"}, dm.TagList("flow"))

	c.ExecuteLine("tag remove flow morning --yes")
	assert.Empty(t, dm.TagList("flow"))
}

func TestScript(t *testing.T) {
	c, out, dm := newTestCLI(t, nil)

	script := strings.Join([]string{
		"# build a flow",
		"asana add",
		"flow add",
		"view flows",
		"",
		"exit",
		"asana add",
	}, "\n")
	path := filepath.Join(t.TempDir(), "setup.yoga")
	require.NoError(t, os.WriteFile(path, []byte(script), 0644))

	exited, err := c.ExecuteScript(path)
	require.NoError(t, err)
	assert.True(t, exited)
	assert.Len(t, dm.AsanaList(), 1)
	assert.Len(t, dm.FlowList(), 1)
	assert.Contains(t, out.String(), "yogaday [cards] > asana add")
	assert.Contains(t, out.String(), "yogaday [flows] > exit")

	_, err = c.ExecuteScript(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestDropAndView(t *testing.T) {
	c, out, dm := newTestCLI(t, nil)

	c.ExecuteLine("asana add")
	c.ExecuteLine("flow add")
	asanaID := dm.AsanaList()[0].ID
	flowID := dm.FlowList()[0].ID

	out.Reset()
	c.ExecuteLine("drop " + itoa(asanaID) + " flow:" + itoa(flowID))
	assert.Contains(t, out.String(), "added to flow")

	out.Reset()
	c.ExecuteLine("flow show " + itoa(flowID))
	assert.Contains(t, out.String(), "New Asana")

	out.Reset()
	c.ExecuteLine("view flows")
	assert.Contains(t, out.String(), "Viewing flows")
}

func TestHelp(t *testing.T) {
	c, out, _ := newTestCLI(t, nil)

	c.ExecuteLine("help")
	assert.Contains(t, out.String(), "Available commands:")
	assert.Contains(t, out.String(), "add-asana")

	out.Reset()
	c.ExecuteLine("help tag remove")
	assert.Contains(t, out.String(), "Syntax: tag remove [asana|flow] <name> [--yes]")

	out.Reset()
	c.ExecuteLine("help drop")
	assert.Contains(t, out.String(), "Syntax: drop")

	out.Reset()
	c.ExecuteLine("help yoga")
	assert.Contains(t, out.String(), "No help found")
}

func TestCompleterCoversScopes(t *testing.T) {
	tree := completer().Tree("")
	for _, scope := range []string{"asana", "flow", "tag", "filter", "drop", "view", "library", "system", "help"} {
		assert.Contains(t, tree, scope)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
