package adapter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yogaday/local-app/internal/config"
	"yogaday/local-app/internal/data"
	"yogaday/local-app/internal/log"
	"yogaday/local-app/internal/model"
	"yogaday/local-app/internal/session"
	"yogaday/local-app/internal/storage"
)

func newTestAdapterManager(t *testing.T) *AdapterManager {
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
	am, err := NewAdapterManager(sm, logger)
	require.NoError(t, err)
	return am
}

func newTestCLIAdapter(t *testing.T) (*CLIAdapter, string) {
	t.Helper()
	cli, err := NewCLIAdapter(newTestAdapterManager(t), log.NewDiscardLogger())
	require.NoError(t, err)
	id, err := cli.SessionAdd(nil)
	require.NoError(t, err)
	return cli, id
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"asana list", []string{"asana", "list"}},
		{"  asana   list  ", []string{"asana", "list"}},
		{`asana update 1 "name=Tree Pose" note=calm`, []string{"asana", "update", "1", "name=Tree Pose", "note=calm"}},
		{`asana update 1 name="Half Moon"`, []string{"asana", "update", "1", "name=Half Moon"}},
		{`tag add ""`, []string{"tag", "add", ""}},
		{"", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseArgs(tt.input), tt.input)
	}
}

func TestParseCommand(t *testing.T) {
	cli, _ := newTestCLIAdapter(t)

	tests := []struct {
		input string
		want  model.Command
	}{
		{"Asana LIST --all", model.Command{Scope: "asana", Operation: "list", Args: []string{"--all"}}},
		{"asana", model.Command{Scope: "asana", Args: []string{}}},
		{"view flows", model.Command{Scope: "view", Args: []string{"flows"}}},
		{"drop 3 flow:7", model.Command{Scope: "drop", Args: []string{"3", "flow:7"}}},
		{"help asana add", model.Command{Scope: "help", Args: []string{"asana", "add"}}},
		{"exit", model.Command{Scope: "system", Operation: "exit", Args: []string{}}},
		{"quit", model.Command{Scope: "system", Operation: "quit", Args: []string{}}},
	}
	for _, tt := range tests {
		got, err := cli.ParseCommand(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	_, err := cli.ParseCommand("   ")
	assert.ErrorIs(t, err, ErrEmptyCommand)
}

func TestProcessInput(t *testing.T) {
	cli, id := newTestCLIAdapter(t)

	res, err := cli.ProcessInput(id, "asana add")
	require.NoError(t, err)
	a := res.(model.Asana)

	res, err = cli.ProcessInput(id, `asana update `+itoa(a.ID)+` "name=Tree Pose"`)
	require.NoError(t, err)
	assert.Equal(t, "Tree Pose", res.(model.Asana).Name)

	res, err = cli.ProcessInput(id, "exit")
	require.NoError(t, err)
	assert.IsType(t, session.ExitSignal{}, res)

	_, err = cli.ProcessInput(id, "")
	assert.ErrorIs(t, err, ErrEmptyCommand)
	_, err = cli.ProcessInput("missing", "asana list")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestPromptFollowsView(t *testing.T) {
	cli, id := newTestCLIAdapter(t)
	assert.Equal(t, "yogaday [cards] > ", cli.PromptGet(id))

	_, err := cli.ProcessInput(id, "view flows")
	require.NoError(t, err)
	assert.Equal(t, "yogaday [flows] > ", cli.PromptGet(id))

	assert.Equal(t, "yogaday > ", cli.PromptGet("missing"))
}

func TestCLISessionConfirmer(t *testing.T) {
	am := newTestAdapterManager(t)
	cli, err := NewCLIAdapter(am, log.NewDiscardLogger())
	require.NoError(t, err)

	var asked string
	id, err := cli.SessionAdd(session.ConfirmFunc(func(prompt string) (bool, error) {
		asked = prompt
		return false, nil
	}))
	require.NoError(t, err)

	_, err = cli.ProcessInput(id, "tag add asana standing")
	require.NoError(t, err)
	res, err := cli.ProcessInput(id, "tag remove asana standing")
	require.NoError(t, err)
	assert.Equal(t, "Tag removal cancelled", res)
	assert.Contains(t, asked, "standing")

	res, err = cli.ProcessInput(id, "tag list asana")
	require.NoError(t, err)
	assert.Equal(t, []string{"standing"}, res.(session.TagListing).Tags)
}

func TestAdapterRegistry(t *testing.T) {
	am := newTestAdapterManager(t)
	cli, err := NewCLIAdapter(am, log.NewDiscardLogger())
	require.NoError(t, err)
	id, err := cli.SessionAdd(nil)
	require.NoError(t, err)

	require.NoError(t, am.AdapterAdd(cli))
	assert.Error(t, am.AdapterAdd(cli))
	got, ok := am.AdapterGet("cli")
	require.True(t, ok)
	assert.Equal(t, "cli", got.GetType())

	am.Shutdown()
	_, ok = am.AdapterGet("cli")
	assert.False(t, ok)
	_, ok = am.SessionGet(id)
	assert.False(t, ok)

	_, err = NewAdapterManager(nil, log.NewDiscardLogger())
	assert.Error(t, err)
}
