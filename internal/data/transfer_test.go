package data

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yogaday/local-app/internal/model"
	"yogaday/local-app/internal/storage"
)

func populate(t *testing.T, m *DataManager) {
	t.Helper()
	require.NoError(t, m.TagCreate(model.DomainAsana, "standing"))
	require.NoError(t, m.TagCreate(model.DomainFlow, "am"))
	a := m.AsanaAdd()
	b := m.AsanaAdd()
	f := m.FlowAdd()
	_, err := m.AsanaUpdate(a.ID, model.AsanaPatch{Name: strPtr("Mountain"), Tags: []string{"standing"}})
	require.NoError(t, err)
	_, err = m.FlowUpdate(f.ID, model.FlowPatch{Tags: []string{"am"}, AsanaIDs: []int64{b.ID, a.ID}})
	require.NoError(t, err)
}

func TestLibraryRoundTrip(t *testing.T) {
	src, _ := newTestManager(t)
	populate(t, src)
	doc := src.LibraryExport()

	dst, kv := newTestManager(t)
	require.NoError(t, dst.LibraryImport(doc))
	assert.Equal(t, doc, dst.LibraryExport())

	reloaded := newTestManagerWith(t, kv)
	assert.Equal(t, doc, reloaded.LibraryExport(), "import saves every key")
}

func TestLibraryFileRoundTrip(t *testing.T) {
	src, _ := newTestManager(t)
	populate(t, src)

	for _, format := range []storage.Format{storage.FormatJSON, storage.FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "yoga-data."+string(format))
			require.NoError(t, src.LibraryExportFile(path, format))

			dst, _ := newTestManager(t)
			require.NoError(t, dst.LibraryImportFile(path, format))
			assert.Equal(t, src.LibraryExport(), dst.LibraryExport())
		})
	}
}

func TestLibraryImportRejectsInvalid(t *testing.T) {
	m, _ := newTestManager(t)
	populate(t, m)
	before := m.LibraryExport()

	tests := []struct {
		name string
		doc  model.ExportDocument
	}{
		{"duplicate asana id", model.ExportDocument{Asanas: []model.Asana{{ID: 1}, {ID: 1}}}},
		{"zero flow id", model.ExportDocument{Flows: []model.Flow{{Name: "x"}}}},
		{"duplicate flow id", model.ExportDocument{Flows: []model.Flow{{ID: 3}, {ID: 3}}}},
		{"checksum mismatch", model.ExportDocument{Asanas: []model.Asana{{ID: 1}}, Checksum: "deadbeef"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, m.LibraryImport(tt.doc), ErrInvalidLibrary)
			assert.Equal(t, before, m.LibraryExport())
		})
	}

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, writeRaw(path, "{\"asanas\": [oops"))
	assert.Error(t, m.LibraryImportFile(path, storage.FormatJSON))
	assert.Equal(t, before, m.LibraryExport())
}

func TestLibraryImportResetsTransientState(t *testing.T) {
	m, _ := newTestManager(t)
	populate(t, m)
	_, err := m.TagToggle(model.DomainAsana, "standing")
	require.NoError(t, err)
	_, err = m.TagToggle(model.DomainFlow, "am")
	require.NoError(t, err)

	doc := model.ExportDocument{
		Asanas:    []model.Asana{{ID: 5, Name: "Crow", Tags: []string{"arms"}}},
		AsanaTags: []string{"arms", "standing"},
	}
	require.NoError(t, m.LibraryImport(doc))

	_, editing := m.Editing(model.DomainAsana)
	assert.False(t, editing)
	_, editing = m.Editing(model.DomainFlow)
	assert.False(t, editing)
	assert.Equal(t, []string{"standing"}, m.Selection(model.DomainAsana))
	assert.Empty(t, m.Selection(model.DomainFlow))
	assert.Empty(t, m.FlowList())

	next := m.AsanaAdd()
	assert.Greater(t, next.ID, int64(5))
}

func TestLibraryImportAcceptsValidChecksum(t *testing.T) {
	src, _ := newTestManager(t)
	populate(t, src)
	doc := src.LibraryExport()
	sum, err := storage.DocumentChecksum(doc)
	require.NoError(t, err)
	doc.Checksum = sum

	dst, _ := newTestManager(t)
	require.NoError(t, dst.LibraryImport(doc))
}
