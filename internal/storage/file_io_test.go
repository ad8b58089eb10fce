package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yogaday/local-app/internal/model"
)

func sampleDocument() model.ExportDocument {
	return model.ExportDocument{
		Asanas: []model.Asana{
			{ID: 1700000000001, Name: "Mountain", Note: "stand tall", ImageURL: "data:image/png;base64,AAAA", Tags: []string{"standing"}},
			{ID: 1700000000002, Name: "Child", Note: "rest", Tags: []string{}},
		},
		Flows: []model.Flow{
			{ID: 1700000000003, Name: "Morning", Description: "wake up", Duration: 15, Tags: []string{"am"}, AsanaIDs: []int64{1700000000002, 1700000000001}},
		},
		AsanaTags: []string{"standing"},
		FlowTags:  []string{"am"},
	}
}

func TestFileExportImport(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out", "yoga-data."+string(format))
			doc := sampleDocument()

			require.NoError(t, FileExport(path, doc, format))
			got, err := FileImport(path, format)
			require.NoError(t, err)

			assert.NotEmpty(t, got.Checksum)
			assert.NoError(t, VerifyChecksum(got))
			got.Checksum = ""
			assert.Equal(t, doc, got)
		})
	}
}

func TestChecksumDetectsTampering(t *testing.T) {
	data, err := EncodeDocument(sampleDocument(), FormatJSON)
	require.NoError(t, err)

	doc, err := DecodeDocument(data, FormatJSON)
	require.NoError(t, err)
	doc.Flows[0].Duration = 99

	assert.ErrorIs(t, VerifyChecksum(doc), ErrChecksumMismatch)
}

func TestDecodeDocumentLenient(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{"asanas":[{"id":"5","name":"Cat"}],"flows":[{"id":6,"asanaIds":["5"]}]}`), FormatJSON)
	require.NoError(t, err)

	require.Len(t, doc.Asanas, 1)
	assert.Equal(t, int64(5), doc.Asanas[0].ID)
	assert.Equal(t, []string{}, doc.Asanas[0].Tags)
	assert.Equal(t, []int64{5}, doc.Flows[0].AsanaIDs)
	assert.Equal(t, []string{}, doc.AsanaTags)
	assert.Empty(t, doc.Checksum)
	assert.NoError(t, VerifyChecksum(doc))
}

func TestDecodeDocumentRejectsMalformed(t *testing.T) {
	_, err := DecodeDocument([]byte(`[1,2,3]`), FormatJSON)
	assert.Error(t, err)

	_, err = DecodeDocument([]byte("asanas:\n  - id: [1]\n"), FormatYAML)
	assert.Error(t, err)

	_, err = FileImport(filepath.Join(t.TempDir(), "missing.json"), FormatJSON)
	assert.Error(t, err)
}

func TestFormats(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)

	assert.Equal(t, FormatYAML, FormatFromPath("backup.yaml"))
	assert.Equal(t, FormatJSON, FormatFromPath("yoga-data.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("noext"))
}

func TestExportFileIsIndentedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yoga-data.json")
	require.NoError(t, FileExport(path, sampleDocument(), FormatJSON))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"asanas\": [")
	assert.Contains(t, string(data), "\"asanaIds\"")
}
