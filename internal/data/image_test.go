package data

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough of a PNG file for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func waitImage(t *testing.T, m *DataManager) ImageResult {
	t.Helper()
	select {
	case res := <-m.ImageResults():
		return res
	case <-time.After(5 * time.Second):
		t.Fatal("image result not delivered")
		return ImageResult{}
	}
}

func TestImageEncode(t *testing.T) {
	url, err := ImageEncode(pngHeader)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	_, err = ImageEncode([]byte("just some notes"))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestImageLoadAndApply(t *testing.T) {
	m, _ := newTestManager(t)
	a := m.AsanaAdd()
	path := writeFile(t, "tree.png", pngHeader)

	require.NoError(t, m.ImageLoad(context.Background(), a.ID, path))
	res := waitImage(t, m)
	require.NoError(t, res.Err)
	assert.Equal(t, a.ID, res.AsanaID)

	applied, err := m.ImageApply(res)
	require.NoError(t, err)
	assert.True(t, applied)
	got, _ := m.AsanaGet(a.ID)
	assert.Equal(t, res.DataURL, got.ImageURL)
}

func TestImageLateResultDiscarded(t *testing.T) {
	m, _ := newTestManager(t)
	a := m.AsanaAdd()
	path := writeFile(t, "crow.png", pngHeader)

	require.NoError(t, m.ImageLoad(context.Background(), a.ID, path))
	require.NoError(t, m.AsanaDelete(a.ID))

	applied, err := m.ImageApply(waitImage(t, m))
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Empty(t, m.AsanaList())
}

func TestImageLoadErrors(t *testing.T) {
	m, _ := newTestManager(t)
	assert.ErrorIs(t, m.ImageLoad(context.Background(), 1, "x.png"), ErrAsanaNotFound)

	a := m.AsanaAdd()
	require.NoError(t, m.ImageLoad(context.Background(), a.ID, writeFile(t, "notes.txt", []byte("hello"))))
	res := waitImage(t, m)
	assert.ErrorIs(t, res.Err, ErrNotImage)

	applied, err := m.ImageApply(res)
	assert.Error(t, err)
	assert.False(t, applied)
	got, _ := m.AsanaGet(a.ID)
	assert.Empty(t, got.ImageURL)
}

func TestImageLoadCancelled(t *testing.T) {
	m, _ := newTestManager(t)
	a := m.AsanaAdd()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, m.ImageLoad(ctx, a.ID, writeFile(t, "boat.png", pngHeader)))
	assert.Never(t, func() bool { return len(m.ImageResults()) > 0 }, 100*time.Millisecond, 10*time.Millisecond)
}

func writeRaw(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
