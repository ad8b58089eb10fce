package data

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"yogaday/local-app/internal/log"
)

// ImageResult is a finished image read for the asana captured when the read began.
type ImageResult struct {
	AsanaID int64
	DataURL string
	Err     error
}

// ImageEncode turns image bytes into a data URL. Non-image content is rejected.
func ImageEncode(data []byte) (string, error) {
	mt := mimetype.Detect(data)
	mime, _, _ := strings.Cut(mt.String(), ";")
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// ImageResults delivers finished image reads. The receiver passes each one to ImageApply.
func (m *DataManager) ImageResults() <-chan ImageResult {
	return m.images
}

// ImageLoad reads an image file in the background for an existing asana.
// The result arrives on ImageResults unless ctx is cancelled first; callers
// pass a context that ends when nothing drains ImageResults any more.
func (m *DataManager) ImageLoad(ctx context.Context, asanaID int64, path string) error {
	if m.asanaIndex(asanaID) < 0 {
		return ErrAsanaNotFound
	}
	m.Logger.Info(ctx, "Loading image", log.Fields{"asanaID": asanaID, "path": path})

	go func() {
		if ctx.Err() != nil {
			return
		}
		res := ImageResult{AsanaID: asanaID}
		data, err := os.ReadFile(path)
		if err != nil {
			res.Err = fmt.Errorf("failed to read image: %w", err)
		} else {
			res.DataURL, res.Err = ImageEncode(data)
		}

		select {
		case m.images <- res:
		case <-ctx.Done():
		}
	}()
	return nil
}

// ImageApply stores a finished read on its asana. Results for asanas deleted
// while the read was in flight are discarded; it reports whether anything changed.
func (m *DataManager) ImageApply(res ImageResult) (bool, error) {
	ctx := context.Background()
	if res.Err != nil {
		m.Logger.Warn(ctx, "Image load failed", log.Fields{"asanaID": res.AsanaID, "error": res.Err})
		return false, res.Err
	}

	i := m.asanaIndex(res.AsanaID)
	if i < 0 {
		m.Logger.Info(ctx, "Discarding image for missing asana", log.Fields{"asanaID": res.AsanaID})
		return false, nil
	}

	m.asanas[i].ImageURL = res.DataURL
	m.publishAsanas()

	m.Logger.Info(ctx, "Image attached", log.Fields{"asanaID": res.AsanaID, "bytes": len(res.DataURL)})
	return true, nil
}
