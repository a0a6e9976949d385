package asset

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"
	"time"

	"github.com/brandbite/brandbite-api/internal/pkg/imaging"
	"github.com/brandbite/brandbite-api/internal/pkg/storage"
)

var errObjectMissing = errors.New("object missing")

// memStore keeps objects in a map, enough to drive the thumbnail path.
type memStore struct {
	objects map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (m *memStore) PresignPut(ctx context.Context, key, contentType string, size int64, expires time.Duration) (string, error) {
	return "http://test/" + key, nil
}

func (m *memStore) PresignGet(ctx context.Context, key string, expires time.Duration) (string, error) {
	return "http://test/" + key, nil
}

func (m *memStore) Put(ctx context.Context, key string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.objects[key] = data
	return nil
}

func (m *memStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, errObjectMissing
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memStore) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.objects[key]
	return ok, nil
}

func (m *memStore) Head(ctx context.Context, key string) (*storage.ObjectInfo, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, errObjectMissing
	}
	return &storage.ObjectInfo{Key: key, Size: int64(len(data))}, nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestRenderThumbnail_DotlessObjectKey(t *testing.T) {
	store := newMemStore()
	store.objects["assets/co/original"] = pngBytes(t, 64, 64)

	svc := NewService(nil, store, nil, imaging.NewProcessor(imaging.DefaultConfig()))

	key, err := svc.renderThumbnail(context.Background(), "assets/co/original")
	if err != nil {
		t.Fatalf("renderThumbnail: %v", err)
	}
	if key != "assets/co/original_thumb.png" {
		t.Errorf("key = %q, want extension derived from the rendered format", key)
	}
	if _, ok := store.objects[key]; !ok {
		t.Error("thumbnail was not stored")
	}
}
