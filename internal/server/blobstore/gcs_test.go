package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"cloud.google.com/go/storage"
	"github.com/dmitrijs2005/pmdadmin/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

type bufWriter struct {
	bytes.Buffer
	writeErr error
	closeErr error
	closed   bool
}

func (w *bufWriter) Write(p []byte) (int, error) {
	if w.writeErr != nil {
		return 0, w.writeErr
	}
	return w.Buffer.Write(p)
}

func (w *bufWriter) Close() error {
	w.closed = true
	return w.closeErr
}

func stubGCS(t *testing.T, w *bufWriter) *struct{ bucket, path, ct string } {
	t.Helper()
	origClient, origWriter := newStorageClient, newObjectWriter
	t.Cleanup(func() {
		newStorageClient = origClient
		newObjectWriter = origWriter
	})
	newStorageClient = func(ctx context.Context, opts ...option.ClientOption) (*storage.Client, error) {
		assert.NotEmpty(t, opts)
		return &storage.Client{}, nil
	}
	got := &struct{ bucket, path, ct string }{}
	newObjectWriter = func(ctx context.Context, c *storage.Client, bucket, path, contentType string) io.WriteCloser {
		got.bucket, got.path, got.ct = bucket, path, contentType
		return w
	}
	return got
}

func TestGCSStore_PutObject(t *testing.T) {
	w := &bufWriter{}
	got := stubGCS(t, w)

	st, err := NewGCSStore(context.Background(), Options{GCSBucket: "pmd-app.appspot.com", GCSCredentials: `{"type":"service_account"}`})
	require.NoError(t, err)

	url, err := st.PutObject(context.Background(), "gallery/x.png", []byte("png"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://storage.googleapis.com/pmd-app.appspot.com/gallery/x.png", url)
	assert.Equal(t, "pmd-app.appspot.com", got.bucket)
	assert.Equal(t, "gallery/x.png", got.path)
	assert.Equal(t, "image/png", got.ct)
	assert.Equal(t, "png", w.String())
	assert.True(t, w.closed)
}

func TestGCSStore_Errors(t *testing.T) {
	_, err := NewGCSStore(context.Background(), Options{})
	require.Error(t, err)

	stubGCS(t, &bufWriter{writeErr: errors.New("broken pipe")})
	st, err := NewGCSStore(context.Background(), Options{GCSBucket: "b"})
	require.NoError(t, err)
	_, err = st.PutObject(context.Background(), "p", []byte("x"), "text/plain")
	assert.ErrorIs(t, err, common.ErrorUpstream)

	stubGCS(t, &bufWriter{closeErr: errors.New("finalize failed")})
	st, err = NewGCSStore(context.Background(), Options{GCSBucket: "b", PublicBaseURL: "https://cdn"})
	require.NoError(t, err)
	_, err = st.PutObject(context.Background(), "p", []byte("x"), "text/plain")
	assert.ErrorIs(t, err, common.ErrorUpstream)
}
