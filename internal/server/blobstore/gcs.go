package blobstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/dmitrijs2005/pmdadmin/internal/common"
	"google.golang.org/api/option"
)

// newObjectWriter is a seam for tests.
var newObjectWriter = func(ctx context.Context, c *storage.Client, bucket, path, contentType string) io.WriteCloser {
	w := c.Bucket(bucket).Object(path).NewWriter(ctx)
	w.ContentType = contentType
	return w
}

var newStorageClient = storage.NewClient

// GCSStore writes to a Google Cloud Storage bucket, the storage behind the
// mobile app's document database project.
type GCSStore struct {
	client    *storage.Client
	bucket    string
	publicURL string
}

func NewGCSStore(ctx context.Context, o Options) (*GCSStore, error) {
	if o.GCSBucket == "" {
		return nil, fmt.Errorf("gcs bucket is not configured")
	}
	opts := []option.ClientOption{option.WithScopes(storage.ScopeReadWrite)}
	if creds := strings.TrimSpace(o.GCSCredentials); creds != "" {
		if strings.HasPrefix(creds, "{") {
			opts = append(opts, option.WithCredentialsJSON([]byte(creds)))
		} else {
			opts = append(opts, option.WithCredentialsFile(creds))
		}
	}
	client, err := newStorageClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	base := o.PublicBaseURL
	if base == "" {
		base = "https://storage.googleapis.com/" + o.GCSBucket
	}
	return &GCSStore{client: client, bucket: o.GCSBucket, publicURL: base}, nil
}

func (g *GCSStore) PutObject(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	w := newObjectWriter(ctx, g.client, g.bucket, path, contentType)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("%w: failed to write data to GCS: %v", common.ErrorUpstream, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("%w: failed to close GCS writer: %v", common.ErrorUpstream, err)
	}
	return joinURL(g.publicURL, path), nil
}

// Close releases the storage client.
func (g *GCSStore) Close() error {
	return g.client.Close()
}
