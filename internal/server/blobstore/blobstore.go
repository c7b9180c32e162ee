// Package blobstore uploads file bytes to object storage and returns the
// public URL they are served from.
package blobstore

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/dmitrijs2005/pmdadmin/internal/common"
	"github.com/google/uuid"
)

// Store is an object store that returns a public URL for what it stores.
type Store interface {
	PutObject(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

const (
	MaxDocumentBytes = 10 << 20
	MaxImageBytes    = 5 << 20
)

var imageTypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// CheckSize rejects payloads above limit before anything is sent.
func CheckSize(size, limit int) error {
	if size == 0 {
		return fmt.Errorf("%w: empty file", common.ErrorValidation)
	}
	if size > limit {
		return fmt.Errorf("%w: %d bytes exceeds the %d MB limit", common.ErrorTooLarge, size, limit>>20)
	}
	return nil
}

// CheckImageType accepts png, jpeg, gif and webp.
func CheckImageType(contentType string) error {
	if _, ok := imageTypes[normalizeType(contentType)]; !ok {
		return fmt.Errorf("%w: unsupported image type %q", common.ErrorValidation, contentType)
	}
	return nil
}

// ObjectPath returns prefix/<id>.<ext>, taking the extension from the
// original file name or, failing that, the content type. A new uuid is used
// when id is empty.
func ObjectPath(prefix, id, filename, contentType string) string {
	if id == "" {
		id = uuid.NewString()
	}
	return path.Join(prefix, id+"."+Extension(filename, contentType))
}

// Extension guesses a lowercase file extension, "bin" when nothing fits.
func Extension(filename, contentType string) string {
	if ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), "."); ext != "" {
		return ext
	}
	if ext := extensionFor(contentType); ext != "" {
		return ext
	}
	return "bin"
}

func extensionFor(contentType string) string {
	ct := normalizeType(contentType)
	if ext, ok := imageTypes[ct]; ok {
		return ext
	}
	switch ct {
	case "application/pdf":
		return "pdf"
	case "application/msword":
		return "doc"
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return "docx"
	case "application/vnd.ms-excel":
		return "xls"
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return "xlsx"
	case "application/vnd.ms-powerpoint":
		return "ppt"
	case "application/vnd.openxmlformats-officedocument.presentationml.presentation":
		return "pptx"
	case "text/plain":
		return "txt"
	}
	return ""
}

func normalizeType(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}

// Options selects and configures a backend.
type Options struct {
	Backend string // "s3" or "gcs"

	S3AccessKey    string
	S3SecretKey    string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string

	GCSBucket      string
	GCSCredentials string

	// PublicBaseURL overrides the derived public URL prefix (a CDN domain).
	PublicBaseURL string
}

// New builds the configured backend.
func New(ctx context.Context, o Options) (Store, error) {
	switch strings.ToLower(o.Backend) {
	case "s3", "":
		return NewS3Store(ctx, o)
	case "gcs":
		return NewGCSStore(ctx, o)
	default:
		return nil, fmt.Errorf("unknown blob backend %q", o.Backend)
	}
}

func joinURL(base, p string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(p, "/")
}
