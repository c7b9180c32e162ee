package models

import "time"

// SourceKind names where a catalog row came from.
type SourceKind string

const (
	SourceStore   SourceKind = "store"
	SourceCatalog SourceKind = "catalog"
)

// CatalogKind selects the documents or the gallery listing.
type CatalogKind string

const (
	KindDocuments CatalogKind = "documents"
	KindGallery   CatalogKind = "gallery"
)

// CatalogEntry is a document or gallery image after normalization. It is
// recomputed on every fetch and never persisted. Rows the catalog flags as
// deleted are dropped during normalization and never become entries.
type CatalogEntry struct {
	Identity     string     `json:"identity"`
	Title        string     `json:"title"`
	Locator      string     `json:"url"`
	Category     *string    `json:"category,omitempty"`
	Description  *string    `json:"description,omitempty"`
	UploadedBy   *string    `json:"uploadedBy,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
	SourceFileID *string    `json:"sourceFileId,omitempty"`

	// PreviewURL and DownloadURL are the embeddable and direct forms of
	// Locator. They equal Locator for files not hosted on Drive.
	PreviewURL  string `json:"previewUrl,omitempty"`
	DownloadURL string `json:"downloadUrl,omitempty"`

	Source   SourceKind `json:"source"`
	RecordID string     `json:"recordId,omitempty"`
}
