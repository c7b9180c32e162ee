package catalog

import (
	"strings"
	"testing"

	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/stretchr/testify/assert"
)

func TestClassifyLocator(t *testing.T) {
	tests := map[string]LocatorClass{
		"https://storage.googleapis.com/bucket/a.pdf": ClassFirebase,
		"https://pmd.firebasestorage.app/o/a.pdf":     ClassFirebase,
		"https://drive.google.com/file/d/abc/view":    ClassGDrive,
		"https://lh3.googleusercontent.com/d/abc":     ClassGDrive,
		"https://example.org/a.pdf":                   ClassUnknown,
		"":                                            ClassUnknown,
	}
	for in, want := range tests {
		assert.Equal(t, want, ClassifyLocator(in), in)
	}
}

func TestIdentityKey_Precedence(t *testing.T) {
	fileID := "F-9"

	tests := []struct {
		name  string
		entry models.CatalogEntry
		kind  models.SourceKind
		want  string
	}{
		{
			name:  "store id first",
			entry: models.CatalogEntry{RecordID: "d1", SourceFileID: &fileID, Locator: "https://x"},
			kind:  models.SourceStore,
			want:  "store_d1",
		},
		{
			name:  "store file id",
			entry: models.CatalogEntry{SourceFileID: &fileID, Locator: "https://x"},
			kind:  models.SourceStore,
			want:  "store_F-9",
		},
		{
			name:  "catalog ignores record id",
			entry: models.CatalogEntry{RecordID: "d1", SourceFileID: &fileID, Locator: "https://x"},
			kind:  models.SourceCatalog,
			want:  "catalog_F-9",
		},
		{
			name:  "locator classified",
			entry: models.CatalogEntry{Locator: "https://drive.google.com/file/d/abc/view"},
			kind:  models.SourceCatalog,
			want:  "gdrive_https://drive.google.com/file/d/abc/view",
		},
		{
			name:  "empty file id falls through",
			entry: models.CatalogEntry{SourceFileID: new(string), Locator: "https://storage.googleapis.com/b/a"},
			kind:  models.SourceCatalog,
			want:  "firebase_https://storage.googleapis.com/b/a",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IdentityKey(tc.entry, tc.kind))
		})
	}
}

func TestIdentityKey_LastResortNeverCollides(t *testing.T) {
	e := models.CatalogEntry{Title: "Form"}
	a := IdentityKey(e, models.SourceCatalog)
	b := IdentityKey(e, models.SourceCatalog)

	assert.True(t, strings.HasPrefix(a, "catalog_Form_"), a)
	assert.NotEqual(t, a, b)
}
