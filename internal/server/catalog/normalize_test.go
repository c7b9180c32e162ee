package catalog

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNormalize_AliasPrecedence(t *testing.T) {
	raw := models.RawRecord{
		"Title":        "Sheet title",
		"title":        "Lower title",
		"URL":          "https://drive.google.com/file/d/abc/view",
		"imageUrl":     "https://ignored.example/x.png",
		"Category":     "Circulars",
		"Description":  "",
		"UploadedBy":   "script@y.com",
		"FileId":       "F-1",
		"UploadedDate": "2024-02-03",
	}

	got, ok := Normalize(raw, models.SourceCatalog)
	require.True(t, ok)

	created := time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)
	want := models.CatalogEntry{
		Title:        "Lower title",
		Locator:      "https://drive.google.com/file/d/abc/view",
		Category:     strPtr("Circulars"),
		Description:  strPtr(""),
		UploadedBy:   strPtr("script@y.com"),
		SourceFileID: strPtr("F-1"),
		CreatedAt:    &created,
		Source:       models.SourceCatalog,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_TitleFallbacks(t *testing.T) {
	got, ok := Normalize(models.RawRecord{"Name": "Photo 1", "imageUrl": "https://x/y.png"}, models.SourceCatalog)
	require.True(t, ok)
	assert.Equal(t, "Photo 1", got.Title)

	got, ok = Normalize(models.RawRecord{"url": "https://x/y.pdf", "title": "   "}, models.SourceCatalog)
	require.True(t, ok)
	assert.Equal(t, DefaultTitle, got.Title)
}

func TestNormalize_LocatorRequired(t *testing.T) {
	cases := []models.RawRecord{
		{"title": "no url"},
		{"title": "blank", "url": "  ", "URL": "", "imageUrl": ""},
		{"title": "wrong type", "url": true},
		nil,
	}
	for _, raw := range cases {
		_, ok := Normalize(raw, models.SourceCatalog)
		assert.False(t, ok, "%v", raw)
	}

	got, ok := Normalize(models.RawRecord{"url": "", "URL": " https://x/a.pdf "}, models.SourceCatalog)
	require.True(t, ok)
	assert.Equal(t, "https://x/a.pdf", got.Locator)
}

func TestNormalize_SoftDelete(t *testing.T) {
	for _, flag := range []string{"deleted", "Deleted", "DELETED", " deleted "} {
		_, ok := Normalize(models.RawRecord{
			"Title": "X", "URL": "https://drive.google.com/uc?id=ABC", "Delete": flag,
		}, models.SourceCatalog)
		assert.False(t, ok, flag)
	}

	_, ok := Normalize(models.RawRecord{"title": "X", "url": "https://x", "delete": "deleted"}, models.SourceStore)
	assert.False(t, ok)

	got, ok := Normalize(models.RawRecord{"Title": "X", "URL": "https://x", "Delete": "keep"}, models.SourceCatalog)
	require.True(t, ok)
	assert.Equal(t, "X", got.Title)
}

func TestNormalize_CreatedAt(t *testing.T) {
	native := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	got, _ := Normalize(models.RawRecord{"url": "u", "createdAt": native, "uploadedDate": "2020-01-01"}, models.SourceStore)
	require.NotNil(t, got.CreatedAt)
	assert.True(t, native.Equal(*got.CreatedAt), "native timestamp wins")

	got, _ = Normalize(models.RawRecord{"url": "u", "createdAt": map[string]any{"_seconds": float64(native.Unix())}}, models.SourceCatalog)
	require.NotNil(t, got.CreatedAt)
	assert.True(t, native.Equal(*got.CreatedAt))

	got, _ = Normalize(models.RawRecord{"url": "u", "UploadedDate": "yesterday-ish"}, models.SourceCatalog)
	assert.Nil(t, got.CreatedAt, "unparseable date degrades to absent")

	got, _ = Normalize(models.RawRecord{"url": "u"}, models.SourceCatalog)
	assert.Nil(t, got.CreatedAt)
}

func TestNormalize_OptionalFieldsStayAbsent(t *testing.T) {
	got, ok := Normalize(models.RawRecord{"url": "u", "title": "t"}, models.SourceCatalog)
	require.True(t, ok)
	assert.Nil(t, got.Category)
	assert.Nil(t, got.Description)
	assert.Nil(t, got.UploadedBy)
	assert.Nil(t, got.SourceFileID)
}

func TestNormalize_NumericCells(t *testing.T) {
	got, ok := Normalize(models.RawRecord{"URL": "u", "Title": float64(2024), "FileID": float64(17)}, models.SourceCatalog)
	require.True(t, ok)
	assert.Equal(t, "2024", got.Title)
	require.NotNil(t, got.SourceFileID)
	assert.Equal(t, "17", *got.SourceFileID)
}

func TestNormalize_StoreRecordID(t *testing.T) {
	got, ok := Normalize(models.RawRecord{"id": "d1", "url": "u"}, models.SourceStore)
	require.True(t, ok)
	assert.Equal(t, "d1", got.RecordID)

	got, ok = Normalize(models.RawRecord{"id": "row-7", "url": "u"}, models.SourceCatalog)
	require.True(t, ok)
	assert.Empty(t, got.RecordID, "catalog rows carry no store id")
}

func TestNormalize_DoesNotMutateAndIsDeterministic(t *testing.T) {
	raw := models.RawRecord{"Title": "A", "URL": "https://x/a", "UploadedDate": "2024-01-01"}
	snapshot := models.RawRecord{}
	for k, v := range raw {
		snapshot[k] = v
	}

	a, _ := Normalize(raw, models.SourceCatalog)
	b, _ := Normalize(raw, models.SourceCatalog)

	assert.Equal(t, snapshot, raw)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("non-deterministic output:\n%s", diff)
	}
}
