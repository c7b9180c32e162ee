package catalog

import (
	"testing"

	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/stretchr/testify/assert"
)

const driveID = "1AbCdEfGhIjKlMnOpQrStUvWxYz"

func TestDriveLinks(t *testing.T) {
	view := "https://drive.google.com/file/d/" + driveID + "/view?usp=sharing"
	uc := "https://drive.google.com/uc?export=view&id=" + driveID

	id, ok := DriveFileID(view)
	assert.True(t, ok)
	assert.Equal(t, driveID, id)

	id, ok = DriveFileID(uc)
	assert.True(t, ok)
	assert.Equal(t, driveID, id)

	_, ok = DriveFileID("https://drive.google.com/file/d/short/view")
	assert.False(t, ok)

	assert.Equal(t, "https://drive.google.com/file/d/"+driveID+"/preview", PreviewURL(uc))
	assert.Equal(t, "https://drive.google.com/uc?export=download&id="+driveID, DownloadURL(view))
	assert.Equal(t, "https://lh3.googleusercontent.com/d/"+driveID, ImageURL(uc))

	other := "https://storage.googleapis.com/b/a.pdf"
	assert.Equal(t, other, PreviewURL(other))
	assert.Equal(t, other, DownloadURL(other))
	assert.Equal(t, other, ImageURL(other))

	cdn := "https://lh3.googleusercontent.com/d/" + driveID
	assert.Equal(t, cdn, ImageURL(cdn))
}

func TestAttachLinks(t *testing.T) {
	entries := []models.CatalogEntry{
		{Title: "Drive", Locator: "https://drive.google.com/file/d/" + driveID + "/view"},
		{Title: "Bucket", Locator: "https://storage.googleapis.com/b/a.pdf"},
	}
	AttachLinks(entries)

	assert.Equal(t, "https://drive.google.com/file/d/"+driveID+"/preview", entries[0].PreviewURL)
	assert.Equal(t, "https://drive.google.com/uc?export=download&id="+driveID, entries[0].DownloadURL)
	assert.Equal(t, entries[1].Locator, entries[1].PreviewURL)
	assert.Equal(t, entries[1].Locator, entries[1].DownloadURL)
}
