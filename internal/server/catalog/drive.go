package catalog

import (
	"regexp"
	"strings"

	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
)

var (
	driveFilePath = regexp.MustCompile(`/file/d/([-\w]{25,})`)
	driveIDParam  = regexp.MustCompile(`[?&]id=([-\w]{25,})`)
)

// DriveFileID extracts the file id from the usual Drive link shapes.
func DriveFileID(link string) (string, bool) {
	if m := driveFilePath.FindStringSubmatch(link); m != nil {
		return m[1], true
	}
	if m := driveIDParam.FindStringSubmatch(link); m != nil {
		return m[1], true
	}
	return "", false
}

// PreviewURL returns the embeddable preview for Drive links and link
// unchanged otherwise.
func PreviewURL(link string) string {
	if id, ok := DriveFileID(link); ok {
		return "https://drive.google.com/file/d/" + id + "/preview"
	}
	return link
}

// DownloadURL returns a direct download link for Drive files.
func DownloadURL(link string) string {
	if id, ok := DriveFileID(link); ok {
		return "https://drive.google.com/uc?export=download&id=" + id
	}
	return link
}

// AttachLinks fills the preview and download links of every entry.
func AttachLinks(entries []models.CatalogEntry) {
	for i := range entries {
		entries[i].PreviewURL = PreviewURL(entries[i].Locator)
		entries[i].DownloadURL = DownloadURL(entries[i].Locator)
	}
}

// ImageURL rewrites Drive-hosted images to the image CDN, which serves
// them without the interstitial redirect.
func ImageURL(link string) string {
	if strings.Contains(link, "lh3.googleusercontent.com") || !strings.Contains(link, "drive.google.com") {
		return link
	}
	if id, ok := DriveFileID(link); ok {
		return "https://lh3.googleusercontent.com/d/" + id
	}
	return link
}
