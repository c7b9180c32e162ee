package catalog

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/dmitrijs2005/pmdadmin/internal/common"
	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
)

// LocatorClass is the hosting backend a locator points at.
type LocatorClass string

const (
	ClassFirebase LocatorClass = "firebase"
	ClassGDrive   LocatorClass = "gdrive"
	ClassUnknown  LocatorClass = "unknown"
)

// ClassifyLocator matches on host substrings.
func ClassifyLocator(locator string) LocatorClass {
	switch {
	case strings.Contains(locator, "storage.googleapis.com"), strings.Contains(locator, "firebasestorage.app"):
		return ClassFirebase
	case strings.Contains(locator, "drive.google.com"), strings.Contains(locator, "googleusercontent.com"):
		return ClassGDrive
	default:
		return ClassUnknown
	}
}

var fallbackSeq atomic.Uint64

// IdentityKey computes the de-duplication key for e. Precedence: the record
// store id, then the external file id, then the classified locator, then
// a title-based key with a random suffix that never collides.
func IdentityKey(e models.CatalogEntry, kind models.SourceKind) string {
	if kind == models.SourceStore && e.RecordID != "" {
		return "store_" + e.RecordID
	}
	if e.SourceFileID != nil && *e.SourceFileID != "" {
		if kind == models.SourceStore {
			return "store_" + *e.SourceFileID
		}
		return "catalog_" + *e.SourceFileID
	}
	if e.Locator != "" {
		return string(ClassifyLocator(e.Locator)) + "_" + e.Locator
	}
	suffix, err := common.MakeRandHexString(6)
	if err != nil {
		suffix = "seq" + strconv.FormatUint(fallbackSeq.Add(1), 10)
	}
	return string(kind) + "_" + e.Title + "_" + suffix
}
