// Package catalog merges the documents and gallery listings held in the
// record store with the ones served by the remote catalog into a single
// de-duplicated, normalized and ordered list.
package catalog

import (
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/dmitrijs2005/pmdadmin/internal/timex"
)

// DefaultTitle is used for rows that have a locator but no title.
const DefaultTitle = "Untitled"

const deletedMarker = "deleted"

// Candidate source keys per canonical field, first match wins.
var (
	titleKeys        = []string{"title", "Title", "name", "Name"}
	locatorKeys      = []string{"url", "URL", "imageUrl"}
	deleteKeys       = []string{"Delete", "delete"}
	createdAtKeys    = []string{"createdAt"}
	uploadedDateKeys = []string{"uploadedDate", "UploadedDate"}
	categoryKeys     = []string{"category", "Category"}
	descriptionKeys  = []string{"description", "Description"}
	uploadedByKeys   = []string{"uploadedBy", "UploadedBy"}
	fileIDKeys       = []string{"sourceFileId", "fileId", "FileId", "FileID"}
)

// Normalize maps a raw row onto a CatalogEntry. It reports false when the
// row must be left out: it has no usable locator or it is soft-deleted.
// raw is not modified and the result does not depend on the current time.
func Normalize(raw models.RawRecord, kind models.SourceKind) (models.CatalogEntry, bool) {
	if raw == nil {
		return models.CatalogEntry{}, false
	}

	if flag, ok := firstString(raw, deleteKeys); ok && strings.EqualFold(strings.TrimSpace(flag), deletedMarker) {
		return models.CatalogEntry{}, false
	}

	locator, ok := firstNonEmpty(raw, locatorKeys)
	if !ok {
		return models.CatalogEntry{}, false
	}

	title, ok := firstNonEmpty(raw, titleKeys)
	if !ok {
		title = DefaultTitle
	}

	e := models.CatalogEntry{
		Title:        title,
		Locator:      locator,
		Category:     optional(raw, categoryKeys),
		Description:  optional(raw, descriptionKeys),
		UploadedBy:   optional(raw, uploadedByKeys),
		SourceFileID: optional(raw, fileIDKeys),
		CreatedAt:    createdAt(raw),
		Source:       kind,
	}
	if kind == models.SourceStore {
		if id, ok := firstNonEmpty(raw, []string{"id"}); ok {
			e.RecordID = id
		}
	}
	return e, true
}

// scalar renders strings and numbers; sheet cells often arrive as numbers.
func scalar(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	default:
		return "", false
	}
}

func firstString(raw models.RawRecord, keys []string) (string, bool) {
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			if s, ok := scalar(v); ok {
				return s, true
			}
		}
	}
	return "", false
}

func firstNonEmpty(raw models.RawRecord, keys []string) (string, bool) {
	for _, k := range keys {
		if s, ok := scalar(raw[k]); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s), true
		}
	}
	return "", false
}

// optional returns nil when no candidate key is present. A present but
// empty value stays an empty string.
func optional(raw models.RawRecord, keys []string) *string {
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			if s, ok := scalar(v); ok {
				s = strings.TrimSpace(s)
				return &s
			}
		}
	}
	return nil
}

func createdAt(raw models.RawRecord) *time.Time {
	for _, k := range createdAtKeys {
		if t, ok := timestamp(raw[k]); ok {
			return &t
		}
	}
	for _, k := range uploadedDateKeys {
		if s, ok := raw[k].(string); ok {
			if t, ok := timex.ParseLoose(s); ok {
				return &t
			}
		}
	}
	return nil
}

// timestamp accepts a time value, a date string, or an exported document
// database timestamp ({"seconds": ..., "nanoseconds": ...}).
func timestamp(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return *t, true
	case string:
		return timex.ParseLoose(t)
	case map[string]any:
		for _, k := range []string{"seconds", "_seconds"} {
			if secs, ok := t[k].(float64); ok {
				var nanos float64
				if n, ok := t["nanoseconds"].(float64); ok {
					nanos = n
				} else if n, ok := t["_nanoseconds"].(float64); ok {
					nanos = n
				}
				return time.Unix(int64(secs), int64(nanos)).UTC(), true
			}
		}
	}
	return time.Time{}, false
}
