// Package models holds the records the admin backend reads and writes.
package models

// RawRecord is one stored or fetched record before any typing. Keys are the
// field names exactly as the source wrote them.
type RawRecord map[string]any

// String returns the value of key when it is a string.
func (r RawRecord) String(key string) (string, bool) {
	v, ok := r[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
