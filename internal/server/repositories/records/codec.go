package records

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
)

// Decode converts a raw record into T through its JSON tags.
func Decode[T any](rec models.RawRecord) (T, error) {
	var out T
	b, err := json.Marshal(rec)
	if err != nil {
		return out, fmt.Errorf("encode record: %w", err)
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("decode record: %w", err)
	}
	return out, nil
}

// DecodeAll decodes every record, stopping at the first failure.
func DecodeAll[T any](recs []models.RawRecord) ([]T, error) {
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		v, err := Decode[T](rec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Encode converts v into a raw record through its JSON tags. An "id" key
// produced by v is dropped; ids travel separately.
func Encode(v any) (models.RawRecord, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	rec := models.RawRecord{}
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	delete(rec, FieldID)
	return rec, nil
}
