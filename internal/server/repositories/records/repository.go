// Package records implements the record store: a generic document store
// keyed by (collection, id) with a JSON payload, used for every collection
// the admin backend manages.
package records

import (
	"context"

	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
)

// FieldCreatedAt is served from the created_at column rather than the
// payload so that ordering by creation time uses the index.
const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// Filter matches records whose field equals Value.
type Filter struct {
	Field string
	Value any
}

// Order sorts by a payload field, or by FieldCreatedAt.
type Order struct {
	Field string
	Desc  bool
}

// Query narrows a collection read. The zero value means all records in
// unspecified order.
type Query struct {
	Filters []Filter
	Order   *Order
}

// Repository is the record store contract. Records returned by it always
// carry FieldID and FieldCreatedAt (a time.Time).
type Repository interface {
	Query(ctx context.Context, collection string, q Query) ([]models.RawRecord, error)
	GetByID(ctx context.Context, collection, id string) (models.RawRecord, error)
	Create(ctx context.Context, collection string, data models.RawRecord) (string, error)
	// Put creates a record under a caller-chosen id and fails with
	// common.ErrorConflict when the id is taken.
	Put(ctx context.Context, collection, id string, data models.RawRecord) error
	// Update merges partial into the stored payload.
	Update(ctx context.Context, collection, id string, partial models.RawRecord) error
	Delete(ctx context.Context, collection, id string) error
}
