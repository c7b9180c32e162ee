// Package services contains the admin backend's business logic. Services
// read and write through record store repositories vended per call by the
// repository manager, so the same code runs against *sql.DB or *sql.Tx.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/pmdadmin/internal/common"
	"github.com/dmitrijs2005/pmdadmin/internal/server/repositories/records"
	"github.com/dmitrijs2005/pmdadmin/internal/server/repositories/repomanager"
)

// timeNow is a seam for tests.
var timeNow = time.Now

type store struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func (s store) records() records.Repository {
	return s.repomanager.Records(s.db)
}

func list[T any](ctx context.Context, repo records.Repository, collection string, q records.Query) ([]T, error) {
	rows, err := repo.Query(ctx, collection, q)
	if err != nil {
		return nil, fmt.Errorf("error listing %s: %w", collection, err)
	}
	return records.DecodeAll[T](rows)
}

func get[T any](ctx context.Context, repo records.Repository, collection, id string) (T, error) {
	var zero T
	if strings.TrimSpace(id) == "" {
		return zero, fmt.Errorf("%w: id is required", common.ErrorValidation)
	}
	rec, err := repo.GetByID(ctx, collection, id)
	if err != nil {
		return zero, fmt.Errorf("error getting %s/%s: %w", collection, id, err)
	}
	return records.Decode[T](rec)
}

func byName(field string) *records.Order {
	return &records.Order{Field: field}
}

func required(name, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%w: %s is required", common.ErrorValidation, name)
	}
	return nil
}
