package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/pmdadmin/internal/common"
	"github.com/dmitrijs2005/pmdadmin/internal/dbx"
	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/dmitrijs2005/pmdadmin/internal/server/repositories/records"
	"github.com/dmitrijs2005/pmdadmin/internal/server/repositories/repomanager"
)

// RegistrationService reviews self-submitted employee profiles.
type RegistrationService struct {
	store
}

func NewRegistrationService(db *sql.DB, m repomanager.RepositoryManager) *RegistrationService {
	return &RegistrationService{store: store{db: db, repomanager: m}}
}

// ListPending returns registrations newest first, falling back to store
// order when the ordered read fails.
func (s *RegistrationService) ListPending(ctx context.Context) ([]models.PendingRegistration, error) {
	repo := s.records()
	out, err := list[models.PendingRegistration](ctx, repo, common.CollectionPendingRegistrations, records.Query{
		Order: &records.Order{Field: records.FieldCreatedAt, Desc: true},
	})
	if err == nil {
		return out, nil
	}
	return list[models.PendingRegistration](ctx, repo, common.CollectionPendingRegistrations, records.Query{})
}

// Approve turns registration id into an approved employee and removes the
// registration, both in one transaction.
func (s *RegistrationService) Approve(ctx context.Context, id string) (models.Employee, error) {
	reg, err := get[models.PendingRegistration](ctx, s.records(), common.CollectionPendingRegistrations, id)
	if err != nil {
		return models.Employee{}, err
	}

	e := reg.Employee
	e.ID = ""
	e.IsApproved = true

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Records(tx)
		if err := prepareEmployee(ctx, repo, &e); err != nil {
			return err
		}
		if err := ensureUniqueKGID(ctx, repo, e.KGID, ""); err != nil {
			return err
		}
		now := timeNow().UTC()
		e.CreatedAt, e.UpdatedAt = &now, &now

		rec, err := records.Encode(e)
		if err != nil {
			return err
		}
		newID, err := repo.Create(ctx, common.CollectionEmployees, rec)
		if err != nil {
			return fmt.Errorf("error creating employee: %w", err)
		}
		e.ID = newID

		if err := repo.Delete(ctx, common.CollectionPendingRegistrations, id); err != nil {
			return fmt.Errorf("error deleting registration %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return models.Employee{}, err
	}
	return e, nil
}

func (s *RegistrationService) Reject(ctx context.Context, id string) error {
	if err := required("id", id); err != nil {
		return err
	}
	if err := s.records().Delete(ctx, common.CollectionPendingRegistrations, id); err != nil {
		return fmt.Errorf("error deleting registration %s: %w", id, err)
	}
	return nil
}
