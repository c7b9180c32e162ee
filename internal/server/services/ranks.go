package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pmdadmin/internal/common"
	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/dmitrijs2005/pmdadmin/internal/server/ranks"
	"github.com/dmitrijs2005/pmdadmin/internal/server/repositories/records"
	"github.com/dmitrijs2005/pmdadmin/internal/server/repositories/repomanager"
)

// RankService maintains the rank master.
type RankService struct {
	store
}

func NewRankService(db *sql.DB, m repomanager.RepositoryManager) *RankService {
	return &RankService{store: store{db: db, repomanager: m}}
}

// loadRanks reads the rank master with the write-time rules applied, so
// seeded or imported rows behave like ones created through the API.
func loadRanks(ctx context.Context, repo records.Repository) ([]models.RankDefinition, error) {
	rs, err := list[models.RankDefinition](ctx, repo, common.CollectionRanks, records.Query{})
	if err != nil {
		return nil, err
	}
	for i := range rs {
		rs[i] = ranks.Sanitize(rs[i])
	}
	return rs, nil
}

// List returns active ranks by seniority, or every rank when all is set.
func (s *RankService) List(ctx context.Context, all bool) ([]models.RankDefinition, error) {
	rs, err := loadRanks(ctx, s.records())
	if err != nil {
		return nil, err
	}
	if all {
		ranks.SortBySeniority(rs)
		return rs, nil
	}
	return ranks.ActiveSorted(rs), nil
}

func (s *RankService) Get(ctx context.Context, id string) (models.RankDefinition, error) {
	return get[models.RankDefinition](ctx, s.records(), common.CollectionRanks, id)
}

// Create stores a new rank under its id; an existing id is a conflict.
func (s *RankService) Create(ctx context.Context, r models.RankDefinition) (models.RankDefinition, error) {
	r = ranks.Sanitize(r)
	if err := ranks.Validate(r); err != nil {
		return r, err
	}
	rec, err := records.Encode(r)
	if err != nil {
		return r, err
	}
	if err := s.records().Put(ctx, common.CollectionRanks, r.ID, rec); err != nil {
		return r, fmt.Errorf("error creating rank %s: %w", r.ID, err)
	}
	return r, nil
}

// Update rewrites the rank stored under id. The id in the body is ignored.
func (s *RankService) Update(ctx context.Context, id string, r models.RankDefinition) (models.RankDefinition, error) {
	r.ID = strings.TrimSpace(id)
	r = ranks.Sanitize(r)
	if err := ranks.Validate(r); err != nil {
		return r, err
	}
	rec, err := records.Encode(r)
	if err != nil {
		return r, err
	}
	if err := s.records().Update(ctx, common.CollectionRanks, r.ID, rec); err != nil {
		return r, fmt.Errorf("error updating rank %s: %w", r.ID, err)
	}
	return r, nil
}

// Deactivate hides a rank from pickers without deleting it, so employees
// already holding it still resolve.
func (s *RankService) Deactivate(ctx context.Context, id string) error {
	if err := required("rank id", id); err != nil {
		return err
	}
	if err := s.records().Update(ctx, common.CollectionRanks, id, models.RawRecord{"isActive": false}); err != nil {
		return fmt.Errorf("error deactivating rank %s: %w", id, err)
	}
	return nil
}

// Resolution is the answer to a rank label lookup.
type Resolution struct {
	Rank                *models.RankDefinition `json:"rank"`
	RequiresSecondaryID bool                   `json:"requiresSecondaryId"`
}

func (s *RankService) Resolve(ctx context.Context, label string) (Resolution, error) {
	rs, err := loadRanks(ctx, s.records())
	if err != nil {
		return Resolution{}, err
	}
	r, ok := ranks.FindRank(rs, label)
	if !ok {
		return Resolution{}, nil
	}
	return Resolution{Rank: &r, RequiresSecondaryID: r.RequiresSecondaryID}, nil
}
