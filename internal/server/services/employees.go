package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pmdadmin/internal/common"
	"github.com/dmitrijs2005/pmdadmin/internal/logging"
	"github.com/dmitrijs2005/pmdadmin/internal/server/catalog"
	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/dmitrijs2005/pmdadmin/internal/server/ranks"
	"github.com/dmitrijs2005/pmdadmin/internal/server/repositories/records"
	"github.com/dmitrijs2005/pmdadmin/internal/server/repositories/repomanager"
)

type EmployeeService struct {
	store
	log logging.Logger
}

func NewEmployeeService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *EmployeeService {
	return &EmployeeService{store: store{db: db, repomanager: m}, log: log}
}

type EmployeeFilter struct {
	District string
	Station  string
	Rank     string
}

func (f EmployeeFilter) query() records.Query {
	q := records.Query{Order: byName("name")}
	for _, kv := range [][2]string{{"district", f.District}, {"station", f.Station}, {"rank", f.Rank}} {
		if v := strings.TrimSpace(kv[1]); v != "" {
			q.Filters = append(q.Filters, records.Filter{Field: kv[0], Value: v})
		}
	}
	return q
}

// List returns employees by name, one per kgid. The first record of a kgid
// wins; records without a kgid are left out.
func (s *EmployeeService) List(ctx context.Context, f EmployeeFilter) ([]models.Employee, error) {
	all, err := list[models.Employee](ctx, s.records(), common.CollectionEmployees, f.query())
	if err != nil {
		return nil, err
	}
	return s.dedupe(ctx, all), nil
}

func (s *EmployeeService) dedupe(ctx context.Context, all []models.Employee) []models.Employee {
	seen := make(map[string]struct{}, len(all))
	out := make([]models.Employee, 0, len(all))
	for _, e := range all {
		key := kgidKey(e.KGID)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			s.log.Warn(ctx, "duplicate employee kgid, keeping first", "kgid", e.KGID, "id", e.ID)
			continue
		}
		seen[key] = struct{}{}
		e.PhotoURL = catalog.ImageURL(e.PhotoURL)
		out = append(out, e)
	}
	return out
}

func kgidKey(kgid string) string {
	return strings.ToLower(strings.TrimSpace(kgid))
}

func (s *EmployeeService) Get(ctx context.Context, id string) (models.Employee, error) {
	e, err := get[models.Employee](ctx, s.records(), common.CollectionEmployees, id)
	if err != nil {
		return e, err
	}
	e.PhotoURL = catalog.ImageURL(e.PhotoURL)
	return e, nil
}

// prepareEmployee validates e against the rank master and fills the derived
// fields. It runs before any write.
func prepareEmployee(ctx context.Context, repo records.Repository, e *models.Employee) error {
	e.KGID = strings.TrimSpace(e.KGID)
	e.Name = strings.TrimSpace(e.Name)
	e.Rank = strings.TrimSpace(e.Rank)
	e.MetalNumber = strings.TrimSpace(e.MetalNumber)
	if err := required("kgid", e.KGID); err != nil {
		return err
	}
	if err := required("name", e.Name); err != nil {
		return err
	}

	if e.Rank != "" {
		rs, err := loadRanks(ctx, repo)
		if err != nil {
			return err
		}
		if err := ranks.CheckSecondaryID(rs, e.Rank, e.MetalNumber); err != nil {
			return err
		}
	}

	e.DisplayRank = displayRank(e.Rank, e.MetalNumber)
	e.PhotoURL = catalog.ImageURL(strings.TrimSpace(e.PhotoURL))
	return nil
}

func displayRank(rank, metal string) string {
	if rank != "" && metal != "" {
		return rank + " " + metal
	}
	return rank
}

func ensureUniqueKGID(ctx context.Context, repo records.Repository, kgid, selfID string) error {
	rows, err := repo.Query(ctx, common.CollectionEmployees, records.Query{
		Filters: []records.Filter{{Field: "kgid", Value: kgid}},
	})
	if err != nil {
		return fmt.Errorf("error checking kgid: %w", err)
	}
	for _, r := range rows {
		if id, _ := r.String(records.FieldID); id != selfID {
			return fmt.Errorf("%w: employee with kgid %s already exists", common.ErrorConflict, kgid)
		}
	}
	return nil
}

func (s *EmployeeService) Create(ctx context.Context, e models.Employee) (models.Employee, error) {
	repo := s.records()
	if err := prepareEmployee(ctx, repo, &e); err != nil {
		return e, err
	}
	if err := ensureUniqueKGID(ctx, repo, e.KGID, ""); err != nil {
		return e, err
	}

	now := timeNow().UTC()
	e.CreatedAt, e.UpdatedAt = &now, &now
	rec, err := records.Encode(e)
	if err != nil {
		return e, err
	}
	id, err := repo.Create(ctx, common.CollectionEmployees, rec)
	if err != nil {
		return e, fmt.Errorf("error creating employee: %w", err)
	}
	e.ID = id
	return e, nil
}

// Update replaces the editable fields of employee id. createdAt is kept.
func (s *EmployeeService) Update(ctx context.Context, id string, e models.Employee) (models.Employee, error) {
	if err := required("id", id); err != nil {
		return e, err
	}
	repo := s.records()
	if err := prepareEmployee(ctx, repo, &e); err != nil {
		return e, err
	}
	if err := ensureUniqueKGID(ctx, repo, e.KGID, id); err != nil {
		return e, err
	}

	now := timeNow().UTC()
	e.ID, e.CreatedAt, e.UpdatedAt = id, nil, &now
	rec, err := records.Encode(e)
	if err != nil {
		return e, err
	}
	// Update merges, so cleared optional fields must be sent as blanks.
	blankMissing(rec, "mobile1", "mobile2", "landline", "email", "metalNumber", "displayRank",
		"district", "station", "bloodGroup", "photoUrl")
	if err := repo.Update(ctx, common.CollectionEmployees, id, rec); err != nil {
		return e, fmt.Errorf("error updating employee %s: %w", id, err)
	}
	return e, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if err := required("id", id); err != nil {
		return err
	}
	if err := s.records().Delete(ctx, common.CollectionEmployees, id); err != nil {
		return fmt.Errorf("error deleting employee %s: %w", id, err)
	}
	return nil
}

func blankMissing(rec models.RawRecord, keys ...string) {
	for _, k := range keys {
		if _, ok := rec[k]; !ok {
			rec[k] = ""
		}
	}
}
