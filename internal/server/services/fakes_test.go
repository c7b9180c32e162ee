package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/pmdadmin/internal/common"
	"github.com/dmitrijs2005/pmdadmin/internal/dbx"
	"github.com/dmitrijs2005/pmdadmin/internal/logging"
	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/dmitrijs2005/pmdadmin/internal/server/repositories/records"
	"github.com/dmitrijs2005/pmdadmin/internal/server/repositories/repomanager"
	"go.uber.org/zap"
)

// memRepo is an in-memory records.Repository. Records keep insertion order.
type memRepo struct {
	mu   sync.Mutex
	data map[string][]models.RawRecord
	seq  int

	// errs fails an operation by name ("query", "ordered", "get", "create",
	// "put", "update", "delete") for every collection, or by "op:collection".
	errs map[string]error
}

func newMemRepo() *memRepo {
	return &memRepo{data: map[string][]models.RawRecord{}, errs: map[string]error{}}
}

func (m *memRepo) fail(op, collection string) error {
	if err := m.errs[op+":"+collection]; err != nil {
		return err
	}
	return m.errs[op]
}

func clone(r models.RawRecord) models.RawRecord {
	out := make(models.RawRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func (m *memRepo) seed(collection, id string, rec models.RawRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec = clone(rec)
	rec[records.FieldID] = id
	m.data[collection] = append(m.data[collection], rec)
}

func (m *memRepo) all(collection string) []models.RawRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.RawRecord, 0, len(m.data[collection]))
	for _, r := range m.data[collection] {
		out = append(out, clone(r))
	}
	return out
}

func (m *memRepo) index(collection, id string) int {
	for i, r := range m.data[collection] {
		if r[records.FieldID] == id {
			return i
		}
	}
	return -1
}

func (m *memRepo) Query(ctx context.Context, collection string, q records.Query) ([]models.RawRecord, error) {
	if err := m.fail("query", collection); err != nil {
		return nil, err
	}
	if q.Order != nil {
		if err := m.fail("ordered", collection); err != nil {
			return nil, err
		}
	}
	var out []models.RawRecord
	for _, r := range m.all(collection) {
		keep := true
		for _, f := range q.Filters {
			if fmt.Sprint(r[f.Field]) != fmt.Sprint(f.Value) {
				keep = false
			}
		}
		if keep {
			out = append(out, r)
		}
	}
	if q.Order != nil {
		field, desc := q.Order.Field, q.Order.Desc
		sort.SliceStable(out, func(i, j int) bool {
			a, b := fmt.Sprint(out[i][field]), fmt.Sprint(out[j][field])
			if desc {
				return a > b
			}
			return a < b
		})
	}
	return out, nil
}

func (m *memRepo) GetByID(ctx context.Context, collection, id string) (models.RawRecord, error) {
	if err := m.fail("get", collection); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.index(collection, id); i >= 0 {
		return clone(m.data[collection][i]), nil
	}
	return nil, common.ErrorNotFound
}

func (m *memRepo) Create(ctx context.Context, collection string, data models.RawRecord) (string, error) {
	if err := m.fail("create", collection); err != nil {
		return "", err
	}
	m.mu.Lock()
	m.seq++
	id := collection + "-" + strconv.Itoa(m.seq)
	m.mu.Unlock()
	m.seed(collection, id, data)
	return id, nil
}

func (m *memRepo) Put(ctx context.Context, collection, id string, data models.RawRecord) error {
	if err := m.fail("put", collection); err != nil {
		return err
	}
	m.mu.Lock()
	exists := m.index(collection, id) >= 0
	m.mu.Unlock()
	if exists {
		return common.ErrorConflict
	}
	m.seed(collection, id, data)
	return nil
}

func (m *memRepo) Update(ctx context.Context, collection, id string, partial models.RawRecord) error {
	if err := m.fail("update", collection); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(collection, id)
	if i < 0 {
		return common.ErrorNotFound
	}
	for k, v := range partial {
		m.data[collection][i][k] = v
	}
	return nil
}

func (m *memRepo) Delete(ctx context.Context, collection, id string) error {
	if err := m.fail("delete", collection); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(collection, id)
	if i < 0 {
		return common.ErrorNotFound
	}
	m.data[collection] = append(m.data[collection][:i], m.data[collection][i+1:]...)
	return nil
}

// fakeRM vends the same memRepo for every DBTX and remembers what it saw.
type fakeRM struct {
	repomanager.RepositoryManager
	repo *memRepo
	mu   sync.Mutex
	seen []dbx.DBTX
}

func (f *fakeRM) Records(db dbx.DBTX) records.Repository {
	f.mu.Lock()
	f.seen = append(f.seen, db)
	f.mu.Unlock()
	return f.repo
}

func (f *fakeRM) sawTx() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.seen {
		if _, ok := d.(*sql.Tx); ok {
			return true
		}
	}
	return false
}

func newFakeRM() *fakeRM {
	return &fakeRM{repo: newMemRepo()}
}

func nopLogger() logging.Logger {
	return logging.NewZapLoggerFrom(zap.NewNop())
}

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func freezeTime(t *testing.T) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return fixedNow }
	t.Cleanup(func() { timeNow = orig })
}

func seedRanks(repo *memRepo) {
	repo.seed(common.CollectionRanks, "PC", models.RawRecord{
		"rank_id": "PC", "rank_label": "Police Constable", "staffType": "POLICE",
		"equivalent_rank": "PC", "seniority_order": 10, "aliases": []any{"Constable"},
		"requiresMetalNumber": true, "isActive": true,
	})
	repo.seed(common.CollectionRanks, "SI", models.RawRecord{
		"rank_id": "SI", "rank_label": "Sub Inspector", "staffType": "POLICE",
		"equivalent_rank": "PSI", "seniority_order": 5, "aliases": []any{},
		"requiresMetalNumber": false, "isActive": true,
	})
	repo.seed(common.CollectionRanks, "FDA", models.RawRecord{
		"rank_id": "FDA", "rank_label": "First Division Assistant", "staffType": "MINISTERIAL",
		"equivalent_rank": "", "seniority_order": 20, "aliases": []any{},
		"requiresMetalNumber": false, "isActive": false,
	})
}
