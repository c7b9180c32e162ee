package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/pmdadmin/internal/logging"
	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/dmitrijs2005/pmdadmin/internal/server/repositories/records"
	"golang.org/x/sync/errgroup"
)

// StoreSource is the part of the record store the reconciler reads.
type StoreSource interface {
	Query(ctx context.Context, collection string, q records.Query) ([]models.RawRecord, error)
}

// RemoteSource lists the raw rows of one remote catalog.
type RemoteSource interface {
	Fetch(ctx context.Context) ([]models.RawRecord, error)
}

// Reconciler builds the merged listing for one catalog kind.
type Reconciler struct {
	store      StoreSource
	collection string
	remote     RemoteSource
	log        logging.Logger
}

// NewReconciler wires a store collection and its remote counterpart.
// remote may be nil when no remote catalog is configured.
func NewReconciler(store StoreSource, collection string, remote RemoteSource, log logging.Logger) *Reconciler {
	return &Reconciler{
		store:      store,
		collection: collection,
		remote:     remote,
		log:        log.With("collection", collection),
	}
}

// FetchAll reads both sources concurrently and returns the merged list.
// An unavailable source contributes zero rows; only a local fault yields
// an error.
func (r *Reconciler) FetchAll(ctx context.Context) ([]models.CatalogEntry, error) {
	var storeRows, remoteRows []models.RawRecord

	var g errgroup.Group
	g.Go(func() (err error) {
		defer recoverInto(&err, "record store fetch")
		storeRows = r.fetchStore(ctx)
		return nil
	})
	g.Go(func() (err error) {
		defer recoverInto(&err, "remote catalog fetch")
		remoteRows = r.fetchRemote(ctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m := newMerger(len(storeRows) + len(remoteRows))
	for _, raw := range storeRows {
		if e, ok := Normalize(raw, models.SourceStore); ok {
			m.addStore(e)
		}
	}
	for _, raw := range remoteRows {
		if e, ok := Normalize(raw, models.SourceCatalog); ok {
			m.addRemote(e)
		}
	}

	out := m.entries()
	SortByCreatedAt(out)

	r.log.Debug(ctx, "catalog reconciled",
		"store_rows", len(storeRows), "remote_rows", len(remoteRows), "entries", len(out))
	return out, nil
}

func (r *Reconciler) fetchStore(ctx context.Context) []models.RawRecord {
	rows, err := r.store.Query(ctx, r.collection, records.Query{
		Order: &records.Order{Field: records.FieldCreatedAt, Desc: true},
	})
	if err == nil {
		return rows
	}
	r.log.Warn(ctx, "ordered store query failed, retrying unordered", "error", err)

	rows, err = r.store.Query(ctx, r.collection, records.Query{})
	if err != nil {
		r.log.Warn(ctx, "record store unavailable", "error", err)
		return nil
	}
	return rows
}

func (r *Reconciler) fetchRemote(ctx context.Context) []models.RawRecord {
	if r.remote == nil {
		return nil
	}
	rows, err := r.remote.Fetch(ctx)
	if err != nil {
		r.log.Warn(ctx, "remote catalog unavailable", "error", err)
		return nil
	}
	return rows
}

func recoverInto(err *error, what string) {
	if p := recover(); p != nil {
		*err = fmt.Errorf("%s: panic: %v", what, p)
	}
}

// merger applies the conflict rule: record store entries are inserted
// first and a remote entry is kept only when its identity key is new and
// it does not point at a locator or file id already held by the store.
type merger struct {
	keys          map[string]struct{}
	storeLocators map[string]struct{}
	storeFileIDs  map[string]struct{}
	out           []models.CatalogEntry
}

func newMerger(n int) *merger {
	return &merger{
		keys:          make(map[string]struct{}, n),
		storeLocators: make(map[string]struct{}),
		storeFileIDs:  make(map[string]struct{}),
		out:           make([]models.CatalogEntry, 0, n),
	}
}

func (m *merger) addStore(e models.CatalogEntry) {
	e.Identity = IdentityKey(e, models.SourceStore)
	if !m.insert(e) {
		return
	}
	m.storeLocators[e.Locator] = struct{}{}
	if e.SourceFileID != nil && *e.SourceFileID != "" {
		m.storeFileIDs[*e.SourceFileID] = struct{}{}
	}
}

func (m *merger) addRemote(e models.CatalogEntry) {
	if _, dup := m.storeLocators[e.Locator]; dup {
		return
	}
	if e.SourceFileID != nil {
		if _, dup := m.storeFileIDs[*e.SourceFileID]; dup {
			return
		}
	}
	e.Identity = IdentityKey(e, models.SourceCatalog)
	m.insert(e)
}

func (m *merger) insert(e models.CatalogEntry) bool {
	if _, ok := m.keys[e.Identity]; ok {
		return false
	}
	m.keys[e.Identity] = struct{}{}
	m.out = append(m.out, e)
	return true
}

func (m *merger) entries() []models.CatalogEntry {
	return m.out
}

// SortByCreatedAt orders newest first. Entries without a creation time go
// last and keep their relative order.
func SortByCreatedAt(entries []models.CatalogEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].CreatedAt, entries[j].CreatedAt
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})
}
