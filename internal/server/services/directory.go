package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/pmdadmin/internal/common"
	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/dmitrijs2005/pmdadmin/internal/server/repositories/records"
	"github.com/dmitrijs2005/pmdadmin/internal/server/repositories/repomanager"
)

// Collection is plain CRUD over one directory collection.
type Collection[T any] struct {
	store
	name string
	// prepare validates and normalizes a value before create and update.
	prepare func(v *T, creating bool) error
	// blanks are optional keys sent empty on update when the value omits them.
	blanks []string
}

func (c *Collection[T]) List(ctx context.Context, q records.Query) ([]T, error) {
	return list[T](ctx, c.records(), c.name, q)
}

func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	return get[T](ctx, c.records(), c.name, id)
}

func (c *Collection[T]) Create(ctx context.Context, v T) (string, error) {
	if err := c.prepare(&v, true); err != nil {
		return "", err
	}
	rec, err := records.Encode(v)
	if err != nil {
		return "", err
	}
	id, err := c.records().Create(ctx, c.name, rec)
	if err != nil {
		return "", fmt.Errorf("error creating %s: %w", c.name, err)
	}
	return id, nil
}

func (c *Collection[T]) Update(ctx context.Context, id string, v T) error {
	if err := required("id", id); err != nil {
		return err
	}
	if err := c.prepare(&v, false); err != nil {
		return err
	}
	rec, err := records.Encode(v)
	if err != nil {
		return err
	}
	delete(rec, records.FieldCreatedAt)
	blankMissing(rec, c.blanks...)
	if err := c.records().Update(ctx, c.name, id, rec); err != nil {
		return fmt.Errorf("error updating %s/%s: %w", c.name, id, err)
	}
	return nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if err := required("id", id); err != nil {
		return err
	}
	if err := c.records().Delete(ctx, c.name, id); err != nil {
		return fmt.Errorf("error deleting %s/%s: %w", c.name, id, err)
	}
	return nil
}

// DirectoryService serves officers, districts, stations and useful links.
type DirectoryService struct {
	Officers  *Collection[models.Officer]
	Districts *Collection[models.District]
	Stations  *Collection[models.Station]
	Links     *Collection[models.UsefulLink]
}

func NewDirectoryService(db *sql.DB, m repomanager.RepositoryManager) *DirectoryService {
	st := store{db: db, repomanager: m}
	return &DirectoryService{
		Officers: &Collection[models.Officer]{
			store: st, name: common.CollectionOfficers, prepare: prepareOfficer,
			blanks: []string{"email", "mobile", "landline", "rank", "district", "station", "office"},
		},
		Districts: &Collection[models.District]{
			store: st, name: common.CollectionDistricts, prepare: prepareDistrict,
			blanks: []string{"range"},
		},
		Stations: &Collection[models.Station]{
			store: st, name: common.CollectionStations, prepare: prepareStation,
		},
		Links: &Collection[models.UsefulLink]{
			store: st, name: common.CollectionUsefulLinks, prepare: prepareLink,
			blanks: []string{"iconUrl", "category"},
		},
	}
}

func prepareOfficer(o *models.Officer, creating bool) error {
	o.Name = strings.TrimSpace(o.Name)
	if err := required("name", o.Name); err != nil {
		return err
	}
	o.AGID = common.FirstNonEmpty(strings.TrimSpace(o.AGID), strings.TrimSpace(o.CFD))
	if creating {
		now := timeNow().UTC()
		o.CreatedAt = &now
	} else {
		o.CreatedAt = nil
	}
	return nil
}

func prepareDistrict(d *models.District, creating bool) error {
	d.Name = strings.TrimSpace(d.Name)
	if creating && d.IsActive == nil {
		d.IsActive = boolPtr(true)
	}
	return required("name", d.Name)
}

func prepareStation(s *models.Station, creating bool) error {
	s.Name = strings.TrimSpace(s.Name)
	s.District = strings.TrimSpace(s.District)
	if creating && s.IsActive == nil {
		s.IsActive = boolPtr(true)
	}
	if err := required("name", s.Name); err != nil {
		return err
	}
	return required("district", s.District)
}

func prepareLink(l *models.UsefulLink, _ bool) error {
	l.Name = strings.TrimSpace(l.Name)
	l.URL = strings.TrimSpace(l.URL)
	if err := required("name", l.Name); err != nil {
		return err
	}
	return required("url", l.URL)
}

func boolPtr(b bool) *bool { return &b }

// ListOfficers returns officers by name with agid filled from cfd.
func (s *DirectoryService) ListOfficers(ctx context.Context) ([]models.Officer, error) {
	out, err := s.Officers.List(ctx, records.Query{Order: byName("name")})
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].AGID = common.FirstNonEmpty(out[i].AGID, out[i].CFD)
	}
	return out, nil
}

// ListDistricts returns active districts by name, or all districts when
// all is set or none is active.
func (s *DirectoryService) ListDistricts(ctx context.Context, all bool) ([]models.District, error) {
	ds, err := s.Districts.List(ctx, records.Query{})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(ds, func(i, j int) bool { return ds[i].Name < ds[j].Name })
	if all {
		return ds, nil
	}
	return activeOrAll(ds, models.District.Active), nil
}

// ListStations is ListDistricts for stations, optionally within a district.
func (s *DirectoryService) ListStations(ctx context.Context, district string, all bool) ([]models.Station, error) {
	q := records.Query{}
	if district = strings.TrimSpace(district); district != "" {
		q.Filters = []records.Filter{{Field: "district", Value: district}}
	}
	ss, err := s.Stations.List(ctx, q)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(ss, func(i, j int) bool { return ss[i].Name < ss[j].Name })
	if all {
		return ss, nil
	}
	return activeOrAll(ss, models.Station.Active), nil
}

func (s *DirectoryService) ListLinks(ctx context.Context) ([]models.UsefulLink, error) {
	return s.Links.List(ctx, records.Query{Order: byName("name")})
}

func activeOrAll[T any](in []T, active func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if active(v) {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return in
	}
	return out
}
