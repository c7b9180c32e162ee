package services

import (
	"context"

	"github.com/dmitrijs2005/pmdadmin/internal/common"
	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/dmitrijs2005/pmdadmin/internal/server/repositories/records"
)

// StatsService aggregates dashboard counters.
type StatsService struct {
	employees *EmployeeService
	directory *DirectoryService
}

func NewStatsService(e *EmployeeService, d *DirectoryService) *StatsService {
	return &StatsService{employees: e, directory: d}
}

func (s *StatsService) Get(ctx context.Context) (models.Stats, error) {
	st := models.Stats{
		ByDistrict: map[string]int{},
		ByStation:  map[string]int{},
		ByRank:     map[string]int{},
	}

	emps, err := s.employees.List(ctx, EmployeeFilter{})
	if err != nil {
		return st, err
	}
	st.TotalEmployees = len(emps)
	for _, e := range emps {
		if e.IsApproved {
			st.ApprovedEmployees++
		} else {
			st.PendingApprovals++
		}
		if e.District != "" {
			st.ByDistrict[e.District]++
		}
		if e.Station != "" {
			st.ByStation[e.Station]++
		}
		if e.Rank != "" {
			st.ByRank[e.Rank]++
		}
	}

	regs, err := s.employees.records().Query(ctx, common.CollectionPendingRegistrations, records.Query{})
	if err != nil {
		return st, err
	}
	st.PendingRequests = len(regs)

	officers, err := s.directory.Officers.List(ctx, records.Query{})
	if err != nil {
		return st, err
	}
	st.TotalOfficers = len(officers)

	districts, err := s.directory.ListDistricts(ctx, false)
	if err != nil {
		return st, err
	}
	st.TotalDistricts = len(districts)

	stations, err := s.directory.ListStations(ctx, "", true)
	if err != nil {
		return st, err
	}
	st.TotalStations = len(stations)
	return st, nil
}
