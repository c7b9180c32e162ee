package models

type Stats struct {
	TotalEmployees    int            `json:"totalEmployees"`
	ApprovedEmployees int            `json:"approvedEmployees"`
	PendingApprovals  int            `json:"pendingApprovals"`
	PendingRequests   int            `json:"pendingRegistrations"`
	TotalOfficers     int            `json:"totalOfficers"`
	TotalDistricts    int            `json:"totalDistricts"`
	TotalStations     int            `json:"totalStations"`
	ByDistrict        map[string]int `json:"byDistrict"`
	ByStation         map[string]int `json:"byStation"`
	ByRank            map[string]int `json:"byRank"`
}
