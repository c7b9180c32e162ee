package models

// StaffCategory separates uniformed ranks from ministerial (office) staff.
type StaffCategory string

const (
	StaffPolice      StaffCategory = "POLICE"
	StaffMinisterial StaffCategory = "MINISTERIAL"
)

// RankDefinition is one entry of the rank master. ID is the record key and
// never changes after creation.
type RankDefinition struct {
	ID                  string        `json:"rank_id"`
	Label               string        `json:"rank_label"`
	StaffCategory       StaffCategory `json:"staffType"`
	Category            string        `json:"category,omitempty"`
	EquivalentCode      string        `json:"equivalent_rank"`
	SeniorityOrder      int           `json:"seniority_order"`
	Aliases             []string      `json:"aliases"`
	RequiresSecondaryID bool          `json:"requiresMetalNumber"`
	Active              bool          `json:"isActive"`
	Remarks             string        `json:"remarks,omitempty"`
}
