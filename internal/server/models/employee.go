package models

import "time"

type Employee struct {
	ID          string     `json:"id,omitempty"`
	KGID        string     `json:"kgid"`
	Name        string     `json:"name"`
	Mobile1     string     `json:"mobile1,omitempty"`
	Mobile2     string     `json:"mobile2,omitempty"`
	Landline    string     `json:"landline,omitempty"`
	Email       string     `json:"email,omitempty"`
	Rank        string     `json:"rank"`
	MetalNumber string     `json:"metalNumber,omitempty"`
	DisplayRank string     `json:"displayRank,omitempty"`
	District    string     `json:"district,omitempty"`
	Station     string     `json:"station,omitempty"`
	BloodGroup  string     `json:"bloodGroup,omitempty"`
	PhotoURL    string     `json:"photoUrl,omitempty"`
	IsApproved  bool       `json:"isApproved"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// PendingRegistration is a self-submitted employee profile waiting for an
// administrator.
type PendingRegistration struct {
	Employee
	Status      string     `json:"status,omitempty"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
}
