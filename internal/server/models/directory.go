package models

import "time"

type Officer struct {
	ID        string     `json:"id,omitempty"`
	AGID      string     `json:"agid,omitempty"`
	CFD       string     `json:"cfd,omitempty"`
	Name      string     `json:"name"`
	Email     string     `json:"email,omitempty"`
	Mobile    string     `json:"mobile,omitempty"`
	Landline  string     `json:"landline,omitempty"`
	Rank      string     `json:"rank,omitempty"`
	District  string     `json:"district,omitempty"`
	Station   string     `json:"station,omitempty"`
	Office    string     `json:"office,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// District and Station treat a missing isActive as active.
type District struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Range    string `json:"range,omitempty"`
	IsActive *bool  `json:"isActive,omitempty"`
}

func (d District) Active() bool { return d.IsActive == nil || *d.IsActive }

type Station struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	District string `json:"district"`
	IsActive *bool  `json:"isActive,omitempty"`
}

func (s Station) Active() bool { return s.IsActive == nil || *s.IsActive }

type UsefulLink struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	IconURL  string `json:"iconUrl,omitempty"`
	Category string `json:"category,omitempty"`
}
