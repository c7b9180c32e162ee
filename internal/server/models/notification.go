package models

import "time"

type NotificationTarget string

const (
	TargetAll      NotificationTarget = "ALL"
	TargetDistrict NotificationTarget = "DISTRICT"
	TargetStation  NotificationTarget = "STATION"
	TargetAdmin    NotificationTarget = "ADMIN"
)

type Notification struct {
	ID             string             `json:"id,omitempty"`
	Title          string             `json:"title"`
	Body           string             `json:"body"`
	TargetType     NotificationTarget `json:"targetType"`
	TargetDistrict string             `json:"targetDistrict,omitempty"`
	TargetStation  string             `json:"targetStation,omitempty"`
	RequesterKGID  string             `json:"requesterKgid,omitempty"`
	Status         string             `json:"status"`
	CreatedAt      *time.Time         `json:"createdAt,omitempty"`
}
