// Package common contains shared constants and sentinel errors used across
// pmdadmin components.
package common

// AuthorizationHeaderName carries the bearer token on API requests.
const AuthorizationHeaderName = "Authorization"

// DefaultUploader is recorded as uploadedBy when the caller is anonymous.
const DefaultUploader = "admin@pmd.com"

// Record store collections.
const (
	CollectionEmployees            = "employees"
	CollectionOfficers             = "officers"
	CollectionRanks                = "rankMaster"
	CollectionDistricts            = "districts"
	CollectionStations             = "stations"
	CollectionDocuments            = "documents"
	CollectionGallery              = "gallery"
	CollectionUsefulLinks          = "useful_links"
	CollectionPendingRegistrations = "pending_registrations"
	CollectionNotificationsQueue   = "notifications_queue"
	CollectionAdminNotifications   = "admin_notifications"
)
