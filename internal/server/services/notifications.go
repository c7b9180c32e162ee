package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pmdadmin/internal/common"
	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/dmitrijs2005/pmdadmin/internal/server/repositories/records"
	"github.com/dmitrijs2005/pmdadmin/internal/server/repositories/repomanager"
)

const notificationPending = "pending"

// NotificationService queues notifications for the delivery worker of the
// mobile backend. Delivery itself happens elsewhere.
type NotificationService struct {
	store
}

func NewNotificationService(db *sql.DB, m repomanager.RepositoryManager) *NotificationService {
	return &NotificationService{store: store{db: db, repomanager: m}}
}

func (s *NotificationService) Enqueue(ctx context.Context, n models.Notification) (models.Notification, error) {
	n.Title = strings.TrimSpace(n.Title)
	n.Body = strings.TrimSpace(n.Body)
	n.TargetType = models.NotificationTarget(strings.ToUpper(strings.TrimSpace(string(n.TargetType))))
	if n.TargetType == "" {
		n.TargetType = models.TargetAll
	}
	if err := required("title", n.Title); err != nil {
		return n, err
	}
	if err := required("body", n.Body); err != nil {
		return n, err
	}

	collection := common.CollectionNotificationsQueue
	switch n.TargetType {
	case models.TargetAll:
	case models.TargetDistrict:
		if err := required("targetDistrict", n.TargetDistrict); err != nil {
			return n, err
		}
	case models.TargetStation:
		if err := required("targetStation", n.TargetStation); err != nil {
			return n, err
		}
	case models.TargetAdmin:
		collection = common.CollectionAdminNotifications
	default:
		return n, fmt.Errorf("%w: unknown target type %q", common.ErrorValidation, n.TargetType)
	}

	now := timeNow().UTC()
	n.Status, n.CreatedAt = notificationPending, &now
	rec, err := records.Encode(n)
	if err != nil {
		return n, err
	}
	id, err := s.records().Create(ctx, collection, rec)
	if err != nil {
		return n, fmt.Errorf("error queueing notification: %w", err)
	}
	n.ID = id
	return n, nil
}
