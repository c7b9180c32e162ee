package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/pmdadmin/internal/common"
	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_Routing(t *testing.T) {
	freezeTime(t)
	rm := newFakeRM()
	svc := NewNotificationService(nil, rm)
	ctx := context.Background()

	n, err := svc.Enqueue(ctx, models.Notification{Title: "Parade", Body: "Sunday 7am", TargetType: "district", TargetDistrict: "Mysuru"})
	require.NoError(t, err)
	assert.Equal(t, models.TargetDistrict, n.TargetType)
	assert.Equal(t, "pending", n.Status)
	assert.NotEmpty(t, n.ID)

	_, err = svc.Enqueue(ctx, models.Notification{Title: "Help", Body: "Profile update", TargetType: models.TargetAdmin, RequesterKGID: "K1"})
	require.NoError(t, err)

	_, err = svc.Enqueue(ctx, models.Notification{Title: "All hands", Body: "Meeting"})
	require.NoError(t, err)

	queue := rm.repo.all(common.CollectionNotificationsQueue)
	admin := rm.repo.all(common.CollectionAdminNotifications)
	require.Len(t, queue, 2)
	require.Len(t, admin, 1)
	assert.Equal(t, "ALL", queue[1]["targetType"])
	assert.Equal(t, "pending", admin[0]["status"])
	assert.Equal(t, "K1", admin[0]["requesterKgid"])
}

func TestNotificationService_Validation(t *testing.T) {
	svc := NewNotificationService(nil, newFakeRM())
	ctx := context.Background()

	cases := []models.Notification{
		{Body: "b"},
		{Title: "t"},
		{Title: "t", Body: "b", TargetType: "EVERYONE"},
		{Title: "t", Body: "b", TargetType: models.TargetStation},
		{Title: "t", Body: "b", TargetType: models.TargetDistrict},
	}
	for _, c := range cases {
		_, err := svc.Enqueue(ctx, c)
		assert.ErrorIs(t, err, common.ErrorValidation, "%+v", c)
	}
}
