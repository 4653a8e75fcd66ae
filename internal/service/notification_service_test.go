package service

import (
	"context"
	"testing"

	"chargeflow-be/internal/model"
	"chargeflow-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeNotificationRepo struct {
	types   map[string]*model.NotificationType
	admins  []model.User
	created []model.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{types: map[string]*model.NotificationType{}}
}

func (r *fakeNotificationRepo) CreateNotification(_ context.Context, n *model.Notification) error {
	r.created = append(r.created, *n)
	return nil
}

func (r *fakeNotificationRepo) GetNotificationsByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	var out []model.Notification
	for _, n := range r.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) GetUnreadCount(_ context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, n := range r.created {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAsRead(_ context.Context, id uuid.UUID) error {
	for i := range r.created {
		if r.created[i].ID == id {
			r.created[i].IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllAsRead(_ context.Context, userID uuid.UUID) error {
	for i := range r.created {
		if r.created[i].UserID == userID {
			r.created[i].IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) GetNotificationTypeByCode(_ context.Context, code string) (*model.NotificationType, error) {
	return r.types[code], nil
}

func (r *fakeNotificationRepo) GetAdmins(context.Context) ([]model.User, error) {
	return r.admins, nil
}

func TestHandleEventCreatesInboxRowWithSubstitution(t *testing.T) {
	repo := newFakeNotificationRepo()
	repo.types["PAYMENT_APPROVED"] = &model.NotificationType{
		Code:        "PAYMENT_APPROVED",
		DisplayName: "Payment approved",
		Template:    "Your payment of {amount} was approved",
		TargetType:  "SELF",
		IsActive:    true,
	}
	svc := NewNotificationService(repo, nil, nopLogger{})

	userID := uuid.New()
	event := events.NewPaymentApprovedEvent(uuid.New(), userID, 150.5)

	err := svc.handleEvent(context.Background(), event)

	assert.NoError(t, err)
	if assert.Len(t, repo.created, 1) {
		n := repo.created[0]
		assert.Equal(t, userID, n.UserID)
		assert.Equal(t, "PAYMENT_APPROVED", n.TypeCode)
		assert.Equal(t, "Payment approved", n.Title)
		assert.Equal(t, "Your payment of 150.5 was approved", n.Message)
		assert.False(t, n.IsRead)
	}
}

func TestHandleEventSkipsUnregisteredAndInactiveTypes(t *testing.T) {
	repo := newFakeNotificationRepo()
	repo.types["CAMPAIGN_EXECUTED"] = &model.NotificationType{
		Code:       "CAMPAIGN_EXECUTED",
		Template:   "Campaign sent to {recipients} clients",
		TargetType: "SELF",
		IsActive:   false,
	}
	svc := NewNotificationService(repo, nil, nopLogger{})

	userID := uuid.New()
	assert.NoError(t, svc.handleEvent(context.Background(), events.NewCampaignExecutedEvent(uuid.New(), userID, 3)))
	assert.NoError(t, svc.handleEvent(context.Background(), events.NewPaymentExpiredEvent(uuid.New(), userID)))

	assert.Empty(t, repo.created)
}

func TestHandleEventAdminTargetFansOutToAllAdmins(t *testing.T) {
	repo := newFakeNotificationRepo()
	repo.types["SCORE_BATCH_COMPLETED"] = &model.NotificationType{
		Code:        "SCORE_BATCH_COMPLETED",
		DisplayName: "Scores updated",
		Template:    "Scored {scored} clients, {failed} failed",
		TargetType:  "ADMIN",
		IsActive:    true,
	}
	repo.admins = []model.User{{Id: uuid.New()}, {Id: uuid.New()}}
	svc := NewNotificationService(repo, nil, nopLogger{})

	err := svc.handleEvent(context.Background(), events.NewScoreBatchCompletedEvent(uuid.New(), 7, 1))

	assert.NoError(t, err)
	assert.Len(t, repo.created, 2)
	assert.Equal(t, "Scored 7 clients, 1 failed", repo.created[0].Message)
}

func TestMarkAllAsReadClearsUnreadCount(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo, nil, nopLogger{})

	userID := uuid.New()
	repo.created = []model.Notification{
		{ID: uuid.New(), UserID: userID},
		{ID: uuid.New(), UserID: userID},
	}

	assert.NoError(t, svc.MarkAllAsRead(context.Background(), userID))

	count, err := svc.GetUnreadCount(context.Background(), userID)
	assert.NoError(t, err)
	assert.Zero(t, count)
}
