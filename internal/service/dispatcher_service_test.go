package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"chargeflow-be/internal/entity"
	"chargeflow-be/internal/gateway/messaging"
	"chargeflow-be/internal/pkg/pacer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newDispatcherFixture(uow *fakeUow, gw *fakeMessagingGateway) IDispatcherService {
	return NewDispatcherService(
		&fakeFactory{uow: uow},
		gw,
		NewConnectivityChecker(gw, time.Minute),
		pacer.NewNoop(),
		nopLogger{},
	)
}

func pendingMessage(userID uuid.UUID) *entity.ScheduledMessage {
	return &entity.ScheduledMessage{
		Id:           uuid.New(),
		UserId:       userID,
		Phone:        "5511988887777",
		Body:         "Your invoice is due",
		ScheduledFor: time.Now().Add(-time.Minute),
		Status:       entity.MessageStatusPending,
	}
}

func TestDispatchSendsDueMessageAndRecordsHistory(t *testing.T) {
	uow := newFakeUow()
	userID := uuid.New()
	uow.users.users[userID] = &entity.User{
		Id:                userID,
		WhatsappInstance:  "inst-1",
		WhatsappConnected: true,
	}
	msg := pendingMessage(userID)
	uow.messages.messages = []*entity.ScheduledMessage{msg}

	gw := &fakeMessagingGateway{
		connected:  map[string]bool{"inst-1": true},
		sendResult: &messaging.SendResult{AckCode: 201, VendorMessageId: "3EB0C8D7"},
	}
	svc := newDispatcherFixture(uow, gw)

	report, err := svc.DispatchDue(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, entity.MessageStatusSent, msg.Status)
	assert.NotNil(t, msg.SentAt)

	if assert.Len(t, uow.history.records, 1) {
		assert.Equal(t, "3EB0C8D7", uow.history.records[0].VendorMessageId)
		assert.Equal(t, entity.MessageStatusSent, uow.history.records[0].Status)
	}
}

func TestDispatchLeavesMessagesOfDisconnectedOwnerPending(t *testing.T) {
	uow := newFakeUow()
	userID := uuid.New()
	uow.users.users[userID] = &entity.User{
		Id:                userID,
		WhatsappInstance:  "inst-1",
		WhatsappConnected: false,
	}
	msg := pendingMessage(userID)
	uow.messages.messages = []*entity.ScheduledMessage{msg}

	gw := &fakeMessagingGateway{connected: map[string]bool{"inst-1": true}}
	svc := newDispatcherFixture(uow, gw)

	report, err := svc.DispatchDue(context.Background())

	// The message is never selected, so it waits for the tenant to
	// reconnect instead of dying.
	assert.NoError(t, err)
	assert.Equal(t, 0, report.Checked)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, 0, gw.sendCalls)
	assert.Equal(t, entity.MessageStatusPending, msg.Status)
	assert.Empty(t, msg.Error)
}

func TestDispatchLiveDisconnectedChannelFailsWithoutGatewayCall(t *testing.T) {
	uow := newFakeUow()
	userID := uuid.New()
	uow.users.users[userID] = &entity.User{
		Id:                userID,
		WhatsappInstance:  "inst-1",
		WhatsappConnected: true,
	}
	msg := pendingMessage(userID)
	uow.messages.messages = []*entity.ScheduledMessage{msg}

	// Flag says connected, the live instance probe says otherwise.
	gw := &fakeMessagingGateway{connected: map[string]bool{"inst-1": false}}
	svc := newDispatcherFixture(uow, gw)

	report, err := svc.DispatchDue(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 0, gw.sendCalls, "dead channels must not reach the gateway")
	assert.Equal(t, entity.MessageStatusFailed, msg.Status)
	assert.Equal(t, "channel not connected", msg.Error)
	assert.Empty(t, uow.history.records)
}

func TestDispatchGatewayRejectionMarksFailed(t *testing.T) {
	uow := newFakeUow()
	userID := uuid.New()
	uow.users.users[userID] = &entity.User{
		Id:                userID,
		WhatsappInstance:  "inst-1",
		WhatsappConnected: true,
	}
	msg := pendingMessage(userID)
	uow.messages.messages = []*entity.ScheduledMessage{msg}

	gw := &fakeMessagingGateway{
		connected:  map[string]bool{"inst-1": true},
		sendResult: &messaging.SendResult{AckCode: 400},
	}
	svc := newDispatcherFixture(uow, gw)

	report, err := svc.DispatchDue(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, entity.MessageStatusFailed, msg.Status)
	assert.Contains(t, msg.Error, "status 400")
}

func TestDispatchSendErrorIsIsolatedPerItem(t *testing.T) {
	uow := newFakeUow()
	userID := uuid.New()
	uow.users.users[userID] = &entity.User{
		Id:                userID,
		WhatsappInstance:  "inst-1",
		WhatsappConnected: true,
	}
	first := pendingMessage(userID)
	second := pendingMessage(userID)
	uow.messages.messages = []*entity.ScheduledMessage{first, second}

	gw := &fakeMessagingGateway{
		connected: map[string]bool{"inst-1": true},
		sendErr:   errors.New("connection reset"),
	}
	svc := newDispatcherFixture(uow, gw)

	report, err := svc.DispatchDue(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, report.Checked)
	assert.Equal(t, 2, report.Failed)
	assert.Len(t, report.Errors, 2)
	assert.Equal(t, entity.MessageStatusFailed, first.Status)
	assert.Equal(t, entity.MessageStatusFailed, second.Status)
}

func TestDispatchResolvesCampaignBookkeeping(t *testing.T) {
	uow := newFakeUow()
	userID := uuid.New()
	clientID := uuid.New()
	campaignID := uuid.New()

	uow.users.users[userID] = &entity.User{
		Id:                userID,
		WhatsappInstance:  "inst-1",
		WhatsappConnected: true,
	}
	uow.campaigns.campaigns[campaignID] = &entity.Campaign{
		Id:     campaignID,
		UserId: userID,
		Status: entity.CampaignStatusRunning,
	}
	uow.campaignSends.sends = []*entity.CampaignSend{{
		Id:         uuid.New(),
		CampaignId: campaignID,
		ClientId:   clientID,
		Status:     entity.MessageStatusPending,
	}}

	msg := pendingMessage(userID)
	msg.ClientId = &clientID
	msg.CampaignId = &campaignID
	uow.messages.messages = []*entity.ScheduledMessage{msg}

	gw := &fakeMessagingGateway{connected: map[string]bool{"inst-1": true}}
	svc := newDispatcherFixture(uow, gw)

	report, err := svc.DispatchDue(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, entity.MessageStatusSent, uow.campaignSends.sends[0].Status)
	assert.Equal(t, 1, uow.campaigns.campaigns[campaignID].SentCount)
	// A send ack is not a delivery receipt.
	assert.Equal(t, 0, uow.campaigns.campaigns[campaignID].DeliveredCount)
	// Last pending send resolved: the campaign completes.
	assert.Equal(t, entity.CampaignStatusCompleted, uow.campaigns.campaigns[campaignID].Status)
}

func TestDispatchRecordsLastRun(t *testing.T) {
	uow := newFakeUow()
	svc := newDispatcherFixture(uow, &fakeMessagingGateway{})

	_, err := svc.DispatchDue(context.Background())

	assert.NoError(t, err)
	assert.Contains(t, uow.settings.lastRuns, "message_dispatch")
}
