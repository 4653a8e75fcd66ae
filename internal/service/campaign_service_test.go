package service

import (
	"context"
	"testing"
	"time"

	"chargeflow-be/internal/dto"
	"chargeflow-be/internal/entity"
	"chargeflow-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func seedTemplate(uow *fakeUow, userID uuid.UUID, body string) uuid.UUID {
	id := uuid.New()
	uow.templates.templates[id] = &entity.MessageTemplate{
		Id:     id,
		UserId: userID,
		Name:   "billing reminder",
		Body:   body,
		Active: true,
	}
	return id
}

func seedCampaign(uow *fakeUow, userID, templateID uuid.UUID, audience entity.TargetAudience) *entity.Campaign {
	c := &entity.Campaign{
		Id:             uuid.New(),
		UserId:         userID,
		Name:           "September billing",
		TemplateId:     &templateID,
		TargetAudience: audience,
		Status:         entity.CampaignStatusDraft,
	}
	uow.campaigns.campaigns[c.Id] = c
	return c
}

func TestCampaignCreateRequiresExistingTemplate(t *testing.T) {
	uow := newFakeUow()
	svc := NewCampaignService(&fakeFactory{uow: uow}, nil, nopLogger{})

	_, err := svc.Create(context.Background(), uuid.New(), &dto.CreateCampaignRequest{
		Name:       "September billing",
		TemplateId: uuid.New().String(),
	})

	assert.EqualError(t, err, "template not found")
}

func TestCampaignCreateStartsAsDraft(t *testing.T) {
	uow := newFakeUow()
	userID := uuid.New()
	templateID := seedTemplate(uow, userID, "Hello {name}")
	svc := NewCampaignService(&fakeFactory{uow: uow}, nil, nopLogger{})

	res, err := svc.Create(context.Background(), userID, &dto.CreateCampaignRequest{
		Name:       "September billing",
		TemplateId: templateID.String(),
		TargetAudience: dto.TargetAudienceRequest{
			Status:     "active",
			ScoreRange: &dto.ScoreRangeRequest{Min: 0, Max: 70},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, string(entity.CampaignStatusDraft), res.Status)
	assert.Equal(t, "active", res.TargetAudience.Status)
	assert.Equal(t, 70, res.TargetAudience.ScoreRange.Max)
}

func TestCampaignExecuteEmptyAudienceIsNoOp(t *testing.T) {
	uow := newFakeUow()
	userID := uuid.New()
	templateID := seedTemplate(uow, userID, "Hello {name}")
	campaign := seedCampaign(uow, userID, templateID, entity.TargetAudience{Status: "active"})
	svc := NewCampaignService(&fakeFactory{uow: uow}, nil, nopLogger{})

	res, err := svc.Execute(context.Background(), userID, campaign.Id)

	assert.NoError(t, err)
	assert.False(t, res.Executed)
	assert.Equal(t, entity.CampaignStatusDraft, campaign.Status, "campaign must stay draft")
	assert.Empty(t, uow.campaignSends.sends)
	assert.Empty(t, uow.messages.messages)
}

func TestCampaignExecuteMaterializesRecipients(t *testing.T) {
	uow := newFakeUow()
	userID := uuid.New()
	templateID := seedTemplate(uow, userID, "Hi {name}, {amount} is due on {due_date}")

	due := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	clientID := uuid.New()
	uow.clients.clients[clientID] = &entity.Client{
		Id:                 clientID,
		UserId:             userID,
		Name:               "Maria",
		Phone:              "5511999990000",
		Status:             entity.ClientStatusActive,
		SubscriptionAmount: 89.9,
		DueDate:            due,
		RiskScore:          20,
	}
	// Outside the audience filter.
	otherID := uuid.New()
	uow.clients.clients[otherID] = &entity.Client{
		Id:        otherID,
		UserId:    userID,
		Status:    entity.ClientStatusActive,
		RiskScore: 90,
	}

	campaign := seedCampaign(uow, userID, templateID, entity.TargetAudience{
		Status:     "active",
		ScoreRange: &entity.ScoreRange{Min: 0, Max: 50},
	})

	publisher := &capturingPublisher{}
	svc := NewCampaignService(&fakeFactory{uow: uow}, publisher, nopLogger{})

	res, err := svc.Execute(context.Background(), userID, campaign.Id)

	assert.NoError(t, err)
	assert.True(t, res.Executed)
	assert.Equal(t, 1, res.Recipients)
	assert.Equal(t, entity.CampaignStatusRunning, campaign.Status)
	assert.Equal(t, 1, campaign.TotalRecipients)

	if assert.Len(t, uow.messages.messages, 1) {
		msg := uow.messages.messages[0]
		assert.Equal(t, "Hi Maria, 89.90 is due on 05/09/2026", msg.Body)
		assert.Equal(t, entity.MessageStatusPending, msg.Status)
		assert.Equal(t, campaign.Id, *msg.CampaignId)
	}
	assert.Len(t, uow.campaignSends.sends, 1)

	if assert.Len(t, publisher.published, 1) {
		assert.Equal(t, events.TypeCampaignExecuted, publisher.published[0].EventType())
	}
}

func TestCampaignExecuteOnlyOnce(t *testing.T) {
	uow := newFakeUow()
	userID := uuid.New()
	templateID := seedTemplate(uow, userID, "Hello {name}")
	clientID := uuid.New()
	uow.clients.clients[clientID] = &entity.Client{
		Id:     clientID,
		UserId: userID,
		Name:   "Maria",
		Status: entity.ClientStatusActive,
	}
	campaign := seedCampaign(uow, userID, templateID, entity.TargetAudience{})
	svc := NewCampaignService(&fakeFactory{uow: uow}, nil, nopLogger{})

	first, err := svc.Execute(context.Background(), userID, campaign.Id)
	assert.NoError(t, err)
	assert.True(t, first.Executed)

	second, err := svc.Execute(context.Background(), userID, campaign.Id)
	assert.NoError(t, err)
	assert.False(t, second.Executed, "a campaign out of draft must not execute again")
}

func TestCampaignExecuteUnknownCampaign(t *testing.T) {
	uow := newFakeUow()
	svc := NewCampaignService(&fakeFactory{uow: uow}, nil, nopLogger{})

	_, err := svc.Execute(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestRenderTemplate(t *testing.T) {
	client := &entity.Client{
		Name:               "João",
		SubscriptionAmount: 120,
		DueDate:            time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	got := renderTemplate("Olá {name}: {amount} até {due_date}", client)

	assert.Equal(t, "Olá João: 120.00 até 02/01/2026", got)
}
