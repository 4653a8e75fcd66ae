package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chargeflow-be/internal/dto"
	"chargeflow-be/internal/entity"
	"chargeflow-be/internal/pkg/logger"
	"chargeflow-be/internal/repository/specification"
	"chargeflow-be/internal/repository/unitofwork"
	"chargeflow-be/pkg/events"

	"github.com/google/uuid"
)

var ErrCampaignNotFound = errors.New("campaign not found")

type ICampaignService interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateCampaignRequest) (*dto.CampaignResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]*dto.CampaignResponse, error)
	Get(ctx context.Context, userID, campaignID uuid.UUID) (*dto.CampaignResponse, error)

	// Execute materializes the campaign's recipient set, renders the
	// template per recipient, creates the pending send records, and moves
	// the campaign to running. Returns (false, nil) with no state change
	// when the template is missing, the recipient set is empty, or the
	// campaign is not in draft anymore.
	Execute(ctx context.Context, userID, campaignID uuid.UUID) (*dto.ExecuteCampaignResponse, error)
}

type campaignService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher EventPublisher
	log            logger.ILogger
}

func NewCampaignService(uowFactory unitofwork.RepositoryFactory, eventPublisher EventPublisher, log logger.ILogger) ICampaignService {
	return &campaignService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *campaignService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateCampaignRequest) (*dto.CampaignResponse, error) {
	templateID, err := uuid.Parse(req.TemplateId)
	if err != nil {
		return nil, errors.New("invalid template_id")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	template, err := uow.MessageTemplateRepository().FindOne(ctx,
		specification.ByID{ID: templateID},
		specification.UserOwnedBy{UserID: userID},
	)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, errors.New("template not found")
	}

	audience := entity.TargetAudience{Status: req.TargetAudience.Status}
	if req.TargetAudience.ScoreRange != nil {
		audience.ScoreRange = &entity.ScoreRange{
			Min: req.TargetAudience.ScoreRange.Min,
			Max: req.TargetAudience.ScoreRange.Max,
		}
	}

	campaign := &entity.Campaign{
		UserId:         userID,
		Name:           req.Name,
		Description:    req.Description,
		TemplateId:     &templateID,
		TargetAudience: audience,
		ScheduledFor:   req.ScheduledFor,
		Status:         entity.CampaignStatusDraft,
	}
	if err := uow.CampaignRepository().Create(ctx, campaign); err != nil {
		return nil, err
	}
	return toCampaignResponse(campaign), nil
}

func (s *campaignService) List(ctx context.Context, userID uuid.UUID) ([]*dto.CampaignResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	campaigns, err := uow.CampaignRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userID},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.CampaignResponse, len(campaigns))
	for i, c := range campaigns {
		res[i] = toCampaignResponse(c)
	}
	return res, nil
}

func (s *campaignService) Get(ctx context.Context, userID, campaignID uuid.UUID) (*dto.CampaignResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	campaign, err := uow.CampaignRepository().FindOne(ctx,
		specification.ByID{ID: campaignID},
		specification.UserOwnedBy{UserID: userID},
	)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	return toCampaignResponse(campaign), nil
}

func (s *campaignService) Execute(ctx context.Context, userID, campaignID uuid.UUID) (*dto.ExecuteCampaignResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	campaign, err := uow.CampaignRepository().FindOne(ctx,
		specification.ByID{ID: campaignID},
		specification.UserOwnedBy{UserID: userID},
	)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	if campaign.TemplateId == nil {
		return &dto.ExecuteCampaignResponse{Executed: false}, nil
	}
	template, err := uow.MessageTemplateRepository().FindOne(ctx,
		specification.ByID{ID: *campaign.TemplateId},
		specification.UserOwnedBy{UserID: userID},
	)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return &dto.ExecuteCampaignResponse{Executed: false}, nil
	}

	// The recipient set is resolved once, here, and frozen. Client changes
	// after execution never alter total_recipients.
	recipients, err := s.resolveAudience(ctx, uow, userID, campaign.TargetAudience)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return &dto.ExecuteCampaignResponse{Executed: false}, nil
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	sends := make([]*entity.CampaignSend, 0, len(recipients))
	messages := make([]*entity.ScheduledMessage, 0, len(recipients))
	now := time.Now()
	cID := campaign.Id
	tID := *campaign.TemplateId
	for _, client := range recipients {
		body := renderTemplate(template.Body, client)
		clientID := client.Id
		sends = append(sends, &entity.CampaignSend{
			CampaignId: cID,
			ClientId:   clientID,
			Phone:      client.Phone,
			Body:       body,
			Status:     entity.MessageStatusPending,
		})
		messages = append(messages, &entity.ScheduledMessage{
			UserId:       userID,
			ClientId:     &clientID,
			TemplateId:   &tID,
			CampaignId:   &cID,
			Body:         body,
			Phone:        client.Phone,
			ScheduledFor: now,
			Status:       entity.MessageStatusPending,
		})
	}

	if err := uow.CampaignSendRepository().CreateBatch(ctx, sends); err != nil {
		return nil, err
	}
	for _, m := range messages {
		if err := uow.ScheduledMessageRepository().Create(ctx, m); err != nil {
			return nil, err
		}
	}
	if err := uow.CampaignRepository().SetRecipientCount(ctx, campaign.Id, len(recipients)); err != nil {
		return nil, err
	}

	won, err := uow.CampaignRepository().TransitionStatus(ctx, campaign.Id, entity.CampaignStatusDraft, entity.CampaignStatusRunning)
	if err != nil {
		return nil, err
	}
	if !won {
		// Concurrent execution already moved the campaign out of draft.
		return &dto.ExecuteCampaignResponse{Executed: false}, uow.Rollback()
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.log.Info("campaign", "Campaign executed", map[string]interface{}{
		"campaign_id": campaign.Id.String(),
		"recipients":  len(recipients),
	})
	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewCampaignExecutedEvent(campaign.Id, userID, len(recipients))); err != nil {
			s.log.Warn("campaign", "Failed to publish execution event", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.ExecuteCampaignResponse{Executed: true, Recipients: len(recipients)}, nil
}

func (s *campaignService) resolveAudience(ctx context.Context, uow unitofwork.UnitOfWork, userID uuid.UUID, audience entity.TargetAudience) ([]*entity.Client, error) {
	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userID},
	}
	if audience.Status != "" {
		specs = append(specs, specification.StatusIs{Status: audience.Status})
	}
	if audience.ScoreRange != nil {
		specs = append(specs, specification.ScoreBetween{Min: audience.ScoreRange.Min, Max: audience.ScoreRange.Max})
	}
	return uow.ClientRepository().FindAll(ctx, specs...)
}

// renderTemplate substitutes the fixed placeholder set with the
// recipient's data.
func renderTemplate(body string, client *entity.Client) string {
	body = strings.ReplaceAll(body, "{name}", client.Name)
	body = strings.ReplaceAll(body, "{amount}", fmt.Sprintf("%.2f", client.SubscriptionAmount))
	body = strings.ReplaceAll(body, "{due_date}", client.DueDate.Format("02/01/2006"))
	return body
}

func toCampaignResponse(c *entity.Campaign) *dto.CampaignResponse {
	return &dto.CampaignResponse{
		Id:              c.Id,
		Name:            c.Name,
		Description:     c.Description,
		TemplateId:      c.TemplateId,
		TargetAudience:  c.TargetAudience,
		ScheduledFor:    c.ScheduledFor,
		Status:          string(c.Status),
		TotalRecipients: c.TotalRecipients,
		SentCount:       c.SentCount,
		DeliveredCount:  c.DeliveredCount,
		FailedCount:     c.FailedCount,
		CreatedAt:       c.CreatedAt,
	}
}
