package service

import (
	"context"
	"fmt"
	"time"

	"chargeflow-be/internal/entity"
	"chargeflow-be/internal/gateway/messaging"
	"chargeflow-be/internal/pkg/logger"
	"chargeflow-be/internal/pkg/pacer"
	"chargeflow-be/internal/repository/specification"
	"chargeflow-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const errChannelNotConnected = "channel not connected"

type IDispatcherService interface {
	// DispatchDue sends every due pending message, oldest first, with
	// per-item isolation. Failed messages are not retried automatically;
	// retry is an explicit re-scheduling action elsewhere.
	DispatchDue(ctx context.Context) (*entity.BatchReport, error)
}

type dispatcherService struct {
	uowFactory   unitofwork.RepositoryFactory
	gateway      messaging.MessagingGateway
	connectivity *ConnectivityChecker
	pacer        pacer.Pacer
	log          logger.ILogger
}

func NewDispatcherService(
	uowFactory unitofwork.RepositoryFactory,
	gateway messaging.MessagingGateway,
	connectivity *ConnectivityChecker,
	pc pacer.Pacer,
	log logger.ILogger,
) IDispatcherService {
	return &dispatcherService{
		uowFactory:   uowFactory,
		gateway:      gateway,
		connectivity: connectivity,
		pacer:        pc,
		log:          log,
	}
}

func (s *dispatcherService) DispatchDue(ctx context.Context) (*entity.BatchReport, error) {
	report := entity.NewBatchReport("message_dispatch")
	uow := s.uowFactory.NewUnitOfWork(ctx)

	due, err := uow.ScheduledMessageRepository().FindDue(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("find due messages: %w", err)
	}

	// Owners are looked up once per batch, not once per message.
	owners := make(map[uuid.UUID]*entity.User)

	for i, msg := range due {
		if i > 0 {
			if err := s.pacer.Pause(ctx); err != nil {
				return report.Finish(), err
			}
		}
		report.Checked++
		if err := s.dispatchOne(ctx, uow, msg, owners, report); err != nil {
			report.AddError(fmt.Sprintf("message %s: %v", msg.Id, err))
			s.log.Error("dispatcher", "Message dispatch failed", map[string]interface{}{
				"message_id": msg.Id.String(),
				"error":      err.Error(),
			})
		}
	}

	if err := uow.AppSettingRepository().SetCronLastRun(ctx, "message_dispatch", time.Now()); err != nil {
		s.log.Warn("dispatcher", "Failed to record batch completion time", map[string]interface{}{"error": err.Error()})
	}

	s.log.Info("dispatcher", "Dispatch batch completed", map[string]interface{}{
		"checked": report.Checked,
		"sent":    report.Sent,
		"failed":  report.Failed,
		"errors":  len(report.Errors),
	})

	return report.Finish(), nil
}

func (s *dispatcherService) dispatchOne(ctx context.Context, uow unitofwork.UnitOfWork, msg *entity.ScheduledMessage, owners map[uuid.UUID]*entity.User, report *entity.BatchReport) error {
	owner, ok := owners[msg.UserId]
	if !ok {
		var err error
		owner, err = uow.UserRepository().FindOne(ctx, specification.ByID{ID: msg.UserId})
		if err != nil {
			return err
		}
		owners[msg.UserId] = owner
	}

	connected := false
	if owner != nil && owner.WhatsappConnected && owner.WhatsappInstance != "" {
		var err error
		connected, err = s.connectivity.IsConnected(ctx, owner.WhatsappInstance)
		if err != nil {
			return err
		}
	}

	if !connected {
		// No gateway call, no retry within this invocation.
		return s.markFailed(ctx, uow, msg, errChannelNotConnected, report)
	}

	result, err := s.gateway.SendText(ctx, owner.WhatsappInstance, msg.Phone, msg.Body)
	if err != nil {
		if markErr := s.markFailed(ctx, uow, msg, err.Error(), report); markErr != nil {
			return markErr
		}
		return err
	}

	if !result.Accepted() {
		return s.markFailed(ctx, uow, msg, fmt.Sprintf("gateway rejected send (status %d)", result.AckCode), report)
	}

	sentAt := time.Now()
	won, err := uow.ScheduledMessageRepository().TransitionStatus(ctx, msg.Id, entity.MessageStatusSent, &sentAt, "")
	if err != nil {
		return err
	}
	if !won {
		return nil
	}
	report.Sent++

	history := &entity.MessageHistory{
		UserId:          msg.UserId,
		ClientId:        msg.ClientId,
		TemplateId:      msg.TemplateId,
		Body:            msg.Body,
		Phone:           msg.Phone,
		Status:          entity.MessageStatusSent,
		VendorMessageId: result.VendorMessageId,
	}
	if err := uow.MessageHistoryRepository().Create(ctx, history); err != nil {
		s.log.Warn("dispatcher", "Failed to record message history", map[string]interface{}{
			"message_id": msg.Id.String(),
			"error":      err.Error(),
		})
	}

	if msg.CampaignId != nil {
		s.resolveCampaignSend(ctx, uow, msg, entity.MessageStatusSent)
	}
	return nil
}

func (s *dispatcherService) markFailed(ctx context.Context, uow unitofwork.UnitOfWork, msg *entity.ScheduledMessage, reason string, report *entity.BatchReport) error {
	won, err := uow.ScheduledMessageRepository().TransitionStatus(ctx, msg.Id, entity.MessageStatusFailed, nil, reason)
	if err != nil {
		return err
	}
	if won {
		report.Failed++
		if msg.CampaignId != nil {
			s.resolveCampaignSend(ctx, uow, msg, entity.MessageStatusFailed)
		}
	}
	return nil
}

// resolveCampaignSend advances the campaign bookkeeping for a message that
// originated from a campaign: the matching send record, the run counters,
// and the running->completed transition once no pending sends remain.
func (s *dispatcherService) resolveCampaignSend(ctx context.Context, uow unitofwork.UnitOfWork, msg *entity.ScheduledMessage, status entity.MessageStatus) {
	campaignID := *msg.CampaignId

	if msg.ClientId != nil {
		sends, err := uow.CampaignSendRepository().FindAll(ctx,
			specification.Filter("campaign_id", campaignID),
			specification.ClientOwnedBy{ClientID: *msg.ClientId},
			specification.StatusIs{Status: string(entity.MessageStatusPending)},
		)
		if err == nil && len(sends) > 0 {
			if _, err := uow.CampaignSendRepository().TransitionStatus(ctx, sends[0].Id, status); err != nil {
				s.log.Warn("dispatcher", "Failed to resolve campaign send", map[string]interface{}{"error": err.Error()})
			}
		}
	}

	sent, failed := 0, 0
	if status == entity.MessageStatusSent {
		sent = 1
	} else {
		failed = 1
	}
	// A send ack is not a delivery receipt; delivered only advances on a
	// vendor delivery callback.
	if err := uow.CampaignRepository().IncrementCounters(ctx, campaignID, sent, 0, failed); err != nil {
		s.log.Warn("dispatcher", "Failed to advance campaign counters", map[string]interface{}{"error": err.Error()})
	}

	remaining, err := uow.CampaignSendRepository().CountByStatus(ctx, campaignID, entity.MessageStatusPending)
	if err == nil && remaining == 0 {
		if _, err := uow.CampaignRepository().TransitionStatus(ctx, campaignID, entity.CampaignStatusRunning, entity.CampaignStatusCompleted); err != nil {
			s.log.Warn("dispatcher", "Failed to complete campaign", map[string]interface{}{"error": err.Error()})
		}
	}
}
