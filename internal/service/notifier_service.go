package service

import (
	"context"
	"encoding/json"
	"time"

	"chargeflow-be/internal/entity"
	"chargeflow-be/internal/pkg/logger"
	"chargeflow-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const confirmationTopic = "confirmation.enqueue"

// ConfirmationRequest is the fire-and-forget hand-off the reconciler makes
// on client-payment approval. The consumer turns it into a pending
// scheduled message the dispatcher picks up on its next run.
type ConfirmationRequest struct {
	UserId    uuid.UUID `json:"user_id"`
	ClientId  uuid.UUID `json:"client_id"`
	PaymentId uuid.UUID `json:"payment_id"`
	Phone     string    `json:"phone"`
	Body      string    `json:"body"`
}

type INotifierService interface {
	EnqueueConfirmation(ctx context.Context, req *ConfirmationRequest) error

	// StartConsumer runs the confirmation consumer until the context is
	// cancelled. Call it once, on its own goroutine.
	StartConsumer(ctx context.Context) error
}

type notifierService struct {
	bus        *gochannel.GoChannel
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewNotifierService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) INotifierService {
	bus := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 128,
	}, watermill.NopLogger{})

	return &notifierService{
		bus:        bus,
		uowFactory: uowFactory,
		log:        log,
	}
}

func (s *notifierService) EnqueueConfirmation(ctx context.Context, req *ConfirmationRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}
	return s.bus.Publish(confirmationTopic, message.NewMessage(watermill.NewUUID(), payload))
}

func (s *notifierService) StartConsumer(ctx context.Context) error {
	messages, err := s.bus.Subscribe(ctx, confirmationTopic)
	if err != nil {
		return err
	}

	for msg := range messages {
		var req ConfirmationRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			s.log.Error("notifier", "Malformed confirmation request", map[string]interface{}{"error": err.Error()})
			msg.Ack()
			continue
		}

		if err := s.createScheduledMessage(ctx, &req); err != nil {
			s.log.Error("notifier", "Failed to enqueue confirmation message", map[string]interface{}{
				"payment_id": req.PaymentId.String(),
				"error":      err.Error(),
			})
			// Don't redeliver: the confirmation is best effort by design.
		}
		msg.Ack()
	}
	return nil
}

func (s *notifierService) createScheduledMessage(ctx context.Context, req *ConfirmationRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	clientID := req.ClientId
	return uow.ScheduledMessageRepository().Create(ctx, &entity.ScheduledMessage{
		UserId:       req.UserId,
		ClientId:     &clientID,
		Body:         req.Body,
		Phone:        req.Phone,
		ScheduledFor: time.Now(),
		Status:       entity.MessageStatusPending,
	})
}
