package service

import (
	"context"
	"fmt"
	"time"

	"chargeflow-be/internal/entity"
	"chargeflow-be/internal/gateway/payment"
	"chargeflow-be/internal/pkg/logger"
	"chargeflow-be/internal/pkg/pacer"
	"chargeflow-be/internal/repository/specification"
	"chargeflow-be/internal/repository/unitofwork"
	"chargeflow-be/pkg/events"
)

// EventPublisher is the engine-event sink (NATS in production).
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IReconcilerService interface {
	// ReconcilePayments runs one reconciliation batch: expire lapsed
	// pending payments first, then resolve the remaining pending ones
	// against the payment gateway. Per-item failures land in the report;
	// only setup failures return an error.
	ReconcilePayments(ctx context.Context) (*entity.BatchReport, error)
}

type reconcilerService struct {
	uowFactory     unitofwork.RepositoryFactory
	gateway        payment.PaymentGateway
	connectivity   *ConnectivityChecker
	pacer          pacer.Pacer
	notifier       INotifierService
	eventPublisher EventPublisher
	log            logger.ILogger
}

func NewReconcilerService(
	uowFactory unitofwork.RepositoryFactory,
	gateway payment.PaymentGateway,
	connectivity *ConnectivityChecker,
	pc pacer.Pacer,
	notifier INotifierService,
	eventPublisher EventPublisher,
	log logger.ILogger,
) IReconcilerService {
	return &reconcilerService{
		uowFactory:     uowFactory,
		gateway:        gateway,
		connectivity:   connectivity,
		pacer:          pc,
		notifier:       notifier,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *reconcilerService) ReconcilePayments(ctx context.Context) (*entity.BatchReport, error) {
	report := entity.NewBatchReport("payment_reconcile")
	now := time.Now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Expiry precedence: lapsed pending payments are cancelled outright,
	// no gateway call.
	expired, err := uow.PaymentRepository().MarkExpired(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("mark expired payments: %w", err)
	}
	report.Expired += int(expired)

	expiredClient, err := uow.ClientPaymentRepository().MarkExpired(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("mark expired client payments: %w", err)
	}
	report.Expired += int(expiredClient)

	pending, err := uow.PaymentRepository().FindPending(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("find pending payments: %w", err)
	}

	for i, p := range pending {
		if i > 0 {
			if err := s.pacer.Pause(ctx); err != nil {
				return report.Finish(), err
			}
		}
		report.Checked++
		if err := s.reconcileUserPayment(ctx, uow, p, report); err != nil {
			report.AddError(fmt.Sprintf("payment %s: %v", p.Id, err))
			s.log.Error("reconciler", "Payment reconciliation failed", map[string]interface{}{
				"payment_id": p.Id.String(),
				"error":      err.Error(),
			})
		}
	}

	pendingClient, err := uow.ClientPaymentRepository().FindPending(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("find pending client payments: %w", err)
	}

	for i, p := range pendingClient {
		if i > 0 || len(pending) > 0 {
			if err := s.pacer.Pause(ctx); err != nil {
				return report.Finish(), err
			}
		}
		report.Checked++
		if err := s.reconcileClientPayment(ctx, uow, p, report); err != nil {
			report.AddError(fmt.Sprintf("client payment %s: %v", p.Id, err))
			s.log.Error("reconciler", "Client payment reconciliation failed", map[string]interface{}{
				"payment_id": p.Id.String(),
				"error":      err.Error(),
			})
		}
	}

	if err := uow.AppSettingRepository().SetCronLastRun(ctx, "payment_reconcile", time.Now()); err != nil {
		s.log.Warn("reconciler", "Failed to record last run", map[string]interface{}{"error": err.Error()})
	}

	s.log.Info("reconciler", "Reconciliation batch completed", map[string]interface{}{
		"checked":  report.Checked,
		"approved": report.Approved,
		"expired":  report.Expired,
		"failed":   report.Failed,
		"errors":   len(report.Errors),
	})

	return report.Finish(), nil
}

func (s *reconcilerService) reconcileUserPayment(ctx context.Context, uow unitofwork.UnitOfWork, p *entity.Payment, report *entity.BatchReport) error {
	res, err := s.gateway.LookupStatus(ctx, p.GatewayRef)
	if err != nil {
		// Transient: leave pending, next batch retries.
		return err
	}

	switch res.Status {
	case entity.PaymentStatusPending:
		return nil

	case entity.PaymentStatusApproved:
		settledAt := time.Now()
		if res.PaidAt != nil {
			settledAt = *res.PaidAt
		}

		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer uow.Rollback()

		won, err := uow.PaymentRepository().TransitionStatus(ctx, p.Id, entity.PaymentStatusApproved, &settledAt)
		if err != nil {
			return err
		}
		if !won {
			// Someone else already resolved this payment; no side effects.
			return uow.Rollback()
		}
		if err := uow.SubscriptionRepository().Activate(ctx, p.UserId, p.PlanId); err != nil {
			return err
		}
		if err := uow.Commit(); err != nil {
			return err
		}

		report.Approved++
		if s.eventPublisher != nil {
			if err := s.eventPublisher.Publish(ctx, events.NewPaymentApprovedEvent(p.Id, p.UserId, p.Amount)); err != nil {
				s.log.Warn("reconciler", "Failed to publish approval event", map[string]interface{}{"error": err.Error()})
			}
		}
		return nil

	default:
		won, err := uow.PaymentRepository().TransitionStatus(ctx, p.Id, res.Status, nil)
		if err != nil {
			return err
		}
		if won {
			report.Failed++
		}
		return nil
	}
}

func (s *reconcilerService) reconcileClientPayment(ctx context.Context, uow unitofwork.UnitOfWork, p *entity.ClientPayment, report *entity.BatchReport) error {
	res, err := s.gateway.LookupStatus(ctx, p.GatewayRef)
	if err != nil {
		return err
	}

	switch res.Status {
	case entity.PaymentStatusPending:
		return nil

	case entity.PaymentStatusApproved:
		settledAt := time.Now()
		if res.PaidAt != nil {
			settledAt = *res.PaidAt
		}

		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer uow.Rollback()

		won, err := uow.ClientPaymentRepository().TransitionStatus(ctx, p.Id, entity.PaymentStatusApproved, &settledAt)
		if err != nil {
			return err
		}
		if !won {
			return uow.Rollback()
		}
		if err := uow.ClientRepository().MarkPaymentReceived(ctx, p.ClientId, settledAt); err != nil {
			return err
		}
		if err := uow.ClientRepository().CreateInteraction(ctx, &entity.ClientInteraction{
			UserId:      p.UserId,
			ClientId:    p.ClientId,
			Type:        entity.InteractionPaymentReceived,
			Description: fmt.Sprintf("Payment of %.2f received", p.Amount),
		}); err != nil {
			return err
		}
		if err := uow.Commit(); err != nil {
			return err
		}

		report.Approved++
		s.enqueueConfirmation(ctx, uow, p)
		if s.eventPublisher != nil {
			if err := s.eventPublisher.Publish(ctx, events.NewPaymentApprovedEvent(p.Id, p.UserId, p.Amount)); err != nil {
				s.log.Warn("reconciler", "Failed to publish approval event", map[string]interface{}{"error": err.Error()})
			}
		}
		return nil

	default:
		won, err := uow.ClientPaymentRepository().TransitionStatus(ctx, p.Id, res.Status, nil)
		if err != nil {
			return err
		}
		if won {
			report.Failed++
		}
		return nil
	}
}

// enqueueConfirmation hands a confirmation message to the notifier bus iff
// the owner's channel is connected right now. There is no deferred retry
// when it is not.
func (s *reconcilerService) enqueueConfirmation(ctx context.Context, uow unitofwork.UnitOfWork, p *entity.ClientPayment) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: p.UserId})
	if err != nil || user == nil {
		s.log.Warn("reconciler", "Owner not found for confirmation", map[string]interface{}{"user_id": p.UserId.String()})
		return
	}
	if !user.WhatsappConnected || user.WhatsappInstance == "" {
		return
	}
	connected, err := s.connectivity.IsConnected(ctx, user.WhatsappInstance)
	if err != nil || !connected {
		return
	}

	client, err := uow.ClientRepository().FindOne(ctx, specification.ByID{ID: p.ClientId})
	if err != nil || client == nil {
		return
	}

	body := fmt.Sprintf("Hi %s! We confirm the receipt of your payment of %.2f. Your subscription has been renewed. Thank you!",
		client.Name, p.Amount)

	if err := s.notifier.EnqueueConfirmation(ctx, &ConfirmationRequest{
		UserId:    p.UserId,
		ClientId:  p.ClientId,
		PaymentId: p.Id,
		Phone:     client.Phone,
		Body:      body,
	}); err != nil {
		s.log.Warn("reconciler", "Failed to enqueue confirmation", map[string]interface{}{
			"payment_id": p.Id.String(),
			"error":      err.Error(),
		})
	}
}
