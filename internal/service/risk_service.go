package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"chargeflow-be/internal/entity"
	"chargeflow-be/internal/pkg/logger"
	"chargeflow-be/internal/repository/specification"
	"chargeflow-be/internal/repository/unitofwork"
	"chargeflow-be/pkg/events"

	"github.com/google/uuid"
)

var ErrClientNotFound = errors.New("client not found")

// Score weights. Their sum is 1.
const (
	weightLateRatio = 0.4
	weightAvgDelay  = 0.3
	weightFrequency = 0.3
	daysPerMonth    = 30.0
	maxDelayScore   = 100.0
	maxOverallScore = 100
)

type IRiskService interface {
	// Score recomputes and persists one client's delinquency score.
	Score(ctx context.Context, userID, clientID uuid.UUID) (int, error)

	// ScoreAll recomputes every client of the owner, with per-item
	// isolation, and returns the count updated.
	ScoreAll(ctx context.Context, userID uuid.UUID) (int, error)

	// ScoreBatch runs ScoreAll for every account. Used by the nightly job.
	ScoreBatch(ctx context.Context) (*entity.BatchReport, error)

	Statistics(ctx context.Context, userID uuid.UUID) (*entity.RiskStatistics, error)
}

type riskService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher EventPublisher
	log            logger.ILogger
}

func NewRiskService(uowFactory unitofwork.RepositoryFactory, eventPublisher EventPublisher, log logger.ILogger) IRiskService {
	return &riskService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *riskService) Score(ctx context.Context, userID, clientID uuid.UUID) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	client, err := uow.ClientRepository().FindOne(ctx,
		specification.ByID{ID: clientID},
		specification.UserOwnedBy{UserID: userID},
	)
	if err != nil {
		return 0, err
	}
	if client == nil {
		return 0, ErrClientNotFound
	}

	history, err := uow.ClientRepository().PaymentHistory(ctx, clientID)
	if err != nil {
		return 0, err
	}

	score := computeScore(history)
	if err := uow.ClientRepository().UpdateRiskScore(ctx, clientID, score); err != nil {
		return 0, err
	}
	return score, nil
}

func (s *riskService) ScoreAll(ctx context.Context, userID uuid.UUID) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ids, err := uow.ClientRepository().FindIDs(ctx, specification.UserOwnedBy{UserID: userID})
	if err != nil {
		return 0, fmt.Errorf("list clients: %w", err)
	}

	updated := 0
	failed := 0
	for _, id := range ids {
		history, err := uow.ClientRepository().PaymentHistory(ctx, id)
		if err != nil {
			failed++
			s.log.Error("risk", "Payment history aggregation failed", map[string]interface{}{
				"client_id": id.String(),
				"error":     err.Error(),
			})
			continue
		}
		if err := uow.ClientRepository().UpdateRiskScore(ctx, id, computeScore(history)); err != nil {
			failed++
			s.log.Error("risk", "Score persistence failed", map[string]interface{}{
				"client_id": id.String(),
				"error":     err.Error(),
			})
			continue
		}
		updated++
	}

	s.log.Info("risk", "Score batch completed", map[string]interface{}{
		"user_id": userID.String(),
		"updated": updated,
		"failed":  failed,
	})
	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewScoreBatchCompletedEvent(userID, updated, failed)); err != nil {
			s.log.Warn("risk", "Failed to publish score batch event", map[string]interface{}{"error": err.Error()})
		}
	}

	return updated, nil
}

func (s *riskService) ScoreBatch(ctx context.Context) (*entity.BatchReport, error) {
	report := entity.NewBatchReport("risk_score")
	uow := s.uowFactory.NewUnitOfWork(ctx)

	users, err := uow.UserRepository().FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	for _, user := range users {
		updated, err := s.ScoreAll(ctx, user.Id)
		if err != nil {
			report.AddError(fmt.Sprintf("user %s: %v", user.Id, err))
			continue
		}
		report.Checked++
		report.Updated += updated
	}

	if err := uow.AppSettingRepository().SetCronLastRun(ctx, "risk_score", time.Now()); err != nil {
		s.log.Warn("risk", "Failed to record batch completion time", map[string]interface{}{"error": err.Error()})
	}

	return report.Finish(), nil
}

func (s *riskService) Statistics(ctx context.Context, userID uuid.UUID) (*entity.RiskStatistics, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ClientRepository().RiskStatistics(ctx, userID)
}

// computeScore turns a payment-history aggregate into a 0-100 delinquency
// score. The frequency term is intentionally not capped before weighting,
// matching the shipped formula; young clients with several late payments
// can push it past 100 and only the final clamp contains it.
func computeScore(h *entity.PaymentHistory) int {
	if h == nil || h.TotalPayments == 0 {
		return 0
	}

	lateRatio := float64(h.LatePayments) / float64(h.TotalPayments) * 100
	delayScore := math.Min(h.AvgDelayDays*10, maxDelayScore)

	ageMonths := float64(h.ClientAgeDays) / daysPerMonth
	if ageMonths < 1 {
		ageMonths = 1
	}
	frequencyScore := float64(h.LatePayments) / ageMonths * 100

	final := lateRatio*weightLateRatio + delayScore*weightAvgDelay + frequencyScore*weightFrequency

	score := int(math.Round(final))
	if score > maxOverallScore {
		return maxOverallScore
	}
	if score < 0 {
		return 0
	}
	return score
}
