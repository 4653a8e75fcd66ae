package contract

import (
	"context"
	"time"

	"chargeflow-be/internal/entity"
	"chargeflow-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ClientRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Client, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Client, error)
	FindIDs(ctx context.Context, specs ...specification.Specification) ([]uuid.UUID, error)

	// MarkPaymentReceived records a settled payment against the client:
	// last_payment_date is set and due_date rolls forward one billing cycle.
	MarkPaymentReceived(ctx context.Context, id uuid.UUID, paidAt time.Time) error

	// UpdateRiskScore persists a recomputed delinquency score.
	UpdateRiskScore(ctx context.Context, id uuid.UUID, score int) error

	// PaymentHistory aggregates the client's billing records for the scorer.
	PaymentHistory(ctx context.Context, id uuid.UUID) (*entity.PaymentHistory, error)

	// RiskStatistics summarises active clients of one owner by risk band.
	RiskStatistics(ctx context.Context, userID uuid.UUID) (*entity.RiskStatistics, error)

	CreateInteraction(ctx context.Context, interaction *entity.ClientInteraction) error
}
