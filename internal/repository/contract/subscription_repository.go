package contract

import (
	"context"

	"chargeflow-be/internal/entity"
	"chargeflow-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SubscriptionRepository interface {
	FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error)
	FindAllPlans(ctx context.Context, specs ...specification.Specification) ([]*entity.SubscriptionPlan, error)

	FindOneSubscription(ctx context.Context, specs ...specification.Specification) (*entity.UserSubscription, error)
	FindAllSubscriptions(ctx context.Context, specs ...specification.Specification) ([]*entity.UserSubscription, error)

	// Activate grants the user an active subscription for the plan, creating
	// the row or extending the current period, whichever applies.
	Activate(ctx context.Context, userID, planID uuid.UUID) error
}
