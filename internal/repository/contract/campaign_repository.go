package contract

import (
	"context"

	"chargeflow-be/internal/entity"
	"chargeflow-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CampaignRepository interface {
	Create(ctx context.Context, campaign *entity.Campaign) error
	Update(ctx context.Context, campaign *entity.Campaign) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Campaign, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Campaign, error)

	// TransitionStatus performs an atomic from->to compare-and-set on the
	// campaign state machine.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to entity.CampaignStatus) (bool, error)

	// SetRecipientCount freezes the materialized recipient-set size.
	SetRecipientCount(ctx context.Context, id uuid.UUID, total int) error

	// IncrementCounters bumps the monotonically non-decreasing run counters.
	IncrementCounters(ctx context.Context, id uuid.UUID, sent, delivered, failed int) error
}

type CampaignSendRepository interface {
	CreateBatch(ctx context.Context, sends []*entity.CampaignSend) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CampaignSend, error)
	CountByStatus(ctx context.Context, campaignID uuid.UUID, status entity.MessageStatus) (int64, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, status entity.MessageStatus) (bool, error)
}
