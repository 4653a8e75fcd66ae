package contract

import (
	"context"
	"time"

	"chargeflow-be/internal/entity"
	"chargeflow-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScheduledMessageRepository is the store adapter for the dispatcher's queue.
type ScheduledMessageRepository interface {
	Create(ctx context.Context, message *entity.ScheduledMessage) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ScheduledMessage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ScheduledMessage, error)

	// FindDue returns pending messages whose scheduled_for has arrived,
	// oldest due first. Messages whose owner has the channel flagged
	// disconnected are excluded, not failed.
	FindDue(ctx context.Context, now time.Time) ([]*entity.ScheduledMessage, error)

	// TransitionStatus performs an atomic pending->status compare-and-set;
	// sentAt is written for sent, errMsg for failed.
	TransitionStatus(ctx context.Context, id uuid.UUID, status entity.MessageStatus, sentAt *time.Time, errMsg string) (bool, error)
}

type MessageTemplateRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MessageTemplate, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MessageTemplate, error)
}

type MessageHistoryRepository interface {
	Create(ctx context.Context, history *entity.MessageHistory) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MessageHistory, error)
}
