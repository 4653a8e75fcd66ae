package contract

import (
	"context"
	"time"

	"chargeflow-be/internal/entity"
	"chargeflow-be/internal/repository/specification"

	"github.com/google/uuid"
)

// PaymentRepository is the store adapter for subscription payments. The
// reconciler is the only writer.
type PaymentRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Payment, error)

	// FindPending returns pending payments whose expiry is still in the
	// future, in creation order.
	FindPending(ctx context.Context, now time.Time) ([]*entity.Payment, error)

	// MarkExpired cancels every pending payment whose expiry has lapsed and
	// returns the number of rows transitioned.
	MarkExpired(ctx context.Context, now time.Time) (int64, error)

	// TransitionStatus performs an atomic pending->status compare-and-set.
	// It reports false when the row was not in pending state anymore, which
	// callers must treat as "someone else already resolved this payment".
	TransitionStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus, settledAt *time.Time) (bool, error)
}

// ClientPaymentRepository mirrors PaymentRepository for charges issued
// against end-clients.
type ClientPaymentRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ClientPayment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ClientPayment, error)
	FindPending(ctx context.Context, now time.Time) ([]*entity.ClientPayment, error)
	MarkExpired(ctx context.Context, now time.Time) (int64, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus, settledAt *time.Time) (bool, error)
}
