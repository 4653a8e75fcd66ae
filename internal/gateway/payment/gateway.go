package payment

import (
	"context"
	"time"

	"chargeflow-be/internal/entity"
)

// StatusResult is the normalized outcome of a gateway status lookup.
type StatusResult struct {
	Status       entity.PaymentStatus
	VendorStatus string
	PaidAt       *time.Time
}

// PaymentGateway resolves the authoritative state of a charge at the
// payment vendor. Implementations must be side-effect free: a lookup
// never mutates the charge.
type PaymentGateway interface {
	LookupStatus(ctx context.Context, orderRef string) (*StatusResult, error)
}
