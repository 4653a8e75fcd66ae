package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusApproved  PaymentStatus = "approved"
	PaymentStatusCancelled PaymentStatus = "cancelled"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Terminal reports whether a status can no longer change.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusApproved || s == PaymentStatusCancelled || s == PaymentStatusFailed
}

// Payment is a subscription payment initiated by a platform user at checkout.
// Its status is mutated only by the reconciler.
type Payment struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	PlanId        uuid.UUID
	Amount        float64
	Status        PaymentStatus
	PaymentMethod string
	GatewayRef    string
	ExpiresAt     time.Time
	SettledAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ClientPayment is a charge issued against one of a user's end-clients.
// Approval rolls the client's due date forward instead of activating a plan.
type ClientPayment struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	ClientId      uuid.UUID
	Amount        float64
	Status        PaymentStatus
	PaymentMethod string
	GatewayRef    string
	ExpiresAt     time.Time
	SettledAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
