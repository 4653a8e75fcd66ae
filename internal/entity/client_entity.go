package entity

import (
	"time"

	"github.com/google/uuid"
)

type ClientStatus string

const (
	ClientStatusActive    ClientStatus = "active"
	ClientStatusInactive  ClientStatus = "inactive"
	ClientStatusSuspended ClientStatus = "suspended"
)

type Client struct {
	Id                 uuid.UUID
	UserId             uuid.UUID
	Name               string
	Phone              string
	Email              string
	Status             ClientStatus
	SubscriptionAmount float64
	DueDate            time.Time
	LastPaymentDate    *time.Time
	RiskScore          int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// PaymentHistory is the aggregate the risk scorer consumes. It is derived
// from a client's billing records at computation time.
type PaymentHistory struct {
	TotalPayments int
	LatePayments  int
	AvgDelayDays  float64
	ClientAgeDays int
}

type RiskBand string

const (
	RiskBandLow    RiskBand = "low"
	RiskBandMedium RiskBand = "medium"
	RiskBandHigh   RiskBand = "high"
)

// BandForScore classifies a 0-100 delinquency score.
func BandForScore(score int) RiskBand {
	switch {
	case score <= 30:
		return RiskBandLow
	case score <= 70:
		return RiskBandMedium
	default:
		return RiskBandHigh
	}
}

// RiskStatistics summarises client delinquency for one owner.
type RiskStatistics struct {
	TotalClients int
	AvgScore     float64
	LowRisk      int
	MediumRisk   int
	HighRisk     int
}

type InteractionType string

const (
	InteractionPaymentReceived InteractionType = "payment_received"
	InteractionMessageSent     InteractionType = "message_sent"
)

type ClientInteraction struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	ClientId    uuid.UUID
	Type        InteractionType
	Description string
	CreatedAt   time.Time
}
