package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypePaymentApproved     = "PAYMENT_APPROVED"
	TypePaymentExpired      = "PAYMENT_EXPIRED"
	TypeCampaignExecuted    = "CAMPAIGN_EXECUTED"
	TypeScoreBatchCompleted = "SCORE_BATCH_COMPLETED"
)

func NewPaymentApprovedEvent(paymentID, userID uuid.UUID, amount float64) Event {
	return BaseEvent{
		Type: TypePaymentApproved,
		Data: map[string]interface{}{
			"payment_id": paymentID.String(),
			"user_id":    userID.String(),
			"amount":     amount,
		},
		OccurredAt: time.Now(),
	}
}

func NewPaymentExpiredEvent(paymentID, userID uuid.UUID) Event {
	return BaseEvent{
		Type: TypePaymentExpired,
		Data: map[string]interface{}{
			"payment_id": paymentID.String(),
			"user_id":    userID.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewCampaignExecutedEvent(campaignID, userID uuid.UUID, recipients int) Event {
	return BaseEvent{
		Type: TypeCampaignExecuted,
		Data: map[string]interface{}{
			"campaign_id": campaignID.String(),
			"user_id":     userID.String(),
			"recipients":  recipients,
		},
		OccurredAt: time.Now(),
	}
}

func NewScoreBatchCompletedEvent(userID uuid.UUID, scored, failed int) Event {
	return BaseEvent{
		Type: TypeScoreBatchCompleted,
		Data: map[string]interface{}{
			"user_id": userID.String(),
			"scored":  scored,
			"failed":  failed,
		},
		OccurredAt: time.Now(),
	}
}
