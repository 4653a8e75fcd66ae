package entity

import (
	"time"

	"github.com/google/uuid"
)

type MessageStatus string

const (
	MessageStatusPending   MessageStatus = "pending"
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusFailed    MessageStatus = "failed"
	MessageStatusCancelled MessageStatus = "cancelled"
)

func (s MessageStatus) Terminal() bool {
	return s == MessageStatusSent || s == MessageStatusFailed || s == MessageStatusCancelled
}

// ScheduledMessage is a rendered outbound message waiting for dispatch.
// SentAt is set iff status is sent; Error is set only on failure.
type ScheduledMessage struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	ClientId     *uuid.UUID
	TemplateId   *uuid.UUID
	CampaignId   *uuid.UUID
	Body         string
	Phone        string
	ScheduledFor time.Time
	Status       MessageStatus
	SentAt       *time.Time
	Error        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type MessageTemplate struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Name      string
	Body      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MessageHistory records every outbound message that actually reached the
// gateway, including the normalized vendor-assigned id when one was returned.
type MessageHistory struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	ClientId        *uuid.UUID
	TemplateId      *uuid.UUID
	PaymentId       *uuid.UUID
	Body            string
	Phone           string
	Status          MessageStatus
	VendorMessageId string
	CreatedAt       time.Time
}
