package entity

import (
	"time"

	"github.com/google/uuid"
)

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusScheduled CampaignStatus = "scheduled"
	CampaignStatusRunning   CampaignStatus = "running"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusCancelled CampaignStatus = "cancelled"
)

// ScoreRange bounds a delinquency-score segmentation filter, inclusive.
type ScoreRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// TargetAudience is a campaign's segmentation criteria. A zero value matches
// every client owned by the campaign's user.
type TargetAudience struct {
	Status     string      `json:"status,omitempty"`
	ScoreRange *ScoreRange `json:"score_range,omitempty"`
}

type Campaign struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	Name            string
	Description     string
	TemplateId      *uuid.UUID
	TargetAudience  TargetAudience
	ScheduledFor    *time.Time
	Status          CampaignStatus
	TotalRecipients int
	SentCount       int
	DeliveredCount  int
	FailedCount     int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CampaignSend is one materialized recipient of an executed campaign. The
// recipient set is frozen at execution time and never re-evaluated.
type CampaignSend struct {
	Id         uuid.UUID
	CampaignId uuid.UUID
	ClientId   uuid.UUID
	Phone      string
	Body       string
	Status     MessageStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
