package dto

import (
	"time"

	"chargeflow-be/internal/entity"

	"github.com/google/uuid"
)

type ScoreRangeRequest struct {
	Min int `json:"min" validate:"min=0,max=100"`
	Max int `json:"max" validate:"min=0,max=100,gtefield=Min"`
}

type TargetAudienceRequest struct {
	Status     string             `json:"status" validate:"omitempty,oneof=active inactive suspended"`
	ScoreRange *ScoreRangeRequest `json:"score_range" validate:"omitempty"`
}

type CreateCampaignRequest struct {
	Name           string                `json:"name" validate:"required,min=3,max=255"`
	Description    string                `json:"description"`
	TemplateId     string                `json:"template_id" validate:"required,uuid4"`
	TargetAudience TargetAudienceRequest `json:"target_audience"`
	ScheduledFor   *time.Time            `json:"scheduled_for"`
}

type CampaignResponse struct {
	Id              uuid.UUID             `json:"id"`
	Name            string                `json:"name"`
	Description     string                `json:"description,omitempty"`
	TemplateId      *uuid.UUID            `json:"template_id,omitempty"`
	TargetAudience  entity.TargetAudience `json:"target_audience"`
	ScheduledFor    *time.Time            `json:"scheduled_for,omitempty"`
	Status          string                `json:"status"`
	TotalRecipients int                   `json:"total_recipients"`
	SentCount       int                   `json:"sent_count"`
	DeliveredCount  int                   `json:"delivered_count"`
	FailedCount     int                   `json:"failed_count"`
	CreatedAt       time.Time             `json:"created_at"`
}

type ExecuteCampaignResponse struct {
	Executed   bool `json:"executed"`
	Recipients int  `json:"recipients"`
}
