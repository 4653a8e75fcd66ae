package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Campaign struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name            string         `gorm:"type:varchar(255);not null"`
	Description     string         `gorm:"type:text"`
	TemplateId      *uuid.UUID     `gorm:"type:uuid"`
	TargetAudience  datatypes.JSON `gorm:"type:jsonb"`
	ScheduledFor    *time.Time
	Status          string    `gorm:"type:varchar(20);not null;default:'draft';index"`
	TotalRecipients int       `gorm:"default:0"`
	SentCount       int       `gorm:"default:0"`
	DeliveredCount  int       `gorm:"default:0"`
	FailedCount     int       `gorm:"default:0"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

type CampaignSend struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CampaignId uuid.UUID `gorm:"type:uuid;not null;index"`
	ClientId   uuid.UUID `gorm:"type:uuid;not null;index"`
	Phone      string    `gorm:"type:varchar(50);not null"`
	Body       string    `gorm:"type:text;not null"`
	Status     string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (CampaignSend) TableName() string {
	return "campaign_sends"
}
