package model

import (
	"time"

	"github.com/google/uuid"
)

type ScheduledMessage struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClientId     *uuid.UUID `gorm:"type:uuid;index"`
	TemplateId   *uuid.UUID `gorm:"type:uuid"`
	CampaignId   *uuid.UUID `gorm:"type:uuid;index"`
	Body         string     `gorm:"type:text;not null"`
	Phone        string     `gorm:"type:varchar(50);not null"`
	ScheduledFor time.Time  `gorm:"not null;index"`
	Status       string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	SentAt       *time.Time
	Error        string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (ScheduledMessage) TableName() string {
	return "scheduled_messages"
}

type MessageTemplate struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Body      string    `gorm:"type:text;not null"`
	Active    bool      `gorm:"default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (MessageTemplate) TableName() string {
	return "message_templates"
}

type MessageHistory struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClientId        *uuid.UUID `gorm:"type:uuid;index"`
	TemplateId      *uuid.UUID `gorm:"type:uuid"`
	PaymentId       *uuid.UUID `gorm:"type:uuid"`
	Body            string     `gorm:"type:text;not null"`
	Phone           string     `gorm:"type:varchar(50);not null"`
	Status          string     `gorm:"type:varchar(20);not null"`
	VendorMessageId string     `gorm:"type:varchar(255)"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
}

func (MessageHistory) TableName() string {
	return "message_history"
}
