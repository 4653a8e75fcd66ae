package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	Id                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId             uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name               string     `gorm:"type:varchar(255);not null"`
	Phone              string     `gorm:"type:varchar(50);not null"`
	Email              string     `gorm:"type:varchar(255)"`
	Status             string     `gorm:"type:varchar(20);not null;default:'active';index"`
	SubscriptionAmount float64    `gorm:"type:decimal(10,2);default:0"`
	DueDate            time.Time  `gorm:"not null"`
	LastPaymentDate    *time.Time
	RiskScore          int            `gorm:"default:0;index"`
	CreatedAt          time.Time      `gorm:"autoCreateTime"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime"`
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

func (Client) TableName() string {
	return "clients"
}

type ClientInteraction struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;index"`
	ClientId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Type        string    `gorm:"type:varchar(50);not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (ClientInteraction) TableName() string {
	return "client_interactions"
}
