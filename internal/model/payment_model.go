package model

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID  `gorm:"type:uuid;not null;index"`
	PlanId        uuid.UUID  `gorm:"type:uuid;not null;index"`
	Amount        float64    `gorm:"type:decimal(10,2);not null"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentMethod string     `gorm:"type:varchar(50)"`
	GatewayRef    string     `gorm:"type:varchar(255);index"`
	ExpiresAt     time.Time  `gorm:"not null"`
	SettledAt     *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Payment) TableName() string {
	return "payments"
}

type ClientPayment struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClientId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Amount        float64    `gorm:"type:decimal(10,2);not null"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentMethod string     `gorm:"type:varchar(50)"`
	GatewayRef    string     `gorm:"type:varchar(255);index"`
	ExpiresAt     time.Time  `gorm:"not null"`
	SettledAt     *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (ClientPayment) TableName() string {
	return "client_payments"
}
