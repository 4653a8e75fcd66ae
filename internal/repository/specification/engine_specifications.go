package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type ClientOwnedBy struct {
	ClientID uuid.UUID
}

func (s ClientOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("client_id = ?", s.ClientID)
}

// StatusIs filters on the status column shared by payments, messages,
// campaigns and sends.
type StatusIs struct {
	Status string
}

func (s StatusIs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// PendingNotExpired selects payments still worth a gateway lookup.
type PendingNotExpired struct {
	Now time.Time
}

func (s PendingNotExpired) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", "pending").Where("expires_at > ?", s.Now)
}

// PendingExpired selects payments whose checkout window has lapsed.
type PendingExpired struct {
	Now time.Time
}

func (s PendingExpired) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", "pending").Where("expires_at <= ?", s.Now)
}

// DueBefore selects scheduled messages whose send time has arrived.
type DueBefore struct {
	Now time.Time
}

func (s DueBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("scheduled_for <= ?", s.Now)
}

// OwnerChannelConnected keeps rows whose owning user has the messaging
// channel flagged connected. Messages of disconnected owners stay pending
// until the tenant reconnects; they are never selected, so never failed.
type OwnerChannelConnected struct{}

func (OwnerChannelConnected) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id IN (SELECT id FROM users WHERE whatsapp_connected = ? AND deleted_at IS NULL)", true)
}

// ScoreBetween filters clients on the persisted delinquency score, inclusive.
type ScoreBetween struct {
	Min int
	Max int
}

func (s ScoreBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("risk_score BETWEEN ? AND ?", s.Min, s.Max)
}
