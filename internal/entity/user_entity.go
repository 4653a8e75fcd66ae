package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a subscribing tenant. WhatsappInstance identifies the user's
// messaging channel at the gateway; WhatsappConnected mirrors the last known
// connectivity state.
type User struct {
	Id                uuid.UUID
	FullName          string
	Email             string
	Role              string
	WhatsappInstance  string
	WhatsappConnected bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
