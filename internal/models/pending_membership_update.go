package models

import (
	"time"

	"github.com/google/uuid"
)

// PendingMembershipUpdate stages a type/duration change to be applied at the
// next renewal boundary. At most one row exists per user; scheduling a second
// update overwrites the first. The row is deleted when the renewal sweep
// applies it.
type PendingMembershipUpdate struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	MembershipType string    `gorm:"size:50;not null" json:"membership_type"`
	Duration       string    `gorm:"size:50;not null" json:"duration"`
	AutoRenew      bool      `gorm:"not null;default:true" json:"auto_renew"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
