package models

import (
	"time"

	"github.com/google/uuid"
)

// Membership is a user's paid subscription record. Rows are never deleted;
// expired or cancelled memberships are kept inactive as billing history.
type Membership struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	MembershipType string    `gorm:"size:50;not null" json:"membership_type"`
	Duration       string    `gorm:"size:50;not null" json:"duration"`
	ModeOfPayment  string    `gorm:"size:50;not null" json:"mode_of_payment"`
	StartDate      time.Time `gorm:"not null" json:"start_date"`
	EndDate        time.Time `gorm:"not null;index" json:"end_date"`
	IsActive       bool      `gorm:"not null;default:true;index" json:"is_active"`
	AutoRenew      bool      `gorm:"not null;default:true" json:"auto_renew"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
