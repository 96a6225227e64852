package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/strideapp/stride-backend/internal/models"
)

// ErrStaleMembership is returned by the guarded sweep writes when the row no
// longer matches the state it was read in, e.g. a cancel landed between the
// sweep query and the write. The sweep skips the record; the next run picks
// it up if it is still due.
var ErrStaleMembership = errors.New("membership was modified concurrently")

// MembershipRepository defines the persistence operations the membership
// lifecycle engine needs. The GORM implementation lives in this package;
// tests substitute an in-memory fake.
type MembershipRepository interface {
	// GetActiveMembership returns the user's single active membership, or
	// (nil, nil) when the user has none.
	GetActiveMembership(userID uuid.UUID) (*models.Membership, error)
	CreateMembership(m *models.Membership) error
	SaveMembership(m *models.Membership) error

	// GetPendingUpdate returns the user's staged update, or (nil, nil).
	GetPendingUpdate(userID uuid.UUID) (*models.PendingMembershipUpdate, error)
	// UpsertPendingUpdate overwrites any existing pending update for the
	// same user instead of creating a second row.
	UpsertPendingUpdate(p *models.PendingMembershipUpdate) error
	DeletePendingUpdate(id uuid.UUID) error

	// FindDueForRenewal returns active memberships with auto-renew enabled
	// whose end date is on or before asOf.
	FindDueForRenewal(asOf time.Time) ([]models.Membership, error)
	// FindDueForDeactivation returns active memberships with auto-renew
	// disabled whose end date is on or before asOf.
	FindDueForDeactivation(asOf time.Time) ([]models.Membership, error)

	// RenewInTx persists a renewed membership and, when pendingID is
	// non-nil, deletes the consumed pending update in the same transaction.
	// The write only applies if the row is still active with auto-renew on;
	// otherwise ErrStaleMembership is returned and nothing is changed.
	RenewInTx(m *models.Membership, pendingID *uuid.UUID) error
	// DeactivateMembership clears is_active, guarded the same way on the
	// active/non-renewing state the sweep read.
	DeactivateMembership(id uuid.UUID) error
}
