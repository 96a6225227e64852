package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/strideapp/stride-backend/internal/catalog"
	"github.com/strideapp/stride-backend/internal/models"
	"github.com/strideapp/stride-backend/internal/repository"
)

var (
	ErrMissingFields         = errors.New("missing required fields")
	ErrInvalidDuration       = errors.New("invalid duration")
	ErrInvalidMembershipType = errors.New("invalid membership type")
	ErrInvalidPaymentMethod  = errors.New("invalid mode of payment")
	ErrAlreadyActive         = errors.New("user already has an active membership")
	ErrNoActiveMembership    = errors.New("user does not have an active membership")
)

const (
	MsgPurchased       = "Membership purchased successfully"
	MsgAutoRenewOff    = "Auto-renew disabled successfully."
	MsgCancelled       = "Membership cancelled and auto-renew disabled successfully."
	MsgUpdateScheduled = "Membership update scheduled successfully and auto renew is turned on"
)

// MembershipService is the membership lifecycle engine. It owns every state
// transition of a user's membership slot: purchase, cancel, scheduled update,
// and the two time-driven sweeps (renewal and deactivation). The clock is
// injected so transitions can be driven deterministically in tests.
type MembershipService struct {
	repo repository.MembershipRepository
	now  func() time.Time
}

func NewMembershipService(repo repository.MembershipRepository) *MembershipService {
	return &MembershipService{
		repo: repo,
		now:  time.Now,
	}
}

// WithClock overrides the service clock. Used by tests and by the scheduler
// wiring when a fixed reference time is needed.
func (s *MembershipService) WithClock(now func() time.Time) *MembershipService {
	s.now = now
	return s
}

// Buy purchases a new membership for the user. Validation failures are
// reported in a fixed priority order: missing fields, then duration, then
// membership type, then payment method. A user with an active membership
// cannot purchase a second one.
func (s *MembershipService) Buy(userID uuid.UUID, membershipType, duration, modeOfPayment string) (*models.Membership, error) {
	if membershipType == "" || duration == "" || modeOfPayment == "" {
		return nil, ErrMissingFields
	}
	if !catalog.IsValidDuration(duration) {
		return nil, ErrInvalidDuration
	}
	if !catalog.IsValidMembershipType(membershipType) {
		return nil, ErrInvalidMembershipType
	}
	if !catalog.IsValidPaymentMethod(modeOfPayment) {
		return nil, ErrInvalidPaymentMethod
	}

	existing, err := s.repo.GetActiveMembership(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyActive
	}

	start := s.now()
	m := &models.Membership{
		ID:             uuid.New(),
		UserID:         userID,
		MembershipType: membershipType,
		Duration:       duration,
		ModeOfPayment:  modeOfPayment,
		StartDate:      start,
		EndDate:        start.AddDate(0, 0, catalog.PeriodDays(duration)),
		IsActive:       true,
		AutoRenew:      true,
	}
	if err := s.repo.CreateMembership(m); err != nil {
		return nil, err
	}

	slog.Info("membership purchased",
		"user_id", userID.String(),
		"membership_type", membershipType,
		"duration", duration,
	)
	return m, nil
}

// Cancel adjusts the user's active membership based on where now() sits
// relative to the end date. Before the end date only auto-renew is switched
// off and the membership stays active for the paid period. On or after the
// end date the record has expired without being swept, so Cancel deactivates
// it on the spot as well.
func (s *MembershipService) Cancel(userID uuid.UUID) (string, error) {
	m, err := s.repo.GetActiveMembership(userID)
	if err != nil {
		return "", err
	}
	if m == nil {
		return "", ErrNoActiveMembership
	}

	var message string
	if s.now().Before(m.EndDate) {
		m.AutoRenew = false
		message = MsgAutoRenewOff
	} else {
		m.IsActive = false
		m.AutoRenew = false
		message = MsgCancelled
	}

	if err := s.repo.SaveMembership(m); err != nil {
		return "", err
	}

	slog.Info("membership cancel requested",
		"user_id", userID.String(),
		"still_active", m.IsActive,
	)
	return message, nil
}

// ScheduleUpdate stages a type/duration change to be applied at the next
// renewal. A second schedule before the renewal overwrites the first
// (last-write-wins, no merge). Auto-renew is forced on for the current
// membership: the staged change can only take effect through a renewal, so
// scheduling one implies the user wants that renewal to happen.
func (s *MembershipService) ScheduleUpdate(userID uuid.UUID, membershipType, duration string, autoRenew bool) (string, error) {
	if membershipType == "" || duration == "" {
		return "", ErrMissingFields
	}

	current, err := s.repo.GetActiveMembership(userID)
	if err != nil {
		return "", err
	}
	if current == nil {
		return "", ErrNoActiveMembership
	}

	if !catalog.IsValidMembershipType(membershipType) {
		return "", ErrInvalidMembershipType
	}
	if !catalog.IsValidDuration(duration) {
		return "", ErrInvalidDuration
	}

	pending := &models.PendingMembershipUpdate{
		ID:             uuid.New(),
		UserID:         userID,
		MembershipType: membershipType,
		Duration:       duration,
		AutoRenew:      autoRenew,
	}
	if err := s.repo.UpsertPendingUpdate(pending); err != nil {
		return "", err
	}

	current.AutoRenew = true
	if err := s.repo.SaveMembership(current); err != nil {
		return "", err
	}

	slog.Info("membership update scheduled",
		"user_id", userID.String(),
		"membership_type", membershipType,
		"duration", duration,
	)
	return MsgUpdateScheduled, nil
}

// ApplyRenewals extends every active, auto-renewing membership whose end date
// is on or before asOf. A staged pending update is applied first: its type,
// duration and auto-renew flag overwrite the membership, the new end date is
// computed from the NEW duration, and the pending row is deleted in the same
// transaction as the membership write. Without a pending update the end date
// is extended by the membership's existing duration. The new period always
// starts where the old one ended, keeping billing periods continuous.
// Failures are logged per record and do not stop the sweep.
func (s *MembershipService) ApplyRenewals(asOf time.Time) error {
	due, err := s.repo.FindDueForRenewal(asOf)
	if err != nil {
		return fmt.Errorf("renewal sweep query failed: %w", err)
	}

	for i := range due {
		m := &due[i]
		err := s.renewOne(m)
		switch {
		case errors.Is(err, repository.ErrStaleMembership):
			// The record changed between the sweep query and the write
			// (e.g. a concurrent cancel). Skip it; the next sweep picks it
			// up if it is still due.
			slog.Info("membership renewal skipped, record changed concurrently",
				"membership_id", m.ID.String(),
				"user_id", m.UserID.String(),
			)
		case err != nil:
			slog.Error("membership renewal failed",
				"membership_id", m.ID.String(),
				"user_id", m.UserID.String(),
				"error", err.Error(),
			)
		}
	}
	return nil
}

func (s *MembershipService) renewOne(m *models.Membership) error {
	pending, err := s.repo.GetPendingUpdate(m.UserID)
	if err != nil {
		return err
	}

	var pendingID *uuid.UUID
	if pending != nil {
		m.MembershipType = pending.MembershipType
		m.Duration = pending.Duration
		m.AutoRenew = pending.AutoRenew
		pendingID = &pending.ID
	}

	days := catalog.PeriodDays(m.Duration)
	if days == 0 {
		return fmt.Errorf("membership %s has unknown duration %q", m.ID, m.Duration)
	}
	m.EndDate = m.EndDate.AddDate(0, 0, days)

	if err := s.repo.RenewInTx(m, pendingID); err != nil {
		return err
	}

	slog.Info("membership renewed",
		"membership_id", m.ID.String(),
		"user_id", m.UserID.String(),
		"end_date", m.EndDate.Format(time.RFC3339),
		"applied_pending_update", pending != nil,
	)
	return nil
}

// ApplyDeactivations deactivates every active membership whose end date is on
// or before asOf and whose auto-renew flag is off. Failures are logged per
// record and do not stop the sweep.
func (s *MembershipService) ApplyDeactivations(asOf time.Time) error {
	due, err := s.repo.FindDueForDeactivation(asOf)
	if err != nil {
		return fmt.Errorf("deactivation sweep query failed: %w", err)
	}

	for i := range due {
		m := &due[i]
		err := s.repo.DeactivateMembership(m.ID)
		switch {
		case errors.Is(err, repository.ErrStaleMembership):
			slog.Info("membership deactivation skipped, record changed concurrently",
				"membership_id", m.ID.String(),
				"user_id", m.UserID.String(),
			)
		case err != nil:
			slog.Error("membership deactivation failed",
				"membership_id", m.ID.String(),
				"user_id", m.UserID.String(),
				"error", err.Error(),
			)
		default:
			slog.Info("membership deactivated",
				"membership_id", m.ID.String(),
				"user_id", m.UserID.String(),
			)
		}
	}
	return nil
}

// HasActiveMembership reports whether the user currently holds an active
// membership.
func (s *MembershipService) HasActiveMembership(userID uuid.UUID) (bool, error) {
	m, err := s.repo.GetActiveMembership(userID)
	if err != nil {
		return false, err
	}
	return m != nil, nil
}

// GetCurrentMembership returns the user's active membership, or nil when the
// user has none.
func (s *MembershipService) GetCurrentMembership(userID uuid.UUID) (*models.Membership, error) {
	return s.repo.GetActiveMembership(userID)
}

// GetNextBillingDate returns the end date of the user's active membership,
// which is when the next renewal would bill, or nil without one.
func (s *MembershipService) GetNextBillingDate(userID uuid.UUID) (*time.Time, error) {
	m, err := s.repo.GetActiveMembership(userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	return &m.EndDate, nil
}

// GetPendingMembership returns the user's staged membership update, or nil
// when none is scheduled.
func (s *MembershipService) GetPendingMembership(userID uuid.UUID) (*models.PendingMembershipUpdate, error) {
	return s.repo.GetPendingUpdate(userID)
}
