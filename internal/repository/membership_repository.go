package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/strideapp/stride-backend/internal/models"
	"gorm.io/gorm"
)

type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository returns the GORM-backed MembershipRepository.
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) GetActiveMembership(userID uuid.UUID) (*models.Membership, error) {
	var m models.Membership
	err := r.db.Where("user_id = ? AND is_active = ?", userID, true).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query active membership: %w", err)
	}
	return &m, nil
}

func (r *membershipRepository) CreateMembership(m *models.Membership) error {
	if err := r.db.Create(m).Error; err != nil {
		return fmt.Errorf("failed to create membership: %w", err)
	}
	return nil
}

func (r *membershipRepository) SaveMembership(m *models.Membership) error {
	if err := r.db.Save(m).Error; err != nil {
		return fmt.Errorf("failed to save membership: %w", err)
	}
	return nil
}

func (r *membershipRepository) GetPendingUpdate(userID uuid.UUID) (*models.PendingMembershipUpdate, error) {
	var p models.PendingMembershipUpdate
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query pending update: %w", err)
	}
	return &p, nil
}

func (r *membershipRepository) UpsertPendingUpdate(p *models.PendingMembershipUpdate) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.PendingMembershipUpdate
		err := tx.Where("user_id = ?", p.UserID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(p).Error
		}
		if err != nil {
			return err
		}
		existing.MembershipType = p.MembershipType
		existing.Duration = p.Duration
		existing.AutoRenew = p.AutoRenew
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		*p = existing
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to upsert pending update: %w", err)
	}
	return nil
}

func (r *membershipRepository) DeletePendingUpdate(id uuid.UUID) error {
	if err := r.db.Delete(&models.PendingMembershipUpdate{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete pending update: %w", err)
	}
	return nil
}

func (r *membershipRepository) FindDueForRenewal(asOf time.Time) ([]models.Membership, error) {
	var due []models.Membership
	err := r.db.
		Where("is_active = ? AND auto_renew = ? AND end_date <= ?", true, true, asOf).
		Find(&due).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships due for renewal: %w", err)
	}
	return due, nil
}

func (r *membershipRepository) FindDueForDeactivation(asOf time.Time) ([]models.Membership, error) {
	var due []models.Membership
	err := r.db.
		Where("is_active = ? AND auto_renew = ? AND end_date <= ?", true, false, asOf).
		Find(&due).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships due for deactivation: %w", err)
	}
	return due, nil
}

// RenewInTx writes the renewed membership and deletes the consumed pending
// update as one transaction, so a renewal can never leave a stale pending
// row behind or apply the pending row without extending the membership.
// The membership update is conditional on the row still being active with
// auto-renew on, which is the state the sweep query selected it in; a
// concurrent cancel makes the write a no-op and the record is skipped.
func (r *membershipRepository) RenewInTx(m *models.Membership, pendingID *uuid.UUID) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Membership{}).
			Where("id = ? AND is_active = ? AND auto_renew = ?", m.ID, true, true).
			Updates(map[string]interface{}{
				"membership_type": m.MembershipType,
				"duration":        m.Duration,
				"auto_renew":      m.AutoRenew,
				"end_date":        m.EndDate,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleMembership
		}
		if pendingID != nil {
			if err := tx.Delete(&models.PendingMembershipUpdate{}, "id = ?", *pendingID).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, ErrStaleMembership) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to renew membership: %w", err)
	}
	return nil
}

// DeactivateMembership clears is_active with the same conditional guard.
func (r *membershipRepository) DeactivateMembership(id uuid.UUID) error {
	res := r.db.Model(&models.Membership{}).
		Where("id = ? AND is_active = ? AND auto_renew = ?", id, true, false).
		Update("is_active", false)
	if res.Error != nil {
		return fmt.Errorf("failed to deactivate membership: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrStaleMembership
	}
	return nil
}
