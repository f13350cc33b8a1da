package repositories

import (
	"errors"
	"fmt"

	"gavel/internal/aucterrors"
	"gavel/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Upsert inserts the identity or refreshes its display attributes. The ID is
// assigned by the chat platform, so it is always supplied by the caller.
func (r *GORMUserRepository) Upsert(user *models.User) error {
	err := r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"username", "first_name", "last_name"}),
		}).
		Create(user).Error
	if err != nil {
		return fmt.Errorf("failed to upsert user %s: %w", user.ID, err)
	}
	return nil
}

// GetByID retrieves a cached identity.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, aucterrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return &user, nil
}

// SetNotificationsDisabled toggles the user's notification opt-out.
func (r *GORMUserRepository) SetNotificationsDisabled(id string, disabled bool) error {
	res := r.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("notifications_disabled", disabled)
	if res.Error != nil {
		return fmt.Errorf("failed to update notifications for user %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return aucterrors.ErrUserNotFound
	}
	return nil
}

// ListIDs returns every cached identity, for broadcast fan-out.
func (r *GORMUserRepository) ListIDs() ([]string, error) {
	var ids []string
	if err := r.db.Model(&models.User{}).Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list user IDs: %w", err)
	}
	return ids, nil
}
