package services

import (
	"fmt"

	"gavel/internal/aucterrors"
	"gavel/internal/models"
	"gavel/internal/repositories"
)

// UserService maintains the local cache of chat-platform identities.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// UpsertUser records or refreshes an identity seen by the front end.
func (s *UserService) UpsertUser(user *models.User) error {
	if user.ID == "" {
		return fmt.Errorf("%w: missing user ID", aucterrors.ErrInvalidInput)
	}
	return s.userRepo.Upsert(user)
}

// GetUser retrieves a cached identity.
func (s *UserService) GetUser(id string) (*models.User, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: missing user ID", aucterrors.ErrInvalidInput)
	}
	return s.userRepo.GetByID(id)
}

// SetNotificationsDisabled toggles the user's notification opt-out.
func (s *UserService) SetNotificationsDisabled(id string, disabled bool) error {
	if id == "" {
		return fmt.Errorf("%w: missing user ID", aucterrors.ErrInvalidInput)
	}
	return s.userRepo.SetNotificationsDisabled(id, disabled)
}

// ListUserIDs returns every cached identity, for broadcast fan-out.
func (s *UserService) ListUserIDs() ([]string, error) {
	return s.userRepo.ListIDs()
}
