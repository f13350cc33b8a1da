package repositories

import (
	"gavel/internal/models"
)

// UserRepository defines access to the local cache of chat-platform identities.
type UserRepository interface {
	Upsert(user *models.User) error
	GetByID(id string) (*models.User, error)
	SetNotificationsDisabled(id string, disabled bool) error
	ListIDs() ([]string, error)
}
