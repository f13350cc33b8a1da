package models

import "time"

// User is a local cache of a chat-platform identity. Items, bids and favorites
// reference identities by value only; a row here is not required to exist first.
type User struct {
	ID                    string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"required"`
	Username              string    `json:"username" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	FirstName             string    `json:"first_name" gorm:"type:varchar(100)"`
	LastName              string    `json:"last_name" gorm:"type:varchar(100)"`
	NotificationsDisabled bool      `json:"notifications_disabled"`
	CreatedAt             time.Time `json:"created_at" gorm:"autoCreateTime"`
}
