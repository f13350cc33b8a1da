package models

import "time"

// Favorite bookmarks an item for a user. The composite primary key makes the
// add operation naturally idempotent: a duplicate insert is absorbed, not an error.
type Favorite struct {
	UserID    string    `json:"user_id" gorm:"primaryKey;type:varchar(36)"`
	ItemID    string    `json:"item_id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
