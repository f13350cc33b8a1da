package models

import "time"

// ItemImage is one entry of an item's ordered gallery. FileRef is an opaque
// identifier issued by the external file-hosting service.
type ItemImage struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ItemID    string    `json:"item_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_item_images_item_position"`
	FileRef   string    `json:"file_ref" gorm:"type:varchar(512);not null"`
	Position  int       `json:"position" gorm:"not null;uniqueIndex:idx_item_images_item_position"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (ItemImage) TableName() string {
	return "item_images"
}
