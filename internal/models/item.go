package models

import "time"

// Item is a single listing open for bidding. StartPrice is in minor currency
// units and immutable once created; IsOpen flips to false exactly once, via the
// close transition. LegacyImageFileID is the pre-gallery single-image column and
// is only read by the migration that backfills it into ItemImages at position 0.
type Item struct {
	ID                string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	SellerID          string    `json:"seller_id" gorm:"type:varchar(36);not null;index" validate:"required"`
	CategoryID        string    `json:"category_id" gorm:"type:varchar(36);not null;index" validate:"required"`
	Title             string    `json:"title" gorm:"type:varchar(255);not null" validate:"required,min=1,max=255"`
	Description       string    `json:"description" gorm:"type:text" validate:"omitempty,max=2000"`
	StartPrice        int64     `json:"start_price" gorm:"not null;<-:create" validate:"required,gt=0"`
	LegacyImageFileID *string   `json:"-" gorm:"column:image_file_id;type:text"`
	IsOpen            bool      `json:"is_open" gorm:"not null;default:true"`
	IsNew             bool      `json:"is_new" gorm:"not null;default:true"`
	CreatedAt         time.Time `json:"created_at" gorm:"autoCreateTime"`

	Images []ItemImage `json:"images,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Bids   []Bid       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
