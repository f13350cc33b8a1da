package models

// Category groups items. Deleting a category cascades to its items and,
// transitively, to their bids, images and favorites.
type Category struct {
	ID    string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name  string `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=1,max=100"`
	Items []Item `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
