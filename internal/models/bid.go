package models

import "time"

// Bid is one immutable row of the append-only bid ledger. The current highest
// bid for an item is never stored separately; it is always derived as the
// maximum-amount bid (ties broken by earliest CreatedAt, then ID).
type Bid struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ItemID    string    `json:"item_id" gorm:"type:varchar(36);not null;index"`
	BidderID  string    `json:"bidder_id" gorm:"type:varchar(36);not null;index"`
	Amount    int64     `json:"amount" gorm:"not null;<-:create"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
