package repositories

import (
	"gavel/internal/models"
)

// UserBidItem pairs an item with the calling user's own top bid on it.
type UserBidItem struct {
	Item      models.Item `json:"item"`
	TopAmount int64       `json:"top_amount"`
}

// BidRepository defines access to the append-only bid ledger.
//
// PlaceBid performs the whole "item open? amount above current highest?
// append" sequence as one atomic unit against the store, so a bid row is
// either fully visible or absent. Serialization of concurrent PlaceBid calls
// on the same item is the auction service's job, not the repository's.
type BidRepository interface {
	PlaceBid(itemID, bidderID string, amount int64) (*models.Bid, error)
	Highest(itemID string) (*models.Bid, error)
	ListByItem(itemID string) ([]models.Bid, error)
	ListBidderIDs(itemID string) ([]string, error)
	ListUserBidItems(userID string) ([]UserBidItem, error)
}
