package repositories

import (
	"errors"
	"fmt"

	"gavel/internal/aucterrors"
	"gavel/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMBidRepository is a GORM implementation of BidRepository.
type GORMBidRepository struct {
	db *gorm.DB
}

// NewGORMBidRepository creates a new instance of GORMBidRepository.
func NewGORMBidRepository(db *gorm.DB) *GORMBidRepository {
	return &GORMBidRepository{
		db: db,
	}
}

// PlaceBid validates and appends a bid inside a single transaction.
// The floor the new amount must strictly exceed is the current highest bid,
// or the item's start price when the ledger is empty.
func (r *GORMBidRepository) PlaceBid(itemID, bidderID string, amount int64) (*models.Bid, error) {
	bid := &models.Bid{
		ID:       uuid.New().String(),
		ItemID:   itemID,
		BidderID: bidderID,
		Amount:   amount,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var item models.Item
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return aucterrors.ErrItemNotFound
			}
			return fmt.Errorf("failed to load item %s: %w", itemID, err)
		}
		if !item.IsOpen {
			return aucterrors.ErrItemClosed
		}

		floor := item.StartPrice
		highest, err := highestBid(tx, itemID)
		if err != nil {
			return err
		}
		if highest != nil && highest.Amount > floor {
			floor = highest.Amount
		}
		if amount <= floor {
			return &aucterrors.BidTooLowError{CurrentHighest: floor}
		}

		if err := tx.Create(bid).Error; err != nil {
			return fmt.Errorf("failed to append bid for item %s: %w", itemID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bid, nil
}

// Highest returns the current leading bid for an item, or nil if none exist.
func (r *GORMBidRepository) Highest(itemID string) (*models.Bid, error) {
	return highestBid(r.db, itemID)
}

// highestBid resolves the derived "current highest" from the ledger. Amounts
// are strictly increasing so the timestamp tie-break should never fire, but it
// keeps the result deterministic if it ever does.
func highestBid(db *gorm.DB, itemID string) (*models.Bid, error) {
	var bid models.Bid
	err := db.
		Where("item_id = ?", itemID).
		Order("amount DESC, created_at ASC, id ASC").
		First(&bid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get highest bid for item %s: %w", itemID, err)
	}
	return &bid, nil
}

// ListByItem returns the full ledger for an item in acceptance order.
func (r *GORMBidRepository) ListByItem(itemID string) ([]models.Bid, error) {
	var bids []models.Bid
	err := r.db.
		Where("item_id = ?", itemID).
		Order("created_at ASC, id ASC").
		Find(&bids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bids for item %s: %w", itemID, err)
	}
	return bids, nil
}

// ListBidderIDs returns the distinct bidders of an item, for close notifications.
func (r *GORMBidRepository) ListBidderIDs(itemID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Bid{}).
		Distinct("bidder_id").
		Where("item_id = ?", itemID).
		Pluck("bidder_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bidders for item %s: %w", itemID, err)
	}
	return ids, nil
}

// ListUserBidItems returns every item the user has bid on, newest bid first,
// together with the user's own top amount on that item.
func (r *GORMBidRepository) ListUserBidItems(userID string) ([]UserBidItem, error) {
	var bids []models.Bid
	err := r.db.
		Where("bidder_id = ?", userID).
		Order("created_at DESC").
		Find(&bids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bids for user %s: %w", userID, err)
	}

	seen := make(map[string]int) // itemID -> index into result
	var result []UserBidItem
	for _, bid := range bids {
		idx, ok := seen[bid.ItemID]
		if ok {
			if bid.Amount > result[idx].TopAmount {
				result[idx].TopAmount = bid.Amount
			}
			continue
		}
		var item models.Item
		if err := r.db.First(&item, "id = ?", bid.ItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to load item %s for user bids: %w", bid.ItemID, err)
		}
		seen[bid.ItemID] = len(result)
		result = append(result, UserBidItem{Item: item, TopAmount: bid.Amount})
	}
	return result, nil
}
