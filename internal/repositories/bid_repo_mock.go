package repositories

import (
	"sort"
	"sync"
	"time"

	"gavel/internal/aucterrors"
	"gavel/internal/models"

	"github.com/google/uuid"
)

// MockBidRepository is an in-memory implementation of BidRepository.
// The internal mutex gives it the same atomic check-then-append contract as
// the GORM implementation's transaction.
type MockBidRepository struct {
	mu    sync.RWMutex
	items map[string]models.Item
	bids  map[string][]models.Bid // itemID -> ledger in acceptance order
}

// NewMockBidRepository creates a new instance of MockBidRepository.
func NewMockBidRepository() *MockBidRepository {
	return &MockBidRepository{
		items: make(map[string]models.Item),
		bids:  make(map[string][]models.Bid),
	}
}

// AddItem seeds an item. Intended for tests and local wiring only.
func (r *MockBidRepository) AddItem(item models.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
}

// CloseItem flips the seeded item's open flag. Intended for tests only.
func (r *MockBidRepository) CloseItem(itemID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item, ok := r.items[itemID]; ok {
		item.IsOpen = false
		r.items[itemID] = item
	}
}

// PlaceBid validates and appends a bid under the repository lock.
func (r *MockBidRepository) PlaceBid(itemID, bidderID string, amount int64) (*models.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[itemID]
	if !ok {
		return nil, aucterrors.ErrItemNotFound
	}
	if !item.IsOpen {
		return nil, aucterrors.ErrItemClosed
	}

	floor := item.StartPrice
	if ledger := r.bids[itemID]; len(ledger) > 0 {
		if top := ledger[len(ledger)-1].Amount; top > floor {
			floor = top
		}
	}
	if amount <= floor {
		return nil, &aucterrors.BidTooLowError{CurrentHighest: floor}
	}

	bid := models.Bid{
		ID:        uuid.New().String(),
		ItemID:    itemID,
		BidderID:  bidderID,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
	r.bids[itemID] = append(r.bids[itemID], bid)
	return &bid, nil
}

// Highest returns the leading bid, or nil when the ledger is empty.
func (r *MockBidRepository) Highest(itemID string) (*models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ledger := r.bids[itemID]
	if len(ledger) == 0 {
		return nil, nil
	}
	// Amounts are strictly increasing, so the last accepted bid leads.
	top := ledger[len(ledger)-1]
	return &top, nil
}

// ListByItem returns a copy of the item's ledger in acceptance order.
func (r *MockBidRepository) ListByItem(itemID string) ([]models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Bid(nil), r.bids[itemID]...), nil
}

// ListBidderIDs returns the distinct bidders of an item.
func (r *MockBidRepository) ListBidderIDs(itemID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := make(map[string]struct{})
	for _, bid := range r.bids[itemID] {
		set[bid.BidderID] = struct{}{}
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// ListUserBidItems returns the items the user has bid on with their top amount.
func (r *MockBidRepository) ListUserBidItems(userID string) ([]UserBidItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []UserBidItem
	for itemID, ledger := range r.bids {
		var top int64
		for _, bid := range ledger {
			if bid.BidderID == userID && bid.Amount > top {
				top = bid.Amount
			}
		}
		if top == 0 {
			continue
		}
		item, ok := r.items[itemID]
		if !ok {
			continue
		}
		result = append(result, UserBidItem{Item: item, TopAmount: top})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Item.ID < result[j].Item.ID })
	return result, nil
}
