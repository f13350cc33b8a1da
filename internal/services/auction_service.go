package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"gavel/internal/aucterrors"
	"gavel/internal/models"
	"gavel/internal/repositories"
)

// EventPublisher sends auction events to the message broker for the
// notification worker. Implemented by pkg/rabbitmq.Client.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// CloseResult is the outcome of a successful close: the frozen item and the
// winning bid, nil when the item closed with no bids.
type CloseResult struct {
	Item       *models.Item `json:"item"`
	WinningBid *models.Bid  `json:"winning_bid,omitempty"`
}

// BidAcceptedEvent is published on every accepted bid. The previous leader is
// included so the notification worker can tell them they were outbid; it is
// omitted when the bidder raised their own standing bid.
type BidAcceptedEvent struct {
	ItemID           string    `json:"item_id"`
	BidID            string    `json:"bid_id"`
	BidderID         string    `json:"bidder_id"`
	Amount           int64     `json:"amount"`
	CreatedAt        time.Time `json:"created_at"`
	PreviousBidderID string    `json:"previous_bidder_id,omitempty"`
	PreviousAmount   int64     `json:"previous_amount,omitempty"`
}

// ItemClosedEvent is published when an item stops accepting bids. BidderIDs
// and WatcherIDs are the notification fan-out targets.
type ItemClosedEvent struct {
	ItemID     string      `json:"item_id"`
	SellerID   string      `json:"seller_id"`
	Title      string      `json:"title"`
	WinningBid *models.Bid `json:"winning_bid,omitempty"`
	BidderIDs  []string    `json:"bidder_ids,omitempty"`
	WatcherIDs []string    `json:"watcher_ids,omitempty"`
}

// itemLockTable hands out one mutex per item so bid placement and closing are
// serialized per item while different items proceed fully in parallel.
type itemLockTable struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newItemLockTable() *itemLockTable {
	return &itemLockTable{
		locks: make(map[string]*sync.Mutex),
	}
}

// lock acquires the item's mutex, creating it on first use, and returns the
// matching unlock function.
func (t *itemLockTable) lock(itemID string) func() {
	t.mu.Lock()
	l, ok := t.locks[itemID]
	if !ok {
		l = &sync.Mutex{}
		t.locks[itemID] = l
	}
	t.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// forget drops the item's mutex once the item is closed. A racing caller may
// still re-create the entry, which is harmless: the repository re-checks the
// open flag inside its transaction, so a stale lock can never admit a bid.
func (t *itemLockTable) forget(itemID string) {
	t.mu.Lock()
	delete(t.locks, itemID)
	t.mu.Unlock()
}

// AuctionService is the bid-consistency and lifecycle engine. It holds no
// durable state of its own; every invariant is enforced against the shared
// store at the point of mutation.
type AuctionService struct {
	itemRepo     repositories.ItemRepository
	bidRepo      repositories.BidRepository
	favoriteRepo repositories.FavoriteRepository
	publisher    EventPublisher
	locks        *itemLockTable
}

// NewAuctionService creates a new AuctionService. The publisher may be nil,
// in which case events are skipped.
func NewAuctionService(itemRepo repositories.ItemRepository, bidRepo repositories.BidRepository, favoriteRepo repositories.FavoriteRepository, publisher EventPublisher) *AuctionService {
	return &AuctionService{
		itemRepo:     itemRepo,
		bidRepo:      bidRepo,
		favoriteRepo: favoriteRepo,
		publisher:    publisher,
		locks:        newItemLockTable(),
	}
}

// PlaceBid validates and records a bid. The read-validate-append sequence runs
// under the item's lock, so two concurrent bids can never both be accepted
// against the same stale highest value.
func (s *AuctionService) PlaceBid(itemID, bidderID string, amount int64) (*models.Bid, error) {
	if itemID == "" || bidderID == "" {
		return nil, fmt.Errorf("%w: missing item ID or bidder ID", aucterrors.ErrInvalidInput)
	}
	if amount <= 0 {
		return nil, aucterrors.ErrInvalidAmount
	}

	unlock := s.locks.lock(itemID)
	defer unlock()

	previous, err := s.bidRepo.Highest(itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to read current highest bid: %w", err)
	}

	bid, err := s.bidRepo.PlaceBid(itemID, bidderID, amount)
	if err != nil {
		return nil, err
	}

	event := BidAcceptedEvent{
		ItemID:    bid.ItemID,
		BidID:     bid.ID,
		BidderID:  bid.BidderID,
		Amount:    bid.Amount,
		CreatedAt: bid.CreatedAt,
	}
	if previous != nil && previous.BidderID != bid.BidderID {
		event.PreviousBidderID = previous.BidderID
		event.PreviousAmount = previous.Amount
	}
	s.publish("bid.accepted", event)

	return bid, nil
}

// CloseItem transitions an item from open to closed and freezes its highest
// bid as the winning bid. Sellers may close their own items; admins may close
// any. Closing an already-closed item reports ErrItemAlreadyClosed.
func (s *AuctionService) CloseItem(itemID, actorID string, isAdmin bool) (*CloseResult, error) {
	if itemID == "" || actorID == "" {
		return nil, fmt.Errorf("%w: missing item ID or actor ID", aucterrors.ErrInvalidInput)
	}

	unlock := s.locks.lock(itemID)
	defer unlock()

	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && item.SellerID != actorID {
		return nil, aucterrors.ErrUnauthorized
	}
	if !item.IsOpen {
		return nil, aucterrors.ErrItemAlreadyClosed
	}

	winning, err := s.bidRepo.Highest(itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to read winning bid: %w", err)
	}
	if err := s.itemRepo.Close(itemID); err != nil {
		return nil, err
	}
	item.IsOpen = false
	s.locks.forget(itemID)

	event := ItemClosedEvent{
		ItemID:     item.ID,
		SellerID:   item.SellerID,
		Title:      item.Title,
		WinningBid: winning,
	}
	if bidders, err := s.bidRepo.ListBidderIDs(itemID); err != nil {
		log.Printf("Warning: failed to list bidders for closed item %s: %v", itemID, err)
	} else {
		event.BidderIDs = bidders
	}
	if watchers, err := s.favoriteRepo.ListUserIDs(itemID); err != nil {
		log.Printf("Warning: failed to list watchers for closed item %s: %v", itemID, err)
	} else {
		event.WatcherIDs = watchers
	}
	s.publish("item.closed", event)

	return &CloseResult{Item: item, WinningBid: winning}, nil
}

// HighestBid returns the current leader for an item, or nil when no bids
// exist. The value is derived from the ledger, never from a stored column.
func (s *AuctionService) HighestBid(itemID string) (*models.Bid, error) {
	if itemID == "" {
		return nil, fmt.Errorf("%w: missing item ID", aucterrors.ErrInvalidInput)
	}
	if _, err := s.itemRepo.GetByID(itemID); err != nil {
		return nil, err
	}
	return s.bidRepo.Highest(itemID)
}

// ListBids returns the full ledger for an item in acceptance order.
func (s *AuctionService) ListBids(itemID string) ([]models.Bid, error) {
	if itemID == "" {
		return nil, fmt.Errorf("%w: missing item ID", aucterrors.ErrInvalidInput)
	}
	if _, err := s.itemRepo.GetByID(itemID); err != nil {
		return nil, err
	}
	return s.bidRepo.ListByItem(itemID)
}

// ListUserBidItems returns the items a user has bid on with their top amounts.
func (s *AuctionService) ListUserBidItems(userID string) ([]repositories.UserBidItem, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: missing user ID", aucterrors.ErrInvalidInput)
	}
	return s.bidRepo.ListUserBidItems(userID)
}

// publish marshals and sends an event. Publishing is best-effort: a broker
// failure must not roll back an already-committed state transition.
func (s *AuctionService) publish(routingKey string, event any) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.publisher.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
