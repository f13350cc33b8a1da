package aucterrors

import (
	"errors"
	"fmt"
)

// Not-found errors
var (
	ErrItemNotFound     = errors.New("item not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrUserNotFound     = errors.New("user not found")
)

// Conflict errors
var (
	ErrItemClosed        = errors.New("item is closed for bidding")
	ErrItemAlreadyClosed = errors.New("item is already closed")
	ErrBidTooLow         = errors.New("bid amount too low")
	ErrDuplicatePosition = errors.New("duplicate image position")
	ErrCategoryExists    = errors.New("category already exists")
)

// Input and authorization errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidAmount = errors.New("bid amount must be positive")
	ErrUnauthorized  = errors.New("actor is not authorized")
)

// BidTooLowError reports a rejected bid together with the amount the caller
// must exceed (the current highest bid, or the start price when no bids exist).
type BidTooLowError struct {
	CurrentHighest int64
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("%v: current highest is %d", ErrBidTooLow, e.CurrentHighest)
}

// Unwrap lets callers match with errors.Is(err, ErrBidTooLow).
func (e *BidTooLowError) Unwrap() error {
	return ErrBidTooLow
}
