package marketprovider

import (
	"errors"

	"github.com/heart-network/marketplace/models/repo"
)

var (
	// ErrNotInitialized is returned by every operation until Init has stored
	// the parameter singleton.
	ErrNotInitialized = errors.New("marketplace not initialized")

	ErrAskNotFound = errors.New("ask not found")
	// ErrAskExists mirrors the storage-level duplicate rejection so callers
	// can match it without importing the repo package.
	ErrAskExists = repo.ErrAskExists

	ErrNotSeller   = errors.New("only the seller may perform this operation")
	ErrNotOperator = errors.New("only an operator may perform this operation")

	ErrCannotRemoveAuction = errors.New("auction listings cannot be withdrawn")
	ErrAskExpired          = errors.New("ask has expired")
	ErrAuctionNotEnded     = errors.New("auction has not ended")

	ErrInvalidPrice      = errors.New("invalid price")
	ErrPriceTooSmall     = errors.New("price below the configured floor")
	ErrBidTooLow         = errors.New("bid does not exceed the current maximum")
	ErrInvalidExpiry     = errors.New("expiry outside the allowed range")
	ErrInvalidListingFee = errors.New("attached listing fee does not match params")
	ErrTokenMismatch     = errors.New("listing terms reference a different token")

	// ErrRoyaltyExceedsPayment guards settlement against royalty terms that
	// would claim more than the sale price.
	ErrRoyaltyExceedsPayment = errors.New("royalty exceeds sale payment")
)
