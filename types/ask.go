package types

import (
	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
)

// Ask is a listing of a single asset for sale, either at a fixed price or
// as an auction running until ExpiresAt.
type Ask struct {
	SaleType   SaleType        `json:"sale_type"`
	Collection address.Address `json:"collection"`
	TokenID    TokenID         `json:"token_id"`
	Seller     address.Address `json:"seller"`
	Price      abi.TokenAmount `json:"price"`
	// FundsRecipient overrides the payout target; nil means pay the seller.
	FundsRecipient *address.Address `json:"funds_recipient,omitempty"`
	// ExpiresAt is an absolute unix timestamp in seconds.
	ExpiresAt uint64 `json:"expires_at"`

	// MaxBidder/MaxBid track the running auction winner. A fresh ask holds
	// the marketplace's own actor address and the configured price floor as
	// a "no real bid yet" sentinel. Present but inert on fixed-price asks.
	MaxBidder address.Address `json:"max_bidder"`
	MaxBid    abi.TokenAmount `json:"max_bid"`
}

func (a *Ask) Key() AskKey {
	return NewAskKey(a.Collection, a.TokenID)
}

func (a *Ask) IsExpired(now uint64) bool {
	return a.ExpiresAt <= now
}

// HasBid reports whether a real bid has been placed, i.e. the stored max
// bidder is no longer the marketplace's sentinel address.
func (a *Ask) HasBid(self address.Address) bool {
	return a.MaxBidder != self
}

// PaymentRecipient resolves the payout target of a sale.
func (a *Ask) PaymentRecipient() address.Address {
	if a.FundsRecipient != nil {
		return *a.FundsRecipient
	}
	return a.Seller
}

// Bid is the audit record of an accepted auction bid. The authoritative
// current-winner state lives on the Ask; Bid records are never removed and
// exist for notification and inspection only.
type Bid struct {
	Collection address.Address `json:"collection"`
	TokenID    TokenID         `json:"token_id"`
	Bidder     address.Address `json:"bidder"`
	Price      abi.TokenAmount `json:"price"`
	CreatedAt  uint64          `json:"created_at"`
}

func (b *Bid) Key() BidKey {
	return NewBidKey(b.Collection, b.TokenID, b.Bidder)
}

// RoyaltyInfo is the royalty term set queried from the collection contract
// at settlement time. ShareBps is in basis points and always below 10000.
type RoyaltyInfo struct {
	Recipient address.Address `json:"recipient"`
	ShareBps  uint64          `json:"share_bps"`
}

// SaleRecord is the canonical record emitted when a sale settles.
type SaleRecord struct {
	Collection  address.Address `json:"collection"`
	TokenID     TokenID         `json:"token_id"`
	Seller      address.Address `json:"seller"`
	Buyer       address.Address `json:"buyer"`
	Price       abi.TokenAmount `json:"price"`
	RoyaltyPaid abi.TokenAmount `json:"royalty_paid"`
}
