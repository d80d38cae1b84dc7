package types

import (
	"fmt"

	"github.com/filecoin-project/go-address"
)

// NativeDenom is the only denomination the marketplace accepts, both for
// listing fees and for bid payments.
const NativeDenom = "uheart"

type SaleType string

const (
	FixedPrice SaleType = "fixed_price"
	Auction    SaleType = "auction"
)

func (st SaleType) Valid() bool {
	return st == FixedPrice || st == Auction
}

type TokenID = string

// AskKey is the primary key of an Ask: one listing per (collection, token).
type AskKey struct {
	Collection address.Address
	TokenID    TokenID
}

func NewAskKey(collection address.Address, tokenID TokenID) AskKey {
	return AskKey{Collection: collection, TokenID: tokenID}
}

func (k AskKey) String() string {
	return fmt.Sprintf("%s/%s", k.Collection, k.TokenID)
}

// BidKey is the primary key of a Bid record: one outstanding record per
// bidder per token, overwritten on repeat bids.
type BidKey struct {
	Collection address.Address
	TokenID    TokenID
	Bidder     address.Address
}

func NewBidKey(collection address.Address, tokenID TokenID, bidder address.Address) BidKey {
	return BidKey{Collection: collection, TokenID: tokenID, Bidder: bidder}
}

func (k BidKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Collection, k.TokenID, k.Bidder)
}
