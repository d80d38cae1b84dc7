package types

import (
	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
)

// HookClass names one of the subscriber registries. Each class holds an
// ordered, de-duplicated set of subscriber addresses.
type HookClass string

const (
	AskHooks  HookClass = "ask"
	BidHooks  HookClass = "bid"
	SaleHooks HookClass = "sale"
)

func (c HookClass) Valid() bool {
	switch c {
	case AskHooks, BidHooks, SaleHooks:
		return true
	}
	return false
}

type HookAction string

const (
	HookActionCreate HookAction = "create"
	HookActionUpdate HookAction = "update"
	HookActionDelete HookAction = "delete"
)

// AskHookPayload is the body of an ask-event notification call.
type AskHookPayload struct {
	Action HookAction `json:"action"`
	Ask    Ask        `json:"ask"`
}

// BidHookPayload is the body of a bid-event notification call.
type BidHookPayload struct {
	Action HookAction `json:"action"`
	Bid    Bid        `json:"bid"`
}

// SaleHookPayload is the body of a sale-finalized notification call.
type SaleHookPayload struct {
	Collection address.Address `json:"collection"`
	TokenID    TokenID         `json:"token_id"`
	Price      abi.TokenAmount `json:"price"`
	Seller     address.Address `json:"seller"`
	Buyer      address.Address `json:"buyer"`
}
