// Package ledger abstracts the deterministic host environment the
// marketplace runs in: attached-payment introspection, the outgoing
// instruction bundle executed atomically after a handler commits, and the
// chain-side oracles the core consumes.
package ledger

import (
	"context"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"golang.org/x/xerrors"

	"github.com/heart-network/marketplace/types"
)

// Payment is the single coin attached to the current message, or nil when
// the caller sent no funds.
type Payment struct {
	Denom  string
	Amount abi.TokenAmount
}

var (
	ErrNoPayment      = xerrors.New("no payment attached")
	ErrWrongDenom     = xerrors.New("payment in wrong denomination")
	ErrNonPositive    = xerrors.New("payment must be positive")
	ErrPaymentPresent = xerrors.New("operation does not accept payment")
)

// MustPay requires exactly one positive native-denom payment and returns
// its amount.
func MustPay(p *Payment) (abi.TokenAmount, error) {
	if p == nil || p.Amount.Int == nil {
		return abi.TokenAmount{}, ErrNoPayment
	}
	if p.Denom != types.NativeDenom {
		return abi.TokenAmount{}, ErrWrongDenom
	}
	if p.Amount.LessThanEqual(abi.NewTokenAmount(0)) {
		return abi.TokenAmount{}, ErrNonPositive
	}
	return p.Amount, nil
}

// MayPay accepts zero or one native-denom payment, returning zero when no
// funds were attached.
func MayPay(p *Payment) (abi.TokenAmount, error) {
	if p == nil || p.Amount.Int == nil {
		return abi.NewTokenAmount(0), nil
	}
	if p.Denom != types.NativeDenom {
		return abi.TokenAmount{}, ErrWrongDenom
	}
	return p.Amount, nil
}

// Nonpayable rejects any attached funds.
func Nonpayable(p *Payment) error {
	if p != nil && p.Amount.Int != nil && !p.Amount.IsZero() {
		return ErrPaymentPresent
	}
	return nil
}

// PaymentInstruction moves native funds out of the marketplace escrow.
// Failure of a payment instruction aborts the whole operation.
type PaymentInstruction struct {
	To     address.Address
	Amount abi.TokenAmount
}

// CallInstruction invokes a method on another contract. Contained calls
// are hook notifications: the host reports their failure as a diagnostic
// attribute instead of aborting the operation.
type CallInstruction struct {
	To        address.Address
	Method    string
	Params    []byte
	Contained bool
	HookClass types.HookClass
}

type Attribute struct {
	Key   string
	Value string
}

type Event struct {
	Type       string
	Attributes []Attribute
}

// Methods invoked on external contracts.
const (
	MethodTransferAsset = "transfer_asset"
	MethodAskHook       = "ask_hook"
	MethodBidHook       = "bid_hook"
	MethodSaleHook      = "sale_hook"
)

// TransferAssetParams is the payload of a transfer_asset call against the
// collection contract.
type TransferAssetParams struct {
	TokenID   types.TokenID   `json:"token_id"`
	Recipient address.Address `json:"recipient"`
}

// Bundle collects the instructions a handler queues for the host. The host
// executes them in append order within the same atomic unit of work as the
// handler's state mutations.
type Bundle struct {
	payments []PaymentInstruction
	calls    []CallInstruction
	events   []Event
}

func NewBundle() *Bundle {
	return &Bundle{}
}

func (b *Bundle) AddPayment(to address.Address, amount abi.TokenAmount) {
	b.payments = append(b.payments, PaymentInstruction{To: to, Amount: amount})
}

func (b *Bundle) AddCall(to address.Address, method string, params []byte) {
	b.calls = append(b.calls, CallInstruction{To: to, Method: method, Params: params})
}

func (b *Bundle) AddHookCall(to address.Address, method string, params []byte, class types.HookClass) {
	b.calls = append(b.calls, CallInstruction{
		To:        to,
		Method:    method,
		Params:    params,
		Contained: true,
		HookClass: class,
	})
}

func (b *Bundle) AddEvent(evt Event) {
	b.events = append(b.events, evt)
}

func (b *Bundle) Payments() []PaymentInstruction {
	return b.payments
}

func (b *Bundle) Calls() []CallInstruction {
	return b.calls
}

func (b *Bundle) Events() []Event {
	return b.events
}

// Node is the chain-side interface the core consumes: a time oracle for
// expiry checks and the royalty-term query against collection contracts.
type Node interface {
	// ChainTime returns the current chain time as unix seconds.
	ChainTime(ctx context.Context) (uint64, error)
	// QueryRoyalty returns the collection's royalty terms, or nil when the
	// collection pays no royalty.
	QueryRoyalty(ctx context.Context, collection address.Address) (*types.RoyaltyInfo, error)
}
