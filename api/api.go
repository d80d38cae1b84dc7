package api

import (
	"context"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"

	"github.com/heart-network/marketplace/ledger"
	"github.com/heart-network/marketplace/marketprovider"
	"github.com/heart-network/marketplace/models/repo"
	"github.com/heart-network/marketplace/types"
)

// MarketAPI is the daemon's RPC surface. Mutating calls return the
// instruction bundle the operation queued, flattened into a serializable
// view.
type MarketAPI interface {
	Version(ctx context.Context) (string, error)

	// MarketInit stores the parameter singleton; it can only succeed once.
	MarketInit(ctx context.Context, params *types.Params, saleHook *address.Address) error

	MarketSetAsk(ctx context.Context, deposit *marketprovider.AssetDeposit, payment *ledger.Payment) (*ExecutionResult, error)
	MarketRemoveAsk(ctx context.Context, caller address.Address, key types.AskKey) (*ExecutionResult, error)
	MarketUpdateAskPrice(ctx context.Context, caller address.Address, key types.AskKey, price abi.TokenAmount) (*ExecutionResult, error)
	MarketSetBid(ctx context.Context, bidder address.Address, key types.AskKey, payment *ledger.Payment) (*ExecutionResult, error)
	MarketAcceptBid(ctx context.Context, caller address.Address, key types.AskKey) (*ExecutionResult, error)

	MarketGetAsk(ctx context.Context, key types.AskKey) (*types.Ask, error)
	MarketListAsks(ctx context.Context, collection address.Address, descending bool, startAfter types.TokenID, limit int) ([]*types.Ask, error)
	MarketListAsksByPrice(ctx context.Context, collection address.Address, descending bool, startAfter *repo.PricePoint, limit int) ([]*types.Ask, error)
	MarketListAsksBySeller(ctx context.Context, seller address.Address, startAfter *types.AskKey, limit int) ([]*types.Ask, error)
	MarketAskCount(ctx context.Context, collection address.Address) (int64, error)
	MarketListCollections(ctx context.Context, startAfter address.Address, limit int) ([]address.Address, error)
	MarketGetBid(ctx context.Context, key types.BidKey) (*types.Bid, error)
	MarketListBidsByToken(ctx context.Context, key types.AskKey) ([]*types.Bid, error)
	MarketListBidsByBidder(ctx context.Context, bidder address.Address) ([]*types.Bid, error)
	MarketParams(ctx context.Context) (*types.Params, error)
	MarketListHooks(ctx context.Context, class types.HookClass) ([]address.Address, error)

	MarketUpdateParams(ctx context.Context, caller address.Address, update *marketprovider.ParamUpdate) (*ExecutionResult, error)
	MarketAddOperator(ctx context.Context, caller, operator address.Address) (*ExecutionResult, error)
	MarketRemoveOperator(ctx context.Context, caller, operator address.Address) (*ExecutionResult, error)
	MarketAddHook(ctx context.Context, caller address.Address, class types.HookClass, hook address.Address) (*ExecutionResult, error)
	MarketRemoveHook(ctx context.Context, caller address.Address, class types.HookClass, hook address.Address) (*ExecutionResult, error)
}

// ExecutionResult is the serializable flattening of a ledger.Bundle.
type ExecutionResult struct {
	Payments []PaymentView
	Calls    []CallView
	Events   []EventView
}

type PaymentView struct {
	To     address.Address
	Amount abi.TokenAmount
}

type CallView struct {
	To        address.Address
	Method    string
	Params    []byte
	Contained bool
}

type EventView struct {
	Type       string
	Attributes map[string]string
}

func newExecutionResult(bundle *ledger.Bundle) *ExecutionResult {
	if bundle == nil {
		return nil
	}
	res := &ExecutionResult{}
	for _, p := range bundle.Payments() {
		res.Payments = append(res.Payments, PaymentView{To: p.To, Amount: p.Amount})
	}
	for _, c := range bundle.Calls() {
		res.Calls = append(res.Calls, CallView{To: c.To, Method: c.Method, Params: c.Params, Contained: c.Contained})
	}
	for _, e := range bundle.Events() {
		attrs := make(map[string]string, len(e.Attributes))
		for _, a := range e.Attributes {
			attrs[a.Key] = a.Value
		}
		res.Events = append(res.Events, EventView{Type: e.Type, Attributes: attrs})
	}
	return res
}
