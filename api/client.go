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

var _ MarketAPI = (*MarketAPIStruct)(nil)

// MarketAPIStruct is the client-side RPC proxy of MarketAPI.
type MarketAPIStruct struct {
	Internal struct {
		Version    func(ctx context.Context) (string, error)
		MarketInit func(ctx context.Context, params *types.Params, saleHook *address.Address) error

		MarketSetAsk         func(ctx context.Context, deposit *marketprovider.AssetDeposit, payment *ledger.Payment) (*ExecutionResult, error)
		MarketRemoveAsk      func(ctx context.Context, caller address.Address, key types.AskKey) (*ExecutionResult, error)
		MarketUpdateAskPrice func(ctx context.Context, caller address.Address, key types.AskKey, price abi.TokenAmount) (*ExecutionResult, error)
		MarketSetBid         func(ctx context.Context, bidder address.Address, key types.AskKey, payment *ledger.Payment) (*ExecutionResult, error)
		MarketAcceptBid      func(ctx context.Context, caller address.Address, key types.AskKey) (*ExecutionResult, error)

		MarketGetAsk           func(ctx context.Context, key types.AskKey) (*types.Ask, error)
		MarketListAsks         func(ctx context.Context, collection address.Address, descending bool, startAfter types.TokenID, limit int) ([]*types.Ask, error)
		MarketListAsksByPrice  func(ctx context.Context, collection address.Address, descending bool, startAfter *repo.PricePoint, limit int) ([]*types.Ask, error)
		MarketListAsksBySeller func(ctx context.Context, seller address.Address, startAfter *types.AskKey, limit int) ([]*types.Ask, error)
		MarketAskCount         func(ctx context.Context, collection address.Address) (int64, error)
		MarketListCollections  func(ctx context.Context, startAfter address.Address, limit int) ([]address.Address, error)
		MarketGetBid           func(ctx context.Context, key types.BidKey) (*types.Bid, error)
		MarketListBidsByToken  func(ctx context.Context, key types.AskKey) ([]*types.Bid, error)
		MarketListBidsByBidder func(ctx context.Context, bidder address.Address) ([]*types.Bid, error)
		MarketParams           func(ctx context.Context) (*types.Params, error)
		MarketListHooks        func(ctx context.Context, class types.HookClass) ([]address.Address, error)

		MarketUpdateParams   func(ctx context.Context, caller address.Address, update *marketprovider.ParamUpdate) (*ExecutionResult, error)
		MarketAddOperator    func(ctx context.Context, caller, operator address.Address) (*ExecutionResult, error)
		MarketRemoveOperator func(ctx context.Context, caller, operator address.Address) (*ExecutionResult, error)
		MarketAddHook        func(ctx context.Context, caller address.Address, class types.HookClass, hook address.Address) (*ExecutionResult, error)
		MarketRemoveHook     func(ctx context.Context, caller address.Address, class types.HookClass, hook address.Address) (*ExecutionResult, error)
	}
}

func (s *MarketAPIStruct) Version(ctx context.Context) (string, error) {
	return s.Internal.Version(ctx)
}

func (s *MarketAPIStruct) MarketInit(ctx context.Context, params *types.Params, saleHook *address.Address) error {
	return s.Internal.MarketInit(ctx, params, saleHook)
}

func (s *MarketAPIStruct) MarketSetAsk(ctx context.Context, deposit *marketprovider.AssetDeposit, payment *ledger.Payment) (*ExecutionResult, error) {
	return s.Internal.MarketSetAsk(ctx, deposit, payment)
}

func (s *MarketAPIStruct) MarketRemoveAsk(ctx context.Context, caller address.Address, key types.AskKey) (*ExecutionResult, error) {
	return s.Internal.MarketRemoveAsk(ctx, caller, key)
}

func (s *MarketAPIStruct) MarketUpdateAskPrice(ctx context.Context, caller address.Address, key types.AskKey, price abi.TokenAmount) (*ExecutionResult, error) {
	return s.Internal.MarketUpdateAskPrice(ctx, caller, key, price)
}

func (s *MarketAPIStruct) MarketSetBid(ctx context.Context, bidder address.Address, key types.AskKey, payment *ledger.Payment) (*ExecutionResult, error) {
	return s.Internal.MarketSetBid(ctx, bidder, key, payment)
}

func (s *MarketAPIStruct) MarketAcceptBid(ctx context.Context, caller address.Address, key types.AskKey) (*ExecutionResult, error) {
	return s.Internal.MarketAcceptBid(ctx, caller, key)
}

func (s *MarketAPIStruct) MarketGetAsk(ctx context.Context, key types.AskKey) (*types.Ask, error) {
	return s.Internal.MarketGetAsk(ctx, key)
}

func (s *MarketAPIStruct) MarketListAsks(ctx context.Context, collection address.Address, descending bool, startAfter types.TokenID, limit int) ([]*types.Ask, error) {
	return s.Internal.MarketListAsks(ctx, collection, descending, startAfter, limit)
}

func (s *MarketAPIStruct) MarketListAsksByPrice(ctx context.Context, collection address.Address, descending bool, startAfter *repo.PricePoint, limit int) ([]*types.Ask, error) {
	return s.Internal.MarketListAsksByPrice(ctx, collection, descending, startAfter, limit)
}

func (s *MarketAPIStruct) MarketListAsksBySeller(ctx context.Context, seller address.Address, startAfter *types.AskKey, limit int) ([]*types.Ask, error) {
	return s.Internal.MarketListAsksBySeller(ctx, seller, startAfter, limit)
}

func (s *MarketAPIStruct) MarketAskCount(ctx context.Context, collection address.Address) (int64, error) {
	return s.Internal.MarketAskCount(ctx, collection)
}

func (s *MarketAPIStruct) MarketListCollections(ctx context.Context, startAfter address.Address, limit int) ([]address.Address, error) {
	return s.Internal.MarketListCollections(ctx, startAfter, limit)
}

func (s *MarketAPIStruct) MarketGetBid(ctx context.Context, key types.BidKey) (*types.Bid, error) {
	return s.Internal.MarketGetBid(ctx, key)
}

func (s *MarketAPIStruct) MarketListBidsByToken(ctx context.Context, key types.AskKey) ([]*types.Bid, error) {
	return s.Internal.MarketListBidsByToken(ctx, key)
}

func (s *MarketAPIStruct) MarketListBidsByBidder(ctx context.Context, bidder address.Address) ([]*types.Bid, error) {
	return s.Internal.MarketListBidsByBidder(ctx, bidder)
}

func (s *MarketAPIStruct) MarketParams(ctx context.Context) (*types.Params, error) {
	return s.Internal.MarketParams(ctx)
}

func (s *MarketAPIStruct) MarketListHooks(ctx context.Context, class types.HookClass) ([]address.Address, error) {
	return s.Internal.MarketListHooks(ctx, class)
}

func (s *MarketAPIStruct) MarketUpdateParams(ctx context.Context, caller address.Address, update *marketprovider.ParamUpdate) (*ExecutionResult, error) {
	return s.Internal.MarketUpdateParams(ctx, caller, update)
}

func (s *MarketAPIStruct) MarketAddOperator(ctx context.Context, caller, operator address.Address) (*ExecutionResult, error) {
	return s.Internal.MarketAddOperator(ctx, caller, operator)
}

func (s *MarketAPIStruct) MarketRemoveOperator(ctx context.Context, caller, operator address.Address) (*ExecutionResult, error) {
	return s.Internal.MarketRemoveOperator(ctx, caller, operator)
}

func (s *MarketAPIStruct) MarketAddHook(ctx context.Context, caller address.Address, class types.HookClass, hook address.Address) (*ExecutionResult, error) {
	return s.Internal.MarketAddHook(ctx, caller, class, hook)
}

func (s *MarketAPIStruct) MarketRemoveHook(ctx context.Context, caller address.Address, class types.HookClass, hook address.Address) (*ExecutionResult, error) {
	return s.Internal.MarketRemoveHook(ctx, caller, class, hook)
}
