package api

import (
	"context"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"

	"github.com/heart-network/marketplace/ledger"
	"github.com/heart-network/marketplace/marketprovider"
	"github.com/heart-network/marketplace/models/repo"
	"github.com/heart-network/marketplace/types"
	"github.com/heart-network/marketplace/version"
)

var _ MarketAPI = (*MarketNodeImpl)(nil)

type MarketNodeImpl struct {
	Provider *marketprovider.MarketProvider
}

func NewMarketNodeImpl(provider *marketprovider.MarketProvider) *MarketNodeImpl {
	return &MarketNodeImpl{Provider: provider}
}

func (m *MarketNodeImpl) Version(ctx context.Context) (string, error) {
	return version.UserVersion(), nil
}

func (m *MarketNodeImpl) MarketInit(ctx context.Context, params *types.Params, saleHook *address.Address) error {
	return m.Provider.Init(ctx, params, saleHook)
}

func (m *MarketNodeImpl) MarketSetAsk(ctx context.Context, deposit *marketprovider.AssetDeposit, payment *ledger.Payment) (*ExecutionResult, error) {
	bundle, err := m.Provider.SetAsk(ctx, deposit, payment)
	if err != nil {
		return nil, err
	}
	return newExecutionResult(bundle), nil
}

func (m *MarketNodeImpl) MarketRemoveAsk(ctx context.Context, caller address.Address, key types.AskKey) (*ExecutionResult, error) {
	bundle, err := m.Provider.RemoveAsk(ctx, caller, key, nil)
	if err != nil {
		return nil, err
	}
	return newExecutionResult(bundle), nil
}

func (m *MarketNodeImpl) MarketUpdateAskPrice(ctx context.Context, caller address.Address, key types.AskKey, price abi.TokenAmount) (*ExecutionResult, error) {
	bundle, err := m.Provider.UpdateAskPrice(ctx, caller, key, price, nil)
	if err != nil {
		return nil, err
	}
	return newExecutionResult(bundle), nil
}

func (m *MarketNodeImpl) MarketSetBid(ctx context.Context, bidder address.Address, key types.AskKey, payment *ledger.Payment) (*ExecutionResult, error) {
	bundle, err := m.Provider.SetBid(ctx, bidder, key, payment)
	if err != nil {
		return nil, err
	}
	return newExecutionResult(bundle), nil
}

func (m *MarketNodeImpl) MarketAcceptBid(ctx context.Context, caller address.Address, key types.AskKey) (*ExecutionResult, error) {
	bundle, err := m.Provider.AcceptBid(ctx, caller, key, nil)
	if err != nil {
		return nil, err
	}
	return newExecutionResult(bundle), nil
}

func (m *MarketNodeImpl) MarketGetAsk(ctx context.Context, key types.AskKey) (*types.Ask, error) {
	return m.Provider.GetAsk(ctx, key)
}

func (m *MarketNodeImpl) MarketListAsks(ctx context.Context, collection address.Address, descending bool, startAfter types.TokenID, limit int) ([]*types.Ask, error) {
	return m.Provider.ListAsksByCollection(ctx, collection, descending, startAfter, limit)
}

func (m *MarketNodeImpl) MarketListAsksByPrice(ctx context.Context, collection address.Address, descending bool, startAfter *repo.PricePoint, limit int) ([]*types.Ask, error) {
	return m.Provider.ListAsksSortedByPrice(ctx, collection, descending, startAfter, limit)
}

func (m *MarketNodeImpl) MarketListAsksBySeller(ctx context.Context, seller address.Address, startAfter *types.AskKey, limit int) ([]*types.Ask, error) {
	return m.Provider.ListAsksBySeller(ctx, seller, startAfter, limit)
}

func (m *MarketNodeImpl) MarketAskCount(ctx context.Context, collection address.Address) (int64, error) {
	return m.Provider.AskCount(ctx, collection)
}

func (m *MarketNodeImpl) MarketListCollections(ctx context.Context, startAfter address.Address, limit int) ([]address.Address, error) {
	return m.Provider.ListCollections(ctx, startAfter, limit)
}

func (m *MarketNodeImpl) MarketGetBid(ctx context.Context, key types.BidKey) (*types.Bid, error) {
	return m.Provider.GetBid(ctx, key)
}

func (m *MarketNodeImpl) MarketListBidsByToken(ctx context.Context, key types.AskKey) ([]*types.Bid, error) {
	return m.Provider.ListBidsByToken(ctx, key)
}

func (m *MarketNodeImpl) MarketListBidsByBidder(ctx context.Context, bidder address.Address) ([]*types.Bid, error) {
	return m.Provider.ListBidsByBidder(ctx, bidder)
}

func (m *MarketNodeImpl) MarketParams(ctx context.Context) (*types.Params, error) {
	return m.Provider.Params(ctx)
}

func (m *MarketNodeImpl) MarketListHooks(ctx context.Context, class types.HookClass) ([]address.Address, error) {
	return m.Provider.ListHooks(ctx, class)
}

func (m *MarketNodeImpl) MarketUpdateParams(ctx context.Context, caller address.Address, update *marketprovider.ParamUpdate) (*ExecutionResult, error) {
	bundle, err := m.Provider.UpdateParams(ctx, caller, update)
	if err != nil {
		return nil, err
	}
	return newExecutionResult(bundle), nil
}

func (m *MarketNodeImpl) MarketAddOperator(ctx context.Context, caller, operator address.Address) (*ExecutionResult, error) {
	bundle, err := m.Provider.AddOperator(ctx, caller, operator)
	if err != nil {
		return nil, err
	}
	return newExecutionResult(bundle), nil
}

func (m *MarketNodeImpl) MarketRemoveOperator(ctx context.Context, caller, operator address.Address) (*ExecutionResult, error) {
	bundle, err := m.Provider.RemoveOperator(ctx, caller, operator)
	if err != nil {
		return nil, err
	}
	return newExecutionResult(bundle), nil
}

func (m *MarketNodeImpl) MarketAddHook(ctx context.Context, caller address.Address, class types.HookClass, hook address.Address) (*ExecutionResult, error) {
	bundle, err := m.Provider.AddHook(ctx, caller, class, hook)
	if err != nil {
		return nil, err
	}
	return newExecutionResult(bundle), nil
}

func (m *MarketNodeImpl) MarketRemoveHook(ctx context.Context, caller address.Address, class types.HookClass, hook address.Address) (*ExecutionResult, error) {
	bundle, err := m.Provider.RemoveHook(ctx, caller, class, hook)
	if err != nil {
		return nil, err
	}
	return newExecutionResult(bundle), nil
}
