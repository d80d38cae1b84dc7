package marketprovider

import (
	"context"

	"github.com/filecoin-project/go-address"

	"github.com/heart-network/marketplace/models/repo"
	"github.com/heart-network/marketplace/types"
)

// Listing pages default to 10 entries and never exceed 30, whatever the
// caller asks for.
const (
	DefaultListLimit = 10
	MaxListLimit     = 30
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

func (p *MarketProvider) GetAsk(ctx context.Context, key types.AskKey) (*types.Ask, error) {
	return p.loadAsk(ctx, key)
}

func (p *MarketProvider) ListAsksByCollection(ctx context.Context, collection address.Address, descending bool, startAfter types.TokenID, limit int) ([]*types.Ask, error) {
	return p.r.AskRepo().ListAsksByCollection(ctx, collection, descending, startAfter, clampLimit(limit))
}

func (p *MarketProvider) ListAsksSortedByPrice(ctx context.Context, collection address.Address, descending bool, startAfter *repo.PricePoint, limit int) ([]*types.Ask, error) {
	return p.r.AskRepo().ListAsksByCollectionPrice(ctx, collection, descending, startAfter, clampLimit(limit))
}

func (p *MarketProvider) ListAsksBySeller(ctx context.Context, seller address.Address, startAfter *types.AskKey, limit int) ([]*types.Ask, error) {
	return p.r.AskRepo().ListAsksBySeller(ctx, seller, startAfter, clampLimit(limit))
}

func (p *MarketProvider) AskCount(ctx context.Context, collection address.Address) (int64, error) {
	return p.r.AskRepo().CountAsksByCollection(ctx, collection)
}

func (p *MarketProvider) ListCollections(ctx context.Context, startAfter address.Address, limit int) ([]address.Address, error) {
	return p.r.AskRepo().ListCollections(ctx, startAfter, clampLimit(limit))
}

func (p *MarketProvider) GetBid(ctx context.Context, key types.BidKey) (*types.Bid, error) {
	return p.r.BidRepo().GetBid(ctx, key)
}

func (p *MarketProvider) ListBidsByToken(ctx context.Context, key types.AskKey) ([]*types.Bid, error) {
	return p.r.BidRepo().ListBidsByToken(ctx, key)
}

func (p *MarketProvider) ListBidsByBidder(ctx context.Context, bidder address.Address) ([]*types.Bid, error) {
	return p.r.BidRepo().ListBidsByBidder(ctx, bidder)
}

func (p *MarketProvider) Params(ctx context.Context) (*types.Params, error) {
	return p.params(ctx)
}

func (p *MarketProvider) ListHooks(ctx context.Context, class types.HookClass) ([]address.Address, error) {
	return p.r.HookRepo().ListHooks(ctx, class)
}
