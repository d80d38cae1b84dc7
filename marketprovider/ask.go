package marketprovider

import (
	"context"

	"github.com/filecoin-project/go-state-types/abi"
	"go.opencensus.io/stats"
	"go.opencensus.io/tag"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/go-address"

	"github.com/heart-network/marketplace/ledger"
	"github.com/heart-network/marketplace/metrics"
	"github.com/heart-network/marketplace/models/repo"
	"github.com/heart-network/marketplace/types"
)

// AskTerms is the listing order attached to an asset deposit.
type AskTerms struct {
	SaleType types.SaleType  `json:"sale_type"`
	TokenID  types.TokenID   `json:"token_id"`
	Denom    string          `json:"denom"`
	Price    abi.TokenAmount `json:"price"`
	// FundsRecipient overrides the payout target; nil pays the seller.
	FundsRecipient *address.Address `json:"funds_recipient,omitempty"`
	// ExpiresIn is the requested listing lifetime in seconds, relative to
	// the current chain time.
	ExpiresIn uint64 `json:"expires_in"`
}

// AssetDeposit is the envelope the collection contract sends when an asset
// is transferred into marketplace custody for listing. Collection is the
// notifying contract, Sender the depositing owner.
type AssetDeposit struct {
	Collection address.Address
	TokenID    types.TokenID
	Sender     address.Address
	Terms      AskTerms
}

func priceValidate(params *types.Params, denom string, price abi.TokenAmount) error {
	if denom != types.NativeDenom {
		return xerrors.Errorf("%w: denom %s", ErrInvalidPrice, denom)
	}
	if price.Int == nil || price.LessThanEqual(abi.NewTokenAmount(0)) {
		return ErrInvalidPrice
	}
	if price.LessThan(params.MinPrice) {
		return xerrors.Errorf("%w: %s < %s", ErrPriceTooSmall, price, params.MinPrice)
	}
	return nil
}

// SetAsk lists a deposited asset for sale. The asset itself is already in
// marketplace custody; the attached payment must equal the configured
// listing fee.
func (p *MarketProvider) SetAsk(ctx context.Context, deposit *AssetDeposit, payment *ledger.Payment) (*ledger.Bundle, error) {
	terms := deposit.Terms
	if terms.TokenID != deposit.TokenID {
		return nil, xerrors.Errorf("%w: deposited %s, terms name %s", ErrTokenMismatch, deposit.TokenID, terms.TokenID)
	}
	if !terms.SaleType.Valid() {
		return nil, xerrors.Errorf("invalid sale type %q", terms.SaleType)
	}

	params, err := p.params(ctx)
	if err != nil {
		return nil, err
	}
	if err := priceValidate(params, terms.Denom, terms.Price); err != nil {
		return nil, err
	}
	if err := params.AskExpiry.ValidExpiry(terms.ExpiresIn); err != nil {
		return nil, xerrors.Errorf("%w: %s", ErrInvalidExpiry, err)
	}

	fee, err := ledger.MayPay(payment)
	if err != nil {
		return nil, err
	}
	if !fee.Equals(params.ListingFee) {
		return nil, xerrors.Errorf("%w: got %s, want %s", ErrInvalidListingFee, fee, params.ListingFee)
	}

	now, err := p.chainTime(ctx)
	if err != nil {
		return nil, err
	}

	ask := &types.Ask{
		SaleType:       terms.SaleType,
		Collection:     deposit.Collection,
		TokenID:        deposit.TokenID,
		Seller:         deposit.Sender,
		Price:          terms.Price,
		FundsRecipient: terms.FundsRecipient,
		ExpiresAt:      now + terms.ExpiresIn,
		MaxBidder:      p.self,
		MaxBid:         params.MinPrice,
	}

	bundle := ledger.NewBundle()
	if err := p.prepareAskHooks(ctx, bundle, ask, types.HookActionCreate); err != nil {
		return nil, err
	}
	bundle.AddEvent(ledger.Event{Type: "set-ask", Attributes: []ledger.Attribute{
		{Key: "collection", Value: ask.Collection.String()},
		{Key: "token_id", Value: ask.TokenID},
		{Key: "seller", Value: ask.Seller.String()},
		{Key: "sale_type", Value: string(ask.SaleType)},
		{Key: "price", Value: ask.Price.String()},
		{Key: "expires_at", Value: timestampAttr(ask.ExpiresAt)},
	}})

	if err := p.r.AskRepo().CreateAsk(ctx, ask); err != nil {
		return nil, err
	}

	mctx, _ := tag.New(ctx, tag.Upsert(metrics.CollectionTag, ask.Collection.String()))
	stats.Record(mctx, metrics.AsksCreated.M(1))
	log.Infow("ask created", "key", ask.Key(), "saleType", ask.SaleType, "price", ask.Price)

	return bundle, nil
}

// RemoveAsk withdraws a fixed-price listing and returns the asset to the
// seller. Auctions cannot be withdrawn once listed.
func (p *MarketProvider) RemoveAsk(ctx context.Context, caller address.Address, key types.AskKey, payment *ledger.Payment) (*ledger.Bundle, error) {
	if err := ledger.Nonpayable(payment); err != nil {
		return nil, err
	}

	ask, err := p.loadAsk(ctx, key)
	if err != nil {
		return nil, err
	}
	if caller != ask.Seller {
		return nil, ErrNotSeller
	}
	if ask.SaleType == types.Auction {
		return nil, ErrCannotRemoveAuction
	}

	bundle := ledger.NewBundle()
	if err := addAssetTransfer(bundle, ask.Collection, ask.TokenID, ask.Seller); err != nil {
		return nil, err
	}
	if err := p.prepareAskHooks(ctx, bundle, ask, types.HookActionDelete); err != nil {
		return nil, err
	}
	bundle.AddEvent(ledger.Event{Type: "remove-ask", Attributes: []ledger.Attribute{
		{Key: "collection", Value: ask.Collection.String()},
		{Key: "token_id", Value: ask.TokenID},
	}})

	if err := p.r.AskRepo().RemoveAsk(ctx, key); err != nil {
		return nil, err
	}

	mctx, _ := tag.New(ctx, tag.Upsert(metrics.CollectionTag, ask.Collection.String()))
	stats.Record(mctx, metrics.AsksRemoved.M(1))
	log.Infow("ask removed", "key", key)

	return bundle, nil
}

// UpdateAskPrice changes the price of a live fixed-price listing.
func (p *MarketProvider) UpdateAskPrice(ctx context.Context, caller address.Address, key types.AskKey, price abi.TokenAmount, payment *ledger.Payment) (*ledger.Bundle, error) {
	if err := ledger.Nonpayable(payment); err != nil {
		return nil, err
	}

	params, err := p.params(ctx)
	if err != nil {
		return nil, err
	}
	if err := priceValidate(params, types.NativeDenom, price); err != nil {
		return nil, err
	}

	ask, err := p.loadAsk(ctx, key)
	if err != nil {
		return nil, err
	}
	if caller != ask.Seller {
		return nil, ErrNotSeller
	}

	now, err := p.chainTime(ctx)
	if err != nil {
		return nil, err
	}
	if ask.IsExpired(now) {
		return nil, ErrAskExpired
	}

	ask.Price = price

	bundle := ledger.NewBundle()
	if err := p.prepareAskHooks(ctx, bundle, ask, types.HookActionUpdate); err != nil {
		return nil, err
	}
	bundle.AddEvent(ledger.Event{Type: "update-ask", Attributes: []ledger.Attribute{
		{Key: "collection", Value: ask.Collection.String()},
		{Key: "token_id", Value: ask.TokenID},
		{Key: "price", Value: price.String()},
	}})

	if err := p.r.AskRepo().SaveAsk(ctx, ask); err != nil {
		return nil, err
	}
	log.Infow("ask repriced", "key", key, "price", price)

	return bundle, nil
}

func (p *MarketProvider) loadAsk(ctx context.Context, key types.AskKey) (*types.Ask, error) {
	ask, err := p.r.AskRepo().GetAsk(ctx, key)
	if err != nil {
		if xerrors.Is(err, repo.ErrNotFound) {
			return nil, xerrors.Errorf("%w: %s", ErrAskNotFound, key)
		}
		return nil, xerrors.Errorf("load ask %s: %w", key, err)
	}
	return ask, nil
}
