package marketprovider

import (
	"context"

	"github.com/filecoin-project/go-address"
	"go.opencensus.io/stats"
	"go.opencensus.io/tag"

	"github.com/heart-network/marketplace/ledger"
	"github.com/heart-network/marketplace/metrics"
	"github.com/heart-network/marketplace/types"
)

// SetBid places the attached payment as a bid on a listing. On a
// fixed-price ask an exact-price bid settles the sale immediately; on an
// auction the bid must strictly exceed the running maximum, the previous
// maximum bidder is refunded from escrow and the new bid is held.
func (p *MarketProvider) SetBid(ctx context.Context, bidder address.Address, key types.AskKey, payment *ledger.Payment) (*ledger.Bundle, error) {
	amount, err := ledger.MustPay(payment)
	if err != nil {
		return nil, err
	}

	params, err := p.params(ctx)
	if err != nil {
		return nil, err
	}
	if amount.LessThan(params.MinPrice) {
		return nil, ErrPriceTooSmall
	}

	ask, err := p.loadAsk(ctx, key)
	if err != nil {
		return nil, err
	}

	now, err := p.chainTime(ctx)
	if err != nil {
		return nil, err
	}
	if ask.IsExpired(now) {
		return nil, ErrAskExpired
	}

	bundle := ledger.NewBundle()

	switch ask.SaleType {
	case types.FixedPrice:
		if !amount.Equals(ask.Price) {
			return nil, ErrInvalidPrice
		}
		if err := p.finalizeSale(ctx, bundle, ask, amount, bidder); err != nil {
			return nil, err
		}
		if err := p.r.AskRepo().RemoveAsk(ctx, key); err != nil {
			return nil, err
		}

	case types.Auction:
		// the listed price is the auction's reserve
		if amount.LessThan(ask.Price) {
			return nil, ErrPriceTooSmall
		}
		if !amount.GreaterThan(ask.MaxBid) {
			return nil, ErrBidTooLow
		}
		// Release the previous winner's escrowed funds before the new bid
		// takes its place.
		if ask.HasBid(p.self) {
			bundle.AddPayment(ask.MaxBidder, ask.MaxBid)
			mctx, _ := tag.New(ctx, tag.Upsert(metrics.CollectionTag, ask.Collection.String()))
			stats.Record(mctx, metrics.BidsRefunded.M(1))
		}

		ask.MaxBidder = bidder
		ask.MaxBid = amount
		if err := p.r.AskRepo().SaveAsk(ctx, ask); err != nil {
			return nil, err
		}

		bid := &types.Bid{
			Collection: ask.Collection,
			TokenID:    ask.TokenID,
			Bidder:     bidder,
			Price:      amount,
			CreatedAt:  now,
		}
		if err := p.r.BidRepo().SaveBid(ctx, bid); err != nil {
			return nil, err
		}
		if err := p.prepareBidHooks(ctx, bundle, bid, types.HookActionCreate); err != nil {
			return nil, err
		}
	}

	bundle.AddEvent(ledger.Event{Type: "set-bid", Attributes: []ledger.Attribute{
		{Key: "collection", Value: ask.Collection.String()},
		{Key: "token_id", Value: ask.TokenID},
		{Key: "bidder", Value: bidder.String()},
		{Key: "price", Value: amount.String()},
	}})

	mctx, _ := tag.New(ctx, tag.Upsert(metrics.CollectionTag, ask.Collection.String()))
	stats.Record(mctx, metrics.BidsPlaced.M(1))
	log.Infow("bid placed", "key", key, "bidder", bidder, "amount", amount, "saleType", ask.SaleType)

	return bundle, nil
}

// AcceptBid closes an ended auction. With a real winning bid the sale
// settles against the escrowed maximum; with only the listing sentinel on
// record the asset is returned to the seller.
func (p *MarketProvider) AcceptBid(ctx context.Context, caller address.Address, key types.AskKey, payment *ledger.Payment) (*ledger.Bundle, error) {
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

	now, err := p.chainTime(ctx)
	if err != nil {
		return nil, err
	}
	if !ask.IsExpired(now) {
		return nil, ErrAuctionNotEnded
	}

	bundle := ledger.NewBundle()
	if ask.HasBid(p.self) {
		if err := p.finalizeSale(ctx, bundle, ask, ask.MaxBid, ask.MaxBidder); err != nil {
			return nil, err
		}
	} else {
		// No real bid arrived; the asset goes back to the seller and no
		// funds move.
		if err := addAssetTransfer(bundle, ask.Collection, ask.TokenID, ask.Seller); err != nil {
			return nil, err
		}
	}

	if err := p.r.AskRepo().RemoveAsk(ctx, key); err != nil {
		return nil, err
	}

	bundle.AddEvent(ledger.Event{Type: "accept-bid", Attributes: []ledger.Attribute{
		{Key: "collection", Value: ask.Collection.String()},
		{Key: "token_id", Value: ask.TokenID},
		{Key: "bidder", Value: ask.MaxBidder.String()},
	}})
	log.Infow("auction closed", "key", key, "winner", ask.MaxBidder, "hadBid", ask.HasBid(p.self))

	return bundle, nil
}
