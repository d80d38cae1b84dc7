package marketprovider

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"go.opencensus.io/stats"
	"go.opencensus.io/tag"
	"golang.org/x/xerrors"

	"github.com/heart-network/marketplace/journal"
	"github.com/heart-network/marketplace/ledger"
	"github.com/heart-network/marketplace/metrics"
	"github.com/heart-network/marketplace/types"
)

const royaltyDenominator = 10000

// finalizeSale settles a concluded sale: pays out the price (royalty first,
// remainder to the seller's payout target), transfers the asset to the
// buyer and notifies sale hooks.
func (p *MarketProvider) finalizeSale(ctx context.Context, bundle *ledger.Bundle, ask *types.Ask, price abi.TokenAmount, buyer address.Address) error {
	royaltyPaid, err := p.payout(ctx, bundle, ask, price)
	if err != nil {
		return err
	}

	if err := addAssetTransfer(bundle, ask.Collection, ask.TokenID, buyer); err != nil {
		return err
	}
	if err := p.prepareSaleHooks(ctx, bundle, ask, price, buyer); err != nil {
		return err
	}

	bundle.AddEvent(ledger.Event{Type: "finalize-sale", Attributes: []ledger.Attribute{
		{Key: "collection", Value: ask.Collection.String()},
		{Key: "token_id", Value: ask.TokenID},
		{Key: "seller", Value: ask.Seller.String()},
		{Key: "buyer", Value: buyer.String()},
		{Key: "price", Value: price.String()},
		{Key: "royalty", Value: royaltyPaid.String()},
	}})

	p.journal.RecordEvent(journal.EventType{System: "marketplace", Event: "sale"}, &types.SaleRecord{
		Collection:  ask.Collection,
		TokenID:     ask.TokenID,
		Seller:      ask.Seller,
		Buyer:       buyer,
		Price:       price,
		RoyaltyPaid: royaltyPaid,
	})

	mctx, _ := tag.New(ctx, tag.Upsert(metrics.CollectionTag, ask.Collection.String()))
	stats.Record(mctx, metrics.SalesFinalized.M(1))
	if royaltyPaid.GreaterThan(big.Zero()) {
		stats.Record(mctx, metrics.RoyaltiesPaid.M(1))
	}
	log.Infow("sale finalized", "key", ask.Key(), "buyer", buyer, "price", price, "royalty", royaltyPaid)

	return nil
}

// payout queues the payment instructions for a sale and returns the royalty
// amount that was carved out of the price.
func (p *MarketProvider) payout(ctx context.Context, bundle *ledger.Bundle, ask *types.Ask, price abi.TokenAmount) (abi.TokenAmount, error) {
	recipient := ask.PaymentRecipient()

	royalty, err := p.node.QueryRoyalty(ctx, ask.Collection)
	if err != nil {
		return abi.TokenAmount{}, xerrors.Errorf("query royalty for %s: %w", ask.Collection, err)
	}

	if royalty == nil || royalty.ShareBps == 0 {
		bundle.AddPayment(recipient, price)
		return big.Zero(), nil
	}

	royaltyAmount := big.Div(big.Mul(price, big.NewInt(int64(royalty.ShareBps))), big.NewInt(royaltyDenominator))
	if royaltyAmount.GreaterThan(price) {
		return abi.TokenAmount{}, ErrRoyaltyExceedsPayment
	}

	bundle.AddPayment(royalty.Recipient, royaltyAmount)
	bundle.AddEvent(ledger.Event{Type: "royalty-payout", Attributes: []ledger.Attribute{
		{Key: "collection", Value: ask.Collection.String()},
		{Key: "token_id", Value: ask.TokenID},
		{Key: "recipient", Value: royalty.Recipient.String()},
		{Key: "amount", Value: royaltyAmount.String()},
	}})

	// The seller takes everything the royalty did not claim, so the two
	// instructions always sum to the exact price.
	bundle.AddPayment(recipient, big.Sub(price, royaltyAmount))

	return royaltyAmount, nil
}

func addAssetTransfer(bundle *ledger.Bundle, collection address.Address, tokenID types.TokenID, to address.Address) error {
	params, err := json.Marshal(&ledger.TransferAssetParams{TokenID: tokenID, Recipient: to})
	if err != nil {
		return xerrors.Errorf("marshal transfer params: %w", err)
	}
	bundle.AddCall(collection, ledger.MethodTransferAsset, params)
	return nil
}

func timestampAttr(ts uint64) string {
	return strconv.FormatUint(ts, 10)
}
