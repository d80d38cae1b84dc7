package marketprovider

import (
	"context"
	"encoding/json"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"golang.org/x/xerrors"

	"github.com/heart-network/marketplace/ledger"
	"github.com/heart-network/marketplace/types"
)

// prepareAskHooks queues one contained notification call per ask-hook
// subscriber, in registration order.
func (p *MarketProvider) prepareAskHooks(ctx context.Context, bundle *ledger.Bundle, ask *types.Ask, action types.HookAction) error {
	payload, err := json.Marshal(&types.AskHookPayload{Action: action, Ask: *ask})
	if err != nil {
		return xerrors.Errorf("marshal ask hook payload: %w", err)
	}
	return p.notify(ctx, bundle, types.AskHooks, ledger.MethodAskHook, payload)
}

func (p *MarketProvider) prepareBidHooks(ctx context.Context, bundle *ledger.Bundle, bid *types.Bid, action types.HookAction) error {
	payload, err := json.Marshal(&types.BidHookPayload{Action: action, Bid: *bid})
	if err != nil {
		return xerrors.Errorf("marshal bid hook payload: %w", err)
	}
	return p.notify(ctx, bundle, types.BidHooks, ledger.MethodBidHook, payload)
}

func (p *MarketProvider) prepareSaleHooks(ctx context.Context, bundle *ledger.Bundle, ask *types.Ask, price abi.TokenAmount, buyer address.Address) error {
	payload, err := json.Marshal(&types.SaleHookPayload{
		Collection: ask.Collection,
		TokenID:    ask.TokenID,
		Price:      price,
		Seller:     ask.Seller,
		Buyer:      buyer,
	})
	if err != nil {
		return xerrors.Errorf("marshal sale hook payload: %w", err)
	}
	return p.notify(ctx, bundle, types.SaleHooks, ledger.MethodSaleHook, payload)
}

func (p *MarketProvider) notify(ctx context.Context, bundle *ledger.Bundle, class types.HookClass, method string, payload []byte) error {
	subs, err := p.r.HookRepo().ListHooks(ctx, class)
	if err != nil {
		return xerrors.Errorf("list %s hooks: %w", class, err)
	}
	for _, sub := range subs {
		bundle.AddHookCall(sub, method, payload, class)
	}
	return nil
}
