package marketprovider

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heart-network/marketplace/ledger"
	"github.com/heart-network/marketplace/types"
)

func TestAskHooksNotified(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	subA := env.getAddr()
	subB := env.getAddr()
	_, err := env.p.AddHook(ctx, env.operator, types.AskHooks, subA)
	require.NoError(t, err)
	_, err = env.p.AddHook(ctx, env.operator, types.AskHooks, subB)
	require.NoError(t, err)

	seller := env.getAddr()
	collection := env.getAddr()
	bundle, err := env.p.SetAsk(ctx, &AssetDeposit{
		Collection: collection,
		TokenID:    "1",
		Sender:     seller,
		Terms: AskTerms{
			SaleType:  types.FixedPrice,
			TokenID:   "1",
			Denom:     types.NativeDenom,
			Price:     abi.NewTokenAmount(100),
			ExpiresIn: 1000,
		},
	}, nil)
	require.NoError(t, err)

	// one contained call per subscriber, in registration order
	require.Len(t, bundle.Calls(), 2)
	assert.Equal(t, subA, bundle.Calls()[0].To)
	assert.Equal(t, subB, bundle.Calls()[1].To)
	for _, call := range bundle.Calls() {
		assert.Equal(t, ledger.MethodAskHook, call.Method)
		assert.True(t, call.Contained)
		assert.Equal(t, types.AskHooks, call.HookClass)
	}

	var payload types.AskHookPayload
	require.NoError(t, unmarshalParams(bundle.Calls()[0].Params, &payload))
	assert.Equal(t, types.HookActionCreate, payload.Action)
	assert.Equal(t, seller, payload.Ask.Seller)
}

func TestSaleHooksNotifiedOnSettlement(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	sub := env.getAddr()
	_, err := env.p.AddHook(ctx, env.operator, types.SaleHooks, sub)
	require.NoError(t, err)

	seller := env.getAddr()
	collection := env.getAddr()
	buyer := env.getAddr()
	key := env.listAsk(t, seller, collection, "1", types.FixedPrice, 100)

	bundle, err := env.p.SetBid(ctx, buyer, key, nativePay(100))
	require.NoError(t, err)

	var hookCalls []ledger.CallInstruction
	for _, call := range bundle.Calls() {
		if call.Contained {
			hookCalls = append(hookCalls, call)
		}
	}
	require.Len(t, hookCalls, 1)
	assert.Equal(t, sub, hookCalls[0].To)
	assert.Equal(t, ledger.MethodSaleHook, hookCalls[0].Method)

	var payload types.SaleHookPayload
	require.NoError(t, unmarshalParams(hookCalls[0].Params, &payload))
	assert.Equal(t, buyer, payload.Buyer)
	assert.Equal(t, seller, payload.Seller)
}

func TestBidHooksNotified(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	sub := env.getAddr()
	_, err := env.p.AddHook(ctx, env.operator, types.BidHooks, sub)
	require.NoError(t, err)

	bidder := env.getAddr()
	key := env.listAsk(t, env.getAddr(), env.getAddr(), "1", types.Auction, 50)

	bundle, err := env.p.SetBid(ctx, bidder, key, nativePay(50))
	require.NoError(t, err)

	require.Len(t, bundle.Calls(), 1)
	assert.Equal(t, ledger.MethodBidHook, bundle.Calls()[0].Method)
	assert.True(t, bundle.Calls()[0].Contained)

	var payload types.BidHookPayload
	require.NoError(t, unmarshalParams(bundle.Calls()[0].Params, &payload))
	assert.Equal(t, bidder, payload.Bid.Bidder)
}
