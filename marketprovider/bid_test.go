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

func TestFixedPriceBidSettlesImmediately(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	seller := env.getAddr()
	collection := env.getAddr()
	buyer := env.getAddr()
	key := env.listAsk(t, seller, collection, "1", types.FixedPrice, 100)

	bundle, err := env.p.SetBid(ctx, buyer, key, nativePay(100))
	require.NoError(t, err)

	// no royalty terms, so the full price goes to the seller
	require.Len(t, bundle.Payments(), 1)
	assert.Equal(t, seller, bundle.Payments()[0].To)
	assert.Equal(t, abi.NewTokenAmount(100), bundle.Payments()[0].Amount)

	require.Len(t, bundle.Calls(), 1)
	assert.Equal(t, collection, bundle.Calls()[0].To)
	assert.Equal(t, ledger.MethodTransferAsset, bundle.Calls()[0].Method)

	_, err = env.p.GetAsk(ctx, key)
	assert.ErrorIs(t, err, ErrAskNotFound)

	// the sale settles in one step, no bid record is left behind
	bids, err := env.p.ListBidsByToken(ctx, key)
	require.NoError(t, err)
	assert.Empty(t, bids)
}

func TestFixedPriceBidValidation(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	buyer := env.getAddr()
	key := env.listAsk(t, env.getAddr(), env.getAddr(), "1", types.FixedPrice, 100)

	_, err := env.p.SetBid(ctx, buyer, key, nil)
	assert.ErrorIs(t, err, ledger.ErrNoPayment)

	_, err = env.p.SetBid(ctx, buyer, key, &ledger.Payment{Denom: "uatom", Amount: abi.NewTokenAmount(100)})
	assert.ErrorIs(t, err, ledger.ErrWrongDenom)

	_, err = env.p.SetBid(ctx, buyer, key, nativePay(3))
	assert.ErrorIs(t, err, ErrPriceTooSmall)

	// anything other than the exact price is rejected
	_, err = env.p.SetBid(ctx, buyer, key, nativePay(99))
	assert.ErrorIs(t, err, ErrInvalidPrice)
	_, err = env.p.SetBid(ctx, buyer, key, nativePay(101))
	assert.ErrorIs(t, err, ErrInvalidPrice)

	missing := types.NewAskKey(env.getAddr(), "404")
	_, err = env.p.SetBid(ctx, buyer, missing, nativePay(100))
	assert.ErrorIs(t, err, ErrAskNotFound)
}

func TestBidOnExpiredAsk(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	key := env.listAsk(t, env.getAddr(), env.getAddr(), "1", types.FixedPrice, 100)
	env.node.now += 1000

	_, err := env.p.SetBid(ctx, env.getAddr(), key, nativePay(100))
	assert.ErrorIs(t, err, ErrAskExpired)
}

func TestAuctionBidBelowReserve(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	bidder := env.getAddr()
	key := env.listAsk(t, env.getAddr(), env.getAddr(), "1", types.Auction, 100)

	// the listed price is the reserve; anything under it never enters escrow
	_, err := env.p.SetBid(ctx, bidder, key, nativePay(20))
	assert.ErrorIs(t, err, ErrPriceTooSmall)

	ask, err := env.p.GetAsk(ctx, key)
	require.NoError(t, err)
	assert.False(t, ask.HasBid(env.p.Self()))

	_, err = env.p.SetBid(ctx, bidder, key, nativePay(100))
	require.NoError(t, err)
}

func TestAuctionBidding(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	seller := env.getAddr()
	collection := env.getAddr()
	first := env.getAddr()
	second := env.getAddr()
	key := env.listAsk(t, seller, collection, "1", types.Auction, 10)

	// below the reserve price
	_, err := env.p.SetBid(ctx, first, key, nativePay(5))
	assert.ErrorIs(t, err, ErrPriceTooSmall)

	bundle, err := env.p.SetBid(ctx, first, key, nativePay(20))
	require.NoError(t, err)
	assert.Empty(t, bundle.Payments(), "first real bid refunds nobody")

	ask, err := env.p.GetAsk(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, first, ask.MaxBidder)
	assert.Equal(t, abi.NewTokenAmount(20), ask.MaxBid)
	assert.True(t, ask.HasBid(env.p.Self()))

	// equal rebid loses
	_, err = env.p.SetBid(ctx, second, key, nativePay(20))
	assert.ErrorIs(t, err, ErrBidTooLow)

	bundle, err = env.p.SetBid(ctx, second, key, nativePay(30))
	require.NoError(t, err)
	require.Len(t, bundle.Payments(), 1)
	assert.Equal(t, first, bundle.Payments()[0].To)
	assert.Equal(t, abi.NewTokenAmount(20), bundle.Payments()[0].Amount)

	ask, err = env.p.GetAsk(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, second, ask.MaxBidder)
	assert.Equal(t, abi.NewTokenAmount(30), ask.MaxBid)

	// both bids stay on record for inspection
	bids, err := env.p.ListBidsByToken(ctx, key)
	require.NoError(t, err)
	assert.Len(t, bids, 2)
}

func TestAcceptBidSettlesAuction(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	seller := env.getAddr()
	collection := env.getAddr()
	winner := env.getAddr()
	key := env.listAsk(t, seller, collection, "1", types.Auction, 50)

	_, err := env.p.SetBid(ctx, winner, key, nativePay(80))
	require.NoError(t, err)

	_, err = env.p.AcceptBid(ctx, env.getAddr(), key, nil)
	assert.ErrorIs(t, err, ErrNotSeller)

	_, err = env.p.AcceptBid(ctx, seller, key, nil)
	assert.ErrorIs(t, err, ErrAuctionNotEnded)

	env.node.now += 1000
	bundle, err := env.p.AcceptBid(ctx, seller, key, nil)
	require.NoError(t, err)

	require.Len(t, bundle.Payments(), 1)
	assert.Equal(t, seller, bundle.Payments()[0].To)
	assert.Equal(t, abi.NewTokenAmount(80), bundle.Payments()[0].Amount)

	require.Len(t, bundle.Calls(), 1)
	assert.Equal(t, collection, bundle.Calls()[0].To)

	_, err = env.p.GetAsk(ctx, key)
	assert.ErrorIs(t, err, ErrAskNotFound)
}

func TestAcceptBidWithoutBidReturnsAsset(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	seller := env.getAddr()
	collection := env.getAddr()
	key := env.listAsk(t, seller, collection, "1", types.Auction, 100)

	env.node.now += 1000
	bundle, err := env.p.AcceptBid(ctx, seller, key, nil)
	require.NoError(t, err)

	assert.Empty(t, bundle.Payments())
	require.Len(t, bundle.Calls(), 1)

	var params ledger.TransferAssetParams
	require.NoError(t, unmarshalParams(bundle.Calls()[0].Params, &params))
	assert.Equal(t, seller, params.Recipient)

	_, err = env.p.GetAsk(ctx, key)
	assert.ErrorIs(t, err, ErrAskNotFound)
}
