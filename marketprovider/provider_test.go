package marketprovider

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heart-network/marketplace/journal"
	"github.com/heart-network/marketplace/ledger"
	"github.com/heart-network/marketplace/models/badger"
	"github.com/heart-network/marketplace/types"
)

type mockNode struct {
	now       uint64
	royalties map[address.Address]*types.RoyaltyInfo
}

func (n *mockNode) ChainTime(ctx context.Context) (uint64, error) {
	return n.now, nil
}

func (n *mockNode) QueryRoyalty(ctx context.Context, collection address.Address) (*types.RoyaltyInfo, error) {
	return n.royalties[collection], nil
}

type testEnv struct {
	p        *MarketProvider
	node     *mockNode
	operator address.Address
	getAddr  func() address.Address
}

func setupEnv(t *testing.T) *testEnv {
	r, err := badger.NewMemRepo()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, r.Close())
	})

	getAddr := address.NewForTestGetter()
	self := getAddr()
	operator := getAddr()
	node := &mockNode{now: 1000, royalties: map[address.Address]*types.RoyaltyInfo{}}

	p := NewMarketProvider(r, node, self, journal.NilJournal())
	require.NoError(t, p.Init(context.Background(), &types.Params{
		AskExpiry:  types.ExpiryRange{Min: 60, Max: 100000},
		BidExpiry:  types.ExpiryRange{Min: 60, Max: 100000},
		Operators:  []address.Address{operator},
		MinPrice:   abi.NewTokenAmount(5),
		ListingFee: abi.NewTokenAmount(0),
	}, nil))

	return &testEnv{p: p, node: node, operator: operator, getAddr: getAddr}
}

func nativePay(amount int64) *ledger.Payment {
	return &ledger.Payment{Denom: types.NativeDenom, Amount: abi.NewTokenAmount(amount)}
}

// listAsk lists a token and returns its key.
func (e *testEnv) listAsk(t *testing.T, seller, collection address.Address, tokenID types.TokenID, saleType types.SaleType, price int64) types.AskKey {
	_, err := e.p.SetAsk(context.Background(), &AssetDeposit{
		Collection: collection,
		TokenID:    tokenID,
		Sender:     seller,
		Terms: AskTerms{
			SaleType:  saleType,
			TokenID:   tokenID,
			Denom:     types.NativeDenom,
			Price:     abi.NewTokenAmount(price),
			ExpiresIn: 1000,
		},
	}, nil)
	require.NoError(t, err)
	return types.NewAskKey(collection, tokenID)
}

func TestInitOnlyOnce(t *testing.T) {
	env := setupEnv(t)
	err := env.p.Init(context.Background(), &types.Params{
		MinPrice:   abi.NewTokenAmount(1),
		ListingFee: abi.NewTokenAmount(0),
	}, nil)
	assert.Error(t, err)
}

func TestUpdateParams(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	stranger := env.getAddr()
	newFloor := abi.NewTokenAmount(42)
	_, err := env.p.UpdateParams(ctx, stranger, &ParamUpdate{MinPrice: &newFloor})
	assert.ErrorIs(t, err, ErrNotOperator)

	_, err = env.p.UpdateParams(ctx, env.operator, &ParamUpdate{MinPrice: &newFloor})
	assert.NoError(t, err)

	params, err := env.p.Params(ctx)
	assert.NoError(t, err)
	assert.Equal(t, newFloor, params.MinPrice)
	// untouched fields survive a partial update
	assert.Equal(t, uint64(100000), params.AskExpiry.Max)
}

func TestOperatorManagement(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	second := env.getAddr()
	_, err := env.p.AddOperator(ctx, env.operator, second)
	assert.NoError(t, err)
	_, err = env.p.AddOperator(ctx, env.operator, second)
	assert.Error(t, err)

	params, err := env.p.Params(ctx)
	assert.NoError(t, err)
	assert.True(t, params.IsOperator(second))

	_, err = env.p.RemoveOperator(ctx, second, env.operator)
	assert.NoError(t, err)
	params, err = env.p.Params(ctx)
	assert.NoError(t, err)
	assert.False(t, params.IsOperator(env.operator))

	_, err = env.p.RemoveOperator(ctx, second, env.operator)
	assert.Error(t, err)
}

func TestHookManagement(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	hook := env.getAddr()
	_, err := env.p.AddHook(ctx, env.getAddr(), types.AskHooks, hook)
	assert.ErrorIs(t, err, ErrNotOperator)

	_, err = env.p.AddHook(ctx, env.operator, types.AskHooks, hook)
	assert.NoError(t, err)
	_, err = env.p.AddHook(ctx, env.operator, types.AskHooks, hook)
	assert.Error(t, err)

	hooks, err := env.p.ListHooks(ctx, types.AskHooks)
	assert.NoError(t, err)
	assert.Equal(t, []address.Address{hook}, hooks)

	_, err = env.p.RemoveHook(ctx, env.operator, types.AskHooks, hook)
	assert.NoError(t, err)
	_, err = env.p.RemoveHook(ctx, env.operator, types.AskHooks, hook)
	assert.Error(t, err)

	_, err = env.p.AddHook(ctx, env.operator, types.HookClass("bogus"), hook)
	assert.Error(t, err)
}
