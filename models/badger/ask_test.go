package badger

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heart-network/marketplace/models/repo"
	"github.com/heart-network/marketplace/types"
)

var getTestAddress = address.NewForTestGetter()

func testAsk(collection address.Address, tokenID string, seller address.Address, price int64) *types.Ask {
	return &types.Ask{
		SaleType:   types.FixedPrice,
		Collection: collection,
		TokenID:    tokenID,
		Seller:     seller,
		Price:      abi.NewTokenAmount(price),
		ExpiresAt:  1000,
		MaxBidder:  seller,
		MaxBid:     abi.NewTokenAmount(1),
	}
}

func TestAskCreateGetRemove(t *testing.T) {
	ctx := context.Background()
	r := setup(t).AskRepo()

	collection := getTestAddress()
	seller := getTestAddress()
	ask := testAsk(collection, "1", seller, 100)

	assert.NoError(t, r.CreateAsk(ctx, ask))

	t.Run("duplicate creation is rejected", func(t *testing.T) {
		err := r.CreateAsk(ctx, testAsk(collection, "1", seller, 200))
		assert.ErrorIs(t, err, repo.ErrAskExists)
	})

	t.Run("get returns the stored record", func(t *testing.T) {
		got, err := r.GetAsk(ctx, ask.Key())
		assert.NoError(t, err)
		assert.Equal(t, ask, got)
	})

	t.Run("has", func(t *testing.T) {
		has, err := r.HasAsk(ctx, ask.Key())
		assert.NoError(t, err)
		assert.True(t, has)
	})

	t.Run("remove drops record and indices", func(t *testing.T) {
		assert.NoError(t, r.RemoveAsk(ctx, ask.Key()))
		_, err := r.GetAsk(ctx, ask.Key())
		assert.ErrorIs(t, err, repo.ErrNotFound)

		bySeller, err := r.ListAsksBySeller(ctx, seller, nil, 0)
		assert.NoError(t, err)
		assert.Empty(t, bySeller)

		byPrice, err := r.ListAsksByCollectionPrice(ctx, collection, false, nil, 0)
		assert.NoError(t, err)
		assert.Empty(t, byPrice)
	})

	t.Run("remove of a missing ask", func(t *testing.T) {
		err := r.RemoveAsk(ctx, types.NewAskKey(collection, "nope"))
		assert.ErrorIs(t, err, repo.ErrNotFound)
	})
}

func TestAskListByCollection(t *testing.T) {
	ctx := context.Background()
	r := setup(t).AskRepo()

	collection := getTestAddress()
	other := getTestAddress()
	seller := getTestAddress()

	for _, tokenID := range []string{"1", "2", "3"} {
		require.NoError(t, r.CreateAsk(ctx, testAsk(collection, tokenID, seller, 100)))
	}
	require.NoError(t, r.CreateAsk(ctx, testAsk(other, "9", seller, 100)))

	asks, err := r.ListAsksByCollection(ctx, collection, false, "", 0)
	assert.NoError(t, err)
	assert.Len(t, asks, 3)

	t.Run("pagination", func(t *testing.T) {
		asks, err := r.ListAsksByCollection(ctx, collection, false, "1", 1)
		assert.NoError(t, err)
		require.Len(t, asks, 1)
		assert.Equal(t, "2", asks[0].TokenID)
	})

	t.Run("descending", func(t *testing.T) {
		asks, err := r.ListAsksByCollection(ctx, collection, true, "", 0)
		assert.NoError(t, err)
		require.Len(t, asks, 3)
		assert.Equal(t, []string{"3", "2", "1"}, []string{asks[0].TokenID, asks[1].TokenID, asks[2].TokenID})
	})

	t.Run("descending pagination", func(t *testing.T) {
		asks, err := r.ListAsksByCollection(ctx, collection, true, "3", 1)
		assert.NoError(t, err)
		require.Len(t, asks, 1)
		assert.Equal(t, "2", asks[0].TokenID)
	})

	t.Run("count excludes other collections", func(t *testing.T) {
		count, err := r.CountAsksByCollection(ctx, collection)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})
}

func TestListCollections(t *testing.T) {
	ctx := context.Background()
	r := setup(t).AskRepo()

	seller := getTestAddress()
	collA := getTestAddress()
	collB := getTestAddress()

	require.NoError(t, r.CreateAsk(ctx, testAsk(collA, "1", seller, 100)))
	require.NoError(t, r.CreateAsk(ctx, testAsk(collA, "2", seller, 100)))
	require.NoError(t, r.CreateAsk(ctx, testAsk(collB, "1", seller, 100)))

	collections, err := r.ListCollections(ctx, address.Undef, 0)
	assert.NoError(t, err)
	require.Len(t, collections, 2)
	assert.Contains(t, collections, collA)
	assert.Contains(t, collections, collB)

	t.Run("start after excludes the bound", func(t *testing.T) {
		rest, err := r.ListCollections(ctx, collections[0], 0)
		assert.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, collections[1], rest[0])
	})

	t.Run("removing the last ask drops the collection", func(t *testing.T) {
		require.NoError(t, r.RemoveAsk(ctx, types.NewAskKey(collB, "1")))
		collections, err := r.ListCollections(ctx, address.Undef, 0)
		assert.NoError(t, err)
		assert.Equal(t, []address.Address{collA}, collections)
	})
}

func TestAskListByPrice(t *testing.T) {
	ctx := context.Background()
	r := setup(t).AskRepo()

	collection := getTestAddress()
	seller := getTestAddress()

	prices := map[string]int64{"a": 500, "b": 5, "c": 50}
	for tokenID, price := range prices {
		require.NoError(t, r.CreateAsk(ctx, testAsk(collection, tokenID, seller, price)))
	}

	t.Run("ascending", func(t *testing.T) {
		asks, err := r.ListAsksByCollectionPrice(ctx, collection, false, nil, 0)
		assert.NoError(t, err)
		require.Len(t, asks, 3)
		assert.Equal(t, []string{"b", "c", "a"}, []string{asks[0].TokenID, asks[1].TokenID, asks[2].TokenID})
	})

	t.Run("descending", func(t *testing.T) {
		asks, err := r.ListAsksByCollectionPrice(ctx, collection, true, nil, 0)
		assert.NoError(t, err)
		require.Len(t, asks, 3)
		assert.Equal(t, "a", asks[0].TokenID)
	})

	t.Run("start after excludes the bound", func(t *testing.T) {
		asks, err := r.ListAsksByCollectionPrice(ctx, collection, false, &repo.PricePoint{
			Price:   abi.NewTokenAmount(5),
			TokenID: "b",
		}, 0)
		assert.NoError(t, err)
		require.Len(t, asks, 2)
		assert.Equal(t, "c", asks[0].TokenID)
	})

	t.Run("price update moves the index entry", func(t *testing.T) {
		ask, err := r.GetAsk(ctx, types.NewAskKey(collection, "b"))
		require.NoError(t, err)
		ask.Price = abi.NewTokenAmount(5000)
		require.NoError(t, r.SaveAsk(ctx, ask))

		asks, err := r.ListAsksByCollectionPrice(ctx, collection, true, nil, 0)
		assert.NoError(t, err)
		require.Len(t, asks, 3)
		assert.Equal(t, "b", asks[0].TokenID)
	})
}

func TestAskListBySeller(t *testing.T) {
	ctx := context.Background()
	r := setup(t).AskRepo()

	sellerA := getTestAddress()
	sellerB := getTestAddress()
	collection := getTestAddress()

	require.NoError(t, r.CreateAsk(ctx, testAsk(collection, "1", sellerA, 100)))
	require.NoError(t, r.CreateAsk(ctx, testAsk(collection, "2", sellerB, 100)))
	require.NoError(t, r.CreateAsk(ctx, testAsk(collection, "3", sellerA, 100)))

	asks, err := r.ListAsksBySeller(ctx, sellerA, nil, 0)
	assert.NoError(t, err)
	assert.Len(t, asks, 2)
	for _, ask := range asks {
		assert.Equal(t, sellerA, ask.Seller)
	}
}
