package marketprovider

import (
	"context"
	"fmt"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heart-network/marketplace/types"
)

func TestListAsksByCollectionOrder(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	seller := env.getAddr()
	collection := env.getAddr()
	for _, tokenID := range []string{"1", "2", "3"} {
		env.listAsk(t, seller, collection, tokenID, types.FixedPrice, 100)
	}

	asks, err := env.p.ListAsksByCollection(ctx, collection, false, "", 0)
	require.NoError(t, err)
	require.Len(t, asks, 3)
	assert.Equal(t, "1", asks[0].TokenID)
	assert.Equal(t, "3", asks[2].TokenID)

	asks, err = env.p.ListAsksByCollection(ctx, collection, true, "", 0)
	require.NoError(t, err)
	require.Len(t, asks, 3)
	assert.Equal(t, "3", asks[0].TokenID)
	assert.Equal(t, "1", asks[2].TokenID)

	// descending resumes below the bound
	asks, err = env.p.ListAsksByCollection(ctx, collection, true, "3", 0)
	require.NoError(t, err)
	require.Len(t, asks, 2)
	assert.Equal(t, "2", asks[0].TokenID)
}

func TestListAsksLimitClamped(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	seller := env.getAddr()
	collection := env.getAddr()
	for i := 10; i < 22; i++ {
		env.listAsk(t, seller, collection, fmt.Sprintf("%d", i), types.FixedPrice, 100)
	}

	asks, err := env.p.ListAsksByCollection(ctx, collection, false, "", 0)
	require.NoError(t, err)
	assert.Len(t, asks, DefaultListLimit)
}

func TestListCollectionsQuery(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	seller := env.getAddr()
	collA := env.getAddr()
	collB := env.getAddr()
	env.listAsk(t, seller, collA, "1", types.FixedPrice, 100)
	env.listAsk(t, seller, collA, "2", types.FixedPrice, 100)
	env.listAsk(t, seller, collB, "1", types.FixedPrice, 100)

	collections, err := env.p.ListCollections(ctx, address.Undef, 0)
	require.NoError(t, err)
	require.Len(t, collections, 2)
	assert.Contains(t, collections, collA)
	assert.Contains(t, collections, collB)

	rest, err := env.p.ListCollections(ctx, collections[0], 0)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, collections[1], rest[0])
}
