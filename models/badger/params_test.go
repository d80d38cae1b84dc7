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

func TestParamsRoundtrip(t *testing.T) {
	ctx := context.Background()
	r := setup(t).ParamsRepo()

	_, err := r.GetParams(ctx)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	params := &types.Params{
		AskExpiry:  types.ExpiryRange{Min: 60, Max: 3600},
		BidExpiry:  types.ExpiryRange{Min: 60, Max: 3600},
		Operators:  []address.Address{getTestAddress()},
		MinPrice:   abi.NewTokenAmount(10),
		ListingFee: abi.NewTokenAmount(5),
	}
	require.NoError(t, r.SetParams(ctx, params))

	got, err := r.GetParams(ctx)
	assert.NoError(t, err)
	assert.Equal(t, params, got)
}
