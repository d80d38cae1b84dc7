package badger

import (
	"context"
	"encoding/json"

	"github.com/ipfs/go-datastore"

	"github.com/heart-network/marketplace/models/repo"
	"github.com/heart-network/marketplace/types"
)

var paramsKey = datastore.NewKey("/current")

type paramsRepo struct {
	ds ParamsDS
}

var _ repo.ParamsRepo = (*paramsRepo)(nil)

func NewParamsRepo(ds ParamsDS) repo.ParamsRepo {
	return &paramsRepo{ds: ds}
}

func (r *paramsRepo) GetParams(ctx context.Context) (*types.Params, error) {
	data, err := r.ds.Get(ctx, paramsKey)
	if err != nil {
		if err == datastore.ErrNotFound {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	var params types.Params
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, err
	}
	return &params, nil
}

func (r *paramsRepo) SetParams(ctx context.Context, params *types.Params) error {
	data, err := json.Marshal(params)
	if err != nil {
		return err
	}
	return r.ds.Put(ctx, paramsKey, data)
}
