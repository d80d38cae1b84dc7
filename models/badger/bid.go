package badger

import (
	"context"
	"encoding/json"

	"github.com/filecoin-project/go-address"
	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/query"

	"github.com/heart-network/marketplace/models/repo"
	"github.com/heart-network/marketplace/types"
)

// bidRepo stores bid audit records plus a by-bidder index:
//
//	/bids/<collection>/<token>/<bidder>                 -> Bid (json)
//	/index/bids/bidder/<bidder>/<collection>/<token>    -> "<collection>/<token>"
type bidRepo struct {
	ds MarketplaceDS
}

var _ repo.BidRepo = (*bidRepo)(nil)

func NewBidRepo(ds MarketplaceDS) repo.BidRepo {
	return &bidRepo{ds: ds}
}

func bidKey(key types.BidKey) datastore.Key {
	return dsKey("bids", key.Collection.String(), key.TokenID, key.Bidder.String())
}

func bidderIndexKey(bid *types.Bid) datastore.Key {
	return dsKey("index", "bids", "bidder", bid.Bidder.String(), bid.Collection.String(), bid.TokenID)
}

func (r *bidRepo) SaveBid(ctx context.Context, bid *types.Bid) error {
	data, err := json.Marshal(bid)
	if err != nil {
		return err
	}
	batch, err := r.ds.Batch(ctx)
	if err != nil {
		return err
	}
	if err := batch.Put(ctx, bidKey(bid.Key()), data); err != nil {
		return err
	}
	if err := batch.Put(ctx, bidderIndexKey(bid), []byte(types.NewAskKey(bid.Collection, bid.TokenID).String())); err != nil {
		return err
	}
	return batch.Commit(ctx)
}

func (r *bidRepo) GetBid(ctx context.Context, key types.BidKey) (*types.Bid, error) {
	data, err := r.ds.Get(ctx, bidKey(key))
	if err != nil {
		if err == datastore.ErrNotFound {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	var bid types.Bid
	if err := json.Unmarshal(data, &bid); err != nil {
		return nil, err
	}
	return &bid, nil
}

func (r *bidRepo) ListBidsByToken(ctx context.Context, key types.AskKey) ([]*types.Bid, error) {
	return r.scan(ctx, dsKey("bids", key.Collection.String(), key.TokenID).String())
}

func (r *bidRepo) ListBidsByBidder(ctx context.Context, bidder address.Address) ([]*types.Bid, error) {
	prefix := dsKey("index", "bids", "bidder", bidder.String()).String()
	results, err := r.ds.Query(ctx, query.Query{
		Prefix: prefix,
		Orders: []query.Order{query.OrderByKey{}},
	})
	if err != nil {
		return nil, err
	}
	defer results.Close() //nolint:errcheck

	var bids []*types.Bid
	for res := range results.Next() {
		if res.Error != nil {
			return nil, res.Error
		}
		askKey, err := parseAskKeyRef(string(res.Value))
		if err != nil {
			return nil, err
		}
		bid, err := r.GetBid(ctx, types.NewBidKey(askKey.Collection, askKey.TokenID, bidder))
		if err != nil {
			return nil, err
		}
		bids = append(bids, bid)
	}
	return bids, nil
}

func (r *bidRepo) scan(ctx context.Context, prefix string) ([]*types.Bid, error) {
	results, err := r.ds.Query(ctx, query.Query{
		Prefix: prefix,
		Orders: []query.Order{query.OrderByKey{}},
	})
	if err != nil {
		return nil, err
	}
	defer results.Close() //nolint:errcheck

	var bids []*types.Bid
	for res := range results.Next() {
		if res.Error != nil {
			return nil, res.Error
		}
		var bid types.Bid
		if err := json.Unmarshal(res.Value, &bid); err != nil {
			return nil, err
		}
		bids = append(bids, &bid)
	}
	return bids, nil
}
