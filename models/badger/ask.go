package badger

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/filecoin-project/go-address"
	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/query"
	"golang.org/x/xerrors"

	"github.com/heart-network/marketplace/models/repo"
	"github.com/heart-network/marketplace/types"
)

// askRepo keeps the primary ask records plus two maintained secondary
// indices, all under the shared marketplace datastore so a single batch
// covers primary and index mutations:
//
//	/asks/<collection>/<token>                      -> Ask (json)
//	/index/asks/seller/<seller>/<collection>/<token> -> "<collection>/<token>"
//	/index/asks/price/<collection>/<price40>/<token> -> "<token>"
type askRepo struct {
	ds MarketplaceDS
}

var _ repo.AskRepo = (*askRepo)(nil)

func NewAskRepo(ds MarketplaceDS) repo.AskRepo {
	return &askRepo{ds: ds}
}

func askKey(key types.AskKey) datastore.Key {
	return dsKey("asks", key.Collection.String(), key.TokenID)
}

func sellerIndexKey(ask *types.Ask) datastore.Key {
	return dsKey("index", "asks", "seller", ask.Seller.String(), ask.Collection.String(), ask.TokenID)
}

func priceIndexKey(ask *types.Ask) (datastore.Key, error) {
	padded, err := padPrice(ask.Price)
	if err != nil {
		return datastore.Key{}, err
	}
	return dsKey("index", "asks", "price", ask.Collection.String(), padded, ask.TokenID), nil
}

func (r *askRepo) CreateAsk(ctx context.Context, ask *types.Ask) error {
	has, err := r.ds.Has(ctx, askKey(ask.Key()))
	if err != nil {
		return err
	}
	if has {
		return repo.ErrAskExists
	}
	return r.putAsk(ctx, ask, nil)
}

func (r *askRepo) SaveAsk(ctx context.Context, ask *types.Ask) error {
	prev, err := r.GetAsk(ctx, ask.Key())
	if err != nil && err != repo.ErrNotFound {
		return err
	}
	return r.putAsk(ctx, ask, prev)
}

// putAsk writes the record and its index entries in one batch; prev, when
// present, is used to drop the superseded price index entry.
func (r *askRepo) putAsk(ctx context.Context, ask *types.Ask, prev *types.Ask) error {
	data, err := json.Marshal(ask)
	if err != nil {
		return err
	}
	priceKey, err := priceIndexKey(ask)
	if err != nil {
		return err
	}

	batch, err := r.ds.Batch(ctx)
	if err != nil {
		return err
	}
	if prev != nil && !prev.Price.Equals(ask.Price) {
		prevPriceKey, err := priceIndexKey(prev)
		if err != nil {
			return err
		}
		if err := batch.Delete(ctx, prevPriceKey); err != nil {
			return err
		}
	}
	if err := batch.Put(ctx, askKey(ask.Key()), data); err != nil {
		return err
	}
	if err := batch.Put(ctx, sellerIndexKey(ask), []byte(ask.Key().String())); err != nil {
		return err
	}
	if err := batch.Put(ctx, priceKey, []byte(ask.TokenID)); err != nil {
		return err
	}
	return batch.Commit(ctx)
}

func (r *askRepo) GetAsk(ctx context.Context, key types.AskKey) (*types.Ask, error) {
	data, err := r.ds.Get(ctx, askKey(key))
	if err != nil {
		if err == datastore.ErrNotFound {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	var ask types.Ask
	if err := json.Unmarshal(data, &ask); err != nil {
		return nil, xerrors.Errorf("ask %s: unmarshal: %w", key, err)
	}
	return &ask, nil
}

func (r *askRepo) HasAsk(ctx context.Context, key types.AskKey) (bool, error) {
	return r.ds.Has(ctx, askKey(key))
}

func (r *askRepo) RemoveAsk(ctx context.Context, key types.AskKey) error {
	ask, err := r.GetAsk(ctx, key)
	if err != nil {
		return err
	}
	priceKey, err := priceIndexKey(ask)
	if err != nil {
		return err
	}

	batch, err := r.ds.Batch(ctx)
	if err != nil {
		return err
	}
	if err := batch.Delete(ctx, askKey(key)); err != nil {
		return err
	}
	if err := batch.Delete(ctx, sellerIndexKey(ask)); err != nil {
		return err
	}
	if err := batch.Delete(ctx, priceKey); err != nil {
		return err
	}
	return batch.Commit(ctx)
}

func (r *askRepo) ListAsksByCollection(ctx context.Context, collection address.Address, descending bool, startAfter types.TokenID, limit int) ([]*types.Ask, error) {
	prefix := dsKey("asks", collection.String()).String()
	order := query.Order(query.OrderByKey{})
	if descending {
		order = query.OrderByKeyDescending{}
	}
	results, err := r.ds.Query(ctx, query.Query{
		Prefix: prefix,
		Orders: []query.Order{order},
	})
	if err != nil {
		return nil, err
	}
	defer results.Close() //nolint:errcheck

	var asks []*types.Ask
	for res := range results.Next() {
		if res.Error != nil {
			return nil, res.Error
		}
		if startAfter != "" {
			token := lastKeySegment(res.Key)
			if !descending && token <= startAfter {
				continue
			}
			if descending && token >= startAfter {
				continue
			}
		}
		var ask types.Ask
		if err := json.Unmarshal(res.Value, &ask); err != nil {
			return nil, err
		}
		asks = append(asks, &ask)
		if limit > 0 && len(asks) >= limit {
			break
		}
	}
	return asks, nil
}

func (r *askRepo) ListAsksByCollectionPrice(ctx context.Context, collection address.Address, descending bool, startAfter *repo.PricePoint, limit int) ([]*types.Ask, error) {
	prefix := dsKey("index", "asks", "price", collection.String()).String()
	order := query.Order(query.OrderByKey{})
	if descending {
		order = query.OrderByKeyDescending{}
	}
	results, err := r.ds.Query(ctx, query.Query{
		Prefix: prefix,
		Orders: []query.Order{order},
	})
	if err != nil {
		return nil, err
	}
	defer results.Close() //nolint:errcheck

	var bound string
	if startAfter != nil {
		padded, err := padPrice(startAfter.Price)
		if err != nil {
			return nil, err
		}
		bound = prefix + "/" + padded + "/" + startAfter.TokenID
	}

	var asks []*types.Ask
	for res := range results.Next() {
		if res.Error != nil {
			return nil, res.Error
		}
		if bound != "" {
			if !descending && res.Key <= bound {
				continue
			}
			if descending && res.Key >= bound {
				continue
			}
		}
		ask, err := r.GetAsk(ctx, types.NewAskKey(collection, string(res.Value)))
		if err != nil {
			return nil, err
		}
		asks = append(asks, ask)
		if limit > 0 && len(asks) >= limit {
			break
		}
	}
	return asks, nil
}

func (r *askRepo) ListAsksBySeller(ctx context.Context, seller address.Address, startAfter *types.AskKey, limit int) ([]*types.Ask, error) {
	prefix := dsKey("index", "asks", "seller", seller.String()).String()
	results, err := r.ds.Query(ctx, query.Query{
		Prefix: prefix,
		Orders: []query.Order{query.OrderByKey{}},
	})
	if err != nil {
		return nil, err
	}
	defer results.Close() //nolint:errcheck

	var bound string
	if startAfter != nil {
		bound = prefix + "/" + startAfter.Collection.String() + "/" + startAfter.TokenID
	}

	var asks []*types.Ask
	for res := range results.Next() {
		if res.Error != nil {
			return nil, res.Error
		}
		if bound != "" && res.Key <= bound {
			continue
		}
		key, err := parseAskKeyRef(string(res.Value))
		if err != nil {
			return nil, err
		}
		ask, err := r.GetAsk(ctx, key)
		if err != nil {
			return nil, err
		}
		asks = append(asks, ask)
		if limit > 0 && len(asks) >= limit {
			break
		}
	}
	return asks, nil
}

func (r *askRepo) CountAsksByCollection(ctx context.Context, collection address.Address) (int64, error) {
	results, err := r.ds.Query(ctx, query.Query{
		Prefix:   dsKey("asks", collection.String()).String(),
		KeysOnly: true,
	})
	if err != nil {
		return 0, err
	}
	defer results.Close() //nolint:errcheck

	var count int64
	for res := range results.Next() {
		if res.Error != nil {
			return 0, res.Error
		}
		count++
	}
	return count, nil
}

func (r *askRepo) ListCollections(ctx context.Context, startAfter address.Address, limit int) ([]address.Address, error) {
	results, err := r.ds.Query(ctx, query.Query{
		Prefix:   dsKey("asks").String(),
		Orders:   []query.Order{query.OrderByKey{}},
		KeysOnly: true,
	})
	if err != nil {
		return nil, err
	}
	defer results.Close() //nolint:errcheck

	var bound string
	if startAfter != address.Undef {
		bound = startAfter.String()
	}

	// keys are sorted, so each collection's entries are contiguous
	var (
		collections []address.Address
		last        string
	)
	for res := range results.Next() {
		if res.Error != nil {
			return nil, res.Error
		}
		parts := strings.Split(strings.TrimPrefix(res.Key, "/"), "/")
		if len(parts) != 3 {
			return nil, xerrors.Errorf("malformed ask key %q", res.Key)
		}
		segment := parts[1]
		if segment == last {
			continue
		}
		last = segment
		if bound != "" && segment <= bound {
			continue
		}
		collection, err := address.NewFromString(segment)
		if err != nil {
			return nil, xerrors.Errorf("ask key %q: %w", res.Key, err)
		}
		collections = append(collections, collection)
		if limit > 0 && len(collections) >= limit {
			break
		}
	}
	return collections, nil
}

// parseAskKeyRef turns a stored "<collection>/<token>" reference back into
// an AskKey.
func parseAskKeyRef(ref string) (types.AskKey, error) {
	parts := strings.SplitN(ref, "/", 2)
	if len(parts) != 2 {
		return types.AskKey{}, xerrors.Errorf("malformed ask key reference %q", ref)
	}
	collection, err := address.NewFromString(parts[0])
	if err != nil {
		return types.AskKey{}, xerrors.Errorf("ask key reference %q: %w", ref, err)
	}
	return types.NewAskKey(collection, parts[1]), nil
}
