package badger

import (
	"context"
	"encoding/json"

	"github.com/filecoin-project/go-address"
	"github.com/ipfs/go-datastore"

	"github.com/heart-network/marketplace/models/repo"
	"github.com/heart-network/marketplace/types"
)

// hookRepo keeps one ordered subscriber list per hook class, stored whole
// under /hooks/<class>. Lists are small and governance-managed, so a
// read-modify-write of the full list mirrors the original registry shape.
type hookRepo struct {
	ds HookDS
}

var _ repo.HookRepo = (*hookRepo)(nil)

func NewHookRepo(ds HookDS) repo.HookRepo {
	return &hookRepo{ds: ds}
}

func hookClassKey(class types.HookClass) datastore.Key {
	return datastore.NewKey("/" + string(class))
}

func (r *hookRepo) load(ctx context.Context, class types.HookClass) ([]address.Address, error) {
	data, err := r.ds.Get(ctx, hookClassKey(class))
	if err != nil {
		if err == datastore.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	addrs := make([]address.Address, 0, len(raw))
	for _, s := range raw {
		addr, err := address.NewFromString(s)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}

func (r *hookRepo) store(ctx context.Context, class types.HookClass, addrs []address.Address) error {
	raw := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		raw = append(raw, addr.String())
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return r.ds.Put(ctx, hookClassKey(class), data)
}

func (r *hookRepo) AddHook(ctx context.Context, class types.HookClass, addr address.Address) error {
	addrs, err := r.load(ctx, class)
	if err != nil {
		return err
	}
	for _, a := range addrs {
		if a == addr {
			return repo.ErrHookExists
		}
	}
	return r.store(ctx, class, append(addrs, addr))
}

func (r *hookRepo) RemoveHook(ctx context.Context, class types.HookClass, addr address.Address) error {
	addrs, err := r.load(ctx, class)
	if err != nil {
		return err
	}
	for i, a := range addrs {
		if a == addr {
			return r.store(ctx, class, append(addrs[:i], addrs[i+1:]...))
		}
	}
	return repo.ErrHookNotFound
}

func (r *hookRepo) ListHooks(ctx context.Context, class types.HookClass) ([]address.Address, error) {
	return r.load(ctx, class)
}
