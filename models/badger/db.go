package badger

import (
	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/namespace"
	badger "github.com/ipfs/go-ds-badger2"

	"github.com/heart-network/marketplace/models/repo"
)

const (
	marketplacePrefix = "/marketplace"

	paramsPrefix = "/params"
	hooksPrefix  = "/hooks"
)

type (
	MarketplaceDS datastore.Batching

	ParamsDS datastore.Batching
	HookDS   datastore.Batching
)

func NewMarketplaceDS(ds datastore.Batching) MarketplaceDS {
	return namespace.Wrap(ds, datastore.NewKey(marketplacePrefix))
}

func NewParamsDS(ds MarketplaceDS) ParamsDS {
	return namespace.Wrap(ds, datastore.NewKey(paramsPrefix))
}

func NewHookDS(ds MarketplaceDS) HookDS {
	return namespace.Wrap(ds, datastore.NewKey(hooksPrefix))
}

type BadgerRepo struct {
	db *badger.Datastore

	askRepo    repo.AskRepo
	bidRepo    repo.BidRepo
	paramsRepo repo.ParamsRepo
	hookRepo   repo.HookRepo
}

var _ repo.Repo = (*BadgerRepo)(nil)

func NewBadgerRepo(db *badger.Datastore) repo.Repo {
	ds := NewMarketplaceDS(db)
	return &BadgerRepo{
		db:         db,
		askRepo:    NewAskRepo(ds),
		bidRepo:    NewBidRepo(ds),
		paramsRepo: NewParamsRepo(NewParamsDS(ds)),
		hookRepo:   NewHookRepo(NewHookDS(ds)),
	}
}

// OpenBadgerRepo opens the on-disk repo at the given path.
func OpenBadgerRepo(path string) (repo.Repo, error) {
	opts := badger.DefaultOptions
	db, err := badger.NewDatastore(path, &opts)
	if err != nil {
		return nil, err
	}
	return NewBadgerRepo(db), nil
}

func (r *BadgerRepo) AskRepo() repo.AskRepo {
	return r.askRepo
}

func (r *BadgerRepo) BidRepo() repo.BidRepo {
	return r.bidRepo
}

func (r *BadgerRepo) ParamsRepo() repo.ParamsRepo {
	return r.paramsRepo
}

func (r *BadgerRepo) HookRepo() repo.HookRepo {
	return r.hookRepo
}

func (r *BadgerRepo) Migrate() error {
	// key layout has a single version so far
	return nil
}

func (r *BadgerRepo) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
