package repo

import (
	"context"
	"errors"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"

	"github.com/heart-network/marketplace/types"
)

// ErrNotFound is the uniform not-found error every backend maps its native
// miss onto.
var ErrNotFound = errors.New("record not found")

// ErrAskExists is returned by CreateAsk when the (collection, token) slot
// is already taken.
var ErrAskExists = errors.New("ask already exists")

// ErrHookExists and ErrHookNotFound guard the subscriber registries.
var (
	ErrHookExists   = errors.New("hook already registered")
	ErrHookNotFound = errors.New("hook not registered")
)

// PricePoint is the exclusive lower bound of a price-ordered listing page.
type PricePoint struct {
	Price   abi.TokenAmount
	TokenID types.TokenID
}

type AskRepo interface {
	// CreateAsk stores a new ask and fails if one already exists at the key.
	CreateAsk(ctx context.Context, ask *types.Ask) error
	// SaveAsk overwrites an existing ask, keeping secondary indices in sync.
	SaveAsk(ctx context.Context, ask *types.Ask) error
	GetAsk(ctx context.Context, key types.AskKey) (*types.Ask, error)
	HasAsk(ctx context.Context, key types.AskKey) (bool, error)
	RemoveAsk(ctx context.Context, key types.AskKey) error

	// ListAsksByCollection pages through a collection in token-id order,
	// ascending or descending. startAfter is exclusive; empty means from
	// the beginning.
	ListAsksByCollection(ctx context.Context, collection address.Address, descending bool, startAfter types.TokenID, limit int) ([]*types.Ask, error)
	// ListAsksByCollectionPrice pages through a collection in price order,
	// ascending or descending. startAfter is exclusive and may be nil.
	ListAsksByCollectionPrice(ctx context.Context, collection address.Address, descending bool, startAfter *PricePoint, limit int) ([]*types.Ask, error)
	ListAsksBySeller(ctx context.Context, seller address.Address, startAfter *types.AskKey, limit int) ([]*types.Ask, error)
	CountAsksByCollection(ctx context.Context, collection address.Address) (int64, error)
	// ListCollections pages through the distinct collections that have at
	// least one live ask, in address order. startAfter is exclusive and may
	// be address.Undef.
	ListCollections(ctx context.Context, startAfter address.Address, limit int) ([]address.Address, error)
}

type BidRepo interface {
	// SaveBid upserts the bid record at (collection, token, bidder).
	SaveBid(ctx context.Context, bid *types.Bid) error
	GetBid(ctx context.Context, key types.BidKey) (*types.Bid, error)
	ListBidsByToken(ctx context.Context, key types.AskKey) ([]*types.Bid, error)
	ListBidsByBidder(ctx context.Context, bidder address.Address) ([]*types.Bid, error)
}

type ParamsRepo interface {
	// GetParams returns ErrNotFound until the marketplace is initialized.
	GetParams(ctx context.Context) (*types.Params, error)
	SetParams(ctx context.Context, params *types.Params) error
}

type HookRepo interface {
	// AddHook appends a subscriber, rejecting duplicates within a class.
	AddHook(ctx context.Context, class types.HookClass, addr address.Address) error
	// RemoveHook fails if the subscriber is not registered.
	RemoveHook(ctx context.Context, class types.HookClass, addr address.Address) error
	// ListHooks returns subscribers in registration order.
	ListHooks(ctx context.Context, class types.HookClass) ([]address.Address, error)
}

type Repo interface {
	AskRepo() AskRepo
	BidRepo() BidRepo
	ParamsRepo() ParamsRepo
	HookRepo() HookRepo
	Migrate() error
	Close() error
}
