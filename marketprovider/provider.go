// Package marketprovider implements the marketplace state machine: listing
// lifecycle, auction escrow, settlement with royalty split, hook
// notification and governance.
//
// Every mutating operation returns a *ledger.Bundle of payments, contract
// calls and events for the host to execute atomically with the storage
// mutations the handler performed. When an operation returns an error the
// host discards the bundle and rolls back the unit of work.
package marketprovider

import (
	"context"

	"github.com/filecoin-project/go-address"
	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/xerrors"

	"github.com/heart-network/marketplace/journal"
	"github.com/heart-network/marketplace/ledger"
	"github.com/heart-network/marketplace/models/repo"
	"github.com/heart-network/marketplace/types"
)

var log = logging.Logger("marketprovider")

type MarketProvider struct {
	r    repo.Repo
	node ledger.Node
	// self is the marketplace's own actor address, used as the "no bid yet"
	// sentinel on fresh auctions.
	self address.Address

	journal journal.Journal
}

func NewMarketProvider(r repo.Repo, node ledger.Node, self address.Address, j journal.Journal) *MarketProvider {
	if j == nil {
		j = journal.NilJournal()
	}
	return &MarketProvider{r: r, node: node, self: self, journal: j}
}

// Self returns the marketplace's own actor address.
func (p *MarketProvider) Self() address.Address {
	return p.self
}

func (p *MarketProvider) params(ctx context.Context) (*types.Params, error) {
	params, err := p.r.ParamsRepo().GetParams(ctx)
	if err != nil {
		if xerrors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotInitialized
		}
		return nil, xerrors.Errorf("load params: %w", err)
	}
	return params, nil
}

func (p *MarketProvider) chainTime(ctx context.Context) (uint64, error) {
	now, err := p.node.ChainTime(ctx)
	if err != nil {
		return 0, xerrors.Errorf("query chain time: %w", err)
	}
	return now, nil
}
