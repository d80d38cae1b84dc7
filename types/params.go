package types

import (
	"sort"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"golang.org/x/xerrors"
)

// ExpiryRange bounds the relative expiry (in seconds) an order may be
// created with.
type ExpiryRange struct {
	Min uint64 `json:"min"`
	Max uint64 `json:"max"`
}

func (r ExpiryRange) Validate() error {
	if r.Min > r.Max {
		return xerrors.Errorf("expiry range min %d > max %d", r.Min, r.Max)
	}
	return nil
}

// ValidExpiry checks a requested relative expiry against the range:
// min < expiry <= max.
func (r ExpiryRange) ValidExpiry(expiry uint64) error {
	if expiry <= r.Min || expiry > r.Max {
		return xerrors.Errorf("expiry %d outside of range (%d, %d]", expiry, r.Min, r.Max)
	}
	return nil
}

// Params is the marketplace's global parameter singleton. It is read by
// every operation and written only through the governance path.
type Params struct {
	AskExpiry  ExpiryRange       `json:"ask_expiry"`
	BidExpiry  ExpiryRange       `json:"bid_expiry"`
	Operators  []address.Address `json:"operators"`
	MinPrice   abi.TokenAmount   `json:"min_price"`
	ListingFee abi.TokenAmount   `json:"listing_fee"`
}

func (p *Params) Validate() error {
	if err := p.AskExpiry.Validate(); err != nil {
		return err
	}
	if err := p.BidExpiry.Validate(); err != nil {
		return err
	}
	if p.MinPrice.Int == nil || p.ListingFee.Int == nil {
		return xerrors.Errorf("min price and listing fee must be set")
	}
	return nil
}

func (p *Params) IsOperator(addr address.Address) bool {
	for _, op := range p.Operators {
		if op == addr {
			return true
		}
	}
	return false
}

// SortDedupAddrs returns the addresses sorted and de-duplicated; the
// operator allow-list and hook subscriber sets are kept in this shape.
func SortDedupAddrs(addrs []address.Address) []address.Address {
	out := make([]address.Address, len(addrs))
	copy(out, addrs)
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	n := 0
	for i, a := range out {
		if i == 0 || out[n-1] != a {
			out[n] = a
			n++
		}
	}
	return out[:n]
}
