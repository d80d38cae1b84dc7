package mysql

import (
	"strings"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"golang.org/x/xerrors"
)

// DBAddress stores an address as its string form.
type DBAddress string

const emptyAddress = DBAddress("")

func NewDBAddress(addr address.Address) DBAddress {
	return DBAddress(addr.String())
}

func (a DBAddress) String() string {
	return string(a)
}

func (a DBAddress) addr() (address.Address, error) {
	return address.NewFromString(string(a))
}

// amountPadWidth matches the badger price index: amounts are stored as
// zero-padded decimal strings so that string order equals numeric order
// and price columns can be sorted directly.
const amountPadWidth = 40

// DBAmount stores a token amount as a zero-padded decimal string.
type DBAmount string

func NewDBAmount(amount abi.TokenAmount) (DBAmount, error) {
	if amount.Int == nil {
		return "", xerrors.Errorf("amount not set")
	}
	s := amount.Int.String()
	if len(s) > amountPadWidth {
		return "", xerrors.Errorf("amount %s exceeds %d digits", s, amountPadWidth)
	}
	return DBAmount(strings.Repeat("0", amountPadWidth-len(s)) + s), nil
}

func (a DBAmount) amount() (abi.TokenAmount, error) {
	v, err := big.FromString(strings.TrimLeft(string(a), "0"))
	if err != nil {
		// an all-zero string trims to nothing
		if strings.Trim(string(a), "0") == "" && a != "" {
			return big.Zero(), nil
		}
		return big.Zero(), xerrors.Errorf("malformed amount %q: %w", a, err)
	}
	return v, nil
}
