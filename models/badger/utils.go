package badger

import (
	"strings"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/ipfs/go-datastore"
	"golang.org/x/xerrors"
)

// pricePadWidth fixes the width of price key segments so that
// lexicographic key order equals numeric order. 40 decimal digits is
// enough for any amount fitting in 128 bits.
const pricePadWidth = 40

func padPrice(price abi.TokenAmount) (string, error) {
	if price.Int == nil {
		return "", xerrors.Errorf("price not set")
	}
	if price.LessThan(abi.NewTokenAmount(0)) {
		return "", xerrors.Errorf("negative price %s", price)
	}
	s := price.Int.String()
	if len(s) > pricePadWidth {
		return "", xerrors.Errorf("price %s exceeds %d digits", s, pricePadWidth)
	}
	return strings.Repeat("0", pricePadWidth-len(s)) + s, nil
}

// lastKeySegment returns the final component of a datastore key.
func lastKeySegment(key string) string {
	idx := strings.LastIndex(key, "/")
	if idx < 0 {
		return key
	}
	return key[idx+1:]
}

func dsKey(parts ...string) datastore.Key {
	return datastore.NewKey("/" + strings.Join(parts, "/"))
}
