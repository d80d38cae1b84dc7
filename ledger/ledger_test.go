package ledger

import (
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/stretchr/testify/assert"

	"github.com/heart-network/marketplace/types"
)

func TestMustPay(t *testing.T) {
	amount, err := MustPay(&Payment{Denom: types.NativeDenom, Amount: abi.NewTokenAmount(10)})
	assert.NoError(t, err)
	assert.Equal(t, abi.NewTokenAmount(10), amount)

	_, err = MustPay(nil)
	assert.ErrorIs(t, err, ErrNoPayment)

	_, err = MustPay(&Payment{Denom: "uatom", Amount: abi.NewTokenAmount(10)})
	assert.ErrorIs(t, err, ErrWrongDenom)

	_, err = MustPay(&Payment{Denom: types.NativeDenom, Amount: abi.NewTokenAmount(0)})
	assert.ErrorIs(t, err, ErrNonPositive)
}

func TestNonpayable(t *testing.T) {
	assert.NoError(t, Nonpayable(nil))
	assert.NoError(t, Nonpayable(&Payment{Denom: types.NativeDenom, Amount: abi.NewTokenAmount(0)}))
	assert.ErrorIs(t, Nonpayable(&Payment{Denom: types.NativeDenom, Amount: abi.NewTokenAmount(1)}),
		ErrPaymentPresent)
}

func TestBundleKeepsAppendOrder(t *testing.T) {
	getAddr := address.NewForTestGetter()
	first := getAddr()
	second := getAddr()

	b := NewBundle()
	b.AddPayment(first, abi.NewTokenAmount(1))
	b.AddPayment(second, abi.NewTokenAmount(2))
	b.AddCall(first, MethodTransferAsset, nil)
	b.AddHookCall(second, MethodSaleHook, nil, types.SaleHooks)

	assert.Equal(t, first, b.Payments()[0].To)
	assert.Equal(t, second, b.Payments()[1].To)
	assert.False(t, b.Calls()[0].Contained)
	assert.True(t, b.Calls()[1].Contained)
	assert.Equal(t, types.SaleHooks, b.Calls()[1].HookClass)
}
