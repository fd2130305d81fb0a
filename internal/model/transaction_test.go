package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionType_QuantityDelta(t *testing.T) {
	cases := []struct {
		txType   TransactionType
		quantity int
		want     int
	}{
		{TxPurchase, 4, 4},
		{TxSale, 4, -4},
		{TxReturn, 4, 4},
		{TxAdjustment, 4, 0},
		{TxAdjustment, -7, 0},
		{TxSale, 0, 0},
	}

	for _, tc := range cases {
		got := tc.txType.QuantityDelta(tc.quantity)
		assert.Equal(t, tc.want, got, "%s with quantity %d", tc.txType, tc.quantity)
	}
}

func TestProduct_IsLowStock(t *testing.T) {
	cases := []struct {
		quantity  int
		threshold int
		want      bool
	}{
		{5, 10, true},
		{10, 10, true},
		{11, 10, false},
		{-3, 0, true},
		{0, 0, true},
	}

	for _, tc := range cases {
		p := Product{Quantity: tc.quantity, LowStockThreshold: tc.threshold}
		assert.Equal(t, tc.want, p.IsLowStock(), "quantity=%d threshold=%d", tc.quantity, tc.threshold)
	}
}
