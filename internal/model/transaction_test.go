package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionTypeString(t *testing.T) {
	tests := []struct {
		typ  TransactionType
		want string
	}{
		{Debited, "Debited"},
		{Credited, "Credited"},
		{Unclassified, "Unclassified"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.typ.String())
		assert.Equal(t, tt.typ, ParseTransactionType(tt.want))
	}
	assert.Equal(t, Unclassified, ParseTransactionType("Paid/Debited"))
}

func TestTransactionTotal(t *testing.T) {
	txn := Transaction{
		Type:     Debited,
		Amount:   decimal.RequireFromString("250.75"),
		Debited:  decimal.RequireFromString("250.75"),
		Credited: decimal.Zero,
	}
	assert.True(t, txn.Total().Equal(txn.Amount))
}

func TestTransactionYearMonth(t *testing.T) {
	txn := Transaction{Year: 2024, Month: 3}
	assert.Equal(t, "2024-03", txn.YearMonth())
}
