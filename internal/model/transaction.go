package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a message by the direction of money it reports.
type TransactionType int

const (
	Unclassified TransactionType = iota
	Debited
	Credited
)

func (t TransactionType) String() string {
	switch t {
	case Debited:
		return "Debited"
	case Credited:
		return "Credited"
	default:
		return "Unclassified"
	}
}

// ParseTransactionType is the inverse of String. Unknown labels map to Unclassified.
func ParseTransactionType(s string) TransactionType {
	switch s {
	case "Debited":
		return Debited
	case "Credited":
		return Credited
	default:
		return Unclassified
	}
}

// Transaction is one row of the output ledger.
type Transaction struct {
	Text          string
	SenderAddress string
	Type          TransactionType
	Platform      string // "" when none
	PaymentMethod string // "" when none

	Amount   decimal.Decimal
	Debited  decimal.Decimal // zero unless Type == Debited
	Credited decimal.Decimal // zero unless Type == Credited

	Day   int
	Month int
	Year  int
	Time  string // HH:MM:SS

	LegitimateCredit bool
	SenderIsBank     bool
}

// Total returns debited + credited, which equals Amount for a valid record.
func (t Transaction) Total() decimal.Decimal {
	return t.Debited.Add(t.Credited)
}

// YearMonth returns the record's period as "YYYY-MM".
func (t Transaction) YearMonth() string {
	return fmt.Sprintf("%04d-%02d", t.Year, t.Month)
}
