package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/smsledger/smsledger/internal/model"
)

// ValidationError describes a record that breaks a ledger invariant.
type ValidationError struct {
	Index       int // position in the validated slice
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("record %d: %s", e.Index, e.Description)
}

// ValidateRecords checks every record's amount columns and date fields.
// minAmount is the exclusive lower bound for amounts.
func ValidateRecords(txns []model.Transaction, minAmount decimal.Decimal) []ValidationError {
	var errs []ValidationError
	add := func(i int, format string, args ...any) {
		errs = append(errs, ValidationError{Index: i, Description: fmt.Sprintf(format, args...)})
	}

	for i, txn := range txns {
		if !txn.Amount.GreaterThan(minAmount) {
			add(i, "amount %s not above %s", txn.Amount, minAmount)
		}

		switch txn.Type {
		case model.Debited:
			if !txn.Debited.Equal(txn.Amount) || !txn.Credited.IsZero() {
				add(i, "debit record must carry amount %s on the debit side only", txn.Amount)
			}
		case model.Credited:
			if !txn.Credited.Equal(txn.Amount) || !txn.Debited.IsZero() {
				add(i, "credit record must carry amount %s on the credit side only", txn.Amount)
			}
		default:
			add(i, "unclassified record in ledger")
		}

		if !txn.Total().Equal(txn.Amount) {
			add(i, "total %s != amount %s", txn.Total(), txn.Amount)
		}

		if txn.Month < 1 || txn.Month > 12 {
			add(i, "month %d out of range", txn.Month)
		}
		if txn.Day < 1 || txn.Day > 31 {
			add(i, "day %d out of range", txn.Day)
		}
	}
	return errs
}
