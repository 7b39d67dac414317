package ledger

import "github.com/smsledger/smsledger/internal/model"

// FilterFunc reports whether a record should be kept.
type FilterFunc func(model.Transaction) bool

// CreditsOnly keeps Credited records.
func CreditsOnly(txn model.Transaction) bool {
	return txn.Type == model.Credited
}

// LegitimateOnly drops credits flagged as promotional.
func LegitimateOnly(txn model.Transaction) bool {
	return txn.LegitimateCredit
}

// Apply returns the records every filter keeps, in their original order.
func Apply(txns []model.Transaction, filters ...FilterFunc) []model.Transaction {
	if len(filters) == 0 {
		return txns
	}
	var out []model.Transaction
next:
	for _, txn := range txns {
		for _, f := range filters {
			if !f(txn) {
				continue next
			}
		}
		out = append(out, txn)
	}
	return out
}
