// Package classify turns raw SMS text into ledger transactions using
// keyword and pattern rules.
package classify

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// EntityVariant selects which phrase shapes the platform pattern accepts.
type EntityVariant string

const (
	VariantStandard EntityVariant = "standard"
	VariantTransfer EntityVariant = "transfer"
	VariantExtended EntityVariant = "extended"
)

// Rules is the immutable rule data a Pipeline is built from.
type Rules struct {
	DebitKeywords  []string
	CreditKeywords []string
	SpamKeywords   []string
	Banks          []string
	Variant        EntityVariant
	MinAmount      decimal.Decimal // amounts <= MinAmount are rejected
}

// DefaultRules returns the built-in keyword sets and bank registry.
func DefaultRules() Rules {
	return Rules{
		DebitKeywords:  DefaultDebitKeywords(),
		CreditKeywords: DefaultCreditKeywords(),
		SpamKeywords:   DefaultSpamKeywords(),
		Banks:          DefaultBanks(),
		Variant:        VariantExtended,
		MinAmount:      decimal.NewFromInt(1),
	}
}

// DefaultDebitKeywords returns the words that mark money leaving the account.
func DefaultDebitKeywords() []string {
	return []string{
		"paid", "charged", "debited", "processed", "withdrawn", "deducted", "spent",
		"transferred", "EMI", "settled", "fee", "disbursed", "purchase",
	}
}

// DefaultCreditKeywords returns the words that mark money arriving.
func DefaultCreditKeywords() []string {
	return []string{
		"credited", "received", "refunded", "reversed", "deposited", "added", "reimbursed",
		"awarded", "bonus", "loan approved", "cashback", "interest earned", "payment received", "gift",
	}
}

// DefaultSpamKeywords returns promotional phrases that flag a credit as spam.
func DefaultSpamKeywords() []string {
	return []string{
		"offer", "avail", "bonus", "gift", "win", "reward", "prize", "lucky", "exclusive",
		"limited time", "contest", "promotion", "claim", "free", "discount", "unsecured loan",
		"reward points", "cashback", "cash reward", "surprise gift", "redeem", "voucher",
		"free gift", "congratulations", "instant credit", "loan sanctioned", "apply now", "eligibility",
	}
}

// DefaultBanks returns the bank names matched against sender addresses.
func DefaultBanks() []string {
	return []string{
		"HDFC", "ICICI", "SBI", "Axis Bank", "PNB", "Bank of India", "Kotak Mahindra",
		"IDFC Bank", "Yes Bank", "IndusInd Bank", "RBL Bank",
	}
}

// phrases returns the prepositions and verbs that bracket a platform name.
func (v EntityVariant) phrases() (prepositions, verbs []string, err error) {
	switch v {
	case VariantStandard:
		return []string{"on"}, []string{"charged", "paid", "via"}, nil
	case VariantTransfer:
		return []string{"on"}, []string{"charged", "paid", "via", "transfer"}, nil
	case VariantExtended, "":
		return []string{"from", "on"}, []string{"credited", "charged", "paid", "via"}, nil
	default:
		return nil, nil, fmt.Errorf("unknown entity variant %q", string(v))
	}
}
