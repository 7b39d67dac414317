package classify

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountPattern matches "₹" or "Rs"/"Rs." followed by at most one space and
// a numeral with at most one separator. "Rs 1,234.50" therefore yields 1234.
var amountPattern = regexp.MustCompile(`(?:₹|Rs\.?)\s?(\d+[.,]?\d*)`)

// AmountExtractor finds the first currency-marked amount in a message.
type AmountExtractor struct {
	min decimal.Decimal
}

// NewAmountExtractor returns an extractor that rejects values <= min.
func NewAmountExtractor(min decimal.Decimal) *AmountExtractor {
	return &AmountExtractor{min: min}
}

// Extract returns the leftmost amount in text. Only the first currency match
// is considered; if it is implausible the message has no amount.
func (e *AmountExtractor) Extract(text string) (decimal.Decimal, bool) {
	m := amountPattern.FindStringSubmatch(text)
	if m == nil {
		return decimal.Zero, false
	}

	raw := strings.ReplaceAll(m[1], ",", "")
	raw = strings.TrimSuffix(raw, ".")
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	if amount.LessThanOrEqual(e.min) {
		return decimal.Zero, false
	}
	return amount, true
}
