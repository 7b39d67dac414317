package classify

import (
	"strings"
)

const bankAccountLabel = "Bank Account"

// SenderClassifier decides whether a sender ID belongs to a known bank and
// produces the final platform label.
type SenderClassifier struct {
	banks []string // lower-cased
}

// NewSenderClassifier builds a classifier over the given bank name fragments.
// Blank entries are ignored.
func NewSenderClassifier(banks []string) *SenderClassifier {
	c := &SenderClassifier{}
	for _, b := range banks {
		b = strings.ToLower(strings.TrimSpace(b))
		if b != "" {
			c.banks = append(c.banks, b)
		}
	}
	return c
}

// IsBank reports whether any registry entry occurs in sender, ignoring case.
func (c *SenderClassifier) IsBank(sender string) bool {
	s := strings.ToLower(sender)
	for _, b := range c.banks {
		if strings.Contains(s, b) {
			return true
		}
	}
	return false
}

// Classify returns the bank flag and the platform label that replaces the
// extracted one. Bank senders keep the extracted platform as a prefix of
// "Bank Account"; other senders are labelled with their first token.
func (c *SenderClassifier) Classify(sender, platform string) (isBank bool, label string) {
	if c.IsBank(sender) {
		if platform == "" {
			return true, bankAccountLabel
		}
		return true, platform + " " + bankAccountLabel
	}

	fields := strings.Fields(sender)
	if len(fields) == 0 {
		return false, ""
	}
	return false, fields[0]
}
