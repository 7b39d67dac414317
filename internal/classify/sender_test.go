package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSenderClassifier_Classify(t *testing.T) {
	c := NewSenderClassifier(DefaultBanks())

	tests := []struct {
		sender   string
		platform string
		isBank   bool
		label    string
	}{
		{"HDFCBK", "Amazon", true, "Amazon Bank Account"},
		{"AD-HDFCBK", "", true, "Bank Account"},
		{"VM-AXIS BANK", "Flipkart", true, "Flipkart Bank Account"},
		{"JD-SBIINB", "", true, "Bank Account"},
		{"icicib", "", true, "Bank Account"},
		{"SIMPL-PAY 12345", "Zomato", false, "SIMPL-PAY"},
		{"  PAYTM  wallet", "", false, "PAYTM"},
		{"", "Zomato", false, ""},
	}
	for _, tt := range tests {
		isBank, label := c.Classify(tt.sender, tt.platform)
		assert.Equal(t, tt.isBank, isBank, "isBank(%q)", tt.sender)
		assert.Equal(t, tt.label, label, "label(%q, %q)", tt.sender, tt.platform)
	}
}

func TestSenderClassifier_IgnoresBlankEntries(t *testing.T) {
	c := NewSenderClassifier([]string{"", "  "})
	assert.False(t, c.IsBank("ANYSENDER"))
}
