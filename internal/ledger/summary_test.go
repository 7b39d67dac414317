package ledger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smsledger/smsledger/internal/model"
)

func TestApply(t *testing.T) {
	txns := []model.Transaction{
		debit("100", "Amazon"),
		credit("50", "PAYTM", true),
		credit("500", "SIMPL-PAY", false),
	}

	assert.Len(t, Apply(txns), 3)

	credits := Apply(txns, CreditsOnly)
	require.Len(t, credits, 2)
	assert.Equal(t, "PAYTM", credits[0].Platform)

	legit := Apply(txns, CreditsOnly, LegitimateOnly)
	require.Len(t, legit, 1)
	assert.Equal(t, "PAYTM", legit[0].Platform)

	assert.Len(t, Apply(txns, LegitimateOnly), 2)
}

func TestSummarize(t *testing.T) {
	march := debit("100", "Amazon")
	march2 := debit("40.50", "Amazon")
	feb := credit("50", "PAYTM", true)
	spam := credit("500", "PAYTM", false)
	noPlatform := debit("10", "X")
	noPlatform.Platform = ""

	s := Summarize([]model.Transaction{march, feb, spam, march2, noPlatform})

	assert.Equal(t, 5, s.Overall.Count)
	assert.Equal(t, "150.50", s.Overall.Debited.StringFixed(2))
	assert.Equal(t, "50.00", s.Overall.Credited.StringFixed(2))
	assert.Equal(t, "500.00", s.Overall.SpamCredits.StringFixed(2))
	assert.Equal(t, "-100.50", s.Overall.Net().StringFixed(2))

	require.Len(t, s.ByMonth, 2)
	assert.Equal(t, "2024-02", s.ByMonth[0].Key)
	assert.Equal(t, 2, s.ByMonth[0].Count)
	assert.Equal(t, "2024-03", s.ByMonth[1].Key)
	assert.Equal(t, "150.50", s.ByMonth[1].Debited.StringFixed(2))

	require.Len(t, s.ByPlatform, 3)
	assert.Equal(t, "Amazon Bank Account", s.ByPlatform[0].Key)
	assert.Equal(t, "(none)", s.ByPlatform[1].Key)
	assert.Equal(t, "PAYTM", s.ByPlatform[2].Key)
}

func TestWriteSummary(t *testing.T) {
	s := Summarize([]model.Transaction{debit("100", "Amazon"), credit("50", "PAYTM", true)})

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, s))
	out := buf.String()
	assert.Contains(t, out, "2024-03")
	assert.Contains(t, out, "Amazon Bank Account")
	assert.Contains(t, out, "100.00")
	assert.Contains(t, out, "-50.00")
}
