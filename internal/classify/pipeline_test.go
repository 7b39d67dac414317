package classify

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smsledger/smsledger/internal/model"
)

const testReceivedAt = "Mon, 04 Mar 2024 14:32:10 IST"

func newDefaultPipeline(t *testing.T, opts ...Option) *Pipeline {
	t.Helper()
	p, err := New(DefaultRules(), opts...)
	require.NoError(t, err)
	return p
}

func sampleMessages() []model.Message {
	return []model.Message{
		{Text: "Rs.499 paid on Amazon via HDFC Bank Card", SenderAddress: "HDFCBK", ReceivedAt: testReceivedAt, Row: 2},
		{Text: "Your OTP is 4532", SenderAddress: "VM-OTPSMS", ReceivedAt: testReceivedAt, Row: 3},
		{Text: "Rs. 0.50 credited", SenderAddress: "VM-PAYTM", ReceivedAt: testReceivedAt, Row: 4},
		{Text: "₹500 cashback credited to your account", SenderAddress: "SIMPL-PAY 12345", ReceivedAt: "Tue, 05 Mar 2024 09:05:00 IST", Row: 5},
	}
}

func TestPipeline_Classify(t *testing.T) {
	p := newDefaultPipeline(t)

	r, outcome := p.Classify(model.Message{Text: "Rs.499 paid on Amazon via HDFC Bank Card", SenderAddress: "HDFCBK"})
	require.Equal(t, OutcomeKept, outcome)
	assert.Equal(t, model.Debited, r.Type)
	assert.Equal(t, "499", r.Amount.String())
	assert.Equal(t, "Amazon Bank Account", r.Platform)
	assert.Equal(t, "HDFC Bank Card", r.PaymentMethod)
	assert.True(t, r.SenderIsBank)
	assert.True(t, r.LegitimateCredit)
}

func TestPipeline_ClassifyOutcomes(t *testing.T) {
	p := newDefaultPipeline(t)

	_, outcome := p.Classify(model.Message{Text: "Your OTP is 4532"})
	assert.Equal(t, OutcomeUnclassified, outcome)

	r, outcome := p.Classify(model.Message{Text: "Rs. 0.50 credited"})
	assert.Equal(t, OutcomeNoAmount, outcome)
	assert.Equal(t, model.Credited, r.Type)

	_, outcome = p.Classify(model.Message{})
	assert.Equal(t, OutcomeUnclassified, outcome)
}

func TestPipeline_NonBankSenderOverridesPlatform(t *testing.T) {
	p := newDefaultPipeline(t)

	r, outcome := p.Classify(model.Message{Text: "Rs 150 charged on Zomato charged via Simpl Pay", SenderAddress: "SIMPL-PAY 12345"})
	require.Equal(t, OutcomeKept, outcome)
	assert.False(t, r.SenderIsBank)
	assert.Equal(t, "SIMPL-PAY", r.Platform)
	assert.Equal(t, "Simpl Pay", r.PaymentMethod)
}

func TestPipeline_Run(t *testing.T) {
	p := newDefaultPipeline(t)

	batch, err := p.Run(sampleMessages())
	require.NoError(t, err)

	assert.Equal(t, Stats{Read: 4, Kept: 2, Unclassified: 1, NoAmount: 1}, batch.Stats)
	require.Len(t, batch.Records, 2)

	first := batch.Records[0]
	assert.Equal(t, model.Debited, first.Type)
	assert.Equal(t, "Amazon Bank Account", first.Platform)
	assert.Equal(t, "499.00", first.Debited.StringFixed(2))
	assert.True(t, first.Credited.IsZero())
	assert.Equal(t, 4, first.Day)
	assert.Equal(t, 3, first.Month)
	assert.Equal(t, 2024, first.Year)
	assert.Equal(t, "14:32:10", first.Time)
	assert.True(t, first.SenderIsBank)

	second := batch.Records[1]
	assert.Equal(t, model.Credited, second.Type)
	assert.False(t, second.LegitimateCredit)
	assert.Equal(t, "SIMPL-PAY", second.Platform)
	assert.Equal(t, "", second.PaymentMethod)
	assert.True(t, second.Debited.IsZero())
	assert.Equal(t, "500", second.Credited.String())
	assert.Equal(t, 5, second.Day)
	assert.Equal(t, "09:05:00", second.Time)
	assert.False(t, second.SenderIsBank)
}

func TestPipeline_RunInvariants(t *testing.T) {
	p := newDefaultPipeline(t)

	msgs := append(sampleMessages(),
		model.Message{Text: "You paid and later got credited ₹50 via GPay", SenderAddress: "GPAY", ReceivedAt: testReceivedAt},
		model.Message{Text: "Rs 1,234.50 debited from ICICI a/c", SenderAddress: "AX-ICICIB", ReceivedAt: testReceivedAt},
		model.Message{Text: "Salary Rs 52000 credited", SenderAddress: "JD-KOTAK MAHINDRA", ReceivedAt: testReceivedAt},
	)
	batch, err := p.Run(msgs)
	require.NoError(t, err)
	require.Len(t, batch.Records, 5)

	one := decimal.NewFromInt(1)
	for _, r := range batch.Records {
		assert.True(t, r.Amount.GreaterThan(one), "amount %s", r.Amount)
		assert.True(t, r.Total().Equal(r.Amount), "total %s != amount %s", r.Total(), r.Amount)
		switch r.Type {
		case model.Debited:
			assert.True(t, r.Debited.Equal(r.Amount))
			assert.True(t, r.Credited.IsZero())
			assert.True(t, r.LegitimateCredit)
		case model.Credited:
			assert.True(t, r.Credited.Equal(r.Amount))
			assert.True(t, r.Debited.IsZero())
		default:
			t.Fatalf("unexpected type %s in output", r.Type)
		}
	}

	assert.Equal(t, model.Debited, batch.Records[2].Type)
	assert.Equal(t, "GPAY", batch.Records[2].Platform)
}

func TestPipeline_RunIsDeterministic(t *testing.T) {
	p := newDefaultPipeline(t)

	a, err := p.Run(sampleMessages())
	require.NoError(t, err)
	b, err := p.Run(sampleMessages())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPipeline_RunBadTimestampFails(t *testing.T) {
	p := newDefaultPipeline(t)

	msgs := []model.Message{
		{Text: "Your OTP is 4532", ReceivedAt: "garbage", Row: 2},
		{Text: "Rs 300 paid", ReceivedAt: "2024-03-04", Row: 3},
	}
	_, err := p.Run(msgs)
	require.Error(t, err)
	assert.True(t, IsTimestampError(err))

	var tsErr *TimestampError
	require.True(t, errors.As(err, &tsErr))
	assert.Equal(t, 3, tsErr.Row)
	assert.Equal(t, "2024-03-04", tsErr.Value)
}

func TestPipeline_RunBadTimestampSkipped(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	p := newDefaultPipeline(t, WithTimestampPolicy(PolicySkip), WithLogger(logger))

	msgs := []model.Message{
		{Text: "Rs 300 paid", ReceivedAt: "2024-03-04", Row: 2},
		{Text: "Rs 400 paid", ReceivedAt: testReceivedAt, Row: 3},
	}
	batch, err := p.Run(msgs)
	require.NoError(t, err)
	assert.Equal(t, Stats{Read: 2, Kept: 1, BadTimestamp: 1}, batch.Stats)
	require.Len(t, batch.Records, 1)
	assert.Equal(t, "400", batch.Records[0].Amount.String())
	assert.Contains(t, buf.String(), "skipped message")
}

func TestPipeline_DebugLogsDrops(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)
	p := newDefaultPipeline(t, WithLogger(logger))

	_, err := p.Run(sampleMessages())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "unclassified")
	assert.Contains(t, buf.String(), "no_amount")
}

func TestNew_InvalidVariant(t *testing.T) {
	rules := DefaultRules()
	rules.Variant = "bogus"
	_, err := New(rules)
	assert.Error(t, err)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "kept", OutcomeKept.String())
	assert.Equal(t, "outcome(9)", Outcome(9).String())
}
