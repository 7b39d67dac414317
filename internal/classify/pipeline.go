package classify

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/smsledger/smsledger/internal/model"
)

// Outcome says whether a message survived the type and amount checks.
type Outcome int

const (
	OutcomeKept Outcome = iota
	OutcomeUnclassified
	OutcomeNoAmount
)

func (o Outcome) String() string {
	switch o {
	case OutcomeKept:
		return "kept"
	case OutcomeUnclassified:
		return "unclassified"
	case OutcomeNoAmount:
		return "no_amount"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result holds the fields derived from one message's text and sender.
type Result struct {
	Type             model.TransactionType
	Amount           decimal.Decimal
	Platform         string
	PaymentMethod    string
	LegitimateCredit bool
	SenderIsBank     bool
}

// Stats counts what happened to each message of a batch.
type Stats struct {
	Read         int
	Kept         int
	Unclassified int
	NoAmount     int
	BadTimestamp int
}

// Batch is the output of Run: records in input order plus drop counts.
type Batch struct {
	Records []model.Transaction
	Stats   Stats
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for per-record debug output.
func WithLogger(l *log.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithTimestampPolicy sets how Run treats unparsable timestamps.
func WithTimestampPolicy(policy TimestampPolicy) Option {
	return func(p *Pipeline) { p.policy = policy }
}

// Pipeline runs the classification stages over messages. It holds only
// compiled, read-only rule data and may be shared between goroutines.
type Pipeline struct {
	types    *TypeClassifier
	amounts  *AmountExtractor
	entities *EntityExtractor
	spam     *SpamDetector
	senders  *SenderClassifier

	policy TimestampPolicy
	logger *log.Logger
}

// New compiles rules into a Pipeline.
func New(rules Rules, opts ...Option) (*Pipeline, error) {
	types, err := NewTypeClassifier(rules.DebitKeywords, rules.CreditKeywords)
	if err != nil {
		return nil, err
	}
	entities, err := NewEntityExtractor(rules.Variant)
	if err != nil {
		return nil, err
	}
	spam, err := NewSpamDetector(rules.SpamKeywords)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		types:    types,
		amounts:  NewAmountExtractor(rules.MinAmount),
		entities: entities,
		spam:     spam,
		senders:  NewSenderClassifier(rules.Banks),
		policy:   PolicyFail,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Classify runs every stage for one message. When the outcome is not
// OutcomeKept the later stages are skipped and Result is only partly set.
func (p *Pipeline) Classify(msg model.Message) (Result, Outcome) {
	var r Result

	r.Type = p.types.Classify(msg.Text)
	if r.Type == model.Unclassified {
		return r, OutcomeUnclassified
	}

	amount, ok := p.amounts.Extract(msg.Text)
	if !ok {
		return r, OutcomeNoAmount
	}
	r.Amount = amount

	platform, method := p.entities.Extract(msg.Text)
	r.PaymentMethod = method
	r.LegitimateCredit = p.spam.IsLegitimate(msg.Text, r.Type)
	r.SenderIsBank, r.Platform = p.senders.Classify(msg.SenderAddress, platform)

	return r, OutcomeKept
}

// Run classifies msgs and assembles ledger records. It fails only on a bad
// timestamp under PolicyFail, returning a *TimestampError.
func (p *Pipeline) Run(msgs []model.Message) (Batch, error) {
	var b Batch
	b.Stats.Read = len(msgs)

	for _, msg := range msgs {
		r, outcome := p.Classify(msg)
		switch outcome {
		case OutcomeUnclassified:
			b.Stats.Unclassified++
			p.logger.Debug("dropped message", "row", msg.Row, "reason", outcome)
			continue
		case OutcomeNoAmount:
			b.Stats.NoAmount++
			p.logger.Debug("dropped message", "row", msg.Row, "reason", outcome, "type", r.Type, "keyword", p.types.Keyword(msg.Text))
			continue
		}

		ts, err := ParseTimestamp(msg.ReceivedAt)
		if err != nil {
			tsErr := &TimestampError{Row: msg.Row, Value: msg.ReceivedAt, Err: err}
			if p.policy != PolicySkip {
				return Batch{}, tsErr
			}
			b.Stats.BadTimestamp++
			p.logger.Warn("skipped message", "row", msg.Row, "error", tsErr)
			continue
		}

		b.Records = append(b.Records, newTransaction(msg, r, ts))
		b.Stats.Kept++
	}

	return b, nil
}

func newTransaction(msg model.Message, r Result, ts Timestamp) model.Transaction {
	txn := model.Transaction{
		Text:             msg.Text,
		SenderAddress:    msg.SenderAddress,
		Type:             r.Type,
		Platform:         r.Platform,
		PaymentMethod:    r.PaymentMethod,
		Amount:           r.Amount,
		Debited:          decimal.Zero,
		Credited:         decimal.Zero,
		Day:              ts.Day,
		Month:            ts.Month,
		Year:             ts.Year,
		Time:             ts.Time,
		LegitimateCredit: r.LegitimateCredit,
		SenderIsBank:     r.SenderIsBank,
	}
	if r.Type == model.Debited {
		txn.Debited = r.Amount
	} else {
		txn.Credited = r.Amount
	}
	return txn
}

// IsTimestampError reports whether err came from an unparsable timestamp.
func IsTimestampError(err error) bool {
	var tsErr *TimestampError
	return errors.As(err, &tsErr)
}
