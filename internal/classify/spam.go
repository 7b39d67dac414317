package classify

import (
	"fmt"

	"github.com/smsledger/smsledger/internal/model"
)

// SpamDetector flags promotional credit messages.
type SpamDetector struct {
	spam keywordSet
}

// NewSpamDetector compiles the promotional keyword set.
func NewSpamDetector(keywords []string) (*SpamDetector, error) {
	s, err := newKeywordSet(keywords)
	if err != nil {
		return nil, fmt.Errorf("spam keywords: %w", err)
	}
	return &SpamDetector{spam: s}, nil
}

// IsSpam reports whether text uses promotional language, regardless of type.
func (d *SpamDetector) IsSpam(text string) bool {
	return d.spam.Match(text)
}

// IsLegitimate is false only for a Credited message that reads as promotional.
// Keywords such as "cashback" classify a message as Credited and also mark it
// as spam.
func (d *SpamDetector) IsLegitimate(text string, typ model.TransactionType) bool {
	if typ != model.Credited {
		return true
	}
	return !d.IsSpam(text)
}
