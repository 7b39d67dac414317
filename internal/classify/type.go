package classify

import (
	"fmt"

	"github.com/smsledger/smsledger/internal/model"
)

// TypeClassifier labels a message Debited, Credited or Unclassified.
//
// The debit set is checked first and wins outright, so a text carrying both
// a debit and a credit keyword is Debited.
type TypeClassifier struct {
	debit  keywordSet
	credit keywordSet
}

// NewTypeClassifier compiles the debit and credit keyword sets.
func NewTypeClassifier(debit, credit []string) (*TypeClassifier, error) {
	d, err := newKeywordSet(debit)
	if err != nil {
		return nil, fmt.Errorf("debit keywords: %w", err)
	}
	c, err := newKeywordSet(credit)
	if err != nil {
		return nil, fmt.Errorf("credit keywords: %w", err)
	}
	return &TypeClassifier{debit: d, credit: c}, nil
}

// Classify returns the transaction type of text.
func (c *TypeClassifier) Classify(text string) model.TransactionType {
	if c.debit.Match(text) {
		return model.Debited
	}
	if c.credit.Match(text) {
		return model.Credited
	}
	return model.Unclassified
}

// Keyword returns the keyword that decided the classification, or "".
func (c *TypeClassifier) Keyword(text string) string {
	if kw := c.debit.Find(text); kw != "" {
		return kw
	}
	return c.credit.Find(text)
}
