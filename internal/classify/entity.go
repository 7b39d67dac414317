package classify

import (
	"fmt"
	"regexp"
	"strings"
)

// methodPattern captures the words after "via" up to the end of the line.
var methodPattern = regexp.MustCompile(`(?i)via\s([\w \t]+)`)

// EntityExtractor pulls the counterparty platform and payment method out of
// a message. Both are best effort and independent of each other.
type EntityExtractor struct {
	platform *regexp.Regexp
}

// NewEntityExtractor builds the platform pattern for variant, e.g. for the
// extended variant: (from|on) <words> (credited|charged|paid|via).
func NewEntityExtractor(variant EntityVariant) (*EntityExtractor, error) {
	preps, verbs, err := variant.phrases()
	if err != nil {
		return nil, err
	}
	expr := fmt.Sprintf(`(?i)(?:%s)\s([\w\s]+?)\s(?:%s)`, strings.Join(preps, "|"), strings.Join(verbs, "|"))
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling platform pattern: %w", err)
	}
	return &EntityExtractor{platform: re}, nil
}

// Extract returns the platform and payment method found in text; "" means
// the pattern did not match.
func (e *EntityExtractor) Extract(text string) (platform, method string) {
	return e.Platform(text), Method(text)
}

// Platform returns the first "<preposition> <words> <verb>" phrase's words.
func (e *EntityExtractor) Platform(text string) string {
	m := e.platform.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Method returns the words following the first "via".
func Method(text string) string {
	m := methodPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
