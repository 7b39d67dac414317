package classify

import (
	"fmt"
	"regexp"
	"strings"
)

// keywordSet matches any of its words case-insensitively on word boundaries.
// A set built from no words matches nothing.
type keywordSet struct {
	re *regexp.Regexp
}

func newKeywordSet(words []string) (keywordSet, error) {
	var quoted []string
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	if len(quoted) == 0 {
		return keywordSet{}, nil
	}

	re, err := regexp.Compile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
	if err != nil {
		return keywordSet{}, fmt.Errorf("compiling keywords: %w", err)
	}
	return keywordSet{re: re}, nil
}

// Match reports whether text contains any keyword.
func (k keywordSet) Match(text string) bool {
	return k.re != nil && k.re.MatchString(text)
}

// Find returns the leftmost keyword occurrence in text, or "".
func (k keywordSet) Find(text string) string {
	if k.re == nil {
		return ""
	}
	return k.re.FindString(text)
}
