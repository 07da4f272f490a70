package textnorm

import (
	"regexp"
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// KeywordScanner reports whether free text contains any of a fixed set of
// keywords as whole words. An Aho-Corasick matcher prescreens the text in a
// single pass; a hit is then confirmed against word boundaries so that
// "debited" does not count as "debit".
type KeywordScanner struct {
	matcher *ahocorasick.Matcher
	words   []*regexp.Regexp
}

// NewKeywordScanner builds a scanner for the given keywords. Keywords are
// matched case-insensitively.
func NewKeywordScanner(keywords ...string) *KeywordScanner {
	patterns := make([][]byte, len(keywords))
	words := make([]*regexp.Regexp, len(keywords))
	for i, kw := range keywords {
		patterns[i] = []byte(strings.ToLower(kw))
		words[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
	}

	return &KeywordScanner{
		matcher: ahocorasick.NewMatcher(patterns),
		words:   words,
	}
}

// Matches reports whether any keyword occurs in text as a whole word.
func (s *KeywordScanner) Matches(text string) bool {
	if text == "" {
		return false
	}
	hits := s.matcher.Match([]byte(strings.ToLower(text)))
	for _, idx := range hits {
		if idx >= 0 && idx < len(s.words) && s.words[idx].MatchString(text) {
			return true
		}
	}
	return false
}

// Shared scanners for card-type classification in free text.
var (
	debitScanner  = NewKeywordScanner("debit")
	creditScanner = NewKeywordScanner("credit")
	cardScanner   = NewKeywordScanner("card")
)

// ContainsDebitWord reports whether the text mentions "debit" as a word.
func ContainsDebitWord(s string) bool { return debitScanner.Matches(s) }

// ContainsCreditWord reports whether the text mentions "credit" as a word.
func ContainsCreditWord(s string) bool { return creditScanner.Matches(s) }

// ContainsCardWord reports whether the text mentions "card" as a word. The
// plural does not count: free-text value scans only keep tokens that name a
// single card ("HDFC Regalia Credit Card"), not phrases about cards in
// general ("all credit cards").
func ContainsCardWord(s string) bool { return cardScanner.Matches(s) }
