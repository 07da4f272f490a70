package source

import (
	"regexp"
	"sort"
	"strings"

	"github.com/FACorreiaa/travel-card-offers/pkg/textnorm"
)

// Row is one record of a source table: an opaque mapping from column name to
// string value. Rows are read-only views into a decoded source and are never
// mutated. Helpers that scan several columns walk headers in sorted order so
// resolution never depends on map iteration.
type Row map[string]string

// Field is a header/value pair surviving a header predicate.
type Field struct {
	Key   string
	Value string
}

var (
	wordCardsRegex   = regexp.MustCompile(`(?i)\bcards?\b`)
	wordDebitRegex   = regexp.MustCompile(`(?i)\bdebit\b`)
	wordCreditRegex  = regexp.MustCompile(`(?i)\bcredit\b`)
	wordEligibleRe   = regexp.MustCompile(`(?i)\beligible\b`)
	typeHintHeaderRe = regexp.MustCompile(`(?i)\btype\b|\bcard\s*type\b|\bcategory\b|\bsegment\b`)
)

// FirstField returns the value of the first alias present on the row with a
// non-empty value.
func (r Row) FirstField(aliases []string) (string, bool) {
	for _, k := range aliases {
		if v, ok := r[k]; ok && strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", false
}

// FirstFieldContaining returns the value of the first column, in sorted
// header order, whose header name contains substr, case-insensitively.
func (r Row) FirstFieldContaining(substr string) (string, bool) {
	target := strings.ToLower(substr)
	for _, k := range r.sortedKeys() {
		if strings.Contains(strings.ToLower(k), target) && strings.TrimSpace(r[k]) != "" {
			return r[k], true
		}
	}
	return "", false
}

// FieldsWhere returns every non-empty column whose header satisfies pred, in
// sorted header order.
func (r Row) FieldsWhere(pred func(key string) bool) []Field {
	var out []Field
	for _, k := range r.sortedKeys() {
		if v := r[k]; pred(k) && strings.TrimSpace(v) != "" {
			out = append(out, Field{Key: k, Value: v})
		}
	}
	return out
}

// TypeHint inspects row-level type columns ("Type", "Card Type", "Category",
// "Segment") and returns the card kind they indicate, or "" when the row
// carries no usable hint.
func (r Row) TypeHint() CardKind {
	for _, k := range r.sortedKeys() {
		if !typeHintHeaderRe.MatchString(k) {
			continue
		}
		switch {
		case wordDebitRegex.MatchString(r[k]):
			return KindDebit
		case wordCreditRegex.MatchString(r[k]):
			return KindCredit
		}
	}
	return ""
}

// Values returns every non-empty cell value of the row in sorted header
// order, for free-text fallback scans.
func (r Row) Values() []string {
	out := make([]string, 0, len(r))
	for _, k := range r.sortedKeys() {
		if v := r[k]; strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func (r Row) sortedKeys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HeaderLooksDebit reports whether a header names an explicit debit-card list
// ("Eligible Debit Cards", "Applicable Debit Cards", ...).
func HeaderLooksDebit(key string) bool {
	return wordDebitRegex.MatchString(key) && wordCardsRegex.MatchString(key)
}

// HeaderLooksCredit reports whether a header names an explicit credit-card list.
func HeaderLooksCredit(key string) bool {
	return wordCreditRegex.MatchString(key) && wordCardsRegex.MatchString(key)
}

// HeaderLooksEligibleCards reports whether a header is a generic eligibility
// list with no credit/debit qualifier of its own.
func HeaderLooksEligibleCards(key string) bool {
	return wordEligibleRe.MatchString(key) && wordCardsRegex.MatchString(key)
}

// HeaderLooksAnyCards reports whether a header mentions cards at all.
func HeaderLooksAnyCards(key string) bool {
	return wordCardsRegex.MatchString(key)
}

// ValueLooksDebit reports whether a single card token classifies itself as
// debit by its own wording.
func ValueLooksDebit(s string) bool { return textnorm.ContainsDebitWord(s) }

// ValueLooksCredit reports whether a single card token classifies itself as
// credit by its own wording.
func ValueLooksCredit(s string) bool { return textnorm.ContainsCreditWord(s) }
