// Package textnorm provides text canonicalization for card-name matching.
// It handles comparison keys (Normalize), display-form brand spelling
// (CanonicalizeBrand), multi-delimiter list cells (SplitList) and the
// base-name/variant decomposition of card names.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// Splits a single cell that may hold several card names. The word "and"
	// only counts on its own, never inside a name ("Standard Chartered").
	listSepRegex = regexp.MustCompile(`(?i)[,/;|\n\r\t` + "•" + `]|\band\b`)

	// Trailing parenthesized variant qualifier: "HDFC Regalia (Visa Signature)".
	trailingParenRegex = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
	variantRegex       = regexp.MustCompile(`\(([^)]+)\)\s*$`)

	collapseSpaceRegex = regexp.MustCompile(`\s+`)

	accentFold = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// brandReplacements maps case-insensitive whole-word misspellings and
// mixed-case bank abbreviations to their canonical display forms.
var brandReplacements = []struct {
	pattern   *regexp.Regexp
	canonical string
}{
	{regexp.MustCompile(`(?i)\bMakemytrip\b`), "MakeMyTrip"},
	{regexp.MustCompile(`(?i)\bIcici\b`), "ICICI"},
	{regexp.MustCompile(`(?i)\bHdfc\b`), "HDFC"},
	{regexp.MustCompile(`(?i)\bSbi\b`), "SBI"},
	{regexp.MustCompile(`(?i)\bIdfc\b`), "IDFC"},
	{regexp.MustCompile(`(?i)\bPnb\b`), "PNB"},
	{regexp.MustCompile(`(?i)\bRbl\b`), "RBL"},
	{regexp.MustCompile(`(?i)\bYes\b`), "YES"},
}

// Normalize produces the comparison key for a piece of card/brand text:
// lower-case, accents folded, every non word-character replaced by a space,
// whitespace collapsed, trimmed. It is total and idempotent; comparison keys
// are never shown to the user.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ToLower(s)
	if folded, _, err := transform.String(accentFold, s); err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	return strings.TrimSpace(collapseSpaceRegex.ReplaceAllString(b.String(), " "))
}

// CanonicalizeBrand rewrites known brand misspellings to their canonical
// spelling. It runs on display strings before Normalize, never after.
func CanonicalizeBrand(s string) string {
	for _, br := range brandReplacements {
		s = br.pattern.ReplaceAllString(s, br.canonical)
	}
	return s
}

// BaseName strips a single trailing parenthesized variant qualifier:
// "HDFC Regalia (Visa Signature)" -> "HDFC Regalia". Parentheses anywhere
// else in the name are left alone.
func BaseName(name string) string {
	if name == "" {
		return ""
	}
	return strings.TrimSpace(trailingParenRegex.ReplaceAllString(name, ""))
}

// Variant returns the contents of a trailing parenthesized qualifier, or ""
// when the name carries none.
func Variant(name string) string {
	if name == "" {
		return ""
	}
	m := variantRegex.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// SplitList splits a cell value that may encode multiple card names across a
// broad set of delimiters (comma, slash, semicolon, pipe, newline, carriage
// return, tab, bullet, the standalone word "and"). Pieces are trimmed and
// empties dropped; the result is never nil-prone to misuse on empty input.
func SplitList(val string) []string {
	if strings.TrimSpace(val) == "" {
		return nil
	}

	parts := listSepRegex.Split(val, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
