package offers

import (
	"strings"

	"github.com/FACorreiaa/travel-card-offers/internal/domain/source"
	"github.com/FACorreiaa/travel-card-offers/pkg/textnorm"
)

// keyDelimiter separates identity-key fields. Normalization strips every "|"
// from text and URLs, so the delimiter cannot occur inside a field.
const keyDelimiter = "||"

// IdentityKey computes the content-based identity of an offer row: two rows
// with equal keys describe the same real-world offer regardless of source.
func IdentityKey(row source.Row, aliases source.FieldAliases) string {
	title, _ := row.FirstField(aliases.Title)
	if title == "" {
		title = row["Website"]
	}
	desc, _ := row.FirstField(aliases.Desc)
	image, _ := row.FirstField(aliases.Image)
	link, _ := row.FirstField(aliases.Link)

	return strings.Join([]string{
		textnorm.Normalize(title),
		textnorm.Normalize(desc),
		normalizeURL(image),
		normalizeURL(link),
	}, keyDelimiter)
}

// normalizeURL reduces a URL to its comparable form: scheme and leading
// "www." stripped, trailing slash dropped, lower-cased.
func normalizeURL(u string) string {
	s := strings.ToLower(strings.TrimSpace(u))
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	s = strings.TrimSuffix(s, "/")
	// Keep the identity-key delimiter impossible inside a field.
	return strings.ReplaceAll(s, "|", "")
}

// dedupe keeps each wrapper whose identity key has not been seen yet, adding
// kept keys to seen. Sharing one seen set across sources in priority order
// gives earlier sources canonical ownership of offers that repeat verbatim.
func dedupe(wrappers []Wrapper, aliases source.FieldAliases, seen map[string]struct{}) []Wrapper {
	out := make([]Wrapper, 0, len(wrappers))
	for _, w := range wrappers {
		k := IdentityKey(w.Offer, aliases)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, w)
	}
	return out
}
