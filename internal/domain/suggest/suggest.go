// Package suggest ranks catalog entries against a live free-text query. The
// ranking tolerates typos, partial words and word-order variation while
// keeping exact substring matches strictly on top.
package suggest

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/FACorreiaa/travel-card-offers/internal/domain/catalog"
	"github.com/FACorreiaa/travel-card-offers/pkg/textnorm"
)

const (
	// ScoreCertain marks a candidate whose normalized display contains the
	// normalized query as a substring. It is strictly greater than any
	// similarity-based score, which lives in [0,1].
	ScoreCertain = 100.0

	// acceptThreshold is the minimum similarity score for non-substring
	// candidates to appear in suggestions.
	acceptThreshold = 0.3

	// MaxSuggestions caps each ranked group.
	MaxSuggestions = 50
)

var suggestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "card_offers_suggest_duration_seconds",
	Help:    "Latency of one suggestion ranking pass.",
	Buckets: prometheus.DefBuckets,
})

// Group is one block of ranked suggestions under a heading.
type Group struct {
	Label   string          `json:"label"`
	Entries []catalog.Entry `json:"entries"`
}

// Result is a full suggestion pass for one query. NoMatch is set only for a
// non-empty query that produced zero suggestions in both groups; an empty
// query yields a zero Result with NoMatch false.
type Result struct {
	Groups  []Group `json:"groups"`
	NoMatch bool    `json:"no_match"`
}

// Score rates candidate against query. Substring containment of the
// normalized query returns ScoreCertain; otherwise the score blends word
// coverage (weight 0.7) with Levenshtein edit similarity (weight 0.3) over
// the normalized strings.
func Score(query, candidate string) float64 {
	qs := textnorm.Normalize(query)
	cs := textnorm.Normalize(candidate)
	if qs == "" {
		return 0
	}
	if strings.Contains(cs, qs) {
		return ScoreCertain
	}

	qWords := strings.Fields(qs)
	cWords := strings.Fields(cs)

	matching := 0
	for _, qw := range qWords {
		for _, cw := range cWords {
			if strings.Contains(cw, qw) {
				matching++
				break
			}
		}
	}

	maxLen := len(qs)
	if len(cs) > maxLen {
		maxLen = len(cs)
	}
	sim := 1 - float64(fuzzy.LevenshteinDistance(qs, cs))/float64(maxLen)

	denom := len(qWords)
	if denom == 0 {
		denom = 1
	}
	return float64(matching)/float64(denom)*0.7 + sim*0.3
}

// DebitHint reports whether the query asks for debit cards, which flips the
// suggestion groups debit-first. The check is a permissive substring scan:
// "dc" alone is enough.
func DebitHint(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	return strings.Contains(q, "debit") ||
		strings.Contains(q, "debit card") ||
		strings.Contains(q, "debit cards") ||
		strings.Contains(q, "dc")
}

// Rank scores every entry against the query and returns the accepted ones,
// best first, capped at MaxSuggestions. A candidate is accepted when its
// normalized display contains the normalized query or its score clears the
// threshold. Ties break ascending by display name.
func Rank(query string, entries []catalog.Entry) []catalog.Entry {
	qNorm := textnorm.Normalize(query)
	if qNorm == "" {
		return nil
	}

	type scored struct {
		entry catalog.Entry
		score float64
	}

	kept := make([]scored, 0, len(entries))
	for _, e := range entries {
		s := Score(query, e.Display)
		if s > acceptThreshold || strings.Contains(textnorm.Normalize(e.Display), qNorm) {
			kept = append(kept, scored{entry: e, score: s})
		}
	}

	coll := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].score != kept[j].score {
			return kept[i].score > kept[j].score
		}
		return coll.CompareString(kept[i].entry.Display, kept[j].entry.Display) < 0
	})

	if len(kept) > MaxSuggestions {
		kept = kept[:MaxSuggestions]
	}

	out := make([]catalog.Entry, len(kept))
	for i, s := range kept {
		out[i] = s.entry
	}
	return out
}

// Suggest runs one full ranking pass over both catalog groups. Both groups
// are always computed; the debit hint only changes presentation order.
func Suggest(query string, cat *catalog.Catalog) Result {
	timer := prometheus.NewTimer(suggestDuration)
	defer timer.ObserveDuration()

	if strings.TrimSpace(query) == "" {
		return Result{}
	}

	credit := Rank(query, cat.Credit)
	debit := Rank(query, cat.Debit)

	if len(credit) == 0 && len(debit) == 0 {
		return Result{NoMatch: true}
	}

	first := Group{Label: "Credit Cards", Entries: credit}
	second := Group{Label: "Debit Cards", Entries: debit}
	if DebitHint(query) {
		first, second = second, first
	}

	var groups []Group
	if len(first.Entries) > 0 {
		groups = append(groups, first)
	}
	if len(second.Entries) > 0 {
		groups = append(groups, second)
	}
	return Result{Groups: groups}
}
