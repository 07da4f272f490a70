// Package offers matches a selected card against heterogeneous offer tables:
// locating each row's eligible-card list through layered header fallbacks,
// testing exact normalized base-name eligibility, and deduplicating
// semantically identical offers across sources.
package offers

import (
	"github.com/FACorreiaa/travel-card-offers/internal/domain/source"
	"github.com/FACorreiaa/travel-card-offers/pkg/textnorm"
)

// Target selects which eligibility semantics apply when resolving a row.
type Target string

const (
	TargetCredit    Target = "credit"
	TargetDebit     Target = "debit"
	TargetPermanent Target = "permanent"
)

// EligibleList locates the eligible-card names of one offer row for the given
// target. An empty result is a normal outcome for many rows, never an error.
//
// Resolution is layered and each non-empty step short-circuits the rest:
//
//	permanent: the single card-name column, unsplit.
//	debit:     explicit debit headers; else a generic cards column gated by a
//	           row-level debit type hint; else a free-text scan keeping
//	           tokens that mention "debit". The scan favors recall over
//	           precision.
//	credit:    the credit alias chain ending at generic eligible-cards
//	           headers. Credit is the default reading of ambiguous rows, so
//	           it gets no token-level fallback.
func EligibleList(row source.Row, target Target, aliases source.FieldAliases) []string {
	switch target {
	case TargetPermanent:
		if name, ok := row.FirstField(aliases.PermanentCardName); ok {
			return []string{name}
		}
		return nil

	case TargetDebit:
		return resolveDebit(row, aliases)

	default:
		return resolveCredit(row, aliases)
	}
}

func resolveDebit(row source.Row, aliases source.FieldAliases) []string {
	val, ok := row.FirstField(aliases.Debit)
	if !ok {
		val, ok = row.FirstFieldContaining("eligible debit")
	}
	if !ok {
		val, ok = row.FirstFieldContaining("debit card")
	}
	if ok {
		if list := textnorm.SplitList(val); len(list) > 0 {
			return list
		}
	}

	if row.TypeHint() == source.KindDebit {
		mixed, found := row.FirstFieldContaining("eligible cards")
		if !found {
			mixed, found = row.FirstFieldContaining("cards")
		}
		if found {
			if list := textnorm.SplitList(mixed); len(list) > 0 {
				return list
			}
		}
	}

	// Last resort: keep any token anywhere in the row that names itself
	// debit.
	var tokens []string
	for _, v := range row.Values() {
		for _, tok := range textnorm.SplitList(v) {
			if textnorm.ContainsDebitWord(tok) {
				tokens = append(tokens, tok)
			}
		}
	}
	return tokens
}

func resolveCredit(row source.Row, aliases source.FieldAliases) []string {
	val, ok := row.FirstField(aliases.Credit)
	if !ok {
		val, ok = row.FirstFieldContaining("eligible credit")
	}
	if !ok {
		val, ok = row.FirstFieldContaining("credit card")
	}
	if !ok {
		val, ok = row.FirstFieldContaining("eligible cards")
	}
	if !ok {
		return nil
	}
	return textnorm.SplitList(val)
}
