// Package marquee harvests the "cards with active offers" chip lists from the
// offer sources. The pass is independent of any selection and never reads the
// reference catalog: a chip only appears when some offer actually names that
// card.
package marquee

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/FACorreiaa/travel-card-offers/internal/domain/source"
	"github.com/FACorreiaa/travel-card-offers/pkg/textnorm"
)

// Chips holds the harvested card display names, split by kind and sorted by
// locale-aware comparison.
type Chips struct {
	Credit []string `json:"credit"`
	Debit  []string `json:"debit"`
}

type chipSet map[string]string // normalized key -> first-seen display form

func (s chipSet) add(raw string) {
	base := textnorm.CanonicalizeBrand(textnorm.BaseName(raw))
	key := textnorm.Normalize(base)
	if key == "" {
		return
	}
	if _, seen := s[key]; !seen {
		s[key] = base
	}
}

// Harvest classifies every card token found in the offer sources as credit or
// debit and collects the chip sets. Classification is layered per row:
// explicit credit/debit headers, then ambiguous cards headers routed by a
// row-level type hint or classified per token, then a whole-row value scan
// for tokens that mention "card". Rows contributing nothing are skipped
// silently. The permanent source feeds the credit set only, from its single
// card-name column.
func Harvest(snap *source.Snapshot, sources []source.Config, aliases source.FieldAliases) Chips {
	credit := make(chipSet)
	debit := make(chipSet)

	for _, src := range sources {
		rows := snap.Offers[src.Name]
		if src.Permanent {
			harvestPermanent(rows, aliases, credit)
			continue
		}
		for _, row := range rows {
			harvestRow(row, credit, debit)
		}
	}

	return Chips{Credit: sortedChips(credit), Debit: sortedChips(debit)}
}

func harvestRow(row source.Row, credit, debit chipSet) {
	debitFields := row.FieldsWhere(source.HeaderLooksDebit)
	creditFields := row.FieldsWhere(source.HeaderLooksCredit)

	for _, f := range debitFields {
		harvestList(f.Value, debit)
	}
	for _, f := range creditFields {
		harvestList(f.Value, credit)
	}

	// Ambiguous headers: "Eligible Cards", "Cards", anything mentioning
	// cards without a credit/debit qualifier.
	mixedFields := row.FieldsWhere(func(k string) bool {
		if source.HeaderLooksDebit(k) || source.HeaderLooksCredit(k) {
			return false
		}
		return source.HeaderLooksEligibleCards(k) || source.HeaderLooksAnyCards(k)
	})

	if len(mixedFields) > 0 {
		hint := row.TypeHint()
		for _, f := range mixedFields {
			switch hint {
			case source.KindDebit:
				harvestList(f.Value, debit)
			case source.KindCredit:
				harvestList(f.Value, credit)
			default:
				harvestMixed(f.Value, credit, debit)
			}
		}
	}

	if len(debitFields) == 0 && len(creditFields) == 0 && len(mixedFields) == 0 {
		harvestByValueScan(row, credit, debit)
	}
}

func harvestPermanent(rows []source.Row, aliases source.FieldAliases, credit chipSet) {
	for _, row := range rows {
		name, ok := row.FirstField(aliases.PermanentCardName)
		if !ok {
			name, ok = row.FirstFieldContaining("credit card name")
		}
		if ok {
			credit.add(name)
		}
	}
}

func harvestList(val string, target chipSet) {
	for _, raw := range textnorm.SplitList(val) {
		target.add(raw)
	}
}

// harvestMixed routes each token of an ambiguous cell by the token's own
// wording; tokens naming neither kind are dropped.
func harvestMixed(val string, credit, debit chipSet) {
	for _, raw := range textnorm.SplitList(val) {
		switch {
		case source.ValueLooksDebit(raw):
			debit.add(raw)
		case source.ValueLooksCredit(raw):
			credit.add(raw)
		}
	}
}

// harvestByValueScan is the last-resort pass for rows with no classifiable
// header: every cell is split and tokens that mention "card" are classified
// by their own wording.
func harvestByValueScan(row source.Row, credit, debit chipSet) {
	for _, v := range row.Values() {
		for _, tok := range textnorm.SplitList(v) {
			if !textnorm.ContainsCardWord(tok) {
				continue
			}
			switch {
			case source.ValueLooksDebit(tok):
				debit.add(tok)
			case source.ValueLooksCredit(tok):
				credit.add(tok)
			}
		}
	}
}

func sortedChips(s chipSet) []string {
	out := make([]string, 0, len(s))
	for _, display := range s {
		out = append(out, display)
	}
	coll := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		return coll.CompareString(out[i], out[j]) < 0
	})
	return out
}
