// Package catalog builds the deduplicated universe of known card names that
// drives autocomplete. Entries come from the reference catalog table only,
// never from offer sources.
package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/FACorreiaa/travel-card-offers/internal/domain/source"
	"github.com/FACorreiaa/travel-card-offers/pkg/textnorm"
)

// Entry is one known card. Key is a pure function of Display and identifies
// the entry within its kind.
type Entry struct {
	Kind    source.CardKind `json:"kind"`
	Display string          `json:"display"`
	Key     string          `json:"-"`
}

// Catalog holds the credit and debit entry lists, each sorted by locale-aware
// case-insensitive display name. Immutable once built; rebuilt wholesale on
// source reload.
type Catalog struct {
	Credit []Entry
	Debit  []Entry
}

// NewEntry derives a catalog-shaped entry from a raw card name: variant
// stripped, brand spelling canonicalized, comparison key computed.
func NewEntry(raw string, kind source.CardKind) Entry {
	display := textnorm.CanonicalizeBrand(textnorm.BaseName(raw))
	return Entry{Kind: kind, Display: display, Key: textnorm.Normalize(display)}
}

// Build scans the reference rows and collects the deduplicated card lists.
// Duplicates collapse by (kind, key) with the first-seen display form
// winning, so row order only decides which capitalization survives.
func Build(rows []source.Row, aliases source.FieldAliases) *Catalog {
	credit := newKindSet()
	debit := newKindSet()

	for _, row := range rows {
		if val, ok := row.FirstField(aliases.Credit); ok {
			for _, raw := range textnorm.SplitList(val) {
				credit.add(NewEntry(raw, source.KindCredit))
			}
		}
		if val, ok := row.FirstField(aliases.Debit); ok {
			for _, raw := range textnorm.SplitList(val) {
				debit.add(NewEntry(raw, source.KindDebit))
			}
		}
	}

	return &Catalog{
		Credit: credit.sorted(),
		Debit:  debit.sorted(),
	}
}

// Empty reports the "no catalog" condition: both lists empty. This is a
// valid, renderable state for the caller, not an error.
func (c *Catalog) Empty() bool {
	return len(c.Credit) == 0 && len(c.Debit) == 0
}

// Lookup finds the entry with the given normalized key, searching the kind's
// list.
func (c *Catalog) Lookup(kind source.CardKind, key string) (Entry, bool) {
	list := c.Credit
	if kind == source.KindDebit {
		list = c.Debit
	}
	for _, e := range list {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

type kindSet struct {
	byKey map[string]Entry
	order []string
}

func newKindSet() *kindSet {
	return &kindSet{byKey: make(map[string]Entry)}
}

func (s *kindSet) add(e Entry) {
	if e.Key == "" {
		return
	}
	if _, seen := s.byKey[e.Key]; seen {
		return
	}
	s.byKey[e.Key] = e
	s.order = append(s.order, e.Key)
}

func (s *kindSet) sorted() []Entry {
	out := make([]Entry, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.byKey[k])
	}
	coll := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		return coll.CompareString(out[i].Display, out[j].Display) < 0
	})
	return out
}
