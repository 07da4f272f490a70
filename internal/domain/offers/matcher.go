package offers

import (
	"github.com/FACorreiaa/travel-card-offers/internal/domain/source"
	"github.com/FACorreiaa/travel-card-offers/pkg/textnorm"
)

// SelectedCard is the single active selection the engine matches offers
// against. Key is the normalized base-name comparison key.
type SelectedCard struct {
	Kind    source.CardKind `json:"kind"`
	Display string          `json:"display"`
	Key     string          `json:"-"`
}

// NewSelectedCard builds a selection from a raw display name, as when the
// user clicks a chip rather than picking a catalog suggestion.
func NewSelectedCard(raw string, kind source.CardKind) SelectedCard {
	display := textnorm.CanonicalizeBrand(textnorm.BaseName(raw))
	return SelectedCard{Kind: kind, Display: display, Key: textnorm.Normalize(display)}
}

// MatchCard tests whether the selection's base name appears in a resolved
// eligible-card list. Eligibility is exact equality of normalized base names;
// fuzzy and substring logic never apply here. The first matching entry wins
// and its variant qualifier, if any, is captured for display.
func MatchCard(card SelectedCard, rawList []string) (bool, string) {
	for _, raw := range rawList {
		base := textnorm.CanonicalizeBrand(textnorm.BaseName(raw))
		if textnorm.Normalize(base) == card.Key {
			return true, textnorm.Variant(raw)
		}
	}
	return false, ""
}
