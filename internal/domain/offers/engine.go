package offers

import (
	"log/slog"

	"github.com/FACorreiaa/travel-card-offers/internal/domain/source"
)

// Wrapper binds one matched offer row to its source and the variant qualifier
// the match came through. Wrappers are consumed immediately by deduplication
// and never retained across selection changes.
type Wrapper struct {
	Offer   source.Row `json:"offer"`
	Source  string     `json:"source"`
	Variant string     `json:"variant,omitempty"`
}

// SourceOffers is one source's deduplicated matches, in display order.
type SourceOffers struct {
	Source           string    `json:"source"`
	Label            string    `json:"label"`
	Permanent        bool      `json:"permanent,omitempty"`
	ShowsVariantNote bool      `json:"shows_variant_note"`
	Offers           []Wrapper `json:"offers"`
}

// Result is the full matched-offer view for one selection. HasAny
// distinguishes "selected but zero offers anywhere" from a catalog no-match.
type Result struct {
	Groups []SourceOffers `json:"groups"`
	HasAny bool           `json:"has_any"`
}

// Engine matches selections against one immutable snapshot of offer rows.
// Every method is a pure computation over the snapshot; a reload builds a new
// Engine rather than mutating this one.
type Engine struct {
	sources []source.Config
	rows    map[string][]source.Row
	aliases source.FieldAliases
	logger  *slog.Logger
}

// NewEngine creates an engine over the given snapshot's offer rows. Source
// order in sources is the fixed priority order for dedup and display.
func NewEngine(snap *source.Snapshot, sources []source.Config, aliases source.FieldAliases, logger *slog.Logger) *Engine {
	return &Engine{
		sources: sources,
		rows:    snap.Offers,
		aliases: aliases,
		logger:  logger,
	}
}

// OffersFor collects, per source, every offer row whose eligible-card list
// contains the selection, then deduplicates across sources with earlier
// sources winning. The permanent source only contributes to credit
// selections. Empty groups are omitted from the result.
func (e *Engine) OffersFor(card SelectedCard) Result {
	seen := make(map[string]struct{})
	res := Result{}

	for _, src := range e.sources {
		target := TargetCredit
		switch {
		case src.Permanent:
			if card.Kind != source.KindCredit {
				continue
			}
			target = TargetPermanent
		case card.Kind == source.KindDebit:
			target = TargetDebit
		}

		matched := e.matchSource(src, card, target)
		kept := dedupe(matched, e.aliases, seen)
		if len(kept) == 0 {
			continue
		}

		res.Groups = append(res.Groups, SourceOffers{
			Source:           src.Name,
			Label:            src.Label,
			Permanent:        src.Permanent,
			ShowsVariantNote: src.ShowsVariantNote,
			Offers:           kept,
		})
		res.HasAny = true
	}

	e.logger.Debug("offers matched",
		slog.String("card", card.Display),
		slog.String("kind", string(card.Kind)),
		slog.Int("groups", len(res.Groups)),
	)
	return res
}

func (e *Engine) matchSource(src source.Config, card SelectedCard, target Target) []Wrapper {
	var out []Wrapper
	for _, row := range e.rows[src.Name] {
		list := EligibleList(row, target, e.aliases)
		if len(list) == 0 {
			continue
		}
		if ok, variant := MatchCard(card, list); ok {
			out = append(out, Wrapper{Offer: row, Source: src.Name, Variant: variant})
		}
	}
	return out
}
