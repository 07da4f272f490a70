// Package source models the heterogeneous tabular files the engine consumes:
// a reference card catalog plus several travel-site offer tables with no
// agreed schema. Column lookup goes through declarative alias tables rather
// than per-source conditionals.
package source

// CardKind classifies a card as credit or debit.
type CardKind string

const (
	KindCredit CardKind = "credit"
	KindDebit  CardKind = "debit"
)

// FieldAliases lists, per logical field, the header names that may carry it,
// in priority order. The first present non-empty header wins per row.
type FieldAliases struct {
	Credit []string
	Debit  []string
	Title  []string
	Image  []string
	Link   []string
	Desc   []string

	// Permanent-benefit table fields.
	PermanentCardName []string
	PermanentBenefit  []string
}

// DefaultAliases covers the header spellings observed across the current
// source tables.
func DefaultAliases() FieldAliases {
	return FieldAliases{
		Credit:            []string{"Eligible Credit Cards", "Eligible Cards"},
		Debit:             []string{"Eligible Debit Cards", "Applicable Debit Cards"},
		Title:             []string{"Offer Title", "Title"},
		Image:             []string{"Image", "Credit Card Image", "Offer Image"},
		Link:              []string{"Link", "Offer Link"},
		Desc:              []string{"Description", "Details", "Offer Description", "Flight Benefit"},
		PermanentCardName: []string{"Credit Card Name"},
		PermanentBenefit:  []string{"Flight Benefit", "Benefit", "Offer", "Hotel Benefit"},
	}
}

// Config describes one offer source. Priority order of the slice is
// significant: deduplication and display both walk sources in this order, so
// earlier sources win ownership of an offer that appears in several.
type Config struct {
	Name  string // stable identifier, used in API payloads and dedup
	File  string // file name inside the sources directory
	Label string // display heading

	// Permanent marks the inbuilt-benefit table: one card name per row, no
	// eligibility-list semantics, contributes to credit selections only.
	Permanent bool

	// ShowsVariantNote enables the per-card "applicable only on X variant"
	// note for offers matched through a variant-qualified entry.
	ShowsVariantNote bool
}

// CatalogFile is the reference table the autocomplete catalog is built from.
// It never contributes offers or marquee chips.
const CatalogFile = "allCards.csv"

// DefaultSources returns the offer sources in their fixed priority order,
// permanent benefits first.
func DefaultSources() []Config {
	return []Config{
		{Name: "permanent", File: "permanent_offers.csv", Label: "Permanent Offers", Permanent: true, ShowsVariantNote: true},
		{Name: "goibibo", File: "Goibibo.csv", Label: "Offers on Goibibo", ShowsVariantNote: true},
		{Name: "easemytrip", File: "EaseMyTrip.csv", Label: "Offers on EaseMyTrip", ShowsVariantNote: true},
		{Name: "yatra", File: "Yatra.csv", Label: "Offers on Yatra", ShowsVariantNote: true},
		{Name: "ixigo", File: "Ixigo.csv", Label: "Offers on Ixigo", ShowsVariantNote: true},
		{Name: "makemytrip", File: "MakeMyTrip.csv", Label: "Offers on MakeMyTrip", ShowsVariantNote: true},
	}
}
