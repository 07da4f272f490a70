package offers

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/travel-card-offers/internal/domain/source"
)

func testSources() []source.Config {
	return []source.Config{
		{Name: "permanent", Label: "Permanent Offers", Permanent: true, ShowsVariantNote: true},
		{Name: "goibibo", Label: "Offers on Goibibo", ShowsVariantNote: true},
		{Name: "yatra", Label: "Offers on Yatra", ShowsVariantNote: true},
	}
}

func testEngine(offersBySource map[string][]source.Row) *Engine {
	snap := &source.Snapshot{Offers: offersBySource}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEngine(snap, testSources(), source.DefaultAliases(), logger)
}

func TestEngine_OffersFor(t *testing.T) {
	dupRow := source.Row{
		"Offer Title":           "Hotel Deal",
		"Description":           "10% off",
		"Image":                 "https://x.com/a.png",
		"Link":                  "https://x.com/offer",
		"Eligible Credit Cards": "HDFC Regalia (Visa Signature)",
	}

	t.Run("variant captured and sources grouped", func(t *testing.T) {
		e := testEngine(map[string][]source.Row{
			"goibibo": {dupRow},
		})

		res := e.OffersFor(NewSelectedCard("HDFC Regalia", source.KindCredit))
		require.True(t, res.HasAny)
		require.Len(t, res.Groups, 1)
		assert.Equal(t, "goibibo", res.Groups[0].Source)
		require.Len(t, res.Groups[0].Offers, 1)
		assert.Equal(t, "Visa Signature", res.Groups[0].Offers[0].Variant)
		assert.True(t, res.Groups[0].ShowsVariantNote)
	})

	t.Run("identical offer across sources kept once", func(t *testing.T) {
		e := testEngine(map[string][]source.Row{
			"goibibo": {dupRow},
			"yatra":   {dupRow},
		})

		res := e.OffersFor(NewSelectedCard("HDFC Regalia", source.KindCredit))
		require.Len(t, res.Groups, 1)
		// Goibibo precedes Yatra in priority order, so it owns the offer.
		assert.Equal(t, "goibibo", res.Groups[0].Source)
	})

	t.Run("permanent source only serves credit selections", func(t *testing.T) {
		permRow := source.Row{
			"Credit Card Name": "HDFC Regalia",
			"Flight Benefit":   "Free lounge access",
		}
		e := testEngine(map[string][]source.Row{
			"permanent": {permRow},
		})

		credit := e.OffersFor(NewSelectedCard("HDFC Regalia", source.KindCredit))
		require.Len(t, credit.Groups, 1)
		assert.True(t, credit.Groups[0].Permanent)

		debit := e.OffersFor(NewSelectedCard("HDFC Regalia", source.KindDebit))
		assert.False(t, debit.HasAny)
	})

	t.Run("debit selection uses debit resolution", func(t *testing.T) {
		e := testEngine(map[string][]source.Row{
			"goibibo": {
				{
					"Offer Title":          "Debit weekend",
					"Eligible Debit Cards": "SBI Platinum Debit",
				},
			},
		})

		res := e.OffersFor(NewSelectedCard("SBI Platinum Debit", source.KindDebit))
		assert.True(t, res.HasAny)

		none := e.OffersFor(NewSelectedCard("SBI Platinum Debit", source.KindCredit))
		assert.False(t, none.HasAny)
	})

	t.Run("no offers anywhere is a flagged state, not an error", func(t *testing.T) {
		e := testEngine(map[string][]source.Row{
			"goibibo": {dupRow},
		})
		res := e.OffersFor(NewSelectedCard("Axis Magnus", source.KindCredit))
		assert.False(t, res.HasAny)
		assert.Empty(t, res.Groups)
	})

	t.Run("rows missing all eligibility fields are skipped", func(t *testing.T) {
		e := testEngine(map[string][]source.Row{
			"goibibo": {
				{"Offer Title": "Malformed row"},
				dupRow,
			},
		})
		res := e.OffersFor(NewSelectedCard("HDFC Regalia", source.KindCredit))
		require.Len(t, res.Groups, 1)
		assert.Len(t, res.Groups[0].Offers, 1)
	})
}
