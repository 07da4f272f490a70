package marquee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/travel-card-offers/internal/domain/source"
)

func testSources() []source.Config {
	return []source.Config{
		{Name: "permanent", Label: "Permanent Offers", Permanent: true},
		{Name: "goibibo", Label: "Offers on Goibibo"},
	}
}

func harvest(t *testing.T, rows []source.Row, permanent []source.Row) Chips {
	t.Helper()
	snap := &source.Snapshot{Offers: map[string][]source.Row{
		"goibibo":   rows,
		"permanent": permanent,
	}}
	return Harvest(snap, testSources(), source.DefaultAliases())
}

func TestHarvest(t *testing.T) {
	t.Run("explicit headers route directly", func(t *testing.T) {
		chips := harvest(t, []source.Row{
			{
				"Eligible Credit Cards": "HDFC Regalia (Visa Signature), ICICI Coral",
				"Eligible Debit Cards":  "SBI Platinum Debit",
			},
		}, nil)

		assert.Equal(t, []string{"HDFC Regalia", "ICICI Coral"}, chips.Credit)
		assert.Equal(t, []string{"SBI Platinum Debit"}, chips.Debit)
	})

	t.Run("ambiguous header routed by row type hint", func(t *testing.T) {
		chips := harvest(t, []source.Row{
			{
				"Eligible Cards": "SBI Platinum, HDFC Millennia",
				"Segment":        "Debit",
			},
		}, nil)

		assert.Empty(t, chips.Credit)
		assert.ElementsMatch(t, []string{"SBI Platinum", "HDFC Millennia"}, chips.Debit)
	})

	t.Run("ambiguous header without hint classifies per token", func(t *testing.T) {
		chips := harvest(t, []source.Row{
			{"Eligible Cards": "ICICI Coral Credit Card / Axis Delight Debit Card"},
		}, nil)

		assert.Equal(t, []string{"ICICI Coral Credit Card"}, chips.Credit)
		assert.Equal(t, []string{"Axis Delight Debit Card"}, chips.Debit)
	})

	t.Run("value scan fallback for rows with no card headers", func(t *testing.T) {
		chips := harvest(t, []source.Row{
			{"Remarks": "HDFC Regalia Credit Card; SBI Platinum Debit Card; free breakfast"},
		}, nil)

		assert.Equal(t, []string{"HDFC Regalia Credit Card"}, chips.Credit)
		assert.Equal(t, []string{"SBI Platinum Debit Card"}, chips.Debit)
	})

	t.Run("value scan keeps singular card tokens only", func(t *testing.T) {
		chips := harvest(t, []source.Row{
			{"Remarks": "valid on all credit cards; HDFC Regalia Credit Card"},
		}, nil)

		assert.Equal(t, []string{"HDFC Regalia Credit Card"}, chips.Credit)
		assert.Empty(t, chips.Debit)
	})

	t.Run("unclassifiable rows are skipped silently", func(t *testing.T) {
		chips := harvest(t, []source.Row{
			{"Remarks": "nothing relevant here"},
		}, nil)
		assert.Empty(t, chips.Credit)
		assert.Empty(t, chips.Debit)
	})

	t.Run("permanent source feeds credit chips only", func(t *testing.T) {
		chips := harvest(t, nil, []source.Row{
			{"Credit Card Name": "Hdfc Regalia (Visa Signature)"},
		})
		assert.Equal(t, []string{"HDFC Regalia"}, chips.Credit)
		assert.Empty(t, chips.Debit)
	})

	t.Run("duplicates collapse with first-seen display", func(t *testing.T) {
		chips := harvest(t, []source.Row{
			{"Eligible Credit Cards": "HDFC Regalia"},
			{"Eligible Credit Cards": "hdfc regalia (Visa)"},
		}, nil)

		require.Len(t, chips.Credit, 1)
		assert.Equal(t, "HDFC Regalia", chips.Credit[0])
	})
}
