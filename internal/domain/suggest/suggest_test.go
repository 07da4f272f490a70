package suggest

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/travel-card-offers/internal/domain/catalog"
	"github.com/FACorreiaa/travel-card-offers/internal/domain/source"
)

func buildCatalog(t *testing.T, credit, debit string) *catalog.Catalog {
	t.Helper()
	return catalog.Build([]source.Row{
		{"Eligible Credit Cards": credit, "Eligible Debit Cards": debit},
	}, source.DefaultAliases())
}

func TestScore(t *testing.T) {
	t.Run("substring containment is certain", func(t *testing.T) {
		assert.Equal(t, ScoreCertain, Score("hdfc regalia", "HDFC Regalia"))
		assert.Equal(t, ScoreCertain, Score("regalia", "HDFC Regalia"))
	})

	t.Run("typo scores between zero and one", func(t *testing.T) {
		s := Score("hdfc regaliaa", "HDFC Regalia")
		assert.Greater(t, s, 0.0)
		assert.Less(t, s, 1.0)
	})

	t.Run("substring always outranks fuzzy", func(t *testing.T) {
		certain := Score("regalia", "HDFC Regalia")
		fuzzyScore := Score("hdfc regaliaa", "HDFC Regalia")
		assert.Greater(t, certain, fuzzyScore)
	})

	t.Run("empty query scores zero", func(t *testing.T) {
		assert.Equal(t, 0.0, Score("", "HDFC Regalia"))
		assert.Equal(t, 0.0, Score("!!!", "HDFC Regalia"))
	})

	t.Run("word order variation tolerated", func(t *testing.T) {
		s := Score("regalia hdfc", "HDFC Regalia")
		assert.Greater(t, s, 0.3)
	})
}

func TestDebitHint(t *testing.T) {
	tests := []struct {
		query    string
		expected bool
	}{
		{"debit", true},
		{"sbi debit card", true},
		{"DEBIT CARDS", true},
		{"dc", true},
		{"regalia", false},
		{"", false},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			assert.Equal(t, tc.expected, DebitHint(tc.query))
		})
	}
}

func TestRank(t *testing.T) {
	cat := buildCatalog(t,
		"HDFC Regalia, HDFC Millennia, ICICI Amazon Pay, Axis Magnus",
		"SBI Platinum, HDFC Millennia",
	)

	t.Run("exact substring ranks first", func(t *testing.T) {
		ranked := Rank("hdfc regalia", cat.Credit)
		require.NotEmpty(t, ranked)
		assert.Equal(t, "HDFC Regalia", ranked[0].Display)
	})

	t.Run("typo still found", func(t *testing.T) {
		ranked := Rank("hdfc regaliaa", cat.Credit)
		require.NotEmpty(t, ranked)
		found := false
		for _, e := range ranked {
			if e.Display == "HDFC Regalia" {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("unrelated query yields nothing", func(t *testing.T) {
		assert.Empty(t, Rank("completely unrelated text zzz", cat.Credit))
	})

	t.Run("cap respected", func(t *testing.T) {
		rows := make([]source.Row, 0, MaxSuggestions+20)
		for i := 0; i < MaxSuggestions+20; i++ {
			rows = append(rows, source.Row{
				"Eligible Credit Cards": fmt.Sprintf("HDFC Card %03d", i),
			})
		}
		big := catalog.Build(rows, source.DefaultAliases())
		ranked := Rank("hdfc card", big.Credit)
		assert.Len(t, ranked, MaxSuggestions)
	})
}

func TestSuggest(t *testing.T) {
	cat := buildCatalog(t,
		"HDFC Regalia, ICICI Amazon Pay",
		"SBI Platinum Debit, HDFC Millennia Debit",
	)

	t.Run("empty query clears everything without no-match", func(t *testing.T) {
		res := Suggest("   ", cat)
		assert.Empty(t, res.Groups)
		assert.False(t, res.NoMatch)
	})

	t.Run("credit first by default", func(t *testing.T) {
		res := Suggest("hdfc", cat)
		require.Len(t, res.Groups, 2)
		assert.Equal(t, "Credit Cards", res.Groups[0].Label)
		assert.Equal(t, "Debit Cards", res.Groups[1].Label)
	})

	t.Run("debit hint flips group order", func(t *testing.T) {
		res := Suggest("debit", cat)
		require.NotEmpty(t, res.Groups)
		assert.Equal(t, "Debit Cards", res.Groups[0].Label)
	})

	t.Run("no match sets the flag", func(t *testing.T) {
		res := Suggest("zzzz qqqq", cat)
		assert.True(t, res.NoMatch)
		assert.Empty(t, res.Groups)
	})

	t.Run("empty groups omitted", func(t *testing.T) {
		res := Suggest("icici amazon", cat)
		require.Len(t, res.Groups, 1)
		assert.Equal(t, "Credit Cards", res.Groups[0].Label)
	})
}

func BenchmarkSuggest(b *testing.B) {
	gofakeit.Seed(42)

	rows := make([]source.Row, 1000)
	for i := range rows {
		rows[i] = source.Row{
			"Eligible Credit Cards": fmt.Sprintf("%s %s Card", gofakeit.Company(), gofakeit.Word()),
			"Eligible Debit Cards":  fmt.Sprintf("%s Debit", gofakeit.Company()),
		}
	}
	cat := catalog.Build(rows, source.DefaultAliases())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Suggest("hdfc regalia", cat)
	}
}
