package source

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCSV(t *testing.T) {
	t.Run("header row maps columns", func(t *testing.T) {
		in := "Title, Eligible Credit Cards \n5% off hotels, HDFC Regalia \n"
		rows, err := DecodeCSV(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "5% off hotels", rows[0]["Title"])
		assert.Equal(t, "HDFC Regalia", rows[0]["Eligible Credit Cards"])
	})

	t.Run("blank rows are dropped", func(t *testing.T) {
		in := "Title,Link\nWeekend sale,https://x.test\n,\n , \n"
		rows, err := DecodeCSV(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Weekend sale", rows[0]["Title"])
	})

	t.Run("quoted cells keep embedded commas", func(t *testing.T) {
		in := "Title,Eligible Cards\nSale,\"HDFC Regalia, ICICI Coral\"\n"
		rows, err := DecodeCSV(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "HDFC Regalia, ICICI Coral", rows[0]["Eligible Cards"])
	})

	t.Run("stray quotes are tolerated", func(t *testing.T) {
		in := "Title,Link\n5\" off suites,https://x.test\n"
		rows, err := DecodeCSV(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "5\" off suites", rows[0]["Title"])
	})

	t.Run("ragged rows fail the decode", func(t *testing.T) {
		in := "Title,Link\na,b,c\n"
		_, err := DecodeCSV(strings.NewReader(in))
		assert.Error(t, err)
	})
}
