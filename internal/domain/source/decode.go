package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
)

func init() {
	// Hand-maintained sheets carry stray quotes and padded cells.
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.LazyQuotes = true
		r.TrimLeadingSpace = true
		return r
	})
}

// DecodeCSV decodes a delimiter-separated table with a header row into rows.
// Header names and cell values are trimmed; rows with no non-empty cell are
// dropped (trailing blank lines are common in hand-maintained sheets).
func DecodeCSV(r io.Reader) ([]Row, error) {
	maps, err := gocsv.CSVToMaps(r)
	if err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}

	rows := make([]Row, 0, len(maps))
	for _, m := range maps {
		row := make(Row, len(m))
		empty := true
		for k, v := range m {
			k = strings.TrimSpace(k)
			v = strings.TrimSpace(v)
			if k == "" {
				continue
			}
			row[k] = v
			if v != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// DecodeXLSX decodes the first sheet of an Excel workbook, treating its first
// row as the header.
func DecodeXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx has no sheets")
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(raw) < 2 {
		return nil, nil
	}

	header := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		header[i] = strings.TrimSpace(h)
	}

	rows := make([]Row, 0, len(raw)-1)
	for _, rec := range raw[1:] {
		row := make(Row, len(header))
		empty := true
		for i, h := range header {
			if h == "" {
				continue
			}
			v := ""
			if i < len(rec) {
				v = strings.TrimSpace(rec[i])
			}
			row[h] = v
			if v != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}
