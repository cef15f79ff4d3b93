package trends

import (
	"sort"
	"strconv"
)

// termDate keys the merged batch results.
type termDate struct {
	term string
	date string
}

// Table is the dense date-by-term result of a volumes fetch.
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Records returns the table as rows ready for a delimited writer,
// header first.
func (t *Table) Records() [][]string {
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, t.Header)
	return append(records, t.Rows...)
}

// buildTable materializes the merged (term, date) map into a dense table.
// Every distinct date becomes one row, ascending; combinations the remote
// service did not report count as zero. Terms keep their requested order,
// duplicates included.
func buildTable(terms []string, merged map[termDate]float64) *Table {
	seen := make(map[string]struct{})
	var dates []string
	for k := range merged {
		if _, ok := seen[k.date]; !ok {
			seen[k.date] = struct{}{}
			dates = append(dates, k.date)
		}
	}
	sort.Strings(dates)

	header := make([]string, 0, len(terms)+1)
	header = append(header, "date")
	header = append(header, terms...)

	rows := make([][]string, 0, len(dates))
	for _, date := range dates {
		row := make([]string, 0, len(terms)+1)
		row = append(row, date)
		for _, term := range terms {
			row = append(row, formatCount(merged[termDate{term, date}]))
		}
		rows = append(rows, row)
	}

	return &Table{Header: header, Rows: rows}
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
