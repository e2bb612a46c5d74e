package pricefeed

import "math"

// PriceRow is one trading day of the feed: a date label plus the closing
// price of each tracked ticker. A missing or blank cell is math.NaN().
// Rows are immutable once read.
type PriceRow struct {
	Date   string
	Closes map[string]float64
}

// Close returns the ticker's closing price, or NaN when the row has none.
func (r PriceRow) Close(ticker string) float64 {
	if v, ok := r.Closes[ticker]; ok {
		return v
	}
	return math.NaN()
}

// Table is a parsed price feed: chronological rows plus the canonical
// (sorted) ticker set derived from the close columns.
type Table struct {
	Tickers []string
	Rows    []PriceRow
	// RawRows counts non-blank data lines in the source, including rows
	// that later get dropped during return alignment.
	RawRows int
}
