package pricefeed

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// ReadFile parses a yfinance-style price CSV from disk.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open price table: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a price table with the three-row yfinance header layout:
// row 1 is the metric name (Close, High, ...), row 2 the ticker symbol,
// row 3 a column label. Column 0 is the date. Only Close columns feed the
// ticker set; other metrics are carried but unused downstream.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	metrics, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("price table is missing header rows: %w", err)
	}
	tickerRow, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("price table is missing header rows: %w", err)
	}
	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("price table is missing header rows: %w", err)
	}

	n := len(metrics)
	if len(tickerRow) < n {
		n = len(tickerRow)
	}
	if n < 2 {
		return nil, fmt.Errorf("price table has no data columns")
	}

	// Column index -> ticker, for Close columns only.
	closeCols := make(map[int]string)
	tickerSet := make(map[string]struct{})
	for i := 1; i < n; i++ {
		metric := strings.TrimSpace(metrics[i])
		ticker := strings.TrimSpace(tickerRow[i])
		if metric == "" {
			return nil, fmt.Errorf("empty metric in header column %d", i)
		}
		if ticker == "" {
			return nil, fmt.Errorf("empty ticker in header column %d", i)
		}
		if metric == "Close" {
			closeCols[i] = ticker
			tickerSet[ticker] = struct{}{}
		}
	}
	if len(tickerSet) == 0 {
		return nil, fmt.Errorf("price table has no Close columns")
	}

	tickers := make([]string, 0, len(tickerSet))
	for t := range tickerSet {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	table := &Table{Tickers: tickers}
	line := 3
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("price table line %d: %w", line, err)
		}
		if blank(record) {
			continue
		}
		table.RawRows++

		row := PriceRow{Closes: make(map[string]float64, len(closeCols))}
		if len(record) > 0 {
			row.Date = record[0]
		}
		for idx, ticker := range closeCols {
			if idx >= len(record) || record[idx] == "" {
				row.Closes[ticker] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(record[idx], 64)
			if err != nil {
				return nil, fmt.Errorf("price table line %d, ticker %s: bad close %q", line, ticker, record[idx])
			}
			row.Closes[ticker] = v
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func blank(record []string) bool {
	for _, f := range record {
		if f != "" {
			return false
		}
	}
	return true
}
