package engine

import (
	"math"

	"frontiergen/internal/pricefeed"
)

// BuildReturnSeries converts chronological price rows into aligned daily
// fractional returns for the given tickers. A row only emits returns when
// every ticker has both a valid close and a known previous close; otherwise
// the whole row is skipped. Previous-close tracking still advances for the
// tickers that do have a valid price on a skipped row, and resets to unset
// for the ones that don't.
func BuildReturnSeries(rows []pricefeed.PriceRow, tickers []string) (*ReturnSeries, error) {
	prev := make(map[string]float64, len(tickers))
	for _, t := range tickers {
		prev[t] = math.NaN()
	}

	series := make(map[string][]float64, len(tickers))
	daily := make(map[string]float64, len(tickers))

	for _, row := range rows {
		usable := true
		for _, t := range tickers {
			price := row.Close(t)
			if math.IsNaN(price) {
				prev[t] = math.NaN()
				usable = false
				continue
			}
			if math.IsNaN(prev[t]) {
				prev[t] = price
				usable = false
				continue
			}
			daily[t] = price/prev[t] - 1
			prev[t] = price
		}
		if usable {
			for _, t := range tickers {
				series[t] = append(series[t], daily[t])
			}
		}
	}

	rs := &ReturnSeries{
		Tickers: append([]string(nil), tickers...),
		Series:  series,
	}
	if rs.Observations() == 0 {
		return nil, ErrNoObservations
	}
	return rs, nil
}
