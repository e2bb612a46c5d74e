package engine

import (
	"fmt"
	"math"
)

func mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

// SampleCovariance returns the Bessel-corrected covariance of two equally
// long return series: Σ(a−ā)(b−b̄)/(n−1). Fewer than two observations carry
// no co-movement signal, so the result degrades to 0 rather than erroring.
func SampleCovariance(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrSeriesLength, len(a), len(b))
	}
	n := len(a)
	if n < 2 {
		return 0, nil
	}
	meanA := mean(a)
	meanB := mean(b)
	var sum float64
	for i := range a {
		sum += (a[i] - meanA) * (b[i] - meanB)
	}
	return sum / float64(n-1), nil
}

// BuildCovarianceMatrix computes the pairwise sample covariance for every
// ordered ticker pair, in the series' canonical ticker order.
func BuildCovarianceMatrix(rs *ReturnSeries) (*CovarianceMatrix, error) {
	n := len(rs.Tickers)
	data := make([][]float64, n)
	for i, ti := range rs.Tickers {
		data[i] = make([]float64, n)
		for j, tj := range rs.Tickers {
			cov, err := SampleCovariance(rs.Series[ti], rs.Series[tj])
			if err != nil {
				return nil, fmt.Errorf("covariance %s/%s: %w", ti, tj, err)
			}
			data[i][j] = cov
		}
	}
	return &CovarianceMatrix{
		Tickers: append([]string(nil), rs.Tickers...),
		Data:    data,
	}, nil
}

// ComputeAssetStats derives each asset's expected return (arithmetic mean of
// its daily returns) and risk (sample standard deviation).
func ComputeAssetStats(rs *ReturnSeries) ([]AssetStats, error) {
	stats := make([]AssetStats, 0, len(rs.Tickers))
	for _, t := range rs.Tickers {
		variance, err := SampleCovariance(rs.Series[t], rs.Series[t])
		if err != nil {
			return nil, fmt.Errorf("variance %s: %w", t, err)
		}
		stats = append(stats, AssetStats{
			Ticker:         t,
			ExpectedReturn: mean(rs.Series[t]),
			Risk:           math.Sqrt(variance),
		})
	}
	return stats, nil
}
