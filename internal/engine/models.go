package engine

// ReturnSeries holds aligned daily fractional returns, one sequence per
// ticker. All sequences have the same length by construction: a row missing
// any ticker's price is dropped for every ticker at once.
type ReturnSeries struct {
	// Tickers is the canonical asset ordering shared by every consumer
	// (statistics, covariance matrix, enumeration, output).
	Tickers []string
	Series  map[string][]float64
}

// Observations returns the number of aligned daily returns.
func (rs *ReturnSeries) Observations() int {
	if rs == nil || len(rs.Tickers) == 0 {
		return 0
	}
	return len(rs.Series[rs.Tickers[0]])
}

// AssetStats is the per-asset summary: mean daily return and its sample
// standard deviation.
type AssetStats struct {
	Ticker         string  `json:"ticker"`
	ExpectedReturn float64 `json:"expected_return"`
	Risk           float64 `json:"risk"`
}

// CovarianceMatrix is the full sample covariance matrix of the return
// series, indexed in the same ticker order everywhere. Symmetric by
// construction; the diagonal holds each asset's variance.
type CovarianceMatrix struct {
	Tickers []string
	Data    [][]float64
}

// At returns the covariance between assets i and j.
func (m *CovarianceMatrix) At(i, j int) float64 {
	return m.Data[i][j]
}

// PortfolioPoint is one evaluated weight combination. Value-like; never
// mutated after creation.
type PortfolioPoint struct {
	Weights        map[string]float64 `json:"weights"`
	ExpectedReturn float64            `json:"expected_return"`
	Risk           float64            `json:"risk"`
}

// Metadata describes the input the dataset was computed from.
type Metadata struct {
	Tickers      []string `json:"tickers"`
	Observations int      `json:"observations"`
	RawRows      int      `json:"raw_rows"`
}

// Dataset is the complete computation result handed to the output sinks:
// per-asset statistics, the full enumerated grid, and the efficient frontier
// sorted ascending by risk.
type Dataset struct {
	Metadata          Metadata         `json:"metadata"`
	Assets            []AssetStats     `json:"assets"`
	Portfolios        []PortfolioPoint `json:"portfolios"`
	EfficientFrontier []PortfolioPoint `json:"efficient_frontier"`
}
