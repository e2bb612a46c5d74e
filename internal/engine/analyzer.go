package engine

import (
	"fmt"

	"frontiergen/internal/config"
	"frontiergen/internal/logger"
	"frontiergen/internal/pricefeed"
)

// Analyzer runs the whole pipeline over one price table:
// prices → returns → statistics → portfolio grid → frontier.
// Each stage consumes the complete output of its predecessor; nothing is
// mutated after it is produced, and nothing survives across runs.
type Analyzer struct {
	cfg *config.Config
}

// NewAnalyzer creates an Analyzer with the given run settings.
func NewAnalyzer(cfg *config.Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Run computes the frontier dataset for a parsed price table.
func (a *Analyzer) Run(table *pricefeed.Table) (*Dataset, error) {
	series, err := BuildReturnSeries(table.Rows, table.Tickers)
	if err != nil {
		return nil, fmt.Errorf("build return series: %w", err)
	}
	logger.Info("ENGINE", fmt.Sprintf("%d usable return observations from %d raw rows",
		series.Observations(), table.RawRows))

	stats, err := ComputeAssetStats(series)
	if err != nil {
		return nil, fmt.Errorf("asset statistics: %w", err)
	}
	matrix, err := BuildCovarianceMatrix(series)
	if err != nil {
		return nil, fmt.Errorf("covariance matrix: %w", err)
	}

	expected := make([]float64, len(stats))
	for i, s := range stats {
		expected[i] = s.ExpectedReturn
	}

	enum := &Enumerator{
		Step:            a.cfg.GridStep,
		WeightTolerance: a.cfg.WeightTolerance,
		Workers:         a.cfg.Workers,
	}
	portfolios, err := enum.Enumerate(series.Tickers, expected, matrix)
	if err != nil {
		return nil, fmt.Errorf("enumerate portfolios: %w", err)
	}

	frontier := TraceFrontier(portfolios, a.cfg.FrontierEpsilon)
	logger.Success("ENGINE", fmt.Sprintf("%d portfolios enumerated, %d on the frontier",
		len(portfolios), len(frontier)))

	return &Dataset{
		Metadata: Metadata{
			Tickers:      series.Tickers,
			Observations: series.Observations(),
			RawRows:      table.RawRows,
		},
		Assets:            stats,
		Portfolios:        portfolios,
		EfficientFrontier: frontier,
	}, nil
}
