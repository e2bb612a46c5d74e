package engine

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// Enumerator walks the discretized weight simplex for exactly three assets
// and evaluates expected return and risk for every grid point.
type Enumerator struct {
	// Step is the weight increment between neighboring grid points.
	Step float64
	// WeightTolerance bounds floating-point residue: the derived third
	// weight may undershoot 0 by at most this much (then gets clamped),
	// and the final weight sum must land within it of 1.
	WeightTolerance float64
	// Workers caps concurrent grid-row evaluation; <= 1 runs sequentially.
	// Grid points share no mutable state, so rows can be evaluated
	// independently and concatenated in order.
	Workers int
}

// Enumerate produces the full triangular lattice of feasible long-only weight
// vectors (w ≥ 0, Σw = 1) at the configured step. The three-asset restriction
// is a documented limitation; any other count is a caller contract violation.
func (e *Enumerator) Enumerate(tickers []string, expected []float64, cov *CovarianceMatrix) ([]PortfolioPoint, error) {
	if len(tickers) != 3 {
		return nil, fmt.Errorf("%w: got %d", ErrAssetCount, len(tickers))
	}
	if len(expected) != len(tickers) {
		return nil, fmt.Errorf("expected returns for %d assets, got %d", len(tickers), len(expected))
	}
	if len(cov.Data) != len(tickers) {
		return nil, fmt.Errorf("covariance matrix is %dx%d, want %dx%d",
			len(cov.Data), len(cov.Data), len(tickers), len(tickers))
	}

	steps := gridSteps(1.0, e.Step)
	rows := make([][]PortfolioPoint, steps+1)

	if e.Workers > 1 {
		var g errgroup.Group
		g.SetLimit(e.Workers)
		for i := 0; i <= steps; i++ {
			g.Go(func() error {
				rows[i] = e.enumerateRow(i, tickers, expected, cov)
				return nil
			})
		}
		// Row evaluation cannot fail; Wait only joins the workers.
		g.Wait()
	} else {
		for i := 0; i <= steps; i++ {
			rows[i] = e.enumerateRow(i, tickers, expected, cov)
		}
	}

	var points []PortfolioPoint
	for _, row := range rows {
		points = append(points, row...)
	}
	return points, nil
}

// enumerateRow evaluates every grid point with first weight i·step.
func (e *Enumerator) enumerateRow(i int, tickers []string, expected []float64, cov *CovarianceMatrix) []PortfolioPoint {
	w1 := float64(i) * e.Step
	inner := gridSteps(1-w1, e.Step)

	points := make([]PortfolioPoint, 0, inner+1)
	for j := 0; j <= inner; j++ {
		w2 := float64(j) * e.Step
		w3 := 1.0 - w1 - w2
		if w3 < -e.WeightTolerance {
			continue
		}
		weights := [3]float64{w1, w2, math.Max(w3, 0.0)}
		if math.Abs(weights[0]+weights[1]+weights[2]-1.0) > e.WeightTolerance {
			continue
		}

		var ret float64
		for k, w := range weights {
			ret += w * expected[k]
		}
		// Negative epsilon from the quadratic form would NaN the sqrt.
		risk := math.Sqrt(math.Max(portfolioVariance(weights[:], cov), 0.0))

		weightMap := make(map[string]float64, len(tickers))
		for k, t := range tickers {
			weightMap[t] = weights[k]
		}
		points = append(points, PortfolioPoint{
			Weights:        weightMap,
			ExpectedReturn: ret,
			Risk:           risk,
		})
	}
	return points
}

// gridSteps counts step increments that fit in span, rounding to the nearest
// integer: a truncating division undershoots whenever span/step lands just
// below a whole number (0.94/0.02 evaluates to 46.999...) and would drop the
// inclusive endpoint. Overshoot is harmless; the w3 tolerance guard filters
// any point past the simplex edge.
func gridSteps(span, step float64) int {
	return int(math.Floor(span/step + 0.5))
}

// portfolioVariance evaluates the quadratic form Σi Σj wi·wj·Cov(i,j) over
// the full matrix.
func portfolioVariance(weights []float64, cov *CovarianceMatrix) float64 {
	var variance float64
	for i, wi := range weights {
		for j, wj := range weights {
			variance += wi * wj * cov.At(i, j)
		}
	}
	return variance
}
