package engine

import (
	"math"
	"sort"
)

// TraceFrontier filters enumerated portfolios down to the efficient frontier:
// sorted ascending by risk, a point survives only when its expected return
// beats everything at lower risk by more than epsilon. The result is strictly
// increasing in both risk and return, with no dominated or duplicate-return
// points. The frontier is an empirical envelope over the grid, accurate only
// to the grid's resolution.
func TraceFrontier(points []PortfolioPoint, epsilon float64) []PortfolioPoint {
	sorted := make([]PortfolioPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Risk < sorted[j].Risk
	})

	frontier := make([]PortfolioPoint, 0)
	maxReturn := math.Inf(-1)
	for _, p := range sorted {
		if p.ExpectedReturn > maxReturn+epsilon {
			frontier = append(frontier, p)
			maxReturn = p.ExpectedReturn
		}
	}
	return frontier
}
