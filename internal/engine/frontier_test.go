package engine

import (
	"testing"
)

func point(risk, ret float64) PortfolioPoint {
	return PortfolioPoint{Risk: risk, ExpectedReturn: ret}
}

func TestTraceFrontier_DropsDominatedPoints(t *testing.T) {
	points := []PortfolioPoint{
		point(0.30, 0.08),
		point(0.10, 0.05),
		point(0.20, 0.04), // dominated: more risk, less return than (0.10, 0.05)
		point(0.40, 0.08), // duplicate return at higher risk
		point(0.50, 0.09),
	}

	frontier := TraceFrontier(points, 1e-12)

	want := []PortfolioPoint{
		point(0.10, 0.05),
		point(0.30, 0.08),
		point(0.50, 0.09),
	}
	if len(frontier) != len(want) {
		t.Fatalf("len(frontier) = %d, want %d: %+v", len(frontier), len(want), frontier)
	}
	for i := range want {
		if frontier[i].Risk != want[i].Risk || frontier[i].ExpectedReturn != want[i].ExpectedReturn {
			t.Errorf("frontier[%d] = (%v, %v), want (%v, %v)",
				i, frontier[i].Risk, frontier[i].ExpectedReturn, want[i].Risk, want[i].ExpectedReturn)
		}
	}
}

func TestTraceFrontier_StrictlyIncreasing(t *testing.T) {
	// Run the sweep over a real enumerated grid and verify the frontier's
	// structural invariants against the full point set.
	e := defaultEnumerator()
	expected := []float64{0.001, 0.002, 0.0005}
	points, err := e.Enumerate(threeTickers, expected, testMatrix(threeTickers, threeCov))
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}

	frontier := TraceFrontier(points, 1e-12)
	if len(frontier) == 0 {
		t.Fatal("frontier is empty")
	}

	for i := 1; i < len(frontier); i++ {
		if frontier[i].Risk <= frontier[i-1].Risk {
			t.Errorf("frontier risk not strictly increasing at %d: %v then %v",
				i, frontier[i-1].Risk, frontier[i].Risk)
		}
		if frontier[i].ExpectedReturn <= frontier[i-1].ExpectedReturn {
			t.Errorf("frontier return not strictly increasing at %d: %v then %v",
				i, frontier[i-1].ExpectedReturn, frontier[i].ExpectedReturn)
		}
	}

	// No frontier point may be dominated by any enumerated point.
	for _, f := range frontier {
		for _, p := range points {
			if p.Risk <= f.Risk && p.ExpectedReturn >= f.ExpectedReturn &&
				(p.Risk < f.Risk || p.ExpectedReturn > f.ExpectedReturn+1e-12) {
				t.Fatalf("frontier point (%v, %v) dominated by (%v, %v)",
					f.Risk, f.ExpectedReturn, p.Risk, p.ExpectedReturn)
			}
		}
	}

	// Every grid point at the frontier's minimum risk returns no more than
	// the frontier's first point.
	minRisk := frontier[0]
	for _, p := range points {
		if p.Risk == minRisk.Risk && p.ExpectedReturn > minRisk.ExpectedReturn+1e-12 {
			t.Errorf("grid point at min risk %v returns %v, above frontier's %v",
				p.Risk, p.ExpectedReturn, minRisk.ExpectedReturn)
		}
	}
}

func TestTraceFrontier_EpsilonSuppressesNoise(t *testing.T) {
	points := []PortfolioPoint{
		point(0.10, 0.05),
		point(0.20, 0.05+5e-13), // inside epsilon: not a strict improvement
		point(0.30, 0.05+2e-12), // beyond epsilon: kept
	}
	frontier := TraceFrontier(points, 1e-12)
	if len(frontier) != 2 {
		t.Fatalf("len(frontier) = %d, want 2: %+v", len(frontier), frontier)
	}
	if frontier[1].Risk != 0.30 {
		t.Errorf("frontier[1].Risk = %v, want 0.30", frontier[1].Risk)
	}
}

func TestTraceFrontier_Degenerate(t *testing.T) {
	if got := TraceFrontier(nil, 1e-12); len(got) != 0 {
		t.Errorf("TraceFrontier(nil) = %+v, want empty", got)
	}

	single := []PortfolioPoint{point(0.1, -0.5)}
	got := TraceFrontier(single, 1e-12)
	if len(got) != 1 {
		t.Fatalf("single point frontier has %d points, want 1", len(got))
	}
	// A negative return still beats the -Inf running maximum.
	if got[0].ExpectedReturn != -0.5 {
		t.Errorf("frontier[0].ExpectedReturn = %v, want -0.5", got[0].ExpectedReturn)
	}

	// All-identical points collapse to one.
	same := []PortfolioPoint{point(0.2, 0.01), point(0.2, 0.01), point(0.2, 0.01)}
	if got := TraceFrontier(same, 1e-12); len(got) != 1 {
		t.Errorf("identical points frontier has %d points, want 1", len(got))
	}
}
