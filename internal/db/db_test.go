package db

import (
	"database/sql"
	"math"
	"testing"

	"frontiergen/internal/engine"

	_ "modernc.org/sqlite"
)

// openTestDB opens an in-memory SQLite DB and runs migrations (for testing only).
func openTestDB(t *testing.T) *DB {
	t.Helper()
	sqlDB, err := sql.Open("sqlite", ":memory:?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	d := &DB{sql: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		t.Fatalf("migrate: %v", err)
	}
	return d
}

func testDataset() *engine.Dataset {
	return &engine.Dataset{
		Metadata: engine.Metadata{
			Tickers:      []string{"AAA", "BBB", "CCC"},
			Observations: 29,
			RawRows:      30,
		},
		Assets: []engine.AssetStats{
			{Ticker: "AAA", ExpectedReturn: 0.005, Risk: 0.02},
			{Ticker: "BBB", ExpectedReturn: 0.001, Risk: 0.015},
			{Ticker: "CCC", ExpectedReturn: 0.0045, Risk: 0.011},
		},
		Portfolios: make([]engine.PortfolioPoint, 1326),
		EfficientFrontier: []engine.PortfolioPoint{
			{Weights: map[string]float64{"AAA": 0, "BBB": 0.1, "CCC": 0.9}, ExpectedReturn: 0.004, Risk: 0.010},
			{Weights: map[string]float64{"AAA": 0.3, "BBB": 0, "CCC": 0.7}, ExpectedReturn: 0.0047, Risk: 0.012},
		},
	}
}

func TestDB_SaveRunRoundTrip(t *testing.T) {
	d := openTestDB(t)
	defer d.Close()

	runID, err := d.SaveRun("prices.csv", 0.02, testDataset())
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if runID == 0 {
		t.Fatal("SaveRun returned run ID 0")
	}

	runs, err := d.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("len(runs) = %d, want 1", len(runs))
	}
	r := runs[0]
	if r.ID != runID {
		t.Errorf("run ID = %d, want %d", r.ID, runID)
	}
	if r.Tickers != "AAA,BBB,CCC" {
		t.Errorf("Tickers = %q, want AAA,BBB,CCC", r.Tickers)
	}
	if r.Observations != 29 || r.RawRows != 30 {
		t.Errorf("counts = (%d, %d), want (29, 30)", r.Observations, r.RawRows)
	}
	if r.GridStep != 0.02 {
		t.Errorf("GridStep = %v, want 0.02", r.GridStep)
	}
	if r.Portfolios != 1326 || r.FrontierPoints != 2 {
		t.Errorf("point counts = (%d, %d), want (1326, 2)", r.Portfolios, r.FrontierPoints)
	}

	assets, err := d.RunAssets(runID)
	if err != nil {
		t.Fatalf("RunAssets: %v", err)
	}
	if len(assets) != 3 {
		t.Fatalf("len(assets) = %d, want 3", len(assets))
	}
	if assets[0].Ticker != "AAA" || math.Abs(assets[0].Risk-0.02) > 1e-12 {
		t.Errorf("assets[0] = %+v, want AAA with risk 0.02", assets[0])
	}

	frontier, err := d.RunFrontier(runID)
	if err != nil {
		t.Fatalf("RunFrontier: %v", err)
	}
	if len(frontier) != 2 {
		t.Fatalf("len(frontier) = %d, want 2", len(frontier))
	}
	// Stored in ascending risk order, weights survive the JSON round trip.
	if frontier[0].Risk > frontier[1].Risk {
		t.Error("frontier not in ascending risk order")
	}
	if math.Abs(frontier[1].Weights["AAA"]-0.3) > 1e-12 {
		t.Errorf("frontier[1] AAA weight = %v, want 0.3", frontier[1].Weights["AAA"])
	}
}

func TestDB_RecentRunsOrderAndLimit(t *testing.T) {
	d := openTestDB(t)
	defer d.Close()

	ds := testDataset()
	for i := 0; i < 5; i++ {
		if _, err := d.SaveRun("prices.csv", 0.02, ds); err != nil {
			t.Fatalf("SaveRun %d: %v", i, err)
		}
	}

	runs, err := d.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("len(runs) = %d, want 3", len(runs))
	}
	for i := 1; i < len(runs); i++ {
		if runs[i].ID >= runs[i-1].ID {
			t.Errorf("runs not newest-first: %d then %d", runs[i-1].ID, runs[i].ID)
		}
	}
}

func TestDB_EmptyQueries(t *testing.T) {
	d := openTestDB(t)
	defer d.Close()

	runs, err := d.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("len(runs) = %d, want 0", len(runs))
	}

	frontier, err := d.RunFrontier(42)
	if err != nil {
		t.Fatalf("RunFrontier: %v", err)
	}
	if len(frontier) != 0 {
		t.Errorf("len(frontier) = %d, want 0", len(frontier))
	}
}
