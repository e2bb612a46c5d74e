package db

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"frontiergen/internal/engine"
)

// RunSummary is one line of the run-history listing.
type RunSummary struct {
	ID             int64   `json:"id"`
	Timestamp      string  `json:"timestamp"`
	CSVPath        string  `json:"csv_path"`
	Tickers        string  `json:"tickers"` // comma-joined canonical order
	Observations   int     `json:"observations"`
	RawRows        int     `json:"raw_rows"`
	GridStep       float64 `json:"grid_step"`
	Portfolios     int     `json:"portfolios"`
	FrontierPoints int     `json:"frontier_points"`
}

// SaveRun records a completed computation: summary row, per-asset stats, and
// the frontier points (the full grid is not persisted; it is cheap to
// recompute and large to store).
func (d *DB) SaveRun(csvPath string, gridStep float64, ds *engine.Dataset) (int64, error) {
	tx, err := d.sql.Begin()
	if err != nil {
		return 0, fmt.Errorf("save run: begin tx: %w", err)
	}
	defer tx.Rollback()

	tickers := strings.Join(ds.Metadata.Tickers, ",")

	res, err := tx.Exec(`INSERT INTO run_history
		(timestamp, csv_path, tickers, observations, raw_rows, grid_step, portfolios, frontier_points)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().UTC().Format(time.RFC3339), csvPath, tickers,
		ds.Metadata.Observations, ds.Metadata.RawRows, gridStep,
		len(ds.Portfolios), len(ds.EfficientFrontier))
	if err != nil {
		return 0, fmt.Errorf("save run: insert history: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("save run: last insert id: %w", err)
	}

	assetStmt, err := tx.Prepare("INSERT INTO run_assets (run_id, ticker, expected_return, risk) VALUES (?,?,?,?)")
	if err != nil {
		return 0, fmt.Errorf("save run: prepare assets: %w", err)
	}
	defer assetStmt.Close()
	for _, a := range ds.Assets {
		if _, err := assetStmt.Exec(runID, a.Ticker, a.ExpectedReturn, a.Risk); err != nil {
			return 0, fmt.Errorf("save run: insert asset %s: %w", a.Ticker, err)
		}
	}

	pointStmt, err := tx.Prepare("INSERT INTO run_frontier (run_id, position, risk, expected_return, weights) VALUES (?,?,?,?,?)")
	if err != nil {
		return 0, fmt.Errorf("save run: prepare frontier: %w", err)
	}
	defer pointStmt.Close()
	for i, p := range ds.EfficientFrontier {
		weights, err := json.Marshal(p.Weights)
		if err != nil {
			return 0, fmt.Errorf("save run: marshal weights: %w", err)
		}
		if _, err := pointStmt.Exec(runID, i, p.Risk, p.ExpectedReturn, string(weights)); err != nil {
			return 0, fmt.Errorf("save run: insert frontier point %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("save run: commit: %w", err)
	}
	return runID, nil
}

// RecentRuns lists the newest runs first.
func (d *DB) RecentRuns(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.sql.Query(`SELECT id, timestamp, csv_path, tickers, observations, raw_rows,
		grid_step, portfolios, frontier_points
		FROM run_history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.CSVPath, &r.Tickers, &r.Observations,
			&r.RawRows, &r.GridStep, &r.Portfolios, &r.FrontierPoints); err != nil {
			return nil, fmt.Errorf("recent runs: scan: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunAssets returns the stored per-asset statistics of a run.
func (d *DB) RunAssets(runID int64) ([]engine.AssetStats, error) {
	rows, err := d.sql.Query("SELECT ticker, expected_return, risk FROM run_assets WHERE run_id=? ORDER BY ticker", runID)
	if err != nil {
		return nil, fmt.Errorf("run assets: %w", err)
	}
	defer rows.Close()

	var stats []engine.AssetStats
	for rows.Next() {
		var s engine.AssetStats
		if err := rows.Scan(&s.Ticker, &s.ExpectedReturn, &s.Risk); err != nil {
			return nil, fmt.Errorf("run assets: scan: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// RunFrontier returns a run's stored frontier in ascending risk order.
func (d *DB) RunFrontier(runID int64) ([]engine.PortfolioPoint, error) {
	rows, err := d.sql.Query("SELECT risk, expected_return, weights FROM run_frontier WHERE run_id=? ORDER BY position", runID)
	if err != nil {
		return nil, fmt.Errorf("run frontier: %w", err)
	}
	defer rows.Close()

	var points []engine.PortfolioPoint
	for rows.Next() {
		var p engine.PortfolioPoint
		var weights string
		if err := rows.Scan(&p.Risk, &p.ExpectedReturn, &weights); err != nil {
			return nil, fmt.Errorf("run frontier: scan: %w", err)
		}
		if err := json.Unmarshal([]byte(weights), &p.Weights); err != nil {
			return nil, fmt.Errorf("run frontier: weights: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
