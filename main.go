package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"frontiergen/internal/api"
	"frontiergen/internal/config"
	"frontiergen/internal/db"
	"frontiergen/internal/engine"
	"frontiergen/internal/export"
	"frontiergen/internal/logger"
	"frontiergen/internal/pricefeed"
)

var version = "dev"

func main() {
	csvPath := flag.String("csv", "", "input price table CSV (yfinance multi-header layout)")
	configPath := flag.String("config", "", "YAML config file")
	outPath := flag.String("out", "", "JSON dataset output path")
	chartPath := flag.String("chart", "", "optional PNG chart output path")
	step := flag.Float64("step", 0, "grid step override (e.g. 0.02)")
	serve := flag.Bool("serve", false, "serve the dataset over HTTP after computing")
	port := flag.Int("port", 0, "HTTP viewer port")
	flag.Parse()

	logger.Banner(version)

	// Optional .env file; absence is fine.
	godotenv.Load()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			logger.Error("CONFIG", fmt.Sprintf("Load failed: %v", err))
			os.Exit(1)
		}
		cfg = loaded
	}
	if v := os.Getenv("FRONTIERGEN_CSV"); v != "" && cfg.CSVPath == "" {
		cfg.CSVPath = v
	}
	if *csvPath != "" {
		cfg.CSVPath = *csvPath
	}
	if *outPath != "" {
		cfg.OutputPath = *outPath
	}
	if *chartPath != "" {
		cfg.ChartPath = *chartPath
	}
	if *step != 0 {
		cfg.GridStep = *step
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("CONFIG", err.Error())
		os.Exit(1)
	}
	if cfg.CSVPath == "" {
		logger.Error("CONFIG", "no input price table given (-csv or csv_path in config)")
		os.Exit(1)
	}

	table, err := pricefeed.ReadFile(cfg.CSVPath)
	if err != nil {
		logger.Error("CSV", fmt.Sprintf("Read failed: %v", err))
		os.Exit(1)
	}
	logger.Info("CSV", fmt.Sprintf("%d tickers, %d rows from %s",
		len(table.Tickers), table.RawRows, cfg.CSVPath))

	dataset, err := engine.NewAnalyzer(cfg).Run(table)
	if err != nil {
		logger.Error("ENGINE", fmt.Sprintf("Computation failed: %v", err))
		os.Exit(1)
	}

	logger.Section("Results")
	logger.Stats("Observations", dataset.Metadata.Observations)
	logger.Stats("Portfolios", len(dataset.Portfolios))
	logger.Stats("Frontier points", len(dataset.EfficientFrontier))

	if err := export.WriteJSON(cfg.OutputPath, dataset); err != nil {
		logger.Error("OUT", fmt.Sprintf("Write failed: %v", err))
		os.Exit(1)
	}
	logger.Success("OUT", fmt.Sprintf("Dataset written to %s", cfg.OutputPath))

	if cfg.ChartPath != "" {
		if err := export.WriteChart(cfg.ChartPath, dataset); err != nil {
			logger.Error("CHART", fmt.Sprintf("Render failed: %v", err))
			os.Exit(1)
		}
		logger.Success("CHART", fmt.Sprintf("Chart written to %s", cfg.ChartPath))
	}

	// Run history is auxiliary; the dataset is already on disk, so database
	// trouble only degrades the run, never fails it.
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("DB", fmt.Sprintf("Failed to open database, run not recorded: %v", err))
	} else {
		defer database.Close()
		if _, err := database.SaveRun(cfg.CSVPath, cfg.GridStep, dataset); err != nil {
			logger.Warn("DB", fmt.Sprintf("Run not recorded: %v", err))
		}
	}

	if !*serve {
		return
	}

	srv := api.NewServer(cfg, database)
	srv.SetDataset(dataset)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	logger.Info("API", fmt.Sprintf("Serving on http://%s", addr))
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		logger.Error("API", fmt.Sprintf("Failed: %v", err))
		os.Exit(1)
	}
}
