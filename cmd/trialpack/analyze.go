package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mbellard/trialpack/internal/dataset"
	"github.com/mbellard/trialpack/internal/fileutil"
	"github.com/mbellard/trialpack/internal/registry"
	"github.com/mbellard/trialpack/internal/stats"
)

// Output file names under the output directory.
const (
	processedCSV   = "processed_clinical_trials.csv"
	eligibilityCSV = "clinical_trials_with_eligibility.csv"
	reportJSON     = "analysis_results.json"
	equityJSON     = "equity_analysis_results.json"
)

// runAnalyze cleans the dataset, runs the statistical analysis, and writes
// the processed CSVs and JSON reports.
func runAnalyze(args []string, env *Environment) error {
	f, _, err := parseAnalyzeFlags(args, env)
	if err != nil {
		return err
	}
	cfg, err := loadProject(f.common)
	if err != nil {
		return err
	}
	log := env.logger(f.common.quiet, f.common.verbose)

	dataFile := f.data
	if dataFile == "" {
		dataFile = cfg.Paths.DataFile
	}
	if dataFile == "" {
		return fmt.Errorf("%w: set --data or paths.dataFile", ErrNoInput)
	}

	records, loadStats, err := dataset.LoadFile(dataFile)
	if err != nil {
		return err
	}
	log.Info("dataset loaded",
		"rows", loadStats.TotalRows,
		"duplicates", loadStats.Duplicates,
		"dropped", loadStats.Dropped,
		"kept", len(records))

	outDir := f.output
	if outDir == "" {
		outDir = cfg.Paths.OutputDir
	}
	if err := fileutil.EnsureDir(outDir); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	if err := dataset.WriteFile(filepath.Join(outDir, processedCSV), records, false); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	if f.fetchEligibility {
		limit := f.limit
		if limit <= 0 {
			limit = cfg.Analysis.EligibilityLimit
		}
		opts := []registry.Option{
			registry.WithDelay(cfg.Registry.RequestDelay()),
			registry.WithLogger(log),
		}
		if cfg.Registry.BaseURL != "" {
			opts = append(opts, registry.WithBaseURL(cfg.Registry.BaseURL))
		}
		client := registry.NewClient(opts...)
		log.Info("fetching eligibility criteria", "limit", limit)
		if err := client.Fill(context.Background(), records, limit); err != nil {
			return err
		}
		if err := dataset.WriteFile(filepath.Join(outDir, eligibilityCSV), records, true); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}

	report, err := stats.AnalyzeRatio(log, records, cfg.Analysis.ExpectedFemaleRatio)
	if err != nil {
		return err
	}
	if err := report.WriteJSON(filepath.Join(outDir, reportJSON)); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	if err := report.WriteEquityJSON(filepath.Join(outDir, equityJSON)); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	log.Info("analysis complete", "output", outDir, "trials", len(records))
	return nil
}
