package main

import (
	"fmt"
	"path/filepath"

	"github.com/mbellard/trialpack/internal/dataset"
	"github.com/mbellard/trialpack/internal/figures"
	"github.com/mbellard/trialpack/internal/fileutil"
	"github.com/mbellard/trialpack/internal/stats"
)

// runFigures recomputes the analysis aggregates from the processed CSV and
// renders the three publication charts.
func runFigures(args []string, env *Environment) error {
	f, _, err := parseFiguresFlags("figures", args, env)
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
		// Prefer the processed CSV from a prior analyze run.
		processed := filepath.Join(cfg.Paths.OutputDir, processedCSV)
		if fileutil.FileExists(processed) {
			dataFile = processed
		} else {
			dataFile = cfg.Paths.DataFile
		}
	}
	if dataFile == "" {
		return fmt.Errorf("%w: run analyze first or set --data", ErrNoInput)
	}

	records, _, err := dataset.LoadFile(dataFile)
	if err != nil {
		return err
	}
	report, err := stats.AnalyzeRatio(log, records, cfg.Analysis.ExpectedFemaleRatio)
	if err != nil {
		return err
	}

	dir := f.dir
	if dir == "" {
		dir = cfg.Paths.FiguresDir
	}
	paths, err := figures.GenerateAll(report, dir)
	if err != nil {
		return err
	}
	for _, path := range paths {
		log.Info("figure saved", "path", path)
	}
	return nil
}

// runTIFF converts previously rendered figures to print-resolution TIFF.
func runTIFF(args []string, env *Environment) error {
	f, _, err := parseFiguresFlags("tiff", args, env)
	if err != nil {
		return err
	}
	cfg, err := loadProject(f.common)
	if err != nil {
		return err
	}
	log := env.logger(f.common.quiet, f.common.verbose)

	dir := f.dir
	if dir == "" {
		dir = cfg.Paths.FiguresDir
	}
	paths, err := figures.ConvertAll(dir)
	if err != nil {
		return err
	}
	for _, path := range paths {
		log.Info("figure converted", "path", path)
	}
	return nil
}
