// Package stats implements the statistical layer of the trial analysis:
// frequency tables, chi-square tests of independence, logistic regression
// by iteratively reweighted least squares, and the sex-representation
// equity comparison.
package stats

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/mbellard/trialpack/internal/dataset"
)

// Report is the full analysis output serialized to analysis_results.json.
type Report struct {
	SexDistribution map[string]int     `json:"sex_distribution"`
	SexPercentages  map[string]float64 `json:"sex_percentages"`

	DiseaseSexCounts         map[string]map[string]int     `json:"disease_sex_counts"`
	DiseaseSexPercentages    map[string]map[string]float64 `json:"disease_sex_percentages"`
	FemaleInclusionByDisease map[string]float64            `json:"female_inclusion_by_disease"`

	PhaseSexCounts         map[string]map[string]int     `json:"phase_sex_counts"`
	PhaseSexPercentages    map[string]map[string]float64 `json:"phase_sex_percentages"`
	FemaleInclusionByPhase map[string]float64            `json:"female_inclusion_by_phase"`

	GIISexCounts      map[string]map[string]int     `json:"gii_sex_counts,omitempty"`
	GIISexPercentages map[string]map[string]float64 `json:"gii_sex_percentages,omitempty"`

	CountryDistribution map[string]int `json:"country_distribution"`

	Summary Summary `json:"summary"`

	ChiSquare          *ChiSquareResult        `json:"chi2_test,omitempty"`
	Logistic           *LogitResult            `json:"logistic_regression,omitempty"`
	DiseaseInteraction *LogitResult            `json:"interaction_model,omitempty"`
	PhaseInteraction   *LogitResult            `json:"phase_model,omitempty"`
	Equity             map[string]EquityResult `json:"equity_analysis"`
}

// Summary holds the headline descriptive statistics.
type Summary struct {
	TotalTrials          int     `json:"total_trials"`
	FemaleOnlyTrials     int     `json:"female_only_trials"`
	MaleOnlyTrials       int     `json:"male_only_trials"`
	BothSexTrials        int     `json:"both_sex_trials"`
	AvgGII               float64 `json:"avg_gii"`
	CountriesRepresented int     `json:"countries_represented"`
}

// Analyze runs the full statistical pipeline over cleaned records using
// the population female share for the equity tests. Model fitting
// failures are logged and leave the corresponding report field empty
// rather than aborting the run.
func Analyze(log *slog.Logger, records []dataset.Record) (*Report, error) {
	return AnalyzeRatio(log, records, ExpectedFemaleShare)
}

// AnalyzeRatio is Analyze with a caller-chosen expected female ratio.
func AnalyzeRatio(log *slog.Logger, records []dataset.Record, expectedRatio float64) (*Report, error) {
	if len(records) == 0 {
		return nil, dataset.ErrEmptyData
	}

	sexes := make([]string, len(records))
	diseases := make([]string, len(records))
	phases := make([]string, len(records))
	giis := make([]string, len(records))
	countries := make(map[string]int)
	var giiSum float64
	for i, rec := range records {
		sexes[i] = rec.SexCategory
		diseases[i] = rec.DiseaseCategory
		phases[i] = rec.StandardizedPhase
		giis[i] = rec.GIICategory
		countries[rec.Country]++
		giiSum += rec.GII
	}

	report := &Report{
		CountryDistribution: countries,
		Equity:              EquityByDisease(records, expectedRatio),
	}

	total := len(records)
	sexCounts := make(map[string]int)
	for _, category := range sexes {
		sexCounts[category]++
	}
	report.SexDistribution = sexCounts
	report.SexPercentages = make(map[string]float64, len(sexCounts))
	for category, count := range sexCounts {
		report.SexPercentages[category] = round1(float64(count) / float64(total) * 100)
	}

	diseaseSex := NewCrosstab(diseases, sexes)
	report.DiseaseSexCounts = diseaseSex.CountMap()
	report.DiseaseSexPercentages = roundCells(diseaseSex.RowPercentages())
	report.FemaleInclusionByDisease = inclusionRates(diseaseSex)

	phaseSex := NewCrosstab(phases, sexes)
	report.PhaseSexCounts = phaseSex.CountMap()
	report.PhaseSexPercentages = roundCells(phaseSex.RowPercentages())
	report.FemaleInclusionByPhase = inclusionRates(phaseSex)

	giiSex := NewCrosstab(giis, sexes)
	if len(giiSex.Rows) > 1 {
		report.GIISexCounts = giiSex.CountMap()
		report.GIISexPercentages = roundCells(giiSex.RowPercentages())

		if test, err := ChiSquareContingency(giiSex.Matrix()); err != nil {
			log.Warn("chi-square test skipped", "error", err)
		} else {
			report.ChiSquare = &test
		}
	} else {
		log.Warn("only one inequality tertile present, GII association skipped")
	}

	report.Summary = Summary{
		TotalTrials:          total,
		FemaleOnlyTrials:     sexCounts[dataset.SexFemaleOnly],
		MaleOnlyTrials:       sexCounts[dataset.SexMaleOnly],
		BothSexTrials:        sexCounts[dataset.SexBoth],
		AvgGII:               giiSum / float64(total),
		CountriesRepresented: len(countries),
	}

	if model, err := FitFemaleInclusion(records); err != nil {
		log.Warn("base regression failed", "error", err)
	} else {
		report.Logistic = &model
	}
	if model, err := FitDiseaseInteraction(records); err != nil {
		log.Warn("disease interaction model failed", "error", err)
	} else {
		report.DiseaseInteraction = &model
	}
	if model, err := FitPhaseInteraction(records); err != nil {
		log.Warn("phase interaction model failed", "error", err)
	} else {
		report.PhaseInteraction = &model
	}

	return report, nil
}

// WriteJSON writes the report indented to a file.
func (r *Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// WriteEquityJSON writes only the per-disease equity results to a file,
// keyed by disease category.
func (r *Report) WriteEquityJSON(path string) error {
	data, err := json.MarshalIndent(r.Equity, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding equity results: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing equity results: %w", err)
	}
	return nil
}

// inclusionRates computes, per row category, the percentage of trials
// eligible to female participants (female-only plus both-sex trials).
func inclusionRates(ct *Crosstab) map[string]float64 {
	out := make(map[string]float64, len(ct.Rows))
	for _, row := range ct.Rows {
		total := ct.RowTotal(row)
		if total == 0 {
			out[row] = 0
			continue
		}
		female := ct.Count(row, dataset.SexFemaleOnly) + ct.Count(row, dataset.SexBoth)
		out[row] = round1(float64(female) / float64(total) * 100)
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func roundCells(cells map[string]map[string]float64) map[string]map[string]float64 {
	for _, row := range cells {
		for k, v := range row {
			row[k] = round1(v)
		}
	}
	return cells
}
