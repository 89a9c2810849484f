package stats

import (
	"math"
	"testing"

	"github.com/mbellard/trialpack/internal/dataset"
)

func equityRecords(disease string, both, femaleOnly, maleOnly int) []dataset.Record {
	var out []dataset.Record
	add := func(category string, n int) {
		for i := 0; i < n; i++ {
			out = append(out, dataset.Record{DiseaseCategory: disease, SexCategory: category})
		}
	}
	add(dataset.SexBoth, both)
	add(dataset.SexFemaleOnly, femaleOnly)
	add(dataset.SexMaleOnly, maleOnly)
	return out
}

func TestEquityByDisease(t *testing.T) {
	t.Parallel()

	records := equityRecords("Cardiovascular", 50, 5, 45)
	results := EquityByDisease(records, ExpectedFemaleShare)

	result, ok := results["Cardiovascular"]
	if !ok {
		t.Fatal("no result for Cardiovascular")
	}

	if result.TotalTrials != 100 {
		t.Errorf("TotalTrials = %d, want 100", result.TotalTrials)
	}
	if result.BothSexTrials != 50 || result.FemaleOnlyTrials != 5 || result.MaleOnlyTrials != 45 {
		t.Errorf("counts = %+v", result)
	}

	// Potential participants: 50*2 + 5 + 45 = 150; observed female 55.
	wantRatio := 55.0 / 150.0
	if math.Abs(result.PotentialFemaleRatio-wantRatio) > 1e-9 {
		t.Errorf("PotentialFemaleRatio = %g, want %g", result.PotentialFemaleRatio, wantRatio)
	}
	if result.ExpectedFemaleRatio != ExpectedFemaleShare {
		t.Errorf("ExpectedFemaleRatio = %g", result.ExpectedFemaleRatio)
	}
	if result.Direction != "under-representation" {
		t.Errorf("Direction = %q, want under-representation", result.Direction)
	}
	if result.Significant != (result.PValue < 0.05) {
		t.Error("Significant flag inconsistent with p-value")
	}
}

func TestEquityByDiseaseOverRepresentation(t *testing.T) {
	t.Parallel()

	// All female-only: observed ratio 1.0 against 0.508 expectation.
	records := equityRecords("Cancer", 0, 80, 20)
	result := EquityByDisease(records, ExpectedFemaleShare)["Cancer"]

	if result.Direction != "over-representation" {
		t.Errorf("Direction = %q, want over-representation", result.Direction)
	}
	if result.PotentialFemaleRatio != 0.8 {
		t.Errorf("PotentialFemaleRatio = %g, want 0.8", result.PotentialFemaleRatio)
	}
}

func TestEquityByDiseaseSkipsEmpty(t *testing.T) {
	t.Parallel()

	records := []dataset.Record{
		{DiseaseCategory: "Other", SexCategory: dataset.Unknown},
	}
	if results := EquityByDisease(records, ExpectedFemaleShare); len(results) != 0 {
		t.Errorf("expected no results for unknown-only category, got %v", results)
	}
}
