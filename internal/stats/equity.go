package stats

import (
	"github.com/mbellard/trialpack/internal/dataset"
)

// ExpectedFemaleShare is the female share of the general population the
// equity analysis compares against.
const ExpectedFemaleShare = 0.508

// EquityResult compares observed female eligibility in one disease
// category against the population expectation.
type EquityResult struct {
	TotalTrials          int     `json:"total_trials"`
	BothSexTrials        int     `json:"both_sex_trials"`
	FemaleOnlyTrials     int     `json:"female_only_trials"`
	MaleOnlyTrials       int     `json:"male_only_trials"`
	PotentialFemaleRatio float64 `json:"potential_female_ratio"`
	ExpectedFemaleRatio  float64 `json:"expected_female_ratio"`
	Chi2Statistic        float64 `json:"chi2_statistic"`
	PValue               float64 `json:"p_value"`
	Significant          bool    `json:"significant_difference"`
	Direction            string  `json:"direction"`
}

// EquityByDisease runs the sex-representation equity comparison for every
// disease category. Both-sex trials contribute two potential participants,
// single-sex trials one; observed female share counts female-only trials
// plus an assumed equal split of both-sex trials. Categories whose
// comparison degenerates (for example all trials of one kind) are skipped.
func EquityByDisease(records []dataset.Record, expectedRatio float64) map[string]EquityResult {
	byDisease := make(map[string][]dataset.Record)
	for _, rec := range records {
		byDisease[rec.DiseaseCategory] = append(byDisease[rec.DiseaseCategory], rec)
	}

	out := make(map[string]EquityResult, len(byDisease))
	for disease, trials := range byDisease {
		var bothSex, femaleOnly, maleOnly int
		for _, rec := range trials {
			switch rec.SexCategory {
			case dataset.SexBoth:
				bothSex++
			case dataset.SexFemaleOnly:
				femaleOnly++
			case dataset.SexMaleOnly:
				maleOnly++
			}
		}

		totalPotential := float64(bothSex*2 + femaleOnly + maleOnly)
		if totalPotential == 0 {
			continue
		}
		expectedFemale := totalPotential * expectedRatio
		observedFemale := float64(bothSex + femaleOnly)

		table := [][]float64{
			{observedFemale, totalPotential - observedFemale},
			{expectedFemale, totalPotential - expectedFemale},
		}
		test, err := ChiSquareContingency(table)
		if err != nil {
			continue
		}

		direction := "equal"
		if observedFemale > expectedFemale {
			direction = "over-representation"
		} else if observedFemale < expectedFemale {
			direction = "under-representation"
		}

		out[disease] = EquityResult{
			TotalTrials:          len(trials),
			BothSexTrials:        bothSex,
			FemaleOnlyTrials:     femaleOnly,
			MaleOnlyTrials:       maleOnly,
			PotentialFemaleRatio: observedFemale / totalPotential,
			ExpectedFemaleRatio:  expectedRatio,
			Chi2Statistic:        test.Statistic,
			PValue:               test.PValue,
			Significant:          test.PValue < 0.05,
			Direction:            direction,
		}
	}
	return out
}
