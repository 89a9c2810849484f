package stats

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/mbellard/trialpack/internal/dataset"
)

// Model term names shared with the JSON report.
const (
	TermIntercept = "const"
	TermGII       = "gii"
)

// FitFemaleInclusion fits the base model: female inclusion against the
// gender inequality index. Records whose sex category gives no outcome are
// excluded.
func FitFemaleInclusion(records []dataset.Record) (LogitResult, error) {
	var (
		gii []float64
		y   []float64
	)
	for _, rec := range records {
		outcome, ok := dataset.FemaleInclusion(rec)
		if !ok {
			continue
		}
		gii = append(gii, rec.GII)
		y = append(y, outcome)
	}
	if len(y) == 0 {
		return LogitResult{}, ErrNoObservations
	}

	x := mat.NewDense(len(y), 2, nil)
	for i, v := range gii {
		x.Set(i, 0, 1)
		x.Set(i, 1, v)
	}
	return Logit([]string{TermIntercept, TermGII}, x, y)
}

// FitDiseaseInteraction fits female inclusion against GII, disease
// dummies, and disease-by-GII interaction terms. The alphabetically first
// disease category is the reference level.
func FitDiseaseInteraction(records []dataset.Record) (LogitResult, error) {
	return fitInteraction(records, "disease", func(rec dataset.Record) (string, bool) {
		return rec.DiseaseCategory, true
	})
}

// FitPhaseInteraction is the same model with standardized trial phase as
// the moderator. Unknown phases are excluded.
func FitPhaseInteraction(records []dataset.Record) (LogitResult, error) {
	return fitInteraction(records, "phase", func(rec dataset.Record) (string, bool) {
		return rec.StandardizedPhase, rec.StandardizedPhase != dataset.Unknown
	})
}

// fitInteraction builds the dummy-coded interaction design shared by the
// disease and phase models.
func fitInteraction(records []dataset.Record, prefix string, level func(dataset.Record) (string, bool)) (LogitResult, error) {
	type obs struct {
		gii   float64
		level string
		y     float64
	}

	var included []obs
	levelSet := make(map[string]bool)
	for _, rec := range records {
		outcome, ok := dataset.FemaleInclusion(rec)
		if !ok {
			continue
		}
		lv, ok := level(rec)
		if !ok {
			continue
		}
		included = append(included, obs{gii: rec.GII, level: lv, y: outcome})
		levelSet[lv] = true
	}
	if len(included) == 0 {
		return LogitResult{}, ErrNoObservations
	}

	levels := make([]string, 0, len(levelSet))
	for lv := range levelSet {
		levels = append(levels, lv)
	}
	sort.Strings(levels)
	// First level is the reference.
	dummies := levels[1:]

	names := []string{TermIntercept, TermGII}
	for _, lv := range dummies {
		names = append(names, prefix+"_"+lv)
	}
	for _, lv := range dummies {
		names = append(names, prefix+"_"+lv+"_x_GII")
	}

	p := 2 + 2*len(dummies)
	x := mat.NewDense(len(included), p, nil)
	y := make([]float64, len(included))
	for i, ob := range included {
		x.Set(i, 0, 1)
		x.Set(i, 1, ob.gii)
		for j, lv := range dummies {
			if ob.level == lv {
				x.Set(i, 2+j, 1)
				x.Set(i, 2+len(dummies)+j, ob.gii)
			}
		}
		y[i] = ob.y
	}

	return Logit(names, x, y)
}
