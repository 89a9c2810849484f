// Package dataset loads and cleans merged clinical-trial indicator CSV
// files and derives the categorical columns the downstream analysis works
// with: sex representation, disease category, standardized trial phase,
// and gender-inequality tertile.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrEmptyData     = errors.New("dataset: no data rows")
	ErrMissingColumn = errors.New("dataset: required column missing")
)

// CSV column names as they appear in the merged indicator export.
const (
	ColNCT        = "NCT Number_trial"
	ColSex        = "Sex"
	ColPhases     = "Phases"
	ColConditions = "Conditions"
	ColCountry    = "Country"
	ColGII        = "Gender Inequality Index"
)

// Category labels shared across the analysis.
const (
	SexFemaleOnly = "Female Only"
	SexMaleOnly   = "Male Only"
	SexBoth       = "Both Sexes"
	Unknown       = "Unknown"

	GIILow    = "Low GII"
	GIIMedium = "Medium GII"
	GIIHigh   = "High GII"
)

// Record is one cleaned clinical trial row.
type Record struct {
	NCTID      string
	Sex        string
	Phases     string
	Conditions string
	Country    string
	GII        float64

	SexCategory       string
	DiseaseCategory   string
	StandardizedPhase string
	GIICategory       string

	Eligibility string
}

// LoadStats reports what cleaning removed.
type LoadStats struct {
	TotalRows  int
	Duplicates int
	Dropped    int
}

// Load reads the merged CSV and applies the cleaning rules: duplicate NCT
// IDs keep their first row, blank Sex/Phases/Country become Unknown, and
// rows with no parseable gender-inequality value are dropped. Derived
// categories are filled in before returning.
func Load(r io.Reader) ([]Record, LoadStats, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("reading header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{ColNCT, ColSex, ColConditions, ColCountry, ColGII} {
		if _, ok := cols[required]; !ok {
			return nil, LoadStats{}, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	var (
		records []Record
		stats   LoadStats
		seen    = make(map[string]bool)
	)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, LoadStats{}, fmt.Errorf("reading row: %w", err)
		}
		stats.TotalRows++

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		nct := field(ColNCT)
		if seen[nct] {
			stats.Duplicates++
			continue
		}
		seen[nct] = true

		rec := Record{
			NCTID:      nct,
			Sex:        orUnknown(field(ColSex)),
			Phases:     orUnknown(field(ColPhases)),
			Conditions: field(ColConditions),
			Country:    orUnknown(field(ColCountry)),
		}
		gii, err := strconv.ParseFloat(field(ColGII), 64)
		if err != nil {
			stats.Dropped++
			continue
		}
		rec.GII = gii

		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, stats, ErrEmptyData
	}

	Categorize(records)
	return records, stats, nil
}

// LoadFile is Load on a file path.
func LoadFile(path string) ([]Record, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func orUnknown(value string) string {
	if value == "" {
		return Unknown
	}
	return value
}

// Categorize fills the derived category fields in place. GII tertile
// boundaries come from the records themselves.
func Categorize(records []Record) {
	values := make([]float64, len(records))
	for i, rec := range records {
		values[i] = rec.GII
	}
	low, high := GIIThresholds(values)

	for i := range records {
		records[i].SexCategory = CategorizeSex(records[i].Sex)
		records[i].DiseaseCategory = CategorizeDisease(records[i].Conditions)
		records[i].StandardizedPhase = StandardizePhase(records[i].Phases)
		records[i].GIICategory = CategorizeGII(records[i].GII, low, high)
	}
}

// CategorizeSex maps a raw registry sex value onto the three analysis
// buckets. Anything unrecognized is Unknown.
func CategorizeSex(value string) string {
	if value == "" || value == Unknown {
		return Unknown
	}
	upper := strings.ToUpper(value)
	switch {
	case upper == "FEMALE" || upper == "F":
		return SexFemaleOnly
	case upper == "MALE" || upper == "M":
		return SexMaleOnly
	case strings.Contains(upper, "FEMALE") && strings.Contains(upper, "MALE"):
		return SexBoth
	case strings.Contains(upper, "ALL"):
		return SexBoth
	default:
		return Unknown
	}
}

// diseaseCategories pairs each category with its condition keywords, in
// priority order: the first category with a keyword hit wins.
var diseaseCategories = []struct {
	name     string
	keywords []string
}{
	{"COVID-19", []string{"COVID", "SARS-COV-2", "CORONAVIRUS", "CORONA VIRUS"}},
	{"HIV/AIDS", []string{"HIV", "AIDS", "HUMAN IMMUNODEFICIENCY VIRUS"}},
	{"Cancer", []string{"CANCER", "TUMOR", "NEOPLASM", "CARCINOMA", "LEUKEMIA", "LYMPHOMA", "ONCOLOGY"}},
	{"Cardiovascular", []string{"HEART", "CARDIAC", "CARDIOVASCULAR", "STROKE", "HYPERTENSION"}},
	{"Diabetes", []string{"DIABETES", "DIABETIC"}},
	{"Mental Health", []string{"PSYCHIATRIC", "DEPRESSION", "ANXIETY", "SCHIZOPHRENIA", "BIPOLAR", "MENTAL"}},
	{"Respiratory", []string{"ASTHMA", "COPD", "LUNG", "PULMONARY", "RESPIRATORY"}},
	{"Infectious Disease", []string{"INFECTION", "INFECTIOUS", "BACTERIAL", "VIRAL", "FUNGAL", "MALARIA", "TUBERCULOSIS"}},
}

// CategorizeDisease maps a free-text conditions field onto a disease
// category by keyword matching.
func CategorizeDisease(conditions string) string {
	if strings.TrimSpace(conditions) == "" {
		return Unknown
	}
	upper := strings.ToUpper(conditions)
	for _, dc := range diseaseCategories {
		for _, kw := range dc.keywords {
			if strings.Contains(upper, kw) {
				return dc.name
			}
		}
	}
	return "Other"
}

// StandardizePhase collapses the registry's phase strings onto a small
// fixed vocabulary.
func StandardizePhase(phase string) string {
	if phase == "" || phase == Unknown {
		return Unknown
	}
	upper := strings.ToUpper(phase)
	switch {
	case strings.Contains(upper, "PHASE 1") || strings.Contains(upper, "PHASE I"):
		return "Phase 1"
	case strings.Contains(upper, "PHASE 2") || strings.Contains(upper, "PHASE II"):
		return "Phase 2"
	case strings.Contains(upper, "PHASE 3") || strings.Contains(upper, "PHASE III"):
		return "Phase 3"
	case strings.Contains(upper, "PHASE 4") || strings.Contains(upper, "PHASE IV"):
		return "Phase 4"
	case strings.Contains(upper, "EARLY"):
		return "Early Phase"
	case strings.Contains(upper, "NOT APPLICABLE"):
		return "Not Applicable"
	default:
		return "Other"
	}
}

// GIIThresholds returns the 0.33 and 0.67 quantiles of the given values,
// the boundaries of the inequality tertiles.
func GIIThresholds(values []float64) (low, high float64) {
	return Quantile(values, 0.33), Quantile(values, 0.67)
}

// CategorizeGII buckets one index value against the tertile boundaries.
// Boundary values fall into the lower bucket.
func CategorizeGII(value, low, high float64) string {
	switch {
	case value <= low:
		return GIILow
	case value <= high:
		return GIIMedium
	default:
		return GIIHigh
	}
}

// Quantile computes the q-th linearly interpolated quantile, matching the
// convention spreadsheet and dataframe tooling use. Input need not be
// sorted; an empty slice yields 0.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lower := int(pos)
	if lower >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lower)
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}

// FemaleInclusion encodes a record's sex category as the binary regression
// outcome: true outcome 1 when female participants are eligible, 0 when
// the trial is male-only. Unknown categories are excluded.
func FemaleInclusion(rec Record) (value float64, ok bool) {
	switch rec.SexCategory {
	case SexFemaleOnly, SexBoth:
		return 1, true
	case SexMaleOnly:
		return 0, true
	default:
		return 0, false
	}
}
