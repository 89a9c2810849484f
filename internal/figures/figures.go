// Package figures renders the publication charts from the analysis report
// and converts them into print-resolution TIFF files.
package figures

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/mbellard/trialpack/internal/stats"
)

var ErrNoData = errors.New("figures: nothing to plot")

// Output file names, in figure order.
const (
	SexDistributionPNG     = "figure1_sex_distribution.png"
	InclusionRatesPNG      = "figure2_inclusion_rates.png"
	DiseaseDistributionPNG = "figure3_disease_distribution.png"
)

// inclusionReference marks the reference female inclusion rate drawn on
// figure 2.
const inclusionReference = 90.0

// GenerateAll renders the three manuscript figures into dir and returns
// the paths written.
func GenerateAll(report *stats.Report, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating figures dir: %w", err)
	}

	paths := []string{
		filepath.Join(dir, SexDistributionPNG),
		filepath.Join(dir, InclusionRatesPNG),
		filepath.Join(dir, DiseaseDistributionPNG),
	}
	if err := SexDistribution(report.SexDistribution, paths[0]); err != nil {
		return nil, err
	}
	if err := InclusionRates(report.FemaleInclusionByDisease, paths[1]); err != nil {
		return nil, err
	}
	if err := DiseaseDistribution(report.DiseaseSexPercentages, paths[2]); err != nil {
		return nil, err
	}
	return paths, nil
}

// SexDistribution draws trial counts per sex category as a vertical bar
// chart, most frequent category first.
func SexDistribution(counts map[string]int, path string) error {
	if len(counts) == 0 {
		return ErrNoData
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})

	values := make(plotter.Values, len(labels))
	for i, label := range labels {
		values[i] = float64(counts[label])
	}

	p := plot.New()
	p.Title.Text = "Distribution of Clinical Trials by Sex Representation"
	p.X.Label.Text = "Sex Category"
	p.Y.Label.Text = "Number of Trials"

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return fmt.Errorf("building bar chart: %w", err)
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(labels...)

	return save(p, path)
}

// InclusionRates draws female inclusion rate per disease category as
// horizontal bars sorted ascending, with a dashed reference line.
func InclusionRates(rates map[string]float64, path string) error {
	if len(rates) == 0 {
		return ErrNoData
	}

	labels := make([]string, 0, len(rates))
	for label := range rates {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if rates[labels[i]] != rates[labels[j]] {
			return rates[labels[i]] < rates[labels[j]]
		}
		return labels[i] < labels[j]
	})

	values := make(plotter.Values, len(labels))
	for i, label := range labels {
		values[i] = rates[label]
	}

	p := plot.New()
	p.Title.Text = "Female Inclusion Rates Across Disease Categories"
	p.X.Label.Text = "Female Inclusion Rate (%)"
	p.Y.Label.Text = "Disease Category"

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return fmt.Errorf("building bar chart: %w", err)
	}
	bars.Horizontal = true
	bars.Color = plotutil.Color(1)
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalY(labels...)

	reference, err := plotter.NewLine(plotter.XYs{
		{X: inclusionReference, Y: -0.5},
		{X: inclusionReference, Y: float64(len(labels)) - 0.5},
	})
	if err != nil {
		return fmt.Errorf("building reference line: %w", err)
	}
	reference.LineStyle.Color = color.RGBA{R: 0xcc, A: 0xff}
	reference.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(reference)

	return save(p, path)
}

// DiseaseDistribution draws the sex-category mix per disease category as
// stacked percentage bars.
func DiseaseDistribution(percentages map[string]map[string]float64, path string) error {
	if len(percentages) == 0 {
		return ErrNoData
	}

	diseases := make([]string, 0, len(percentages))
	sexSet := make(map[string]bool)
	for disease, cells := range percentages {
		diseases = append(diseases, disease)
		for sex := range cells {
			sexSet[sex] = true
		}
	}
	sort.Strings(diseases)
	sexes := make([]string, 0, len(sexSet))
	for sex := range sexSet {
		sexes = append(sexes, sex)
	}
	sort.Strings(sexes)

	p := plot.New()
	p.Title.Text = "Distribution of Sex Representation by Disease Type"
	p.X.Label.Text = "Disease Category"
	p.Y.Label.Text = "Percentage of Trials"
	p.Legend.Top = true

	var previous *plotter.BarChart
	for i, sex := range sexes {
		values := make(plotter.Values, len(diseases))
		for j, disease := range diseases {
			values[j] = percentages[disease][sex]
		}
		bars, err := plotter.NewBarChart(values, vg.Points(30))
		if err != nil {
			return fmt.Errorf("building stacked bars: %w", err)
		}
		bars.Color = plotutil.Color(i)
		bars.LineStyle.Width = 0
		if previous != nil {
			bars.StackOn(previous)
		}
		p.Add(bars)
		p.Legend.Add(sex, bars)
		previous = bars
	}
	p.NominalX(diseases...)

	return save(p, path)
}

func save(p *plot.Plot, path string) error {
	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
