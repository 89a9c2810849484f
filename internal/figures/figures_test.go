package figures

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/tiff"
)

func TestSexDistribution(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sex.png")
	counts := map[string]int{
		"Both Sexes":  40,
		"Female Only": 10,
		"Male Only":   8,
		"Unknown":     2,
	}
	if err := SexDistribution(counts, path); err != nil {
		t.Fatalf("SexDistribution() error = %v", err)
	}
	assertPNG(t, path)
}

func TestInclusionRates(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rates.png")
	rates := map[string]float64{
		"Cancer":         82.5,
		"COVID-19":       95.1,
		"Cardiovascular": 71.0,
	}
	if err := InclusionRates(rates, path); err != nil {
		t.Fatalf("InclusionRates() error = %v", err)
	}
	assertPNG(t, path)
}

func TestDiseaseDistribution(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "disease.png")
	percentages := map[string]map[string]float64{
		"Cancer":   {"Both Sexes": 70, "Female Only": 20, "Male Only": 10},
		"COVID-19": {"Both Sexes": 90, "Female Only": 5, "Male Only": 5},
	}
	if err := DiseaseDistribution(percentages, path); err != nil {
		t.Fatalf("DiseaseDistribution() error = %v", err)
	}
	assertPNG(t, path)
}

func TestEmptyInputs(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.png")
	if err := SexDistribution(nil, path); !errors.Is(err, ErrNoData) {
		t.Errorf("SexDistribution(nil) error = %v, want ErrNoData", err)
	}
	if err := InclusionRates(nil, path); !errors.Is(err, ErrNoData) {
		t.Errorf("InclusionRates(nil) error = %v, want ErrNoData", err)
	}
	if err := DiseaseDistribution(nil, path); !errors.Is(err, ErrNoData) {
		t.Errorf("DiseaseDistribution(nil) error = %v, want ErrNoData", err)
	}
}

func TestConvertTIFF(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "chart.png")
	dstPath := filepath.Join(dir, "chart.tif")

	// A small synthetic chart stands in for a rendered figure.
	src := image.NewRGBA(image.Rect(0, 0, 36, 24))
	for x := 0; x < 36; x++ {
		for y := 0; y < 24; y++ {
			src.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 10), B: 0x80, A: 0xff})
		}
	}
	f, err := os.Create(srcPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	if err := ConvertTIFF(srcPath, dstPath); err != nil {
		t.Fatalf("ConvertTIFF() error = %v", err)
	}

	out, err := os.Open(dstPath)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()
	decoded, err := tiff.Decode(out)
	if err != nil {
		t.Fatalf("output is not a valid TIFF: %v", err)
	}

	// 36x24 at a 300/72 scale factor.
	bounds := decoded.Bounds()
	if bounds.Dx() != 150 || bounds.Dy() != 100 {
		t.Errorf("output size = %dx%d, want 150x100", bounds.Dx(), bounds.Dy())
	}
}

func TestConvertTIFFMissingSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	err := ConvertTIFF(filepath.Join(dir, "absent.png"), filepath.Join(dir, "out.tif"))
	if err == nil {
		t.Error("expected an error for a missing source file")
	}
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("figure not written: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("figure is not a valid PNG: %v", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		t.Error("figure has zero size")
	}
}

func TestConvertAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{SexDistributionPNG, InclusionRatesPNG, DiseaseDistributionPNG} {
		img := image.NewRGBA(image.Rect(0, 0, 12, 12))
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(f, img); err != nil {
			t.Fatal(err)
		}
		f.Close()
	}

	paths, err := ConvertAll(dir)
	if err != nil {
		t.Fatalf("ConvertAll() error = %v", err)
	}
	want := []string{"figure1.tif", "figure2.tif", "figure3.tif"}
	if len(paths) != len(want) {
		t.Fatalf("len(paths) = %d, want %d", len(paths), len(want))
	}
	for i, name := range want {
		if filepath.Base(paths[i]) != name {
			t.Errorf("paths[%d] = %s, want %s", i, filepath.Base(paths[i]), name)
		}
		if _, err := os.Stat(paths[i]); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}
}

func TestConvertAllMissingFigure(t *testing.T) {
	t.Parallel()

	if _, err := ConvertAll(t.TempDir()); err == nil {
		t.Error("expected an error when no figures are present")
	}
}
