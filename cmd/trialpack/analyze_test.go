package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTrialsCSV writes a synthetic merged trials dataset and returns its path.
func writeTrialsCSV(t *testing.T, rows int) string {
	t.Helper()

	var sb strings.Builder
	sb.WriteString("NCT Number_trial,Sex,Phases,Conditions,Country,Gender Inequality Index\n")
	sexes := []string{"ALL", "FEMALE", "MALE"}
	conditions := []string{"Breast cancer", "COVID-19 pneumonia"}
	phases := []string{"Phase 1", "Phase 2", "Phase 3", "Phase 4"}
	countries := []string{"United States", "Brazil", "India", "Sweden", "Japan"}
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&sb, "NCT%04d,%s,%s,%s,%s,%.3f\n",
			i+1, sexes[i%3], phases[i%4], conditions[i%2], countries[i%5], 0.05+0.01*float64(i))
	}

	path := filepath.Join(t.TempDir(), "trials.csv")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("write dataset fixture: %v", err)
	}
	return path
}

func TestRunAnalyze(t *testing.T) {
	clearProjectEnv(t)
	env, _, _ := testEnv()

	data := writeTrialsCSV(t, 60)
	outDir := t.TempDir()

	err := run([]string{"trialpack", "analyze", "-d", data, "-o", outDir, "--quiet"}, env)
	if err != nil {
		t.Fatalf("run(analyze) error = %v", err)
	}

	csvData, err := os.ReadFile(filepath.Join(outDir, processedCSV))
	if err != nil {
		t.Fatalf("processed CSV not written: %v", err)
	}
	if !strings.Contains(string(csvData), "Sex_Category") {
		t.Error("processed CSV missing derived columns")
	}

	reportData, err := os.ReadFile(filepath.Join(outDir, reportJSON))
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	var report map[string]any
	if err := json.Unmarshal(reportData, &report); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	for _, key := range []string{"sex_distribution", "summary", "equity_analysis"} {
		if _, ok := report[key]; !ok {
			t.Errorf("report missing %q", key)
		}
	}

	equityData, err := os.ReadFile(filepath.Join(outDir, equityJSON))
	if err != nil {
		t.Fatalf("equity results not written: %v", err)
	}
	var equity map[string]any
	if err := json.Unmarshal(equityData, &equity); err != nil {
		t.Fatalf("equity results are not valid JSON: %v", err)
	}
	if len(equity) == 0 {
		t.Error("equity results are empty")
	}

	// No eligibility fetch requested, so no eligibility CSV.
	if _, err := os.Stat(filepath.Join(outDir, eligibilityCSV)); !errors.Is(err, os.ErrNotExist) {
		t.Error("eligibility CSV written without --fetch-eligibility")
	}
}

func TestRunAnalyzeMissingData(t *testing.T) {
	clearProjectEnv(t)
	env, _, _ := testEnv()
	t.Chdir(t.TempDir())

	err := run([]string{"trialpack", "analyze", "--quiet"}, env)
	if !errors.Is(err, ErrNoInput) {
		t.Fatalf("run(analyze) error = %v, want ErrNoInput", err)
	}
}

func TestRunAnalyzeDataFileNotFound(t *testing.T) {
	clearProjectEnv(t)
	env, _, _ := testEnv()

	dir := t.TempDir()
	err := run([]string{"trialpack", "analyze", "-d", filepath.Join(dir, "absent.csv"), "-o", dir, "--quiet"}, env)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("run(analyze) error = %v, want os.ErrNotExist", err)
	}
	if exitCodeFor(err) != ExitIO {
		t.Errorf("exit code = %d, want %d", exitCodeFor(err), ExitIO)
	}
}

func TestRunFiguresAndTIFF(t *testing.T) {
	clearProjectEnv(t)
	env, _, _ := testEnv()

	data := writeTrialsCSV(t, 60)
	dir := t.TempDir()

	err := run([]string{"trialpack", "figures", "-d", data, "--figures-dir", dir, "--quiet"}, env)
	if err != nil {
		t.Fatalf("run(figures) error = %v", err)
	}
	pngs, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(pngs) != 3 {
		t.Fatalf("wrote %d PNG figures, want 3", len(pngs))
	}

	err = run([]string{"trialpack", "tiff", "--figures-dir", dir, "--quiet"}, env)
	if err != nil {
		t.Fatalf("run(tiff) error = %v", err)
	}
	for _, name := range []string{"figure1.tif", "figure2.tif", "figure3.tif"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}
