package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mbellard/trialpack/internal/config"
)

const sampleProjectYAML = `project:
  title: "Sex Representation in Clinical Trials"
  manuscriptId: "JAMA-2025-0142"
authors:
  - name: "Jane D. Researcher"
    affiliation: "Department of Epidemiology"
    email: "jane@example.edu"
    orcid: "0000-0001-2345-6789"
  - name: "Alex L. Scientist"
    affiliation: "Center for Global Health"
    email: "alex@example.org"
paths:
  dataFile: "merged_clinical_indicators_2025-05-01.csv"
  outputDir: "out"
  figuresDir: "out/figures"
analysis:
  expectedFemaleRatio: 0.508
  eligibilityLimit: 50
registry:
  baseUrl: "https://clinicaltrials.gov/api/query"
  delay: "250ms"
`

// writeConfig writes YAML to a temp file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config fixture: %v", err)
	}
	return path
}

// clearEnv detaches the test from ambient TRIALPACK_* variables.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvConfig, config.EnvDataFile, config.EnvOutputDir, config.EnvRegistryURL,
	} {
		t.Setenv(key, "placeholder")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Paths.OutputDir != "." {
		t.Errorf("OutputDir = %q, want %q", cfg.Paths.OutputDir, ".")
	}
	if cfg.Paths.FiguresDir != "figures" {
		t.Errorf("FiguresDir = %q, want %q", cfg.Paths.FiguresDir, "figures")
	}
	if cfg.Analysis.ExpectedFemaleRatio != 0.508 {
		t.Errorf("ExpectedFemaleRatio = %v, want 0.508", cfg.Analysis.ExpectedFemaleRatio)
	}
	if cfg.Analysis.EligibilityLimit != 100 {
		t.Errorf("EligibilityLimit = %d, want 100", cfg.Analysis.EligibilityLimit)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(writeConfig(t, sampleProjectYAML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Project.Title != "Sex Representation in Clinical Trials" {
		t.Errorf("Title = %q", cfg.Project.Title)
	}
	if cfg.Project.ManuscriptID != "JAMA-2025-0142" {
		t.Errorf("ManuscriptID = %q", cfg.Project.ManuscriptID)
	}
	if len(cfg.Authors) != 2 {
		t.Fatalf("len(Authors) = %d, want 2", len(cfg.Authors))
	}
	if cfg.Authors[0].ORCID != "0000-0001-2345-6789" {
		t.Errorf("Authors[0].ORCID = %q", cfg.Authors[0].ORCID)
	}
	if cfg.Paths.DataFile != "merged_clinical_indicators_2025-05-01.csv" {
		t.Errorf("DataFile = %q", cfg.Paths.DataFile)
	}
	if cfg.Analysis.EligibilityLimit != 50 {
		t.Errorf("EligibilityLimit = %d, want 50", cfg.Analysis.EligibilityLimit)
	}
	if got := cfg.Registry.RequestDelay(); got != 250*time.Millisecond {
		t.Errorf("RequestDelay() = %v, want 250ms", got)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(writeConfig(t, "project:\n  title: \"Short Report\"\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Project.Title != "Short Report" {
		t.Errorf("Title = %q", cfg.Project.Title)
	}
	if cfg.Analysis.ExpectedFemaleRatio != 0.508 {
		t.Errorf("ExpectedFemaleRatio = %v, want default 0.508", cfg.Analysis.ExpectedFemaleRatio)
	}
	if cfg.Paths.FiguresDir != "figures" {
		t.Errorf("FiguresDir = %q, want default", cfg.Paths.FiguresDir)
	}
}

func TestLoadUnknownFieldRejected(t *testing.T) {
	clearEnv(t)

	_, err := config.Load(writeConfig(t, "project:\n  title: x\nbogus: field\n"))
	if !errors.Is(err, config.ErrConfigParse) {
		t.Fatalf("Load() error = %v, want ErrConfigParse", err)
	}
}

func TestLoadNotFound(t *testing.T) {
	clearEnv(t)

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, config.ErrConfigNotFound) {
		t.Fatalf("Load() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadByName(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "submission.yml"), []byte(sampleProjectYAML), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	t.Chdir(dir)

	cfg, err := config.Load("submission")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Project.ManuscriptID != "JAMA-2025-0142" {
		t.Errorf("ManuscriptID = %q", cfg.Project.ManuscriptID)
	}

	if _, err := config.Load("nonexistent"); !errors.Is(err, config.ErrConfigNotFound) {
		t.Errorf("Load(unknown name) error = %v, want ErrConfigNotFound", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvDataFile, "/data/trials.csv")
	t.Setenv(config.EnvOutputDir, "/data/out")
	t.Setenv(config.EnvRegistryURL, "https://registry.example.com/api/query")

	cfg, err := config.Load(writeConfig(t, sampleProjectYAML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Paths.DataFile != "/data/trials.csv" {
		t.Errorf("DataFile = %q, want env override", cfg.Paths.DataFile)
	}
	if cfg.Paths.OutputDir != "/data/out" {
		t.Errorf("OutputDir = %q, want env override", cfg.Paths.OutputDir)
	}
	if cfg.Registry.BaseURL != "https://registry.example.com/api/query" {
		t.Errorf("BaseURL = %q, want env override", cfg.Registry.BaseURL)
	}
}

func TestLoadConfigFromEnvName(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, sampleProjectYAML)
	t.Setenv(config.EnvConfig, path)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Project.Title != "Sex Representation in Clinical Trials" {
		t.Errorf("Title = %q, want value from TRIALPACK_CONFIG file", cfg.Project.Title)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
	}{
		{
			name:   "defaults valid",
			mutate: func(*config.Config) {},
		},
		{
			name:    "ratio too high",
			mutate:  func(c *config.Config) { c.Analysis.ExpectedFemaleRatio = 1.2 },
			wantErr: config.ErrInvalidRatio,
		},
		{
			name:    "ratio zero",
			mutate:  func(c *config.Config) { c.Analysis.ExpectedFemaleRatio = 0 },
			wantErr: config.ErrInvalidRatio,
		},
		{
			name:    "negative limit",
			mutate:  func(c *config.Config) { c.Analysis.EligibilityLimit = -1 },
			wantErr: config.ErrInvalidLimit,
		},
		{
			name:    "unparseable delay",
			mutate:  func(c *config.Config) { c.Registry.Delay = "fast" },
			wantErr: config.ErrInvalidDelay,
		},
		{
			name:    "negative delay",
			mutate:  func(c *config.Config) { c.Registry.Delay = "-1s" },
			wantErr: config.ErrInvalidDelay,
		},
		{
			name:    "base URL without scheme",
			mutate:  func(c *config.Config) { c.Registry.BaseURL = "clinicaltrials.gov" },
			wantErr: config.ErrInvalidBaseURL,
		},
		{
			name: "blank author name",
			mutate: func(c *config.Config) {
				c.Authors = []config.AuthorConfig{{Name: "  "}}
			},
			wantErr: config.ErrAuthorName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRequestDelayDefault(t *testing.T) {
	t.Parallel()

	var r config.RegistryConfig
	if got := r.RequestDelay(); got != 500*time.Millisecond {
		t.Errorf("RequestDelay() = %v, want 500ms", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	content := config.EnvRegistryURL + "=https://mirror.example.com/api/query\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write .env fixture: %v", err)
	}

	if err := config.LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv(config.EnvRegistryURL); got != "https://mirror.example.com/api/query" {
		t.Errorf("env after LoadDotEnv = %q", got)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	clearEnv(t)

	if err := config.LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("LoadDotEnv() on missing file error = %v, want nil", err)
	}
}
