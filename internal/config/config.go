// Package config loads and validates project configuration for trialpack.
//
// A project file describes one submission: manuscript metadata, the author
// list used by the forms, input and output paths, and analysis settings.
// Values can be overridden by TRIALPACK_* environment variables, optionally
// sourced from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mbellard/trialpack/internal/fileutil"
	"github.com/mbellard/trialpack/internal/registry"
	"github.com/mbellard/trialpack/internal/stats"
	"github.com/mbellard/trialpack/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrInvalidRatio   = errors.New("expected female ratio must be in (0, 1)")
	ErrInvalidLimit   = errors.New("eligibility fetch limit cannot be negative")
	ErrInvalidDelay   = errors.New("registry delay must be a positive duration")
	ErrInvalidBaseURL = errors.New("registry base URL must be an http(s) URL")
	ErrAuthorName     = errors.New("author name cannot be empty")
)

// Environment variable overrides. A .env file in the working directory is
// honored when present.
const (
	EnvConfig      = "TRIALPACK_CONFIG"       // project file name or path
	EnvDataFile    = "TRIALPACK_DATA_FILE"    // input CSV path
	EnvOutputDir   = "TRIALPACK_OUTPUT_DIR"   // output directory
	EnvRegistryURL = "TRIALPACK_REGISTRY_URL" // registry API base URL
)

// Config holds all configuration for one submission project.
type Config struct {
	Project  ProjectConfig  `yaml:"project"`
	Authors  []AuthorConfig `yaml:"authors"`
	Paths    PathsConfig    `yaml:"paths"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Registry RegistryConfig `yaml:"registry"`
}

// ProjectConfig identifies the manuscript under submission.
type ProjectConfig struct {
	Title        string `yaml:"title"`
	ManuscriptID string `yaml:"manuscriptId"`
}

// AuthorConfig describes one author for the submission forms.
type AuthorConfig struct {
	Name        string `yaml:"name"`
	Affiliation string `yaml:"affiliation"`
	Email       string `yaml:"email"`
	ORCID       string `yaml:"orcid"`
}

// PathsConfig defines input and output locations.
type PathsConfig struct {
	DataFile   string `yaml:"dataFile"`   // Merged trials CSV (empty = must specify on the command line)
	OutputDir  string `yaml:"outputDir"`  // Reports, processed CSVs, documents (default: ".")
	FiguresDir string `yaml:"figuresDir"` // PNG and TIFF figures (default: "figures")
}

// AnalysisConfig defines statistical analysis settings.
type AnalysisConfig struct {
	ExpectedFemaleRatio float64 `yaml:"expectedFemaleRatio"` // Population share for equity tests (default: 0.508)
	EligibilityLimit    int     `yaml:"eligibilityLimit"`    // Max trials to fetch eligibility for (default: 100)
}

// RegistryConfig defines trial registry API settings.
type RegistryConfig struct {
	BaseURL string `yaml:"baseUrl"` // Empty = registry client default
	Delay   string `yaml:"delay"`   // Between requests, e.g. "500ms" (empty = client default)
}

// RequestDelay returns the parsed inter-request delay, or the registry
// client default when unset. Call Validate first; this panics on input
// Validate would have rejected.
func (r RegistryConfig) RequestDelay() time.Duration {
	if r.Delay == "" {
		return registry.DefaultDelay
	}
	d, err := time.ParseDuration(r.Delay)
	if err != nil {
		panic(fmt.Sprintf("config: unvalidated registry delay %q", r.Delay))
	}
	return d
}

// Validate checks cross-field constraints. Called automatically by Load,
// but available for consumers who construct Config manually.
func (c *Config) Validate() error {
	if r := c.Analysis.ExpectedFemaleRatio; r <= 0 || r >= 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidRatio, r)
	}
	if c.Analysis.EligibilityLimit < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, c.Analysis.EligibilityLimit)
	}
	if c.Registry.Delay != "" {
		d, err := time.ParseDuration(c.Registry.Delay)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: got %q", ErrInvalidDelay, c.Registry.Delay)
		}
	}
	if c.Registry.BaseURL != "" && !fileutil.IsURL(c.Registry.BaseURL) {
		return fmt.Errorf("%w: got %q", ErrInvalidBaseURL, c.Registry.BaseURL)
	}
	for i, a := range c.Authors {
		if strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("%w: authors[%d]", ErrAuthorName, i)
		}
	}
	return nil
}

// Default returns the configuration matching the original project layout.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			OutputDir:  ".",
			FiguresDir: "figures",
		},
		Analysis: AnalysisConfig{
			ExpectedFemaleRatio: stats.ExpectedFemaleShare,
			EligibilityLimit:    100,
		},
	}
}

// Load reads configuration from a file path or config name, applies
// environment overrides, and validates the result.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// An empty nameOrPath falls back to TRIALPACK_CONFIG, then to defaults.
func Load(nameOrPath string) (*Config, error) {
	cfg := Default()

	if nameOrPath == "" {
		nameOrPath = os.Getenv(EnvConfig)
	}
	if nameOrPath != "" {
		var configPath string
		var err error
		if fileutil.IsFilePath(nameOrPath) {
			configPath = nameOrPath
		} else {
			configPath, err = resolveConfigPath(nameOrPath)
			if err != nil {
				return nil, err
			}
		}

		data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
			}
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads a .env file into the process environment when one exists.
// Already-set variables win over file values.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if !fileutil.FileExists(path) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays TRIALPACK_* variables onto cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDataFile); v != "" {
		cfg.Paths.DataFile = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		cfg.Paths.OutputDir = v
	}
	if v := os.Getenv(EnvRegistryURL); v != "" {
		cfg.Registry.BaseURL = v
	}
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/trialpack/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "trialpack", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
