package main

import (
	"errors"
	"os"

	trialpack "github.com/mbellard/trialpack"
	"github.com/mbellard/trialpack/internal/config"
	"github.com/mbellard/trialpack/internal/dataset"
	"github.com/mbellard/trialpack/internal/figures"
	"github.com/mbellard/trialpack/internal/stats"
)

// Exit codes for the trialpack CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitData    = 4 // Dataset or analysis errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Dataset/analysis errors (exit 4)
	if errors.Is(err, dataset.ErrEmptyData) ||
		errors.Is(err, dataset.ErrMissingColumn) ||
		errors.Is(err, stats.ErrDegenerateTable) ||
		errors.Is(err, stats.ErrTableTooSmall) ||
		errors.Is(err, stats.ErrSingularModel) ||
		errors.Is(err, stats.ErrNoObservations) ||
		errors.Is(err, figures.ErrNoData) {
		return ExitData
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrNoCommand) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidRatio) ||
		errors.Is(err, config.ErrInvalidLimit) ||
		errors.Is(err, config.ErrInvalidDelay) ||
		errors.Is(err, config.ErrInvalidBaseURL) ||
		errors.Is(err, config.ErrAuthorName) ||
		errors.Is(err, trialpack.ErrEmptyMarkdown) ||
		errors.Is(err, trialpack.ErrNoTable) ||
		errors.Is(err, trialpack.ErrNoAuthors) ||
		errors.Is(err, trialpack.ErrEmptyManuscriptTitle) {
		return ExitUsage
	}

	return ExitGeneral
}
