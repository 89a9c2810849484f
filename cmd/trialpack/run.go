package main

import (
	"errors"
	"fmt"

	"github.com/mbellard/trialpack/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoCommand      = errors.New("no command specified")
	ErrUnknownCommand = errors.New("unknown command")
	ErrNoInput        = errors.New("no input specified")
	ErrReadInput      = errors.New("failed to read input file")
	ErrWriteOutput    = errors.New("failed to write output file")
)

// run dispatches to the requested subcommand.
func run(args []string, env *Environment) error {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ErrNoCommand
	}

	command := args[1]
	rest := args[2:]

	switch command {
	case "analyze":
		return runAnalyze(rest, env)
	case "figures":
		return runFigures(rest, env)
	case "tiff":
		return runTIFF(rest, env)
	case "manuscript":
		return runManuscript(rest, env)
	case "coverletter":
		return runCoverLetter(rest, env)
	case "tables":
		return runTables(rest, env)
	case "forms":
		return runForms(rest, env)
	case "supplement":
		return runSupplement(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "trialpack %s\n", Version)
		return nil
	case "help", "--help", "-h":
		runHelp(rest, env)
		return nil
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

// loadProject loads .env overrides and the project configuration.
func loadProject(f commonFlags) (*config.Config, error) {
	if err := config.LoadDotEnv(""); err != nil {
		return nil, err
	}
	return config.Load(f.config)
}
