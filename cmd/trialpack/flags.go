package main

import (
	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "project file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug detail")
}

// analyzeFlags holds flags for the analyze command.
type analyzeFlags struct {
	common           commonFlags
	data             string
	output           string
	fetchEligibility bool
	limit            int
}

// parseAnalyzeFlags parses analyze command flags.
func parseAnalyzeFlags(args []string, env *Environment) (*analyzeFlags, []string, error) {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	f := &analyzeFlags{}

	fs.StringVarP(&f.data, "data", "d", "", "merged trials CSV (overrides config)")
	fs.StringVarP(&f.output, "output", "o", "", "output directory (overrides config)")
	fs.BoolVar(&f.fetchEligibility, "fetch-eligibility", false, "fetch eligibility criteria from the trial registry")
	fs.IntVar(&f.limit, "limit", 0, "max trials to fetch eligibility for (0 = config default)")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printAnalyzeUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// figuresFlags holds flags for the figures and tiff commands.
type figuresFlags struct {
	common commonFlags
	data   string
	dir    string
}

// parseFiguresFlags parses figures/tiff command flags.
func parseFiguresFlags(name string, args []string, env *Environment) (*figuresFlags, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	f := &figuresFlags{}

	fs.StringVarP(&f.data, "data", "d", "", "processed trials CSV (overrides config)")
	fs.StringVar(&f.dir, "figures-dir", "", "figures directory (overrides config)")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// documentFlags holds flags shared by the document rendering commands.
type documentFlags struct {
	common     commonFlags
	output     string
	manuscript string
	title      string
}

// parseDocumentFlags parses document command flags and returns positional args.
func parseDocumentFlags(name string, args []string, env *Environment) (*documentFlags, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	f := &documentFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	if name == "coverletter" {
		fs.StringVar(&f.manuscript, "manuscript", "", "manuscript markdown for the signature block")
	}
	if name == "supplement" {
		fs.StringVar(&f.title, "title", "", "manuscript title for the subtitle line (overrides config)")
	}
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printDocumentUsage(env.Stderr, name) }
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
