package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: trialpack <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Analysis commands:")
	fmt.Fprintln(w, "  analyze      Clean the trials dataset and run the statistical analysis")
	fmt.Fprintln(w, "  figures      Render the publication figures as PNG charts")
	fmt.Fprintln(w, "  tiff         Convert rendered figures to print-resolution TIFF")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Submission commands:")
	fmt.Fprintln(w, "  manuscript   Render the manuscript from markdown to a Word document")
	fmt.Fprintln(w, "  coverletter  Render the cover letter")
	fmt.Fprintln(w, "  tables       Render markdown tables, one document per input file")
	fmt.Fprintln(w, "  forms        Render contribution, disclosure, and copyright forms")
	fmt.Fprintln(w, "  supplement   Render the supplementary materials")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Other commands:")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'trialpack help <command>' for details on a specific command.")
}

// printAnalyzeUsage prints usage for the analyze command.
func printAnalyzeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: trialpack analyze [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Clean the merged trials CSV, categorize every trial, run the")
	fmt.Fprintln(w, "statistical and equity analysis, and write the processed CSV and")
	fmt.Fprintln(w, "JSON reports to the output directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -d, --data <path>         Merged trials CSV (overrides config)")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (overrides config)")
	fmt.Fprintln(w, "      --fetch-eligibility   Fetch eligibility criteria from the registry")
	fmt.Fprintln(w, "      --limit <n>           Max trials to fetch eligibility for")
	fmt.Fprintln(w, "  -c, --config <name>       Project file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug detail")
}

// printDocumentUsage prints usage for a document rendering command.
func printDocumentUsage(w io.Writer, name string) {
	switch name {
	case "manuscript":
		fmt.Fprintln(w, "Usage: trialpack manuscript <manuscript.md> [flags]")
	case "coverletter":
		fmt.Fprintln(w, "Usage: trialpack coverletter <letter.md> [flags]")
	case "tables":
		fmt.Fprintln(w, "Usage: trialpack tables <table1.md> [table2.md ...] [flags]")
	case "forms":
		fmt.Fprintln(w, "Usage: trialpack forms [flags]")
	case "supplement":
		fmt.Fprintln(w, "Usage: trialpack supplement <supplement.md> [flags]")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	if name == "coverletter" {
		fmt.Fprintln(w, "      --manuscript <path>   Manuscript markdown for the signature block")
	}
	if name == "supplement" {
		fmt.Fprintln(w, "      --title <s>           Manuscript title for the subtitle line")
	}
	fmt.Fprintln(w, "  -c, --config <name>       Project file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug detail")
}

// runHelp prints help for a command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}
	switch args[0] {
	case "analyze":
		printAnalyzeUsage(env.Stdout)
	case "manuscript", "coverletter", "tables", "forms", "supplement":
		printDocumentUsage(env.Stdout, args[0])
	default:
		printUsage(env.Stdout)
	}
}
