package main

import (
	"fmt"
	"os"
	"path/filepath"

	trialpack "github.com/mbellard/trialpack"
	"github.com/mbellard/trialpack/internal/config"
	"github.com/mbellard/trialpack/internal/docbuild"
	"github.com/mbellard/trialpack/internal/fileutil"
)

// Default document output names.
const (
	manuscriptDocx = "manuscript_jama.docx"
	coverDocx      = "cover_letter.docx"
	copyrightDocx  = "copyright_transfer_agreement.docx"
	supplementDocx = "supplementary_materials.docx"
)

// readMarkdown reads one markdown input file.
func readMarkdown(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- input path is user-provided
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	return string(data), nil
}

// saveDoc writes a rendered document, creating parent directories as needed.
func saveDoc(doc *docbuild.Document, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := fileutil.EnsureDir(dir); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}
	if err := doc.Save(path); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// resolveOutput picks the output path for a document: the flag value when
// it names a file, joined with the default name when it names a directory,
// and the config output directory otherwise.
func resolveOutput(flagOutput, cfgDir, defaultName string) string {
	if flagOutput == "" {
		return filepath.Join(cfgDir, defaultName)
	}
	if info, err := os.Stat(flagOutput); err == nil && info.IsDir() {
		return filepath.Join(flagOutput, defaultName)
	}
	return flagOutput
}

// newService builds the rendering service from the environment.
func newService(env *Environment, f commonFlags) *trialpack.Service {
	return trialpack.New(
		trialpack.WithLogger(env.logger(f.quiet, f.verbose)),
		trialpack.WithClock(env.Now),
	)
}

// configAuthors converts configured authors to the library type.
func configAuthors(cfg *config.Config) []trialpack.Author {
	authors := make([]trialpack.Author, len(cfg.Authors))
	for i, a := range cfg.Authors {
		authors[i] = trialpack.Author{
			Name:        a.Name,
			Affiliation: a.Affiliation,
			Email:       a.Email,
			ORCID:       a.ORCID,
		}
	}
	return authors
}

// runManuscript renders the manuscript document.
func runManuscript(args []string, env *Environment) error {
	f, inputs, err := parseDocumentFlags("manuscript", args, env)
	if err != nil {
		return err
	}
	if len(inputs) != 1 {
		printDocumentUsage(env.Stderr, "manuscript")
		return fmt.Errorf("%w: expected one manuscript file", ErrNoInput)
	}
	cfg, err := loadProject(f.common)
	if err != nil {
		return err
	}

	content, err := readMarkdown(inputs[0])
	if err != nil {
		return err
	}
	doc, err := newService(env, f.common).Manuscript(content)
	if err != nil {
		return err
	}
	return saveDoc(doc, resolveOutput(f.output, cfg.Paths.OutputDir, manuscriptDocx))
}

// runCoverLetter renders the cover letter. The manuscript source is
// optional; without it the signature block falls back to blank lines.
func runCoverLetter(args []string, env *Environment) error {
	f, inputs, err := parseDocumentFlags("coverletter", args, env)
	if err != nil {
		return err
	}
	if len(inputs) != 1 {
		printDocumentUsage(env.Stderr, "coverletter")
		return fmt.Errorf("%w: expected one letter file", ErrNoInput)
	}
	cfg, err := loadProject(f.common)
	if err != nil {
		return err
	}

	letter, err := readMarkdown(inputs[0])
	if err != nil {
		return err
	}
	var manuscript string
	if f.manuscript != "" {
		manuscript, err = readMarkdown(f.manuscript)
		if err != nil {
			return err
		}
	}
	doc, err := newService(env, f.common).CoverLetter(letter, manuscript)
	if err != nil {
		return err
	}
	return saveDoc(doc, resolveOutput(f.output, cfg.Paths.OutputDir, coverDocx))
}

// runTables renders each input table file to tableN.docx in input order.
func runTables(args []string, env *Environment) error {
	f, inputs, err := parseDocumentFlags("tables", args, env)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		printDocumentUsage(env.Stderr, "tables")
		return fmt.Errorf("%w: expected at least one table file", ErrNoInput)
	}
	cfg, err := loadProject(f.common)
	if err != nil {
		return err
	}

	svc := newService(env, f.common)
	outDir := f.output
	if outDir == "" {
		outDir = cfg.Paths.OutputDir
	}
	for i, input := range inputs {
		content, err := readMarkdown(input)
		if err != nil {
			return err
		}
		number := i + 1
		doc, err := svc.Table(content, number)
		if err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
		name := fmt.Sprintf("table%d.docx", number)
		if err := saveDoc(doc, filepath.Join(outDir, name)); err != nil {
			return err
		}
	}
	return nil
}

// runForms renders the per-author contribution and disclosure forms and
// the shared copyright transfer agreement.
func runForms(args []string, env *Environment) error {
	f, _, err := parseDocumentFlags("forms", args, env)
	if err != nil {
		return err
	}
	cfg, err := loadProject(f.common)
	if err != nil {
		return err
	}

	authors := configAuthors(cfg)
	if len(authors) == 0 {
		return trialpack.ErrNoAuthors
	}
	meta := trialpack.SubmissionMeta{
		Title:        cfg.Project.Title,
		ManuscriptID: cfg.Project.ManuscriptID,
	}

	svc := newService(env, f.common)
	outDir := f.output
	if outDir == "" {
		outDir = cfg.Paths.OutputDir
	}

	for _, author := range authors {
		doc, err := svc.ContributionForm(author, meta)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("author_contribution_%s.docx", author.LastName())
		if err := saveDoc(doc, filepath.Join(outDir, name)); err != nil {
			return err
		}

		doc, err = svc.DisclosureForm(author, meta)
		if err != nil {
			return err
		}
		name = fmt.Sprintf("icmje_disclosure_%s.docx", author.LastName())
		if err := saveDoc(doc, filepath.Join(outDir, name)); err != nil {
			return err
		}
	}

	doc, err := svc.CopyrightAgreement(authors, meta)
	if err != nil {
		return err
	}
	return saveDoc(doc, filepath.Join(outDir, copyrightDocx))
}

// runSupplement renders the supplementary materials document.
func runSupplement(args []string, env *Environment) error {
	f, inputs, err := parseDocumentFlags("supplement", args, env)
	if err != nil {
		return err
	}
	if len(inputs) != 1 {
		printDocumentUsage(env.Stderr, "supplement")
		return fmt.Errorf("%w: expected one supplement file", ErrNoInput)
	}
	cfg, err := loadProject(f.common)
	if err != nil {
		return err
	}

	content, err := readMarkdown(inputs[0])
	if err != nil {
		return err
	}
	title := f.title
	if title == "" {
		title = cfg.Project.Title
	}
	doc, err := newService(env, f.common).Supplement(content, title)
	if err != nil {
		return err
	}
	return saveDoc(doc, resolveOutput(f.output, cfg.Paths.OutputDir, supplementDocx))
}
