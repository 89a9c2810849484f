// Package trialpack builds journal-compliant Word submission packages from
// markdown manuscript sources: the formatted manuscript itself, a cover
// letter, tables, per-author forms, and supplementary materials.
//
// The package splits markdown into named sections with fixed heading
// patterns, strips markdown markup for word-count disclosures, and renders
// each section with the fixed styles the journal requires (US Letter page,
// one-inch margins, Times New Roman 12pt, double-spaced body text).
// Missing sections are skipped with a warning rather than failing the run.
//
// # Quick Start
//
//	svc := trialpack.New()
//	doc, err := svc.Manuscript(markdown)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := doc.Save("manuscript_jama.docx"); err != nil {
//	    log.Fatal(err)
//	}
//
// The statistical side of the repository (dataset cleaning, chi-square and
// logistic-regression inference, equity analysis, figures, registry client)
// lives in internal packages and is driven by the trialpack CLI.
package trialpack
