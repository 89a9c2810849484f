package trialpack

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mbellard/trialpack/internal/docbuild"
)

// Manuscript renders the full manuscript: title page, abstract page, body
// sections, abbreviations, declarations, and references, with page numbers
// in the header. Sections missing from the source are skipped with a
// warning.
func (s *Service) Manuscript(content string) (*docbuild.Document, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyMarkdown
	}

	sections := SplitSections(content)
	s.log.Info("extracted manuscript sections", "count", len(sections))

	doc := docbuild.New()
	doc.AddPageNumbers(BodyFont, BodySizePt)

	s.renderTitlePage(doc, sections)
	s.renderAbstractPage(doc, sections)
	s.renderBodySections(doc, sections)

	if text, ok := sections[SectionAbbreviations]; ok {
		renderAbbreviations(doc, text)
	}
	if text, ok := sections[SectionDeclarations]; ok {
		renderDeclarations(doc, text)
	}
	if text, ok := sections[SectionReferences]; ok {
		renderReferences(doc, text)
	}

	return doc, nil
}

// bodyRun appends a run in the standard body style.
func bodyRun(p *docbuild.Paragraph, text string) *docbuild.Run {
	return p.AddRun(text).Font(BodyFont).Size(BodySizePt)
}

// renderTitlePage writes the centered title, author block, corresponding
// author, and the mandatory manuscript word count, then breaks the page.
func (s *Service) renderTitlePage(doc *docbuild.Document, sections SectionMap) {
	title, ok := sections[SectionTitle]
	if !ok {
		title = "Untitled Manuscript"
		s.log.Warn("title heading not found in manuscript")
	}

	p := doc.AddParagraph().Align(docbuild.AlignCenter).SpaceAfter(12)
	bodyRun(p, title).Bold()

	if titlePage, ok := sections[SectionTitlePage]; ok {
		if authors, ok := ExtractField(titlePage, "Authors"); ok {
			p := doc.AddParagraph().Align(docbuild.AlignCenter).SpaceAfter(12)
			bodyRun(p, CleanMarkdown(authors))
		}
		if affiliations, ok := ExtractField(titlePage, "Affiliations"); ok {
			p := doc.AddParagraph().Align(docbuild.AlignCenter).SpaceAfter(12)
			bodyRun(p, CleanMarkdown(affiliations))
		}
		if corresponding, ok := ExtractField(titlePage, "Corresponding Author"); ok {
			p := doc.AddParagraph().Align(docbuild.AlignLeft).SpaceAfter(12)
			bodyRun(p, CleanMarkdown(corresponding))
		}
	} else {
		s.log.Warn("title page section not found in manuscript")
	}

	p = doc.AddParagraph().Align(docbuild.AlignCenter)
	bodyRun(p, "Word Count: "+strconv.Itoa(manuscriptWordCount(sections)))

	doc.AddPageBreak()
}

// manuscriptWordCount totals the cleaned word counts of the main-content
// sections, the figure disclosed on the title page.
func manuscriptWordCount(sections SectionMap) int {
	total := 0
	for _, name := range bodySections {
		if text, ok := sections[name]; ok {
			total += CountWords(text)
		}
	}
	return total
}

// renderAbstractPage writes the ABSTRACT heading, abstract word count, and
// the structured abstract as bolded-label paragraphs. When no labeled
// blocks parse, the abstract falls back to a single plain paragraph rather
// than failing the document.
func (s *Service) renderAbstractPage(doc *docbuild.Document, sections SectionMap) {
	abstract, ok := sections[SectionAbstract]
	if !ok {
		s.log.Warn("abstract section not found in manuscript")
		return
	}

	p := doc.AddParagraph().Align(docbuild.AlignCenter)
	bodyRun(p, "ABSTRACT").Bold()

	p = doc.AddParagraph().Align(docbuild.AlignCenter)
	bodyRun(p, "Word Count: "+strconv.Itoa(CountWords(abstract)))

	blocks := ExtractLabeledBlocks(abstract)
	if len(blocks) == 0 {
		s.log.Warn("structured abstract parsing found no labeled blocks, using plain rendering")
		p := doc.AddParagraph().DoubleSpaced()
		bodyRun(p, CleanMarkdown(abstract))
	} else {
		for _, block := range blocks {
			p := doc.AddParagraph().DoubleSpaced().SpaceAfter(0)
			bodyRun(p, block.Label+": ").Bold()
			bodyRun(p, CleanMarkdown(block.Content))
		}
	}

	doc.AddPageBreak()
}

// renderBodySections writes each main-content section with a bold heading
// and double-spaced, first-line-indented paragraphs split on blank lines.
func (s *Service) renderBodySections(doc *docbuild.Document, sections SectionMap) {
	caser := cases.Title(language.English)
	for _, name := range bodySections {
		text, ok := sections[name]
		if !ok {
			continue
		}

		h := doc.AddParagraph().SpaceBefore(12).SpaceAfter(6)
		bodyRun(h, caser.String(name)).Bold()

		for _, para := range SplitParagraphs(text) {
			p := doc.AddParagraph().DoubleSpaced().SpaceAfter(0).FirstLineIndent(0.5)
			bodyRun(p, CleanMarkdown(para))
		}
	}
}

func renderAbbreviations(doc *docbuild.Document, text string) {
	h := doc.AddParagraph().SpaceBefore(12).SpaceAfter(6)
	bodyRun(h, "List of Abbreviations").Bold()

	p := doc.AddParagraph().DoubleSpaced()
	bodyRun(p, CleanMarkdown(text))
}

// renderDeclarations writes the declarations heading and each "###"
// subsection with an italic indented subheading.
func renderDeclarations(doc *docbuild.Document, text string) {
	h := doc.AddParagraph().SpaceBefore(12).SpaceAfter(6)
	bodyRun(h, "Declarations").Bold()

	for _, sub := range ExtractSubsections(text) {
		sh := doc.AddParagraph().SpaceBefore(10).SpaceAfter(6).LeftIndent(0.25)
		bodyRun(sh, sub.Title).Italic()

		p := doc.AddParagraph().DoubleSpaced().SpaceAfter(6).LeftIndent(0.5)
		bodyRun(p, CleanMarkdown(sub.Content))
	}
}

// renderReferences writes one hanging-indented paragraph per reference,
// split on single newlines.
func renderReferences(doc *docbuild.Document, text string) {
	h := doc.AddParagraph().SpaceBefore(12).SpaceAfter(6)
	bodyRun(h, "References").Bold()

	for _, line := range strings.Split(text, "\n") {
		ref := strings.TrimSpace(line)
		if ref == "" {
			continue
		}
		p := doc.AddParagraph().DoubleSpaced().SpaceAfter(0).LeftIndent(0.5).HangingIndent(0.5)
		bodyRun(p, CleanMarkdown(ref))
	}
}
