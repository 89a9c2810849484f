package trialpack

import (
	"strings"

	"github.com/mbellard/trialpack/internal/docbuild"
)

// CoverLetter renders a submission cover letter from letter markdown. The
// current date is stamped at the top, an addressee block and subject line
// are pulled out of the letter when present, and the signature block lists
// the authors parsed from the manuscript title page. When no authors can
// be parsed the signature falls back to blank lines for handwriting.
func (s *Service) CoverLetter(letter, manuscript string) (*docbuild.Document, error) {
	if strings.TrimSpace(letter) == "" {
		return nil, ErrEmptyMarkdown
	}

	doc := docbuild.New()

	p := doc.AddParagraph().SpaceAfter(12)
	bodyRun(p, s.now().Format("January 2, 2006"))

	body := NormalizeLineEndings(letter)

	addressee, body, ok := ExtractAddressee(body)
	if ok {
		p := doc.AddParagraph().SpaceAfter(12)
		bodyRun(p, addressee)
	}

	subject, body, ok := ExtractSubject(body)
	if ok {
		p := doc.AddParagraph().SpaceAfter(12)
		bodyRun(p, "Re: ").Bold()
		bodyRun(p, CleanMarkdown(subject)).Bold()
	}

	for _, para := range SplitParagraphs(body) {
		text := CleanMarkdown(para)
		if text == "" {
			continue
		}
		p := doc.AddParagraph().DoubleSpaced().SpaceAfter(12).FirstLineIndent(0.5)
		bodyRun(p, text)
	}

	p = doc.AddParagraph().SpaceBefore(12).SpaceAfter(24)
	bodyRun(p, "Sincerely,")

	names := s.signatureNames(manuscript)
	for _, name := range names {
		p := doc.AddParagraph().SpaceAfter(6)
		bodyRun(p, name)
	}

	return doc, nil
}

// signatureNames extracts author names from the manuscript title page. If
// none parse, three blank signature lines are returned instead.
func (s *Service) signatureNames(manuscript string) []string {
	sections := SplitSections(manuscript)
	if titlePage, ok := sections[SectionTitlePage]; ok {
		if authors, ok := ExtractField(titlePage, "Authors"); ok {
			if names := ParseAuthorNames(authors); len(names) > 0 {
				return names
			}
		}
	}
	s.log.Warn("no author names found for cover letter signature block")
	lines := make([]string, 3)
	for i := range lines {
		lines[i] = "_________________________"
	}
	return lines
}
