package trialpack

import (
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/mbellard/trialpack/internal/docbuild"
)

var (
	codeFencePattern = regexp.MustCompile("(?s)```([a-zA-Z0-9]*)[ \t]*\n(.*?)```")
	softwarePattern  = regexp.MustCompile(`(?s)(?:\A|\n)## Software and Package Versions[ \t]*\n(.*)\z`)
)

// codeHighlightStyle names the chroma style used for supplement code
// listings.
const codeHighlightStyle = "github"

// Supplement renders supplementary methods markdown into a document: a
// title page, the detailed methods subsections with syntax-highlighted
// code listings, and the software versions list.
func (s *Service) Supplement(content, manuscriptTitle string) (*docbuild.Document, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyMarkdown
	}
	content = NormalizeLineEndings(content)

	doc := docbuild.New()

	title := doc.AddParagraph().Align(docbuild.AlignCenter)
	title.AddRun("Supplementary Materials").Font(BodyFont).Size(14).Bold()

	if manuscriptTitle != "" {
		p := doc.AddParagraph().Align(docbuild.AlignCenter)
		bodyRun(p, manuscriptTitle).Italic()
	}

	doc.AddPageBreak()

	h := doc.AddParagraph()
	bodyRun(h, "DETAILED METHODS").Bold()

	methods := content
	var software string
	if m := softwarePattern.FindStringSubmatchIndex(content); m != nil {
		methods = content[:m[0]]
		software = strings.TrimSpace(content[m[2]:m[3]])
	}

	subsections := ExtractSubsections(methods)
	if len(subsections) == 0 {
		s.log.Warn("no subsections found in supplementary methods")
	}
	for _, sub := range subsections {
		h := doc.AddParagraph().SpaceBefore(12).SpaceAfter(6)
		bodyRun(h, sub.Title).Bold()
		s.renderMethodsContent(doc, sub.Content)
	}

	if software != "" {
		h := doc.AddParagraph().SpaceBefore(12).SpaceAfter(6)
		bodyRun(h, "Software and Package Versions").Bold()
		for _, line := range strings.Split(software, "\n") {
			item := strings.TrimSpace(line)
			if item == "" {
				continue
			}
			p := doc.AddParagraph().DoubleSpaced().SpaceAfter(0).LeftIndent(0.25)
			bodyRun(p, CleanMarkdown(item))
		}
	}

	return doc, nil
}

// renderMethodsContent alternates prose paragraphs and fenced code blocks
// within one subsection. Prose is double-spaced body text; code becomes a
// single-spaced, indented, highlighted listing.
func (s *Service) renderMethodsContent(doc *docbuild.Document, content string) {
	last := 0
	for _, m := range codeFencePattern.FindAllStringSubmatchIndex(content, -1) {
		s.renderProse(doc, content[last:m[0]])
		lang := content[m[2]:m[3]]
		code := strings.TrimRight(content[m[4]:m[5]], "\n")
		s.renderCodeBlock(doc, lang, code)
		last = m[1]
	}
	s.renderProse(doc, content[last:])
}

func (s *Service) renderProse(doc *docbuild.Document, text string) {
	for _, para := range SplitParagraphs(text) {
		cleaned := CleanMarkdown(para)
		if cleaned == "" {
			continue
		}
		p := doc.AddParagraph().DoubleSpaced().SpaceAfter(0)
		bodyRun(p, cleaned)
	}
}

// renderCodeBlock writes one fenced code block as a monospace paragraph
// with per-token syntax colors. An unknown language falls back to the
// plaintext lexer and an unhighlighted listing.
func (s *Service) renderCodeBlock(doc *docbuild.Document, lang, code string) {
	p := doc.AddParagraph().SpaceAfter(6).LeftIndent(0.5)

	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(codeHighlightStyle)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		s.log.Warn("code highlighting failed, using plain listing", "error", err)
		p.AddRun(code).Font(CodeFont).Size(CodeSizePt)
		return
	}

	for _, token := range iterator.Tokens() {
		run := p.AddRun(token.Value).Font(CodeFont).Size(CodeSizePt)
		entry := style.Get(token.Type)
		if entry.Colour.IsSet() {
			run.Color(entry.Colour.String())
		}
		if entry.Bold == chroma.Yes {
			run.Bold()
		}
		if entry.Italic == chroma.Yes {
			run.Italic()
		}
	}
}
