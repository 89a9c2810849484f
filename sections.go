package trialpack

import (
	"regexp"
	"strings"
)

// Known manuscript section names. A section appears in the map only when
// its heading pattern matched; renderers must tolerate absence.
const (
	SectionTitle         = "title"
	SectionTitlePage     = "title_page"
	SectionAbstract      = "abstract"
	SectionIntroduction  = "introduction"
	SectionMethods       = "methods"
	SectionResults       = "results"
	SectionDiscussion    = "discussion"
	SectionConclusion    = "conclusion"
	SectionAbbreviations = "abbreviations"
	SectionDeclarations  = "declarations"
	SectionReferences    = "references"
)

// bodySections are the main-content sections, in manuscript order. They
// feed both rendering and the title-page word count.
var bodySections = []string{
	SectionIntroduction,
	SectionMethods,
	SectionResults,
	SectionDiscussion,
	SectionConclusion,
}

// SectionMap maps a section name to its raw markdown text block.
type SectionMap map[string]string

var titlePattern = regexp.MustCompile(`(?m)^# (.+)$`)

// sectionRegexp builds the extraction pattern for one level-two heading:
// the heading line, then content until the next heading of the same or
// higher level, or end of text.
func sectionRegexp(heading string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)(?:\A|\n)## ` + heading + `[ \t]*\n(.*?)(?:\n#{1,2}[ \t]|\z)`)
}

var sectionPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{SectionTitlePage, sectionRegexp(`Title Page`)},
	{SectionAbstract, sectionRegexp(`Abstract`)},
	{SectionIntroduction, sectionRegexp(`(?:Background|Introduction)`)},
	{SectionMethods, sectionRegexp(`Methods`)},
	{SectionResults, sectionRegexp(`Results`)},
	{SectionDiscussion, sectionRegexp(`Discussion`)},
	{SectionConclusion, sectionRegexp(`Conclusions`)},
	{SectionAbbreviations, sectionRegexp(`List of abbreviations`)},
	{SectionDeclarations, sectionRegexp(`Declarations`)},
	{SectionReferences, sectionRegexp(`References`)},
}

// SplitSections segments manuscript markdown into labeled sections.
// The function is pure: re-running on unchanged input yields an identical
// map. Missing sections are simply absent.
func SplitSections(content string) SectionMap {
	content = NormalizeLineEndings(content)
	sections := make(SectionMap)

	if m := titlePattern.FindStringSubmatch(content); m != nil {
		sections[SectionTitle] = strings.TrimSpace(m[1])
	}

	for _, sp := range sectionPatterns {
		if m := sp.re.FindStringSubmatch(content); m != nil {
			sections[sp.name] = strings.TrimSpace(m[1])
		}
	}
	return sections
}

// ExtractField finds a "**Label**: value" block inside already-extracted
// section text. The value runs until a blank line followed by another bold
// label, or end of text.
func ExtractField(text, label string) (string, bool) {
	re := regexp.MustCompile(`(?s)\*\*` + regexp.QuoteMeta(label) + `\*\*:\s*(.*?)(?:\n\n\*\*|\z)`)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// LabeledBlock is one "**Label**: content" unit of a structured abstract.
type LabeledBlock struct {
	Label   string
	Content string
}

// A label only opens a block at the start of the text or after a blank
// line, so bold-colon runs inside a sentence stay part of the prose.
var labeledBlockPattern = regexp.MustCompile(`(?:\A|\n\n)\*\*([^*\n]+)\*\*:[ \t]*`)

// ExtractLabeledBlocks splits structured-abstract text into its bolded
// label blocks. Content for each label runs to the start of the next label.
func ExtractLabeledBlocks(text string) []LabeledBlock {
	matches := labeledBlockPattern.FindAllStringSubmatchIndex(text, -1)
	blocks := make([]LabeledBlock, 0, len(matches))
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		blocks = append(blocks, LabeledBlock{
			Label:   text[m[2]:m[3]],
			Content: strings.TrimSpace(text[m[1]:end]),
		})
	}
	return blocks
}

// Subsection is one "### Title" unit inside a declarations or supplement
// block.
type Subsection struct {
	Title   string
	Content string
}

var subsectionPattern = regexp.MustCompile(`(?m)^### (.+)$`)

// ExtractSubsections splits text on level-three headings, scoped to an
// already-extracted parent section.
func ExtractSubsections(text string) []Subsection {
	matches := subsectionPattern.FindAllStringSubmatchIndex(text, -1)
	subs := make([]Subsection, 0, len(matches))
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		subs = append(subs, Subsection{
			Title:   strings.TrimSpace(text[m[2]:m[3]]),
			Content: strings.TrimSpace(text[m[1]:end]),
		})
	}
	return subs
}

var (
	addresseePattern = regexp.MustCompile(`(?ms)^[ \t]*To:\s*(.*?)(?:\n\n|\z)`)
	rePattern        = regexp.MustCompile(`(?m)^[ \t]*Re:[ \t]*(.+)$`)
	subjectPattern   = regexp.MustCompile(`(?m)^[ \t]*Subject:[ \t]*(.+)$`)
)

// ExtractAddressee pulls a leading "To:" block out of cover-letter text,
// returning the addressee and the remaining content.
func ExtractAddressee(content string) (addressee, rest string, ok bool) {
	m := addresseePattern.FindStringSubmatchIndex(content)
	if m == nil {
		return "", content, false
	}
	addressee = strings.TrimSpace(content[m[2]:m[3]])
	rest = content[:m[0]] + content[m[1]:]
	return addressee, rest, true
}

// ExtractSubject pulls a "Re:" or "Subject:" line out of cover-letter text,
// returning the subject and the remaining content.
func ExtractSubject(content string) (subject, rest string, ok bool) {
	for _, re := range []*regexp.Regexp{rePattern, subjectPattern} {
		if m := re.FindStringSubmatchIndex(content); m != nil {
			subject = strings.TrimSpace(content[m[2]:m[3]])
			rest = content[:m[0]] + content[m[1]:]
			return subject, rest, true
		}
	}
	return "", content, false
}

// ParseAuthorNames splits an authors block into individual names, dropping
// superscript affiliation markers and markup.
func ParseAuthorNames(authorsText string) []string {
	cleaned := CleanMarkdown(superscriptPattern.ReplaceAllString(authorsText, ""))
	var names []string
	for _, part := range strings.Split(cleaned, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
