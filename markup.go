package trialpack

import (
	"regexp"
	"strings"
)

// Precompiled markup patterns.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Inline emphasis **bold** and *italic*
	boldPattern   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicPattern = regexp.MustCompile(`\*(.*?)\*`)

	// Reference links [label](url)
	linkPattern = regexp.MustCompile(`\[(.*?)\]\(.*?\)`)

	// Superscript citation markers ^12^
	superscriptPattern = regexp.MustCompile(`\^(\d+)\^`)

	// Whitespace-delimited tokens for word counting
	tokenPattern = regexp.MustCompile(`\S+`)

	// Blank-line paragraph separator
	paragraphSplit = regexp.MustCompile(`\n{2,}`)
)

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// CleanMarkdown strips inline markdown markup, leaving plain text: bold and
// italic markers, link targets, superscript notation, and stray escape
// backslashes. Order matters: bold before italic so ** pairs are not
// consumed as two single asterisks.
func CleanMarkdown(text string) string {
	text = boldPattern.ReplaceAllString(text, "$1")
	text = italicPattern.ReplaceAllString(text, "$1")
	text = linkPattern.ReplaceAllString(text, "$1")
	text = superscriptPattern.ReplaceAllString(text, "$1")
	return strings.ReplaceAll(text, `\`, "")
}

// CountWords counts whitespace-delimited tokens after stripping markup, so
// emphasis styling never changes the reported count.
func CountWords(text string) int {
	return len(tokenPattern.FindAllString(CleanMarkdown(text), -1))
}

// SplitParagraphs splits body text on blank lines, dropping empty blocks.
func SplitParagraphs(text string) []string {
	var out []string
	for _, block := range paragraphSplit.Split(text, -1) {
		if trimmed := strings.TrimSpace(block); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
