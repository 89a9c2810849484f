package trialpack

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/mbellard/trialpack/internal/docbuild"
)

var (
	tableCaptionPattern  = regexp.MustCompile(`\*\*Table \d+[.:]\s*(.*?)\*\*`)
	tableFootnotePattern = regexp.MustCompile(`(?m)^Note: (.*)$`)
	numericCellPattern   = regexp.MustCompile(`^-?\d+(\.\d+)?%?$`)
)

var tableMarkdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// tableData is one parsed table file: caption, grid, and optional footnote.
type tableData struct {
	Caption  string
	Rows     [][]string
	Footnote string
}

// Table renders a single table file into a formatted document. The caption
// becomes a centered bold title numbered with the given table number, the
// grid gets a bold header row with numeric cells right-aligned, and a
// trailing "Note:" line becomes an italic footnote.
func (s *Service) Table(content string, number int) (*docbuild.Document, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyMarkdown
	}

	data, err := parseTable(content)
	if err != nil {
		return nil, err
	}
	s.log.Info("parsed table", "number", number,
		"rows", len(data.Rows), "cols", len(data.Rows[0]))

	doc := docbuild.New()

	title := doc.AddParagraph().Align(docbuild.AlignCenter).SpaceAfter(6)
	bodyRun(title, "Table "+strconv.Itoa(number)+". "+data.Caption).Bold()

	rows, cols := len(data.Rows), len(data.Rows[0])
	table := doc.AddTable(rows, cols)
	for i, row := range data.Rows {
		for j, cellText := range row {
			if j >= cols {
				break
			}
			p := table.Cell(i, j).AddParagraph()
			run := bodyRun(p, cellText)
			switch {
			case i == 0:
				p.Align(docbuild.AlignCenter)
				run.Bold()
			case isNumericCell(cellText):
				p.Align(docbuild.AlignRight)
			case j == 0:
				p.Align(docbuild.AlignLeft)
			default:
				p.Align(docbuild.AlignCenter)
			}
		}
	}

	if data.Footnote != "" {
		p := doc.AddParagraph().SpaceBefore(6)
		p.AddRun("Note: " + data.Footnote).Font(BodyFont).Size(10).Italic()
	}

	return doc, nil
}

func isNumericCell(text string) bool {
	text = strings.TrimSpace(text)
	return numericCellPattern.MatchString(text) || text == "p" || text == "P"
}

// parseTable extracts the caption, footnote, and cell grid from table
// markdown. The grid is parsed through the goldmark table extension so
// escapes and inline markup are handled the same way the rest of the
// pipeline handles them.
func parseTable(content string) (tableData, error) {
	content = NormalizeLineEndings(content)

	var data tableData
	if m := tableCaptionPattern.FindStringSubmatch(content); m != nil {
		data.Caption = strings.TrimSpace(m[1])
	} else {
		data.Caption = "Table"
	}
	if m := tableFootnotePattern.FindStringSubmatch(content); m != nil {
		data.Footnote = strings.TrimSpace(m[1])
	}

	source := []byte(content)
	root := tableMarkdown.Parser().Parse(text.NewReader(source))

	var table *east.Table
	gast.Walk(root, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if t, ok := n.(*east.Table); ok && entering && table == nil {
			table = t
			return gast.WalkSkipChildren, nil
		}
		return gast.WalkContinue, nil
	})
	if table == nil {
		return tableData{}, ErrNoTable
	}

	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, CleanMarkdown(nodeText(cell, source)))
		}
		if len(cells) > 0 {
			data.Rows = append(data.Rows, cells)
		}
	}
	if len(data.Rows) == 0 {
		return tableData{}, ErrNoTable
	}
	return data, nil
}

// nodeText concatenates the raw text of every text node under n.
func nodeText(n gast.Node, source []byte) string {
	var sb strings.Builder
	gast.Walk(n, func(c gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		if t, ok := c.(*gast.Text); ok {
			sb.Write(t.Segment.Value(source))
		}
		return gast.WalkContinue, nil
	})
	return sb.String()
}
