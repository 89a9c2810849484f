// Package docbuild writes Office Open XML (.docx) packages with the page
// geometry, header fields, and paragraph-level formatting that journal
// submissions require. It models only what the renderers need: paragraphs
// with styled runs, grid-bordered tables, page breaks, and a PAGE-field
// header for page numbering.
package docbuild

import (
	"strconv"
	"strings"
)

// Unit conversions. OOXML measures page geometry in twentieths of a point
// (twips) and font sizes in half-points.
const (
	twipsPerInch  = 1440
	twipsPerPoint = 20
)

// Alignment values for paragraph justification.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// doubleSpacedLine is the w:line value for double line spacing with
// lineRule "auto" (240 twips per single line).
const doubleSpacedLine = 480

// PageSetup holds page dimensions and uniform margins in inches.
type PageSetup struct {
	WidthIn  float64
	HeightIn float64
	MarginIn float64
}

// LetterPage is US Letter with one-inch margins.
func LetterPage() PageSetup {
	return PageSetup{WidthIn: 8.5, HeightIn: 11, MarginIn: 1}
}

// Document accumulates content and serializes to a .docx package.
type Document struct {
	page       PageSetup
	blocks     []any // *Paragraph or *Table
	pageNumber *headerNumbering
}

type headerNumbering struct {
	font   string
	sizePt float64
}

// New returns an empty document with US Letter page setup.
func New() *Document {
	return &Document{page: LetterPage()}
}

// SetPage overrides the default page setup.
func (d *Document) SetPage(p PageSetup) {
	d.page = p
}

// AddPageNumbers places a right-aligned PAGE field in the page header.
func (d *Document) AddPageNumbers(font string, sizePt float64) {
	d.pageNumber = &headerNumbering{font: font, sizePt: sizePt}
}

// AddParagraph appends an empty paragraph and returns it for styling.
func (d *Document) AddParagraph() *Paragraph {
	p := &Paragraph{}
	d.blocks = append(d.blocks, p)
	return p
}

// AddPageBreak appends a paragraph containing a page break.
func (d *Document) AddPageBreak() {
	p := d.AddParagraph()
	p.pageBreak = true
}

// AddTable appends a rows-by-cols table spanning the printable page width,
// with single-line grid borders.
func (d *Document) AddTable(rows, cols int) *Table {
	t := newTable(rows, cols, d.contentWidthTwips())
	d.blocks = append(d.blocks, t)
	return t
}

func (d *Document) contentWidthTwips() int {
	return int((d.page.WidthIn - 2*d.page.MarginIn) * twipsPerInch)
}

// Paragraph is a block of runs with optional paragraph-level formatting.
type Paragraph struct {
	align        Alignment
	spaceBefore  *float64 // points
	spaceAfter   *float64 // points
	doubleSpaced bool
	leftIn       float64 // inches
	firstLineIn  float64
	hangingIn    float64
	pageBreak    bool
	runs         []*Run
}

// Align sets paragraph justification.
func (p *Paragraph) Align(a Alignment) *Paragraph {
	p.align = a
	return p
}

// SpaceBefore sets spacing before the paragraph in points.
func (p *Paragraph) SpaceBefore(pt float64) *Paragraph {
	p.spaceBefore = &pt
	return p
}

// SpaceAfter sets spacing after the paragraph in points.
func (p *Paragraph) SpaceAfter(pt float64) *Paragraph {
	p.spaceAfter = &pt
	return p
}

// DoubleSpaced applies double line spacing.
func (p *Paragraph) DoubleSpaced() *Paragraph {
	p.doubleSpaced = true
	return p
}

// LeftIndent sets the left indent in inches.
func (p *Paragraph) LeftIndent(in float64) *Paragraph {
	p.leftIn = in
	return p
}

// FirstLineIndent sets the first-line indent in inches.
func (p *Paragraph) FirstLineIndent(in float64) *Paragraph {
	p.firstLineIn = in
	return p
}

// HangingIndent sets a hanging indent in inches. The left indent should be
// set to at least the same value for the usual reference-list layout.
func (p *Paragraph) HangingIndent(in float64) *Paragraph {
	p.hangingIn = in
	return p
}

// AddRun appends a text run. Newlines inside text become soft line breaks.
func (p *Paragraph) AddRun(text string) *Run {
	r := &Run{text: text}
	p.runs = append(p.runs, r)
	return r
}

// Run is a contiguous span of identically formatted text.
type Run struct {
	text   string
	font   string
	sizePt float64
	bold   bool
	italic bool
	color  string // RRGGBB, no leading #
}

// Font sets the run font by name.
func (r *Run) Font(name string) *Run {
	r.font = name
	return r
}

// Size sets the font size in points.
func (r *Run) Size(pt float64) *Run {
	r.sizePt = pt
	return r
}

// Bold makes the run bold.
func (r *Run) Bold() *Run {
	r.bold = true
	return r
}

// Italic makes the run italic.
func (r *Run) Italic() *Run {
	r.italic = true
	return r
}

// Color sets the text color as a hex RRGGBB value.
func (r *Run) Color(hex string) *Run {
	r.color = strings.TrimPrefix(hex, "#")
	return r
}

// Table is a fixed-size grid of cells.
type Table struct {
	widthTwips int
	cells      [][]*Cell
}

func newTable(rows, cols int, widthTwips int) *Table {
	t := &Table{widthTwips: widthTwips}
	t.cells = make([][]*Cell, rows)
	for i := range t.cells {
		t.cells[i] = make([]*Cell, cols)
		for j := range t.cells[i] {
			t.cells[i][j] = &Cell{}
		}
	}
	return t
}

// Rows returns the number of rows.
func (t *Table) Rows() int { return len(t.cells) }

// Cols returns the number of columns.
func (t *Table) Cols() int {
	if len(t.cells) == 0 {
		return 0
	}
	return len(t.cells[0])
}

// Cell returns the cell at (row, col).
func (t *Table) Cell(row, col int) *Cell {
	return t.cells[row][col]
}

// Cell holds paragraphs inside a table cell.
type Cell struct {
	paras []*Paragraph
}

// AddParagraph appends a paragraph to the cell.
func (c *Cell) AddParagraph() *Paragraph {
	p := &Paragraph{}
	c.paras = append(c.paras, p)
	return p
}

func halfPoints(pt float64) string {
	return strconv.Itoa(int(pt * 2))
}

func pointsToTwips(pt float64) int {
	return int(pt * twipsPerPoint)
}

func inchesToTwips(in float64) int {
	return int(in * twipsPerInch)
}
