package docbuild

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

const contentTypesXML = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/word/header1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"/>` +
	`</Types>`

const rootRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const docRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/header" Target="header1.xml"/>` +
	`</Relationships>`

// Minimal style part: Word requires the part to exist, defaults live here.
const stylesXML = xml.Header + `<w:styles xmlns:w="` + nsW + `">` +
	`<w:docDefaults><w:rPrDefault><w:rPr>` +
	`<w:rFonts w:ascii="Times New Roman" w:hAnsi="Times New Roman" w:cs="Times New Roman"/>` +
	`<w:sz w:val="24"/><w:szCs w:val="24"/>` +
	`</w:rPr></w:rPrDefault></w:docDefaults>` +
	`</w:styles>`

// Save writes the document package to path.
func (d *Document) Save(path string) error {
	f, err := os.Create(path) // #nosec G304 -- output path comes from caller configuration
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := d.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// WriteTo serializes the document as a zip package.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)

	parts := []struct {
		name string
		data func() ([]byte, error)
	}{
		{"[Content_Types].xml", staticPart(contentTypesXML)},
		{"_rels/.rels", staticPart(rootRelsXML)},
		{"word/_rels/document.xml.rels", staticPart(docRelsXML)},
		{"word/styles.xml", staticPart(stylesXML)},
		{"word/header1.xml", d.headerXML},
		{"word/document.xml", d.documentXML},
	}

	for _, part := range parts {
		data, err := part.data()
		if err != nil {
			zw.Close()
			return cw.n, fmt.Errorf("building %s: %w", part.name, err)
		}
		f, err := zw.Create(part.name)
		if err != nil {
			zw.Close()
			return cw.n, fmt.Errorf("creating %s: %w", part.name, err)
		}
		if _, err := f.Write(data); err != nil {
			zw.Close()
			return cw.n, fmt.Errorf("writing %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("closing package: %w", err)
	}
	return cw.n, nil
}

func staticPart(s string) func() ([]byte, error) {
	return func() ([]byte, error) { return []byte(s), nil }
}

func (d *Document) documentXML() ([]byte, error) {
	body := xmlBody{SectPr: d.sectPr()}
	for _, block := range d.blocks {
		switch b := block.(type) {
		case *Paragraph:
			body.Content = append(body.Content, b.toXML())
		case *Table:
			body.Content = append(body.Content, b.toXML())
		}
	}

	doc := xmlDocument{XmlnsW: nsW, XmlnsR: nsR, Body: body}
	out, err := xml.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

func (d *Document) sectPr() *xmlSectPr {
	margin := inchesToTwips(d.page.MarginIn)
	sect := &xmlSectPr{
		PgSz: xmlPgSz{
			W: inchesToTwips(d.page.WidthIn),
			H: inchesToTwips(d.page.HeightIn),
		},
		PgMar: xmlPgMar{
			Top:    margin,
			Right:  margin,
			Bottom: margin,
			Left:   margin,
			Header: 720,
			Footer: 720,
		},
	}
	if d.pageNumber != nil {
		sect.HeaderRef = &xmlHeaderRef{Type: "default", ID: "rId2"}
	}
	return sect
}

// headerXML builds the page-number header. The part is always present so
// the package relationships stay fixed; without page numbering it holds a
// single empty paragraph.
func (d *Document) headerXML() ([]byte, error) {
	hdr := xmlHeader{XmlnsW: nsW, XmlnsR: nsR}
	if d.pageNumber == nil {
		hdr.Paras = []xmlParagraph{{}}
	} else {
		rpr := &xmlRPr{
			Fonts: &xmlRFonts{ASCII: d.pageNumber.font, HANSI: d.pageNumber.font, CS: d.pageNumber.font},
			Sz:    &xmlVal{Val: halfPoints(d.pageNumber.sizePt)},
			SzCs:  &xmlVal{Val: halfPoints(d.pageNumber.sizePt)},
		}
		hdr.Paras = []xmlParagraph{{
			Props: &xmlPPr{Jc: &xmlVal{Val: string(AlignRight)}},
			Runs: []xmlRun{
				{Props: rpr, Content: []any{xmlFldChar{Type: "begin"}}},
				{Props: rpr, Content: []any{xmlInstrText{Space: "preserve", Text: "PAGE"}}},
				{Props: rpr, Content: []any{xmlFldChar{Type: "end"}}},
			},
		}}
	}
	out, err := xml.Marshal(hdr)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

func (p *Paragraph) toXML() xmlParagraph {
	para := xmlParagraph{Props: p.propsXML()}
	if p.pageBreak {
		para.Runs = append(para.Runs, xmlRun{Content: []any{xmlBreak{Type: "page"}}})
		return para
	}
	for _, r := range p.runs {
		para.Runs = append(para.Runs, r.toXML())
	}
	return para
}

func (p *Paragraph) propsXML() *xmlPPr {
	props := &xmlPPr{}
	used := false

	if p.align != "" {
		props.Jc = &xmlVal{Val: string(p.align)}
		used = true
	}
	if p.spaceBefore != nil || p.spaceAfter != nil || p.doubleSpaced {
		sp := &xmlSpacing{}
		if p.spaceBefore != nil {
			v := pointsToTwips(*p.spaceBefore)
			sp.Before = &v
		}
		if p.spaceAfter != nil {
			v := pointsToTwips(*p.spaceAfter)
			sp.After = &v
		}
		if p.doubleSpaced {
			line := doubleSpacedLine
			sp.Line = &line
			sp.LineRule = "auto"
		}
		props.Spacing = sp
		used = true
	}
	if p.leftIn != 0 || p.firstLineIn != 0 || p.hangingIn != 0 {
		ind := &xmlInd{}
		if p.leftIn != 0 {
			v := inchesToTwips(p.leftIn)
			ind.Left = &v
		}
		if p.firstLineIn != 0 {
			v := inchesToTwips(p.firstLineIn)
			ind.FirstLine = &v
		}
		if p.hangingIn != 0 {
			v := inchesToTwips(p.hangingIn)
			ind.Hanging = &v
		}
		props.Ind = ind
		used = true
	}

	if !used {
		return nil
	}
	return props
}

func (r *Run) toXML() xmlRun {
	run := xmlRun{Props: r.propsXML()}

	// Newlines become soft line breaks within the run.
	lines := strings.Split(r.text, "\n")
	for i, line := range lines {
		if i > 0 {
			run.Content = append(run.Content, xmlBreak{})
		}
		if line != "" {
			run.Content = append(run.Content, xmlText{Space: "preserve", Text: line})
		}
	}
	return run
}

func (r *Run) propsXML() *xmlRPr {
	props := &xmlRPr{}
	used := false

	if r.font != "" {
		props.Fonts = &xmlRFonts{ASCII: r.font, HANSI: r.font, CS: r.font}
		used = true
	}
	if r.sizePt != 0 {
		props.Sz = &xmlVal{Val: halfPoints(r.sizePt)}
		props.SzCs = &xmlVal{Val: halfPoints(r.sizePt)}
		used = true
	}
	if r.bold {
		props.Bold = &xmlEmpty{}
		used = true
	}
	if r.italic {
		props.Italic = &xmlEmpty{}
		used = true
	}
	if r.color != "" {
		props.Color = &xmlVal{Val: r.color}
		used = true
	}

	if !used {
		return nil
	}
	return props
}

func (t *Table) toXML() xmlTable {
	cols := t.Cols()
	colWidth := 0
	if cols > 0 {
		colWidth = t.widthTwips / cols
	}

	border := xmlBorder{Val: "single", Sz: 4, Space: 0, Color: "000000"}
	tbl := xmlTable{
		Props: xmlTblPr{
			W:  xmlTblW{W: t.widthTwips, Type: "dxa"},
			Jc: &xmlVal{Val: string(AlignCenter)},
			Borders: &xmlTblBorders{
				Top: border, Left: border, Bottom: border,
				Right: border, InsideH: border, InsideV: border,
			},
		},
	}
	for i := 0; i < cols; i++ {
		tbl.Grid.Cols = append(tbl.Grid.Cols, xmlGridCol{W: colWidth})
	}

	for _, row := range t.cells {
		tr := xmlTableRow{}
		for _, cell := range row {
			tc := xmlTableCell{
				Props: xmlTcPr{
					W:      xmlTblW{W: colWidth, Type: "dxa"},
					VAlign: &xmlVal{Val: "center"},
				},
			}
			if len(cell.paras) == 0 {
				// A table cell must contain at least one paragraph.
				tc.Paras = []xmlParagraph{{}}
			}
			for _, p := range cell.paras {
				tc.Paras = append(tc.Paras, p.toXML())
			}
			tr.Cells = append(tr.Cells, tc)
		}
		tbl.Rows = append(tbl.Rows, tr)
	}
	return tbl
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
