package docbuild

import "encoding/xml"

// WordprocessingML element structs. Only the subset of OOXML needed for
// journal-formatted documents is modeled; names follow the ECMA-376 schema.

const (
	nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

type xmlDocument struct {
	XMLName xml.Name `xml:"w:document"`
	XmlnsW  string   `xml:"xmlns:w,attr"`
	XmlnsR  string   `xml:"xmlns:r,attr"`
	Body    xmlBody  `xml:"w:body"`
}

type xmlBody struct {
	Content []any
	SectPr  *xmlSectPr `xml:"w:sectPr,omitempty"`
}

type xmlSectPr struct {
	HeaderRef *xmlHeaderRef `xml:"w:headerReference,omitempty"`
	PgSz      xmlPgSz       `xml:"w:pgSz"`
	PgMar     xmlPgMar      `xml:"w:pgMar"`
}

type xmlHeaderRef struct {
	Type string `xml:"w:type,attr"`
	ID   string `xml:"r:id,attr"`
}

type xmlPgSz struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type xmlPgMar struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}

type xmlParagraph struct {
	XMLName xml.Name `xml:"w:p"`
	Props   *xmlPPr  `xml:"w:pPr,omitempty"`
	Runs    []xmlRun
}

type xmlPPr struct {
	Spacing *xmlSpacing `xml:"w:spacing,omitempty"`
	Ind     *xmlInd     `xml:"w:ind,omitempty"`
	Jc      *xmlVal     `xml:"w:jc,omitempty"`
}

type xmlSpacing struct {
	Before   *int   `xml:"w:before,attr,omitempty"`
	After    *int   `xml:"w:after,attr,omitempty"`
	Line     *int   `xml:"w:line,attr,omitempty"`
	LineRule string `xml:"w:lineRule,attr,omitempty"`
}

type xmlInd struct {
	Left      *int `xml:"w:left,attr,omitempty"`
	FirstLine *int `xml:"w:firstLine,attr,omitempty"`
	Hanging   *int `xml:"w:hanging,attr,omitempty"`
}

type xmlVal struct {
	Val string `xml:"w:val,attr"`
}

type xmlRun struct {
	XMLName xml.Name `xml:"w:r"`
	Props   *xmlRPr  `xml:"w:rPr,omitempty"`
	Content []any
}

type xmlRPr struct {
	Fonts  *xmlRFonts `xml:"w:rFonts,omitempty"`
	Bold   *xmlEmpty  `xml:"w:b,omitempty"`
	Italic *xmlEmpty  `xml:"w:i,omitempty"`
	Color  *xmlVal    `xml:"w:color,omitempty"`
	Sz     *xmlVal    `xml:"w:sz,omitempty"`
	SzCs   *xmlVal    `xml:"w:szCs,omitempty"`
}

type xmlRFonts struct {
	ASCII string `xml:"w:ascii,attr"`
	HANSI string `xml:"w:hAnsi,attr"`
	CS    string `xml:"w:cs,attr"`
}

type xmlEmpty struct{}

type xmlText struct {
	XMLName xml.Name `xml:"w:t"`
	Space   string   `xml:"xml:space,attr,omitempty"`
	Text    string   `xml:",chardata"`
}

type xmlBreak struct {
	XMLName xml.Name `xml:"w:br"`
	Type    string   `xml:"w:type,attr,omitempty"`
}

type xmlFldChar struct {
	XMLName xml.Name `xml:"w:fldChar"`
	Type    string   `xml:"w:fldCharType,attr"`
}

type xmlInstrText struct {
	XMLName xml.Name `xml:"w:instrText"`
	Space   string   `xml:"xml:space,attr,omitempty"`
	Text    string   `xml:",chardata"`
}

type xmlTable struct {
	XMLName xml.Name   `xml:"w:tbl"`
	Props   xmlTblPr   `xml:"w:tblPr"`
	Grid    xmlTblGrid `xml:"w:tblGrid"`
	Rows    []xmlTableRow
}

type xmlTblPr struct {
	W       xmlTblW        `xml:"w:tblW"`
	Jc      *xmlVal        `xml:"w:jc,omitempty"`
	Borders *xmlTblBorders `xml:"w:tblBorders,omitempty"`
}

type xmlTblW struct {
	W    int    `xml:"w:w,attr"`
	Type string `xml:"w:type,attr"`
}

type xmlTblBorders struct {
	Top     xmlBorder `xml:"w:top"`
	Left    xmlBorder `xml:"w:left"`
	Bottom  xmlBorder `xml:"w:bottom"`
	Right   xmlBorder `xml:"w:right"`
	InsideH xmlBorder `xml:"w:insideH"`
	InsideV xmlBorder `xml:"w:insideV"`
}

type xmlBorder struct {
	Val   string `xml:"w:val,attr"`
	Sz    int    `xml:"w:sz,attr"`
	Space int    `xml:"w:space,attr"`
	Color string `xml:"w:color,attr"`
}

type xmlTblGrid struct {
	Cols []xmlGridCol
}

type xmlGridCol struct {
	XMLName xml.Name `xml:"w:gridCol"`
	W       int      `xml:"w:w,attr"`
}

type xmlTableRow struct {
	XMLName xml.Name `xml:"w:tr"`
	Cells   []xmlTableCell
}

type xmlTableCell struct {
	XMLName xml.Name `xml:"w:tc"`
	Props   xmlTcPr  `xml:"w:tcPr"`
	Paras   []xmlParagraph
}

type xmlTcPr struct {
	W      xmlTblW `xml:"w:tcW"`
	VAlign *xmlVal `xml:"w:vAlign,omitempty"`
}

type xmlHeader struct {
	XMLName xml.Name `xml:"w:hdr"`
	XmlnsW  string   `xml:"xmlns:w,attr"`
	XmlnsR  string   `xml:"xmlns:r,attr"`
	Paras   []xmlParagraph
}
