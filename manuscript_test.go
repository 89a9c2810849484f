package trialpack

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/fumiama/go-docx"

	"github.com/mbellard/trialpack/internal/docbuild"
)

// documentXML serializes a built document and returns the main document
// part as XML text.
func documentXML(t *testing.T, doc *docbuild.Document) string {
	t.Helper()

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening document part: %v", err)
		}
		defer rc.Close()
		var part bytes.Buffer
		if _, err := part.ReadFrom(rc); err != nil {
			t.Fatalf("reading document part: %v", err)
		}
		return part.String()
	}
	t.Fatal("word/document.xml not found in package")
	return ""
}

// renderTexts serializes a built document and reparses it, returning the
// plain text of every paragraph in order.
func renderTexts(t *testing.T, doc *docbuild.Document) []string {
	t.Helper()

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	parsed, err := docx.Parse(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("docx.Parse() error = %v", err)
	}

	var out []string
	for _, item := range parsed.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		var sb strings.Builder
		for _, child := range para.Children {
			run, ok := child.(*docx.Run)
			if !ok {
				continue
			}
			for _, rc := range run.Children {
				if txt, ok := rc.(*docx.Text); ok {
					sb.WriteString(txt.Text)
				}
			}
		}
		out = append(out, sb.String())
	}
	return out
}

func containsText(texts []string, want string) bool {
	for _, text := range texts {
		if strings.Contains(text, want) {
			return true
		}
	}
	return false
}

func TestManuscript(t *testing.T) {
	t.Parallel()

	svc := New()
	doc, err := svc.Manuscript(sampleManuscript)
	if err != nil {
		t.Fatalf("Manuscript() error = %v", err)
	}
	texts := renderTexts(t, doc)

	for _, want := range []string{
		"Sex Representation in Trials",
		"Jane D. Researcher1, Alex L. Scientist2",
		"ABSTRACT",
		"Background: Trials under-enroll female participants.",
		"Results: Enrollment gaps persisted across disease areas.",
		"Introduction",
		"Methods",
		"List of Abbreviations",
		"Ethics approval",
		"1. First reference.",
	} {
		if !containsText(texts, want) {
			t.Errorf("rendered manuscript missing %q", want)
		}
	}
}

func TestManuscriptStructuredAbstract(t *testing.T) {
	t.Parallel()

	source := "# Title\n\n## Abstract\n**Background**: text\n\n**Results**: more\n"
	doc, err := New().Manuscript(source)
	if err != nil {
		t.Fatalf("Manuscript() error = %v", err)
	}
	texts := renderTexts(t, doc)

	var background, results bool
	for _, text := range texts {
		if text == "Background: text" {
			background = true
		}
		if text == "Results: more" {
			results = true
		}
	}
	if !background || !results {
		t.Errorf("structured abstract paragraphs not rendered, got %q", texts)
	}
}

func TestManuscriptPlainAbstractFallback(t *testing.T) {
	t.Parallel()

	source := "# Title\n\n## Abstract\n\nA plain unstructured abstract.\n"
	doc, err := New().Manuscript(source)
	if err != nil {
		t.Fatalf("Manuscript() error = %v", err)
	}
	if !containsText(renderTexts(t, doc), "A plain unstructured abstract.") {
		t.Error("plain abstract text not rendered")
	}
}

func TestManuscriptWordCounts(t *testing.T) {
	t.Parallel()

	source := "# Title\n\n## Abstract\n\none two three\n\n## Methods\n\n**four** five\n\n## Results\n\nsix\n"
	doc, err := New().Manuscript(source)
	if err != nil {
		t.Fatalf("Manuscript() error = %v", err)
	}
	texts := renderTexts(t, doc)

	// Title page counts body sections only; abstract page counts the
	// abstract.
	if !containsText(texts, "Word Count: 3") {
		t.Errorf("expected body word count of 3, got %q", texts)
	}
	var counts int
	for _, text := range texts {
		if strings.HasPrefix(text, "Word Count:") {
			counts++
		}
	}
	if counts != 2 {
		t.Errorf("expected 2 word-count disclosures, got %d", counts)
	}
}

func TestManuscriptEmptyInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty string", input: ""},
		{name: "whitespace only", input: "  \n\t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := New().Manuscript(tt.input); err != ErrEmptyMarkdown {
				t.Errorf("Manuscript() error = %v, want ErrEmptyMarkdown", err)
			}
		})
	}
}

func TestManuscriptMissingSectionsSkipped(t *testing.T) {
	t.Parallel()

	doc, err := New().Manuscript("# Only a Title\n")
	if err != nil {
		t.Fatalf("Manuscript() error = %v", err)
	}
	texts := renderTexts(t, doc)
	if !containsText(texts, "Only a Title") {
		t.Error("title not rendered")
	}
	if containsText(texts, "ABSTRACT") {
		t.Error("abstract heading rendered without an abstract section")
	}
}
