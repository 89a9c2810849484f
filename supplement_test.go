package trialpack

import (
	"errors"
	"strings"
	"testing"
)

const sampleSupplement = `# Supplementary Methods

## Detailed Data Processing and Analysis Methods

### Data Cleaning

Records with missing country data were dropped.

` + "```python\ndf = df.drop_duplicates(subset=\"NCT Number_trial\")\n```" + `

Remaining records were categorized.

### Statistical Models

Logistic regression was fitted per disease category.

## Software and Package Versions

- pandas 2.1.0
- statsmodels 0.14.0
`

func TestSupplement(t *testing.T) {
	t.Parallel()

	doc, err := New().Supplement(sampleSupplement, "Sex Representation Equity in Clinical Trials")
	if err != nil {
		t.Fatalf("Supplement() error = %v", err)
	}
	texts := renderTexts(t, doc)

	for _, want := range []string{
		"Supplementary Materials",
		"Sex Representation Equity in Clinical Trials",
		"DETAILED METHODS",
		"Data Cleaning",
		"Records with missing country data were dropped.",
		"Remaining records were categorized.",
		"Statistical Models",
		"Software and Package Versions",
		"pandas 2.1.0",
	} {
		if !containsText(texts, want) {
			t.Errorf("rendered supplement missing %q", want)
		}
	}
}

func TestSupplementCodeFormatting(t *testing.T) {
	t.Parallel()

	doc, err := New().Supplement(sampleSupplement, "")
	if err != nil {
		t.Fatalf("Supplement() error = %v", err)
	}
	content := documentXML(t, doc)

	if !strings.Contains(content, "Courier New") {
		t.Error("code listing not set in monospace font")
	}
	if !strings.Contains(content, "drop_duplicates") {
		t.Error("code text not rendered")
	}
	// Highlighted tokens carry explicit colors.
	if !strings.Contains(content, "<w:color") {
		t.Error("no colored runs in highlighted code")
	}
}

func TestSupplementSoftwareListOrder(t *testing.T) {
	t.Parallel()

	doc, err := New().Supplement(sampleSupplement, "")
	if err != nil {
		t.Fatalf("Supplement() error = %v", err)
	}
	texts := renderTexts(t, doc)

	var pandasIdx, statsIdx int = -1, -1
	for i, text := range texts {
		if strings.Contains(text, "pandas 2.1.0") {
			pandasIdx = i
		}
		if strings.Contains(text, "statsmodels 0.14.0") {
			statsIdx = i
		}
	}
	if pandasIdx == -1 || statsIdx == -1 || pandasIdx > statsIdx {
		t.Errorf("software versions out of order: pandas=%d statsmodels=%d", pandasIdx, statsIdx)
	}
}

func TestSupplementEmptyInput(t *testing.T) {
	t.Parallel()

	if _, err := New().Supplement("", "Title"); !errors.Is(err, ErrEmptyMarkdown) {
		t.Errorf("Supplement() error = %v, want ErrEmptyMarkdown", err)
	}
}
