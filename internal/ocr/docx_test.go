package ocr

import (
	"strings"
	"testing"

	"ats-analyzer/internal/report"
)

func TestDocxTextReadsParagraphs(t *testing.T) {
	docxBytes, err := report.BuildDocx("", "Jane Doe\nSenior Engineer")
	if err != nil {
		t.Fatalf("build fixture: %v", err)
	}

	text, err := docxText(docxBytes)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !strings.Contains(text, "Jane Doe") || !strings.Contains(text, "Senior Engineer") {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestDocxTextRejectsGarbage(t *testing.T) {
	if _, err := docxText([]byte("not a zip")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestFlattenDocumentXML(t *testing.T) {
	content := `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:r><w:t>Name:</w:t></w:r><w:r><w:tab/><w:t>Jane</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t xml:space="preserve">line one</w:t><w:br/><w:t>line two</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	text, err := flattenDocumentXML(content)
	if err != nil {
		t.Fatalf("flatten failed: %v", err)
	}
	want := "Name:\tJane\nline one\nline two\n"
	if text != want {
		t.Fatalf("got %q, want %q", text, want)
	}
}
