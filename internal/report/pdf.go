package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Data holds the fields rendered into the analysis report.
type Data struct {
	ATSScore      int
	SkillsFound   []string
	SkillsMissing []string
	Strengths     []string
	Weaknesses    []string
	Improvements  []string
}

// BuildPDF renders the analysis report as a PDF document.
// Sections are rendered in a fixed order; empty sections keep their heading.
func BuildPDF(d Data) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle("ATS Resume Analysis Report", true)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr("ATS Resume Analysis Report"), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("ATS Score: %d%%", d.ATSScore), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	sections := []struct {
		title string
		items []string
	}{
		{"Skills Found", d.SkillsFound},
		{"Skills Missing", d.SkillsMissing},
		{"Strengths", d.Strengths},
		{"Weaknesses", d.Weaknesses},
		{"Improvements", d.Improvements},
	}
	for _, section := range sections {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, tr(section.title), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, item := range section.items {
			pdf.MultiCell(0, 5.5, tr("- "+item), "", "L", false)
		}
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
