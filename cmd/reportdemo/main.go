package main

import (
	"archive/zip"
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ats-analyzer/internal/report"
)

func main() {
	outDir := flag.String("out", "./out", "output directory for generated artifacts")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir failed: %v\n", err)
		os.Exit(1)
	}

	pdfBytes, err := report.BuildPDF(sampleData())
	if err != nil {
		fmt.Fprintf(os.Stderr, "pdf render failed: %v\n", err)
		os.Exit(1)
	}
	pdfPath := filepath.Join(*outDir, "ATS_Report.pdf")
	if err := writeAndValidatePDF(pdfPath, pdfBytes); err != nil {
		fmt.Fprintf(os.Stderr, "pdf validation failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK: wrote %s\n", pdfPath)

	docxBytes, err := report.BuildDocx("Rewritten Resume", sampleRewrite())
	if err != nil {
		fmt.Fprintf(os.Stderr, "docx render failed: %v\n", err)
		os.Exit(1)
	}
	docxPath := filepath.Join(*outDir, "rewritten_resume.docx")
	if err := writeAndValidateDocx(docxPath, docxBytes); err != nil {
		fmt.Fprintf(os.Stderr, "docx validation failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK: wrote %s\n", docxPath)
}

func sampleData() report.Data {
	return report.Data{
		ATSScore:      72,
		SkillsFound:   []string{"Go", "PostgreSQL", "Docker"},
		SkillsMissing: []string{"Kubernetes", "Terraform"},
		Strengths: []string{
			"Strong backend fundamentals with production API experience.",
			"Clear, quantified impact statements.",
		},
		Weaknesses: []string{
			"No infrastructure-as-code experience listed.",
		},
		Improvements: []string{
			"Add a dedicated skills section near the top.",
			"Mention container orchestration exposure if any.",
		},
	}
}

func sampleRewrite() string {
	return strings.Join([]string{
		"JORDAN LEE",
		"Senior Backend Engineer",
		"",
		"SUMMARY",
		"Backend engineer with 8+ years of experience building resilient APIs and data services.",
		"",
		"EXPERIENCE",
		"Acme Logistics, Senior Backend Engineer (2021-04 to Present)",
		"- Designed a routing service that reduced shipment latency by 18%.",
	}, "\n")
}

func writeAndValidatePDF(path string, pdfBytes []byte) error {
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF-")) {
		return fmt.Errorf("output does not start with a PDF header")
	}
	return os.WriteFile(path, pdfBytes, 0o644)
}

func writeAndValidateDocx(path string, docxBytes []byte) error {
	reader, err := zip.NewReader(bytes.NewReader(docxBytes), int64(len(docxBytes)))
	if err != nil {
		return err
	}
	found := false
	for _, file := range reader.File {
		if file.Name == "word/document.xml" {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("document.xml not found in docx")
	}
	return os.WriteFile(path, docxBytes, 0o644)
}
