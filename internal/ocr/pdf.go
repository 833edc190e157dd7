package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"ats-analyzer/internal/shared/metrics"
	"ats-analyzer/internal/shared/telemetry"
)

// pdfText prefers the embedded text layer and falls back to raster OCR
// for scanned documents.
func (e *Engine) pdfText(ctx context.Context, data []byte) (string, error) {
	text, err := pdfTextLayer(data)
	if err == nil && utf8.RuneCountInString(strings.TrimSpace(text)) >= e.minTextLayerRunes {
		return text, nil
	}
	if err != nil {
		telemetry.Warn("ocr.text_layer_failed", map[string]any{"error": err.Error()})
	}
	return e.rasterOCR(ctx, data)
}

func pdfTextLayer(data []byte) (text string, err error) {
	// The pdf library panics on some malformed files.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("read pdf: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// rasterOCR renders each page to an image with pdftoppm and runs
// tesseract over the results.
func (e *Engine) rasterOCR(ctx context.Context, data []byte) (string, error) {
	dir, err := os.MkdirTemp("", "ocr-*")
	if err != nil {
		return "", fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(dir)

	inputPath := filepath.Join(dir, "input.pdf")
	if err := os.WriteFile(inputPath, data, 0o600); err != nil {
		return "", fmt.Errorf("write work file: %w", err)
	}

	cmd := exec.CommandContext(ctx, e.PdftoppmCmd, "-r", "300", "-png", inputPath, filepath.Join(dir, "page"))
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftoppm: %w: %s", err, firstLine(stderr.String()))
	}

	pages, err := filepath.Glob(filepath.Join(dir, "page-*.png"))
	if err != nil || len(pages) == 0 {
		return "", fmt.Errorf("pdftoppm produced no pages")
	}
	sort.Strings(pages)

	lang := strings.Join(e.Languages, "+")
	var sb strings.Builder
	for _, page := range pages {
		pageText, err := e.tesseractPage(ctx, page, lang)
		if err != nil {
			return "", err
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	metrics.AddOCRPages(len(pages))
	return sb.String(), nil
}

func (e *Engine) tesseractPage(ctx context.Context, imagePath, lang string) (string, error) {
	cmd := exec.CommandContext(ctx, e.TesseractCmd, imagePath, "stdout", "-l", lang)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract: %w: %s", err, firstLine(stderr.String()))
	}
	return stdout.String(), nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx != -1 {
		s = s[:idx]
	}
	return s
}
