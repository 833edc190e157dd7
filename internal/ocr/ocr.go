package ocr

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

type docKind int

const (
	kindUnknown docKind = iota
	kindPDF
	kindDocx
	kindPlain
)

const defaultMinTextLayerRunes = 64

// Engine extracts plain text from uploaded documents. PDFs with an
// embedded text layer are read directly; scanned PDFs fall back to
// rasterizing with pdftoppm and recognizing each page with tesseract.
type Engine struct {
	TesseractCmd string
	PdftoppmCmd  string
	Languages    []string

	// minTextLayerRunes is the threshold below which the embedded text
	// layer is treated as absent and the raster path runs instead.
	minTextLayerRunes int
}

// NewEngine builds an Engine, applying executable-name defaults.
func NewEngine(tesseractCmd, pdftoppmCmd string, languages []string) *Engine {
	if strings.TrimSpace(tesseractCmd) == "" {
		tesseractCmd = "tesseract"
	}
	if strings.TrimSpace(pdftoppmCmd) == "" {
		pdftoppmCmd = "pdftoppm"
	}
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &Engine{
		TesseractCmd:      tesseractCmd,
		PdftoppmCmd:       pdftoppmCmd,
		Languages:         languages,
		minTextLayerRunes: defaultMinTextLayerRunes,
	}
}

// Text extracts plain text from a document. The strategy is chosen by
// MIME type, with the file extension as fallback for clients that send
// a generic content type.
func (e *Engine) Text(ctx context.Context, data []byte, mimeType, fileName string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty document")
	}
	switch documentKind(mimeType, fileName) {
	case kindPDF:
		return e.pdfText(ctx, data)
	case kindDocx:
		return docxText(data)
	case kindPlain:
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported document type %q", mimeType)
	}
}

func documentKind(mimeType, fileName string) docKind {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if idx := strings.IndexByte(mt, ';'); idx != -1 {
		mt = strings.TrimSpace(mt[:idx])
	}
	switch mt {
	case "application/pdf":
		return kindPDF
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return kindDocx
	case "text/plain":
		return kindPlain
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return kindPDF
	case ".docx":
		return kindDocx
	case ".txt":
		return kindPlain
	}
	return kindUnknown
}
