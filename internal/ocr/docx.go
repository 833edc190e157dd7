package ocr

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// docxText reads the document body and flattens it to plain text, one
// line per paragraph.
func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer doc.Close()

	return flattenDocumentXML(doc.Editable().GetContent())
}

// flattenDocumentXML collects the text runs of a WordprocessingML body.
// Paragraph ends and explicit breaks become newlines, tabs stay tabs.
func flattenDocumentXML(content string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))
	var sb strings.Builder
	inText := 0
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document body: %w", err)
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText++
			case "br":
				sb.WriteString("\n")
			case "tab":
				sb.WriteString("\t")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				if inText > 0 {
					inText--
				}
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText > 0 {
				sb.Write([]byte(t))
			}
		}
	}
	return sb.String(), nil
}
