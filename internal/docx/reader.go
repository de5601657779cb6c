// Package docx reads the plain text of input documents (WordprocessingML,
// spreadsheets, plain text) and writes the formatted vocabulary list.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoDocumentPart is returned for archives without word/document.xml
var ErrNoDocumentPart = errors.New("docx: word/document.xml not found")

const documentPart = "word/document.xml"

// ReadText returns the plain text of the document at path.
// .docx files yield one line per paragraph, .xlsx files one line per non-empty cell
// of the first sheet; any other extension is read as plain text.
func ReadText(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return readDocumentText(path)
	case ".xlsx":
		return readSheetText(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}

func readDocumentText(path string) (string, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = reader.Close() }()

	return extractText(&reader.Reader)
}

// extractText extracts text from word/document.xml
func extractText(reader *zip.Reader) (string, error) {
	for _, file := range reader.File {
		if file.Name != documentPart {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("open %s: %w", documentPart, err)
		}
		defer func() { _ = rc.Close() }()

		return parseDocumentXML(rc)
	}
	return "", ErrNoDocumentPart
}

// parseDocumentXML walks the body in order. Paragraph ends become newlines,
// <w:tab/> becomes a tab and <w:br/>/<w:cr/> become newlines.
func parseDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var (
		buf     strings.Builder
		inText  bool
		inProps int
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse %s: %w", documentPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "pPr":
				inProps++
			case "tab":
				// tab stops inside paragraph properties are not content
				if inProps == 0 {
					buf.WriteString("\t")
				}
			case "br", "cr":
				buf.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "pPr":
				inProps--
			case "p":
				buf.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				buf.Write(t)
			}
		}
	}

	return buf.String(), nil
}
