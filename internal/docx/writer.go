package docx

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/wml/stypes"

	"github.com/ppiankov/vocabgen/internal/model"
)

// Headings used in the vocabulary list
const (
	ListHeading     = "Vocabulary List:"
	NotFoundHeading = "Words not found:"
)

// outputMode is the permission of saved documents
const outputMode os.FileMode = 0o644

// Style is the run formatting applied to paragraphs that do not override it
type Style struct {
	FontFamily string
	FontSize   float64 // points
}

// DefaultStyle returns Times New Roman, 12pt
func DefaultStyle() Style {
	return Style{FontFamily: "Times New Roman", FontSize: 12}
}

// Paragraph is a single-run paragraph. Zero FontFamily/FontSize use the document style.
type Paragraph struct {
	Text       string
	Bold       bool
	Underline  bool
	FontFamily string
	FontSize   float64
}

// Document is an in-memory word-processor document
type Document struct {
	Style      Style
	Paragraphs []Paragraph
}

// NewDocument creates an empty document with the given default style
func NewDocument(style Style) *Document {
	def := DefaultStyle()
	if style.FontFamily == "" {
		style.FontFamily = def.FontFamily
	}
	if style.FontSize <= 0 {
		style.FontSize = def.FontSize
	}
	return &Document{Style: style}
}

// Add appends a paragraph
func (d *Document) Add(p Paragraph) {
	d.Paragraphs = append(d.Paragraphs, p)
}

// AddText appends a plain paragraph
func (d *Document) AddText(text string) {
	d.Add(Paragraph{Text: text})
}

// Writer renders resolved vocabulary lists as .docx files
type Writer struct {
	style Style
}

// NewWriter creates a writer using style for every paragraph
func NewWriter(style Style) *Writer {
	return &Writer{style: style}
}

// Build lays out the vocabulary list: header lines, a blank line, the bold list heading,
// numbered terms each followed by the definition, then the underlined not-found section.
func (w *Writer) Build(header []string, res *model.Resolution) *Document {
	doc := NewDocument(w.style)

	for _, line := range header {
		doc.AddText(line)
	}
	doc.AddText("")

	doc.Add(Paragraph{Text: ListHeading, Bold: true})

	if res != nil {
		res.Definitions.Each(func(i int, term model.Term, definition string) {
			doc.AddText(strconv.Itoa(i+1) + ".   " + term.String())
			doc.AddText(definition)
		})

		if len(res.NotFound) > 0 {
			doc.Add(Paragraph{Text: NotFoundHeading, Underline: true})
			for _, term := range res.NotFound {
				doc.AddText(term.String())
			}
		}
	}

	return doc
}

// Write lays out and saves the vocabulary list at path
func (w *Writer) Write(path string, header []string, res *model.Resolution) error {
	return w.Build(header, res).Save(path)
}

// Save writes the document to path. The file is written next to the destination
// and renamed into place, so a failed save leaves no partial document behind.
func (d *Document) Save(path string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".vocabgen-*.docx.tmp")
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	tmpName := tmp.Name()
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	root, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	for _, p := range d.Paragraphs {
		font := p.FontFamily
		if font == "" {
			font = d.Style.FontFamily
		}
		size := p.FontSize
		if size <= 0 {
			size = d.Style.FontSize
		}

		run := root.AddEmptyParagraph().AddText(singleLine(p.Text))
		run.Font(font).Size(uint64(math.Round(size)))
		if p.Bold {
			run.Bold(true)
		}
		if p.Underline {
			run.Underline(stypes.UnderlineSingle)
		}
	}

	if err = root.SaveTo(tmpName); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	// CreateTemp makes the file owner-only
	if err = os.Chmod(tmpName, outputMode); err != nil {
		return fmt.Errorf("set output mode: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// singleLine joins the non-blank lines of s with single spaces
func singleLine(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	var parts []string
	for _, line := range strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == '\r' }) {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}
