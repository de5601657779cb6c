package docx

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/vocabgen/internal/model"
)

func sampleResolution() *model.Resolution {
	res := model.NewResolution()
	res.Definitions.Set("Inflation", "Inflation is a rise in prices over time.")
	res.NotFound = []model.Term{"Stagflation (economics)"}
	return res
}

func texts(doc *Document) []string {
	out := make([]string, len(doc.Paragraphs))
	for i, p := range doc.Paragraphs {
		out[i] = p.Text
	}
	return out
}

func TestWriter_BuildLayout(t *testing.T) {
	w := NewWriter(DefaultStyle())
	header := []string{"Daniel Qiang", "2/4/18", "Sherman Per. 6", "Macroeconomic Objectives"}

	doc := w.Build(header, sampleResolution())

	assert.Equal(t, []string{
		"Daniel Qiang",
		"2/4/18",
		"Sherman Per. 6",
		"Macroeconomic Objectives",
		"",
		"Vocabulary List:",
		"1.   Inflation",
		"Inflation is a rise in prices over time.",
		"Words not found:",
		"Stagflation (economics)",
	}, texts(doc))

	assert.True(t, doc.Paragraphs[5].Bold)
	assert.False(t, doc.Paragraphs[5].Underline)
	assert.True(t, doc.Paragraphs[8].Underline)
	assert.False(t, doc.Paragraphs[8].Bold)
}

func TestWriter_BuildNumbering(t *testing.T) {
	res := model.NewResolution()
	res.Definitions.Set("Tariff", "A tax on imports.")
	res.Definitions.Set("Quota", "A limit on imports.")
	res.Definitions.Set("Embargo", "A ban on trade.")

	doc := NewWriter(DefaultStyle()).Build(nil, res)

	assert.Equal(t, []string{
		"",
		"Vocabulary List:",
		"1.   Tariff",
		"A tax on imports.",
		"2.   Quota",
		"A limit on imports.",
		"3.   Embargo",
		"A ban on trade.",
	}, texts(doc))
}

func TestWriter_BuildEmpty(t *testing.T) {
	doc := NewWriter(DefaultStyle()).Build([]string{"Name"}, model.NewResolution())

	assert.Equal(t, []string{"Name", "", "Vocabulary List:"}, texts(doc))
}

func TestWriter_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Vocabulary.docx")

	err := NewWriter(DefaultStyle()).Write(path, []string{"Daniel Qiang", "2/4/18"}, sampleResolution())
	require.NoError(t, err)

	text, err := ReadText(path)
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"Daniel Qiang",
		"2/4/18",
		"",
		"Vocabulary List:",
		"1.   Inflation",
		"Inflation is a rise in prices over time.",
		"Words not found:",
		"Stagflation (economics)",
	}, "\n")+"\n", text)
}

func TestWriter_RunFormatting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Vocabulary.docx")
	require.NoError(t, NewWriter(Style{FontFamily: "Calibri", FontSize: 11}).Write(path, nil, sampleResolution()))

	body := readPart(t, path, "word/document.xml")

	assert.Contains(t, body, `w:ascii="Calibri"`)
	assert.Regexp(t, `<w:sz w:val="22"`, body)
	assert.Len(t, regexp.MustCompile(`<w:b[ />]`).FindAllString(body, -1), 1, "only the list heading is bold")
	assert.Len(t, regexp.MustCompile(`<w:u w:val="single"`).FindAllString(body, -1), 1, "only the not-found heading is underlined")
}

func TestDocument_ParagraphOverride(t *testing.T) {
	doc := NewDocument(Style{})
	assert.Equal(t, DefaultStyle(), doc.Style)

	doc.Add(Paragraph{Text: "Title", FontFamily: "Arial", FontSize: 14})
	doc.AddText("Body")

	path := filepath.Join(t.TempDir(), "out.docx")
	require.NoError(t, doc.Save(path))

	body := readPart(t, path, "word/document.xml")
	assert.Contains(t, body, `w:ascii="Arial"`)
	assert.Regexp(t, `<w:sz w:val="28"`, body)
	assert.Contains(t, body, `w:ascii="Times New Roman"`)
	assert.Regexp(t, `<w:sz w:val="24"`, body)
}

func TestDocument_SpecialCharactersRoundTrip(t *testing.T) {
	doc := NewDocument(DefaultStyle())
	doc.AddText(`Supply & demand <curve> "quoted"`)

	path := filepath.Join(t.TempDir(), "out.docx")
	require.NoError(t, doc.Save(path))

	text, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "Supply & demand <curve> \"quoted\"\n", text)
}

func TestDocument_MultiLineTextIsOneLine(t *testing.T) {
	doc := NewDocument(DefaultStyle())
	doc.AddText("Inflation is a general\n  increase in prices.\r\n")

	path := filepath.Join(t.TempDir(), "out.docx")
	require.NoError(t, doc.Save(path))

	text, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "Inflation is a general increase in prices.\n", text)
}

func TestDocument_SaveIsWorldReadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.docx")
	doc := NewDocument(DefaultStyle())
	doc.AddText("Inflation")

	require.NoError(t, doc.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestDocument_SaveInvalidDestination(t *testing.T) {
	doc := NewDocument(DefaultStyle())
	doc.AddText("Inflation")

	err := doc.Save(filepath.Join(t.TempDir(), "missing-dir", "out.docx"))
	assert.Error(t, err)
}

func TestDocument_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	doc := NewDocument(DefaultStyle())
	doc.AddText("Inflation")

	require.NoError(t, doc.Save(filepath.Join(dir, "out.docx")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.docx", entries[0].Name())
}

func readPart(t *testing.T, path, name string) string {
	t.Helper()

	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		require.NoError(t, err)
		return string(data)
	}

	t.Fatalf("part %s not found", name)
	return ""
}
