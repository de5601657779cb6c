package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/vocabgen/internal/docx"
	"github.com/ppiankov/vocabgen/internal/model"
)

func writeInputDocx(t *testing.T, dir string, lines ...string) string {
	t.Helper()
	doc := docx.NewDocument(docx.DefaultStyle())
	for _, line := range lines {
		doc.AddText(line)
	}
	path := filepath.Join(dir, "Chapter 5.docx")
	require.NoError(t, doc.Save(path))
	return path
}

func newWikiServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/wikipedia/Deflation" {
			_, _ = fmt.Fprint(w, `<html><body><p>Lead.</p><p>Deflation is a general decrease in the price level.</p></body></html>`)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.HTTP = testHTTPConfig()
	cfg.Document.Header = []string{"Jane Student", "Economics, Period 3"}
	return cfg
}

func TestPipeline_Run(t *testing.T) {
	dir := t.TempDir()
	server := newWikiServer(t)

	input := writeInputDocx(t, dir,
		"Chapter 5 Vocab",
		"Inflation",
		"",
		"Deflation",
		"GDP (Gross Domestic Product)",
		"Sticky prices?",
	)

	searcher := &fakeSearcher{results: map[string]*model.SearchResult{
		"Inflation definition economics investopedia": {
			URL:         "https://www.investopedia.com/terms/i/inflation.asp",
			Description: "Inflation is the decline of purchasing power.",
		},
		"Deflation definition economics wikipedia": {
			URL:     server.URL + "/wikipedia/Deflation",
			Snippet: "... a general decrease in the price level ...",
		},
	}}

	var progress strings.Builder
	result, err := NewPipeline(testConfig(), searcher, &progress, nil).Run(context.Background(), input, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Vocabulary.docx"), result.OutputPath)
	assert.Equal(t, []model.Term{"Inflation", "Deflation", "GDP (Gross Domestic Product)"}, result.Terms)
	assert.Equal(t, []model.Term{"Inflation", "Deflation"}, result.Resolution.Definitions.Terms())
	assert.Equal(t, []model.Term{"GDP (Gross Domestic Product)"}, result.Resolution.NotFound)
	assert.True(t, result.Resolution.CoversExactly(result.Terms))
	assert.Contains(t, progress.String(), "[3/3] Searching GDP ...")

	text, err := docx.ReadText(result.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"Jane Student",
		"Economics, Period 3",
		"",
		"Vocabulary List:",
		"1.   Inflation",
		"Inflation is the decline of purchasing power.",
		"2.   Deflation",
		"Deflation is a general decrease in the price level.",
		"Words not found:",
		"GDP (Gross Domestic Product)",
		"",
	}, "\n"), text)
}

func TestPipeline_Run_NoTerms(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "terms.txt")
	require.NoError(t, os.WriteFile(input, []byte("Chapter 1 Vocab\r\n\r\nwhat?\r\n"), 0o644))

	searcher := &fakeSearcher{}
	output := filepath.Join(dir, "out.docx")
	result, err := NewPipeline(testConfig(), searcher, nil, nil).Run(context.Background(), input, output)
	require.NoError(t, err)

	assert.Empty(t, result.Terms)
	assert.Empty(t, searcher.queries)
	assert.Equal(t, 0, result.Resolution.Definitions.Len())

	text, err := docx.ReadText(output)
	require.NoError(t, err)
	assert.Contains(t, text, docx.ListHeading)
	assert.NotContains(t, text, docx.NotFoundHeading)
}

func TestPipeline_Run_MissingInput(t *testing.T) {
	_, err := NewPipeline(testConfig(), &fakeSearcher{}, nil, nil).Run(context.Background(), filepath.Join(t.TempDir(), "missing.docx"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read input")
}

func TestPipeline_Run_UnwritableOutputIsFatal(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "terms.txt")
	require.NoError(t, os.WriteFile(input, []byte("Inflation\n"), 0o644))

	output := filepath.Join(dir, "no-such-dir", "out.docx")
	_, err := NewPipeline(testConfig(), &fakeSearcher{}, nil, nil).Run(context.Background(), input, output)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write output")
}

func TestPipeline_Run_ConfigErrorAborts(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "terms.txt")
	require.NoError(t, os.WriteFile(input, []byte("Inflation\n"), 0o644))

	searcher := &fakeSearcher{errors: map[string]error{
		"Inflation definition economics investopedia": model.WrapError(model.ErrConfig, "search", errors.New("API key not valid")),
	}}

	output := filepath.Join(dir, "out.docx")
	_, err := NewPipeline(testConfig(), searcher, nil, nil).Run(context.Background(), input, output)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrConfig)
	assert.NoFileExists(t, output)
}

func TestDefaultOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("docs", "Vocabulary.docx"), DefaultOutputPath(filepath.Join("docs", "ch5.docx"), ""))
	assert.Equal(t, filepath.Join("docs", "out.docx"), DefaultOutputPath(filepath.Join("docs", "ch5.docx"), "out.docx"))
}
