package pipeline

import (
	"context"

	"github.com/ppiankov/vocabgen/internal/extract"
	"github.com/ppiankov/vocabgen/internal/model"
)

// Expander turns a truncated search snippet into the full paragraph it came from
type Expander interface {
	Expand(ctx context.Context, pageURL, snippet string) (string, error)
}

// PageExpander fetches the page and scans its body paragraphs
type PageExpander struct {
	fetcher    *Fetcher
	paragraphs *extract.ParagraphExpander
}

// NewPageExpander creates an expander that fetches pages with fetcher
func NewPageExpander(fetcher *Fetcher) *PageExpander {
	return &PageExpander{
		fetcher:    fetcher,
		paragraphs: extract.NewParagraphExpander(),
	}
}

// Expand returns the first body paragraph of pageURL containing snippet.
// Fetch, parse and no-match failures are all resolution failures.
func (e *PageExpander) Expand(ctx context.Context, pageURL, snippet string) (string, error) {
	page, err := e.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		// a cancelled run is not a missing definition
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", model.WrapError(model.ErrResolution, "fetch "+pageURL, err)
	}

	paragraph, err := e.paragraphs.Expand(page.HTML, snippet)
	if err != nil {
		return "", model.WrapError(model.ErrResolution, "expand snippet", err)
	}

	return paragraph, nil
}
