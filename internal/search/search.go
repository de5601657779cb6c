// Package search queries the web search service for definition candidates.
package search

import (
	"context"
	"errors"

	"github.com/ppiankov/vocabgen/internal/model"
)

// ErrNoResults is returned when a query matched nothing
var ErrNoResults = errors.New("search returned no results")

// Searcher returns the top result for a free-text query.
// Failures that only affect the current query are wrapped with model.ErrResolution;
// rejected credentials are wrapped with model.ErrConfig.
type Searcher interface {
	Search(ctx context.Context, query string) (*model.SearchResult, error)
}
