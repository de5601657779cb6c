package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ppiankov/vocabgen/internal/logging"
	"github.com/ppiankov/vocabgen/internal/model"
	"github.com/ppiankov/vocabgen/internal/search"
)

// ErrNoSourceMatched is returned when neither query produced a result from its source
var ErrNoSourceMatched = errors.New("no result from preferred or fallback source")

// Resolver looks up a definition for each term, one term at a time
type Resolver struct {
	searcher search.Searcher
	expander Expander
	sources  model.SourcesConfig
	progress io.Writer
	logger   *slog.Logger
}

// NewResolver creates a resolver. Progress output and logging are discarded until set.
func NewResolver(searcher search.Searcher, expander Expander, sources model.SourcesConfig) *Resolver {
	return &Resolver{
		searcher: searcher,
		expander: expander,
		sources:  sources,
		progress: io.Discard,
		logger:   logging.Discard(),
	}
}

// WithProgress sets the writer that receives one progress line per term
func (r *Resolver) WithProgress(w io.Writer) *Resolver {
	if w != nil {
		r.progress = w
	}
	return r
}

// WithLogger sets the diagnostic logger
func (r *Resolver) WithLogger(logger *slog.Logger) *Resolver {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// Query builds the search query for a clean term and a source
func (r *Resolver) Query(cleanTerm, source string) string {
	return cleanTerm + " definition " + r.sources.Domain + " " + source
}

// Resolve resolves every term in order. Terms that fail with a resolution failure are
// recorded as not found; any other error (rejected credentials, cancellation) aborts the run.
func (r *Resolver) Resolve(ctx context.Context, terms []model.Term) (*model.Resolution, error) {
	res := model.NewResolution()

	for i, term := range terms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fmt.Fprintf(r.progress, "🔎 [%d/%d] Searching %s...\n", i+1, len(terms), term.Clean())

		definition, err := r.ResolveTerm(ctx, term)
		switch {
		case err == nil:
			res.Definitions.Set(term, definition)
			fmt.Fprintf(r.progress, "   ✓ %s\n", term)
		case model.IsKind(err, model.ErrResolution):
			res.NotFound = append(res.NotFound, term)
			fmt.Fprintf(r.progress, "   ✗ %s: not found\n", term)
			r.logger.Debug("term not resolved", "term", string(term), "error", err)
		default:
			return nil, fmt.Errorf("resolve %q: %w", string(term), err)
		}
	}

	return res, nil
}

// ResolveTerm tries the preferred source, then the fallback source
func (r *Resolver) ResolveTerm(ctx context.Context, term model.Term) (string, error) {
	clean := term.Clean()

	definition, err := r.fromPreferred(ctx, clean)
	if err == nil {
		return definition, nil
	}
	if !model.IsKind(err, model.ErrResolution) {
		return "", err
	}
	r.logger.Debug("preferred source missed", "term", string(term), "source", r.sources.Preferred, "error", err)

	return r.fromFallback(ctx, clean)
}

// fromPreferred takes the definition from the preferred result's page metadata
func (r *Resolver) fromPreferred(ctx context.Context, clean string) (string, error) {
	query := r.Query(clean, r.sources.Preferred)
	r.logger.Debug("search", "query", query)

	result, err := r.searcher.Search(ctx, query)
	if err != nil {
		return "", err
	}
	if !result.MatchesSource(r.sources.Preferred) {
		return "", model.WrapError(model.ErrResolution, "preferred source", fmt.Errorf("result %s does not match %q", result.URL, r.sources.Preferred))
	}
	if result.Description == "" {
		return "", model.WrapError(model.ErrResolution, "preferred source", fmt.Errorf("result %s has no metadata description", result.URL))
	}

	return result.Description, nil
}

// fromFallback expands the fallback result's snippet into its full paragraph
func (r *Resolver) fromFallback(ctx context.Context, clean string) (string, error) {
	query := r.Query(clean, r.sources.Fallback)
	r.logger.Debug("search", "query", query)

	result, err := r.searcher.Search(ctx, query)
	if err != nil {
		return "", err
	}
	if !result.MatchesSource(r.sources.Fallback) {
		return "", model.WrapError(model.ErrResolution, "fallback source", ErrNoSourceMatched)
	}

	return r.expander.Expand(ctx, result.URL, result.Snippet)
}
