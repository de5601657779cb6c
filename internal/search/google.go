package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/ppiankov/vocabgen/internal/model"
)

// resultCount is the number of results requested per query
const resultCount = 1

// GoogleSearcher implements Searcher with the Custom Search JSON API
type GoogleSearcher struct {
	service     *customsearch.Service
	engineID    string
	metadataKey string
}

// NewGoogleSearcher creates a searcher bound to one credential pair.
// metadataKey names the page metatag used as the result description (e.g. "twitter:description").
func NewGoogleSearcher(ctx context.Context, creds model.SearchConfig, metadataKey string, opts ...option.ClientOption) (*GoogleSearcher, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	clientOpts := []option.ClientOption{option.WithAPIKey(creds.APIKey)}
	if creds.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(creds.Endpoint))
	}
	clientOpts = append(clientOpts, opts...)

	service, err := customsearch.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, model.WrapError(model.ErrConfig, "create search service", err)
	}

	return &GoogleSearcher{
		service:     service,
		engineID:    creds.EngineID,
		metadataKey: metadataKey,
	}, nil
}

// Search runs query and returns the first result
func (g *GoogleSearcher) Search(ctx context.Context, query string) (*model.SearchResult, error) {
	resp, err := g.service.Cse.List().
		Q(query).
		Cx(g.engineID).
		Num(resultCount).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classifyError(err)
	}

	if len(resp.Items) == 0 || resp.Items[0] == nil {
		return nil, model.WrapError(model.ErrResolution, "search", ErrNoResults)
	}

	item := resp.Items[0]
	result := &model.SearchResult{
		URL:          item.Link,
		FormattedURL: item.FormattedUrl,
		Snippet:      item.Snippet,
		Description:  metatag(item.Pagemap, g.metadataKey),
	}
	if result.URL == "" {
		result.URL = item.FormattedUrl
	}

	return result, nil
}

type pagemap struct {
	Metatags []map[string]any `json:"metatags"`
}

// metatag returns pagemap.metatags[0][key] as a string
func metatag(raw googleapi.RawMessage, key string) string {
	if len(raw) == 0 || key == "" {
		return ""
	}

	var pm pagemap
	if err := json.Unmarshal(raw, &pm); err != nil || len(pm.Metatags) == 0 {
		return ""
	}

	if val, ok := pm.Metatags[0][key].(string); ok {
		return val
	}
	return ""
}

// classifyError maps API failures onto error kinds. Rejected credentials are a
// configuration problem; everything else only fails the current term.
func classifyError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
			return model.WrapError(model.ErrConfig, "search", fmt.Errorf("search API rejected credentials: %w", err))
		}
	}

	return model.WrapError(model.ErrResolution, "search", err)
}
