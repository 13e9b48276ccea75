package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
	"golang.org/x/sync/errgroup"

	"tangerina/internal/contextutil"
)

const (
	serperEndpoint = "https://google.serper.dev/search"

	// maxConcurrentFetches bounds the page-extraction fan-out.
	maxConcurrentFetches = 5

	// maxPageBytes caps how much of a result page we read for extraction.
	maxPageBytes = 5 << 20
)

var (
	// ErrNotConfigured is returned when no search API key is set.
	ErrNotConfigured = errors.New("web search is not configured")

	// ErrSearchProvider is returned when the search API call fails.
	ErrSearchProvider = errors.New("search provider request failed")
)

// SearchResult is a single organic result from the search API.
type SearchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type serperRequest struct {
	Q string `json:"q"`
}

type serperResponse struct {
	Organic []SearchResult `json:"organic"`
}

// Client performs web searches via the Serper API and extracts readable
// article text from result pages.
type Client struct {
	APIKey   string
	Endpoint string
	client   *http.Client
}

// NewClient creates a new web search client. An empty apiKey is allowed;
// Search then fails with ErrNotConfigured so callers can degrade.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:   apiKey,
		Endpoint: serperEndpoint,
		client: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// Search queries the search API and returns one formatted source block per
// result. Each block carries the extracted page content and a canonical
// "Reference Format" line the synthesizer is instructed to copy verbatim,
// which keeps it from fabricating or mangling URLs.
//
// Page extraction runs concurrently with per-result failure isolation: a
// page that cannot be fetched or parsed contributes empty content instead
// of failing the batch. Blocks are assembled in search-ranking order.
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if c.APIKey == "" {
		return "", ErrNotConfigured
	}

	results, err := c.organicResults(ctx, query)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		logger.InfoContext(ctx, "web search returned no results", "query", query)
		return "", nil
	}

	type extracted struct {
		title   string
		content string
	}
	contents := make([]extracted, len(results))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, result := range results {
		g.Go(func() error {
			title, content := c.fetchAndExtract(gctx, result.Link)
			contents[i] = extracted{title: title, content: content}
			return nil
		})
	}
	// Workers never return errors; one page's failure must not cancel the rest.
	_ = g.Wait()

	blocks := make([]string, 0, len(results))
	for i, result := range results {
		blocks = append(blocks, fmt.Sprintf(
			"\nSource: %s\nURL: %s\nContent: %s\n\nReference Format: [%d] %s - %s\n---\n",
			contents[i].title, result.Link, contents[i].content,
			i+1, contents[i].title, result.Link,
		))
	}

	logger.InfoContext(ctx, "web search completed", "query", query, "results", len(results))
	return strings.Join(blocks, "\n"), nil
}

// organicResults calls the search API and decodes its organic result list.
func (c *Client) organicResults(ctx context.Context, query string) ([]SearchResult, error) {
	body, err := json.Marshal(serperRequest{Q: query})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrSearchProvider, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.Endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrSearchProvider, err)
	}
	req.Header.Set("X-API-KEY", c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchProvider, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: bad status %d: %s", ErrSearchProvider, resp.StatusCode, string(raw))
	}

	var decoded serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrSearchProvider, err)
	}

	return decoded.Organic, nil
}

// fetchAndExtract downloads a result page and pulls out its readable title
// and body text. Failures yield the URL as title and empty content.
func (c *Client) fetchAndExtract(ctx context.Context, pageURL string) (title, content string) {
	logger := contextutil.LoggerFromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return pageURL, ""
	}

	resp, err := c.client.Do(req)
	if err != nil {
		logger.WarnContext(ctx, "failed to fetch result page", "url", pageURL, "error", err)
		return pageURL, ""
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		logger.WarnContext(ctx, "result page returned bad status", "url", pageURL, "status", resp.StatusCode)
		return pageURL, ""
	}

	parsed, err := url.Parse(pageURL)
	if err != nil {
		return pageURL, ""
	}

	article, err := readability.FromReader(io.LimitReader(resp.Body, maxPageBytes), parsed)
	if err != nil {
		logger.WarnContext(ctx, "failed to extract page content", "url", pageURL, "error", err)
		return pageURL, ""
	}

	title = article.Title
	if title == "" {
		title = pageURL
	}
	return title, article.TextContent
}
