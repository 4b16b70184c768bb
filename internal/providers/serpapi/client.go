// Package serpapi provides job-search providers backed by the SerpAPI
// Google engine. Each provider scopes the query to one job board with a
// site: operator and normalises organic results into postings.
package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/jobradar-cli/internal/core/domain"
)

// Default configuration values.
const (
	DefaultEndpoint = "https://serpapi.com/search.json"
	DefaultTimeout  = 10 * time.Second

	// DefaultRequestsPerSecond paces calls against the SerpAPI free-tier
	// quota. One token per request, shared by all providers on a client.
	DefaultRequestsPerSecond = 1
)

// tbs values for the Google date-restriction parameter.
var datePostedTBS = map[domain.DatePosted]string{
	domain.DatePostedPastDay:   "qdr:d",
	domain.DatePostedPastWeek:  "qdr:w",
	domain.DatePostedPastMonth: "qdr:m",
}

// ClientConfig holds configuration for the shared SerpAPI client.
type ClientConfig struct {
	// APIKey is the SerpAPI key (required).
	APIKey string

	// Endpoint is the search endpoint (default: https://serpapi.com/search.json).
	Endpoint string

	// Timeout bounds a single request (default: 10s).
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing calls (default: 1).
	RequestsPerSecond float64
}

// Client issues rate-limited searches against the SerpAPI Google engine.
// It is shared by all SerpAPI-backed providers so the limiter covers the
// whole process, not one provider.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	limiter    *rate.Limiter
}

// organicResult is the subset of a SerpAPI organic result we consume.
type organicResult struct {
	Title         string `json:"title"`
	Link          string `json:"link"`
	Snippet       string `json:"snippet"`
	Date          string `json:"date"`
	DisplayedLink string `json:"displayed_link"`
	Position      *int   `json:"position"`
}

// searchResponse is the SerpAPI response envelope.
type searchResponse struct {
	OrganicResults []organicResult `json:"organic_results"`
	Error          string          `json:"error,omitempty"`
}

// NewClient creates a shared SerpAPI client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: SerpAPI key is not configured", domain.ErrInvalidConfig)
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}, nil
}

// search runs one Google-engine query and returns normalised postings.
// An empty organic_results array is ordinary "no results", not an error.
func (c *Client) search(
	ctx context.Context,
	site string,
	role, location string,
	limit int,
	filters domain.SearchFilters,
) ([]domain.Posting, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", buildQuery(site, role, location, filters))
	params.Set("api_key", c.apiKey)
	if tbs, ok := datePostedTBS[filters.DatePosted]; ok {
		params.Set("tbs", tbs)
	}
	if limit > 0 {
		params.Set("num", strconv.Itoa(limit))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: serpapi returned status 429", domain.ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload searchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if payload.Error != "" {
		return nil, fmt.Errorf("serpapi error: %s", payload.Error)
	}

	postings := make([]domain.Posting, 0, len(payload.OrganicResults))
	for _, item := range payload.OrganicResults {
		if item.Link == "" {
			continue
		}
		postings = append(postings, domain.Posting{
			Title:    item.Title,
			Link:     item.Link,
			Metadata: resultMetadata(item),
		})
	}

	if limit > 0 && len(postings) > limit {
		postings = postings[:limit]
	}
	return postings, nil
}

// buildQuery assembles the Google query string: role and location, a site:
// restriction for the target job board, then optional job-type and keyword
// terms.
func buildQuery(site, role, location string, filters domain.SearchFilters) string {
	parts := []string{
		fmt.Sprintf("%s in %s", role, location),
		"site:" + site,
	}
	if filters.JobType != "" && filters.JobType != domain.JobTypeAny {
		parts = append(parts, filters.JobType.String())
	}
	if filters.Keywords != "" {
		parts = append(parts, filters.Keywords)
	}
	return strings.Join(parts, " ")
}

// resultMetadata collects the optional per-result fields, skipping absent
// ones so they never materialise as columns.
func resultMetadata(item organicResult) map[string]string {
	metadata := make(map[string]string)
	if item.Date != "" {
		metadata["posted_at"] = item.Date
	}
	if item.Snippet != "" {
		metadata["snippet"] = item.Snippet
	}
	if item.DisplayedLink != "" {
		metadata["displayed_link"] = item.DisplayedLink
	}
	if item.Position != nil {
		metadata["position"] = strconv.Itoa(*item.Position)
	}
	return metadata
}
