package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"miniclaw/internal/application/port/output"
	"miniclaw/internal/domain/entity"
	"miniclaw/internal/infrastructure/htmltext"
)

var (
	_ output.ToolPort = (*WebSearchTool)(nil)
	_ output.ToolPort = (*WebFetchTool)(nil)
)

const (
	defaultSearchURL   = "https://api.search.brave.com/res/v1/web/search"
	defaultHTTPTimeout = 30 * time.Second
	maxSearchResults   = 5
	maxFetchedChars    = 2000
	maxFetchBodyBytes  = 5 << 20
)

var ErrSearchKeyMissing = errors.New("BRAVE_API_KEY not configured")

type WebSearchConfig struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// WebSearchTool queries the Brave Search API and renders the top results.
type WebSearchTool struct {
	cfg    WebSearchConfig
	logger output.LoggerPort
}

func NewWebSearchTool(cfg WebSearchConfig, logger output.LoggerPort) *WebSearchTool {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultSearchURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &WebSearchTool{cfg: cfg, logger: logger}
}

func (t *WebSearchTool) Name() entity.ToolName { return entity.ToolWebSearch }
func (t *WebSearchTool) Description() string   { return "Search the web using Brave Search API" }

type braveResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

func (t *WebSearchTool) Execute(ctx context.Context, input string) (string, error) {
	if t.cfg.APIKey == "" {
		return "", ErrSearchKeyMissing
	}

	query := strings.TrimSpace(input)
	endpoint := t.cfg.BaseURL + "?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", t.cfg.APIKey)

	resp, err := t.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("search failed: status %s", resp.Status)
	}

	var body braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode search response: %w", err)
	}

	t.logger.Debug("Search completed", "query", query, "results", len(body.Web.Results))

	var sb strings.Builder
	fmt.Fprintf(&sb, "Search results for: %s\n\n", query)
	for i, r := range body.Web.Results {
		if i == maxSearchResults {
			break
		}
		fmt.Fprintf(&sb, "%d. %s\n   URL: %s\n   %s\n\n", i+1, r.Title, r.URL, r.Description)
	}
	return sb.String(), nil
}

// WebFetchTool downloads a page and returns the beginning of its visible text.
type WebFetchTool struct {
	client *http.Client
	logger output.LoggerPort
}

func NewWebFetchTool(client *http.Client, logger output.LoggerPort) *WebFetchTool {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &WebFetchTool{client: client, logger: logger}
}

func (t *WebFetchTool) Name() entity.ToolName { return entity.ToolWebFetch }
func (t *WebFetchTool) Description() string   { return "Fetch a URL and extract text content" }

func (t *WebFetchTool) Execute(ctx context.Context, input string) (string, error) {
	target := strings.TrimSpace(input)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", target, err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch failed: status %s", resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}

	text := htmltext.Truncate(htmltext.ExtractText(string(raw), nil), maxFetchedChars)
	t.logger.Debug("Fetched page", "url", target, "bytes", len(raw))

	return fmt.Sprintf("URL: %s\nContent (first %d chars):\n\n%s", target, maxFetchedChars, text), nil
}
