package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/arvindkn/fundtracker/internal/models"
)

// Yahoo Finance is used as the market-data source because it resolves ISINs
// directly through its search endpoint, so no separate identifier mapping
// has to be maintained.
const defaultBaseURL = "https://query1.finance.yahoo.com"

// ErrSymbolNotFound is returned when an ISIN cannot be resolved to a
// tradable symbol.
var ErrSymbolNotFound = errors.New("no symbol found for identifier")

// Client is an HTTP client for the Yahoo Finance API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Yahoo Finance client
func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewClientWithBaseURL creates a new Yahoo Finance client with a custom base URL (for testing)
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ResolveISIN resolves an ISIN to the symbol Yahoo uses for quote lookups.
// Returns ErrSymbolNotFound when the search yields no equity match.
func (c *Client) ResolveISIN(ctx context.Context, isin string) (string, error) {
	params := url.Values{}
	params.Set("q", isin)
	params.Set("quotesCount", "5")
	params.Set("newsCount", "0")

	body, err := c.doRequest(ctx, "/v1/finance/search", params)
	if err != nil {
		return "", err
	}

	var searchResp SearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal search response: %w", err)
	}

	// Prefer equity matches; index funds hold stocks, but the search can
	// surface derivatives on the same ISIN first.
	for _, q := range searchResp.Quotes {
		if q.QuoteType == "EQUITY" && q.Symbol != "" {
			return q.Symbol, nil
		}
	}
	for _, q := range searchResp.Quotes {
		if q.Symbol != "" {
			return q.Symbol, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrSymbolNotFound, isin)
}

// GetQuote fetches the previous close and live price for a symbol.
func (c *Client) GetQuote(ctx context.Context, isin, symbol string) (*models.Quote, error) {
	params := url.Values{}
	params.Set("range", "1d")
	params.Set("interval", "1d")

	body, err := c.doRequest(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), params)
	if err != nil {
		return nil, err
	}

	var chartResp ChartResponse
	if err := json.Unmarshal(body, &chartResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chart response: %w", err)
	}

	if chartResp.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error for %s: %s", symbol, chartResp.Chart.Error.Description)
	}
	if len(chartResp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart data returned for %s", symbol)
	}

	meta := chartResp.Chart.Result[0].Meta
	prevClose := meta.ChartPreviousClose
	if prevClose == 0 {
		prevClose = meta.PreviousClose
	}
	if prevClose <= 0 {
		return nil, fmt.Errorf("non-positive previous close %v for %s", prevClose, symbol)
	}
	if meta.RegularMarketPrice <= 0 {
		return nil, fmt.Errorf("non-positive market price %v for %s", meta.RegularMarketPrice, symbol)
	}

	return &models.Quote{
		ISIN:          isin,
		Symbol:        symbol,
		PreviousClose: prevClose,
		LivePrice:     meta.RegularMarketPrice,
	}, nil
}

func (c *Client) doRequest(ctx context.Context, path string, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// Yahoo rejects the default Go user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return body, nil
}
