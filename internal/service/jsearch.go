package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	jsearchBaseURL = "https://jsearch.p.rapidapi.com"
	jsearchHost    = "jsearch.p.rapidapi.com"
)

// JSearchClient wraps the JSearch API on RapidAPI. Listings are proxied
// verbatim: the response body is relayed to the frontend without reshaping,
// so the API's response format stays the frontend's problem.
type JSearchClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewJSearchClient(apiKey string) *JSearchClient {
	return &JSearchClient{
		apiKey:  apiKey,
		baseURL: jsearchBaseURL,
		client: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// Search runs a keyword search and returns the raw response body.
func (c *JSearchClient) Search(ctx context.Context, query, page, numPages string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("RapidAPI key not configured")
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", page)
	params.Set("num_pages", numPages)

	reqURL := c.baseURL + "/search?" + params.Encode()

	log.Info().
		Str("query", query).
		Str("page", page).
		Msg("Searching JSearch API")

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("x-rapidapi-host", jsearchHost)
	req.Header.Set("x-rapidapi-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling JSearch API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("JSearch API returned %d: %s", resp.StatusCode, string(body[:min(len(body), 500)]))
	}

	log.Info().
		Int("bytes", len(body)).
		Str("query", query).
		Msg("JSearch API responded")

	return body, nil
}
