package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"moviepicks/internal/model"
)

// Client talks to an OMDb-compatible metadata service. Its reliability and
// rate limits are the service's problem; every failure here maps to
// model.ErrLookupFailed so callers can flash-and-redirect.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SearchItem is a single entry in a title search result page.
type SearchItem struct {
	Title     string `json:"Title"`
	Year      string `json:"Year"`
	IMDBID    string `json:"imdbID"`
	PosterURL string `json:"Poster"`
}

// SearchResult is one page of title search results.
type SearchResult struct {
	Items        []SearchItem
	Page         int
	TotalResults int
}

// MovieDetail is the full record for a single title.
type MovieDetail struct {
	Title     string `json:"Title"`
	Genre     string `json:"Genre"`
	Plot      string `json:"Plot"`
	PosterURL string `json:"Poster"`
	IMDBID    string `json:"imdbID"`
}

// omdbEnvelope covers the fields shared by every OMDb response.
type omdbEnvelope struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

type searchResponse struct {
	omdbEnvelope
	Search       []SearchItem `json:"Search"`
	TotalResults string       `json:"totalResults"`
}

type detailResponse struct {
	omdbEnvelope
	MovieDetail
}

// Search looks up titles matching the given term. Pages are 1-based.
func (c *Client) Search(ctx context.Context, title string, page int) (*SearchResult, error) {
	if page < 1 {
		page = 1
	}

	q := url.Values{}
	q.Set("s", title)
	q.Set("page", strconv.Itoa(page))

	var resp searchResponse
	if err := c.get(ctx, q, &resp); err != nil {
		return nil, err
	}
	if resp.Response != "True" {
		return nil, fmt.Errorf("%w: %s", model.ErrLookupFailed, resp.Error)
	}

	total, _ := strconv.Atoi(resp.TotalResults)

	return &SearchResult{
		Items:        resp.Search,
		Page:         page,
		TotalResults: total,
	}, nil
}

// GetByID fetches the full record for an IMDb identifier.
func (c *Client) GetByID(ctx context.Context, imdbID string) (*MovieDetail, error) {
	q := url.Values{}
	q.Set("i", imdbID)
	q.Set("plot", "full")

	var resp detailResponse
	if err := c.get(ctx, q, &resp); err != nil {
		return nil, err
	}
	if resp.Response != "True" {
		return nil, fmt.Errorf("%w: %s", model.ErrLookupFailed, resp.Error)
	}

	return &resp.MovieDetail, nil
}

func (c *Client) get(ctx context.Context, q url.Values, out interface{}) error {
	q.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", model.ErrLookupFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", model.ErrLookupFailed, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", model.ErrLookupFailed, err)
	}

	return nil
}
