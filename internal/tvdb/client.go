// Package tvdb implements the catalog.Provider boundary against the
// TheTVDB v4 API.
package tvdb

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
	"sync"
	"time"

	"github.com/Nomadcxx/anirename/internal/catalog"
)

// DefaultURL is the public v4 API endpoint.
const DefaultURL = "https://api4.thetvdb.com/v4"

// DefaultLanguage selects which episode name translations are fetched.
const DefaultLanguage = "eng"

var errUnauthorized = errors.New("unauthorized")

type Config struct {
	URL      string
	APIKey   string
	PIN      string
	Language string
	Timeout  time.Duration
}

type Client struct {
	baseURL    string
	apiKey     string
	pin        string
	language   string
	httpClient *http.Client

	mu    sync.Mutex
	token string
}

var _ catalog.Provider = (*Client)(nil)

func NewClient(cfg Config) *Client {
	baseURL := cfg.URL
	if baseURL == "" {
		baseURL = DefaultURL
	}
	language := cfg.Language
	if language == "" {
		language = DefaultLanguage
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:  baseURL,
		apiKey:   cfg.APIKey,
		pin:      cfg.PIN,
		language: language,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Authenticate logs in with the configured API key and caches the bearer
// token for subsequent calls. Called lazily by the data methods; calling it
// again replaces the cached token.
func (c *Client) Authenticate(ctx context.Context) error {
	payload, err := json.Marshal(loginRequest{APIKey: c.apiKey, PIN: c.pin})
	if err != nil {
		return fmt.Errorf("encoding login payload: %w", err)
	}

	resp, err := c.request(ctx, http.MethodPost, "/login", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	defer resp.Body.Close()

	var out loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decoding login response: %w", err)
	}
	if out.Data.Token == "" {
		return errors.New("login response carried no token")
	}

	c.mu.Lock()
	c.token = out.Data.Token
	c.mu.Unlock()
	return nil
}

// SeriesInfo fetches name and status for one series.
func (c *Client) SeriesInfo(ctx context.Context, seriesID int64) (catalog.SeriesInfo, error) {
	var out seriesResponse
	if err := c.get(ctx, fmt.Sprintf("/series/%d", seriesID), &out); err != nil {
		return catalog.SeriesInfo{}, fmt.Errorf("getting series %d: %w", seriesID, err)
	}
	return catalog.SeriesInfo{
		ID:     out.Data.ID,
		Name:   out.Data.Name,
		Status: out.Data.Status.Name,
	}, nil
}

// AllEpisodes walks the paginated episode listing until the API reports no
// next page. Episodes the catalog has no title for get a numbered fallback.
func (c *Client) AllEpisodes(ctx context.Context, seriesID int64) ([]catalog.EpisodeRecord, error) {
	var records []catalog.EpisodeRecord

	for page := 0; ; page++ {
		endpoint := fmt.Sprintf("/series/%d/episodes/default/%s?page=%d", seriesID, c.language, page)
		var out episodePageResponse
		if err := c.get(ctx, endpoint, &out); err != nil {
			return nil, fmt.Errorf("getting episodes for series %d (page %d): %w", seriesID, page, err)
		}

		for _, ep := range out.Data.Episodes {
			title := ep.Name
			if title == "" {
				title = catalog.FallbackTitle(ep.Number)
			}
			records = append(records, catalog.EpisodeRecord{
				ID:     ep.ID,
				Number: ep.Number,
				Season: ep.SeasonNumber,
				Title:  title,
			})
		}

		if out.Links.Next == "" || len(out.Data.Episodes) == 0 {
			break
		}
	}

	return records, nil
}

func (c *Client) request(ctx context.Context, method, endpoint string, body io.Reader) (*http.Response, error) {
	// url.JoinPath escapes query strings, so split them off first.
	path, query := endpoint, ""
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		path, query = endpoint[:i], endpoint[i+1:]
	}

	fullURL, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if query != "" {
		fullURL += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		return nil, errUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	return resp, nil
}

// get performs an authenticated GET, logging in first when no token is
// cached and retrying exactly once after a 401 (expired token).
func (c *Client) get(ctx context.Context, endpoint string, result interface{}) error {
	if err := c.ensureAuthenticated(ctx); err != nil {
		return err
	}

	resp, err := c.request(ctx, http.MethodGet, endpoint, nil)
	if errors.Is(err, errUnauthorized) {
		if err := c.Authenticate(ctx); err != nil {
			return err
		}
		resp, err = c.request(ctx, http.MethodGet, endpoint, nil)
	}
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

func (c *Client) ensureAuthenticated(ctx context.Context) error {
	c.mu.Lock()
	have := c.token != ""
	c.mu.Unlock()
	if have {
		return nil
	}
	return c.Authenticate(ctx)
}

func (c *Client) bearer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}
