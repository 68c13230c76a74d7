package tvmaze

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/mmcdole/netfrog/internal/domain"
)

const (
	// DefaultBaseURL is the public TVMaze API
	DefaultBaseURL = "https://api.tvmaze.com"

	defaultUserAgent = "netfrog/1.0"
)

// Client implements domain.ShowRepository and domain.SearchRepository for TVMaze.
// Concurrent GETs of the same URL share one round trip; nothing is retained
// after the request completes.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
	inflight   singleflight.Group
}

// NewClient creates a new TVMaze API client. A zero timeout means the HTTP
// client never gives up on its own; callers bound requests with ctx.
func NewClient(baseURL, userAgent string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// BaseURL returns the API root this client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ShowURL returns the resource locator for a show
func (c *Client) ShowURL(id int) string {
	return c.baseURL + "/shows/" + strconv.Itoa(id)
}

// EpisodesURL returns the resource locator for a show's episode list
func (c *Client) EpisodesURL(id int) string {
	return c.ShowURL(id) + "/episodes"
}

// CastURL returns the resource locator for a show's cast
func (c *Client) CastURL(id int) string {
	return c.ShowURL(id) + "/cast"
}

// SearchURL returns the resource locator for a show search
func (c *Client) SearchURL(query string) string {
	return c.baseURL + "/search/shows?" + url.Values{"q": {query}}.Encode()
}

// ShowAt fetches and maps the show document at reqURL
func (c *Client) ShowAt(ctx context.Context, reqURL string) (*domain.Show, error) {
	var dto Show
	if err := c.getJSON(ctx, reqURL, &dto); err != nil {
		return nil, err
	}
	return MapShow(dto)
}

// EpisodesAt fetches and maps the episode list at reqURL
func (c *Client) EpisodesAt(ctx context.Context, reqURL string) ([]domain.Episode, error) {
	var dto []Episode
	if err := c.getJSON(ctx, reqURL, &dto); err != nil {
		return nil, err
	}
	return MapEpisodes(dto)
}

// CastAt fetches and maps the cast list at reqURL
func (c *Client) CastAt(ctx context.Context, reqURL string) ([]domain.CastEntry, error) {
	var dto []CastMember
	if err := c.getJSON(ctx, reqURL, &dto); err != nil {
		return nil, err
	}
	return MapCast(dto)
}

// SearchAt fetches and maps the search results at reqURL
func (c *Client) SearchAt(ctx context.Context, reqURL string) ([]domain.SearchResult, error) {
	var dto []SearchHit
	if err := c.getJSON(ctx, reqURL, &dto); err != nil {
		return nil, err
	}
	return MapSearchHits(dto)
}

// GetShow returns the show with the given id
func (c *Client) GetShow(ctx context.Context, id int) (*domain.Show, error) {
	return c.ShowAt(ctx, c.ShowURL(id))
}

// GetEpisodes returns every episode of a show
func (c *Client) GetEpisodes(ctx context.Context, showID int) ([]domain.Episode, error) {
	return c.EpisodesAt(ctx, c.EpisodesURL(showID))
}

// GetCast returns the main cast of a show
func (c *Client) GetCast(ctx context.Context, showID int) ([]domain.CastEntry, error) {
	return c.CastAt(ctx, c.CastURL(showID))
}

// SearchShows returns shows matching query in API relevance order
func (c *Client) SearchShows(ctx context.Context, query string) ([]domain.SearchResult, error) {
	return c.SearchAt(ctx, c.SearchURL(query))
}

// getJSON fetches reqURL (sharing any identical in-flight request) and decodes it into dest.
// The shared round trip outlives any single caller's cancellation; each caller
// stops waiting when its own ctx is done.
func (c *Client) getJSON(ctx context.Context, reqURL string, dest interface{}) error {
	shared := context.WithoutCancel(ctx)
	ch := c.inflight.DoChan(reqURL, func() (interface{}, error) {
		return c.doRequest(shared, reqURL)
	})

	var body []byte
	select {
	case <-ctx.Done():
		return errors.WithMessagef(domain.ErrNetwork, "GET %s: %v", reqURL, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return res.Err
		}
		if res.Shared {
			c.logger.Debug("tvmaze request shared", "url", reqURL)
		}
		body = res.Val.([]byte)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("JSON parse error", "url", reqURL, "error", err, "bodyLen", len(body))
		return errors.WithMessagef(domain.ErrParse, "decode %s: %v", reqURL, err)
	}
	return nil
}

// doRequest performs a GET and returns the body of a 2xx response
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.WithMessagef(domain.ErrNetwork, "build request %s: %v", reqURL, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("tvmaze request", "method", http.MethodGet, "url", reqURL)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("tvmaze request failed", "url", reqURL, "error", err)
		return nil, errors.WithMessagef(domain.ErrNetwork, "GET %s: %v", reqURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WithMessagef(domain.ErrNetwork, "read %s: %v", reqURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("tvmaze request error", "status", resp.StatusCode, "url", reqURL, "body", truncate(string(body), 200))
		return nil, errors.WithStack(&domain.HTTPError{StatusCode: resp.StatusCode, URL: reqURL})
	}

	c.logger.Debug("tvmaze response", "url", reqURL, "status", resp.StatusCode, "bytes", len(body), "elapsed", time.Since(start))
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return fmt.Sprintf("%s... (%d bytes)", s[:n], len(s))
}
