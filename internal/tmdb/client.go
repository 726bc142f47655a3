package tmdb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/mmcdole/marquee/internal/domain"
)

const (
	defaultBaseURL  = "https://api.themoviedb.org/3"
	defaultLanguage = "en-US"
	defaultTimeout  = 30 * time.Second
	userAgent       = "Marquee/1.0"
)

// Options configures a Client
type Options struct {
	BaseURL           string
	APIKey            string
	Language          string
	RequestsPerSecond float64 // 0 = unlimited
	Timeout           time.Duration
	HTTPClient        *http.Client // Optional, overrides Timeout
}

// Client implements domain.CatalogRepository and domain.DetailsRepository for TMDB
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

var _ domain.CatalogSource = (*Client)(nil)

// NewClient creates a new TMDB API client
func NewClient(opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	language := opts.Language
	if language == "" {
		language = defaultLanguage
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     opts.APIKey,
		language:   language,
		httpClient: httpClient,
		limiter:    newLimiter(opts.RequestsPerSecond),
		logger:     logger,
	}
}

// newLimiter builds the outbound throttle; non-positive rates disable it
func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// doRequest performs an authenticated GET and returns the body of a 200 response
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	query.Set("language", c.language)

	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, strings.TrimLeft(path, "/"), query.Encode())

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("tmdb request", "path", path, "page", query.Get("page"))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusUnauthorized:
		return nil, domain.ErrAuthFailed
	case http.StatusNotFound:
		return nil, domain.ErrItemNotFound
	default:
		var apiErr ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.StatusMessage != "" {
			return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, apiErr.StatusMessage)
		}
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}

// get performs a request and decodes the JSON body into dest
func (c *Client) get(ctx context.Context, path string, query url.Values, dest interface{}) error {
	body, err := c.doRequest(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to parse response from %s: %w", path, err)
	}
	return nil
}

// FetchPage returns one page of a ranked listing such as "movie/popular"
func (c *Client) FetchPage(ctx context.Context, path string, page int) ([]domain.CatalogItem, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))

	var resp PageResponse
	if err := c.get(ctx, path, query, &resp); err != nil {
		return nil, err
	}
	return MapItems(resp.Results), nil
}

// GetDetails returns the full record for an item
func (c *Client) GetDetails(ctx context.Context, mediaType domain.MediaType, id int) (*domain.CatalogItem, error) {
	var resp Result
	if err := c.get(ctx, itemPath(mediaType, id, ""), nil, &resp); err != nil {
		return nil, err
	}
	item := MapItem(resp)
	return &item, nil
}

// GetCredits returns the cast of an item
func (c *Client) GetCredits(ctx context.Context, mediaType domain.MediaType, id int) ([]domain.CastMember, error) {
	var resp CreditsResponse
	if err := c.get(ctx, itemPath(mediaType, id, "credits"), nil, &resp); err != nil {
		return nil, err
	}
	return MapCast(resp.Cast), nil
}

// GetSimilar returns items similar to an item
func (c *Client) GetSimilar(ctx context.Context, mediaType domain.MediaType, id int) ([]domain.CatalogItem, error) {
	var resp PageResponse
	if err := c.get(ctx, itemPath(mediaType, id, "similar"), nil, &resp); err != nil {
		return nil, err
	}
	return MapItems(resp.Results), nil
}

// GetWatchProviders returns the flat-rate streaming providers in region
func (c *Client) GetWatchProviders(ctx context.Context, mediaType domain.MediaType, id int, region string) ([]domain.Provider, error) {
	var resp ProvidersResponse
	if err := c.get(ctx, itemPath(mediaType, id, "watch/providers"), nil, &resp); err != nil {
		return nil, err
	}
	return MapProviders(resp, region), nil
}

// GetVideos returns the clips attached to an item
func (c *Client) GetVideos(ctx context.Context, mediaType domain.MediaType, id int) ([]domain.Video, error) {
	var resp VideosResponse
	if err := c.get(ctx, itemPath(mediaType, id, "videos"), nil, &resp); err != nil {
		return nil, err
	}
	return MapVideos(resp.Results), nil
}

// itemPath builds "movie/{id}" or "tv/{id}/{suffix}"
func itemPath(mediaType domain.MediaType, id int, suffix string) string {
	path := fmt.Sprintf("%s/%d", mediaType, id)
	if suffix != "" {
		path += "/" + suffix
	}
	return path
}
