package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"mfp-stats/internal/config"
	"mfp-stats/internal/metrics"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

type MatchplayClient struct {
	baseURL string
	apiKey  string
	client  *fasthttp.Client
	limiter *rate.Limiter
	metrics *metrics.Metrics
	logger  zerolog.Logger

	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

type RateLimitInfo struct {
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`

	// seconds until reset
	Reset int `json:"reset"`

	UpdatedAt time.Time `json:"updated_at"`
}

// StatusError is returned for any non-200 upstream response.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("matchplay API error: %d for %s", e.StatusCode, e.URL)
}

func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == fasthttp.StatusNotFound
}

func NewMatchplayClient(cfg *config.Config, m *metrics.Metrics, logger zerolog.Logger) *MatchplayClient {
	rps := cfg.Matchplay.RequestsPerSecond
	return &MatchplayClient{
		baseURL: cfg.Matchplay.BaseURL,
		apiKey:  cfg.Matchplay.APIKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     16,
			ReadTimeout:         15 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), int(rps)+1),
		metrics: m,
		logger:  logger.With().Str("component", "matchplay").Logger(),
		rateLimit: RateLimitInfo{
			Limit:     60,
			Remaining: 60,
			Reset:     60,
			UpdatedAt: time.Now(),
		},
	}
}

func (c *MatchplayClient) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *MatchplayClient) updateRateLimit(resp *fasthttp.Response) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if limit := string(resp.Header.Peek("X-Ratelimit-Limit")); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			c.rateLimit.Limit = val
		}
	}
	if remaining := string(resp.Header.Peek("X-Ratelimit-Remaining")); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			c.rateLimit.Remaining = val
		}
	}
	if reset := string(resp.Header.Peek("X-Ratelimit-Reset")); reset != "" {
		if val, err := strconv.Atoi(reset); err == nil {
			c.rateLimit.Reset = val
		}
	}
	c.rateLimit.UpdatedAt = time.Now()
}

// ListSeries returns one page of the series owned by ownerID. Pages start at 1.
func (c *MatchplayClient) ListSeries(ctx context.Context, ownerID, page int) (*SeriesListResponse, error) {
	q := url.Values{}
	q.Set("owner", strconv.Itoa(ownerID))
	q.Set("page", strconv.Itoa(page))
	return doRequest[SeriesListResponse](ctx, c, "series_list", c.baseURL+"/series?"+q.Encode())
}

// ListAllSeries pages through ListSeries until an empty page.
func (c *MatchplayClient) ListAllSeries(ctx context.Context, ownerID int) ([]SeriesSummary, error) {
	var all []SeriesSummary
	for page := 1; ; page++ {
		resp, err := c.ListSeries(ctx, ownerID, page)
		if err != nil {
			return nil, fmt.Errorf("failed to list series page %d: %w", page, err)
		}
		if len(resp.Data) == 0 {
			break
		}
		all = append(all, resp.Data...)
		c.logger.Debug().Int("page", page).Int("count", len(resp.Data)).Msg("fetched series page")
	}
	return all, nil
}

func (c *MatchplayClient) GetSeries(ctx context.Context, seriesID int) (*SeriesDetailResponse, error) {
	u := fmt.Sprintf("%s/series/%d?includeDetails=true", c.baseURL, seriesID)
	return doRequest[SeriesDetailResponse](ctx, c, "series", u)
}

func (c *MatchplayClient) GetTournamentGames(ctx context.Context, tournamentID int) (*GamesResponse, error) {
	u := fmt.Sprintf("%s/tournaments/%d/games", c.baseURL, tournamentID)
	return doRequest[GamesResponse](ctx, c, "games", u)
}

func (c *MatchplayClient) GetTournamentStandings(ctx context.Context, tournamentID int) ([]Standing, error) {
	u := fmt.Sprintf("%s/tournaments/%d/standings", c.baseURL, tournamentID)
	resp, err := doRequest[[]Standing](ctx, c, "standings", u)
	if err != nil {
		return nil, err
	}
	return *resp, nil
}

func doRequest[T any](ctx context.Context, client *MatchplayClient, endpoint, url string) (*T, error) {
	if err := client.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Authorization", "Bearer "+client.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.SetContentType("application/json")

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = client.client.DoDeadline(req, resp, deadline)
	} else {
		err = client.client.Do(req, resp)
	}
	if err != nil {
		client.metrics.APIRequest(endpoint, 0)
		return nil, err
	}

	client.metrics.APIRequest(endpoint, resp.StatusCode())
	client.updateRateLimit(resp)

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode(), URL: url, Body: string(resp.Body())}
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return &result, nil
}
