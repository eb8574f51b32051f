package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"voting-service/internal/domain"

	"github.com/redis/go-redis/v9"
)

// Client talks to the meeting roster service. Responses are cached in Redis
// with a short TTL so a flapping roster does not get hammered on every
// results query. Any transport or decode failure maps to
// domain.ErrRosterUnavailable; callers decide the fallback.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *redis.Client
	cacheTTL   time.Duration
	logger     *slog.Logger
}

// NewClient builds a roster client. cache may be nil to disable caching.
func NewClient(baseURL string, timeout time.Duration, cache *redis.Client, cacheTTL time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// EligibleVoters fetches the user ids allowed to vote in a meeting.
func (c *Client) EligibleVoters(ctx context.Context, meetingID, role string) ([]string, error) {
	cacheKey := fmt.Sprintf("roster:%s:%s", meetingID, role)
	if c.cache != nil {
		if raw, err := c.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var voters []string
			if json.Unmarshal(raw, &voters) == nil {
				return voters, nil
			}
		}
	}

	endpoint := fmt.Sprintf("%s/meetings/%s/voters?role=%s",
		c.baseURL, url.PathEscape(meetingID), url.QueryEscape(role))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRosterUnavailable, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRosterUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrRosterUnavailable, resp.StatusCode)
	}

	var payload struct {
		Voters []string `json:"voters"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRosterUnavailable, err)
	}

	if c.cache != nil {
		raw, err := json.Marshal(payload.Voters)
		if err == nil {
			if err := c.cache.Set(ctx, cacheKey, raw, c.cacheTTL).Err(); err != nil {
				c.logger.Warn("roster cache write failed", "meeting_id", meetingID, "error", err)
			}
		}
	}
	return payload.Voters, nil
}
