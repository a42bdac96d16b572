// Package resapi talks to the reservations backend: it fetches the reserved
// time ranges touching an office and date so the engine can flag conflicts.
package resapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"vanrent/internal/model"
)

// Client is an HTTP client for the reservations backend.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	redis    *redis.Client
	cacheTTL time.Duration
}

// reservedSlotsResponse is the backend's payload for a reserved-slots query.
type reservedSlotsResponse struct {
	Slots []model.ReservedSlot `json:"slots"`
}

// NewClient constructs a client with baseURL and API key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// UseRedisCache configures optional Redis read-through caching.
func (c *Client) UseRedisCache(redisClient *redis.Client, ttl time.Duration) {
	c.redis = redisClient
	c.cacheTTL = ttl
}

// ReservedSlots fetches the reserved ranges for office/date (YYYY-MM-DD)
// and reservation side.
func (c *Client) ReservedSlots(ctx context.Context, officeID, date string, role model.Role) ([]model.ReservedSlot, error) {
	endpoint := fmt.Sprintf("%s/api/v1/reservations?office=%s&date=%s&role=%s",
		c.baseURL, url.QueryEscape(officeID), url.QueryEscape(date), url.QueryEscape(string(role)))
	cacheKey := fmt.Sprintf("reserved:%s:%s:%s", officeID, date, role)

	var resp reservedSlotsResponse
	if c.readCache(ctx, cacheKey, &resp) {
		return resp.Slots, nil
	}

	if err := c.doGet(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	c.writeCache(ctx, cacheKey, resp)
	return resp.Slots, nil
}

func (c *Client) doGet(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("reservations request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("reservations backend returned %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil {
		return false
	}
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

func (c *Client) writeCache(ctx context.Context, key string, value any) {
	if c.redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	// Cache failures are not fatal; the next query hits the backend again.
	_ = c.redis.Set(ctx, key, data, c.cacheTTL).Err()
}
