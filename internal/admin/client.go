// Package admin provides the client for the admin profile and stats
// endpoints.
package admin

import (
	"context"
	"net/http"
	"strings"
	"time"

	"lead_console/platform/config"
	"lead_console/platform/httpkit"
	"lead_console/platform/logger"
)

// Profile is the admin account, fetched once per session and read-only
// from the console's perspective.
type Profile struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// DailyStats carries the day's lead counters.
type DailyStats struct {
	TotalLeads int `json:"totalLeads"`
	New        int `json:"new"`
	Contacted  int `json:"contacted"`
	Converted  int `json:"converted"`
}

// Client talks to the admin endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient creates a new admin client.
func NewClient(cfg config.APIConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.GetAPIBaseURL(), "/"),
		httpClient: httpkit.NewClient(cfg.GetHTTPTimeout()),
		log:        log,
	}
}

// Profile fetches the authenticated admin's profile.
func (c *Client) Profile(ctx context.Context, token string) (*Profile, error) {
	var profile Profile
	if err := c.get(ctx, "/admin/me", token, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// DailyStats fetches the daily lead counters.
func (c *Client) DailyStats(ctx context.Context, token string) (*DailyStats, error) {
	var stats DailyStats
	if err := c.get(ctx, "/admin/stats/daily", token, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) get(ctx context.Context, path, token string, v interface{}) error {
	req, err := httpkit.NewJSONRequest(ctx, http.MethodGet, c.baseURL+path, nil, token)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.APIError(req.Method, req.URL.Path, 0, err)
		return err
	}
	defer resp.Body.Close()
	c.log.APIRequest(req.Method, req.URL.Path, resp.StatusCode, float64(time.Since(start).Milliseconds()))

	if !httpkit.IsSuccess(resp.StatusCode) {
		return httpkit.ErrorFromResponse(resp)
	}
	return httpkit.DecodeJSON(resp, v)
}
