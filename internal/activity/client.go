// Package activity provides the client for the activity log endpoints.
package activity

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lead_console/platform/config"
	"lead_console/platform/httpkit"
	"lead_console/platform/logger"
	"lead_console/platform/sanitize"
	"lead_console/platform/validator"
)

// Activity is a free-text log entry attached to a user or lead. It is
// CRUD'd against its own endpoint, not nested inside the lead record.
type Activity struct {
	ID        string     `json:"_id"`
	UserID    string     `json:"userId"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// AddRequest is the creation payload.
type AddRequest struct {
	UserID string `json:"userId" validate:"required"`
	Text   string `json:"text" validate:"required,min=1,max=5000"`
}

// Client talks to the activity endpoints. All calls carry the bearer
// token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	val        *validator.Validator
	log        *logger.Logger
}

// NewClient creates a new activity client.
func NewClient(cfg config.APIConfig, val *validator.Validator, log *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.GetAPIBaseURL(), "/"),
		httpClient: httpkit.NewClient(cfg.GetHTTPTimeout()),
		val:        val,
		log:        log,
	}
}

// ListForUser fetches the activity entries owned by the given user.
func (c *Client) ListForUser(ctx context.Context, userID, token string) ([]Activity, error) {
	reqURL := fmt.Sprintf("%s/activity/%s", c.baseURL, url.PathEscape(userID))
	req, err := httpkit.NewJSONRequest(ctx, http.MethodGet, reqURL, nil, token)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !httpkit.IsSuccess(resp.StatusCode) {
		return nil, httpkit.ErrorFromResponse(resp)
	}

	var activities []Activity
	if err := httpkit.DecodeJSON(resp, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// Add creates a new activity entry.
func (c *Client) Add(ctx context.Context, request AddRequest, token string) (*Activity, error) {
	request.Text = sanitize.Text(request.Text)
	if err := c.val.Struct(request); err != nil {
		return nil, err
	}

	req, err := httpkit.NewJSONRequest(ctx, http.MethodPost, c.baseURL+"/activity", request, token)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !httpkit.IsSuccess(resp.StatusCode) {
		return nil, httpkit.ErrorFromResponse(resp)
	}

	var created Activity
	if err := httpkit.DecodeJSON(resp, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces the text of an existing entry.
func (c *Client) Update(ctx context.Context, activityID, text, token string) error {
	text = sanitize.Text(text)
	if err := c.val.Var(text, "required,min=1,max=5000"); err != nil {
		return err
	}

	reqURL := fmt.Sprintf("%s/activity/%s", c.baseURL, url.PathEscape(activityID))
	payload := map[string]string{"text": text}
	req, err := httpkit.NewJSONRequest(ctx, http.MethodPut, reqURL, payload, token)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !httpkit.IsSuccess(resp.StatusCode) {
		return httpkit.ErrorFromResponse(resp)
	}
	return nil
}

// Delete removes an entry.
func (c *Client) Delete(ctx context.Context, activityID, token string) error {
	reqURL := fmt.Sprintf("%s/activity/%s", c.baseURL, url.PathEscape(activityID))
	req, err := httpkit.NewJSONRequest(ctx, http.MethodDelete, reqURL, nil, token)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !httpkit.IsSuccess(resp.StatusCode) {
		return httpkit.ErrorFromResponse(resp)
	}
	return nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.APIError(req.Method, req.URL.Path, 0, err)
		return nil, err
	}
	c.log.APIRequest(req.Method, req.URL.Path, resp.StatusCode, float64(time.Since(start).Milliseconds()))
	return resp, nil
}
