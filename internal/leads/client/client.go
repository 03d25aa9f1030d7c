// Package client provides the HTTP client for the remote lead-management API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"lead_console/internal/leads/transport"
	"lead_console/platform/apperr"
	"lead_console/platform/config"
	"lead_console/platform/httpkit"
	"lead_console/platform/logger"
	"lead_console/platform/sanitize"
	"lead_console/platform/validator"

	"golang.org/x/time/rate"
)

// followupParams maps the UI pseudo-filters to the followupFilter query
// parameter. These never collide with the status parameter: lifecycle
// status and follow-up timing are orthogonal dimensions on the server.
var followupParams = map[string]string{
	"followup_today":  "today",
	"followup_missed": "missed",
	"followup_week":   "week",
	"followup_next24": "next24",
}

// ClientConfig narrows the configuration the client needs.
type ClientConfig interface {
	config.APIConfig
	config.RateConfig
}

// Client is the HTTP client for the lead-management API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	val        *validator.Validator
	log        *logger.Logger
}

// New creates a new lead API client.
func New(cfg ClientConfig, val *validator.Validator, log *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.GetAPIBaseURL(), "/"),
		httpClient: httpkit.NewClient(cfg.GetHTTPTimeout()),
		limiter:    rate.NewLimiter(rate.Limit(cfg.GetAPIRate()), cfg.GetAPIBurst()),
		val:        val,
		log:        log,
	}
}

// ListResult is the tagged outcome of a list call. OK=false means the
// request failed or was rejected; the zero envelope it carries is an
// "unknown" state, not a confirmed-empty one.
type ListResult struct {
	transport.Envelope
	OK  bool
	Err error
}

// List fetches one page of leads. It never returns an error: failures
// yield an empty page-1 envelope with OK=false so the caller always has
// a safe default to render.
func (c *Client) List(ctx context.Context, token string, page, pageSize int, filters transport.ListFilters) ListResult {
	fail := func(err error) ListResult {
		c.log.Error("list leads failed", "error", err)
		return ListResult{
			Envelope: transport.Envelope{Page: 1, TotalPages: 1},
			Err:      err,
		}
	}

	if page < 1 || pageSize < 1 {
		return fail(apperr.Validation("page and pageSize must be positive"))
	}
	if err := c.val.Struct(filters); err != nil {
		return fail(apperr.Wrap(apperr.KindValidation, "invalid filters", err))
	}

	reqURL := fmt.Sprintf("%s/leads/leads?%s", c.baseURL, buildListQuery(page, pageSize, filters))
	req, err := httpkit.NewJSONRequest(ctx, http.MethodGet, reqURL, nil, token)
	if err != nil {
		return fail(err)
	}

	resp, err := c.do(req)
	if err != nil {
		return fail(err)
	}
	defer resp.Body.Close()

	if !httpkit.IsSuccess(resp.StatusCode) {
		return fail(httpkit.ErrorFromResponse(resp))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(apperr.Network("read response", err))
	}

	envelope, err := normalize(body, page, pageSize)
	if err != nil {
		return fail(err)
	}

	return ListResult{Envelope: envelope, OK: true}
}

// buildListQuery translates filter state into the server's query contract.
// A followup_* pseudo-status becomes followupFilter and is never sent as
// status.
func buildListQuery(page, pageSize int, filters transport.ListFilters) string {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(pageSize))

	if followup, ok := followupParams[filters.StatusFilter]; ok {
		query.Set("followupFilter", followup)
	} else if filters.StatusFilter != "" && filters.StatusFilter != "all" {
		query.Set("status", filters.StatusFilter)
	}

	if filters.Search != "" {
		query.Set("search", filters.Search)
	}
	if filters.StartDate != "" {
		query.Set("startDate", filters.StartDate)
	}
	if filters.EndDate != "" {
		query.Set("endDate", filters.EndDate)
	}

	return query.Encode()
}

// rawEnvelope accepts the wrapper shape with its historical field
// aliases. Pointer fields distinguish "absent" from zero.
type rawEnvelope struct {
	Leads          []transport.Lead `json:"leads"`
	Data           []transport.Lead `json:"data"`
	Page           int              `json:"page"`
	TotalPages     *int             `json:"totalPages"`
	TotalLeads     *int             `json:"totalLeads"`
	Count          *int             `json:"count"`
	NewLeadsCount  int              `json:"newLeadsCount"`
	ContactedCount int              `json:"contactedCount"`
	ConvertedCount int              `json:"convertedCount"`
}

// normalize reduces either response shape (bare array or envelope) to
// the canonical envelope. Missing counters default to zero and a
// missing totalPages is computed from the total with a floor of 1.
func normalize(body []byte, page, pageSize int) (transport.Envelope, error) {
	trimmed := strings.TrimSpace(string(body))

	if strings.HasPrefix(trimmed, "[") {
		var leads []transport.Lead
		if err := json.Unmarshal(body, &leads); err != nil {
			return transport.Envelope{}, apperr.Wrap(apperr.KindNormalization, "decode lead array", err)
		}
		return transport.Envelope{
			Leads:      leads,
			Page:       page,
			TotalPages: pageCount(len(leads), pageSize),
			TotalLeads: len(leads),
		}, nil
	}

	var raw rawEnvelope
	if err := json.Unmarshal(body, &raw); err != nil {
		return transport.Envelope{}, apperr.Wrap(apperr.KindNormalization, "decode lead envelope", err)
	}

	leads := raw.Leads
	if leads == nil {
		leads = raw.Data
	}
	if leads == nil {
		leads = []transport.Lead{}
	}

	total := len(leads)
	if raw.TotalLeads != nil {
		total = *raw.TotalLeads
	} else if raw.Count != nil {
		total = *raw.Count
	}

	totalPages := pageCount(total, pageSize)
	if raw.TotalPages != nil && *raw.TotalPages > 0 {
		totalPages = *raw.TotalPages
	}

	resultPage := page
	if raw.Page > 0 {
		resultPage = raw.Page
	}

	return transport.Envelope{
		Leads:      leads,
		Page:       resultPage,
		TotalPages: totalPages,
		TotalLeads: total,
		Counts: transport.StatusCounts{
			New:       raw.NewLeadsCount,
			Contacted: raw.ContactedCount,
			Converted: raw.ConvertedCount,
		},
	}, nil
}

func pageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 1
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Update issues a partial update for a lead. The response body is not
// interpreted beyond its status code.
func (c *Client) Update(ctx context.Context, leadID string, updates transport.UpdateLeadRequest, token string) error {
	if leadID == "" {
		return apperr.Validation("lead id is required")
	}
	if err := c.val.Struct(updates); err != nil {
		return apperr.Wrap(apperr.KindValidation, "invalid update", err)
	}
	if err := updates.FollowUp.Validate(); err != nil {
		return err
	}

	reqURL := fmt.Sprintf("%s/leads/leads/%s", c.baseURL, url.PathEscape(leadID))
	req, err := httpkit.NewJSONRequest(ctx, http.MethodPut, reqURL, updates, token)
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

// Delete removes a lead from the remote store. There is no soft-delete
// or undo; the caller prunes its local collection on success.
func (c *Client) Delete(ctx context.Context, leadID, token string) error {
	if leadID == "" {
		return apperr.Validation("lead id is required")
	}

	reqURL := fmt.Sprintf("%s/admin/leads/%s", c.baseURL, url.PathEscape(leadID))
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

// CreateResult is the outcome of a public lead submission.
type CreateResult struct {
	Success bool
	Lead    *transport.Lead
	Error   string
}

// CreatePublic submits a lead through the unauthenticated creation path.
// It reports failure through the result instead of an error to keep
// caller branching simple.
func (c *Client) CreatePublic(ctx context.Context, payload transport.CreateLeadRequest) CreateResult {
	payload.Message = sanitize.Text(payload.Message)
	if err := c.val.Struct(payload); err != nil {
		return CreateResult{Error: err.Error()}
	}

	reqURL := fmt.Sprintf("%s/leads/leads", c.baseURL)
	req, err := httpkit.NewJSONRequest(ctx, http.MethodPost, reqURL, payload, "")
	if err != nil {
		return CreateResult{Error: err.Error()}
	}

	resp, err := c.do(req)
	if err != nil {
		return CreateResult{Error: err.Error()}
	}
	defer resp.Body.Close()

	if !httpkit.IsSuccess(resp.StatusCode) {
		apiErr := httpkit.ErrorFromResponse(resp)
		c.log.Error("public lead creation failed", "status", apiErr.Status, "error", apiErr.Message)
		return CreateResult{Error: apiErr.Message}
	}

	var lead transport.Lead
	if err := httpkit.DecodeJSON(resp, &lead); err != nil {
		// Created server-side but the body was not a lead; still a success.
		return CreateResult{Success: true}
	}
	return CreateResult{Success: true, Lead: &lead}
}

// do waits for the rate limiter, performs the request and logs timing.
// Logs carry the request ID (and lead ID, when set) from the request context.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, apperr.Network("rate limiter", err)
	}

	log := c.log.WithContext(req.Context())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := float64(time.Since(start).Milliseconds())

	if err != nil {
		log.APIError(req.Method, req.URL.Path, 0, err)
		return nil, apperr.Network("http request", err)
	}

	log.APIRequest(req.Method, req.URL.Path, resp.StatusCode, latency)
	return resp, nil
}
