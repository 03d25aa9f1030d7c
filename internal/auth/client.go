// Package auth provides the client for the admin authentication endpoints
// and the in-memory bearer session.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"lead_console/platform/config"
	"lead_console/platform/httpkit"
	"lead_console/platform/logger"
	"lead_console/platform/validator"
)

// Credentials is the login/signup payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Result is the auth envelope shared by all admin auth endpoints.
type Result struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Client talks to the admin auth endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	val        *validator.Validator
	log        *logger.Logger
}

// NewClient creates a new auth client.
func NewClient(cfg config.APIConfig, val *validator.Validator, log *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.GetAPIBaseURL(), "/"),
		httpClient: httpkit.NewClient(cfg.GetHTTPTimeout()),
		val:        val,
		log:        log,
	}
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds Credentials) Result {
	if err := c.val.Struct(creds); err != nil {
		return Result{Error: err.Error()}
	}

	result := c.post(ctx, "/admin/login", creds)
	c.log.AuthEvent("login", creds.Email, result.Success, result.Error)
	return result
}

// Signup registers a new admin account.
func (c *Client) Signup(ctx context.Context, creds Credentials) Result {
	if err := c.val.Struct(creds); err != nil {
		return Result{Error: err.Error()}
	}

	result := c.post(ctx, "/admin/signup", creds)
	c.log.AuthEvent("signup", creds.Email, result.Success, result.Error)
	return result
}

// ForgotPassword requests a password reset mail for the given address.
func (c *Client) ForgotPassword(ctx context.Context, email string) Result {
	if err := c.val.Var(email, "required,email"); err != nil {
		return Result{Error: err.Error()}
	}

	payload := map[string]string{"email": email}
	result := c.post(ctx, "/admin/forgot-password", payload)
	c.log.AuthEvent("forgot_password", email, result.Success, result.Error)
	return result
}

// ResetPassword redeems a reset token for a new password.
func (c *Client) ResetPassword(ctx context.Context, resetToken, newPassword string) Result {
	if resetToken == "" {
		return Result{Error: "reset token is required"}
	}
	if err := c.val.Var(newPassword, "required,min=8"); err != nil {
		return Result{Error: err.Error()}
	}

	payload := map[string]string{"token": resetToken, "password": newPassword}
	return c.post(ctx, "/admin/reset-password", payload)
}

// post sends an unauthenticated JSON request and decodes the auth
// envelope. Transport failures are folded into the envelope so every
// auth call resolves to a Result.
func (c *Client) post(ctx context.Context, path string, body interface{}) Result {
	req, err := httpkit.NewJSONRequest(ctx, http.MethodPost, c.baseURL+path, body, "")
	if err != nil {
		return Result{Error: err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{Error: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	if !httpkit.IsSuccess(resp.StatusCode) {
		apiErr := httpkit.ErrorFromResponse(resp)
		return Result{Error: apiErr.Message}
	}

	var result Result
	if err := httpkit.DecodeJSON(resp, &result); err != nil {
		return Result{Error: err.Error()}
	}
	if !result.Success && result.Token != "" {
		// Some deployments return the token without the success flag.
		result.Success = true
	}
	return result
}
