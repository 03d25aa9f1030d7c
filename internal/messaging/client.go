// Package messaging provides the client for outbound lead messaging.
// Unlike the lead CRUD calls this path is fail-loud: a send failure
// needs a specific user-facing reason (invalid recipient, quota, ...)
// rather than a silent empty result.
package messaging

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"lead_console/platform/apperr"
	"lead_console/platform/config"
	"lead_console/platform/httpkit"
	"lead_console/platform/logger"
	"lead_console/platform/validator"
)

// Channel selects the delivery route for an outbound message.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelBoth     Channel = "both"
)

// SendRequest is the send-message payload.
type SendRequest struct {
	LeadID      string  `json:"leadId" validate:"required"`
	MessageType Channel `json:"messageType" validate:"required,oneof=email whatsapp both"`
	Message     string  `json:"message" validate:"required,min=1,max=10000"`
}

// SendResult is the server's send confirmation.
type SendResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Client talks to the messaging endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	val        *validator.Validator
	log        *logger.Logger
}

// NewClient creates a new messaging client.
func NewClient(cfg config.APIConfig, val *validator.Validator, log *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.GetAPIBaseURL(), "/"),
		httpClient: httpkit.NewClient(cfg.GetHTTPTimeout()),
		val:        val,
		log:        log,
	}
}

// Send dispatches an outbound message to a lead over the given channel.
// Failures propagate as errors carrying the server-provided message
// when one is available.
func (c *Client) Send(ctx context.Context, leadID string, channel Channel, message, token string) (*SendResult, error) {
	payload := SendRequest{LeadID: leadID, MessageType: channel, Message: message}
	if err := c.val.Struct(payload); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "invalid message", err)
	}

	reqURL := fmt.Sprintf("%s/messages/%s/send-message", c.baseURL, url.PathEscape(leadID))
	req, err := httpkit.NewJSONRequest(ctx, http.MethodPost, reqURL, payload, token)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.APIError(req.Method, req.URL.Path, 0, err)
		return nil, apperr.Network("send message", err)
	}
	defer resp.Body.Close()

	if !httpkit.IsSuccess(resp.StatusCode) {
		apiErr := httpkit.ErrorFromResponse(resp).WithOp("send message")
		c.log.APIError(req.Method, req.URL.Path, resp.StatusCode, apiErr)
		return nil, apiErr
	}

	var result SendResult
	if err := httpkit.DecodeJSON(resp, &result); err != nil {
		// Delivery was accepted; a malformed ack body is not a failure.
		return &SendResult{Success: true}, nil
	}

	c.log.Info("message sent", "lead_id", leadID, "channel", string(channel))
	return &result, nil
}
