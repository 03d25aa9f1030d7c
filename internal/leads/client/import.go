package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"lead_console/platform/apperr"
	"lead_console/platform/httpkit"
)

// importResponse is the bulk-import result body.
type importResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ImportFile uploads a CSV/XLSX file to the bulk-import endpoint as
// multipart form data. No client-side parsing or validation happens
// here; success is entirely server-determined, and failures propagate
// as errors carrying the server message so the caller can surface the
// specific reason (malformed file, bad columns, ...).
func (c *Client) ImportFile(ctx context.Context, filename string, file io.Reader, token string) (string, error) {
	if filename == "" {
		return "", apperr.Validation("filename is required")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("copy file contents: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalize multipart body: %w", err)
	}

	reqURL := fmt.Sprintf("%s/admin/import-leads", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	httpkit.SetBearer(req, token)

	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if !httpkit.IsSuccess(resp.StatusCode) {
		return "", httpkit.ErrorFromResponse(resp)
	}

	var result importResponse
	if err := httpkit.DecodeJSON(resp, &result); err != nil {
		return "", err
	}
	if result.Error != "" {
		return "", apperr.New(apperr.KindServer, result.Error)
	}
	return result.Message, nil
}
