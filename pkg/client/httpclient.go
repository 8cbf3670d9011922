package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type HttpClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewHttpClient(baseURL string, timeout time.Duration) *HttpClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HttpClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type Response struct {
	*http.Response
	Body []byte
}

func (r *Response) DecodeJSON(target any) error {
	return json.Unmarshal(r.Body, target)
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (c *HttpClient) GET(ctx context.Context, path string) (*Response, error) {
	return c.request(ctx, http.MethodGet, path, nil)
}

func (c *HttpClient) POST(ctx context.Context, path string, body any) (*Response, error) {
	return c.request(ctx, http.MethodPost, path, body)
}

func (c *HttpClient) request(ctx context.Context, method, path string, body any) (*Response, error) {
	var reqBody io.Reader

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		Response: resp,
		Body:     respBody,
	}, nil
}

// GetErrorMessage extracts the structured failure reason from a non-2xx
// response, falling back to the status text when the body is not parseable.
func GetErrorMessage(resp *Response) string {
	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := resp.DecodeJSON(&errResp); err != nil {
		return resp.Status
	}

	if errResp.Message != "" {
		return errResp.Message
	}
	if errResp.Error != "" {
		return errResp.Error
	}
	return resp.Status
}
