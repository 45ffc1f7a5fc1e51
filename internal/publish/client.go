// Package publish pushes rendered pages to a remote static host over HTTP.
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client communicates with a remote publishing HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// PageRequest is the body for PUT /pages/{slug}.
type PageRequest struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	HTML        string `json:"html"`
	ContentHash string `json:"content_hash,omitempty"`
	SourceFile  string `json:"source_file,omitempty"`
}

// RetryableError marks a publish failure worth retrying (rate limits and
// server-side errors).
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("publish: status %d: %s", e.StatusCode, e.Message)
}

// PutPage uploads a rendered page document.
func (c *Client) PutPage(ctx context.Context, slug string, req PageRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal page: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/pages/"+slug, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("put page: %w", err)
	}
	defer resp.Body.Close()
	return checkStatus(resp, "put page "+slug, http.StatusOK, http.StatusCreated)
}

// DeletePage removes a page from the remote host.
func (c *Client) DeletePage(ctx context.Context, slug string) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/pages/"+slug, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	defer resp.Body.Close()
	return checkStatus(resp, "delete page "+slug, http.StatusOK, http.StatusNoContent, http.StatusNotFound)
}

func checkStatus(resp *http.Response, op string, okStatuses ...int) error {
	for _, s := range okStatuses {
		if resp.StatusCode == s {
			return nil
		}
	}
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return &RetryableError{StatusCode: resp.StatusCode, Message: op + ": " + string(respBody)}
	}
	return fmt.Errorf("%s: status %d: %s", op, resp.StatusCode, string(respBody))
}

// Close releases any resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
