// Package backend is the typed HTTP client for the remote product data
// service consumed by the page renderer and the interactive controllers.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/southmarket/storefront/internal/domain"
)

const defaultTimeout = 10 * time.Second

// ClientOption configures the client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-request timeout. Ignored when a custom HTTP
// client is supplied.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// Client is an HTTP client for the product data service.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient creates a client for the data service at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c
}

// GetItem fetches the product record. lang is optional and forwarded
// as a query parameter when set.
func (c *Client) GetItem(ctx context.Context, lang string) (*domain.ItemDetail, error) {
	var item domain.ItemDetail
	if err := c.getJSON(ctx, "/item", lang, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// GetReviews fetches the reviews and ratings record.
func (c *Client) GetReviews(ctx context.Context, lang string) (*domain.ReviewsData, error) {
	var reviews domain.ReviewsData
	if err := c.getJSON(ctx, "/reviews", lang, &reviews); err != nil {
		return nil, err
	}
	return &reviews, nil
}

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Results []domain.SearchResult `json:"results"`
}

// Search runs a product search for query.
func (c *Client) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	var resp searchResponse
	if err := c.postJSON(ctx, "/search", searchRequest{Query: query}, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// ChatRequest is a question for the assistant endpoint. OpenAIKey and
// Language are optional and omitted from the wire when empty.
type ChatRequest struct {
	Question  string `json:"question"`
	OpenAIKey string `json:"openai_key,omitempty"`
	Language  string `json:"language,omitempty"`
}

// ChatResponse is the assistant's raw (unsanitized) reply.
type ChatResponse struct {
	Answer string `json:"answer"`
}

// Chat asks the assistant endpoint a question.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var resp ChatResponse
	if err := c.postJSON(ctx, "/agent/chat", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) getJSON(ctx context.Context, path, lang string, out any) error {
	target := c.baseURL + path
	if lang != "" {
		target += "?lang=" + url.QueryEscape(lang)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(httpReq, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	return c.do(httpReq, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}
