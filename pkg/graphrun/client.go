package graphrun

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/quiverhq/graphrun/pkg/httpclient"
)

const defaultTimeout = 30 * time.Second

// Client talks to a graph-execution service. It holds the base URL and one
// shared resty client reused for every call; keep-alive pooling on that
// client is the only state carried between calls.
type Client struct {
	baseURL string
	http    *resty.Client
	log     *zap.SugaredLogger
}

// Option customizes a Client at construction time.
type Option func(*Client)

// WithTimeout sets the per-request timeout on the underlying HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// WithLogger sets the logger used for diagnostic output (stateless run
// failures). The default is a nop logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithHeader adds a header sent on every request, e.g. an API key.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.http.SetHeader(key, value) }
}

// WithHTTPClient replaces the underlying resty client entirely. Timeout and
// header options applied before this one are lost.
func WithHTTPClient(hc *resty.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a client for the service at baseURL. Request paths are appended
// to baseURL verbatim, so a trailing slash in baseURL ends up doubled.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    httpclient.New(defaultTimeout),
		log:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// url joins the base URL and a path by plain concatenation.
func (c *Client) url(path string) string { return c.baseURL + path }

// postJSON sends body as JSON to path and decodes the JSON response.
func (c *Client) postJSON(ctx context.Context, path string, body any) (map[string]any, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(c.url(path))
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", path, err)
	}
	return decodeJSON(resp, path)
}

// postNoResult sends body as JSON to path and discards any response body.
func (c *Client) postNoResult(ctx context.Context, path string, body any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(c.url(path))
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	if resp.IsError() {
		return newHTTPError(resp.StatusCode(), resp.Body())
	}
	return nil
}

// getJSON issues a GET with optional query parameters and decodes the JSON
// response.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values) (map[string]any, error) {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	resp, err := req.Get(c.url(path))
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	return decodeJSON(resp, path)
}

// putNoResult sends body as JSON via PUT and discards any response body.
func (c *Client) putNoResult(ctx context.Context, path string, body any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Put(c.url(path))
	if err != nil {
		return fmt.Errorf("put %s: %w", path, err)
	}
	if resp.IsError() {
		return newHTTPError(resp.StatusCode(), resp.Body())
	}
	return nil
}

// decodeJSON validates the response status and unmarshals its body.
func decodeJSON(resp *resty.Response, path string) (map[string]any, error) {
	if resp.IsError() {
		return nil, newHTTPError(resp.StatusCode(), resp.Body())
	}
	var out map[string]any
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", path, err)
	}
	return out, nil
}

// mergeExtra copies extra into payload after the named fields, so extras win
// on key collision. The service tolerates unknown fields, which keeps the
// client forward compatible.
func mergeExtra(payload map[string]any, extra map[string]any) map[string]any {
	for k, v := range extra {
		payload[k] = v
	}
	return payload
}
