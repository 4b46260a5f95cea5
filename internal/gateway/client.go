package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/quatet/storefront-api/pkg/auth"
	"github.com/quatet/storefront-api/pkg/config"
	pkgerrors "github.com/quatet/storefront-api/pkg/errors"
	"github.com/quatet/storefront-api/pkg/metrics"
)

const responseBodyReadLimit int64 = 4 << 20

var errBaseURLRequired = errors.New("platform base url is required")

// Client talks to the platform REST API. Every response arrives in the
// uniform {status, msg, data} envelope; the bearer token is read from the
// request context on each call, never cached on the client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *metrics.UpstreamMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithMetrics wires upstream call metrics into the client.
func WithMetrics(m *metrics.UpstreamMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds the platform API client.
func NewClient(cfg config.UpstreamConfig, opts ...Option) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errBaseURLRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: timeout}
	}

	return client, nil
}

type envelope struct {
	Status int             `json:"status"`
	Msg    string          `json:"msg"`
	Data   json.RawMessage `json:"data"`
}

// call performs one request/response cycle against the platform. The endpoint
// label only feeds metrics. No retries: the user re-triggers failed actions.
func (c *Client) call(ctx context.Context, method, path, endpoint string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode platform request")
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build platform request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := auth.TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveDuration(endpoint, time.Since(start))
	if err != nil {
		c.metrics.IncFailure(endpoint)
		return pkgerrors.Wrap(pkgerrors.CodeNetworkFailure, err, "platform unreachable")
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	var env envelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, responseBodyReadLimit)).Decode(&env); err != nil {
		c.metrics.IncFailure(endpoint)
		return pkgerrors.Wrap(pkgerrors.CodeNetworkFailure, err, "decode platform response")
	}

	if env.Status < http.StatusOK || env.Status >= http.StatusMultipleChoices {
		c.metrics.IncFailure(endpoint)
		return rejectionError(env)
	}
	c.metrics.IncSuccess(endpoint)

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode platform payload")
		}
	}
	return nil
}

// rejectionError maps a non-success envelope onto the error taxonomy. The
// platform message is passed through when present.
func rejectionError(env envelope) error {
	msg := strings.TrimSpace(env.Msg)
	switch env.Status {
	case http.StatusUnauthorized:
		if msg == "" {
			msg = "authentication required"
		}
		return pkgerrors.New(pkgerrors.CodeAuthRequired, msg)
	case http.StatusNotFound:
		if msg == "" {
			msg = "resource not found"
		}
		return pkgerrors.New(pkgerrors.CodeNotFound, msg)
	default:
		if msg == "" {
			msg = "request rejected by platform"
		}
		return pkgerrors.New(pkgerrors.CodeRemoteRejected, msg).
			WithDetails(map[string]any{"upstream_status": env.Status})
	}
}
