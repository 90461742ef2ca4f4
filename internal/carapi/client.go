package carapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultTimeout bounds every request unless overridden.
	DefaultTimeout = 30 * time.Second

	// DefaultAPIKeyHeader carries the API key.
	DefaultAPIKeyHeader = "x-api-key"

	defaultBaseURL   = "http://127.0.0.1:3000"
	defaultUserAgent = "carview/0.1"
	maxBodyBytes     = 8 << 20
)

// Options configure a Client.
type Options struct {
	BaseURL      string
	APIKey       string
	APIKeyHeader string        // empty uses DefaultAPIKeyHeader
	Timeout      time.Duration // zero uses DefaultTimeout
	HTTPClient   *http.Client  // nil uses a fresh client without its own timeout
	Logger       *zap.Logger   // nil disables logging
}

// Client talks to the cars REST API.
type Client struct {
	baseURL      *url.URL
	http         *http.Client
	apiKey       string
	apiKeyHeader string
	timeout      time.Duration
	userAgent    string
	log          *zap.Logger
}

// NewClient builds a Client from opts.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	header := strings.TrimSpace(opts.APIKeyHeader)
	if header == "" {
		header = DefaultAPIKeyHeader
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:      base,
		http:         httpClient,
		apiKey:       opts.APIKey,
		apiKeyHeader: header,
		timeout:      timeout,
		userAgent:    defaultUserAgent,
		log:          logger,
	}, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Request describes a single API call.
type Request struct {
	Method  string
	Path    string        // escaped, relative to the base URL
	Body    any           // JSON-encoded when non-nil
	Header  http.Header   // merged over the defaults
	Timeout time.Duration // zero uses the client timeout
}

// Do performs req and returns the fully read response. Transport failures are
// returned as *Error with kind ErrNetwork, ErrCORS or ErrTimeout; a cancelled
// parent context is returned as context.Canceled.
func (c *Client) Do(ctx context.Context, req Request) (*RawResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	reqURL := c.baseURL.JoinPath(req.Path)
	httpReq, err := http.NewRequestWithContext(reqCtx, req.Method, reqURL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		httpReq.Header.Set(c.apiKeyHeader, c.apiKey)
	}
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-ID", requestID)
	for key, values := range req.Header {
		httpReq.Header.Del(key)
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		classified := classifyTransport(ctx, err, timeout)
		c.log.Debug("request failed",
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.String("request_id", requestID),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(classified),
		)
		return nil, classified
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, classifyTransport(ctx, err, timeout)
	}

	c.log.Debug("request completed",
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &RawResponse{Status: resp.StatusCode, Body: payload}, nil
}

// classifyTransport maps a transport failure onto the error taxonomy. parent is
// the caller's context, used to tell a user cancellation from our own deadline.
func classifyTransport(parent context.Context, err error, timeout time.Duration) error {
	if parent.Err() != nil {
		return parent.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return timeoutError(timeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return timeoutError(timeout, err)
	}

	var dnsErr *net.DNSError
	var opErr *net.OpError
	switch {
	case errors.As(err, &dnsErr):
		return &Error{Kind: ErrNetwork, Message: fmt.Sprintf("network error: host %q not found", dnsErr.Name), Err: err}
	case errors.Is(err, syscall.ECONNREFUSED):
		return &Error{Kind: ErrNetwork, Message: "network error: connection refused; check the API URL and that the server is running", Err: err}
	case errors.As(err, &opErr):
		return &Error{Kind: ErrNetwork, Message: "network error: unable to reach the server", Err: err}
	}

	// Last resort: inspect the message text.
	text := strings.ToLower(err.Error())
	switch {
	case strings.Contains(text, "cors"), strings.Contains(text, "cross-origin"), strings.Contains(text, "access-control"):
		return &Error{Kind: ErrCORS, Message: "CORS error: the server does not accept requests from this origin", Err: err}
	case strings.Contains(text, "connection refused"),
		strings.Contains(text, "no such host"),
		strings.Contains(text, "network"),
		strings.Contains(text, "eof"),
		strings.Contains(text, "connection reset"):
		return &Error{Kind: ErrNetwork, Message: "network error: unable to reach the server", Err: err}
	}
	return &Error{Kind: ErrNetwork, Message: fmt.Sprintf("request failed: %v", err), Err: err}
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api base url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
