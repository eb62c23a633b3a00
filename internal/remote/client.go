// Package remote is the HTTP/JSON client of the Remote Complaint Service.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/resolveit/complaint-sync/internal/observability"
	apperrors "github.com/resolveit/complaint-sync/pkg/util/errorutil"
)

const maxLoggedBody = 512

// Client issues authenticated calls to the Remote Complaint Service. A Client
// bound to a token is obtained with WithToken; the zero token sends no
// Authorization header.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
	logger  *zap.Logger
	metrics *observability.Metrics
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout bounds each HTTP exchange. Zero leaves calls unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http = &http.Client{Timeout: d, Transport: c.http.Transport}
	}
}

// WithLogger sets the logger used for call tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records remote call counters.
func WithMetrics(metrics *observability.Metrics) Option {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// NewClient builds a client for the service rooted at baseURL (for example
// http://localhost:8080/api).
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithToken returns a copy of the client that authenticates as token.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

type request struct {
	operation   string
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	public      bool
}

func jsonRequest(operation, method, path string, payload any) (request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return request{}, apperrors.NewInternalError(fmt.Errorf("encode %s: %w", operation, err))
	}
	return request{
		operation:   operation,
		method:      method,
		path:        path,
		body:        bytes.NewReader(body),
		contentType: "application/json",
	}, nil
}

// do performs the exchange and returns the body of a 2xx response. Failures map
// onto the transport / remote-status taxonomy of errorutil.
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	endpoint := c.baseURL + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, r.body)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("build %s request: %w", r.operation, err))
	}
	requestID := uuid.NewString()
	req.Header.Set(observability.RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json, text/plain")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if !r.public && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.RecordRemoteCall(r.operation, 0, time.Since(start))
		c.logger.Warn("remote call failed",
			zap.String("operation", r.operation),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, apperrors.NewTransportError(r.operation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	duration := time.Since(start)
	c.metrics.RecordRemoteCall(r.operation, resp.StatusCode, duration)
	if err != nil {
		return nil, apperrors.NewTransportError(r.operation, err)
	}

	fields := []zap.Field{
		zap.String("operation", r.operation),
		zap.String("method", r.method),
		zap.String("path", r.path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration),
		zap.String("request_id", requestID),
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Warn("remote call rejected", append(fields, zap.String("body", truncate(body)))...)
		return nil, apperrors.NewRemoteError(r.operation, resp.StatusCode, truncate(body))
	}
	c.logger.Debug("remote call", fields...)
	return body, nil
}

func decode[T any](operation string, body []byte) (T, error) {
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return out, apperrors.NewMalformedResponse(operation, err)
	}
	return out, nil
}

// decodeList accepts a JSON array or an empty/null body.
func decodeList[T any](operation string, body []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}
	if trimmed[0] != '[' {
		return nil, apperrors.NewMalformedResponse(operation, errors.New("expected a JSON array"))
	}
	list, err := decode[[]T](operation, trimmed)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}

// decodeOptionalRecord returns the complaint carried by a mutation response,
// or nil when the service acknowledged with plain text.
func decodeOptionalRecord(body []byte) *ComplaintRecord {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var rec ComplaintRecord
	if err := json.Unmarshal(trimmed, &rec); err != nil || rec.ID <= 0 {
		return nil
	}
	return &rec
}

func truncate(body []byte) string {
	if len(body) > maxLoggedBody {
		return string(body[:maxLoggedBody]) + "..."
	}
	return string(body)
}
