// Package apiclient is the request pipeline shared by every domain API: it attaches
// the stored credential, applies the deployment timeout and normalizes every outcome
// into an Envelope, a raw body, or one of two error shapes.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/shiptrain/portal/config"
	"github.com/shiptrain/portal/internal/events"
	"github.com/shiptrain/portal/pkg/httpclient"
	"github.com/shiptrain/portal/pkg/logger"
	"github.com/shiptrain/portal/pkg/metrics"
	"github.com/shiptrain/portal/pkg/tracing"
)

// CredentialStore is the part of the session the pipeline needs: read the
// credential before a request, wipe everything after an authentication failure.
type CredentialStore interface {
	Credential() string
	Clear() error
}

// RequestInterceptor may modify an outgoing request. A returned error aborts the
// call and is handed to the caller unchanged.
type RequestInterceptor func(*http.Request) error

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying transport
func WithHTTPClient(hc httpclient.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithRequestInterceptor appends an interceptor after the credential interceptor
func WithRequestInterceptor(ic RequestInterceptor) Option {
	return func(c *Client) {
		c.interceptors = append(c.interceptors, ic)
	}
}

// WithClock sets the clock used to timestamp AuthExpired events
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// Client sends Requests to one deployment
type Client struct {
	cfg          config.DeploymentConfig
	http         httpclient.Client
	creds        CredentialStore
	bus          *events.Bus
	interceptors []RequestInterceptor
	now          func() time.Time
}

// New creates a client for the deployment. creds and bus may be nil.
func New(cfg config.DeploymentConfig, creds CredentialStore, bus *events.Bus, opts ...Option) *Client {
	c := &Client{
		cfg:   cfg,
		http:  httpclient.NewStandardClient(),
		creds: creds,
		bus:   bus,
		now:   time.Now,
	}
	c.interceptors = []RequestInterceptor{credentialInterceptor(cfg, creds)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Deployment returns the deployment this client talks to
func (c *Client) Deployment() config.DeploymentConfig {
	return c.cfg
}

// BinaryTimeout is the extended timeout used by download endpoints
func (c *Client) BinaryTimeout() time.Duration {
	return c.cfg.BinaryTimeout
}

// URL resolves path against the deployment base URL
func (c *Client) URL(path string) string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// Call sends a structured request and returns its successful envelope
func (c *Client) Call(ctx context.Context, r *Request) (*Envelope, error) {
	resp, err := c.Do(ctx, r)
	if err != nil {
		return nil, err
	}
	if resp.Envelope == nil {
		return nil, &TransportError{Kind: KindInvalidPayload, StatusCode: resp.StatusCode, Message: msgInvalidPayload}
	}
	return resp.Envelope, nil
}

// Download sends r expecting a binary payload and returns the response with its raw body
func (c *Client) Download(ctx context.Context, r *Request) (*Response, error) {
	binary := *r
	binary.ResponseType = ResponseBinary
	return c.Do(ctx, &binary)
}

// Do runs one request through the pipeline. No retries are made.
func (c *Client) Do(ctx context.Context, r *Request) (*Response, error) {
	start := time.Now()
	method := r.method()

	ctx, span := tracing.StartSpan(ctx, method+" "+r.Path, trace.SpanKindClient,
		attribute.String("portal.deployment", c.cfg.Name),
		attribute.String("http.request.method", method),
		attribute.String("url.path", r.Path),
	)
	defer span.End()

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = c.cfg.Timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	resp, err := c.do(ctx, r, method)

	duration := metrics.MeasureDuration(start)
	outcome := outcomeOf(err)
	metrics.APIClientRequestDuration.WithLabelValues(c.cfg.Name, method, outcome).Observe(duration)
	metrics.APIClientRequestTotal.WithLabelValues(c.cfg.Name, method, outcome).Inc()

	status := "success"
	fields := []zap.Field{zap.String("outcome", outcome)}
	if err != nil {
		status = "error"
		fields = append(fields, zap.String("error", Message(err)))
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	if resp != nil {
		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	}
	logger.LogAPICall(ctx, c.cfg.Name, method+" "+r.Path, status, duration, fields...)

	return resp, err
}

func (c *Client) do(ctx context.Context, r *Request, method string) (*Response, error) {
	req, err := c.newHTTPRequest(ctx, r, method)
	if err != nil {
		return nil, &TransportError{Kind: KindSetup, Message: msgSetup, Err: err}
	}

	for _, ic := range c.interceptors {
		if err := ic(req); err != nil {
			return nil, err
		}
	}
	tracing.Inject(ctx, propagation.HeaderCarrier(req.Header))

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, noResponseError(ctx, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, noResponseError(ctx, err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, c.statusError(r, method, httpResp.StatusCode, body)
	}

	resp := &Response{StatusCode: httpResp.StatusCode, Header: httpResp.Header}
	if r.ResponseType == ResponseBinary {
		return binaryResponse(resp, body)
	}
	return c.structuredResponse(r, method, resp, body)
}

func (c *Client) newHTTPRequest(ctx context.Context, r *Request, method string) (*http.Request, error) {
	target := c.URL(r.Path)
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case r.Form != nil:
		buf, ct, err := r.Form.encode()
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	case r.Body != nil:
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body, contentType = bytes.NewReader(data), "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if r.ResponseType == ResponseJSON {
		req.Header.Set("Accept", "application/json")
	}
	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return req, nil
}

func credentialInterceptor(cfg config.DeploymentConfig, creds CredentialStore) RequestInterceptor {
	return func(req *http.Request) error {
		if creds == nil {
			return nil
		}
		credential := creds.Credential()
		if credential == "" {
			return nil
		}
		if cfg.CredentialScheme == config.SchemeBearer {
			req.Header.Set("Authorization", "Bearer "+credential)
			return nil
		}
		req.Header.Set(cfg.CredentialHeader, credential)
		return nil
	}
}

func noResponseError(ctx context.Context, err error) *TransportError {
	msg := msgNoResponse
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		msg = msgTimeout
	}
	return &TransportError{Kind: KindNoResponse, Message: msg, Err: err}
}

func (c *Client) statusError(r *Request, method string, status int, body []byte) *TransportError {
	msg, ok := statusMessages[status]
	if !ok {
		msg = bodyMessage(body)
	}
	if msg == "" {
		msg = fmt.Sprintf("request failed (status %d)", status)
	}
	if status == http.StatusUnauthorized {
		c.expire(r, method, events.SourceHTTP)
	}
	return &TransportError{Kind: KindStatus, StatusCode: status, Message: msg}
}

// bodyMessage extracts a server-provided message from an error body
func bodyMessage(body []byte) string {
	if gjson.ValidBytes(body) {
		if m := gjson.GetBytes(body, "message"); m.Type == gjson.String {
			return m.Str
		}
		return ""
	}
	return strings.TrimSpace(string(body))
}

// binaryResponse passes the payload through unless it is a JSON error envelope
func binaryResponse(resp *Response, body []byte) (*Response, error) {
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		if env, ok := sniffErrorEnvelope(body); ok {
			return nil, &EnvelopeError{Envelope: env}
		}
	}
	resp.Body = body
	return resp, nil
}

// sniffErrorEnvelope treats any parseable JSON body as an envelope; only a numeric
// code of 200 lets it through. A missing or non-numeric code is code 0 unless it
// is a numeric string.
func sniffErrorEnvelope(body []byte) (*Envelope, bool) {
	if !gjson.ValidBytes(body) {
		return nil, false
	}
	root := gjson.ParseBytes(body)
	code := root.Get("code")
	if code.Type == gjson.Number && code.Int() == SuccessCode {
		return nil, false
	}
	env := &Envelope{
		Code:    int(code.Int()),
		Message: root.Get("message").String(),
	}
	if data := root.Get("data"); data.Exists() {
		env.Data = json.RawMessage(data.Raw)
	}
	return env, true
}

func (c *Client) structuredResponse(r *Request, method string, resp *Response, body []byte) (*Response, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &TransportError{Kind: KindInvalidPayload, StatusCode: resp.StatusCode, Message: msgInvalidPayload, Err: err}
	}
	if env.Code == SuccessCode {
		resp.Envelope = &env
		return resp, nil
	}
	if env.Code == http.StatusUnauthorized {
		c.expire(r, method, events.SourceEnvelope)
	}
	return nil, &EnvelopeError{Envelope: &env}
}

// expire clears the session and announces it; navigation is the subscriber's job
func (c *Client) expire(r *Request, method, source string) {
	if c.creds != nil {
		if err := c.creds.Clear(); err != nil {
			logger.Warn("Failed to clear session after authentication failure",
				zap.String("deployment", c.cfg.Name),
				zap.Error(err))
		}
	}
	metrics.AuthExpirations.WithLabelValues(c.cfg.Name, source).Inc()
	logger.Info("Authentication expired, session cleared",
		zap.String("deployment", c.cfg.Name),
		zap.String("path", r.Path),
		zap.String("source", source))

	c.bus.Publish(events.AuthExpired{
		Deployment: c.cfg.Name,
		Method:     method,
		Path:       r.Path,
		Source:     source,
		At:         c.now(),
	})
}
