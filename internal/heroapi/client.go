// Package heroapi talks to the heroes REST API.
//
// Client is the raw transport and returns errors. Service wraps any API with the
// containment policy views rely on: every failure becomes a message log entry and a
// fallback value.
package heroapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"heroes/internal/hero"
	"heroes/internal/jsonutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// DefaultBaseURL is where cmd/heroapi listens by default.
const DefaultBaseURL = "http://localhost:8080/api"

// ErrNotFound is returned when the API answers 404.
var ErrNotFound = errors.New("hero not found")

// StatusError is returned for non-2xx responses other than 404.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// API is the REST surface. Client implements it against HTTP.
type API interface {
	Heroes(ctx context.Context) ([]hero.Hero, error)
	Hero(ctx context.Context, id int) (hero.Hero, error)
	Search(ctx context.Context, term string) ([]hero.Hero, error)
	Create(ctx context.Context, name string) (hero.Hero, error)
	Update(ctx context.Context, h hero.Hero) error
	Delete(ctx context.Context, id int) error
}

// Ensure Client implements API.
var _ API = (*Client)(nil)

// Client is an HTTP client for the heroes API.
type Client struct {
	baseURL string
	http    *http.Client
	tracer  oteltrace.Tracer
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithTracer replaces the tracer obtained from the global provider.
func WithTracer(t oteltrace.Tracer) ClientOption {
	return func(c *Client) { c.tracer = t }
}

// NewClient creates a client for the API rooted at baseURL (e.g. http://localhost:8080/api).
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    http.DefaultClient,
		tracer:  otel.Tracer("heroes/heroapi"),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Heroes fetches all heroes (GET /heroes).
func (c *Client) Heroes(ctx context.Context) ([]hero.Hero, error) {
	ctx, span := c.startSpan(ctx, "list")
	defer span.End()

	data, err := c.do(ctx, http.MethodGet, "/heroes", nil)
	if err != nil {
		return nil, recordErr(span, err)
	}
	heroes, err := jsonutil.UnmarshalArrayAllowEmpty[hero.Hero](data, "decode heroes")
	if err != nil {
		return nil, recordErr(span, err)
	}
	span.SetAttributes(attribute.Int("heroes.count", len(heroes)))
	return heroes, nil
}

// Hero fetches one hero (GET /heroes/{id}). Returns ErrNotFound for unknown ids.
func (c *Client) Hero(ctx context.Context, id int) (hero.Hero, error) {
	ctx, span := c.startSpan(ctx, "get", attribute.Int("hero.id", id))
	defer span.End()

	data, err := c.do(ctx, http.MethodGet, "/heroes/"+strconv.Itoa(id), nil)
	if err != nil {
		return hero.Hero{}, recordErr(span, err)
	}
	var h hero.Hero
	if err := jsonutil.UnmarshalWithContext(data, &h, "decode hero"); err != nil {
		return hero.Hero{}, recordErr(span, err)
	}
	return h, nil
}

// Search fetches heroes whose name contains term (GET /heroes?name=term).
func (c *Client) Search(ctx context.Context, term string) ([]hero.Hero, error) {
	ctx, span := c.startSpan(ctx, "search", attribute.String("hero.search_term", term))
	defer span.End()

	data, err := c.do(ctx, http.MethodGet, "/heroes?name="+url.QueryEscape(term), nil)
	if err != nil {
		return nil, recordErr(span, err)
	}
	heroes, err := jsonutil.UnmarshalArrayAllowEmpty[hero.Hero](data, "decode search results")
	if err != nil {
		return nil, recordErr(span, err)
	}
	span.SetAttributes(attribute.Int("heroes.count", len(heroes)))
	return heroes, nil
}

// Create adds a hero (POST /heroes). The server assigns the id.
func (c *Client) Create(ctx context.Context, name string) (hero.Hero, error) {
	ctx, span := c.startSpan(ctx, "create", attribute.String("hero.name", name))
	defer span.End()

	data, err := c.do(ctx, http.MethodPost, "/heroes", hero.Hero{Name: name})
	if err != nil {
		return hero.Hero{}, recordErr(span, err)
	}
	var h hero.Hero
	if err := jsonutil.UnmarshalWithContext(data, &h, "decode created hero"); err != nil {
		return hero.Hero{}, recordErr(span, err)
	}
	span.SetAttributes(attribute.Int("hero.id", h.ID))
	return h, nil
}

// Update replaces a hero (PUT /heroes, matched by id).
func (c *Client) Update(ctx context.Context, h hero.Hero) error {
	ctx, span := c.startSpan(ctx, "update", attribute.Int("hero.id", h.ID))
	defer span.End()

	if _, err := c.do(ctx, http.MethodPut, "/heroes", h); err != nil {
		return recordErr(span, err)
	}
	return nil
}

// Delete removes a hero (DELETE /heroes/{id}).
func (c *Client) Delete(ctx context.Context, id int) error {
	ctx, span := c.startSpan(ctx, "delete", attribute.Int("hero.id", id))
	defer span.End()

	if _, err := c.do(ctx, http.MethodDelete, "/heroes/"+strconv.Itoa(id), nil); err != nil {
		return recordErr(span, err)
	}
	return nil
}

func (c *Client) startSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, oteltrace.Span) {
	return c.tracer.Start(ctx, "heroapi."+op,
		oteltrace.WithSpanKind(oteltrace.SpanKindClient),
		oteltrace.WithAttributes(attrs...),
	)
}

func recordErr(span oteltrace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// do sends one request and returns the response body of a 2xx answer.
func (c *Client) do(ctx context.Context, method, path string, in any) ([]byte, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       errorText(data),
		}
	}
	return data, nil
}

// errorText extracts the mock API's error envelope, falling back to the raw body.
func errorText(data []byte) string {
	var eb jsonutil.ErrorBody
	if err := json.Unmarshal(data, &eb); err == nil && eb.Error != "" {
		return eb.Error
	}
	s := strings.TrimSpace(string(data))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
