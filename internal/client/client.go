// Package client is a typed HTTP client for the campus events API and a
// poller that keeps an event list view fresh.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"campusEvents/internal/lib/api/response"
	"campusEvents/internal/models"

	"github.com/gojektech/heimdall/v6"
	"github.com/gojektech/heimdall/v6/httpclient"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrAlreadyBookmarked = errors.New("event already bookmarked")
)

// APIError is returned for every non-2xx response. Err holds the matching
// sentinel when the status maps to one.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Filter mirrors the list query parameters. Empty fields are not sent.
type Filter struct {
	Category string
	Status   string
	Search   string
}

type MyEvents struct {
	Registered []models.Event `json:"registered"`
	Bookmarked []models.Event `json:"bookmarked"`
}

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL string
	token   string
	timeout time.Duration
	doer    heimdall.Doer
	http    *httpclient.Client
}

type Option func(*Client)

// WithHTTPClient replaces the transport-level client heimdall sends through.
func WithHTTPClient(doer heimdall.Doer) Option {
	return func(cl *Client) {
		cl.doer = doer
	}
}

func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		cl.timeout = d
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(cl *Client) {
		cl.token = token
	}
}

// New builds a client for the API at baseURL. Requests are never retried.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: defaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	httpOpts := []httpclient.Option{
		httpclient.WithHTTPTimeout(c.timeout),
		httpclient.WithRetryCount(0),
	}
	if c.doer != nil {
		httpOpts = append(httpOpts, httpclient.WithHTTPClient(c.doer))
	}

	c.http = httpclient.NewClient(httpOpts...)

	return c
}

func (c *Client) Events(ctx context.Context, f Filter) ([]models.Event, error) {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}

	path := "/api/events"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out struct {
		Events []models.Event `json:"events"`
	}
	if err := c.do(ctx, http.MethodGet, path, &out); err != nil {
		return nil, err
	}

	if out.Events == nil {
		out.Events = []models.Event{}
	}

	return out.Events, nil
}

func (c *Client) Event(ctx context.Context, id string) (*models.Event, error) {
	var out struct {
		Event *models.Event `json:"event"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/events/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}

	return out.Event, nil
}

func (c *Client) Register(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/events/"+url.PathEscape(id)+"/register", nil)
}

func (c *Client) Bookmark(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/events/"+url.PathEscape(id)+"/bookmark", nil)
}

func (c *Client) MyEvents(ctx context.Context) (*MyEvents, error) {
	var out MyEvents
	if err := c.do(ctx, http.MethodGet, "/api/events/user/me", &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	const op = "client.do"

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	// heimdall reports 5xx as an error alongside the response.
	resp, err := c.http.Do(req)
	if resp == nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", op, ctxErr)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read body: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}

	if err = json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}

	return nil
}

func newAPIError(status int, body []byte) *APIError {
	var env response.Response
	_ = json.Unmarshal(body, &env)

	msg := env.Error
	if msg == "" {
		msg = http.StatusText(status)
	}

	apiErr := &APIError{StatusCode: status, Message: msg}

	switch {
	case status == http.StatusNotFound:
		apiErr.Err = ErrNotFound
	case status == http.StatusUnauthorized:
		apiErr.Err = ErrUnauthorized
	case status == http.StatusForbidden:
		apiErr.Err = ErrForbidden
	case status == http.StatusBadRequest && msg == ErrAlreadyRegistered.Error():
		apiErr.Err = ErrAlreadyRegistered
	case status == http.StatusBadRequest && msg == ErrAlreadyBookmarked.Error():
		apiErr.Err = ErrAlreadyBookmarked
	}

	return apiErr
}
