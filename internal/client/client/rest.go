package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/kbadmin/internal/client/models"
	"github.com/dmitrijs2005/kbadmin/internal/common"
	"github.com/dmitrijs2005/kbadmin/internal/logging"
	"github.com/google/uuid"
)

const DefaultBaseURL = "http://localhost:3001"

// maxErrorBody bounds how much of a failed response body is kept as cause.
const maxErrorBody = 4 << 10

type RESTClient struct {
	httpclient *http.Client
	api        string
	now        func() time.Time
	requestID  func() string
	log        logging.Logger
}

type Option func(*RESTClient)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *RESTClient) { c.httpclient = hc }
}

// WithTimeout sets a client-wide request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *RESTClient) {
		hc := *c.httpclient
		hc.Timeout = d
		c.httpclient = &hc
	}
}

// WithClock overrides the time source used for new ids and dates.
func WithClock(now func() time.Time) Option {
	return func(c *RESTClient) { c.now = now }
}

func WithRequestID(gen func() string) Option {
	return func(c *RESTClient) { c.requestID = gen }
}

func WithLogger(l logging.Logger) Option {
	return func(c *RESTClient) { c.log = logging.OrNop(l) }
}

// NewRESTClient builds a client for baseURL. An empty baseURL falls back to
// DefaultBaseURL.
func NewRESTClient(baseURL string, opts ...Option) (*RESTClient, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", baseURL)
	}

	c := &RESTClient{
		httpclient: &http.Client{},
		api:        strings.TrimSuffix(baseURL, "/"),
		now:        time.Now,
		requestID:  func() string { return uuid.NewString() },
		log:        logging.Nop{},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// BaseURL returns the API root without trailing slash.
func (c *RESTClient) BaseURL() string {
	return c.api
}

func (c *RESTClient) apipath(path ...string) string {
	parts := []string{c.api}
	for _, p := range path {
		parts = append(parts, url.PathEscape(strings.Trim(p, "/")))
	}
	return strings.Join(parts, "/")
}

func (c *RESTClient) ListEntries(ctx context.Context) ([]models.KnowledgeEntry, error) {
	var out []models.KnowledgeEntry
	if err := c.do(ctx, http.MethodGet, c.apipath(common.EntriesResource), nil, &out, MsgFetchEntries); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.KnowledgeEntry{}
	}
	return out, nil
}

func (c *RESTClient) GetEntry(ctx context.Context, id string) (models.KnowledgeEntry, error) {
	var out models.KnowledgeEntry
	err := c.do(ctx, http.MethodGet, c.apipath(common.EntriesResource, id), nil, &out, MsgFetchEntry)
	return out, err
}

func (c *RESTClient) CreateEntry(ctx context.Context, in models.EntryInput) (models.KnowledgeEntry, error) {
	now := c.now()
	body := models.NewEntry{
		EntryInput: in,
		ID:         strconv.FormatInt(now.UnixMilli(), 10),
		CreatedAt:  now.UTC().Format(time.DateOnly),
		Views:      0,
	}

	var out models.KnowledgeEntry
	err := c.do(ctx, http.MethodPost, c.apipath(common.EntriesResource), body, &out, MsgCreateEntry)
	return out, err
}

func (c *RESTClient) UpdateEntry(ctx context.Context, id string, patch models.EntryPatch) (models.KnowledgeEntry, error) {
	var out models.KnowledgeEntry
	err := c.do(ctx, http.MethodPut, c.apipath(common.EntriesResource, id), patch, &out, MsgUpdateEntry)
	return out, err
}

func (c *RESTClient) DeleteEntry(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.apipath(common.EntriesResource, id), nil, nil, MsgDeleteEntry)
}

// do performs one request. A nil out discards the response body.
func (c *RESTClient) do(ctx context.Context, method, target string, in any, out any, message string) error {
	fail := func(status int, cause error) error {
		return &TransportError{Message: message, Status: status, Cause: cause}
	}

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fail(0, fmt.Errorf("encode request: %w", err))
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fail(0, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	reqID := c.requestID()
	req.Header.Set(common.RequestIDHeaderName, reqID)

	start := time.Now()
	resp, err := c.httpclient.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", method, "url", target, "request_id", reqID, "error", err)
		return fail(0, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "request done",
		"method", method, "url", target, "request_id", reqID,
		"status", resp.StatusCode, "elapsed", time.Since(start),
	)

	if !StatusCodeRangeOf(resp).OK() {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var cause error
		if msg := strings.TrimSpace(string(raw)); msg != "" {
			cause = fmt.Errorf("server replied %s: %s", resp.Status, msg)
		} else {
			cause = fmt.Errorf("server replied %s", resp.Status)
		}
		return fail(resp.StatusCode, cause)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fail(resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
