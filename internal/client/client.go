// Package client is the HTTP client the pages use to talk to the REST API.
//
// GET requests are de-duplicated per path and token: concurrent callers share one
// in-flight request, and a successful response is reused for a short interval.
// A caller whose context ends before the shared request completes receives a
// Pending result while the request keeps running for the others.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/aidar/project-hub/internal/domain"
	"github.com/aidar/project-hub/internal/envelope"
)

const (
	defaultDedupeInterval = 2 * time.Second
	defaultRequestTimeout = 10 * time.Second
	maxErrorBodySize      = 64 << 10
)

// Options configures a Client.
type Options struct {
	BaseURL string
	// HTTPClient defaults to a client with a 10s timeout.
	HTTPClient *http.Client
	Logger     *slog.Logger
	// DedupeInterval is how long a successful GET response is reused. Zero selects 2s,
	// a negative value disables reuse.
	DedupeInterval time.Duration
}

// Client calls the project-hub REST API.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	logger         *slog.Logger
	dedupeInterval time.Duration

	group singleflight.Group

	mu    sync.Mutex
	cache map[string]cacheEntry
	// gens is bumped by invalidate; a fetch started under an older generation
	// must not write its response into the cache.
	gens map[string]uint64
}

type cacheEntry struct {
	value     any
	fetchedAt time.Time
}

// New creates a Client.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interval := opts.DedupeInterval
	if interval == 0 {
		interval = defaultDedupeInterval
	}

	return &Client{
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		httpClient:     httpClient,
		logger:         logger,
		dedupeInterval: interval,
		cache:          make(map[string]cacheEntry),
		gens:           make(map[string]uint64),
	}
}

// CreateProjectRequest is the body of POST /api/projects.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type createProjectData struct {
	Project *domain.Project `json:"project"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is what a successful login yields.
type Session struct {
	Token string             `json:"token"`
	User  domain.UserSummary `json:"user"`
}

const projectsPath = "/api/projects"

// ListProjects fetches the caller's projects.
func (c *Client) ListProjects(ctx context.Context, token string) Result[domain.ProjectList] {
	return fetch[domain.ProjectList](ctx, c, projectsPath, token)
}

// GetProject fetches one project with its members.
func (c *Client) GetProject(ctx context.Context, token, projectID string) Result[domain.ProjectDetail] {
	return fetch[domain.ProjectDetail](ctx, c, projectsPath+"/"+url.PathEscape(projectID), token)
}

// CreateProject creates a project. The cached project list of the caller is dropped
// so the next ListProjects reflects the new item.
func (c *Client) CreateProject(ctx context.Context, token string, in CreateProjectRequest) (*domain.Project, error) {
	var out envelope.Success[createProjectData]
	if err := c.do(ctx, http.MethodPost, projectsPath, token, in, &out); err != nil {
		return nil, err
	}
	c.invalidate(projectsPath, token)

	if out.Data.Project == nil {
		return nil, &TransportError{StatusCode: http.StatusCreated, Err: fmt.Errorf("response has no project")}
	}
	return out.Data.Project, nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	var out envelope.Success[Session]
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", loginRequest{Username: username, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func cacheKey(path, token string) string {
	return path + "\x00" + token
}

// fetch performs a de-duplicated GET and decodes the envelope's data into D.
func fetch[D any](ctx context.Context, c *Client, path, token string) Result[D] {
	key := cacheKey(path, token)
	if v, ok := c.cached(key); ok {
		return Ok(v.(D))
	}

	ch := c.group.DoChan(key, func() (any, error) {
		gen := c.generation(key)

		// Other callers may be waiting on this request, so it must outlive ctx.
		var out envelope.Success[D]
		if err := c.do(context.WithoutCancel(ctx), http.MethodGet, path, token, nil, &out); err != nil {
			return nil, err
		}
		c.store(key, gen, out.Data)
		return out.Data, nil
	})

	select {
	case <-ctx.Done():
		return Pending[D]()
	case res := <-ch:
		if res.Err != nil {
			return Failed[D](asTransportError(res.Err))
		}
		return Ok(res.Val.(D))
	}
}

func (c *Client) cached(key string) (any, bool) {
	if c.dedupeInterval < 0 {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.cache[key]
	if !ok {
		return nil, false
	}
	if time.Since(entry.fetchedAt) > c.dedupeInterval {
		delete(c.cache, key)
		return nil, false
	}
	return entry.value, true
}

func (c *Client) generation(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[key]
}

// store caches value unless key was invalidated after the fetch began.
func (c *Client) store(key string, gen uint64, value any) {
	if c.dedupeInterval < 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gens[key] != gen {
		return
	}

	now := time.Now()
	for k, e := range c.cache {
		if now.Sub(e.fetchedAt) > c.dedupeInterval {
			delete(c.cache, k)
		}
	}
	c.cache[key] = cacheEntry{value: value, fetchedAt: now}
}

// invalidate drops the cached response for path and detaches any GET still in
// flight for it, so the next call starts a fresh request.
func (c *Client) invalidate(path, token string) {
	key := cacheKey(path, token)
	c.group.Forget(key)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cache, key)
	c.gens[key]++
}

// do sends a request and decodes a 2xx body into out. Any failure is a *TransportError.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &TransportError{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "API request failed", "method", method, "path", path, "error", err)
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		te := &TransportError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
		var info ErrorInfo
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBodySize)).Decode(&info); err == nil {
			te.Info = &info
		}
		c.logger.InfoContext(ctx, "API request returned error status",
			"method", method, "path", path, "status", resp.StatusCode, "message", te.DisplayMessage())
		return te
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
