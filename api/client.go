package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/deemkeen/bloglist/domain"
	"github.com/deemkeen/bloglist/util"
	"golang.org/x/time/rate"
)

const (
	BlogsPath           = "/api/blogs"
	LoginPath           = "/api/login"
	AuthorizationHeader = "Authorization"
)

// Config holds the transport settings of a Client
type Config struct {
	ServerURL         string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// ConfigFromApp maps the application config onto a Config
func ConfigFromApp(conf *util.AppConfig) Config {
	return Config{
		ServerURL:         conf.Conf.ServerURL,
		Timeout:           time.Duration(conf.Conf.TimeoutSeconds) * time.Second,
		RequestsPerSecond: conf.Conf.RequestsPerSecond,
	}
}

// Client talks to the blog list REST API. Apart from the bearer credential
// it holds no state.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter

	mu    sync.RWMutex
	token string
}

// NewClient creates a Client for cfg.ServerURL.
// If httpClient is nil a new client with cfg.Timeout is used.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.ServerURL, "/"),
		httpClient: httpClient,
		limiter:    limiter,
	}
}

// SetCredential stores the bearer token sent with create and delete.
// An empty token clears it.
func (c *Client) SetCredential(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Credential returns the raw token currently held
func (c *Client) Credential() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) authorization() string {
	token := c.Credential()
	if token == "" {
		return ""
	}
	return "Bearer " + token
}

// ListPosts fetches every post
func (c *Client) ListPosts(ctx context.Context) ([]domain.Post, error) {
	var posts []domain.Post
	if err := c.do(ctx, "list", http.MethodGet, BlogsPath, nil, false, &posts); err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	return posts, nil
}

// CreatePost sends a draft and returns the created post
func (c *Client) CreatePost(ctx context.Context, draft domain.Draft) (domain.Post, error) {
	var post domain.Post
	if err := c.do(ctx, "create", http.MethodPost, BlogsPath, draft, true, &post); err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

// UpdatePost replaces the fields of post id and returns the stored post.
// The update endpoint is called without the bearer credential.
// TODO: send the credential once the service requires it for PUT.
func (c *Client) UpdatePost(ctx context.Context, id string, fields domain.UpdateFields) (domain.Post, error) {
	var post domain.Post
	if err := c.do(ctx, "update", http.MethodPut, BlogsPath+"/"+url.PathEscape(id), fields, false, &post); err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

// DeletePost removes post id
func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, "delete", http.MethodDelete, BlogsPath+"/"+url.PathEscape(id), nil, true, nil)
}

// Authenticate exchanges username and password for a session
func (c *Client) Authenticate(ctx context.Context, username, password string) (domain.Session, error) {
	var s domain.Session
	creds := domain.Credentials{Username: username, Password: password}
	if err := c.do(ctx, "login", http.MethodPost, LoginPath, creds, false, &s); err != nil {
		return domain.Session{}, err
	}
	if s.Token == "" {
		return domain.Session{}, &TransportError{Op: "login", Err: fmt.Errorf("response carries no token")}
	}
	return s, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body any, withAuth bool, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &TransportError{Op: op, Err: err}
		}
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("encode body: %w", err)}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("new request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", util.UserAgent())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withAuth {
		if auth := c.authorization(); auth != "" {
			req.Header.Set(AuthorizationHeader, auth)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errRes struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&errRes)
		log.Printf("API: %s %s failed with status %d", method, path, resp.StatusCode)
		return &TransportError{
			Op:      op,
			Status:  resp.StatusCode,
			Message: errRes.Error,
			Err:     fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
