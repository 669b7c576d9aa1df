// ABOUTME: HTTP client for the newsxstudy backend API
// ABOUTME: Wraps auth, bookmark and news endpoints with server message extraction

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds every request when no timeout option is given
const DefaultTimeout = 30 * time.Second

var (
	// ErrUnauthorized is wrapped by APIError for 401 responses
	ErrUnauthorized = errors.New("unauthorized")
	// ErrMissingToken is returned when a login succeeds without a token
	ErrMissingToken = errors.New("login response did not include a token")
	// ErrEmptyQuery is returned when a search is attempted with blank input
	ErrEmptyQuery = errors.New("search query is empty")
)

// Client is the API client for the newsxstudy backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTimeout overrides the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a new API client with the given base URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend URL the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Article is a news item as returned by the feed, search and category endpoints
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage,omitempty"`
	Image       string `json:"image,omitempty"`
}

// NewsResponse wraps the article list of every news endpoint
type NewsResponse struct {
	Articles []Article `json:"articles"`
}

// Bookmark is a saved article owned by the authenticated user
type Bookmark struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// MessageResponse is the generic {message} body returned by mutations
type MessageResponse struct {
	Message string `json:"message,omitempty"`
}

// LoginResponse represents the /api/auth/login response
type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse represents an API error body
type ErrorResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type bookmarkRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// APIError is returned for any non-2xx response
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error: %s", e.Message)
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// Unwrap lets callers match 401s with errors.Is(err, ErrUnauthorized)
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// ServerMessage returns the message the backend attached to err, or fallback
func ServerMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// Register calls POST /api/auth/register
func (c *Client) Register(ctx context.Context, name, email, password string) (*MessageResponse, error) {
	var resp MessageResponse
	body := registerRequest{Name: name, Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login calls POST /api/auth/login
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	body := loginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, ErrMissingToken
	}
	return &resp, nil
}

// AddBookmark calls POST /api/bookmarks/add
func (c *Client) AddBookmark(ctx context.Context, token, title, link string) (*MessageResponse, error) {
	var resp MessageResponse
	body := bookmarkRequest{Title: title, URL: link}
	if err := c.do(ctx, http.MethodPost, "/api/bookmarks/add", token, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListBookmarks calls GET /api/bookmarks/list
func (c *Client) ListBookmarks(ctx context.Context, token string) ([]Bookmark, error) {
	var bookmarks []Bookmark
	if err := c.do(ctx, http.MethodGet, "/api/bookmarks/list", token, nil, &bookmarks); err != nil {
		return nil, err
	}
	return bookmarks, nil
}

// DeleteBookmark calls DELETE /api/bookmarks/delete/{id}
func (c *Client) DeleteBookmark(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/bookmarks/delete/"+url.PathEscape(id), token, nil, nil)
}

// News calls GET /api/news
func (c *Client) News(ctx context.Context) ([]Article, error) {
	return c.news(ctx, "/api/news")
}

// SearchNews calls GET /api/news/search?q={query}
func (c *Client) SearchNews(ctx context.Context, query string) ([]Article, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	return c.news(ctx, "/api/news/search?"+url.Values{"q": {query}}.Encode())
}

// NewsByCategory calls GET /api/news/category/{category}
func (c *Client) NewsByCategory(ctx context.Context, category string) ([]Article, error) {
	return c.news(ctx, "/api/news/category/"+url.PathEscape(category))
}

func (c *Client) news(ctx context.Context, path string) ([]Article, error) {
	var resp NewsResponse
	if err := c.do(ctx, http.MethodGet, path, "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Articles, nil
}

// do sends a JSON request and decodes the JSON response into out (if non-nil)
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("request canceled")
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
		apiErr.Message = errResp.Message
		if apiErr.Message == "" {
			apiErr.Message = errResp.Error
		}
	}
	return apiErr
}
