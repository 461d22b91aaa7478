// Package placeholder reads users, posts and comments from a
// JSONPlaceholder-compatible REST API.
//
// Every accessor returns (value, error). A zero identifier means no data was
// requested: the accessor returns (nil, nil) without contacting the API.
// Failures are logged and returned as *FetchError; callers treat them as
// absent data.
package placeholder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"postboard/internal/domain/entity"
	"postboard/internal/observability/logging"
	"postboard/internal/observability/metrics"
	"postboard/internal/observability/tracing"
	"postboard/internal/resilience/circuitbreaker"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
)

// Endpoint labels used in logs and metrics.
const (
	EndpointUsers        = "users"
	EndpointUser         = "user"
	EndpointUserPosts    = "user_posts"
	EndpointPostComments = "post_comments"
)

const userAgent = "postboard/1.0"

// Config configures a Client.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	RateLimit    float64
	RateBurst    int
	MaxBodyBytes int64
	Breaker      circuitbreaker.Config
}

// DefaultConfig returns a Config for the public API.
func DefaultConfig() Config {
	return Config{
		BaseURL:      "https://jsonplaceholder.typicode.com",
		Timeout:      10 * time.Second,
		RateLimit:    20,
		RateBurst:    10,
		MaxBodyBytes: 1 << 20,
		Breaker:      circuitbreaker.UpstreamAPIConfig(),
	}
}

// Client is the remote data accessor.
type Client struct {
	http    *http.Client
	baseURL string
	maxBody int64
	breaker *circuitbreaker.CircuitBreaker
	limiter *RateLimiter
	logger  *slog.Logger
}

// NewClient validates cfg and builds a Client. A nil httpClient gets one with
// cfg.Timeout; a nil logger uses slog.Default.
func NewClient(cfg Config, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	if err := entity.ValidateBaseURL(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("placeholder client: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultConfig().MaxBodyBytes
	}
	if cfg.RateLimit <= 0 || cfg.RateBurst <= 0 {
		d := DefaultConfig()
		cfg.RateLimit, cfg.RateBurst = d.RateLimit, d.RateBurst
	}
	if cfg.Breaker.Name == "" {
		cfg.Breaker = circuitbreaker.UpstreamAPIConfig()
	}

	return &Client{
		http:    httpClient,
		baseURL: cfg.BaseURL,
		maxBody: cfg.MaxBodyBytes,
		breaker: circuitbreaker.New(cfg.Breaker),
		limiter: NewRateLimiter(cfg.RateLimit, cfg.RateBurst),
		logger:  logger,
	}, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// BreakerState returns the circuit breaker state: closed, half-open or open.
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

// BreakerOpen reports whether requests are being rejected without a call.
func (c *Client) BreakerOpen() bool {
	return c.breaker.IsOpen()
}

// GetUsers fetches every user.
func (c *Client) GetUsers(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if err := c.getJSON(ctx, EndpointUsers, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches one user. A zero id returns (nil, nil).
func (c *Client) GetUser(ctx context.Context, id int) (*entity.User, error) {
	if id == 0 {
		metrics.RecordUpstreamSkipped(EndpointUser)
		return nil, nil
	}
	var user entity.User
	if err := c.getJSON(ctx, EndpointUser, "/users/"+strconv.Itoa(id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserPosts fetches the posts written by userID. A zero id returns (nil, nil).
func (c *Client) GetUserPosts(ctx context.Context, userID int) ([]entity.Post, error) {
	if userID == 0 {
		metrics.RecordUpstreamSkipped(EndpointUserPosts)
		return nil, nil
	}
	q := url.Values{"userId": {strconv.Itoa(userID)}}
	var posts []entity.Post
	if err := c.getJSON(ctx, EndpointUserPosts, "/posts?"+q.Encode(), &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostComments fetches the comments on postID. A zero id returns (nil, nil).
func (c *Client) GetPostComments(ctx context.Context, postID int) ([]entity.Comment, error) {
	if postID == 0 {
		metrics.RecordUpstreamSkipped(EndpointPostComments)
		return nil, nil
	}
	var comments []entity.Comment
	if err := c.getJSON(ctx, EndpointPostComments, "/posts/"+strconv.Itoa(postID)+"/comments", &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

type response struct {
	status int
	body   []byte
}

// getJSON GETs path under the base URL and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, endpoint, path string, out any) (err error) {
	target := entity.JoinURL(c.baseURL, path)
	start := time.Now()

	ctx, span := tracing.StartSpan(ctx, "placeholder."+endpoint,
		attribute.String("http.url", target),
		attribute.String("endpoint", endpoint),
	)
	defer func() {
		metrics.RecordUpstreamRequest(endpoint, metrics.OutcomeOf(err), time.Since(start))
		tracing.EndSpan(span, err)
		if err != nil {
			c.logFailure(ctx, endpoint, err)
		}
	}()

	if err := c.limiter.Allow(ctx); err != nil {
		return &FetchError{Op: endpoint, URL: target, Err: err}
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.do(ctx, target)
	})
	if err != nil {
		return &FetchError{Op: endpoint, URL: target, Err: err}
	}
	resp := result.(*response)
	span.SetAttributes(attribute.Int("http.status_code", resp.status))

	if resp.status != http.StatusOK {
		return &FetchError{Op: endpoint, URL: target, StatusCode: resp.status, Err: ErrUnexpectedStatus}
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return &FetchError{Op: endpoint, URL: target, StatusCode: resp.status, Err: fmt.Errorf("%w: %v", ErrDecode, err)}
	}
	return nil
}

// do performs one request. Only transport errors, oversized bodies and 5xx
// responses count against the breaker; 4xx answers are returned as data.
func (c *Client) do(ctx context.Context, target string) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusInternalServerError {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, c.maxBody))
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, c.maxBody)
	}
	return &response{status: resp.StatusCode, body: body}, nil
}

func (c *Client) logFailure(ctx context.Context, endpoint string, err error) {
	logger := logging.WithRequestID(ctx, c.logger)
	var fe *FetchError
	attrs := []any{
		slog.String("circuit", c.breaker.Name()),
		slog.String("endpoint", endpoint),
		slog.Any("error", err),
	}
	if errors.As(err, &fe) {
		attrs = append(attrs, slog.String("url", fe.URL), slog.Int("status", fe.StatusCode))
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		logger.Warn("placeholder circuit breaker open, request rejected",
			append(attrs, slog.String("state", c.BreakerState()))...)
		return
	}
	logger.Error("placeholder fetch failed", attrs...)
}
