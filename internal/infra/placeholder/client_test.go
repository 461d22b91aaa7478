package placeholder_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"postboard/internal/domain/entity"
	"postboard/internal/infra/placeholder"
	"postboard/internal/resilience/circuitbreaker"
	"postboard/tests/fixtures"

	"github.com/google/go-cmp/cmp"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newClient(t *testing.T, api *fixtures.PlaceholderAPI, mutate ...func(*placeholder.Config)) *placeholder.Client {
	t.Helper()
	cfg := placeholder.DefaultConfig()
	cfg.BaseURL = api.URL
	cfg.Timeout = 2 * time.Second
	cfg.RateLimit = 1000
	cfg.RateBurst = 100
	for _, m := range mutate {
		m(&cfg)
	}
	c, err := placeholder.NewClient(cfg, nil, quietLogger())
	require.NoError(t, err)
	return c
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
	}{
		{name: "empty", baseURL: ""},
		{name: "no scheme", baseURL: "jsonplaceholder.typicode.com"},
		{name: "unsupported scheme", baseURL: "ftp://example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := placeholder.DefaultConfig()
			cfg.BaseURL = tt.baseURL

			_, err := placeholder.NewClient(cfg, nil, nil)

			assert.Error(t, err)
		})
	}
}

func TestClient_GetUsers(t *testing.T) {
	// Arrange
	api := fixtures.NewPlaceholderAPI(t)
	c := newClient(t, api)

	// Act
	users, err := c.GetUsers(context.Background())

	// Assert
	require.NoError(t, err)
	if diff := cmp.Diff(fixtures.Users, users); diff != "" {
		t.Errorf("users mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"/users"}, api.Requests())
}

func TestClient_GetUser(t *testing.T) {
	api := fixtures.NewPlaceholderAPI(t)
	c := newClient(t, api)

	user, err := c.GetUser(context.Background(), 2)

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Ervin Howell", user.Name)
	assert.Equal(t, "Deckow-Crist", user.Company.Name)
	assert.Equal(t, []string{"/users/2"}, api.Requests())
}

func TestClient_GetUserPosts(t *testing.T) {
	api := fixtures.NewPlaceholderAPI(t)
	c := newClient(t, api)

	posts, err := c.GetUserPosts(context.Background(), 1)

	require.NoError(t, err)
	if diff := cmp.Diff(fixtures.PostsByUser(1), posts); diff != "" {
		t.Errorf("posts mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"/posts?userId=1"}, api.Requests())
}

func TestClient_GetUserPosts_NoPostsIsEmptyNotNil(t *testing.T) {
	api := fixtures.NewPlaceholderAPI(t)
	c := newClient(t, api)

	posts, err := c.GetUserPosts(context.Background(), 99)

	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestClient_GetPostComments(t *testing.T) {
	api := fixtures.NewPlaceholderAPI(t)
	c := newClient(t, api)

	comments, err := c.GetPostComments(context.Background(), 3)

	require.NoError(t, err)
	if diff := cmp.Diff(fixtures.CommentsByPost(3), comments); diff != "" {
		t.Errorf("comments mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"/posts/3/comments"}, api.Requests())
}

func TestClient_ZeroIDSkipsRequest(t *testing.T) {
	api := fixtures.NewPlaceholderAPI(t)
	c := newClient(t, api)
	ctx := context.Background()

	user, err := c.GetUser(ctx, 0)
	assert.NoError(t, err)
	assert.Nil(t, user)

	posts, err := c.GetUserPosts(ctx, 0)
	assert.NoError(t, err)
	assert.Nil(t, posts)

	comments, err := c.GetPostComments(ctx, 0)
	assert.NoError(t, err)
	assert.Nil(t, comments)

	assert.Empty(t, api.Requests())
}

func TestClient_NotFound(t *testing.T) {
	api := fixtures.NewPlaceholderAPI(t)
	c := newClient(t, api)

	user, err := c.GetUser(context.Background(), 42)

	assert.Nil(t, user)
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrNotFound)
	assert.ErrorIs(t, err, placeholder.ErrUnexpectedStatus)

	var fe *placeholder.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusNotFound, fe.StatusCode)
	assert.Equal(t, placeholder.EndpointUser, fe.Op)
	assert.True(t, strings.HasSuffix(fe.URL, "/users/42"))
}

func TestClient_ServerError(t *testing.T) {
	api := fixtures.NewPlaceholderAPI(t)
	api.Fail("/users", http.StatusInternalServerError)
	c := newClient(t, api)

	users, err := c.GetUsers(context.Background())

	assert.Nil(t, users)
	assert.ErrorIs(t, err, placeholder.ErrUnexpectedStatus)
	assert.NotErrorIs(t, err, entity.ErrNotFound)
}

func TestClient_DecodeError(t *testing.T) {
	api := fixtures.NewPlaceholderAPI(t)
	api.Respond("/users", `{"not": "an array"`)
	c := newClient(t, api)

	users, err := c.GetUsers(context.Background())

	assert.Nil(t, users)
	assert.ErrorIs(t, err, placeholder.ErrDecode)
}

func TestClient_BodyTooLarge(t *testing.T) {
	api := fixtures.NewPlaceholderAPI(t)
	c := newClient(t, api, func(cfg *placeholder.Config) {
		cfg.MaxBodyBytes = 32
	})

	users, err := c.GetUsers(context.Background())

	assert.Nil(t, users)
	assert.ErrorIs(t, err, placeholder.ErrBodyTooLarge)
}

func TestClient_CircuitBreakerOpens(t *testing.T) {
	// Arrange
	api := fixtures.NewPlaceholderAPI(t)
	api.Fail("/users", http.StatusServiceUnavailable)
	c := newClient(t, api, func(cfg *placeholder.Config) {
		cfg.Breaker = circuitbreaker.Config{
			Name:             "placeholder-api-test",
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          time.Minute,
			FailureThreshold: 0.5,
			MinRequests:      3,
		}
	})
	ctx := context.Background()

	// Act
	for i := 0; i < 3; i++ {
		_, err := c.GetUsers(ctx)
		require.ErrorIs(t, err, placeholder.ErrUnexpectedStatus)
	}
	_, err := c.GetUsers(ctx)

	// Assert
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, "open", c.BreakerState())
	assert.True(t, c.BreakerOpen())
	assert.Len(t, api.Requests(), 3)
}

func TestClient_NotFoundDoesNotTripBreaker(t *testing.T) {
	api := fixtures.NewPlaceholderAPI(t)
	c := newClient(t, api, func(cfg *placeholder.Config) {
		cfg.Breaker = circuitbreaker.Config{
			Name:             "placeholder-api-404",
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          time.Minute,
			FailureThreshold: 0.5,
			MinRequests:      2,
		}
	})

	for i := 0; i < 5; i++ {
		_, err := c.GetUser(context.Background(), 404)
		require.ErrorIs(t, err, entity.ErrNotFound)
	}

	assert.Equal(t, "closed", c.BreakerState())
	assert.Len(t, api.Requests(), 5)
}

func TestClient_RateLimiterHonoursContext(t *testing.T) {
	api := fixtures.NewPlaceholderAPI(t)
	c := newClient(t, api, func(cfg *placeholder.Config) {
		cfg.RateLimit = 0.001
		cfg.RateBurst = 1
	})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.GetUsers(ctx)
	require.NoError(t, err)
	_, err = c.GetUsers(ctx)

	assert.Error(t, err)
	assert.Len(t, api.Requests(), 1)
}

func TestClient_ContextCancelled(t *testing.T) {
	api := fixtures.NewPlaceholderAPI(t)
	api.Delay(time.Second)
	c := newClient(t, api)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.GetUsers(ctx)

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, "closed", c.BreakerState())
}

func TestClient_Accessors(t *testing.T) {
	api := fixtures.NewPlaceholderAPI(t)
	c := newClient(t, api)

	assert.Equal(t, api.URL, c.BaseURL())
	assert.Equal(t, "closed", c.BreakerState())
}

func TestFetchError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *placeholder.FetchError
		want string
	}{
		{
			name: "with status",
			err:  &placeholder.FetchError{Op: "user", URL: "http://x/users/1", StatusCode: 500, Err: placeholder.ErrUnexpectedStatus},
			want: "placeholder user http://x/users/1: status 500: unexpected status",
		},
		{
			name: "transport",
			err:  &placeholder.FetchError{Op: "users", URL: "http://x/users", Err: errors.New("connection refused")},
			want: "placeholder users http://x/users: connection refused",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}
