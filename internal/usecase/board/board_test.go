package board

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"testing"

	"postboard/internal/dom"
	"postboard/internal/domain/entity"
	"postboard/tests/fixtures"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// stubSource serves the fixture data in memory and records each call.
type stubSource struct {
	usersErr    error
	userErr     error
	postsErr    error
	commentsErr error
	calls       []string

	// cancelOnUser, when set, ends the caller's context on the next author fetch.
	cancelOnUser context.CancelFunc
}

func (s *stubSource) GetUsers(context.Context) ([]entity.User, error) {
	s.calls = append(s.calls, "users")
	if s.usersErr != nil {
		return nil, s.usersErr
	}
	return fixtures.Users, nil
}

func (s *stubSource) GetUser(ctx context.Context, id int) (*entity.User, error) {
	if id == 0 {
		return nil, nil
	}
	s.calls = append(s.calls, "user/"+strconv.Itoa(id))
	if s.cancelOnUser != nil {
		s.cancelOnUser()
		return nil, ctx.Err()
	}
	if s.userErr != nil {
		return nil, s.userErr
	}
	for _, u := range fixtures.Users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (s *stubSource) GetUserPosts(_ context.Context, userID int) ([]entity.Post, error) {
	if userID == 0 {
		return nil, nil
	}
	s.calls = append(s.calls, "posts/"+strconv.Itoa(userID))
	if s.postsErr != nil {
		return nil, s.postsErr
	}
	return fixtures.PostsByUser(userID), nil
}

func (s *stubSource) GetPostComments(_ context.Context, postID int) ([]entity.Comment, error) {
	if postID == 0 {
		return nil, nil
	}
	s.calls = append(s.calls, "comments/"+strconv.Itoa(postID))
	if s.commentsErr != nil {
		return nil, s.commentsErr
	}
	return fixtures.CommentsByPost(postID), nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newBoard(t *testing.T, src DataSource) *Board {
	t.Helper()
	doc, err := dom.NewDocument()
	require.NoError(t, err)
	return New(doc, src, quietLogger())
}

// tags lists the element children of n by tag name.
func tags(n *html.Node) []string {
	var out []string
	for _, c := range dom.ElementChildren(n) {
		out = append(out, c.Data)
	}
	return out
}

// texts lists the text content of each element child of n.
func texts(n *html.Node) []string {
	var out []string
	for _, c := range dom.ElementChildren(n) {
		out = append(out, dom.TextContent(c))
	}
	return out
}
