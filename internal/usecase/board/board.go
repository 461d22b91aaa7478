package board

import (
	"context"
	"log/slog"

	"postboard/internal/dom"
	"postboard/internal/domain/entity"
	"postboard/internal/observability/logging"

	"golang.org/x/net/html"
)

// DataSource reads remote users, posts and comments. A zero identifier
// yields (nil, nil). placeholder.Client implements it.
type DataSource interface {
	GetUsers(ctx context.Context) ([]entity.User, error)
	GetUser(ctx context.Context, id int) (*entity.User, error)
	GetUserPosts(ctx context.Context, userID int) ([]entity.Post, error)
	GetPostComments(ctx context.Context, postID int) ([]entity.Comment, error)
}

// Board renders into one document and owns the listeners it binds there.
// It is not safe for concurrent use; Session serialises access.
type Board struct {
	doc    *dom.Document
	source DataSource
	logger *slog.Logger

	buttons  map[*html.Node]*dom.Listener
	onChange *dom.Listener
	onReady  *dom.Listener
}

// New creates a Board for doc. A nil logger uses slog.Default.
func New(doc *dom.Document, source DataSource, logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.Default()
	}
	return &Board{
		doc:     doc,
		source:  source,
		logger:  logger,
		buttons: make(map[*html.Node]*dom.Listener),
	}
}

// Document returns the document the board renders into.
func (b *Board) Document() *dom.Document {
	return b.doc
}

// Upstream failures are already logged by the data source; here they only
// degrade to absent data.
func (b *Board) absent(ctx context.Context, what string, id int, err error) {
	logging.WithRequestID(ctx, b.logger).Debug("upstream data unavailable, rendering without it",
		slog.String("data", what),
		slog.Int("id", id),
		slog.Any("error", err))
}

func (b *Board) users(ctx context.Context) []entity.User {
	users, err := b.source.GetUsers(ctx)
	if err != nil {
		b.absent(ctx, "users", 0, err)
		return nil
	}
	return users
}

func (b *Board) user(ctx context.Context, id int) *entity.User {
	user, err := b.source.GetUser(ctx, id)
	if err != nil {
		b.absent(ctx, "user", id, err)
		return nil
	}
	return user
}

func (b *Board) userPosts(ctx context.Context, userID int) []entity.Post {
	posts, err := b.source.GetUserPosts(ctx, userID)
	if err != nil {
		b.absent(ctx, "user_posts", userID, err)
		return nil
	}
	return posts
}

func (b *Board) postComments(ctx context.Context, postID int) []entity.Comment {
	comments, err := b.source.GetPostComments(ctx, postID)
	if err != nil {
		b.absent(ctx, "post_comments", postID, err)
		return nil
	}
	return comments
}
