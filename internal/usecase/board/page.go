package board

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"postboard/internal/dom"
	"postboard/internal/domain/entity"
	"postboard/internal/observability/logging"
	"postboard/internal/observability/metrics"
	"postboard/internal/observability/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"
)

// DefaultUserID is used when the select menu has no value.
const DefaultUserID = "1"

// RefreshResult holds what each step of RefreshPosts returned.
type RefreshResult struct {
	RemovedButtons []*html.Node
	Main           *html.Node
	Fragment       *html.Node
	AddedButtons   []*html.Node
}

// ChangeResult is the outcome of a select menu change.
type ChangeResult struct {
	UserID  string
	Posts   []entity.Post
	Refresh *RefreshResult
}

// InitResult is the outcome of InitPage.
type InitResult struct {
	Users  []entity.User
	Select *html.Node
}

// RefreshPosts replaces the content of main with posts and rebinds the
// comment buttons. Nil posts leave the page untouched, and so does a ctx
// that ends before the posts are built.
func (b *Board) RefreshPosts(ctx context.Context, posts []entity.Post) *RefreshResult {
	if posts == nil {
		return nil
	}
	ctx, span := tracing.GetTracer().Start(ctx, "board.refresh",
		trace.WithAttributes(attribute.Int("posts", len(posts))))
	defer span.End()
	start := time.Now()

	element := b.postsElement(ctx, posts)
	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		logging.WithRequestID(ctx, b.logger).Debug("refresh abandoned", slog.Any("error", err))
		return nil
	}

	res := &RefreshResult{}
	res.RemovedButtons = b.RemoveButtonListeners()
	res.Main = dom.DeleteChildElements(b.doc.Main())
	dom.Append(res.Main, element)
	res.Fragment = element
	res.AddedButtons = b.AddButtonListeners()

	metrics.RecordRefresh(time.Since(start), len(posts))
	return res
}

// SelectMenuChangeEventHandler loads the posts of the user selected in
// ev.Target and refreshes the page with them.
func (b *Board) SelectMenuChangeEventHandler(ctx context.Context, ev *dom.Event) (*ChangeResult, error) {
	userID := DefaultUserID
	if ev != nil && ev.Target != nil {
		if v := dom.Value(ev.Target); v != "" {
			userID = v
		}
	}
	id, err := strconv.Atoi(userID)
	if err != nil {
		return nil, fmt.Errorf("select menu value %q: %w", userID, entity.ErrInvalidInput)
	}

	posts := b.userPosts(ctx, id)
	refresh := b.RefreshPosts(ctx, posts)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("select user %d: %w", id, err)
	}
	return &ChangeResult{
		UserID:  userID,
		Posts:   posts,
		Refresh: refresh,
	}, nil
}

// InitPage loads the users and fills the select menu.
func (b *Board) InitPage(ctx context.Context) *InitResult {
	users := b.users(ctx)
	return &InitResult{
		Users:  users,
		Select: b.PopulateSelectMenu(users),
	}
}

// InitApp runs InitPage and binds the change handler to the select menu.
func (b *Board) InitApp(ctx context.Context) (*InitResult, error) {
	res := b.InitPage(ctx)
	menu := b.doc.SelectMenu()
	if menu == nil {
		return res, ErrNoSelectMenu
	}
	if b.onChange == nil {
		b.onChange = dom.NewListener(func(ctx context.Context, ev *dom.Event) error {
			_, err := b.SelectMenuChangeEventHandler(ctx, ev)
			return err
		})
	}
	b.doc.AddEventListener(menu, dom.EventChange, b.onChange)
	return res, nil
}

// Install binds InitApp to the document's DOMContentLoaded event.
func (b *Board) Install() {
	if b.onReady == nil {
		b.onReady = dom.NewListener(func(ctx context.Context, _ *dom.Event) error {
			_, err := b.InitApp(ctx)
			return err
		})
	}
	b.doc.AddEventListener(b.doc.Root(), dom.EventDOMContentLoaded, b.onReady)
}
