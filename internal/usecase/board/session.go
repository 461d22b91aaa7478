package board

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync/atomic"

	"postboard/internal/dom"

	"golang.org/x/net/html"
)

// Session owns one Board and its Document. Every method is one event turn;
// turns run one at a time, so a refresh never overlaps another. A caller
// waiting for its turn gives up when its ctx ends.
type Session struct {
	turn    chan struct{}
	doc     *dom.Document
	board   *Board
	started atomic.Bool
}

// NewSession builds a session over a fresh page shell.
func NewSession(source DataSource, logger *slog.Logger) (*Session, error) {
	doc, err := dom.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	return &Session{
		turn:  make(chan struct{}, 1),
		doc:   doc,
		board: New(doc, source, logger),
	}, nil
}

func (s *Session) lock(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case s.turn <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) unlock() {
	<-s.turn
}

// Board returns the session's board. Callers must not use it concurrently
// with session methods.
func (s *Session) Board() *Board {
	return s.board
}

// Ready reports whether Start completed.
func (s *Session) Ready() bool {
	return s.started.Load()
}

// Start installs the page and fires DOMContentLoaded. Once the page has
// started, later calls only retry a user list that failed to load.
func (s *Session) Start(ctx context.Context) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.unlock()

	if s.started.Load() {
		s.reloadUsers(ctx)
		return nil
	}
	s.board.Install()
	if err := s.doc.Ready(ctx); err != nil {
		return fmt.Errorf("start page: %w", err)
	}
	s.started.Store(true)
	return nil
}

// reloadUsers fills the select menu again when the user list was
// unavailable at load time. DOMContentLoaded fires once per document, so
// this stands in for reloading the page.
func (s *Session) reloadUsers(ctx context.Context) {
	if !s.started.Load() || usersLoaded(s.doc.SelectMenu()) {
		return
	}
	s.board.InitPage(ctx)
}

// usersLoaded reports whether menu offers at least one user.
func usersLoaded(menu *html.Node) bool {
	for _, opt := range dom.ElementChildren(menu) {
		if dom.Value(opt) != "" {
			return true
		}
	}
	return false
}

// Select chooses userID in the menu and dispatches change.
func (s *Session) Select(ctx context.Context, userID int) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.unlock()
	return s.selectUser(ctx, userID)
}

// ShowUser selects userID and renders the resulting page in the same turn.
func (s *Session) ShowUser(ctx context.Context, userID int, w io.Writer) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.unlock()
	if err := s.selectUser(ctx, userID); err != nil {
		return err
	}
	return s.doc.Render(w)
}

func (s *Session) selectUser(ctx context.Context, userID int) error {
	menu := s.doc.SelectMenu()
	if menu == nil {
		return ErrNoSelectMenu
	}
	s.reloadUsers(ctx)
	if !dom.SetSelectValue(menu, strconv.Itoa(userID)) {
		return fmt.Errorf("user %d: %w", userID, ErrUserNotFound)
	}
	return s.doc.DispatchEvent(ctx, menu, &dom.Event{Type: dom.EventChange})
}

// Click dispatches click on the comment button for postID.
func (s *Session) Click(ctx context.Context, postID int) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.unlock()

	button := s.button(strconv.Itoa(postID))
	if button == nil {
		return fmt.Errorf("post %d: %w", postID, ErrPostNotFound)
	}
	return s.doc.DispatchEvent(ctx, button, &dom.Event{Type: dom.EventClick})
}

func (s *Session) button(postID string) *html.Node {
	for _, n := range s.doc.QuerySelectorAll(buttonSelector + "[data-post-id]") {
		if v, _ := dom.Data(n, "postId"); v == postID {
			return n
		}
	}
	return nil
}

// Render writes the current page, first retrying a user list that failed
// to load.
func (s *Session) Render(ctx context.Context, w io.Writer) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.unlock()
	s.reloadUsers(ctx)
	return s.doc.Render(w)
}
