package board

import (
	"context"
	"errors"
	"strings"
	"testing"

	"postboard/internal/dom"
	"postboard/internal/domain/entity"
	"postboard/internal/observability/metrics"
	"postboard/tests/fixtures"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_RefreshPosts(t *testing.T) {
	t.Run("nil posts leave the page untouched", func(t *testing.T) {
		b := newBoard(t, &stubSource{})
		before := dom.OuterHTML(b.Document().Main())

		assert.Nil(t, b.RefreshPosts(context.Background(), nil))
		assert.Equal(t, before, dom.OuterHTML(b.Document().Main()))
	})

	t.Run("replaces main and rebinds buttons", func(t *testing.T) {
		// Arrange
		ctx := context.Background()
		b := newBoard(t, &stubSource{})
		doc := b.Document()
		cycles := testutil.ToFloat64(metrics.RefreshCyclesTotal)

		// Act
		first := b.RefreshPosts(ctx, fixtures.PostsByUser(1))
		second := b.RefreshPosts(ctx, fixtures.PostsByUser(2))

		// Assert
		require.NotNil(t, first)
		assert.Empty(t, first.RemovedButtons)
		assert.Equal(t, doc.Main(), first.Main)
		assert.True(t, dom.IsFragment(first.Fragment))
		assert.Len(t, first.AddedButtons, 2)

		require.NotNil(t, second)
		assert.Equal(t, first.AddedButtons, second.RemovedButtons)
		for _, old := range second.RemovedButtons {
			assert.Zero(t, doc.ListenerCount(old, dom.EventClick))
			assert.False(t, doc.Contains(old))
		}
		require.Len(t, second.AddedButtons, 1)
		assert.Equal(t, 1, doc.ListenerCount(second.AddedButtons[0], dom.EventClick))
		assert.Equal(t, []string{"article"}, tags(doc.Main()))
		assert.Equal(t, cycles+2, testutil.ToFloat64(metrics.RefreshCyclesTotal))
	})

	t.Run("empty posts show the default paragraph", func(t *testing.T) {
		b := newBoard(t, &stubSource{})

		res := b.RefreshPosts(context.Background(), []entity.Post{})

		require.NotNil(t, res)
		assert.Equal(t, "p", res.Fragment.Data)
		assert.Equal(t, []string{DefaultText}, texts(b.Document().Main()))
		assert.Empty(t, res.AddedButtons)
	})

	t.Run("context ending mid-build keeps the current page", func(t *testing.T) {
		// Arrange
		src := &stubSource{}
		b := newBoard(t, src)
		doc := b.Document()
		require.NotNil(t, b.RefreshPosts(context.Background(), fixtures.PostsByUser(1)))
		before := dom.OuterHTML(doc.Main())
		buttons := doc.QuerySelectorAll("main button")
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		src.cancelOnUser = cancel

		// Act
		res := b.RefreshPosts(ctx, fixtures.PostsByUser(2))

		// Assert
		assert.Nil(t, res)
		assert.Equal(t, before, dom.OuterHTML(doc.Main()))
		require.Len(t, buttons, 2)
		for _, button := range buttons {
			assert.Equal(t, 1, doc.ListenerCount(button, dom.EventClick))
		}
	})
}

func TestBoard_SelectMenuChangeEventHandler_ContextEnded(t *testing.T) {
	src := &stubSource{}
	b := newBoard(t, src)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	src.cancelOnUser = cancel

	res, err := b.SelectMenuChangeEventHandler(ctx, &dom.Event{Type: dom.EventChange})

	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{DefaultText}, texts(b.Document().Main()))
}

func TestBoard_SelectMenuChangeEventHandler(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		event      bool
		wantUserID string
		wantPosts  int
	}{
		{name: "nil event defaults to user 1", wantUserID: "1", wantPosts: 2},
		{name: "empty option defaults to user 1", event: true, value: "", wantUserID: "1", wantPosts: 2},
		{name: "selected user", event: true, value: "2", wantUserID: "2", wantPosts: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBoard(t, &stubSource{})
			b.PopulateSelectMenu(fixtures.Users)
			var ev *dom.Event
			if tt.event {
				menu := b.Document().SelectMenu()
				require.True(t, dom.SetSelectValue(menu, tt.value))
				ev = &dom.Event{Type: dom.EventChange, Target: menu}
			}

			res, err := b.SelectMenuChangeEventHandler(context.Background(), ev)

			require.NoError(t, err)
			assert.Equal(t, tt.wantUserID, res.UserID)
			assert.Len(t, res.Posts, tt.wantPosts)
			require.NotNil(t, res.Refresh)
			assert.Len(t, res.Refresh.AddedButtons, tt.wantPosts)
		})
	}
}

func TestBoard_SelectMenuChangeEventHandler_InvalidValue(t *testing.T) {
	b := newBoard(t, &stubSource{})
	opt := dom.CreateElement("option", "Bogus", "")
	dom.SetValue(opt, "abc")

	_, err := b.SelectMenuChangeEventHandler(context.Background(), &dom.Event{Type: dom.EventChange, Target: opt})

	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestBoard_SelectMenuChangeEventHandler_PostsUnavailable(t *testing.T) {
	b := newBoard(t, &stubSource{postsErr: errors.New("boom")})
	before := dom.OuterHTML(b.Document().Main())

	res, err := b.SelectMenuChangeEventHandler(context.Background(), nil)

	require.NoError(t, err)
	assert.Nil(t, res.Posts)
	assert.Nil(t, res.Refresh)
	assert.Equal(t, before, dom.OuterHTML(b.Document().Main()))
}

func TestBoard_InitPage(t *testing.T) {
	t.Run("populates the menu", func(t *testing.T) {
		src := &stubSource{}
		b := newBoard(t, src)

		res := b.InitPage(context.Background())

		assert.Equal(t, fixtures.Users, res.Users)
		assert.Equal(t, b.Document().SelectMenu(), res.Select)
		assert.Equal(t, []string{"users"}, src.calls)
	})

	t.Run("users unavailable", func(t *testing.T) {
		b := newBoard(t, &stubSource{usersErr: errors.New("boom")})

		res := b.InitPage(context.Background())

		assert.Nil(t, res.Users)
		assert.Nil(t, res.Select)
	})
}

func TestBoard_InitApp(t *testing.T) {
	// Arrange
	ctx := context.Background()
	b := newBoard(t, &stubSource{})
	doc := b.Document()

	// Act
	res, err := b.InitApp(ctx)
	_, again := b.InitApp(ctx)

	// Assert
	require.NoError(t, err)
	require.NoError(t, again)
	require.NotNil(t, res.Select)
	assert.Equal(t, 1, doc.ListenerCount(doc.SelectMenu(), dom.EventChange))

	require.True(t, dom.SetSelectValue(doc.SelectMenu(), "2"))
	require.NoError(t, doc.DispatchEvent(ctx, doc.SelectMenu(), &dom.Event{Type: dom.EventChange}))
	assert.Equal(t, []string{"article"}, tags(doc.Main()))
}

func TestBoard_InitApp_NoSelectMenu(t *testing.T) {
	doc, err := dom.Parse(strings.NewReader("<html><body><main></main></body></html>"))
	require.NoError(t, err)
	b := New(doc, &stubSource{}, quietLogger())

	_, err = b.InitApp(context.Background())

	assert.ErrorIs(t, err, ErrNoSelectMenu)
}

func TestBoard_Install(t *testing.T) {
	ctx := context.Background()
	src := &stubSource{}
	b := newBoard(t, src)
	doc := b.Document()

	b.Install()
	b.Install()
	require.NoError(t, doc.Ready(ctx))
	require.NoError(t, doc.Ready(ctx))

	assert.Equal(t, 1, doc.ListenerCount(doc.Root(), dom.EventDOMContentLoaded))
	assert.Equal(t, []string{"users"}, src.calls)
	assert.Len(t, dom.ElementChildren(doc.SelectMenu()), 3)
}
