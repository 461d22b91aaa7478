// Package board serves the employee posts page and turns form posts into the
// page's change and click events.
package board

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"postboard/internal/handler/http/pathutil"
	"postboard/internal/handler/http/respond"
	"postboard/internal/observability/logging"
)

// Page is the session the handlers drive. *board.Session implements it.
type Page interface {
	Render(ctx context.Context, w io.Writer) error
	Select(ctx context.Context, userID int) error
	Click(ctx context.Context, postID int) error
	ShowUser(ctx context.Context, userID int, w io.Writer) error
}

// PageHandler renders the current page.
type PageHandler struct{ Page Page }

func (h PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.Page.Render(r.Context(), &buf); err != nil {
		respond.SafeError(w, err)
		return
	}
	respond.HTML(w, http.StatusOK, writeBuffer(&buf))
}

// SelectHandler fires the select menu change for the userId form field and
// redirects to the page.
type SelectHandler struct {
	Page   Page
	Logger *slog.Logger
}

func (h SelectHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := formID(r, "userId")
	if err != nil {
		respond.SafeError(w, err)
		return
	}
	logging.WithRequestID(r.Context(), h.Logger).Debug("select user", slog.Int("user_id", id))

	if err := h.Page.Select(r.Context(), id); err != nil {
		respond.SafeError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ToggleHandler clicks the comment button for the postId form field and
// redirects to the page.
type ToggleHandler struct {
	Page   Page
	Logger *slog.Logger
}

func (h ToggleHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := formID(r, "postId")
	if err != nil {
		respond.SafeError(w, err)
		return
	}
	logging.WithRequestID(r.Context(), h.Logger).Debug("toggle comments", slog.Int("post_id", id))

	if err := h.Page.Click(r.Context(), id); err != nil {
		respond.SafeError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// UserHandler selects the user named in the path and renders the result, so
// /users/{id} can be shared as a link. The page is shared by every viewer:
// this GET changes the selection that GET / shows afterwards.
type UserHandler struct{ Page Page }

func (h UserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, respond.NewAppError(http.StatusBadRequest, "user id must be a positive integer", err))
		return
	}

	var buf bytes.Buffer
	if err := h.Page.ShowUser(r.Context(), id, &buf); err != nil {
		respond.SafeError(w, err)
		return
	}
	respond.HTML(w, http.StatusOK, writeBuffer(&buf))
}

// formID parses a positive integer form field.
func formID(r *http.Request, field string) (int, error) {
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return 0, respond.NewAppError(http.StatusRequestEntityTooLarge, "request body too large", err)
		}
		return 0, respond.NewAppError(http.StatusBadRequest, "invalid form body", err)
	}
	id, err := pathutil.ParseID(r.PostForm.Get(field))
	if err != nil {
		return 0, respond.NewAppError(http.StatusBadRequest, field+" must be a positive integer", err)
	}
	return id, nil
}

func writeBuffer(buf *bytes.Buffer) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := buf.WriteTo(w)
		return err
	}
}
