// Package board builds the employee posts page. It renders users, posts and
// comments into a dom.Document and binds the select menu and comment buttons
// to their handlers.
package board

import (
	"errors"
	"fmt"

	"postboard/internal/domain/entity"
)

// Sentinel errors for board operations.
var (
	// ErrPostNotFound indicates that no comment section or button carries the
	// requested post ID.
	ErrPostNotFound = fmt.Errorf("post: %w", entity.ErrNotFound)

	// ErrUserNotFound indicates that the select menu has no option for the
	// requested user ID.
	ErrUserNotFound = fmt.Errorf("user: %w", entity.ErrNotFound)

	// ErrNoSelectMenu indicates that the document lacks #selectMenu.
	ErrNoSelectMenu = errors.New("document has no select menu")
)
