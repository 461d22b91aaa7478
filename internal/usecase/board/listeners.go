package board

import (
	"context"

	"postboard/internal/dom"
	"postboard/internal/observability/metrics"

	"golang.org/x/net/html"
)

const buttonSelector = "main button"

// AddButtonListeners binds a click listener to every button in main that
// carries a post ID and is not bound yet. It returns the buttons found.
func (b *Board) AddButtonListeners() []*html.Node {
	buttons := b.doc.QuerySelectorAll(buttonSelector)
	for _, button := range buttons {
		if _, bound := b.buttons[button]; bound {
			continue
		}
		postID, _ := dom.Data(button, "postId")
		if postID == "" {
			continue
		}
		l := dom.NewListener(func(_ context.Context, ev *dom.Event) error {
			_, _, err := b.ToggleComments(ev, postID)
			return err
		})
		b.doc.AddEventListener(button, dom.EventClick, l)
		b.buttons[button] = l
	}
	metrics.SetBoundButtonListeners(len(b.buttons))
	return buttons
}

// RemoveButtonListeners unbinds the listeners AddButtonListeners stored for
// the buttons in main and returns those buttons.
func (b *Board) RemoveButtonListeners() []*html.Node {
	buttons := b.doc.QuerySelectorAll(buttonSelector)
	for _, button := range buttons {
		l, bound := b.buttons[button]
		if !bound {
			continue
		}
		b.doc.RemoveEventListener(button, dom.EventClick, l)
		delete(b.buttons, button)
	}
	metrics.SetBoundButtonListeners(len(b.buttons))
	return buttons
}
