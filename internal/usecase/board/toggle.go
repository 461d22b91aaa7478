package board

import (
	"errors"
	"fmt"

	"postboard/internal/dom"
	"postboard/internal/observability/metrics"

	"golang.org/x/net/html"
)

// findByPostID returns the first tag element whose data-post-id equals postID.
func (b *Board) findByPostID(tag, postID string) *html.Node {
	for _, n := range b.doc.QuerySelectorAll(tag + "[data-post-id]") {
		if v, _ := dom.Data(n, "postId"); v == postID {
			return n
		}
	}
	return nil
}

// ToggleCommentSection flips the hide class on the comment section for postID.
func (b *Board) ToggleCommentSection(postID string) (*html.Node, error) {
	if postID == "" {
		return nil, nil
	}
	section := b.findByPostID("section", postID)
	if section == nil {
		return nil, fmt.Errorf("comment section %s: %w", postID, ErrPostNotFound)
	}
	dom.ToggleClass(section, HideClass)
	return section, nil
}

// ToggleCommentButton switches the button label for postID between
// ShowCommentsLabel and HideCommentsLabel.
func (b *Board) ToggleCommentButton(postID string) (*html.Node, error) {
	if postID == "" {
		return nil, nil
	}
	button := b.findByPostID("button", postID)
	if button == nil {
		return nil, fmt.Errorf("comment button %s: %w", postID, ErrPostNotFound)
	}
	label := ShowCommentsLabel
	if dom.TextContent(button) == ShowCommentsLabel {
		label = HideCommentsLabel
	}
	dom.SetTextContent(button, label)
	return button, nil
}

// ListenerKey is the dataset key ToggleComments sets on the clicked target.
const ListenerKey = "listener"

// ToggleComments marks ev handled, tags its target with data-listener, and
// toggles both the section and the button for postID.
func (b *Board) ToggleComments(ev *dom.Event, postID string) (section, button *html.Node, err error) {
	if ev == nil || postID == "" {
		return nil, nil, nil
	}
	ev.Handled = true
	if ev.Target != nil {
		dom.SetData(ev.Target, ListenerKey, "true")
	}

	section, sectionErr := b.ToggleCommentSection(postID)
	button, buttonErr := b.ToggleCommentButton(postID)
	if section != nil {
		metrics.RecordCommentToggle(!dom.HasClass(section, HideClass))
	}
	return section, button, errors.Join(sectionErr, buttonErr)
}
