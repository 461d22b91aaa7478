package board

import (
	"context"
	"strconv"

	"postboard/internal/dom"
	"postboard/internal/domain/entity"

	"golang.org/x/net/html"
)

// Page text and classes.
const (
	ShowCommentsLabel = "Show Comments"
	HideCommentsLabel = "Hide Comments"
	DefaultText       = "Select an Employee to display their posts."
	DefaultTextClass  = "default-text"
	HideClass         = "hide"
	CommentsClass     = "comments"

	// ToggleFormID is the form comment buttons submit to when scripts are off.
	ToggleFormID = "toggleForm"
)

// CreateComments builds one article per comment, in order, inside a fragment.
// It returns nil for empty input.
func CreateComments(comments []entity.Comment) *html.Node {
	if len(comments) == 0 {
		return nil
	}
	frag := dom.NewFragment()
	for _, c := range comments {
		article := dom.CreateElement("article", "", "")
		dom.AppendChildren(article,
			dom.CreateElement("h3", c.Name, ""),
			dom.CreateElement("p", c.Body, ""),
			dom.CreateElement("p", c.FromLine(), ""),
		)
		dom.Append(frag, article)
	}
	return frag
}

// DisplayComments builds the hidden comment section for postID.
func (b *Board) DisplayComments(ctx context.Context, postID int) *html.Node {
	if postID == 0 {
		return nil
	}
	section := dom.CreateElement("section", "", "")
	dom.SetData(section, "postId", strconv.Itoa(postID))
	dom.AddClass(section, CommentsClass, HideClass)

	if frag := CreateComments(b.postComments(ctx, postID)); frag != nil {
		dom.Append(section, frag)
	}
	return section
}

// CreatePosts builds one article per post. Posts are handled one at a time:
// each post's author and comments are fetched before the next post starts.
func (b *Board) CreatePosts(ctx context.Context, posts []entity.Post) *html.Node {
	if posts == nil {
		return nil
	}
	frag := dom.NewFragment()
	for _, post := range posts {
		article := dom.CreateElement("article", "", "")
		dom.AppendChildren(article,
			dom.CreateElement("h2", post.Title, ""),
			dom.CreateElement("p", post.Body, ""),
			dom.CreateElement("p", post.IDLine(), ""),
		)
		if author := b.user(ctx, post.UserID); author != nil {
			dom.AppendChildren(article,
				dom.CreateElement("p", author.AuthorLine(), ""),
				dom.CreateElement("p", author.Company.CatchPhrase, ""),
			)
		}
		dom.AppendChildren(article,
			commentButton(post.ID),
			b.DisplayComments(ctx, post.ID),
		)
		dom.Append(frag, article)
	}
	return frag
}

// commentButton also submits the toggle form so the page works without scripts.
func commentButton(postID int) *html.Node {
	id := strconv.Itoa(postID)
	button := dom.CreateElement("button", ShowCommentsLabel, "")
	dom.SetData(button, "postId", id)
	dom.SetAttr(button, "type", "submit")
	dom.SetAttr(button, "form", ToggleFormID)
	dom.SetAttr(button, "name", "postId")
	dom.SetValue(button, id)
	return button
}

// DisplayPosts appends the rendered posts to main, or a fresh default
// paragraph when there are none, and returns what it appended.
func (b *Board) DisplayPosts(ctx context.Context, posts []entity.Post) *html.Node {
	element := b.postsElement(ctx, posts)
	dom.Append(b.doc.Main(), element)
	return element
}

func (b *Board) postsElement(ctx context.Context, posts []entity.Post) *html.Node {
	if len(posts) == 0 {
		return dom.CreateElement("p", DefaultText, DefaultTextClass)
	}
	return b.CreatePosts(ctx, posts)
}

// CreateSelectOptions builds one option per user. Nil input returns nil;
// empty input returns an empty slice.
func CreateSelectOptions(users []entity.User) []*html.Node {
	if users == nil {
		return nil
	}
	options := make([]*html.Node, 0, len(users))
	for _, u := range users {
		opt := dom.CreateElement("option", u.Name, "")
		dom.SetValue(opt, strconv.Itoa(u.ID))
		options = append(options, opt)
	}
	return options
}

// PopulateSelectMenu appends an option per user to #selectMenu and returns
// the menu.
func (b *Board) PopulateSelectMenu(users []entity.User) *html.Node {
	if users == nil {
		return nil
	}
	menu := b.doc.SelectMenu()
	if menu == nil {
		return nil
	}
	for _, opt := range CreateSelectOptions(users) {
		dom.Append(menu, opt)
	}
	return menu
}
