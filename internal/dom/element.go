package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultTag is used when CreateElement receives an empty tag name.
const DefaultTag = "p"

// CreateElement builds a detached element. Text content is set only when
// text is non-empty and the class is added only when class is non-empty.
func CreateElement(tag, text, class string) *html.Node {
	if tag == "" {
		tag = DefaultTag
	}
	tag = strings.ToLower(tag)
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	if class != "" {
		AddClass(n, class)
	}
	return n
}

// NewFragment returns an empty document fragment. Appending a fragment moves
// its children into the parent and leaves the fragment empty.
func NewFragment() *html.Node {
	return &html.Node{Type: html.DocumentNode}
}

// IsFragment reports whether n is a fragment container.
func IsFragment(n *html.Node) bool {
	return n != nil && n.Type == html.DocumentNode && n.Parent == nil
}

// Append attaches child as the last child of parent. A child that is
// already in a tree is moved. A fragment child is unpacked in order.
func Append(parent, child *html.Node) {
	if parent == nil || child == nil {
		return
	}
	if IsFragment(child) {
		for c := child.FirstChild; c != nil; c = child.FirstChild {
			child.RemoveChild(c)
			parent.AppendChild(c)
		}
		return
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	parent.AppendChild(child)
}

// AppendChildren appends children to parent in order as one batch. Nil
// children are skipped.
func AppendChildren(parent *html.Node, children ...*html.Node) {
	if parent == nil {
		return
	}
	frag := NewFragment()
	for _, c := range children {
		Append(frag, c)
	}
	Append(parent, frag)
}

// DeleteChildElements removes children from the end until parent is empty
// and returns parent. It returns nil when parent is nil or not an element.
func DeleteChildElements(parent *html.Node) *html.Node {
	if parent == nil || parent.Type != html.ElementNode {
		return nil
	}
	for c := parent.LastChild; c != nil; c = parent.LastChild {
		parent.RemoveChild(c)
	}
	return parent
}

// Children lists the direct children of n.
func Children(n *html.Node) []*html.Node {
	if n == nil {
		return nil
	}
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// ElementChildren lists the direct element children of n.
func ElementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for _, c := range Children(n) {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

func selection(n *html.Node) *goquery.Selection {
	return goquery.NewDocumentFromNode(n).Selection
}

// TextContent concatenates all descendant text of n.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	return selection(n).Text()
}

// SetTextContent replaces every child of n with a single text node.
func SetTextContent(n *html.Node, text string) {
	if n == nil {
		return
	}
	for c := n.LastChild; c != nil; c = n.LastChild {
		n.RemoveChild(c)
	}
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// AddClass adds one or more classes to n.
func AddClass(n *html.Node, class ...string) {
	if n == nil {
		return
	}
	selection(n).AddClass(class...)
}

// RemoveClass removes classes from n.
func RemoveClass(n *html.Node, class ...string) {
	if n == nil {
		return
	}
	selection(n).RemoveClass(class...)
}

// ToggleClass flips class on n and reports whether it is now present.
func ToggleClass(n *html.Node, class string) bool {
	if n == nil {
		return false
	}
	s := selection(n).ToggleClass(class)
	return s.HasClass(class)
}

// HasClass reports whether n carries class.
func HasClass(n *html.Node, class string) bool {
	if n == nil {
		return false
	}
	return selection(n).HasClass(class)
}

// ClassList returns the classes of n in attribute order.
func ClassList(n *html.Node) []string {
	v, _ := Attr(n, "class")
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return strings.Fields(v)
}

// Attr returns the value of attribute key.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	return selection(n).Attr(key)
}

// SetAttr sets attribute key on n.
func SetAttr(n *html.Node, key, value string) {
	if n == nil {
		return
	}
	selection(n).SetAttr(key, value)
}

// RemoveAttr deletes attribute key from n.
func RemoveAttr(n *html.Node, key string) {
	if n == nil {
		return
	}
	selection(n).RemoveAttr(key)
}

// DataAttr maps a dataset key to its attribute name: postId -> data-post-id.
func DataAttr(key string) string {
	var b strings.Builder
	b.WriteString("data-")
	for _, r := range key {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SetData sets a dataset entry, like element.dataset[key] = value.
func SetData(n *html.Node, key, value string) {
	SetAttr(n, DataAttr(key), value)
}

// Data reads a dataset entry.
func Data(n *html.Node, key string) (string, bool) {
	return Attr(n, DataAttr(key))
}

// Value returns the value of a form control. An option without a value
// attribute falls back to its text.
func Value(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Data == "select" {
		return SelectValue(n)
	}
	if v, ok := Attr(n, "value"); ok {
		return v
	}
	if n.Data == "option" {
		return strings.TrimSpace(TextContent(n))
	}
	return ""
}

// SetValue sets the value attribute of n.
func SetValue(n *html.Node, value string) {
	SetAttr(n, "value", value)
}

// SelectValue returns the value of the selected option of a select element,
// or of its first option when none is marked selected.
func SelectValue(sel *html.Node) string {
	if sel == nil {
		return ""
	}
	options := selection(sel).Find("option")
	if options.Length() == 0 {
		return ""
	}
	selected := options.FilterFunction(func(_ int, s *goquery.Selection) bool {
		_, ok := s.Attr("selected")
		return ok
	})
	if selected.Length() > 0 {
		return Value(selected.Get(0))
	}
	return Value(options.Get(0))
}

// SetSelectValue marks the option whose value equals value as selected and
// clears the others. It reports whether such an option exists.
func SetSelectValue(sel *html.Node, value string) bool {
	if sel == nil {
		return false
	}
	found := false
	selection(sel).Find("option").Each(func(_ int, s *goquery.Selection) {
		opt := s.Get(0)
		if !found && Value(opt) == value {
			s.SetAttr("selected", "")
			found = true
			return
		}
		s.RemoveAttr("selected")
	})
	return found
}
