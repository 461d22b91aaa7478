// Package dom models a browser-style document on top of golang.org/x/net/html.
//
// A Document owns a parsed node tree and the event listeners bound to its
// nodes. Queries and class/attribute edits go through goquery so selectors
// behave like document.querySelector. A Document is not safe for concurrent
// use; callers serialise access (see board.Session).
package dom

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Selectors for the two well-known regions of the page shell.
const (
	MainSelector       = "main"
	SelectMenuSelector = "#selectMenu"
)

//go:embed shell.html
var shellHTML []byte

// Document is an owned HTML tree plus its listener registry.
type Document struct {
	doc *goquery.Document

	mu        sync.Mutex
	listeners map[*html.Node]map[string][]*Listener

	readyOnce sync.Once
	readyErr  error
}

// NewDocument parses the built-in page shell.
func NewDocument() (*Document, error) {
	return Parse(bytes.NewReader(shellHTML))
}

// Parse builds a Document from an HTML source.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &Document{
		doc:       doc,
		listeners: make(map[*html.Node]map[string][]*Listener),
	}, nil
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.doc.Get(0)
}

// Main returns the content root, or nil if the shell has none.
func (d *Document) Main() *html.Node {
	return d.QuerySelector(MainSelector)
}

// SelectMenu returns the user-select element, or nil.
func (d *Document) SelectMenu() *html.Node {
	return d.QuerySelector(SelectMenuSelector)
}

// QuerySelector returns the first node matching selector, or nil.
// An invalid selector matches nothing.
func (d *Document) QuerySelector(selector string) *html.Node {
	s := d.doc.Find(selector)
	if s.Length() == 0 {
		return nil
	}
	return s.Get(0)
}

// QuerySelectorAll returns every node matching selector in document order.
func (d *Document) QuerySelectorAll(selector string) []*html.Node {
	nodes := d.doc.Find(selector).Nodes
	out := make([]*html.Node, len(nodes))
	copy(out, nodes)
	return out
}

// Contains reports whether n is attached to this document's tree.
func (d *Document) Contains(n *html.Node) bool {
	root := d.Root()
	for p := n; p != nil; p = p.Parent {
		if p == root {
			return true
		}
	}
	return false
}

// Render writes the whole document, doctype included.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.Root())
}

// OuterHTML renders a single node, mostly for logs and tests.
func OuterHTML(n *html.Node) string {
	if n == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}
