// Package page holds the parsed page shell and writes rendered fragments
// into its target elements.
package page

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ziadkadry99/folio/internal/render"
)

// ErrTargetNotFound is returned when the shell has no element with the
// requested id.
var ErrTargetNotFound = errors.New("target element not found")

// Page is a parsed HTML document.
type Page struct {
	root *html.Node
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Page, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing page shell: %w", err)
	}
	return &Page{root: root}, nil
}

// ParseString is Parse for an in-memory shell.
func ParseString(s string) (*Page, error) {
	return Parse(strings.NewReader(s))
}

// Apply writes each fragment into its region, in order. It stops at the
// first region whose target is missing, leaving earlier writes in place.
func (p *Page) Apply(frags render.Fragments) error {
	for _, f := range frags {
		var err error
		switch f.Kind {
		case render.Text:
			err = p.SetText(string(f.Region), f.Content)
		default:
			err = p.SetHTML(string(f.Region), f.Content)
		}
		if err != nil {
			return fmt.Errorf("writing region %s: %w", f.Region, err)
		}
	}
	return nil
}

// ByID returns the first element whose id attribute equals id, or nil.
func (p *Page) ByID(id string) *html.Node {
	var found *html.Node
	walk(p.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && Attr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// ByClass returns every element carrying class, in document order.
func (p *Page) ByClass(class string) []*html.Node {
	var out []*html.Node
	walk(p.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && HasClass(n, class) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// ByTag returns every element with the given tag, in document order.
func (p *Page) ByTag(a atom.Atom) []*html.Node {
	var out []*html.Node
	walk(p.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == a {
			out = append(out, n)
		}
		return true
	})
	return out
}

// SetHTML replaces the children of the element with id by the parsed markup.
func (p *Page) SetHTML(id, markup string) error {
	target := p.ByID(id)
	if target == nil {
		return fmt.Errorf("#%s: %w", id, ErrTargetNotFound)
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), target)
	if err != nil {
		return fmt.Errorf("parsing fragment for #%s: %w", id, err)
	}
	clearChildren(target)
	for _, n := range nodes {
		target.AppendChild(n)
	}
	return nil
}

// SetText replaces the children of the element with id by a single text node.
func (p *Page) SetText(id, text string) error {
	target := p.ByID(id)
	if target == nil {
		return fmt.Errorf("#%s: %w", id, ErrTargetNotFound)
	}
	clearChildren(target)
	if text != "" {
		target.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	return nil
}

// InnerHTML serializes the children of the element with id.
func (p *Page) InnerHTML(id string) (string, error) {
	target := p.ByID(id)
	if target == nil {
		return "", fmt.Errorf("#%s: %w", id, ErrTargetNotFound)
	}
	var b strings.Builder
	for c := target.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// TextContent returns the concatenated text below the element with id.
func (p *Page) TextContent(id string) (string, error) {
	target := p.ByID(id)
	if target == nil {
		return "", fmt.Errorf("#%s: %w", id, ErrTargetNotFound)
	}
	var b strings.Builder
	walk(target, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		return true
	})
	return b.String(), nil
}

// VersionAssets appends ?v=version to stylesheet and script references
// whose URL is one of names.
func (p *Page) VersionAssets(version string, names ...string) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	walk(p.root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		key := ""
		switch n.DataAtom {
		case atom.Link:
			key = "href"
		case atom.Script:
			key = "src"
		default:
			return true
		}
		if v := Attr(n, key); want[v] {
			SetAttr(n, key, v+"?v="+version)
		}
		return true
	})
}

// EnsureScript appends <script src="src" defer> to the body unless a
// script with that src is already present.
func (p *Page) EnsureScript(src string) {
	for _, s := range p.ByTag(atom.Script) {
		if v := Attr(s, "src"); v == src || strings.HasPrefix(v, src+"?") {
			return
		}
	}
	bodies := p.ByTag(atom.Body)
	if len(bodies) == 0 {
		return
	}
	bodies[0].AppendChild(&html.Node{
		Type:     html.ElementNode,
		Data:     "script",
		DataAtom: atom.Script,
		Attr:     []html.Attribute{{Key: "src", Val: src}, {Key: "defer"}},
	})
}

// SetTitle replaces the document title, if the shell has one.
func (p *Page) SetTitle(title string) {
	titles := p.ByTag(atom.Title)
	if len(titles) == 0 {
		return
	}
	clearChildren(titles[0])
	titles[0].AppendChild(&html.Node{Type: html.TextNode, Data: title})
}

// Render writes the whole document.
func (p *Page) Render(w io.Writer) error {
	return html.Render(w, p.root)
}

// String renders the document to a string.
func (p *Page) String() string {
	var b strings.Builder
	_ = p.Render(&b)
	return b.String()
}

func clearChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}

// walk visits n and its descendants depth-first until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}
