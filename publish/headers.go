package publish

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Headers h2 and below participate in numbering; h1 is the report
// title.
const minHeaderLevel = 2

type headerEntry struct {
	id       string
	text     string
	node     *html.Node
	children []*headerEntry
}

// enrichHeaders numbers every h2..h6 hierarchically ("1.2.1"), turns
// each into a self-link, and fills the section#toc slot (if present)
// with a nested table of contents.
func enrichHeaders(page string) (string, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parse rendered page: %w", err)
	}

	root, all := headerTree(doc)

	for _, entry := range all {
		setAttr(entry.node, "id", entry.id)
		wrapInAnchor(entry.node, "#"+entry.id, "header")
	}

	if toc := findByID(doc, "toc"); toc != nil && len(root.children) > 0 {
		toc.AppendChild(tocList(root))
	}

	var b strings.Builder
	if err := html.Render(&b, doc); err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return b.String(), nil
}

func headerLevel(n *html.Node) int {
	if n.Type != html.ElementNode {
		return 0
	}
	switch n.DataAtom {
	case atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return int(n.Data[1] - '0')
	}
	return 0
}

// headerTree walks headers in document order and builds the numbered
// hierarchy. A header one level deeper nests under the previous one;
// stepping back up pops the ancestry.
func headerTree(doc *html.Node) (*headerEntry, []*headerEntry) {
	root := &headerEntry{}
	var all []*headerEntry

	currentLevel := minHeaderLevel
	var ancestry []*headerEntry
	current := root
	var last *headerEntry

	walk(doc, func(n *html.Node) {
		level := headerLevel(n)
		if level == 0 {
			return
		}

		if level > currentLevel && last != nil {
			ancestry = append(ancestry, current)
			current = last
		} else if level < currentLevel {
			idx := level - minHeaderLevel
			if idx < 0 {
				idx = 0
			}
			if idx < len(ancestry) {
				current = ancestry[idx]
				ancestry = ancestry[:idx]
			}
		}

		parts := make([]string, 0, len(ancestry)+1)
		for _, a := range ancestry {
			parts = append(parts, fmt.Sprintf("%d", len(a.children)))
		}
		parts = append(parts, fmt.Sprintf("%d", len(current.children)+1))

		entry := &headerEntry{
			id:   strings.Join(parts, "."),
			text: textContent(n),
			node: n,
		}
		current.children = append(current.children, entry)
		all = append(all, entry)
		last = entry
		currentLevel = level
	})

	return root, all
}

// tocList renders an entry's children as a nested ordered list of
// links.
func tocList(entry *headerEntry) *html.Node {
	ol := &html.Node{Type: html.ElementNode, DataAtom: atom.Ol, Data: "ol"}

	for _, child := range entry.children {
		li := &html.Node{Type: html.ElementNode, DataAtom: atom.Li, Data: "li"}
		a := &html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.A,
			Data:     "a",
			Attr:     []html.Attribute{{Key: "href", Val: "#" + child.id}},
		}
		a.AppendChild(&html.Node{
			Type: html.TextNode,
			Data: fmt.Sprintf("%s %s", child.id, child.text),
		})
		li.AppendChild(a)
		if len(child.children) > 0 {
			li.AppendChild(tocList(child))
		}
		ol.AppendChild(li)
	}
	return ol
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return strings.TrimSpace(b.String())
}

func setAttr(n *html.Node, key, val string) {
	for i, attr := range n.Attr {
		if attr.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// wrapInAnchor replaces n in its parent with <a href=... class=...>n</a>.
func wrapInAnchor(n *html.Node, href, class string) {
	parent := n.Parent
	if parent == nil {
		return
	}

	a := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.A,
		Data:     "a",
		Attr: []html.Attribute{
			{Key: "href", Val: href},
			{Key: "class", Val: class},
		},
	}

	parent.InsertBefore(a, n)
	parent.RemoveChild(n)
	a.AppendChild(n)
}

func findByID(doc *html.Node, id string) *html.Node {
	var found *html.Node
	walk(doc, func(n *html.Node) {
		if found != nil || n.Type != html.ElementNode {
			return
		}
		for _, attr := range n.Attr {
			if attr.Key == "id" && attr.Val == id {
				found = n
				return
			}
		}
	})
	return found
}
