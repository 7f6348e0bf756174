package preview

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Resolver maps clicked elements in the rendered pane back to source lines.
// It parses the rendered HTML once and answers lookups by walking from the
// clicked element up to the nearest ancestor carrying a data-line attribute.
type Resolver struct {
	byID   map[string]*html.Node
	parent map[*html.Node]*html.Node
}

// NewResolver parses rendered HTML into a resolver.
func NewResolver(rendered string) (*Resolver, error) {
	root, err := html.Parse(strings.NewReader(rendered))
	if err != nil {
		return nil, err
	}

	r := &Resolver{
		byID:   make(map[string]*html.Node),
		parent: make(map[*html.Node]*html.Node),
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if id := attr(n, "id"); id != "" {
				r.byID[id] = n
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			r.parent[child] = n
			walk(child)
		}
	}
	walk(root)

	return r, nil
}

// LineFor resolves an element id to the source line of the nearest
// line-attributed ancestor (including the element itself). Returns false when
// the click landed in unattributed content; callers fall back to a
// proportional estimate.
func (r *Resolver) LineFor(elementID string) (int, bool) {
	node, ok := r.byID[elementID]
	if !ok {
		return 0, false
	}
	for node != nil {
		if node.Type == html.ElementNode {
			if raw := attr(node, "data-line"); raw != "" {
				line, err := strconv.Atoi(raw)
				if err == nil && line > 0 {
					return line, true
				}
			}
		}
		node = r.parent[node]
	}
	return 0, false
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// EstimateLine converts a click's vertical proportion within the rendered
// content into an approximate source line. The result is clamped to the
// document's line range.
func EstimateLine(fractionY float64, totalLines int) int {
	if totalLines <= 0 {
		return 1
	}
	if fractionY < 0 {
		fractionY = 0
	}
	if fractionY > 1 {
		fractionY = 1
	}
	line := int(fractionY*float64(totalLines)) + 1
	if line > totalLines {
		line = totalLines
	}
	return line
}
