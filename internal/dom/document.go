package dom

import (
	"context"
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/roach88/nono/internal/event"
)

// Document is a parsed HTML tree and the Dispatcher for its nodes.
//
// Node wrappers are created on first lookup and reused afterwards, so a
// node's identity (and its listeners) is stable.
type Document struct {
	root  *html.Node
	nodes map[*html.Node]*Node
}

// Parse builds a Document from an HTML fragment or page. Fragments are
// placed in the body.
func Parse(src string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &Document{root: root, nodes: make(map[*html.Node]*Node)}, nil
}

// MustParse is like Parse but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustParse(src string) *Document {
	doc, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return doc
}

func (d *Document) wrap(h *html.Node) *Node {
	if n, ok := d.nodes[h]; ok {
		return n
	}
	n := &Node{raw: h, doc: d}
	d.nodes[h] = n
	return n
}

// QuerySelector returns the first element matching the CSS selector in
// document order.
func (d *Document) QuerySelector(selector string) (*Node, error) {
	sel, err := cascadia.Parse(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	h := cascadia.Query(d.root, sel)
	if h == nil {
		return nil, nil
	}
	return d.wrap(h), nil
}

// QuerySelectorAll returns every element matching the CSS selector.
func (d *Document) QuerySelectorAll(selector string) ([]*Node, error) {
	sel, err := cascadia.Parse(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	matches := cascadia.QueryAll(d.root, sel)
	out := make([]*Node, len(matches))
	for i, h := range matches {
		out[i] = d.wrap(h)
	}
	return out, nil
}

// Lookup resolves a selector to a sink. Invalid selectors and misses both
// report false. Its signature matches robot.SelectorFunc.
func (d *Document) Lookup(selector string) (event.Sink, bool) {
	n, err := d.QuerySelector(selector)
	if err != nil || n == nil {
		return nil, false
	}
	return n, true
}

// Dispatch implements event.Dispatcher. It runs the listeners of target,
// then of each ancestor element while the event bubbles.
func (d *Document) Dispatch(_ context.Context, target event.Sink, ev *event.Event) error {
	n, ok := target.(*Node)
	if !ok || n.doc != d {
		return fmt.Errorf("target %q does not belong to this document", event.LabelOf(target))
	}
	for cur := n; cur != nil; cur = cur.Parent() {
		if err := cur.fire(ev); err != nil {
			return fmt.Errorf("listener on %s for %s: %w", cur.Label(), ev.Kind, err)
		}
		if !ev.Bubbles() {
			break
		}
	}
	return nil
}
