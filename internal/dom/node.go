package dom

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/roach88/nono/internal/event"
)

// Listener handles an event at one node of its propagation path.
// Returning an error stops propagation and fails the dispatch.
type Listener func(ev *event.Event, current *Node) error

// Node is an element of a Document. Nodes are event sinks.
type Node struct {
	raw       *html.Node
	doc       *Document
	listeners map[event.Kind][]Listener
}

// Tag returns the element name.
func (n *Node) Tag() string {
	return n.raw.Data
}

// Attr returns the value of attribute key.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.raw.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// ID returns the id attribute, or "".
func (n *Node) ID() string {
	id, _ := n.Attr("id")
	return id
}

// Classes returns the class list.
func (n *Node) Classes() []string {
	c, _ := n.Attr("class")
	return strings.Fields(c)
}

// Label implements event.Sink: tag#id, else tag.class, else tag.
func (n *Node) Label() string {
	if id := n.ID(); id != "" {
		return n.Tag() + "#" + id
	}
	if cls := n.Classes(); len(cls) > 0 {
		return n.Tag() + "." + cls[0]
	}
	return n.Tag()
}

// Parent returns the parent element, or nil at the root element.
func (n *Node) Parent() *Node {
	for p := n.raw.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return n.doc.wrap(p)
		}
	}
	return nil
}

// Text returns the concatenated text content of the node.
func (n *Node) Text() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(h *html.Node) {
		if h.Type == html.TextNode {
			b.WriteString(h.Data)
		}
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n.raw)
	return b.String()
}

// AddEventListener registers l for kind on this node.
func (n *Node) AddEventListener(kind event.Kind, l Listener) {
	if n.listeners == nil {
		n.listeners = make(map[event.Kind][]Listener)
	}
	n.listeners[kind] = append(n.listeners[kind], l)
}

// OnAny registers l for every known kind.
func (n *Node) OnAny(l Listener) {
	for _, k := range event.Kinds() {
		n.AddEventListener(k, l)
	}
}

func (n *Node) fire(ev *event.Event) error {
	for _, l := range n.listeners[ev.Kind] {
		if err := l(ev, n); err != nil {
			return err
		}
	}
	return nil
}
