package feed

import "strings"

// Node is either an Element or a Text leaf.
type Node interface {
	isNode()
}

type Text string

type Element struct {
	Name     string
	Children []Node
}

func (Text) isNode()    {}
func (Element) isNode() {}

// With returns a copy of e with nodes appended after the existing children.
func (e Element) With(nodes ...Node) Element {
	children := make([]Node, 0, len(e.Children)+len(nodes))
	children = append(children, e.Children...)
	children = append(children, nodes...)
	return Element{Name: e.Name, Children: children}
}

// Child returns the first child element with the given name.
func (e Element) Child(name string) (Element, bool) {
	for _, n := range e.Children {
		if el, ok := n.(Element); ok && el.Name == name {
			return el, true
		}
	}
	return Element{}, false
}

func (e Element) Elements(name string) []Element {
	var out []Element
	for _, n := range e.Children {
		if el, ok := n.(Element); ok && el.Name == name {
			out = append(out, el)
		}
	}
	return out
}

// Text concatenates the direct text leaves of e.
func (e Element) Text() string {
	var b strings.Builder
	for _, n := range e.Children {
		if t, ok := n.(Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}
