package xmldoc

// WalkFunc is called for every element during Walk. parent is nil for
// top-level elements. Returning false skips the element's children.
type WalkFunc func(el *Element, parent *Element) bool

// Walk visits every Element in nodes depth-first, in source order.
func Walk(nodes []Node, fn WalkFunc) {
	walk(nodes, nil, fn)
}

func walk(nodes []Node, parent *Element, fn WalkFunc) {
	for _, n := range nodes {
		el, ok := n.(*Element)
		if !ok {
			continue
		}
		if fn(el, parent) {
			walk(el.Children, el, fn)
		}
	}
}

// TopLevel returns the top-level elements with the given unprefixed local name.
// An empty name matches every top-level element.
func (c *Comment) TopLevel(name string) []*Element {
	var out []*Element
	for _, n := range c.Nodes {
		if el, ok := n.(*Element); ok && (name == "" || el.Name.Is(name)) {
			out = append(out, el)
		}
	}
	return out
}

// NamedValues returns the "name" attribute of every top-level element with the
// given local name, e.g. the parameter names declared with <param name="x">.
func (c *Comment) NamedValues(element string) map[string]bool {
	out := make(map[string]bool)
	for _, el := range c.TopLevel(element) {
		if v, ok := el.Attr("name"); ok && v != "" {
			out[v] = true
		}
	}
	return out
}
