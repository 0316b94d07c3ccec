// Package document holds the parsed configuration document model: a tree of
// typed nodes built from an XML token stream, with <include> elements
// expanded in place as reference nodes.
package document

// Kind identifies what a Node represents in the parsed document.
type Kind int

const (
	// KindElement is a regular element node.
	KindElement Kind = iota
	// KindText is character data between elements.
	KindText
	// KindComment is an XML comment.
	KindComment
	// KindReference stands in for externally defined content pulled in via
	// an <include> element. Its children are the parsed content of the
	// referenced file, to be traversed as if inlined at this point.
	KindReference
)

// Attr is one element attribute in document order.
type Attr struct {
	Name  string
	Value string
}

// Node is an element of the parsed configuration document. Nodes are built
// once by the parser and never mutated afterwards.
type Node struct {
	Kind     Kind
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Node

	parent *Node
	pos    int
}

// Attr returns the value of the named attribute, or "" if absent.
func (n *Node) Attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// FirstChild returns the node's first child, or nil.
func (n *Node) FirstChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

// NextSibling returns the node following this one under the same parent,
// or nil.
func (n *Node) NextSibling() *Node {
	if n.parent == nil || n.pos+1 >= len(n.parent.Children) {
		return nil
	}
	return n.parent.Children[n.pos+1]
}

// append links a child into the node, maintaining sibling order.
func (n *Node) append(child *Node) {
	child.parent = n
	child.pos = len(n.Children)
	n.Children = append(n.Children, child)
}
