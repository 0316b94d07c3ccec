package plugconf

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nextpkg/plugconf/document"
)

func el(tag string, children ...*document.Node) *document.Node {
	return &document.Node{Kind: document.KindElement, Tag: tag, Children: children}
}

func ref(children ...*document.Node) *document.Node {
	return &document.Node{Kind: document.KindReference, Children: children}
}

func tags(parent *document.Node, tag string) []string {
	var out []string
	forEachTagged(parent, tag, func(n *document.Node) {
		out = append(out, n.Attr("name"))
	})
	return out
}

func attr(tag, name string) *document.Node {
	return &document.Node{
		Kind:  document.KindElement,
		Tag:   tag,
		Attrs: []document.Attr{{Name: "name", Value: name}},
	}
}

func TestWalkVisitsDirectChildrenInOrder(t *testing.T) {
	root := el("configuration",
		attr("plugin", "a"),
		attr("other", "x"),
		attr("plugin", "b"),
	)

	assert.Equal(t, []string{"a", "b"}, tags(root, "plugin"))
}

func TestWalkExpandsReferencesInPlace(t *testing.T) {
	root := el("configuration",
		attr("plugin", "a"),
		ref(
			attr("plugin", "b"),
			ref(attr("plugin", "c")),
		),
		attr("plugin", "d"),
	)

	assert.Equal(t, []string{"a", "b", "c", "d"}, tags(root, "plugin"))
}

func TestWalkDoesNotDescendIntoElements(t *testing.T) {
	root := el("configuration",
		el("wrapper", attr("plugin", "hidden")),
		attr("plugin", "visible"),
	)

	assert.Equal(t, []string{"visible"}, tags(root, "plugin"))
}

func TestWalkDeepReferenceNesting(t *testing.T) {
	// A reference chain deep enough to blow a recursive walk is handled by
	// the explicit stack.
	leaf := attr("plugin", "deep")
	n := ref(leaf)
	for range 100000 {
		n = ref(n)
	}

	assert.Equal(t, []string{"deep"}, tags(el("configuration", n), "plugin"))
}

func TestWalkNilParent(t *testing.T) {
	assert.Empty(t, tags(nil, "plugin"))
}
