package plugconf

import (
	"github.com/nextpkg/plugconf/document"
)

// forEachTagged visits every child of parent in document order and invokes
// fn on each element named tag. Reference nodes are expanded in place, at
// any depth; other elements are not descended into. The walk uses an
// explicit stack, so deeply nested references cannot exhaust the call stack.
func forEachTagged(parent *document.Node, tag string, fn func(*document.Node)) {
	if parent == nil {
		return
	}

	stack := make([]*document.Node, 0, len(parent.Children))
	push := func(children []*document.Node) {
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	push(parent.Children)

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch n.Kind {
		case document.KindElement:
			if n.Tag == tag {
				fn(n)
			}
		case document.KindReference:
			push(n.Children)
		}
	}
}
