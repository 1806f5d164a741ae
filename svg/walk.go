package svg

import "iter"

// IterNodes yields n and all of its descendants in pre-order. The sequence
// depends only on the tree shape and can be ranged over repeatedly.
func IterNodes(n *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if n == nil {
			return
		}
		walk(n, yield)
	}
}

func walk(n *Node, yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for _, id := range n.children {
		if !walk(n.doc.nodes[id], yield) {
			return false
		}
	}
	return true
}

// EnclosingText returns the nearest ancestor-or-self tagged text. When none
// exists n itself is returned.
func EnclosingText(n *Node) *Node {
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.Kind == KindText {
			return cur
		}
	}
	return n
}

// InText reports whether n lies inside a text element.
func InText(n *Node) bool {
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.Kind == KindText {
			return true
		}
	}
	return false
}
