// Package svg builds the document tree consumed by the text layout engine.
//
// 节点统一存放在 Document 的 arena 中，父子关系以下标表示；Parent 仅用于查找，
// 从不拥有节点。
package svg

import (
	"github.com/ByLCY/svgtext/geom"
)

// NodeID indexes a node inside its Document arena.
type NodeID int

const noNode NodeID = -1

// Kind is the closed set of element kinds the renderer dispatches on.
type Kind int

const (
	KindOther Kind = iota
	KindSVG
	KindGroup
	KindDefs
	KindText
	KindTSpan
	KindTextPath
	KindAnchor
	KindPath
	KindLine
	KindPolyline
	KindPolygon
	KindRect
	KindCircle
	KindEllipse
)

var kindByTag = map[string]Kind{
	"svg":      KindSVG,
	"g":        KindGroup,
	"defs":     KindDefs,
	"text":     KindText,
	"tspan":    KindTSpan,
	"textPath": KindTextPath,
	"a":        KindAnchor,
	"path":     KindPath,
	"line":     KindLine,
	"polyline": KindPolyline,
	"polygon":  KindPolygon,
	"rect":     KindRect,
	"circle":   KindCircle,
	"ellipse":  KindEllipse,
}

// KindOf maps an element tag to its Kind.
func KindOf(tag string) Kind {
	if k, ok := kindByTag[tag]; ok {
		return k
	}
	return KindOther
}

// IsText reports whether nodes of this kind carry positioned text runs.
func (k Kind) IsText() bool {
	return k == KindText || k == KindTSpan || k == KindTextPath
}

// IsShape reports whether nodes of this kind produce path geometry and can
// therefore be referenced by a textPath.
func (k Kind) IsShape() bool {
	switch k {
	case KindPath, KindLine, KindPolyline, KindPolygon, KindRect, KindCircle, KindEllipse:
		return true
	default:
		return false
	}
}

// Node is one element of the document tree.
type Node struct {
	ID    NodeID
	Kind  Kind
	Tag   string
	Text  string
	Attrs map[string]string

	// TextBoundingBox is scratch space filled by the layout engine for
	// downstream consumers (markers, decorations, debug output).
	TextBoundingBox geom.BoundingBox

	doc       *Document
	parent    NodeID
	children  []NodeID
	anonymous bool
}

// Get returns the attribute value or "" when absent.
func (n *Node) Get(name string) string { return n.Attrs[name] }

// Lookup returns the attribute value and whether it is present.
func (n *Node) Lookup(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// Has reports whether the attribute is present.
func (n *Node) Has(name string) bool {
	_, ok := n.Attrs[name]
	return ok
}

// Set stores an attribute value.
func (n *Node) Set(name, value string) {
	if n.Attrs == nil {
		n.Attrs = map[string]string{}
	}
	n.Attrs[name] = value
}

// HasText reports whether the node carries literal text.
func (n *Node) HasText() bool { return n.Text != "" }

// Anonymous reports whether the node was synthesized from character data
// following a child element.
func (n *Node) Anonymous() bool { return n.anonymous }

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node {
	if n.parent == noNode {
		return nil
	}
	return n.doc.nodes[n.parent]
}

// Children returns the child nodes in document order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	for i, id := range n.children {
		out[i] = n.doc.nodes[id]
	}
	return out
}

// Href returns the node's href, falling back to xlink:href.
func (n *Node) Href() string {
	if v := n.Get("href"); v != "" {
		return v
	}
	return n.Get("xlink:href")
}

// Document owns every node of one parsed SVG file.
type Document struct {
	nodes []*Node
	ids   map[string]NodeID
	paths map[string]NodeID
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{ids: map[string]NodeID{}, paths: map[string]NodeID{}}
}

// AddNode appends a node under parent (nil for the root) and returns it.
func (d *Document) AddNode(tag string, parent *Node) *Node {
	n := &Node{
		ID:     NodeID(len(d.nodes)),
		Kind:   KindOf(tag),
		Tag:    tag,
		Attrs:  map[string]string{},
		doc:    d,
		parent: noNode,
	}
	if parent != nil {
		n.parent = parent.ID
		parent.children = append(parent.children, n.ID)
	}
	d.nodes = append(d.nodes, n)
	return n
}

// Register indexes n under its id attribute. Shapes are additionally
// registered as textPath targets.
func (d *Document) Register(n *Node) {
	id := n.Get("id")
	if id == "" {
		return
	}
	d.ids[id] = n.ID
	if n.Kind.IsShape() {
		d.paths[id] = n.ID
	}
}

// Root returns the first node, or nil for an empty document.
func (d *Document) Root() *Node {
	if len(d.nodes) == 0 {
		return nil
	}
	return d.nodes[0]
}

// Len returns the number of nodes.
func (d *Document) Len() int { return len(d.nodes) }

// ByID returns the node registered under id, or nil.
func (d *Document) ByID(id string) *Node {
	if i, ok := d.ids[id]; ok {
		return d.nodes[i]
	}
	return nil
}

// PathByID returns the path-shaped node registered under id, or nil.
func (d *Document) PathByID(id string) *Node {
	if i, ok := d.paths[id]; ok {
		return d.nodes[i]
	}
	return nil
}
