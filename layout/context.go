package layout

import "github.com/ByLCY/svgtext/geom"

// Context holds the state carried from one text node to the next during a
// single render pass. Each document render gets its own Context.
type Context struct {
	// Cursor is the pen position after the previous character.
	Cursor geom.Point
	// Delta accumulates relative offsets since the last absolute coordinate.
	Delta geom.Point
	// PathWidth is the arc length consumed along the current text path.
	PathWidth float64
	// FontSize is the inherited font size of the node being drawn.
	FontSize float64
}

// NewContext returns the state for a fresh render pass.
func NewContext() *Context { return &Context{} }

// ResetText clears the cursor state once a text element is finished.
func (c *Context) ResetText() {
	c.Cursor = geom.Point{}
	c.Delta = geom.Point{}
	c.PathWidth = 0
}
