package layout

import "github.com/ByLCY/svgtext/svg"

// Measure returns the extents of node within its enclosing text element.
// Width is the sum of the widths of every run of that element, while the
// bearings and height are those of node alone; alignment relies on this mix.
func Measure(s Surface, node *svg.Node, defaultSize float64) TextExtents {
	var out TextExtents
	for sub := range svg.IterNodes(svg.EnclosingText(node)) {
		ext := singleExtents(s, sub, defaultSize)
		if sub == node {
			out.XBearing = ext.XBearing
			out.YBearing = ext.YBearing
			out.Height = ext.Height
		}
		out.Width += ext.Width
	}
	out.XAdvance = out.Width - out.XBearing
	out.YAdvance = out.Height - out.YBearing
	return out
}

func singleExtents(s Surface, node *svg.Node, defaultSize float64) TextExtents {
	s.Save()
	defer s.Restore()
	ApplyFont(s, node, defaultSize)
	return s.TextExtents(node.Text)
}
