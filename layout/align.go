package layout

import "github.com/ByLCY/svgtext/svg"

// anchorAlign returns the horizontal shift implied by text-anchor.
func anchorAlign(anchor string, ext TextExtents, chars int, letterSpacing float64) float64 {
	var align float64
	switch anchor {
	case "middle":
		align = -(ext.Width/2 + ext.XBearing)
		if letterSpacing != 0 && chars > 0 {
			align -= float64(chars-1) * letterSpacing / 2
		}
	case "end":
		align = -(ext.Width + ext.XBearing)
		if letterSpacing != 0 && chars > 0 {
			align -= float64(chars-1) * letterSpacing
		}
	}
	return align
}

// horizontalMetrics reports whether the font looks like a western
// horizontal font; baseline alignment is only applied to those.
func horizontalMetrics(fe FontExtents) bool {
	return fe.MaxXAdvance > 0 && fe.MaxYAdvance == 0
}

// baselineAlign returns the vertical shift implied by display-anchor or,
// failing that, by dominant-baseline / alignment-baseline. Only a subset of
// the baseline keywords is supported.
func baselineAlign(node *svg.Node, ext TextExtents, fe FontExtents) float64 {
	switch node.Get("display-anchor") {
	case "middle":
		return -ext.Height/2 - ext.YBearing
	case "top":
		return -ext.YBearing
	case "bottom":
		return -ext.Height - ext.YBearing
	}

	baseline := node.Get("dominant-baseline")
	if baseline == "" {
		baseline = node.Get("alignment-baseline")
	}
	switch baseline {
	case "central", "middle":
		// no x-height access: centre on the ascent/descent box
		return (fe.Ascent+fe.Descent)/2 - fe.Descent
	case "text-before-edge", "before_edge", "top", "hanging", "text-top":
		return fe.Ascent
	case "text-after-edge", "after_edge", "bottom", "text-bottom":
		return -fe.Descent
	}
	return 0
}
