package layout

import (
	"math"

	"github.com/ByLCY/svgtext/geom"
)

// PathLength sums the lengths of the line segments of each subpath.
func PathLength(p geom.Path) float64 {
	total := 0.0
	var old geom.Point
	for _, seg := range p {
		switch seg.Op {
		case geom.MoveTo:
			old = seg.Pt
		case geom.LineTo:
			total += geom.Distance(old, seg.Pt)
			old = seg.Pt
		}
	}
	return total
}

// PointAtDistance returns the point found target units along p. The second
// result is false when target lies beyond the end of the path.
func PointAtDistance(p geom.Path, target float64) (geom.Point, bool) {
	total := 0.0
	var old geom.Point
	for _, seg := range p {
		switch seg.Op {
		case geom.MoveTo:
			old = seg.Pt
		case geom.LineTo:
			length := geom.Distance(old, seg.Pt)
			total += length
			if total < target {
				old = seg.Pt
				continue
			}
			length -= total - target
			angle := geom.Angle(old, seg.Pt)
			return geom.Point{
				X: math.Cos(angle)*length + old.X,
				Y: math.Sin(angle)*length + old.Y,
			}, true
		}
	}
	return geom.Point{}, false
}
