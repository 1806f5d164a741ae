// Package geom holds the small geometry vocabulary shared by the document
// tree, the text layout engine and the drawing surfaces.
package geom

import "math"

// Point is a 2-D coordinate in user units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Angle returns the direction of the vector from p to q, in radians.
func Angle(p, q Point) float64 {
	return math.Atan2(q.Y-p.Y, q.X-p.X)
}

// BoundingBox is either empty or a (Min, Max) pair of extents.
// The zero value is the empty box.
type BoundingBox struct {
	Min   Point `json:"min"`
	Max   Point `json:"max"`
	valid bool
}

// EmptyBox returns the empty sentinel.
func EmptyBox() BoundingBox { return BoundingBox{} }

// Valid reports whether the box covers at least one point.
func (b BoundingBox) Valid() bool { return b.valid }

// Extend grows the box to cover pts. Extending with no points is a no-op.
func (b BoundingBox) Extend(pts ...Point) BoundingBox {
	for _, p := range pts {
		if !b.valid {
			b = BoundingBox{Min: p, Max: p, valid: true}
			continue
		}
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b
}

// Width returns the horizontal extent, 0 for the empty box.
func (b BoundingBox) Width() float64 {
	if !b.valid {
		return 0
	}
	return b.Max.X - b.Min.X
}

// Height returns the vertical extent, 0 for the empty box.
func (b BoundingBox) Height() float64 {
	if !b.valid {
		return 0
	}
	return b.Max.Y - b.Min.Y
}
