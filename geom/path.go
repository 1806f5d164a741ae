package geom

// Op is the kind of a flattened path segment.
type Op int

const (
	MoveTo Op = iota
	LineTo
)

func (op Op) String() string {
	switch op {
	case MoveTo:
		return "M"
	case LineTo:
		return "L"
	default:
		return "?"
	}
}

// Segment is one command of a flattened path.
type Segment struct {
	Op Op
	Pt Point
}

// Path is a curve-free polyline made of MoveTo/LineTo segments.
type Path []Segment

// MoveTo appends a MoveTo segment.
func (p *Path) MoveTo(x, y float64) { *p = append(*p, Segment{Op: MoveTo, Pt: Point{x, y}}) }

// LineTo appends a LineTo segment.
func (p *Path) LineTo(x, y float64) { *p = append(*p, Segment{Op: LineTo, Pt: Point{x, y}}) }
