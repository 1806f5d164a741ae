package layout

import (
	"math"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/svgtext/geom"
	"github.com/ByLCY/svgtext/svg"
)

// glyph is one character emitted on the fake surface.
type glyph struct {
	text    string
	pen     geom.Point
	angle   float64
	outline bool
}

type affine struct{ a, b, c, d, e, f float64 }

var identity = affine{a: 1, d: 1}

func (m affine) apply(x, y float64) geom.Point {
	return geom.Point{X: m.a*x + m.c*y + m.e, Y: m.b*x + m.d*y + m.f}
}

type fakeState struct {
	m    affine
	pen  geom.Point
	font FontSpec
}

// fakeSurface is a deterministic Surface: every rune advances by advance
// (or by widths[r]), ink starts 1 unit after the pen and is 10 units tall.
type fakeSurface struct {
	advance float64
	widths  map[rune]float64
	metrics FontExtents

	state        fakeState
	stack        []fakeState
	path         geom.Path
	strokeFill   bool
	glyphs       []glyph
	fonts        []FontSpec
	maxDepth     int
	extentsCalls int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		advance:    10,
		metrics:    FontExtents{Ascent: 8, Descent: 2, Height: 12, MaxXAdvance: 10},
		state:      fakeState{m: identity},
		strokeFill: true,
	}
}

var _ Surface = (*fakeSurface)(nil)

func (f *fakeSurface) SelectFontFace(family string, slant Slant, weight Weight) {
	f.state.font.Family, f.state.font.Slant, f.state.font.Weight = family, slant, weight
}

func (f *fakeSurface) SetFontSize(size float64) {
	f.state.font.Size = size
	f.fonts = append(f.fonts, f.state.font)
}

func (f *fakeSurface) FontExtents() FontExtents { return f.metrics }

func (f *fakeSurface) runeAdvance(r rune) float64 {
	if w, ok := f.widths[r]; ok {
		return w
	}
	return f.advance
}

func (f *fakeSurface) TextExtents(s string) TextExtents {
	f.extentsCalls++
	if s == "" {
		return TextExtents{}
	}
	adv := 0.0
	for _, r := range s {
		adv += f.runeAdvance(r)
	}
	return TextExtents{XBearing: 1, YBearing: -8, Width: adv - 2, Height: 10, XAdvance: adv}
}

func (f *fakeSurface) NewPath() { f.path = nil }

func (f *fakeSurface) MoveTo(x, y float64) {
	f.state.pen = f.state.m.apply(x, y)
	f.path.MoveTo(x, y)
}

func (f *fakeSurface) LineTo(x, y float64) {
	f.state.pen = f.state.m.apply(x, y)
	f.path.LineTo(x, y)
}

func (f *fakeSurface) RelMoveTo(dx, dy float64) {
	m := f.state.m
	f.state.pen.X += m.a*dx + m.c*dy
	f.state.pen.Y += m.b*dx + m.d*dy
}

func (f *fakeSurface) CopyPathFlat() geom.Path { return append(geom.Path(nil), f.path...) }

func (f *fakeSurface) Save() {
	f.stack = append(f.stack, f.state)
	f.maxDepth = max(f.maxDepth, len(f.stack))
}

func (f *fakeSurface) Restore() {
	f.state = f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]
}

func (f *fakeSurface) Translate(x, y float64) {
	m := &f.state.m
	m.e += m.a*x + m.c*y
	m.f += m.b*x + m.d*y
}

func (f *fakeSurface) Rotate(angle float64) {
	s, c := math.Sincos(angle)
	m := f.state.m
	f.state.m = affine{
		a: m.a*c + m.c*s, b: m.b*c + m.d*s,
		c: -m.a*s + m.c*c, d: -m.b*s + m.d*c,
		e: m.e, f: m.f,
	}
}

func (f *fakeSurface) ShowText(s string) { f.emit(s, false) }

func (f *fakeSurface) TextPath(s string) { f.emit(s, true) }

func (f *fakeSurface) emit(s string, outline bool) {
	f.glyphs = append(f.glyphs, glyph{
		text:    s,
		pen:     f.state.pen,
		angle:   math.Atan2(f.state.m.b, f.state.m.a),
		outline: outline,
	})
}

func (f *fakeSurface) SetStrokeAndFill(enabled bool) bool {
	prev := f.strokeFill
	f.strokeFill = enabled
	return prev
}

// drawPathData is a minimal draw callback building flattened path geometry.
func (f *fakeSurface) drawPathData(_ *Context, node *svg.Node) error {
	p, err := canvas.ParseSVGPath(node.Get("d"))
	if err != nil {
		return err
	}
	for scan := p.Flatten(canvas.Tolerance).Scanner(); scan.Scan(); {
		end := scan.End()
		if scan.Cmd() == canvas.MoveToCmd {
			f.MoveTo(end.X, end.Y)
		} else {
			f.LineTo(end.X, end.Y)
		}
	}
	return nil
}
