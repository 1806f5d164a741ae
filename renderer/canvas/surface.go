package canvasrenderer

import (
	"image/color"
	"log/slog"
	"math"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/svgtext/fonts"
	"github.com/ByLCY/svgtext/geom"
	"github.com/ByLCY/svgtext/layout"
	"github.com/ByLCY/svgtext/svg"
)

// Surface implements layout.Surface on top of a canvas context. User
// coordinates are mapped to page millimeters by the current matrix; the
// current point and path are kept in page space.
type Surface struct {
	ctx   *canvas.Context
	fonts *fontCache
	log   *slog.Logger

	state state
	stack []state

	pen     canvas.Point
	path    *canvas.Path
	painted bool

	faces map[faceKey]*canvas.FontFace
}

type state struct {
	m      canvas.Matrix
	family string
	style  fonts.Style
	size   float64
	fill   color.Color
}

type faceKey struct {
	family string
	style  fonts.Style
	size   float64
}

var _ layout.Surface = (*Surface)(nil)

// newSurface returns a surface drawing on ctx with the user-to-page matrix m.
func newSurface(ctx *canvas.Context, m canvas.Matrix, cache *fontCache, log *slog.Logger) *Surface {
	return &Surface{
		ctx:     ctx,
		fonts:   cache,
		log:     log,
		state:   state{m: m, family: "sans-serif", size: layout.DefaultFontSize, fill: color.Black},
		path:    &canvas.Path{},
		painted: true,
		faces:   map[faceKey]*canvas.FontFace{},
	}
}

func (s *Surface) SelectFontFace(family string, slant layout.Slant, weight layout.Weight) {
	s.state.family = family
	s.state.style = styleOf(slant, weight)
}

func (s *Surface) SetFontSize(size float64) { s.state.size = size }

func (s *Surface) face() *canvas.FontFace {
	key := faceKey{family: s.state.family, style: s.state.style, size: s.state.size}
	if f, ok := s.faces[key]; ok {
		return f
	}
	f := s.fonts.face(key.family, key.style, key.size)
	s.faces[key] = f
	return f
}

func (s *Surface) FontExtents() layout.FontExtents {
	face := s.face()
	m := face.Metrics()
	return layout.FontExtents{
		Ascent:      m.Ascent,
		Descent:     m.Descent,
		Height:      m.LineHeight,
		MaxXAdvance: face.MmPerEm * float64(face.Font.Hhea.AdvanceWidthMax),
	}
}

// TextExtents measures the ink of str. Glyph paths are y-up; the extents
// are y-down like the user space.
func (s *Surface) TextExtents(str string) layout.TextExtents {
	if str == "" {
		return layout.TextExtents{}
	}
	p, advance, err := s.face().ToPath(str)
	if err != nil {
		s.log.Debug("glyph outline failed", "text", str, "err", err)
	}
	b := p.Bounds()
	return layout.TextExtents{
		XBearing: b.X0,
		YBearing: -b.Y1,
		Width:    b.W(),
		Height:   b.H(),
		XAdvance: advance,
	}
}

func (s *Surface) NewPath() { s.path = &canvas.Path{} }

func (s *Surface) MoveTo(x, y float64) {
	s.pen = s.state.m.Dot(canvas.Point{X: x, Y: y})
	s.path.MoveTo(s.pen.X, s.pen.Y)
}

func (s *Surface) LineTo(x, y float64) {
	s.pen = s.state.m.Dot(canvas.Point{X: x, Y: y})
	s.path.LineTo(s.pen.X, s.pen.Y)
}

// AppendPath adds p, given in user space, to the current path.
func (s *Surface) AppendPath(p *canvas.Path) {
	if p.Empty() {
		return
	}
	s.path = s.path.Append(p.Copy().Transform(s.state.m))
	s.pen = s.state.m.Dot(p.Pos())
}

func (s *Surface) RelMoveTo(dx, dy float64) {
	s.pen = s.pen.Add(s.linear().Dot(canvas.Point{X: dx, Y: dy}))
}

// CopyPathFlat returns the current path flattened and mapped into the
// current user space. Close segments become lines back to the subpath start.
func (s *Surface) CopyPathFlat() geom.Path {
	var flat geom.Path
	if s.path.Empty() {
		return flat
	}
	p := s.path.Copy().Flatten(canvas.Tolerance).Transform(s.state.m.Inv())
	for scan := p.Scanner(); scan.Scan(); {
		end := scan.End()
		if scan.Cmd() == canvas.MoveToCmd {
			flat.MoveTo(end.X, end.Y)
		} else {
			flat.LineTo(end.X, end.Y)
		}
	}
	return flat
}

func (s *Surface) Save() { s.stack = append(s.stack, s.state) }

func (s *Surface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.state = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *Surface) Translate(x, y float64) { s.state.m = s.state.m.Translate(x, y) }

// Rotate rotates the user space by angle radians.
func (s *Surface) Rotate(angle float64) { s.state.m = s.state.m.Rotate(angle * 180 / math.Pi) }

// Transform composes t onto the user space.
func (s *Surface) Transform(t svg.Affine) {
	s.state.m = s.state.m.Mul(canvas.Matrix{{t[0], t[2], t[4]}, {t[1], t[3], t[5]}})
}

func (s *Surface) ShowText(str string) {
	p := s.glyphs(str)
	if s.state.fill == nil || p.Empty() {
		return
	}
	s.ctx.SetFillColor(s.state.fill)
	s.ctx.SetStrokeColor(color.RGBA{})
	s.ctx.DrawPath(0, 0, p)
}

func (s *Surface) TextPath(str string) { s.path = s.path.Append(s.glyphs(str)) }

func (s *Surface) SetStrokeAndFill(enabled bool) bool {
	prev := s.painted
	s.painted = enabled
	return prev
}

// SetFill sets the color used by ShowText; nil draws nothing.
func (s *Surface) SetFill(c color.Color) { s.state.fill = c }

// Paint fills and strokes the current path and starts a new one. Nothing is
// painted while painting is disabled and the path is kept.
func (s *Surface) Paint(p paint) {
	if !s.painted {
		return
	}
	if !s.path.Empty() && (p.fill != nil || p.stroke != nil) {
		fill, stroke := color.Color(color.RGBA{}), color.Color(color.RGBA{})
		if p.fill != nil {
			fill = p.fill
		}
		if p.stroke != nil {
			stroke = p.stroke
		}
		s.ctx.SetFillColor(fill)
		s.ctx.SetStrokeColor(stroke)
		s.ctx.SetStrokeWidth(p.strokeWidth * math.Sqrt(math.Abs(s.state.m.Det())))
		s.ctx.DrawPath(0, 0, s.path)
	}
	s.NewPath()
}

// linear is the current matrix without its translation.
func (s *Surface) linear() canvas.Matrix {
	m := s.state.m
	m[0][2], m[1][2] = 0, 0
	return m
}

// glyphs returns the outlines of str in page space, anchored at the current
// point, and advances the current point.
func (s *Surface) glyphs(str string) *canvas.Path {
	p, advance, err := s.face().ToPath(str)
	if err != nil {
		s.log.Debug("glyph outline failed", "text", str, "err", err)
	}
	lin := s.linear()
	p = p.Transform(canvas.Identity.Translate(s.pen.X, s.pen.Y).Mul(lin).Scale(1, -1))
	s.pen = s.pen.Add(lin.Dot(canvas.Point{X: advance}))
	return p
}
