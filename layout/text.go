package layout

import (
	"fmt"
	"log/slog"
	"unicode"
	"unicode/utf8"

	"github.com/ByLCY/svgtext/geom"
	"github.com/ByLCY/svgtext/svg"
)

// Engine positions and draws the characters of text nodes.
type Engine struct {
	surface Surface
	units   Resolver
	doc     *svg.Document
	draw    DrawFunc
	opts    Options
	log     *slog.Logger
}

// NewEngine creates a text engine drawing on surface. draw is used to build
// the geometry of textPath targets registered in doc.
func NewEngine(surface Surface, units Resolver, doc *svg.Document, draw DrawFunc, opts Options) *Engine {
	if opts.DefaultFontSize <= 0 {
		opts.DefaultFontSize = DefaultFontSize
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Engine{surface: surface, units: units, doc: doc, draw: draw, opts: opts, log: log}
}

// Text lays out and emits the literal text of node, advancing the cursor
// state of pass. Glyphs are filled when drawAsText is set, otherwise their
// outlines are appended to the current path.
func (e *Engine) Text(pass *Context, node *svg.Node, drawAsText bool) error {
	s := e.surface
	fontSize := pass.FontSize
	if fontSize <= 0 {
		fontSize = e.opts.DefaultFontSize
	}
	units := e.units
	units.FontSize = fontSize

	ApplyFont(s, node, fontSize)
	fe := s.FontExtents()

	target := e.textPathTarget(node)

	letterSpacing := 0.0
	if v := node.Get("letter-spacing"); v != "" && v != "normal" {
		var err error
		if letterSpacing, err = units.Size(v, AxisXY); err != nil {
			return fmt.Errorf("属性 letter-spacing: %w", err)
		}
	}
	ext := Measure(s, node, fontSize)

	lists, err := parsePositions(units, node)
	if err != nil {
		return err
	}
	letters := zipLetters(lists, node.Text)

	xAlign := anchorAlign(node.Get("text-anchor"), ext, utf8.RuneCountInString(node.Text), letterSpacing)
	yAlign := 0.0
	if horizontalMetrics(fe) {
		yAlign = baselineAlign(node, ext, fe)
	}

	box := geom.EmptyBox()
	var (
		flat   geom.Path
		length float64
	)
	if target != nil {
		if flat, err = e.flatten(pass, target); err != nil {
			return err
		}
		length = PathLength(flat) + ext.XBearing
		startOffset, err := units.Size(node.Get("startOffset"), Of(length))
		if err != nil {
			return fmt.Errorf("属性 startOffset: %w", err)
		}
		if node.Kind == svg.KindTextPath {
			pass.PathWidth += startOffset
		}
		pass.PathWidth += xAlign
		box = box.Extend(geom.Point{X: startOffset})
	}

	if node.HasText() {
		box = e.letters(pass, letters, layoutRun{
			drawAsText:    drawAsText,
			letterSpacing: letterSpacing,
			lastRotation:  lists.lastRotation(),
			xAlign:        xAlign,
			yAlign:        yAlign,
			flat:          flat,
			length:        length,
			following:     target != nil,
		}, box)
	} else {
		e.advanceWithoutText(pass, lists)
	}

	if box.Valid() {
		node.TextBoundingBox = box
	}
	return nil
}

// layoutRun carries the per-node values shared by every character.
type layoutRun struct {
	drawAsText     bool
	letterSpacing  float64
	lastRotation   float64
	xAlign, yAlign float64
	flat           geom.Path
	length         float64
	following      bool
}

// letters places each character of a run and returns box extended with
// the area they cover.
func (e *Engine) letters(pass *Context, letters []LetterPosition, run layoutRun, box geom.BoundingBox) geom.BoundingBox {
	s := e.surface
	for i, l := range letters {
		if l.X != nil {
			pass.Delta.X = 0
		}
		if l.Y != nil {
			pass.Delta.Y = 0
		}
		pass.Delta.X += valueOr(l.DX, 0)
		pass.Delta.Y += valueOr(l.DY, 0)

		letter := string(l.Rune)
		te := s.TextExtents(letter)
		advance := te.XAdvance

		if run.following {
			start := pass.PathWidth + pass.Delta.X
			middle := start + advance/2
			end := start + advance
			startPt, okStart := PointAtDistance(run.flat, start)
			_, okMiddle := PointAtDistance(run.flat, middle)
			endPt, okEnd := PointAtDistance(run.flat, end)
			if i > 0 {
				advance += run.letterSpacing
			}
			pass.PathWidth += advance
			if !okStart || !okMiddle || !okEnd || middle < 0 || middle > run.length {
				e.log.Debug("glyph off text path", "rune", letter, "middle", middle, "length", run.length)
				continue
			}
			dy := pass.Delta.Y
			e.emit(letter, run.drawAsText, func() {
				s.Translate(startPt.X, startPt.Y)
				s.Rotate(geom.Angle(startPt, endPt))
				s.Translate(0, dy)
				s.MoveTo(0, 0)
			})
			box = box.Extend(geom.Point{X: endPt.X, Y: te.Height})
			continue
		}

		x := valueOr(l.X, pass.Cursor.X)
		y := valueOr(l.Y, pass.Cursor.Y)
		if i > 0 {
			x += run.letterSpacing
		}
		next := geom.Point{X: x + advance, Y: y}
		delta := pass.Delta
		e.emit(letter, run.drawAsText, func() {
			s.MoveTo(x, y)
			s.RelMoveTo(delta.X, delta.Y)
			s.RelMoveTo(run.xAlign, run.yAlign)
			s.Rotate(valueOr(l.Rotate, run.lastRotation))
		})
		box = box.Extend(
			geom.Point{X: next.X + run.xAlign + delta.X, Y: next.Y + run.yAlign + delta.Y},
			geom.Point{X: next.X + run.xAlign + te.XAdvance + delta.X, Y: next.Y + run.yAlign + te.Height + delta.Y},
		)
		pass.Cursor = next
	}
	return box
}

// emit draws one character inside a saved graphics state. place positions
// the pen; whitespace is measured by the caller but never drawn.
func (e *Engine) emit(letter string, drawAsText bool, place func()) {
	s := e.surface
	s.Save()
	defer s.Restore()
	place()
	if isSpace(letter) {
		return
	}
	if drawAsText {
		s.ShowText(letter)
	} else {
		s.TextPath(letter)
	}
}

// advanceWithoutText moves the cursor for nodes carrying no literal text,
// using only the first value of each positional list.
func (e *Engine) advanceWithoutText(pass *Context, lists positionLists) {
	first := func(list []float64, def float64) float64 {
		if len(list) > 0 {
			return list[0]
		}
		return def
	}
	x := first(lists.x, pass.Cursor.X)
	y := first(lists.y, pass.Cursor.Y)
	pass.Cursor = geom.Point{X: x + first(lists.dx, 0), Y: y + first(lists.dy, 0)}
}

// textPathTarget resolves the href of node, or of its parent, to a
// registered path. Unresolved references disable path following.
func (e *Engine) textPathTarget(node *svg.Node) *svg.Node {
	href := node.Href()
	if href == "" {
		if parent := node.Parent(); parent != nil {
			href = parent.Href()
		}
	}
	if href == "" {
		return nil
	}
	u := svg.ParseURL(href)
	if u.Fragment == "" {
		return nil
	}
	target := e.doc.PathByID(u.Fragment)
	if target == nil {
		e.log.Debug("text path target not found", "href", href)
	}
	return target
}

// flatten draws target with painting suppressed and returns its flattened
// geometry, leaving the surface path empty.
func (e *Engine) flatten(pass *Context, target *svg.Node) (geom.Path, error) {
	s := e.surface
	s.NewPath()
	prev := s.SetStrokeAndFill(false)
	err := e.draw(pass, target)
	s.SetStrokeAndFill(prev)
	if err != nil {
		return nil, fmt.Errorf("绘制文本路径 %q 失败: %w", target.Get("id"), err)
	}
	flat := s.CopyPathFlat()
	s.NewPath()
	return flat, nil
}

func isSpace(letter string) bool {
	r, _ := utf8.DecodeRuneInString(letter)
	return unicode.IsSpace(r)
}
