package canvasrenderer

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/svgtext/layout"
	"github.com/ByLCY/svgtext/svg"
)

// ErrInvalidPathData is returned for malformed path data.
var ErrInvalidPathData = errors.New("svg: invalid path data")

// pass is the state of one document render.
type pass struct {
	surface    *Surface
	engine     *layout.Engine
	units      layout.Resolver
	ctx        *layout.Context
	drawAsText bool
	log        *slog.Logger
}

// node draws n and its descendants in document order.
func (p *pass) node(n *svg.Node) error {
	if n.Get("display") == "none" {
		return nil
	}
	switch {
	case n.Kind == svg.KindDefs || n.Kind == svg.KindOther:
		return nil
	case n.Kind == svg.KindText:
		err := p.transformed(n, func() error { return p.text(n) })
		p.ctx.ResetText()
		return err
	case n.Kind.IsShape():
		if n.Get("visibility") == "hidden" {
			return nil
		}
		return p.shape(p.ctx, n)
	}
	return p.transformed(n, func() error {
		for _, child := range n.Children() {
			if err := p.node(child); err != nil {
				return err
			}
		}
		return nil
	})
}

// transformed runs draw with the transform attribute of n applied.
func (p *pass) transformed(n *svg.Node, draw func() error) error {
	v, ok := n.Lookup("transform")
	if !ok {
		return draw()
	}
	t, err := svg.ParseTransform(v)
	if err != nil {
		return fmt.Errorf("节点 %s 的 transform: %w", n.Tag, err)
	}
	p.surface.Save()
	defer p.surface.Restore()
	p.surface.Transform(t)
	return draw()
}

// text lays out a text container and its text children. In outline mode
// the glyph path of each node is painted right after the node so that a
// later textPath cannot discard it.
func (p *pass) text(n *svg.Node) error {
	if n.Get("display") == "none" {
		return nil
	}
	style := paintOf(n)
	if n.Get("visibility") == "hidden" {
		style.fill, style.stroke = nil, nil
	}

	inherited := p.ctx.FontSize
	defer func() { p.ctx.FontSize = inherited }()
	if v, ok := n.Lookup("font-size"); ok {
		units := p.units
		units.FontSize = inherited
		size, err := units.Size(v, layout.AxisXY)
		if err != nil {
			return fmt.Errorf("节点 %s 的 font-size: %w", n.Tag, err)
		}
		p.ctx.FontSize = size
	}

	p.surface.SetFill(style.fill)
	if err := p.engine.Text(p.ctx, n, p.drawAsText); err != nil {
		return fmt.Errorf("排版文本节点 %s 失败: %w", n.Tag, err)
	}
	if !p.drawAsText {
		p.surface.Paint(style)
	}

	for _, child := range n.Children() {
		if !child.Kind.IsText() && child.Kind != svg.KindAnchor {
			continue
		}
		if err := p.text(child); err != nil {
			return err
		}
	}
	return nil
}

// shape builds the geometry of a shape node under its transform and paints
// it. It is also the draw callback of the layout engine, which disables
// painting to flatten textPath targets.
func (p *pass) shape(_ *layout.Context, n *svg.Node) error {
	return p.transformed(n, func() error {
		var (
			path *canvas.Path
			err  error
		)
		switch n.Kind {
		case svg.KindPath:
			path, err = parsePathData(n.Get("d"))
		case svg.KindRect:
			path, err = p.rect(n)
		case svg.KindCircle:
			path, err = p.ellipse(n, "r", "r")
		case svg.KindEllipse:
			path, err = p.ellipse(n, "rx", "ry")
		case svg.KindLine:
			path, err = p.line(n)
		case svg.KindPolyline:
			path, err = p.poly(n, false)
		case svg.KindPolygon:
			path, err = p.poly(n, true)
		default:
			return fmt.Errorf("节点 %s 不是图形", n.Tag)
		}
		if err != nil {
			return fmt.Errorf("绘制 %s 失败: %w", n.Tag, err)
		}
		p.surface.NewPath()
		p.surface.AppendPath(path)
		p.surface.Paint(paintOf(n))
		return nil
	})
}

// parsePathData parses the d attribute of a path. Empty data is an empty
// path; anything else must start with a moveto.
func parsePathData(d string) (*canvas.Path, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return &canvas.Path{}, nil
	}
	if d[0] != 'M' && d[0] != 'm' {
		return nil, fmt.Errorf("%w: must start with moveto, got %q", ErrInvalidPathData, d[0])
	}
	path, err := canvas.ParseSVGPath(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPathData, err)
	}
	return path, nil
}

// lengths resolves the named attributes of n along the given axes.
func (p *pass) lengths(n *svg.Node, names []string, refs []layout.Reference) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		v, err := p.units.Size(n.Get(name), refs[i])
		if err != nil {
			return nil, fmt.Errorf("属性 %s: %w", name, err)
		}
		out[i] = v
	}
	return out, nil
}

func (p *pass) rect(n *svg.Node) (*canvas.Path, error) {
	v, err := p.lengths(n,
		[]string{"x", "y", "width", "height", "rx", "ry"},
		[]layout.Reference{layout.AxisX, layout.AxisY, layout.AxisX, layout.AxisY, layout.AxisX, layout.AxisY})
	if err != nil {
		return nil, err
	}
	x, y, w, h, rx, ry := v[0], v[1], v[2], v[3], v[4], v[5]
	if w <= 0 || h <= 0 {
		return &canvas.Path{}, nil
	}
	if !n.Has("rx") {
		rx = ry
	}
	if !n.Has("ry") {
		ry = rx
	}
	rx, ry = min(max(rx, 0), w/2), min(max(ry, 0), h/2)

	var path *canvas.Path
	switch {
	case rx == 0 || ry == 0:
		path = &canvas.Path{}
		path.MoveTo(0, 0)
		path.LineTo(w, 0)
		path.LineTo(w, h)
		path.LineTo(0, h)
		path.Close()
	case rx == ry:
		path = canvas.RoundedRectangle(w, h, rx)
	default:
		path = &canvas.Path{}
		path.MoveTo(rx, 0)
		path.LineTo(w-rx, 0)
		path.ArcTo(rx, ry, 0, false, true, w, ry)
		path.LineTo(w, h-ry)
		path.ArcTo(rx, ry, 0, false, true, w-rx, h)
		path.LineTo(rx, h)
		path.ArcTo(rx, ry, 0, false, true, 0, h-ry)
		path.LineTo(0, ry)
		path.ArcTo(rx, ry, 0, false, true, rx, 0)
		path.Close()
	}
	return path.Translate(x, y), nil
}

func (p *pass) ellipse(n *svg.Node, rxName, ryName string) (*canvas.Path, error) {
	v, err := p.lengths(n,
		[]string{"cx", "cy", rxName, ryName},
		[]layout.Reference{layout.AxisX, layout.AxisY, layout.AxisXY, layout.AxisXY})
	if err != nil {
		return nil, err
	}
	cx, cy, rx, ry := v[0], v[1], v[2], v[3]
	if rx <= 0 || ry <= 0 {
		return &canvas.Path{}, nil
	}
	// starts at the rightmost point
	return canvas.Ellipse(rx, ry).Translate(cx, cy), nil
}

func (p *pass) line(n *svg.Node) (*canvas.Path, error) {
	v, err := p.lengths(n,
		[]string{"x1", "y1", "x2", "y2"},
		[]layout.Reference{layout.AxisX, layout.AxisY, layout.AxisX, layout.AxisY})
	if err != nil {
		return nil, err
	}
	path := &canvas.Path{}
	path.MoveTo(v[0], v[1])
	path.LineTo(v[2], v[3])
	return path, nil
}

func (p *pass) poly(n *svg.Node, closed bool) (*canvas.Path, error) {
	items := layout.ParseList(n.Get("points"))
	coords := make([]float64, 0, len(items))
	for _, item := range items {
		v, err := p.units.Size(item, layout.AxisXY)
		if err != nil {
			return nil, fmt.Errorf("属性 points: %w", err)
		}
		coords = append(coords, v)
	}
	if len(coords)%2 == 1 {
		p.log.Debug("odd number of coordinates in points", "tag", n.Tag)
		coords = coords[:len(coords)-1]
	}
	path := &canvas.Path{}
	for i := 0; i+1 < len(coords); i += 2 {
		if i == 0 {
			path.MoveTo(coords[i], coords[i+1])
		} else {
			path.LineTo(coords[i], coords[i+1])
		}
	}
	if closed && len(coords) > 0 {
		path.Close()
	}
	return path, nil
}

// viewBox parses a viewBox attribute; ok is false when absent or unusable.
func viewBox(n *svg.Node) (vb [4]float64, ok bool) {
	items := layout.ParseList(n.Get("viewBox"))
	if len(items) != 4 {
		return vb, false
	}
	for i, item := range items {
		l, err := layout.ParseLength(item)
		if err != nil {
			return vb, false
		}
		vb[i] = l.Value
	}
	return vb, vb[2] > 0 && vb[3] > 0 && !math.IsInf(vb[2], 0)
}
