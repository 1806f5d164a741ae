package layout

import (
	"log/slog"

	"github.com/ByLCY/svgtext/geom"
	"github.com/ByLCY/svgtext/svg"
)

// Options 配置文本排版引擎所需的依赖。
type Options struct {
	// DefaultFontSize 在渲染上下文未给出字号时使用（用户单位）。
	DefaultFontSize float64
	Logger          *slog.Logger
}

// DefaultFontSize is 16px (12pt at 96 DPI).
const DefaultFontSize = 16.0

// FontExtents are the font-level metrics of the selected face.
type FontExtents struct {
	Ascent      float64
	Descent     float64
	Height      float64
	MaxXAdvance float64
	MaxYAdvance float64
}

// TextExtents are the ink bounds and advance of a string, relative to the
// pen position on the baseline (y grows downward).
type TextExtents struct {
	XBearing float64 `json:"xBearing"`
	YBearing float64 `json:"yBearing"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	XAdvance float64 `json:"xAdvance"`
	YAdvance float64 `json:"yAdvance"`
}

// Surface 是排版引擎依赖的绘图表面，字体选择、度量、路径与变换都通过它完成。
type Surface interface {
	SelectFontFace(family string, slant Slant, weight Weight)
	SetFontSize(size float64)
	FontExtents() FontExtents
	TextExtents(s string) TextExtents

	NewPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	RelMoveTo(dx, dy float64)
	// CopyPathFlat returns the current path with curves flattened.
	CopyPathFlat() geom.Path

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(angle float64)

	// ShowText fills the glyphs of s at the current point.
	ShowText(s string)
	// TextPath appends the glyph outlines of s to the current path.
	TextPath(s string)

	// SetStrokeAndFill toggles painting of drawn shapes and returns the
	// previous setting.
	SetStrokeAndFill(enabled bool) bool
}

// DrawFunc draws a document node onto the surface. The engine uses it to
// construct the geometry of textPath targets.
type DrawFunc func(pass *Context, node *svg.Node) error
