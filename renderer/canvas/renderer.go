package canvasrenderer

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/svgtext/fonts"
	"github.com/ByLCY/svgtext/layout"
	"github.com/ByLCY/svgtext/renderer"
	"github.com/ByLCY/svgtext/svg"
)

// Default viewport of an SVG without width, height and viewBox.
const (
	defaultWidth  = 300.0
	defaultHeight = 150.0
)

// Renderer draws SVG documents via github.com/tdewolff/canvas and writes PDF.
type Renderer struct {
	opts  Options
	fonts *fontCache
	log   *slog.Logger

	mu      sync.Mutex
	reports []layout.BoxReport
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the canvas renderer.
type Options struct {
	Logger *slog.Logger
	// DPI maps user units to physical units; 0 means 96.
	DPI float64
	// DrawAsText fills glyphs directly instead of painting their outlines
	// with the node's fill and stroke.
	DrawAsText bool
	// DefaultFontSize applies where no font-size is given; 0 means 16.
	DefaultFontSize float64
	// Fonts resolves font families; nil uses the built-in fonts only.
	Fonts *fonts.Registry
	Meta  Meta
}

// Meta is written into the PDF document information.
type Meta struct {
	Title    string
	Subject  string
	Keywords []string
	Author   string
	Creator  string
}

// NewRenderer creates a canvas-based renderer.
func NewRenderer(opts Options) *Renderer {
	if opts.DPI <= 0 {
		opts.DPI = layout.DefaultDPI
	}
	if opts.DefaultFontSize <= 0 {
		opts.DefaultFontSize = layout.DefaultFontSize
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Renderer{opts: opts, fonts: newFontCache(opts.Fonts, log), log: log}
}

// Render renders doc into a PDF byte slice and records the text bounding
// boxes computed on the way.
func (r *Renderer) Render(doc *svg.Document) ([]byte, error) {
	if doc == nil || doc.Root() == nil {
		return nil, svg.ErrEmptyDocument
	}
	root := doc.Root()
	page, err := r.page(root)
	if err != nil {
		return nil, err
	}

	widthMM, heightMM := page.width*page.scale, page.height*page.scale
	c := canvas.New(widthMM, heightMM)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 与 SVG 一致：左上角为原点，y 向下

	s := newSurface(ctx, page.matrix, r.fonts, r.log)
	units := layout.Resolver{DPI: r.opts.DPI, ViewportWidth: page.viewportWidth, ViewportHeight: page.viewportHeight}
	p := &pass{
		surface:    s,
		units:      units,
		ctx:        layout.NewContext(),
		drawAsText: r.opts.DrawAsText,
		log:        r.log,
	}
	p.ctx.FontSize = r.opts.DefaultFontSize
	p.engine = layout.NewEngine(s, units, doc, p.shape, layout.Options{
		DefaultFontSize: r.opts.DefaultFontSize,
		Logger:          r.log,
	})

	if err := p.node(root); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, widthMM, heightMM, nil)
	r.applyMeta(writer)
	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}

	r.mu.Lock()
	r.reports = layout.Report(doc)
	r.mu.Unlock()
	r.log.Debug("rendered document", "nodes", doc.Len(), "width_mm", widthMM, "height_mm", heightMM)
	return buf.Bytes(), nil
}

// Result returns the text bounding boxes of the last render.
func (r *Renderer) Result() []layout.BoxReport {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reports
}

func (r *Renderer) applyMeta(writer *pdf.PDF) {
	meta := r.opts.Meta
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// pageGeometry maps the root viewport onto the page.
type pageGeometry struct {
	width, height                 float64 // user units
	scale                         float64 // millimeters per user unit
	viewportWidth, viewportHeight float64
	matrix                        canvas.Matrix
}

// page resolves the page size from width and height, falling back to the
// viewBox size. A viewBox is fitted with xMidYMid meet.
func (r *Renderer) page(root *svg.Node) (pageGeometry, error) {
	g := pageGeometry{scale: layout.PxToMm(r.opts.DPI)}
	vb, hasViewBox := viewBox(root)

	units := layout.Resolver{DPI: r.opts.DPI, ViewportWidth: defaultWidth, ViewportHeight: defaultHeight}
	var err error
	if g.width, err = units.Size(root.Get("width"), layout.AxisX); err != nil {
		return g, fmt.Errorf("根节点 width: %w", err)
	}
	if g.height, err = units.Size(root.Get("height"), layout.AxisY); err != nil {
		return g, fmt.Errorf("根节点 height: %w", err)
	}
	if g.width <= 0 {
		g.width = defaultWidth
		if hasViewBox {
			g.width = vb[2]
		}
	}
	if g.height <= 0 {
		g.height = defaultHeight
		if hasViewBox {
			g.height = vb[3]
		}
	}
	if g.width <= 0 || g.height <= 0 {
		return g, errors.New("页面尺寸无效")
	}

	g.matrix = canvas.Identity.Scale(g.scale, g.scale)
	g.viewportWidth, g.viewportHeight = g.width, g.height
	if hasViewBox {
		k := min(g.width/vb[2], g.height/vb[3])
		g.matrix = g.matrix.
			Translate((g.width-vb[2]*k)/2, (g.height-vb[3]*k)/2).
			Scale(k, k).
			Translate(-vb[0], -vb[1])
		g.viewportWidth, g.viewportHeight = vb[2], vb[3]
	}
	return g, nil
}
