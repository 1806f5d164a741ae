package canvasrenderer

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/ByLCY/svgtext/layout"
	"github.com/ByLCY/svgtext/svg"
)

func mustParse(t *testing.T, src string) *svg.Document {
	t.Helper()
	doc, err := svg.ParseString(src)
	if err != nil {
		t.Fatalf("解析 SVG 失败: %v", err)
	}
	return doc
}

func reportByID(reports []layout.BoxReport, id string) (layout.BoxReport, bool) {
	for _, r := range reports {
		if r.ID == id {
			return r, true
		}
	}
	return layout.BoxReport{}, false
}

func TestRenderProducesPDF(t *testing.T) {
	doc := mustParse(t, `<svg width="200" height="100">
  <rect x="5" y="5" width="50" height="20" rx="4" fill="#369" stroke="black"/>
  <circle cx="100" cy="50" r="10" fill="none" stroke="rgb(255,0,0)"/>
  <polygon points="0,0 10,0 10,10"/>
  <text id="t" x="10" y="60" font-family="serif">Hello</text>
</svg>`)
	r := NewRenderer(Options{Meta: Meta{Title: "test"}})
	data, err := r.Render(doc)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("expected PDF output, got %q", data[:min(len(data), 8)])
	}
	if _, ok := reportByID(r.Result(), "t"); !ok {
		t.Fatalf("expected a bounding box for the text node")
	}
}

func TestRenderRecordsTextBoxes(t *testing.T) {
	for _, drawAsText := range []bool{true, false} {
		doc := mustParse(t, `<svg width="200" height="100"><text id="t" x="10" y="20" font-size="20">Hi</text></svg>`)
		r := NewRenderer(Options{DrawAsText: drawAsText})
		if _, err := r.Render(doc); err != nil {
			t.Fatalf("Render error: %v", err)
		}
		box, ok := reportByID(r.Result(), "t")
		if !ok {
			t.Fatalf("missing box for text node")
		}
		if box.Min.X <= 10 || box.Min.Y < 20 || box.Max.X <= box.Min.X || box.Max.Y <= box.Min.Y {
			t.Fatalf("unexpected box %+v", box)
		}
	}
}

func TestRenderTextPath(t *testing.T) {
	doc := mustParse(t, `<svg width="300" height="100">
  <defs><path id="curve" d="M10 80 Q 150 0 290 80"/></defs>
  <text><textPath id="tp" href="#curve" startOffset="10%">text on a curve</textPath></text>
</svg>`)
	r := NewRenderer(Options{})
	if _, err := r.Render(doc); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	box, ok := reportByID(r.Result(), "tp")
	if !ok {
		t.Fatalf("missing box for textPath")
	}
	if box.Max.X <= box.Min.X || box.Max.X > 300 {
		t.Fatalf("unexpected textPath box %+v", box)
	}
}

func TestRenderTextPathTransforms(t *testing.T) {
	render := func(pathAttrs, textAttrs string) layout.BoxReport {
		t.Helper()
		doc := mustParse(t, fmt.Sprintf(`<svg width="300" height="100">
  <defs><path id="line" d="M0 50 L200 50"%s/></defs>
  <text%s><textPath id="tp" href="#line">abc</textPath></text>
</svg>`, pathAttrs, textAttrs))
		r := NewRenderer(Options{})
		if _, err := r.Render(doc); err != nil {
			t.Fatalf("Render error: %v", err)
		}
		box, ok := reportByID(r.Result(), "tp")
		if !ok {
			t.Fatalf("missing box for textPath")
		}
		return box
	}

	plain := render("", "")
	moved := render(` transform="translate(50,0)"`, "")
	if !near(moved.Max.X-plain.Max.X, 50, 1e-6) {
		t.Fatalf("target transform must move the glyphs: %+v vs %+v", plain, moved)
	}
	if !near(moved.Max.Y, plain.Max.Y, 1e-6) {
		t.Fatalf("glyph heights must not change: %+v vs %+v", plain, moved)
	}

	// the box is kept in the text's own user space
	shifted := render("", ` transform="translate(0,10)"`)
	if !near(shifted.Min.X, plain.Min.X, 1e-6) || !near(shifted.Min.Y, plain.Min.Y, 1e-6) ||
		!near(shifted.Max.X, plain.Max.X, 1e-6) || !near(shifted.Max.Y, plain.Max.Y, 1e-6) {
		t.Fatalf("text transform must not move the path in text space: %+v vs %+v", plain, shifted)
	}
}

func TestRenderResetsCursorBetweenTexts(t *testing.T) {
	doc := mustParse(t, `<svg width="200" height="100">
  <text id="a" x="100" y="20">AAAA</text>
  <text id="b" y="40">B</text>
</svg>`)
	r := NewRenderer(Options{})
	if _, err := r.Render(doc); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	box, ok := reportByID(r.Result(), "b")
	if !ok {
		t.Fatalf("missing box for second text")
	}
	if box.Min.X > 50 {
		t.Fatalf("second text must start from x=0, box %+v", box)
	}
}

func TestRenderErrors(t *testing.T) {
	r := NewRenderer(Options{})
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("expected error for nil document")
	}
	doc := mustParse(t, `<svg><path d="M0 0 X"/></svg>`)
	if _, err := r.Render(doc); !errors.Is(err, ErrInvalidPathData) {
		t.Fatalf("expected error for invalid path data")
	}
	doc = mustParse(t, `<svg><text x="abc">A</text></svg>`)
	if _, err := r.Render(doc); err == nil {
		t.Fatalf("expected error for invalid text position")
	}
}

func TestRenderSkipsHiddenAndDefs(t *testing.T) {
	doc := mustParse(t, `<svg>
  <defs><text id="d">no</text></defs>
  <g display="none"><text id="g">no</text></g>
  <text id="v" x="1" y="20">yes</text>
</svg>`)
	r := NewRenderer(Options{})
	if _, err := r.Render(doc); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	reports := r.Result()
	if len(reports) != 1 || reports[0].ID != "v" {
		t.Fatalf("only the visible text must be laid out, got %+v", reports)
	}
}

func TestPageGeometry(t *testing.T) {
	r := NewRenderer(Options{})
	cases := []struct {
		src      string
		width    float64
		height   float64
		vpW, vpH float64
	}{
		{`<svg/>`, 300, 150, 300, 150},
		{`<svg width="200" height="100"/>`, 200, 100, 200, 100},
		{`<svg viewBox="0 0 50 25"/>`, 50, 25, 50, 25},
		{`<svg width="1in" height="100" viewBox="0 0 10 10"/>`, 96, 100, 10, 10},
	}
	for _, c := range cases {
		g, err := r.page(mustParse(t, c.src).Root())
		if err != nil {
			t.Fatalf("%s: %v", c.src, err)
		}
		if math.Abs(g.width-c.width) > 1e-9 || math.Abs(g.height-c.height) > 1e-9 ||
			g.viewportWidth != c.vpW || g.viewportHeight != c.vpH {
			t.Fatalf("%s: page = %+v", c.src, g)
		}
	}
}
