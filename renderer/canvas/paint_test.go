package canvasrenderer

import (
	"image/color"
	"testing"

	"github.com/ByLCY/svgtext/svg"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#f00", color.RGBA{255, 0, 0, 255}, true},
		{"#00FF80", color.RGBA{0, 255, 128, 255}, true},
		{"rgb(0, 128, 255)", color.RGBA{0, 128, 255, 255}, true},
		{"rgb(100%, 0%, 50%)", color.RGBA{255, 0, 128, 255}, true},
		{"red", color.RGBA{255, 0, 0, 255}, true},
		{" Navy ", color.RGBA{0, 0, 128, 255}, true},
		{"none", color.RGBA{}, false},
		{"", color.RGBA{}, false},
		{"#12", color.RGBA{}, false},
		{"#ggg", color.RGBA{}, false},
		{"rgb(1,2)", color.RGBA{}, false},
		{"notacolor", color.RGBA{}, false},
	}
	for _, c := range cases {
		got, ok := parseColor(c.in)
		if ok != c.ok || (ok && got != c.want) {
			t.Fatalf("parseColor(%q) = %v,%v, want %v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestPaintOf(t *testing.T) {
	doc := svg.NewDocument()
	n := doc.AddNode("rect", nil)
	p := paintOf(n)
	if p.fill == nil || p.stroke != nil || p.strokeWidth != 1 {
		t.Fatalf("default paint must be black fill without stroke, got %+v", p)
	}
	r, g, b, a := p.fill.RGBA()
	if r != 0 || g != 0 || b != 0 || a != 0xffff {
		t.Fatalf("default fill must be opaque black")
	}

	n.Set("fill", "none")
	n.Set("stroke", "blue")
	n.Set("stroke-width", "2.5px")
	n.Set("stroke-opacity", "0.5")
	p = paintOf(n)
	if p.fill != nil || p.stroke == nil || p.strokeWidth != 2.5 {
		t.Fatalf("unexpected paint %+v", p)
	}
	if _, _, _, a := p.stroke.RGBA(); a == 0 || a == 0xffff {
		t.Fatalf("stroke opacity must be applied, alpha %d", a)
	}
}
