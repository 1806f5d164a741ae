package canvasrenderer

import (
	"image/color"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/image/colornames"

	"github.com/ByLCY/svgtext/svg"
)

// paint is the resolved fill and stroke of a node. Nil colors are not
// painted.
type paint struct {
	fill        color.Color
	stroke      color.Color
	strokeWidth float64
}

// paintOf resolves the paint properties of n. Fill defaults to black and
// stroke to none.
func paintOf(n *svg.Node) paint {
	p := paint{strokeWidth: 1}
	fillOpacity := parseOpacity(n.Get("fill-opacity"))
	strokeOpacity := parseOpacity(n.Get("stroke-opacity"))
	opacity := parseOpacity(n.Get("opacity"))

	fill, ok := n.Lookup("fill")
	if !ok {
		fill = "black"
	}
	if c, ok := parseColor(fill); ok {
		p.fill = withAlpha(c, fillOpacity*opacity)
	}
	if c, ok := parseColor(n.Get("stroke")); ok {
		p.stroke = withAlpha(c, strokeOpacity*opacity)
	}
	if w, ok := parseNumber(strings.TrimSuffix(strings.TrimSpace(n.Get("stroke-width")), "px")); ok && w >= 0 {
		p.strokeWidth = w
	}
	return p
}

// parseColor understands none, #rgb, #rrggbb, rgb(r,g,b) and named colors.
// ok is false for none, empty and unknown values.
func parseColor(s string) (color.RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "" || s == "none" || s == "transparent":
		return color.RGBA{}, false
	case strings.HasPrefix(s, "#"):
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 || strings.Trim(hex, "0123456789abcdef") != "" {
			return color.RGBA{}, false
		}
		return canvas.Hex("#" + hex), true
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		parts := strings.Split(s[4:len(s)-1], ",")
		if len(parts) != 3 {
			return color.RGBA{}, false
		}
		var rgb [3]uint8
		for i, part := range parts {
			part = strings.TrimSpace(part)
			num, percent := strings.CutSuffix(part, "%")
			v, ok := parseNumber(num)
			if !ok {
				return color.RGBA{}, false
			}
			if percent {
				v = v * 255 / 100
			}
			rgb[i] = uint8(min(max(v, 0), 255) + 0.5)
		}
		return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, true
	}
	c, ok := colornames.Map[s]
	return c, ok
}

func parseOpacity(s string) float64 {
	v, ok := parseNumber(strings.TrimSpace(s))
	if !ok {
		return 1
	}
	return min(max(v, 0), 1)
}

func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, n := strconv.ParseFloat([]byte(s))
	return v, n == len(s)
}

func withAlpha(c color.RGBA, alpha float64) color.Color {
	return canvas.RGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, alpha)
}
