package layout

import (
	"strconv"
	"strings"

	"github.com/ByLCY/svgtext/svg"
)

// Slant is the font slant requested by font-style.
type Slant int

const (
	SlantNormal Slant = iota
	SlantItalic
	SlantOblique
)

// Weight is the font weight requested by font-weight.
type Weight int

const (
	WeightNormal Weight = iota
	WeightBold
)

// boldThreshold is the smallest numeric weight rendered bold.
const boldThreshold = 550

// FontSpec is the resolved font selection of one node.
type FontSpec struct {
	Family string
	Slant  Slant
	Weight Weight
	Size   float64
}

// ResolveFont derives the font selection of node. Only a plain non-negative
// integer font-size overrides defaultSize.
func ResolveFont(node *svg.Node, defaultSize float64) FontSpec {
	spec := FontSpec{Family: "sans-serif", Size: defaultSize}

	if family := node.Get("font-family"); family != "" {
		first, _, _ := strings.Cut(family, ",")
		if first = strings.Trim(first, "\"' "); first != "" {
			spec.Family = first
		}
	}

	switch node.Get("font-style") {
	case "italic":
		spec.Slant = SlantItalic
	case "oblique":
		spec.Slant = SlantOblique
	}

	weight := node.Get("font-weight")
	if isDigits(weight) {
		if w, err := strconv.Atoi(weight); err == nil && w >= boldThreshold {
			weight = "bold"
		}
	}
	if weight == "bold" {
		spec.Weight = WeightBold
	}

	if size := node.Get("font-size"); isDigits(size) {
		if v, err := strconv.ParseFloat(size, 64); err == nil {
			spec.Size = v
		}
	}
	return spec
}

// ApplyFont selects the font of node on the surface.
func ApplyFont(s Surface, node *svg.Node, defaultSize float64) FontSpec {
	spec := ResolveFont(node, defaultSize)
	s.SelectFontFace(spec.Family, spec.Slant, spec.Weight)
	s.SetFontSize(spec.Size)
	return spec
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
