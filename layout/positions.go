package layout

import (
	"fmt"

	"github.com/ByLCY/svgtext/svg"
)

// LetterPosition is the resolved placement of one character. Nil fields are
// unspecified and continue from the cursor.
type LetterPosition struct {
	Rune   rune
	X, Y   *float64
	DX, DY *float64
	Rotate *float64
}

// positionLists holds the parsed positional attributes of a text node.
type positionLists struct {
	x, y, dx, dy []float64
	rotate       []float64
}

// lastRotation is the last listed rotation, or 0 when none is given.
func (p positionLists) lastRotation() float64 {
	if len(p.rotate) == 0 {
		return 0
	}
	return p.rotate[len(p.rotate)-1]
}

func parsePositions(units Resolver, node *svg.Node) (positionLists, error) {
	var (
		p   positionLists
		err error
	)
	lists := []struct {
		name string
		ref  Reference
		dst  *[]float64
	}{
		{"x", AxisX, &p.x},
		{"y", AxisY, &p.y},
		{"dx", AxisX, &p.dx},
		{"dy", AxisY, &p.dy},
	}
	for _, l := range lists {
		if *l.dst, err = units.Sizes(node.Get(l.name), l.ref); err != nil {
			return p, fmt.Errorf("属性 %s: %w", l.name, err)
		}
	}
	if p.rotate, err = Angles(node.Get("rotate")); err != nil {
		return p, fmt.Errorf("属性 rotate: %w", err)
	}
	return p, nil
}

// zipLetters pairs each rune of text with its positional values. Lists
// shorter than the text leave the remaining characters unspecified, except
// rotation which keeps its last listed value.
func zipLetters(p positionLists, text string) []LetterPosition {
	at := func(list []float64, i int) *float64 {
		if i < len(list) {
			v := list[i]
			return &v
		}
		return nil
	}
	var out []LetterPosition
	i := 0
	for _, r := range text {
		lp := LetterPosition{
			Rune:   r,
			X:      at(p.x, i),
			Y:      at(p.y, i),
			DX:     at(p.dx, i),
			DY:     at(p.dy, i),
			Rotate: at(p.rotate, i),
		}
		if lp.Rotate == nil && len(p.rotate) > 0 {
			last := p.lastRotation()
			lp.Rotate = &last
		}
		out = append(out, lp)
		i++
	}
	return out
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
