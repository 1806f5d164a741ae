package svg

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ErrInvalidTransform is returned for malformed transform lists.
var ErrInvalidTransform = errors.New("svg: invalid transform")

var (
	transformLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Ident", Pattern: `[a-zA-Z]+`},
		{Name: "Number", Pattern: `[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`},
		{Name: "Punct", Pattern: `[()]`},
		{Name: "Separator", Pattern: `[\s,]+`},
	})

	transformParser = participle.MustBuild[transformList](
		participle.Lexer(transformLexer),
		participle.Elide("Separator"),
	)
)

type transformList struct {
	Items []*transformItem `parser:"@@*"`
}

type transformItem struct {
	Name string    `parser:"@Ident '('"`
	Args []float64 `parser:"@Number* ')'"`
}

// Affine is the matrix [a c e; b d f] mapping (x, y) to
// (a*x + c*y + e, b*x + d*y + f).
type Affine [6]float64

// Identity is the identity transform.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// Mul returns m·n, applying n first.
func (m Affine) Mul(n Affine) Affine {
	return Affine{
		m[0]*n[0] + m[2]*n[1],
		m[1]*n[0] + m[3]*n[1],
		m[0]*n[2] + m[2]*n[3],
		m[1]*n[2] + m[3]*n[3],
		m[0]*n[4] + m[2]*n[5] + m[4],
		m[1]*n[4] + m[3]*n[5] + m[5],
	}
}

// Apply maps (x, y) through m.
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// ParseTransform parses a transform attribute into a single matrix.
func ParseTransform(s string) (Affine, error) {
	if strings.TrimSpace(s) == "" {
		return Identity, nil
	}
	list, err := transformParser.ParseString("", s)
	if err != nil {
		return Identity, fmt.Errorf("%w: %v", ErrInvalidTransform, err)
	}
	m := Identity
	for _, item := range list.Items {
		t, err := item.affine()
		if err != nil {
			return Identity, err
		}
		m = m.Mul(t)
	}
	return m, nil
}

func (t *transformItem) affine() (Affine, error) {
	a := t.Args
	bad := func() (Affine, error) {
		return Identity, fmt.Errorf("%w: %s with %d arguments", ErrInvalidTransform, t.Name, len(a))
	}
	switch t.Name {
	case "matrix":
		if len(a) != 6 {
			return bad()
		}
		return Affine{a[0], a[1], a[2], a[3], a[4], a[5]}, nil
	case "translate":
		switch len(a) {
		case 1:
			return Affine{1, 0, 0, 1, a[0], 0}, nil
		case 2:
			return Affine{1, 0, 0, 1, a[0], a[1]}, nil
		}
		return bad()
	case "scale":
		switch len(a) {
		case 1:
			return Affine{a[0], 0, 0, a[0], 0, 0}, nil
		case 2:
			return Affine{a[0], 0, 0, a[1], 0, 0}, nil
		}
		return bad()
	case "rotate":
		if len(a) != 1 && len(a) != 3 {
			return bad()
		}
		sin, cos := math.Sincos(a[0] * math.Pi / 180)
		r := Affine{cos, sin, -sin, cos, 0, 0}
		if len(a) == 3 {
			cx, cy := a[1], a[2]
			return Affine{1, 0, 0, 1, cx, cy}.Mul(r).Mul(Affine{1, 0, 0, 1, -cx, -cy}), nil
		}
		return r, nil
	case "skewX":
		if len(a) != 1 {
			return bad()
		}
		return Affine{1, 0, math.Tan(a[0] * math.Pi / 180), 1, 0, 0}, nil
	case "skewY":
		if len(a) != 1 {
			return bad()
		}
		return Affine{1, math.Tan(a[0] * math.Pi / 180), 0, 1, 0, 0}, nil
	}
	return Identity, fmt.Errorf("%w: unknown function %q", ErrInvalidTransform, t.Name)
}
