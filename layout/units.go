package layout

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

// This file defines unit-safe types and helpers for SVG lengths.

// Unit represents the original unit of a length value as written in the document.
type Unit int

const (
	UnitNone    Unit = iota // unit-less numbers are user units (px)
	UnitPX                  // pixels
	UnitPT                  // points
	UnitPC                  // picas
	UnitMM                  // millimeters
	UnitCM                  // centimeters
	UnitIN                  // inches
	UnitEM                  // font size
	UnitEX                  // half the font size
	UnitPercent             // relative to a reference length
)

// Conversion constants between pt and mm.
const (
	PtToMm = 25.4 / 72
	MmToPt = 72 / 25.4
)

// DefaultDPI is the CSS reference resolution.
const DefaultDPI = 96.0

// ErrInvalidLength is returned when a length or angle cannot be parsed.
var ErrInvalidLength = errors.New("invalid length")

// PxToMm returns the size of one user unit in millimeters at dpi.
func PxToMm(dpi float64) float64 {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return 25.4 / dpi
}

var unitSuffixes = []struct {
	s string
	u Unit
}{{"px", UnitPX}, {"pt", UnitPT}, {"pc", UnitPC}, {"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"em", UnitEM}, {"ex", UnitEX}, {"%", UnitPercent}}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// ParseLength parses an SVG length such as "12", "1.5em" or "50%".
func ParseLength(value string) (Length, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return Length{}, nil
	}
	lower := strings.ToLower(v)
	unit := UnitNone
	num := lower
	for _, suf := range unitSuffixes {
		if strings.HasSuffix(lower, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(lower, suf.s))
			break
		}
	}
	f, n := strconv.ParseFloat([]byte(num))
	if n == 0 || n != len(num) {
		return Length{}, fmt.Errorf("%w: %q", ErrInvalidLength, value)
	}
	return Length{Value: f, Unit: unit}, nil
}

type refKind int

const (
	refX refKind = iota
	refY
	refXY
	refLength
)

// Reference selects what a percentage is relative to.
type Reference struct {
	kind   refKind
	length float64
}

var (
	AxisX  = Reference{kind: refX}
	AxisY  = Reference{kind: refY}
	AxisXY = Reference{kind: refXY}
)

// Of makes percentages relative to an explicit length.
func Of(length float64) Reference { return Reference{kind: refLength, length: length} }

// Resolver converts lengths into user units.
type Resolver struct {
	DPI            float64
	FontSize       float64
	ViewportWidth  float64
	ViewportHeight float64
}

// ToPx converts l into user units.
func (r Resolver) ToPx(l Length, ref Reference) float64 {
	dpi := r.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	switch l.Unit {
	case UnitPT:
		return l.Value * PtToMm / PxToMm(dpi)
	case UnitPC:
		return 12 * l.Value * PtToMm / PxToMm(dpi)
	case UnitMM:
		return l.Value / PxToMm(dpi)
	case UnitCM:
		return 10 * l.Value / PxToMm(dpi)
	case UnitIN:
		return l.Value * dpi
	case UnitEM:
		return l.Value * r.FontSize
	case UnitEX:
		return l.Value * r.FontSize / 2
	case UnitPercent:
		return l.Value * r.reference(ref) / 100
	default:
		return l.Value
	}
}

func (r Resolver) reference(ref Reference) float64 {
	switch ref.kind {
	case refX:
		return r.ViewportWidth
	case refY:
		return r.ViewportHeight
	case refLength:
		return ref.length
	default:
		return math.Sqrt((r.ViewportWidth*r.ViewportWidth + r.ViewportHeight*r.ViewportHeight) / 2)
	}
}

// Size parses value and converts it into user units. An empty value is 0.
func (r Resolver) Size(value string, ref Reference) (float64, error) {
	l, err := ParseLength(value)
	if err != nil {
		return 0, err
	}
	return r.ToPx(l, ref), nil
}

// Sizes resolves a whitespace or comma separated list of lengths.
func (r Resolver) Sizes(value string, ref Reference) ([]float64, error) {
	items := ParseList(value)
	out := make([]float64, 0, len(items))
	for _, item := range items {
		v, err := r.Size(item, ref)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseList splits a coordinate list on whitespace and commas. A minus sign
// that does not follow an exponent also starts a new item.
func ParseList(value string) []string {
	var b strings.Builder
	prev := byte(' ')
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c == ',':
			c = ' '
		case c == '-' && prev != 'e' && prev != 'E':
			b.WriteByte(' ')
		}
		b.WriteByte(c)
		prev = c
	}
	return strings.Fields(b.String())
}

// Angles parses a list of angles in degrees and returns radians.
func Angles(value string) ([]float64, error) {
	items := ParseList(value)
	out := make([]float64, 0, len(items))
	for _, item := range items {
		deg, n := strconv.ParseFloat([]byte(item))
		if n != len(item) {
			return nil, fmt.Errorf("%w: angle %q", ErrInvalidLength, item)
		}
		out = append(out, deg*math.Pi/180)
	}
	return out, nil
}
