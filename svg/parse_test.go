package svg_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/ByLCY/svgtext/svg"
)

const sampleSVG = `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="200" height="100">
  <defs>
    <path id="curve" d="M 10 80 L 190 80"/>
  </defs>
  <g style="font-family: 'DejaVu Sans', serif; font-size:20">
    <text id="t" x="10" y="20" text-anchor="middle">
      Hello   <tspan font-weight="bold">big</tspan> world
    </text>
    <text><textPath xlink:href="#curve">On a path</textPath></text>
  </g>
</svg>`

func TestParseTree(t *testing.T) {
	doc, err := svg.ParseString(sampleSVG)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	root := doc.Root()
	if root.Kind != svg.KindSVG {
		t.Fatalf("expected svg root, got %q", root.Tag)
	}

	text := doc.ByID("t")
	if text == nil || text.Kind != svg.KindText {
		t.Fatalf("text node not registered")
	}
	if text.Text != "Hello " {
		t.Fatalf("unexpected text run %q", text.Text)
	}
	children := text.Children()
	if len(children) != 2 {
		t.Fatalf("expected tspan plus anonymous tail, got %d children", len(children))
	}
	if children[0].Text != "big" || children[0].Get("font-weight") != "bold" {
		t.Fatalf("unexpected tspan: %q %v", children[0].Text, children[0].Attrs)
	}
	if !children[1].Anonymous() || children[1].Text != " world" {
		t.Fatalf("unexpected tail run: %q", children[1].Text)
	}
	if got := children[1].Get("font-family"); got != "'DejaVu Sans', serif" {
		t.Fatalf("font-family not inherited from style: %q", got)
	}
	if children[0].Has("x") {
		t.Fatalf("positional attributes must not be inherited")
	}
	if children[0].Get("text-anchor") != "middle" {
		t.Fatalf("text-anchor should inherit")
	}
	if children[0].Parent() != text {
		t.Fatalf("parent lookup broken")
	}
}

func TestPathRegistrationAndHref(t *testing.T) {
	doc, err := svg.ParseString(sampleSVG)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.PathByID("curve") == nil {
		t.Fatalf("path not registered")
	}
	if doc.PathByID("t") != nil {
		t.Fatalf("text must not be registered as a path")
	}
	var tp *svg.Node
	for n := range svg.IterNodes(doc.Root()) {
		if n.Kind == svg.KindTextPath {
			tp = n
		}
	}
	if tp == nil {
		t.Fatalf("textPath not found")
	}
	if tp.Href() != "#curve" {
		t.Fatalf("unexpected href %q", tp.Href())
	}
	if u := svg.ParseURL(tp.Href()); u.Fragment != "curve" {
		t.Fatalf("unexpected fragment %q", u.Fragment)
	}
	if svg.EnclosingText(tp).Kind != svg.KindText {
		t.Fatalf("enclosing text not found")
	}
}

func TestIterNodesIsRestartable(t *testing.T) {
	doc, err := svg.ParseString(sampleSVG)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	var first, second []string
	for n := range svg.IterNodes(doc.Root()) {
		first = append(first, n.Tag)
	}
	for n := range svg.IterNodes(doc.Root()) {
		second = append(second, n.Tag)
	}
	if !slices.Equal(first, second) {
		t.Fatalf("iteration not repeatable: %v vs %v", first, second)
	}
	if first[0] != "svg" || first[1] != "defs" || first[2] != "path" {
		t.Fatalf("not pre-order: %v", first)
	}
	if len(first) != doc.Len() {
		t.Fatalf("iteration missed nodes: %d of %d", len(first), doc.Len())
	}
}

func TestPreserveSpace(t *testing.T) {
	doc, err := svg.ParseString(`<svg><text xml:space="preserve">  a	b  </text></svg>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	text := doc.Root().Children()[0]
	if text.Text != "  a b  " {
		t.Fatalf("unexpected preserved text %q", text.Text)
	}
}

func TestParseURL(t *testing.T) {
	cases := []struct {
		in       string
		path     string
		fragment string
	}{
		{"#a", "", "a"},
		{"url(#b)", "", "b"},
		{"url('#c')", "", "c"},
		{"other.svg#d", "other.svg", "d"},
		{"", "", ""},
	}
	for _, c := range cases {
		u := svg.ParseURL(c.in)
		if u.Path != c.path || u.Fragment != c.fragment {
			t.Fatalf("ParseURL(%q) = %+v", c.in, u)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	for _, src := range []string{
		`<svg><text>open</svg>`,
		`<svg><g></svg>`,
		`<svg>`,
	} {
		if _, err := svg.ParseString(src); !errors.Is(err, svg.ErrMalformed) {
			t.Fatalf("ParseString(%q): expected ErrMalformed, got %v", src, err)
		}
	}
}

func TestParseEntities(t *testing.T) {
	doc, err := svg.ParseString(`<svg><text id="t" font-family="A&amp;B">a &lt; b &#233;<![CDATA[ <raw> ]]></text></svg>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	text := doc.ByID("t")
	if got := text.Get("font-family"); got != "A&B" {
		t.Fatalf("attribute entities not decoded: %q", got)
	}
	if text.Text != "a < b é <raw>" {
		t.Fatalf("unexpected text %q", text.Text)
	}
}
