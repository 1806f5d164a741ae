package svg

import (
	"errors"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

var (
	// ErrEmptyDocument is returned when the input holds no root element.
	ErrEmptyDocument = errors.New("svg: document has no root element")
	// ErrMalformed is returned for unbalanced element tags.
	ErrMalformed = errors.New("svg: malformed document")
)

// inherited lists the properties a child takes from its parent when absent.
var inherited = []string{
	"font-family",
	"font-size",
	"font-style",
	"font-weight",
	"letter-spacing",
	"text-anchor",
	"dominant-baseline",
	"display-anchor",
	"fill",
	"fill-opacity",
	"stroke",
	"stroke-width",
	"visibility",
	"xml:space",
}

// Parse reads an SVG document.
func Parse(r io.Reader) (*Document, error) {
	doc := NewDocument()
	lex := xml.NewLexer(parse.NewInput(r))

	var (
		stack []*Node
		open  *Node // element whose start tag is still being read
	)
	closeElement := func() {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Kind == KindText {
			normalizeText(n)
		}
	}
	for {
		tt, _ := lex.Next()
		switch tt {
		case xml.ErrorToken:
			if err := lex.Err(); err != io.EOF {
				return nil, fmt.Errorf("解析 SVG 失败: %w", err)
			}
			if len(stack) > 0 {
				return nil, fmt.Errorf("%w: <%s> is not closed", ErrMalformed, stack[len(stack)-1].Tag)
			}
			if doc.Len() == 0 {
				return nil, ErrEmptyDocument
			}
			return doc, nil
		case xml.StartTagToken:
			var parent *Node
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			open = doc.AddNode(localName(lex.Text()), parent)
			stack = append(stack, open)
		case xml.AttributeToken:
			if open != nil {
				open.Set(string(lex.Text()), attrValue(lex.AttrVal()))
			}
		case xml.StartTagCloseToken, xml.StartTagCloseVoidToken:
			if open == nil {
				continue
			}
			expandStyle(open)
			inherit(open, open.Parent())
			doc.Register(open)
			open = nil
			if tt == xml.StartTagCloseVoidToken {
				closeElement()
			}
		case xml.EndTagToken:
			name := localName(lex.Text())
			if len(stack) == 0 || stack[len(stack)-1].Tag != name {
				return nil, fmt.Errorf("%w: unexpected </%s>", ErrMalformed, name)
			}
			closeElement()
		case xml.TextToken:
			if len(stack) > 0 {
				appendCharData(doc, stack[len(stack)-1], html.UnescapeString(string(lex.Text())))
			}
		case xml.CDATAToken:
			if len(stack) > 0 {
				appendCharData(doc, stack[len(stack)-1], string(lex.Text()))
			}
		}
	}
}

// ParseString reads an SVG document from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// localName drops a namespace prefix from an element name.
func localName(b []byte) string {
	name := string(b)
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// attrValue strips the quotes the lexer leaves on attribute values and
// decodes character references.
func attrValue(b []byte) string {
	if n := len(b); n >= 2 && (b[0] == '"' || b[0] == '\'') && b[n-1] == b[0] {
		b = b[1 : n-1]
	}
	return html.UnescapeString(string(b))
}

// expandStyle turns style declarations into attributes; they take
// precedence over presentation attributes.
func expandStyle(n *Node) {
	style, ok := n.Lookup("style")
	if !ok {
		return
	}
	for _, decl := range strings.Split(style, ";") {
		key, value, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" {
			continue
		}
		n.Set(key, value)
	}
}

func inherit(n, parent *Node) {
	if parent == nil {
		return
	}
	for _, name := range inherited {
		if n.Has(name) {
			continue
		}
		if v, ok := parent.Lookup(name); ok {
			n.Set(name, v)
		}
	}
}

// appendCharData stores character data of text containers. Data after a
// child element goes into an anonymous tspan so that document order of
// the runs is kept.
func appendCharData(doc *Document, n *Node, data string) {
	if !(n.Kind.IsText() || (n.Kind == KindAnchor && InText(n))) {
		return
	}
	if len(n.children) == 0 {
		n.Text += data
		return
	}
	last := doc.nodes[n.children[len(n.children)-1]]
	if last.anonymous {
		last.Text += data
		return
	}
	tail := doc.AddNode("tspan", n)
	tail.anonymous = true
	inherit(tail, n)
	tail.Text = data
}

// normalizeText applies xml:space handling to every run of a text element.
// Space runs are collapsed across run boundaries; the first run loses its
// leading space and the last run its trailing space.
func normalizeText(text *Node) {
	var runs []*Node
	for n := range IterNodes(text) {
		if n.Text != "" {
			runs = append(runs, n)
		}
	}
	prevSpace := true
	for _, n := range runs {
		if n.Get("xml:space") == "preserve" {
			n.Text = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(n.Text)
			prevSpace = strings.HasSuffix(n.Text, " ")
			continue
		}
		n.Text, prevSpace = collapseSpace(n.Text, prevSpace)
	}
	for i := len(runs) - 1; i >= 0; i-- {
		n := runs[i]
		if n.Get("xml:space") == "preserve" {
			break
		}
		n.Text = strings.TrimRight(n.Text, " ")
		if n.Text != "" {
			break
		}
	}
}

func collapseSpace(s string, prevSpace bool) (string, bool) {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\n', '\r':
			continue
		case '\t', ' ':
			if prevSpace {
				continue
			}
			b.WriteByte(' ')
			prevSpace = true
		default:
			b.WriteRune(r)
			prevSpace = false
		}
	}
	return b.String(), prevSpace
}
