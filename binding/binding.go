// Package binding fills ${path} placeholders of an SVG document from data.
package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ByLCY/svgtext/svg"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值。
// 若 data 为空或路径不存在，则保留原占位符。
func Interpolate(text string, data any) string {
	out, _ := interpolate(text, data)
	return out
}

func interpolate(text string, data any) (string, int) {
	if data == nil || !strings.Contains(text, "${") {
		return text, 0
	}
	var (
		b        strings.Builder
		last     int
		replaced int
	)
	for _, m := range exprPattern.FindAllStringSubmatchIndex(text, -1) {
		b.WriteString(text[last:m[0]])
		last = m[1]
		path := strings.TrimSpace(text[m[2]:m[3]])
		if val, ok := Lookup(data, path); ok && path != "" {
			b.WriteString(fmt.Sprint(val))
			replaced++
			continue
		}
		b.WriteString(text[m[0]:m[1]])
	}
	b.WriteString(text[last:])
	return b.String(), replaced
}

// Apply interpolates the text and attribute values of every node of doc in
// place and returns the number of placeholders replaced. id attributes are
// left alone so that references stay valid.
func Apply(doc *svg.Document, data any) int {
	if doc == nil || doc.Root() == nil || data == nil {
		return 0
	}
	total := 0
	for n := range svg.IterNodes(doc.Root()) {
		var count int
		n.Text, count = interpolate(n.Text, data)
		total += count
		for name, value := range n.Attrs {
			if name == "id" {
				continue
			}
			if v, count := interpolate(value, data); count > 0 {
				n.Attrs[name] = v
				total += count
			}
		}
	}
	return total
}

// Lookup resolves a dotted path such as "items[0].name" in data decoded
// from JSON.
func Lookup(data any, path string) (any, bool) {
	current := data
	for _, segment := range strings.Split(path, ".") {
		name, indexes := parseSegment(segment)
		if name != "" {
			m, ok := current.(map[string]any)
			if !ok {
				return nil, false
			}
			if current, ok = m[name]; !ok {
				return nil, false
			}
		}
		for _, idxStr := range indexes {
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return nil, false
			}
			list, ok := current.([]any)
			if !ok || idx < 0 || idx >= len(list) {
				return nil, false
			}
			current = list[idx]
		}
	}
	return current, true
}

func parseSegment(segment string) (string, []string) {
	name, rest, found := strings.Cut(segment, "[")
	if !found {
		return segment, nil
	}
	var indexes []string
	rest = "[" + rest
	for strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end == -1 {
			break
		}
		indexes = append(indexes, rest[1:end])
		rest = rest[end+1:]
	}
	return name, indexes
}
