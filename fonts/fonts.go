// Package fonts maps SVG font families onto built-in TrueType/OpenType data.
//
// 内置字体：无衬线与等宽使用 Go 字体，衬线使用 Latin Modern Roman。
package fonts

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10bolditalic"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Generic is a generic font family.
type Generic int

const (
	SansSerif Generic = iota
	Serif
	Monospace
)

// Style selects one face of a family.
type Style struct {
	Italic bool
	Bold   bool
}

// builtin[generic][italic][bold]
var builtin = map[Generic][2][2][]byte{
	SansSerif: {{goregular.TTF, gobold.TTF}, {goitalic.TTF, gobolditalic.TTF}},
	Serif:     {{lmroman10regular.TTF, lmroman10bold.TTF}, {lmroman10italic.TTF, lmroman10bolditalic.TTF}},
	Monospace: {{gomono.TTF, gomonobold.TTF}, {gomonoitalic.TTF, gomonobolditalic.TTF}},
}

var builtinNames = map[string]Generic{
	"go":           SansSerif,
	"go-mono":      Monospace,
	"latin-modern": Serif,
}

// Classify maps a family name onto a generic family. Unknown names are
// sans-serif; ok reports whether the name was recognised.
func Classify(family string) (g Generic, ok bool) {
	name := strings.ToLower(strings.TrimSpace(family))
	switch {
	case name == "sans-serif" || name == "sans" || strings.Contains(name, "sans"):
		return SansSerif, true
	case name == "monospace" || strings.Contains(name, "mono") || strings.Contains(name, "courier") || strings.Contains(name, "code"):
		return Monospace, true
	case name == "serif" || strings.Contains(name, "serif") || strings.Contains(name, "times") ||
		strings.Contains(name, "roman") || strings.Contains(name, "georgia") || strings.Contains(name, "latin modern"):
		return Serif, true
	}
	if g, ok := builtinNames[name]; ok {
		return g, true
	}
	return SansSerif, false
}

// Builtin returns the data of a built-in face.
func Builtin(g Generic, style Style) []byte {
	faces := builtin[g]
	return faces[b2i(style.Italic)][b2i(style.Bold)]
}

// Registry resolves family names to font data. Registered fonts take
// precedence over the built-in ones. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	fonts map[string]map[Style][]byte
}

// NewRegistry returns an empty registry backed by the built-in fonts.
func NewRegistry() *Registry {
	return &Registry{fonts: map[string]map[Style][]byte{}}
}

// Register adds data as the given face of family.
func (r *Registry) Register(family string, style Style, data []byte) {
	key := strings.ToLower(strings.TrimSpace(family))
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fonts[key] == nil {
		r.fonts[key] = map[Style][]byte{}
	}
	r.fonts[key][style] = data
}

// RegisterFile reads a font file from disk and registers it.
func (r *Registry) RegisterFile(family string, style Style, path string) error {
	data, err := Load(path)
	if err != nil {
		return err
	}
	r.Register(family, style, data)
	return nil
}

// Lookup returns the font data for family in the requested style. A
// registered family missing the style falls back to its regular face.
// known is false when the family fell back to the default sans-serif.
func (r *Registry) Lookup(family string, style Style) (data []byte, known bool) {
	key := strings.ToLower(strings.TrimSpace(family))
	if r != nil {
		r.mu.RLock()
		faces := r.fonts[key]
		r.mu.RUnlock()
		if data, ok := faces[style]; ok {
			return data, true
		}
		if data, ok := faces[Style{}]; ok {
			return data, true
		}
	}
	g, known := Classify(family)
	return Builtin(g, style), known
}

// Load 读取字体数据，path 可写为 "embed:<名称>"（go、go-mono、latin-modern）或文件路径。
func Load(path string) ([]byte, error) {
	if name, ok := strings.CutPrefix(path, "embed:"); ok {
		g, found := builtinNames[strings.ToLower(name)]
		if !found {
			return nil, fmt.Errorf("未知内置字体 %s", name)
		}
		return Builtin(g, Style{}), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", path, err)
	}
	return data, nil
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
