package canvasrenderer

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ByLCY/svgtext/fonts"
	"github.com/ByLCY/svgtext/layout"
)

// fontCache loads one canvas font family per family name and style. Loaded
// families are shared between surfaces.
type fontCache struct {
	registry *fonts.Registry
	log      *slog.Logger

	mu       sync.Mutex
	families map[fontKey]*fontFamilyEntry
	fallback *fontFamilyEntry
}

type fontKey struct {
	family string
	style  fonts.Style
}

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

func newFontCache(registry *fonts.Registry, log *slog.Logger) *fontCache {
	return &fontCache{registry: registry, log: log, families: map[fontKey]*fontFamilyEntry{}}
}

func styleOf(slant layout.Slant, weight layout.Weight) fonts.Style {
	return fonts.Style{Italic: slant != layout.SlantNormal, Bold: weight == layout.WeightBold}
}

func canvasStyle(style fonts.Style) canvas.FontStyle {
	s := canvas.FontRegular
	if style.Bold {
		s = canvas.FontBold
	}
	if style.Italic {
		s |= canvas.FontItalic
	}
	return s
}

// face returns a face of family where one millimeter of the face is one
// user unit, so its metrics come out in user units.
func (c *fontCache) face(family string, style fonts.Style, size float64) *canvas.FontFace {
	entry := c.ensureFontFamily(family, style)
	return entry.family.Face(size*layout.MmToPt, entry.style, canvas.FontNormal)
}

// ensureFontFamily loads the family on first use. Data that fails to load
// is replaced by Go Regular.
func (c *fontCache) ensureFontFamily(name string, style fonts.Style) *fontFamilyEntry {
	key := fontKey{family: name, style: style}
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.families[key]; ok {
		return entry
	}
	data, known := c.registry.Lookup(name, style)
	if !known {
		c.log.Debug("unknown font family, using sans-serif", "family", name)
	}
	entry := &fontFamilyEntry{family: canvas.NewFontFamily(name), style: canvasStyle(style)}
	if err := entry.family.LoadFont(data, 0, entry.style); err != nil {
		c.log.Warn("font load failed, using fallback", "family", name, "err", err)
		fallback, fbErr := c.fallbackFamily()
		if fbErr != nil {
			// goregular is compiled in; this cannot fail in practice
			panic(fbErr)
		}
		entry = fallback
	}
	c.families[key] = entry
	return entry
}

func (c *fontCache) fallbackFamily() (*fontFamilyEntry, error) {
	if c.fallback != nil {
		return c.fallback, nil
	}
	family := canvas.NewFontFamily("Go")
	if err := family.LoadFont(goregular.TTF, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载内置字体失败: %w", err)
	}
	c.fallback = &fontFamilyEntry{family: family, style: canvas.FontRegular}
	return c.fallback, nil
}
