package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds the environment defaults of the CLI. Flags override them.
type Config struct {
	// Rendering
	DPI             float64
	DefaultFontSize float64
	DrawAsText      bool

	// Fonts: comma separated "family=path" entries
	FontFiles string

	LogLevel slog.Level
}

func Load() Config {
	cfg := Config{
		DPI:             envFloat("SVGTEXT_DPI", 96),
		DefaultFontSize: envFloat("SVGTEXT_FONT_SIZE", 16),
		DrawAsText:      envBool("SVGTEXT_DRAW_AS_TEXT", true),
		FontFiles:       os.Getenv("SVGTEXT_FONTS"),
		LogLevel:        envLevel("SVGTEXT_LOG_LEVEL", slog.LevelInfo),
	}

	if cfg.DPI <= 0 {
		cfg.DPI = 96
	}
	if cfg.DefaultFontSize <= 0 {
		cfg.DefaultFontSize = 16
	}

	return cfg
}

// FontEntry is one family=path pair of FontFiles.
type FontEntry struct {
	Family string
	Path   string
}

// Fonts splits FontFiles into entries.
func (c Config) Fonts() ([]FontEntry, error) {
	var out []FontEntry
	for _, item := range strings.Split(c.FontFiles, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		family, path, ok := strings.Cut(item, "=")
		if !ok || strings.TrimSpace(family) == "" || strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("SVGTEXT_FONTS entry %q must be family=path", item)
		}
		out = append(out, FontEntry{Family: strings.TrimSpace(family), Path: strings.TrimSpace(path)})
	}
	return out, nil
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(v)); err == nil {
			return level
		}
	}
	return fallback
}
