package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/svgtext/binding"
	"github.com/ByLCY/svgtext/config"
	"github.com/ByLCY/svgtext/fonts"
	"github.com/ByLCY/svgtext/layout"
	"github.com/ByLCY/svgtext/renderer"
	canvasrenderer "github.com/ByLCY/svgtext/renderer/canvas"
	"github.com/ByLCY/svgtext/svg"
)

func main() {
	cfg := config.Load()

	input := flag.String("in", "examples/demo.svg", "SVG 文件路径")
	output := flag.String("out", "output/demo.pdf", "PDF 输出路径")
	debug := flag.String("debug", "", "文本包围盒调试 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到 SVG 的 JSON 数据")
	drawAsText := flag.Bool("text", cfg.DrawAsText, "直接填充字形（false 时按轮廓路径绘制）")
	dpi := flag.Float64("dpi", cfg.DPI, "用户单位与物理尺寸的换算分辨率")
	fontSize := flag.Float64("font-size", cfg.DefaultFontSize, "默认字号（用户单位）")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	registry, err := loadFonts(cfg)
	if err != nil {
		log.Fatalf("加载字体失败: %v", err)
	}

	r := canvasrenderer.NewRenderer(canvasrenderer.Options{
		Logger:          logger,
		DPI:             *dpi,
		DrawAsText:      *drawAsText,
		DefaultFontSize: *fontSize,
		Fonts:           registry,
		Meta: canvasrenderer.Meta{
			Title:   strings.TrimSuffix(filepath.Base(*input), filepath.Ext(*input)),
			Creator: "svgtext",
		},
	})
	if err := run(*input, *output, *debug, inputData, r); err != nil {
		log.Fatalf("生成 PDF 失败: %v", err)
	}
	fmt.Printf("已生成 PDF：%s\n", *output)
}

// run 串联解析、数据绑定、排版渲染与输出。
func run(inputPath, outputPath, debugPath string, data any, r renderer.Renderer) error {
	if r == nil {
		return fmt.Errorf("renderer 不能为空")
	}
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("无法打开 SVG 文件 %s: %w", inputPath, err)
	}
	defer file.Close()

	doc, err := svg.Parse(file)
	if err != nil {
		return fmt.Errorf("解析 SVG 失败: %w", err)
	}
	binding.Apply(doc, data)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	pdfBytes, err := r.Render(doc)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}

	if debugPath != "" {
		if err := writeDebug(layout.Report(doc), debugPath); err != nil {
			return err
		}
	}
	return nil
}

func writeDebug(reports []layout.BoxReport, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(reports, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

// loadFonts registers the SVGTEXT_FONTS entries as regular faces.
func loadFonts(cfg config.Config) (*fonts.Registry, error) {
	registry := fonts.NewRegistry()
	entries, err := cfg.Fonts()
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := registry.RegisterFile(e.Family, fonts.Style{}, e.Path); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
