package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ByLCY/svgtext/layout"
	canvasrenderer "github.com/ByLCY/svgtext/renderer/canvas"
)

func TestRunWritesPDFAndDebug(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.svg")
	src := `<svg width="200" height="100"><text id="greet" x="10" y="30">Hello ${name}</text></svg>`
	if err := os.WriteFile(in, []byte(src), 0o644); err != nil {
		t.Fatalf("写入输入文件失败: %v", err)
	}
	out := filepath.Join(dir, "out", "doc.pdf")
	debug := filepath.Join(dir, "debug", "boxes.json")

	r := canvasrenderer.NewRenderer(canvasrenderer.Options{})
	if err := run(in, out, debug, map[string]any{"name": "World"}, r); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if info, err := os.Stat(out); err != nil || info.Size() == 0 {
		t.Fatalf("PDF not written: %v", err)
	}
	raw, err := os.ReadFile(debug)
	if err != nil {
		t.Fatalf("debug JSON not written: %v", err)
	}
	var reports []layout.BoxReport
	if err := json.Unmarshal(raw, &reports); err != nil {
		t.Fatalf("invalid debug JSON: %v", err)
	}
	if len(reports) != 1 || reports[0].ID != "greet" || reports[0].Text != "Hello World" {
		t.Fatalf("unexpected reports %+v", reports)
	}
}

func TestRunErrors(t *testing.T) {
	if err := run("x.svg", "out.pdf", "", nil, nil); err == nil {
		t.Fatalf("expected error for nil renderer")
	}
	r := canvasrenderer.NewRenderer(canvasrenderer.Options{})
	if err := run(filepath.Join(t.TempDir(), "missing.svg"), "out.pdf", "", nil, r); err == nil {
		t.Fatalf("expected error for missing input")
	}
}
