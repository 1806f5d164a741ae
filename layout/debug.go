package layout

import (
	"encoding/json"
	"os"

	"github.com/ByLCY/svgtext/geom"
	"github.com/ByLCY/svgtext/svg"
)

// BoxReport 记录一个文本节点计算出的包围盒，供调试 JSON 使用。
type BoxReport struct {
	Node int        `json:"node"`
	ID   string     `json:"id,omitempty"`
	Tag  string     `json:"tag"`
	Text string     `json:"text,omitempty"`
	Min  geom.Point `json:"min"`
	Max  geom.Point `json:"max"`
	// Width 与 Height 为包围盒尺寸（用户单位）。
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Report 收集文档中所有已计算出包围盒的节点（文档顺序）。
func Report(doc *svg.Document) []BoxReport {
	var out []BoxReport
	if doc == nil {
		return out
	}
	for n := range svg.IterNodes(doc.Root()) {
		if !n.TextBoundingBox.Valid() {
			continue
		}
		out = append(out, BoxReport{
			Node:   int(n.ID),
			ID:     n.Get("id"),
			Tag:    n.Tag,
			Text:   n.Text,
			Min:    n.TextBoundingBox.Min,
			Max:    n.TextBoundingBox.Max,
			Width:  n.TextBoundingBox.Width(),
			Height: n.TextBoundingBox.Height(),
		})
	}
	return out
}

// WriteDebugJSON 将包围盒报告输出为 JSON，便于调试或可视化。
func WriteDebugJSON(reports []BoxReport, path string) error {
	if reports == nil {
		reports = []BoxReport{}
	}
	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
