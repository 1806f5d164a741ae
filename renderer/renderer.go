package renderer

import "github.com/ByLCY/svgtext/svg"

// Renderer 将 SVG 文档输出为最终文件，例如 PDF。
// Render 返回生成的二进制数据（例如 PDF 字节切片）以及可能的错误。
type Renderer interface {
	Render(doc *svg.Document) ([]byte, error)
}
