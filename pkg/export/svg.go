package export

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/decker502/tiranga/pkg/config"
	"github.com/decker502/tiranga/pkg/field"
)

// WriteSVG 把一帧的采样点写成 SVG（黑色背景 + 每个采样点一个圆）
//
// SVG 没有拖尾，只包含当前帧；加法混合用 mix-blend-mode: screen 近似。
//
// 参数：
//   - w: 输出
//   - cfg: 曲线场配置
//   - lines: 当前帧的所有线
//   - scale: 输出缩放
func WriteSVG(w io.Writer, cfg *config.FieldConfig, lines []*field.Line, scale float64) error {
	vp := cfg.Viewport(scale)
	width, height := vp.PixelSize()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid svg size %dx%d", width, height)
	}
	radius := max(int(math.Round(cfg.Render.PointSize*vp.Scale/2)), 1)

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Title(cfg.Window.Title)
	canvas.Rect(0, 0, width, height, canvas.RGB(0, 0, 0))

	if cfg.Render.Additive {
		canvas.Gstyle("mix-blend-mode:screen")
	} else {
		canvas.Group()
	}
	for _, line := range lines {
		for j, p := range line.Positions {
			x, y := vp.WorldToScreen(p.X, p.Y)
			c := rgba8(line.Colors[j], line.Opacity)
			if c.A == 0 {
				break
			}
			canvas.Circle(int(math.Round(x)), int(math.Round(y)), radius,
				canvas.RGBA(int(c.R), int(c.G), int(c.B), float64(c.A)/255))
		}
	}
	canvas.Gend()

	canvas.End()
	return nil
}
