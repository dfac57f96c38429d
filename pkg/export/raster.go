// Package export 把曲线场离线渲染为图片序列、APNG 动画或 SVG 快照
//
// 光栅渲染与窗口版保持一致：
//   - 每帧先把累积画面按 trailAlpha 变暗（拖尾）
//   - 本帧的点先绘制到透明图层，再以加法混合叠加到累积画面
package export

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/decker502/tiranga/pkg/config"
	"github.com/decker502/tiranga/pkg/field"
	"github.com/decker502/tiranga/pkg/utils"
)

// RasterRenderer 离线光栅渲染器
type RasterRenderer struct {
	viewport  utils.Viewport
	radius    float64
	keep      float64 // 每帧保留的亮度比例 = 1 - trailAlpha
	additive  bool
	layer     *gg.Context // 本帧的点
	accum     *image.RGBA // 累积画面（带拖尾）
	frameSize image.Rectangle
}

// NewRasterRenderer 创建光栅渲染器
//
// 参数：
//   - cfg: 曲线场配置（画布尺寸、点大小、拖尾强度、混合方式）
//   - scale: 输出缩放，0.5 表示输出一半尺寸
func NewRasterRenderer(cfg *config.FieldConfig, scale float64) *RasterRenderer {
	vp := cfg.Viewport(scale)
	w, h := vp.PixelSize()
	w, h = max(w, 1), max(h, 1)

	r := &RasterRenderer{
		viewport:  vp,
		radius:    max(cfg.Render.PointSize*vp.Scale/2, 0.5),
		keep:      1 - utils.Clamp01(cfg.Render.TrailAlpha),
		additive:  cfg.Render.Additive,
		layer:     gg.NewContext(w, h),
		accum:     image.NewRGBA(image.Rect(0, 0, w, h)),
		frameSize: image.Rect(0, 0, w, h),
	}
	r.Reset()
	return r
}

// Reset 把累积画面清为不透明黑色
func (r *RasterRenderer) Reset() {
	pix := r.accum.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = 0, 0, 0, 0xff
	}
}

// Size 返回输出图片尺寸
func (r *RasterRenderer) Size() (w, h int) {
	return r.frameSize.Dx(), r.frameSize.Dy()
}

// DrawFrame 绘制一帧并叠加到累积画面
func (r *RasterRenderer) DrawFrame(lines []*field.Line) {
	r.layer.SetRGBA(0, 0, 0, 0)
	r.layer.Clear()

	for _, line := range lines {
		alpha := utils.Clamp01(line.Opacity)
		if alpha == 0 {
			continue
		}
		for j, p := range line.Positions {
			x, y := r.viewport.WorldToScreen(p.X, p.Y)
			c := line.Colors[j]
			r.layer.DrawCircle(x, y, r.radius)
			r.layer.SetRGBA(c.R, c.G, c.B, alpha)
			r.layer.Fill()
		}
	}

	layer, _ := r.layer.Image().(*image.RGBA)
	if layer == nil {
		layer = image.NewRGBA(r.frameSize)
	}
	composite(r.accum, layer, r.keep, r.additive)
}

// Image 返回累积画面（下一次 DrawFrame 会覆盖）
func (r *RasterRenderer) Image() *image.RGBA {
	return r.accum
}

// Snapshot 返回累积画面的副本
func (r *RasterRenderer) Snapshot() *image.RGBA {
	img := image.NewRGBA(r.accum.Rect)
	copy(img.Pix, r.accum.Pix)
	return img
}

// composite 把 layer 合成到 accum
// accum 先乘以 keep（拖尾），再叠加 layer：加法混合时逐通道相加并饱和，
// 否则按预乘 Alpha 做 source-over。
func composite(accum, layer *image.RGBA, keep float64, additive bool) {
	k := uint32(utils.Clamp01(keep)*256 + 0.5)
	dst, src := accum.Pix, layer.Pix

	for i := 0; i+3 < len(dst) && i+3 < len(src); i += 4 {
		for c := 0; c < 3; c++ {
			d := uint32(dst[i+c]) * k >> 8
			s := uint32(src[i+c])
			if additive {
				d += s
			} else {
				d = s + d*(255-uint32(src[i+3]))/255
			}
			dst[i+c] = uint8(min(d, 0xff))
		}
		dst[i+3] = 0xff
	}
}

// rgba8 将曲线颜色与透明度转换为 8 位颜色（非预乘）
func rgba8(c field.RGB, alpha float64) color.NRGBA {
	r, g, b := c.RGBA8()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(utils.Clamp01(alpha)*255 + 0.5)}
}
