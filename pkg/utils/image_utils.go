package utils

import (
	"image"

	"golang.org/x/image/vector"
)

// circleKappa 用 4 段三次贝塞尔曲线近似圆时的控制点系数
const circleKappa = 0.5522847498

// CircleSprite 创建点精灵使用的圆形纹理
// 实心圆与 size×size 正方形的四边相切，边缘抗锯齿
//
// 参数：
//   - size: 纹理边长（像素），小于 1 时按 1 处理
//   - alphaTest: 覆盖率阈值 [0, 1]，低于阈值的像素置为完全透明
//
// 返回：
//   - *image.Alpha 遮罩，由调用方按顶点颜色着色
func CircleSprite(size int, alphaTest float64) *image.Alpha {
	if size < 1 {
		size = 1
	}

	r := float32(size) / 2
	cx, cy := r, r
	k := r * circleKappa

	z := vector.NewRasterizer(size, size)
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, size, size))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	threshold := uint8(Clamp01(alphaTest) * 255)
	if threshold > 0 {
		for i, a := range mask.Pix {
			if a < threshold {
				mask.Pix[i] = 0
			}
		}
	}

	return mask
}
