// Package utils 提供曲线场渲染中常用的工具函数
//
// coordinates.go 提供坐标转换工具，用于把曲线场的"场坐标"映射到屏幕像素。
//
// # 坐标系统概述
//
//   - **场坐标**：原点位于画布中心，X 向右、Y 向上（正交相机，左右边界 ±width/2）
//   - **屏幕坐标**：原点位于画布左上角，X 向右、Y 向下（Ebiten / gg / SVG 的默认行为）
//
// # 核心转换公式
//
//	screenX = (x + width/2) * scale
//	screenY = (height/2 - y) * scale
//
// 其中 scale 为输出缩放（窗口和导出图片可以小于逻辑画布）。
package utils

// Viewport 描述逻辑画布与输出缩放
type Viewport struct {
	Width  float64 // 逻辑画布宽度（场坐标单位）
	Height float64 // 逻辑画布高度（场坐标单位）
	Scale  float64 // 输出缩放，0 视为 1
}

// NewViewport 创建视口
func NewViewport(width, height, scale float64) Viewport {
	if scale <= 0 {
		scale = 1
	}
	return Viewport{Width: width, Height: height, Scale: scale}
}

// WorldToScreen 将场坐标转换为屏幕坐标
//
// 参数：
//   - x, y: 场坐标（原点在画布中心，Y 向上）
//
// 返回：
//   - screenX, screenY: 屏幕坐标（原点在左上角，Y 向下）
func (v Viewport) WorldToScreen(x, y float64) (screenX, screenY float64) {
	s := v.scale()
	return (x + v.Width/2) * s, (v.Height/2 - y) * s
}

// ScreenToWorld 将屏幕坐标转换回场坐标（WorldToScreen 的逆变换）
func (v Viewport) ScreenToWorld(screenX, screenY float64) (x, y float64) {
	s := v.scale()
	return screenX/s - v.Width/2, v.Height/2 - screenY/s
}

// PixelSize 返回输出图片的像素尺寸
func (v Viewport) PixelSize() (w, h int) {
	s := v.scale()
	return int(v.Width*s + 0.5), int(v.Height*s + 0.5)
}

// HorizontalSpan 返回画布的水平场坐标范围 [-width/2, width/2]
func HorizontalSpan(width float64) (leftX, rightX float64) {
	return -width / 2, width / 2
}

func (v Viewport) scale() float64 {
	if v.Scale <= 0 {
		return 1
	}
	return v.Scale
}
