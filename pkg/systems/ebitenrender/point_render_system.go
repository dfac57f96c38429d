// Package ebitenrender 基于 ebiten 的曲线场渲染系统
//
// 与 systems 包分开，离线导出与终端预览不依赖图形环境。
package ebitenrender

import (
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/tiranga/pkg/config"
	"github.com/decker502/tiranga/pkg/field"
	"github.com/decker502/tiranga/pkg/utils"
)

// maxBatchVertices 单次 DrawTriangles 的顶点上限（uint16 索引，4 顶点一个点）
const maxBatchVertices = (math.MaxUint16 / 4) * 4

// additiveBlend 加法混合（发光效果，重叠的点会越叠越亮）
var additiveBlend = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOne,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOne,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// PointRenderSystem 把曲线场的采样点绘制为圆形点精灵
//
// 每个采样点生成一个贴了圆形纹理的四边形（4 顶点 + 6 索引），
// 顶点颜色为采样点颜色，顶点 Alpha 为整条线的透明度（限幅到 [0, 1]）。
//
// 性能优化：
//   - 顶点和索引数组预分配并逐帧复用
//   - 所有点共享同一张纹理，整帧合并为尽量少的 DrawTriangles 调用
type PointRenderSystem struct {
	viewport   utils.Viewport
	pointSize  float64
	spriteSize int
	alphaTest  float64
	additive   bool

	sprite   *ebiten.Image // 圆形纹理，首次绘制时创建
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewPointRenderSystem 创建点精灵渲染系统
//
// 参数：
//   - rc: 渲染配置
//   - viewport: 场坐标到屏幕坐标的视口
//   - pointCapacity: 预分配的点数量（通常为 lineCount * segmentCount）
func NewPointRenderSystem(rc config.RenderConfig, viewport utils.Viewport, pointCapacity int) *PointRenderSystem {
	if pointCapacity*4 > maxBatchVertices {
		pointCapacity = maxBatchVertices / 4
	}
	return &PointRenderSystem{
		viewport:   viewport,
		pointSize:  rc.PointSize,
		spriteSize: rc.SpriteSize,
		alphaTest:  rc.AlphaTest,
		additive:   rc.Additive,
		vertices:   make([]ebiten.Vertex, 0, pointCapacity*4),
		indices:    make([]uint16, 0, pointCapacity*6),
	}
}

// SetViewport 更新视口（画布尺寸变化时调用）
func (s *PointRenderSystem) SetViewport(viewport utils.Viewport) {
	s.viewport = viewport
}

// Draw 绘制所有线的采样点
func (s *PointRenderSystem) Draw(screen *ebiten.Image, lines []*field.Line) {
	sprite := s.spriteImage()

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	if s.additive {
		op.Blend = additiveBlend
	}

	s.collect(lines, func() {
		screen.DrawTriangles(s.vertices, s.indices, sprite, op)
	})
}

// collect 为所有采样点生成顶点，每凑满一批（以及最后一批）调用一次 flush
func (s *PointRenderSystem) collect(lines []*field.Line, flush func()) {
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]

	for _, line := range lines {
		alpha := float32(utils.Clamp01(line.Opacity))
		if alpha == 0 {
			continue
		}
		for j, p := range line.Positions {
			if len(s.vertices)+4 > maxBatchVertices {
				flush()
				s.vertices = s.vertices[:0]
				s.indices = s.indices[:0]
			}
			sx, sy := s.viewport.WorldToScreen(p.X, p.Y)
			s.appendPoint(sx, sy, line.Colors[j], alpha)
		}
	}

	if len(s.vertices) > 0 {
		flush()
	}
}

// appendPoint 追加一个点精灵（以 (sx, sy) 为中心的正方形）
func (s *PointRenderSystem) appendPoint(sx, sy float64, c field.RGB, alpha float32) {
	half := s.pointSize * s.viewport.Scale / 2
	if half < 0.5 {
		half = 0.5
	}

	x0, y0 := float32(sx-half), float32(sy-half)
	x1, y1 := float32(sx+half), float32(sy+half)
	src := float32(s.spriteSize)
	r, g, b := float32(c.R), float32(c.G), float32(c.B)

	base := uint16(len(s.vertices))
	s.vertices = append(s.vertices,
		ebiten.Vertex{DstX: x0, DstY: y0, SrcX: 0, SrcY: 0, ColorR: r, ColorG: g, ColorB: b, ColorA: alpha},
		ebiten.Vertex{DstX: x1, DstY: y0, SrcX: src, SrcY: 0, ColorR: r, ColorG: g, ColorB: b, ColorA: alpha},
		ebiten.Vertex{DstX: x0, DstY: y1, SrcX: 0, SrcY: src, ColorR: r, ColorG: g, ColorB: b, ColorA: alpha},
		ebiten.Vertex{DstX: x1, DstY: y1, SrcX: src, SrcY: src, ColorR: r, ColorG: g, ColorB: b, ColorA: alpha},
	)
	s.indices = append(s.indices,
		base+0, base+1, base+2, // 第一个三角形
		base+1, base+3, base+2, // 第二个三角形
	)
}

func (s *PointRenderSystem) spriteImage() *ebiten.Image {
	if s.sprite == nil {
		s.sprite = ebiten.NewImageFromImage(utils.CircleSprite(s.spriteSize, s.alphaTest))
		log.Printf("[PointRenderSystem] Created %dx%d point sprite (alphaTest=%.2f)", s.spriteSize, s.spriteSize, s.alphaTest)
	}
	return s.sprite
}
