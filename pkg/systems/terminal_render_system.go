package systems

import (
	"github.com/gdamore/tcell/v2"

	"github.com/decker502/tiranga/pkg/field"
	"github.com/decker502/tiranga/pkg/utils"
)

// 亮度从低到高对应的字符
var shadeRunes = []rune{' ', '░', '▒', '▓', '█'}

// termCell 终端单元格的颜色累积值（加法混合，未限幅）
type termCell struct {
	r, g, b float64
}

// TerminalRenderSystem 在终端中预览曲线场
//
// 画布按比例映射到终端网格，每个采样点把颜色 × 透明度累加到所在单元格，
// 每帧先按 fade 衰减已有的累积值，形成与窗口版相同的拖尾效果。
type TerminalRenderSystem struct {
	screen tcell.Screen
	canvas utils.Viewport
	fade   float64 // 每帧衰减比例 [0, 1]
	gain   float64 // 单个采样点贡献的亮度

	cols, rows int
	cells      []termCell
}

// NewTerminalRenderSystem 创建终端渲染系统
//
// 参数：
//   - screen: 已初始化的 tcell 屏幕
//   - canvasWidth, canvasHeight: 逻辑画布尺寸（场坐标单位）
//   - fade: 每帧衰减比例，1 表示不保留拖尾
func NewTerminalRenderSystem(screen tcell.Screen, canvasWidth, canvasHeight, fade float64) *TerminalRenderSystem {
	s := &TerminalRenderSystem{
		screen: screen,
		canvas: utils.NewViewport(canvasWidth, canvasHeight, 1),
		fade:   utils.Clamp01(fade),
		gain:   0.35,
	}
	s.resize()
	return s
}

// resize 根据终端尺寸重建单元格缓冲区
func (s *TerminalRenderSystem) resize() {
	cols, rows := s.screen.Size()
	if cols == s.cols && rows == s.rows && s.cells != nil {
		return
	}
	s.cols, s.rows = cols, rows
	s.cells = make([]termCell, max(cols*rows, 0))
}

// Resize 终端尺寸变化时调用（EventResize）
func (s *TerminalRenderSystem) Resize() {
	s.resize()
	s.screen.Sync()
}

// cellAt 将场坐标映射到终端单元格
func (s *TerminalRenderSystem) cellAt(x, y float64) (col, row int, ok bool) {
	if s.cols <= 0 || s.rows <= 0 {
		return 0, 0, false
	}
	sx, sy := s.canvas.WorldToScreen(x, y)
	col = int(sx / s.canvas.Width * float64(s.cols))
	row = int(sy / s.canvas.Height * float64(s.rows))
	if col < 0 || col >= s.cols || row < 0 || row >= s.rows {
		return 0, 0, false
	}
	return col, row, true
}

// Draw 累积一帧的采样点并刷新终端
func (s *TerminalRenderSystem) Draw(lines []*field.Line) {
	keep := 1 - s.fade
	for i := range s.cells {
		s.cells[i].r *= keep
		s.cells[i].g *= keep
		s.cells[i].b *= keep
	}

	for _, line := range lines {
		alpha := utils.Clamp01(line.Opacity) * s.gain
		if alpha == 0 {
			continue
		}
		for j, p := range line.Positions {
			col, row, ok := s.cellAt(p.X, p.Y)
			if !ok {
				continue
			}
			c := &s.cells[row*s.cols+col]
			c.r += line.Colors[j].R * alpha
			c.g += line.Colors[j].G * alpha
			c.b += line.Colors[j].B * alpha
		}
	}

	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			ch, style := s.cellStyle(s.cells[row*s.cols+col])
			s.screen.SetContent(col, row, ch, nil, style)
		}
	}
	s.screen.Show()
}

// cellStyle 把累积颜色转换为字符和前景色
func (s *TerminalRenderSystem) cellStyle(c termCell) (rune, tcell.Style) {
	style := tcell.StyleDefault.Background(tcell.ColorBlack)

	level := max(c.r, c.g, c.b)
	idx := int(utils.Clamp01(level) * float64(len(shadeRunes)-1))
	if idx == 0 {
		return ' ', style
	}

	rgb := field.RGB{R: c.r, G: c.g, B: c.b}
	if level > 1 {
		// 饱和时保持色相，只限制亮度
		rgb = field.RGB{R: c.r / level, G: c.g / level, B: c.b / level}
	}
	r, g, b := rgb.RGBA8()
	return shadeRunes[idx], style.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}

// Clear 清空累积值与终端
func (s *TerminalRenderSystem) Clear() {
	for i := range s.cells {
		s.cells[i] = termCell{}
	}
	s.screen.Clear()
}
