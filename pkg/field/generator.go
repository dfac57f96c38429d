// Package field 实现曲线场生成器
//
// 给定全局时间 t 与线索引 i，生成一条经过噪声扰动、垂直自动居中、
// 按三色分区着色的流动曲线（segmentCount 个点 + 等长颜色序列 + 整线透明度）。
//
// 生成器是纯函数：同样的 (i, t) 永远得到同样的输出，
// 不同线之间没有共享的可变状态，因此可以按线并行生成。
package field

import (
	"errors"
	"fmt"
	"math"

	"github.com/decker502/tiranga/internal/noise"
	"github.com/decker502/tiranga/pkg/curve"
	"github.com/decker502/tiranga/pkg/utils"
)

// 每条线的控制点数量：左锚点 + 3 个噪声中点 + 右锚点
const (
	controlPointCount = 5
	midPointCount     = controlPointCount - 2
)

// ErrNilNoise 未提供噪声源时返回
var ErrNilNoise = errors.New("field generator needs a noise provider")

// Params 曲线场生成参数
// 所有字段都是显式配置，生成器不读取任何全局状态
type Params struct {
	LineCount    int // 线的数量
	SegmentCount int // 每条线的采样点数量

	LeftX   float64 // 水平范围左边界（场坐标）
	RightX  float64 // 水平范围右边界（场坐标）
	BaseY   float64 // 垂直中心，自动居中的目标值
	MaxDist float64 // 透明度衰减的最大距离

	Amplitude     float64 // 基础噪声振幅
	AmplitudeStep float64 // 每条线增加的振幅
	PhaseStep     float64 // 每条线的相位偏移
	OffsetScale   float64 // 垂直摆动幅度
	JitterScale   float64 // 水平抖动幅度

	NoiseScaleXBase float64 // 噪声 X 采样基础步长
	NoiseScaleXStep float64 // 每条线增加的噪声 X 步长
	NoiseScaleT     float64 // 每条线的噪声时间偏移

	CurveKind curve.Kind // 样条参数化方式
	Tension   float64    // 均匀参数化时的张力

	Zones   Zones   // 颜色分区边界
	Palette Palette // 三色调色板

	BaseOpacity  float64 // 基础透明度
	Oscillation  float64 // 透明度振荡幅度
	OscPhaseStep float64 // 每条线的透明度振荡相位
}

// DefaultParams 返回给定画布宽度下的默认参数
// 水平范围与最大衰减距离都由画布宽度推导：
// LeftX = -width/2，RightX = width/2，MaxDist = width * 2
func DefaultParams(canvasWidth float64) Params {
	leftX, rightX := utils.HorizontalSpan(canvasWidth)
	zones, _ := NewZones(DefaultBandWidths())

	return Params{
		LineCount:    30,
		SegmentCount: 100,

		LeftX:   leftX,
		RightX:  rightX,
		BaseY:   0,
		MaxDist: canvasWidth * 2,

		Amplitude:     200,
		AmplitudeStep: 23,
		PhaseStep:     0.2,
		OffsetScale:   12,
		JitterScale:   5,

		NoiseScaleXBase: 0.4,
		NoiseScaleXStep: 0.05,
		NoiseScaleT:     0.07,

		CurveKind: curve.Centripetal,
		Tension:   curve.DefaultTension,

		Zones:   zones,
		Palette: DefaultPalette(),

		BaseOpacity:  0.9,
		Oscillation:  0.35,
		OscPhaseStep: 0.4,
	}
}

// Validate 检查参数中无法降级处理的错误
func (p Params) Validate() error {
	if p.LineCount < 1 {
		return fmt.Errorf("lineCount must be >= 1, got %d", p.LineCount)
	}
	if p.SegmentCount < 1 {
		return fmt.Errorf("segmentCount must be >= 1, got %d", p.SegmentCount)
	}
	if !(p.RightX > p.LeftX) {
		return fmt.Errorf("horizontal span is empty: leftX=%v rightX=%v", p.LeftX, p.RightX)
	}
	if _, err := curve.ParseKind(string(p.CurveKind)); err != nil {
		return err
	}
	return nil
}

// Line 一条线在某一帧的采样结果
// Positions 与 Colors 是调用方持有的复用缓冲区，每帧原地覆盖
type Line struct {
	Index     int          // 线索引
	Positions []curve.Vec3 // 采样点位置（从左到右）
	Colors    []RGB        // 与 Positions 等长的颜色
	Opacity   float64      // 整条线的透明度（未限幅）

	spline *curve.CatmullRom
}

// NewLine 创建预分配好缓冲区的线
func NewLine(segmentCount int) *Line {
	return &Line{
		Positions: make([]curve.Vec3, segmentCount),
		Colors:    make([]RGB, segmentCount),
	}
}

// MeanY 返回所有采样点 Y 的平均值
func (l *Line) MeanY() float64 {
	if len(l.Positions) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range l.Positions {
		sum += p.Y
	}
	return sum / float64(len(l.Positions))
}

// Generator 曲线场生成器
// 创建后只读，Generate / GenerateInto 可以在多个 goroutine 中并发调用
// （每个 goroutine 使用各自的 Line）
type Generator struct {
	params Params
	noise  noise.Provider
	colors []RGB // 颜色只依赖 tc，构造时预计算
}

// NewGenerator 创建曲线场生成器
//
// 参数：
//   - p: 生成参数
//   - n: 噪声源，非有限值会被替换为 0
//
// 返回：
//   - *Generator: 生成器
//   - error: 参数无效或噪声源为 nil
func NewGenerator(p Params, n noise.Provider) (*Generator, error) {
	if n == nil {
		return nil, ErrNilNoise
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid field params: %w", err)
	}
	p.CurveKind, _ = curve.ParseKind(string(p.CurveKind))

	g := &Generator{
		params: p,
		noise:  noise.Finite(n),
		colors: make([]RGB, p.SegmentCount),
	}
	p.Zones.Fill(g.colors, p.Palette)
	return g, nil
}

// Params 返回生成参数
func (g *Generator) Params() Params {
	return g.params
}

// Generate 生成第 i 条线在时间 t 的采样，返回新分配的 Line
func (g *Generator) Generate(i int, t float64) *Line {
	l := NewLine(g.params.SegmentCount)
	g.GenerateInto(i, t, l)
	return l
}

// GenerateInto 生成第 i 条线在时间 t 的采样，写入 dst 的缓冲区
//
// 步骤：
//  1. 计算线参数（振幅、相位、垂直摆动、水平抖动）
//  2. 构造 5 个控制点（锚点 + 3 个噪声中点）
//  3. Catmull-Rom 拟合并等间距采样 segmentCount 个点
//  4. 自动居中：减去 Y 均值，使平均 Y 恰好为 BaseY
//  5. 按分区着色
//  6. 计算随时间振荡、随中点距离衰减的整线透明度
func (g *Generator) GenerateInto(i int, t float64, dst *Line) {
	p := &g.params
	n := p.SegmentCount

	// 1. 线参数
	fi := float64(i)
	amplitude := p.Amplitude + fi*p.AmplitudeStep
	phaseShift := fi * p.PhaseStep
	verticalOffset := math.Sin(t*2+phaseShift) * p.OffsetScale
	horizontalJitter := math.Sin(t*1.5+phaseShift) * p.JitterScale

	// 2. 控制点
	var ctrl [controlPointCount]curve.Vec3
	anchorY := p.BaseY + verticalOffset
	ctrl[0] = curve.Vec3{X: p.LeftX + horizontalJitter, Y: anchorY}
	ctrl[controlPointCount-1] = curve.Vec3{X: p.RightX + horizontalJitter, Y: anchorY}

	span := p.RightX - p.LeftX
	noiseScaleX := p.NoiseScaleXBase + fi*p.NoiseScaleXStep
	noiseT := t + fi*p.NoiseScaleT
	for j := 0; j < midPointCount; j++ {
		frac := float64(j+1) / float64(controlPointCount-1)
		x := p.LeftX + frac*span + horizontalJitter
		y := anchorY + g.noise.Noise2D(float64(j)*noiseScaleX, noiseT)*amplitude
		ctrl[j+1] = curve.Vec3{X: x, Y: y}
	}

	// 3. 样条拟合与采样
	if dst.spline == nil || dst.spline.Kind() != p.CurveKind || dst.spline.Tension() != p.Tension {
		// 控制点数量恒为 5，不会出错
		dst.spline, _ = curve.NewCatmullRom(ctrl[:], p.CurveKind, p.Tension)
	} else {
		_ = dst.spline.Reset(ctrl[:])
	}
	dst.Positions = dst.spline.Points(n-1, dst.Positions)

	// 4. 自动居中
	shiftY := p.BaseY - dst.MeanY()
	for j := range dst.Positions {
		dst.Positions[j].Y += shiftY
		dst.Positions[j].Z = 0
	}

	// 5. 着色（预计算表）
	if cap(dst.Colors) < n {
		dst.Colors = make([]RGB, n)
	}
	dst.Colors = dst.Colors[:n]
	copy(dst.Colors, g.colors)

	// 6. 透明度
	center := dst.Positions[n/2]
	fade := utils.LinearFade(center.X, p.MaxDist)
	dst.Opacity = p.BaseOpacity + p.Oscillation*math.Sin(t*4+fi*p.OscPhaseStep)*fade

	dst.Index = i
}
