package field

import (
	"errors"
	"math"
	"testing"

	"github.com/decker502/tiranga/internal/noise"
	"github.com/decker502/tiranga/pkg/curve"
)

const canvasWidth = 1080.0

func newTestGenerator(t *testing.T, p Params) *Generator {
	t.Helper()
	g, err := NewGenerator(p, noise.NewPerlin(1))
	if err != nil {
		t.Fatalf("NewGenerator error: %v", err)
	}
	return g
}

// TestNewGeneratorErrors 测试无效参数
func TestNewGeneratorErrors(t *testing.T) {
	p := DefaultParams(canvasWidth)
	if _, err := NewGenerator(p, nil); !errors.Is(err, ErrNilNoise) {
		t.Errorf("nil noise: got %v, want ErrNilNoise", err)
	}

	bad := []struct {
		name   string
		mutate func(*Params)
	}{
		{"lineCount 为 0", func(p *Params) { p.LineCount = 0 }},
		{"segmentCount 为 0", func(p *Params) { p.SegmentCount = 0 }},
		{"水平范围为空", func(p *Params) { p.LeftX, p.RightX = 10, 10 }},
		{"未知曲线类型", func(p *Params) { p.CurveKind = "bezier" }},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams(canvasWidth)
			tt.mutate(&p)
			if _, err := NewGenerator(p, noise.NewPerlin(1)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// TestGenerateLengths 测试输出长度恒为 segmentCount
func TestGenerateLengths(t *testing.T) {
	for _, segments := range []int{1, 2, 5, 100, 257} {
		p := DefaultParams(canvasWidth)
		p.SegmentCount = segments
		g := newTestGenerator(t, p)

		for i := 0; i < p.LineCount; i += 7 {
			for _, tt := range []float64{0, 0.37, 12.5} {
				l := g.Generate(i, tt)
				if len(l.Positions) != segments || len(l.Colors) != segments {
					t.Fatalf("segments=%d i=%d t=%v: got %d positions, %d colors",
						segments, i, tt, len(l.Positions), len(l.Colors))
				}
			}
		}
	}
}

// TestGenerateAutoCenter 测试自动居中：平均 Y 恰好为 BaseY
func TestGenerateAutoCenter(t *testing.T) {
	for _, baseY := range []float64{0, 150} {
		p := DefaultParams(canvasWidth)
		p.BaseY = baseY
		g := newTestGenerator(t, p)

		for i := 0; i < p.LineCount; i++ {
			for _, tt := range []float64{0, 1.3, 7.77, 100} {
				l := g.Generate(i, tt)
				if mean := l.MeanY(); math.Abs(mean-baseY) > 1e-6 {
					t.Fatalf("baseY=%v i=%d t=%v: mean y = %v", baseY, i, tt, mean)
				}
				for _, pos := range l.Positions {
					if pos.Z != 0 {
						t.Fatalf("z = %v, want 0", pos.Z)
					}
				}
			}
		}
	}
}

// TestGenerateDeterministic 测试相同输入得到相同输出
func TestGenerateDeterministic(t *testing.T) {
	g := newTestGenerator(t, DefaultParams(canvasWidth))

	a := g.Generate(3, 4.2)
	_ = g.Generate(11, 0.5) // 中间调用不影响结果
	b := g.Generate(3, 4.2)

	if a.Opacity != b.Opacity {
		t.Errorf("opacity differs: %v vs %v", a.Opacity, b.Opacity)
	}
	for j := range a.Positions {
		if a.Positions[j] != b.Positions[j] || a.Colors[j] != b.Colors[j] {
			t.Fatalf("sample %d differs", j)
		}
	}
}

// TestGenerateIntoReusesBuffers 测试复用缓冲区与新分配结果一致
func TestGenerateIntoReusesBuffers(t *testing.T) {
	g := newTestGenerator(t, DefaultParams(canvasWidth))
	line := NewLine(100)
	posPtr := &line.Positions[0]

	g.GenerateInto(5, 1.0, line)
	g.GenerateInto(5, 2.0, line)
	fresh := g.Generate(5, 2.0)

	if &line.Positions[0] != posPtr {
		t.Error("GenerateInto reallocated a buffer with sufficient capacity")
	}
	if line.Index != 5 {
		t.Errorf("Index = %d, want 5", line.Index)
	}
	for j := range fresh.Positions {
		if fresh.Positions[j] != line.Positions[j] {
			t.Fatalf("sample %d differs between reused and fresh line", j)
		}
	}
}

// TestGenerateScenario 场景：lineCount=30、segmentCount=100，generate(0, 0)
func TestGenerateScenario(t *testing.T) {
	p := DefaultParams(canvasWidth)
	g := newTestGenerator(t, p)
	l := g.Generate(0, 0)

	if len(l.Positions) != 100 {
		t.Fatalf("got %d points", len(l.Positions))
	}
	if math.Abs(l.Positions[0].X-p.LeftX) > 1e-9 {
		t.Errorf("first x = %v, want %v", l.Positions[0].X, p.LeftX)
	}
	if math.Abs(l.Positions[99].X-p.RightX) > 1e-9 {
		t.Errorf("last x = %v, want %v", l.Positions[99].X, p.RightX)
	}
	for j := 1; j < 100; j++ {
		if l.Positions[j].X <= l.Positions[j-1].X {
			t.Fatalf("x not increasing at %d", j)
		}
	}

	// 颜色从橙过渡到白再到绿
	pal := p.Palette
	if l.Colors[0] != pal.Color1 {
		t.Errorf("first color = %+v, want saffron", l.Colors[0])
	}
	if l.Colors[99] != pal.Color3 {
		t.Errorf("last color = %+v, want green", l.Colors[99])
	}
	if l.Colors[44] != pal.Color2 {
		t.Errorf("color at tc=0.444 = %+v, want white", l.Colors[44])
	}

	// G 通道在橙→白段单调不减，B 通道在白→绿段单调不增
	for j := 1; j <= 44; j++ {
		if l.Colors[j].G < l.Colors[j-1].G {
			t.Fatalf("green channel decreases at %d in saffron→white", j)
		}
	}
	for j := 45; j < 100; j++ {
		if l.Colors[j].B > l.Colors[j-1].B {
			t.Fatalf("blue channel increases at %d in white→green", j)
		}
	}
}

// TestGenerateOpacityRange 测试透明度范围
func TestGenerateOpacityRange(t *testing.T) {
	p := DefaultParams(canvasWidth)
	g := newTestGenerator(t, p)
	lo, hi := p.BaseOpacity-p.Oscillation, p.BaseOpacity+p.Oscillation

	for i := 0; i < p.LineCount; i++ {
		for tt := 0.0; tt < 20; tt += 0.731 {
			o := g.Generate(i, tt).Opacity
			if o < lo-1e-12 || o > hi+1e-12 {
				t.Fatalf("i=%d t=%v opacity %v outside [%v, %v]", i, tt, o, lo, hi)
			}
		}
	}
}

// TestGenerateOpacityFade 测试中点远离中心时透明度向基础值衰减
func TestGenerateOpacityFade(t *testing.T) {
	p := DefaultParams(canvasWidth)
	p.JitterScale = 0
	p.MaxDist = 1 // 中点 |x| >= 1 时 fade = 0
	p.LeftX, p.RightX = 100, 300
	g := newTestGenerator(t, p)

	for tt := 0.0; tt < 5; tt += 0.5 {
		if o := g.Generate(2, tt).Opacity; math.Abs(o-p.BaseOpacity) > 1e-12 {
			t.Fatalf("t=%v opacity = %v, want base %v", tt, o, p.BaseOpacity)
		}
	}
}

// TestFadeScaleInvariance 场景：画布宽度加倍，水平范围与 maxDist 同比例放大
func TestFadeScaleInvariance(t *testing.T) {
	p1 := DefaultParams(canvasWidth)
	p2 := DefaultParams(canvasWidth * 2)

	if p2.LeftX != 2*p1.LeftX || p2.RightX != 2*p1.RightX || p2.MaxDist != 2*p1.MaxDist {
		t.Fatalf("span/maxDist not doubled: %+v vs %+v", p1, p2)
	}

	// 相同的比例位置得到相同的 fade，因此透明度不依赖画布尺寸
	flat := noise.ProviderFunc(func(x, y float64) float64 { return 0 })
	g1, _ := NewGenerator(p1, flat)
	g2, _ := NewGenerator(p2, flat)
	for _, tt := range []float64{0, 0.9, 3.3} {
		o1 := g1.Generate(4, tt).Opacity
		o2 := g2.Generate(4, tt).Opacity
		if math.Abs(o1-o2) > 0.02 {
			t.Errorf("t=%v opacity %v vs %v", tt, o1, o2)
		}
	}
}

// TestGenerateNonFiniteNoise 测试噪声返回 NaN 时位移按 0 处理
func TestGenerateNonFiniteNoise(t *testing.T) {
	p := DefaultParams(canvasWidth)
	nan := noise.ProviderFunc(func(x, y float64) float64 { return math.NaN() })
	g, err := NewGenerator(p, nan)
	if err != nil {
		t.Fatalf("NewGenerator error: %v", err)
	}

	l := g.Generate(0, 0)
	for j, pos := range l.Positions {
		if math.IsNaN(pos.X) || math.IsNaN(pos.Y) {
			t.Fatalf("NaN position at %d", j)
		}
		// 零位移 + 自动居中 = 一条水平直线
		if math.Abs(pos.Y-p.BaseY) > 1e-9 {
			t.Fatalf("y[%d] = %v, want flat line", j, pos.Y)
		}
	}
	if math.IsNaN(l.Opacity) {
		t.Error("NaN opacity")
	}
}

// TestGenerateCurveKinds 测试所有曲线类型都满足居中不变量
func TestGenerateCurveKinds(t *testing.T) {
	for _, kind := range []curve.Kind{curve.Centripetal, curve.Chordal, curve.Uniform, ""} {
		p := DefaultParams(canvasWidth)
		p.CurveKind = kind
		g := newTestGenerator(t, p)
		line := NewLine(p.SegmentCount)
		for i := 0; i < 5; i++ {
			g.GenerateInto(i, 2.5, line)
			if mean := line.MeanY(); math.Abs(mean) > 1e-6 {
				t.Fatalf("kind=%q i=%d mean y = %v", kind, i, mean)
			}
		}
	}
}
