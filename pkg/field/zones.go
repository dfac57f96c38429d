package field

import (
	"fmt"

	"github.com/decker502/tiranga/pkg/utils"
)

// BandWidths 颜色分区宽度配置（归一化曲线参数 [0, 1] 上的宽度）
//
// 五个分区从左到右依次为：
//
//	实色 color1 | color1→color2 渐变 | 实色 color2 | color2→color3 渐变 | 实色 color3
//
// 前四个宽度由配置给出，第五个（RightSolid）由 1 减去前四者之和推导。
type BandWidths struct {
	LeftSolid   float64 `yaml:"leftSolid" toml:"leftSolid"`
	LeftBlend   float64 `yaml:"leftBlend" toml:"leftBlend"`
	CenterWhite float64 `yaml:"centerWhite" toml:"centerWhite"`
	RightBlend  float64 `yaml:"rightBlend" toml:"rightBlend"`
}

// DefaultBandWidths 默认分区宽度，推导出的右侧实色宽度为 0.40
func DefaultBandWidths() BandWidths {
	return BandWidths{
		LeftSolid:   0.28,
		LeftBlend:   0.15,
		CenterWhite: 0.02,
		RightBlend:  0.15,
	}
}

// Sum 返回前四个分区宽度之和
func (w BandWidths) Sum() float64 {
	return w.LeftSolid + w.LeftBlend + w.CenterWhite + w.RightBlend
}

// Zones 颜色分区边界 A <= B <= C <= D，以及推导出的右侧实色宽度
type Zones struct {
	A, B, C, D float64
	RightSolid float64
}

// NewZones 由分区宽度计算分区边界
//
// 配置不满足约束时不会失败，而是限幅并返回警告：
//   - 负宽度按 0 处理
//   - 宽度之和超过 1 时，右侧实色宽度限制为 0
//
// 参数：
//   - w: 分区宽度配置
//
// 返回：
//   - Zones: 分区边界
//   - []string: 配置警告（无警告时为 nil）
func NewZones(w BandWidths) (Zones, []string) {
	var warnings []string

	clampWidth := func(name string, v float64) float64 {
		if !utils.IsFinite(v) || v < 0 {
			warnings = append(warnings, fmt.Sprintf("zone width %s=%v is invalid, using 0", name, v))
			return 0
		}
		return v
	}

	ls := clampWidth("leftSolid", w.LeftSolid)
	lb := clampWidth("leftBlend", w.LeftBlend)
	cw := clampWidth("centerWhite", w.CenterWhite)
	rb := clampWidth("rightBlend", w.RightBlend)

	z := Zones{A: ls}
	z.B = z.A + lb
	z.C = z.B + cw
	z.D = z.C + rb

	rest := 1 - z.D
	if rest < 0 {
		warnings = append(warnings, fmt.Sprintf(
			"zone widths sum to %.2f (> 1), right solid band clamped to 0", z.D))
		rest = 0
	}
	z.RightSolid = rest

	return z, warnings
}

// ColorAt 返回归一化位置 tc ∈ [0, 1] 处的颜色
//
//   - tc <= A：color1
//   - A < tc <= B：color1 → color2 线性插值
//   - B < tc <= C：color2
//   - C < tc <= D：color2 → color3 线性插值
//   - tc > D：color3
//
// 零宽度渐变区的插值比例按 1 处理（即取远端颜色），不会产生 NaN
func (z Zones) ColorAt(tc float64, p Palette) RGB {
	switch {
	case tc <= z.A:
		return p.Color1
	case tc <= z.B:
		return p.Color1.Lerp(p.Color2, utils.InverseLerp(z.A, z.B, tc))
	case tc <= z.C:
		return p.Color2
	case tc <= z.D:
		return p.Color2.Lerp(p.Color3, utils.InverseLerp(z.C, z.D, tc))
	default:
		return p.Color3
	}
}

// Fill 按 tc = j/(n-1) 为 n 个采样点填充颜色
// n == 1 时唯一的采样点 tc = 0
func (z Zones) Fill(dst []RGB, p Palette) {
	n := len(dst)
	for j := range dst {
		tc := 0.0
		if n > 1 {
			tc = float64(j) / float64(n-1)
		}
		dst[j] = z.ColorAt(tc, p)
	}
}
