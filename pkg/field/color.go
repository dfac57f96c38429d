package field

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/tiranga/pkg/utils"
)

// RGB 颜色值，各通道范围 [0, 1]
type RGB struct {
	R, G, B float64
}

// 三色渐变默认颜色（番红花橙 → 白 → 绿）
const (
	DefaultColor1Hex = "#FF9933"
	DefaultColor2Hex = "#FFFFFF"
	DefaultColor3Hex = "#138808"
)

// ParseHex 解析 "#RRGGBB" 形式的颜色
func ParseHex(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return fromColorful(c), nil
}

// MustParseHex 解析颜色，失败时 panic（仅用于常量）
func MustParseHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Lerp 在 c 与 o 之间做逐通道线性插值
// f <= 0 精确返回 c，f >= 1 精确返回 o，结果各通道限制在 [0, 1]
func (c RGB) Lerp(o RGB, f float64) RGB {
	if f <= 0 {
		return c
	}
	if f >= 1 {
		return o
	}
	return fromColorful(c.colorful().BlendRgb(o.colorful(), f).Clamped())
}

// Clamped 返回各通道限制到 [0, 1] 的颜色（NaN 视为 0）
func (c RGB) Clamped() RGB {
	return RGB{utils.Clamp01(c.R), utils.Clamp01(c.G), utils.Clamp01(c.B)}
}

// RGBA8 返回 8 位通道值，供图片导出与终端渲染使用
func (c RGB) RGBA8() (r, g, b uint8) {
	cc := c.Clamped()
	return uint8(cc.R*255 + 0.5), uint8(cc.G*255 + 0.5), uint8(cc.B*255 + 0.5)
}

// Hex 返回 "#rrggbb" 形式
func (c RGB) Hex() string {
	return c.Clamped().colorful().Hex()
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

func fromColorful(c colorful.Color) RGB {
	return RGB{R: c.R, G: c.G, B: c.B}.Clamped()
}

// Palette 三色渐变调色板
type Palette struct {
	Color1 RGB // 左侧实色（番红花橙）
	Color2 RGB // 中间实色（白）
	Color3 RGB // 右侧实色（绿）
}

// DefaultPalette 返回默认三色调色板
func DefaultPalette() Palette {
	return Palette{
		Color1: MustParseHex(DefaultColor1Hex),
		Color2: MustParseHex(DefaultColor2Hex),
		Color3: MustParseHex(DefaultColor3Hex),
	}
}

// ParsePalette 从三个十六进制颜色字符串构造调色板
func ParsePalette(c1, c2, c3 string) (Palette, error) {
	var p Palette
	var err error
	if p.Color1, err = ParseHex(c1); err != nil {
		return Palette{}, fmt.Errorf("color1: %w", err)
	}
	if p.Color2, err = ParseHex(c2); err != nil {
		return Palette{}, fmt.Errorf("color2: %w", err)
	}
	if p.Color3, err = ParseHex(c3); err != nil {
		return Palette{}, fmt.Errorf("color3: %w", err)
	}
	return p, nil
}
