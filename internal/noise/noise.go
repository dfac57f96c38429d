// Package noise 提供连续的二维噪声场，用于扰动每条线的中间控制点
//
// 支持两种实现：
//   - "perlin"：经典梯度噪声（github.com/aquilax/go-perlin）
//   - "simplex"：OpenSimplex 噪声（github.com/ojrac/opensimplex-go）
//
// 相同种子下结果确定，取值大致在 [-1, 1]。只要求连续，不要求与特定噪声表逐值一致。
package noise

import (
	"fmt"
	"math"
	"strings"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Kind 配置文件中的噪声类型名
type Kind string

const (
	KindPerlin  Kind = "perlin"
	KindSimplex Kind = "simplex"
)

// Perlin 参数：alpha 为每层振幅衰减，beta 为频率倍数，octaves 为叠加层数
const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = 3
)

// Provider 确定且连续的二维伪随机场
type Provider interface {
	Noise2D(x, y float64) float64
}

// ProviderFunc 把普通函数适配为 Provider
type ProviderFunc func(x, y float64) float64

// Noise2D 返回 f(x, y)
func (f ProviderFunc) Noise2D(x, y float64) float64 {
	return f(x, y)
}

// Perlin 基于 go-perlin 的噪声源
type Perlin struct {
	p *perlin.Perlin
}

// NewPerlin 创建 Perlin 噪声源
func NewPerlin(seed int64) *Perlin {
	return &Perlin{p: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)}
}

// Noise2D 在 (x, y) 处采样
func (n *Perlin) Noise2D(x, y float64) float64 {
	return n.p.Noise2D(x, y)
}

// Simplex 基于 OpenSimplex 的噪声源
type Simplex struct {
	n opensimplex.Noise
}

// NewSimplex 创建 OpenSimplex 噪声源
func NewSimplex(seed int64) *Simplex {
	return &Simplex{n: opensimplex.New(seed)}
}

// Noise2D 在 (x, y) 处采样
func (n *Simplex) Noise2D(x, y float64) float64 {
	return n.n.Eval2(x, y)
}

// ParseKind 解析噪声类型（忽略大小写与首尾空白）
// 空字符串表示 Perlin
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindPerlin:
		return KindPerlin, nil
	case KindSimplex:
		return KindSimplex, nil
	default:
		return "", fmt.Errorf("unknown noise kind %q (want %q or %q)", s, KindPerlin, KindSimplex)
	}
}

// New 按类型创建噪声源
//
// 参数：
//   - kind: 噪声类型（perlin / simplex，空字符串为 perlin）
//   - seed: 随机种子
//
// 返回：
//   - Provider: 已用 Finite 包装，永远不会返回 NaN 或 ±Inf
//   - error: 未知的噪声类型
func New(kind string, seed int64) (Provider, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return nil, err
	}

	switch k {
	case KindSimplex:
		return Finite(NewSimplex(seed)), nil
	default:
		return Finite(NewPerlin(seed)), nil
	}
}

// finite 把非有限的采样值替换为 0
type finite struct {
	inner Provider
}

// Finite 包装 p，NaN 或 ±Inf 的采样返回 0（即不产生位移）
// 重复包装时直接返回 p
func Finite(p Provider) Provider {
	if p == nil {
		return nil
	}
	if _, ok := p.(*finite); ok {
		return p
	}
	return &finite{inner: p}
}

func (f *finite) Noise2D(x, y float64) float64 {
	v := f.inner.Noise2D(x, y)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
