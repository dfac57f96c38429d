// Package curve 提供穿过控制点的平滑插值曲线
//
// 曲线场的每条线由 5 个控制点拟合而成，本包实现开放（非闭合）的
// Catmull-Rom 样条，支持三种参数化方式：
//   - Centripetal：向心参数化（默认），节点间隔 = 距离^0.5，不会产生尖点与自交
//   - Chordal：弦长参数化，节点间隔 = 距离
//   - Uniform：均匀参数化，切线由 tension 控制
//
// 首尾端点通过反射补出虚拟控制点（2*p0-p1、2*pn-pn-1），
// 因此曲线一定经过所有给定控制点。
package curve

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrTooFewPoints 控制点少于 2 个时返回
var ErrTooFewPoints = errors.New("catmull-rom curve needs at least 2 control points")

// minKnotInterval 节点间隔下限，低于此值视为控制点重合
const minKnotInterval = 1e-4

// Vec3 三维点（曲线场中 Z 恒为 0）
type Vec3 struct {
	X, Y, Z float64
}

// Add 向量加法
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub 向量减法
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale 标量乘法
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// DistanceToSquared 返回两点距离的平方
func (v Vec3) DistanceToSquared(o Vec3) float64 {
	d := v.Sub(o)
	return d.X*d.X + d.Y*d.Y + d.Z*d.Z
}

// Kind 曲线参数化方式
type Kind string

const (
	Centripetal Kind = "centripetal"
	Chordal     Kind = "chordal"
	Uniform     Kind = "catmullrom"
)

// DefaultTension 均匀参数化时的默认张力
const DefaultTension = 0.5

// ParseKind 解析配置中的曲线类型，空字符串视为 Centripetal
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", Centripetal:
		return Centripetal, nil
	case Chordal:
		return Chordal, nil
	case Uniform, "uniform":
		return Uniform, nil
	default:
		return "", fmt.Errorf("unknown curve type %q (want centripetal, chordal or catmullrom)", s)
	}
}

// CatmullRom 开放 Catmull-Rom 样条
// 创建后只读，可在多个 goroutine 间共享
type CatmullRom struct {
	points  []Vec3
	kind    Kind
	tension float64
}

// NewCatmullRom 创建 Catmull-Rom 样条
//
// 参数：
//   - points: 控制点（至少 2 个），会被复制一份
//   - kind: 参数化方式
//   - tension: 仅 Uniform 使用
//
// 返回：
//   - *CatmullRom: 样条实例
//   - error: 控制点不足时返回 ErrTooFewPoints
func NewCatmullRom(points []Vec3, kind Kind, tension float64) (*CatmullRom, error) {
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}
	c := &CatmullRom{kind: kind, tension: tension}
	c.points = append(c.points, points...)
	return c, nil
}

// Reset 用新的控制点重建样条，复用内部切片（每帧调用时避免分配）
func (c *CatmullRom) Reset(points []Vec3) error {
	if len(points) < 2 {
		return ErrTooFewPoints
	}
	c.points = append(c.points[:0], points...)
	return nil
}

// Kind 返回参数化方式
func (c *CatmullRom) Kind() Kind { return c.kind }

// Tension 返回张力
func (c *CatmullRom) Tension() float64 { return c.tension }

// Point 返回参数 u ∈ [0, 1] 处的曲线点
// u 超出范围时被限制到端点
func (c *CatmullRom) Point(u float64) Vec3 {
	pts := c.points
	l := len(pts)

	u = math.Max(0, math.Min(1, u))
	p := float64(l-1) * u
	intPoint := int(math.Floor(p))
	weight := p - float64(intPoint)

	// 终点：落在最后一个区段的末尾
	if intPoint >= l-1 {
		intPoint = l - 2
		weight = 1
	}

	// 首尾虚拟控制点通过反射得到
	var p0, p3 Vec3
	if intPoint > 0 {
		p0 = pts[intPoint-1]
	} else {
		p0 = pts[0].Scale(2).Sub(pts[1])
	}
	p1 := pts[intPoint]
	p2 := pts[intPoint+1]
	if intPoint+2 < l {
		p3 = pts[intPoint+2]
	} else {
		p3 = pts[l-1].Scale(2).Sub(pts[l-2])
	}

	var px, py, pz cubicPoly
	switch c.kind {
	case Centripetal, Chordal:
		pow := 0.25
		if c.kind == Chordal {
			pow = 0.5
		}
		dt0 := math.Pow(p0.DistanceToSquared(p1), pow)
		dt1 := math.Pow(p1.DistanceToSquared(p2), pow)
		dt2 := math.Pow(p2.DistanceToSquared(p3), pow)

		// 控制点重合时回退到相邻间隔
		if dt1 < minKnotInterval {
			dt1 = 1.0
		}
		if dt0 < minKnotInterval {
			dt0 = dt1
		}
		if dt2 < minKnotInterval {
			dt2 = dt1
		}

		px.initNonuniform(p0.X, p1.X, p2.X, p3.X, dt0, dt1, dt2)
		py.initNonuniform(p0.Y, p1.Y, p2.Y, p3.Y, dt0, dt1, dt2)
		pz.initNonuniform(p0.Z, p1.Z, p2.Z, p3.Z, dt0, dt1, dt2)
	default:
		px.initCatmullRom(p0.X, p1.X, p2.X, p3.X, c.tension)
		py.initCatmullRom(p0.Y, p1.Y, p2.Y, p3.Y, c.tension)
		pz.initCatmullRom(p0.Z, p1.Z, p2.Z, p3.Z, c.tension)
	}

	return Vec3{px.calc(weight), py.calc(weight), pz.calc(weight)}
}

// Points 在 [0, 1] 上等间距采样 divisions+1 个点
//
// 参数：
//   - divisions: 区段数（采样点数 - 1），小于 0 视为 0
//   - dst: 可复用的输出切片，容量不足时重新分配
//
// 返回：
//   - 长度为 divisions+1 的采样点
func (c *CatmullRom) Points(divisions int, dst []Vec3) []Vec3 {
	if divisions < 0 {
		divisions = 0
	}
	n := divisions + 1
	if cap(dst) < n {
		dst = make([]Vec3, n)
	}
	dst = dst[:n]

	if divisions == 0 {
		dst[0] = c.Point(0)
		return dst
	}
	for d := 0; d <= divisions; d++ {
		dst[d] = c.Point(float64(d) / float64(divisions))
	}
	return dst
}

// cubicPoly 三次多项式 c0 + c1*t + c2*t² + c3*t³（Hermite 形式）
type cubicPoly struct {
	c0, c1, c2, c3 float64
}

// init 由端点 x0、x1 与端点切线 t0、t1 构造 Hermite 多项式
func (p *cubicPoly) init(x0, x1, t0, t1 float64) {
	p.c0 = x0
	p.c1 = t0
	p.c2 = -3*x0 + 3*x1 - 2*t0 - t1
	p.c3 = 2*x0 - 2*x1 + t0 + t1
}

func (p *cubicPoly) initCatmullRom(x0, x1, x2, x3, tension float64) {
	p.init(x1, x2, tension*(x2-x0), tension*(x3-x1))
}

// initNonuniform 非均匀节点间隔下的切线，并重新缩放到 [0, 1] 参数区间
func (p *cubicPoly) initNonuniform(x0, x1, x2, x3, dt0, dt1, dt2 float64) {
	t1 := (x1-x0)/dt0 - (x2-x0)/(dt0+dt1) + (x2-x1)/dt1
	t2 := (x2-x1)/dt1 - (x3-x1)/(dt1+dt2) + (x3-x2)/dt2

	t1 *= dt1
	t2 *= dt1

	p.init(x1, x2, t1, t2)
}

func (p *cubicPoly) calc(t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	return p.c0 + p.c1*t + p.c2*t2 + p.c3*t3
}
