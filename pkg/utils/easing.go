package utils

import "math"

// 插值与限幅工具
//
// 曲线场的颜色插值、透明度衰减都基于线性插值，
// 所有函数均为纯函数，可在任意 goroutine 中调用。

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 将 v 限制在 [lo, hi] 范围内
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 将 v 限制在 [0, 1] 范围内
// NaN 视为 0，保证颜色通道与透明度永远不会出现 NaN
func Clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return Clamp(v, 0, 1)
}

// IsFinite 判断 v 是否为有限值（非 NaN、非 ±Inf）
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// InverseLerp 反向线性插值
// 返回 v 在 [a, b] 区间内的比例
//
// 区间宽度为 0（或为负）时返回 1，即视为"已到达远端边界"，
// 避免除零产生 NaN
func InverseLerp(a, b, v float64) float64 {
	width := b - a
	if width <= 0 {
		return 1
	}
	return (v - a) / width
}

// LinearFade 距离线性衰减
// 返回 1 - min(|d| / maxDist, 1)
// maxDist <= 0 时返回 0（无衰减范围）
func LinearFade(d, maxDist float64) float64 {
	if maxDist <= 0 {
		return 0
	}
	return 1 - math.Min(math.Abs(d)/maxDist, 1)
}
