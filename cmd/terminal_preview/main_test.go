package main

import (
	"testing"

	"github.com/decker502/tiranga/pkg/config"
)

// TestTrailFade 测试拖尾衰减默认取自 render.trailAlpha，命令行参数仅做覆盖
func TestTrailFade(t *testing.T) {
	tests := []struct {
		name       string
		fadeFlag   float64
		trailAlpha float64
		want       float64
	}{
		{"未指定时使用配置", -1, 0.05, 0.05},
		{"配置值变化时跟随", -1, 0.2, 0.2},
		{"参数覆盖配置", 0.3, 0.05, 0.3},
		{"参数为 0 表示不衰减", 0, 0.05, 0},
		{"参数超出范围被限幅", 1.5, 0.05, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultFieldConfig()
			cfg.Render.TrailAlpha = tt.trailAlpha
			if got := trailFade(tt.fadeFlag, cfg); got != tt.want {
				t.Errorf("trailFade(%v) = %v, want %v", tt.fadeFlag, got, tt.want)
			}
		})
	}
}
