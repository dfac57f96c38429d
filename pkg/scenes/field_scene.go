package scenes

import (
	"fmt"
	"image/color"
	"log"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/tiranga/pkg/config"
	"github.com/decker502/tiranga/pkg/systems"
	"github.com/decker502/tiranga/pkg/systems/ebitenrender"
)

// FieldScene 实时曲线场场景
//
// 每个 tick 推进动画时间并重新生成所有线，绘制时先用半透明黑色覆盖上一帧
// （形成拖尾），再以加法混合叠加本帧的点精灵。
// 屏幕不会每帧清空，需要配合 ebiten.SetScreenClearedEveryFrame(false)。
type FieldScene struct {
	cfg          *config.FieldConfig
	fieldSystem  *systems.FieldSystem
	renderSystem *ebitenrender.PointRenderSystem

	elapsedMs  float64
	paused     bool
	needsClear bool
	trailColor color.RGBA

	pending atomic.Pointer[config.FieldConfig] // 待应用的新配置
}

// NewFieldScene 创建曲线场场景
func NewFieldScene(cfg *config.FieldConfig) (*FieldScene, error) {
	s := &FieldScene{}
	if err := s.apply(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// apply 按配置重建系统，失败时保持当前状态
func (s *FieldScene) apply(cfg *config.FieldConfig) error {
	generator, err := cfg.NewGenerator()
	if err != nil {
		return fmt.Errorf("failed to create field generator: %w", err)
	}

	if s.fieldSystem == nil {
		s.fieldSystem = systems.NewFieldSystem(generator, cfg.Field.Parallel)
	} else {
		s.fieldSystem.SetGenerator(generator)
		s.fieldSystem.SetParallel(cfg.Field.Parallel)
	}

	pointCount := cfg.Field.LineCount * cfg.Field.SegmentCount
	s.renderSystem = ebitenrender.NewPointRenderSystem(cfg.Render, cfg.Viewport(1), pointCount)

	s.cfg = cfg
	s.trailColor = color.RGBA{A: uint8(cfg.Render.TrailAlpha*255 + 0.5)}
	s.needsClear = true

	log.Printf("[FieldScene] %d lines x %d segments, right solid band %.2f",
		cfg.Field.LineCount, cfg.Field.SegmentCount, cfg.RightSolidWidth())
	return nil
}

// Reload 提交新配置，在下一次 Update 时应用（可在任意 goroutine 调用）
func (s *FieldScene) Reload(cfg *config.FieldConfig) {
	s.pending.Store(cfg)
}

// TogglePause 暂停 / 继续动画
func (s *FieldScene) TogglePause() {
	s.paused = !s.paused
	log.Printf("[FieldScene] Paused: %v", s.paused)
}

// IsPaused 返回是否暂停
func (s *FieldScene) IsPaused() bool {
	return s.paused
}

// Time 返回当前动画时间 t
func (s *FieldScene) Time() float64 {
	return s.cfg.AnimationTime(s.elapsedMs)
}

// Config 返回当前生效的配置
func (s *FieldScene) Config() *config.FieldConfig {
	return s.cfg
}

// Update 推进动画时间并重新生成所有线
func (s *FieldScene) Update(deltaTime float64) {
	if cfg := s.pending.Swap(nil); cfg != nil {
		if err := s.apply(cfg); err != nil {
			log.Printf("[FieldScene] Reload failed, keeping current config: %v", err)
		} else {
			log.Printf("[FieldScene] Config reloaded")
		}
	}

	if !s.paused {
		s.elapsedMs += deltaTime * 1000
	}

	if err := s.fieldSystem.Update(s.Time()); err != nil {
		log.Printf("[FieldScene] Field update failed: %v", err)
	}
}

// Draw 绘制拖尾与本帧的点
func (s *FieldScene) Draw(screen *ebiten.Image) {
	if s.needsClear {
		screen.Fill(color.Black)
		s.needsClear = false
	}

	if s.trailColor.A > 0 {
		w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
		vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), s.trailColor, false)
	}

	s.renderSystem.Draw(screen, s.fieldSystem.Lines())
}
