// cmd/terminal_preview/main.go
// 在终端中预览曲线场（无需图形环境）
//
// 用法：
//
//	go run ./cmd/terminal_preview
//	go run ./cmd/terminal_preview --config=field.toml --fade=0.2
//
// 未指定 --config 时使用内嵌的 data/config.yaml
//
// 按键：空格暂停，Esc / q / Ctrl+C 退出
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/tiranga/data"
	"github.com/decker502/tiranga/pkg/config"
	"github.com/decker502/tiranga/pkg/embedded"
	"github.com/decker502/tiranga/pkg/systems"
	"github.com/decker502/tiranga/pkg/utils"
)

var (
	configPath = flag.String("config", "", "配置文件路径（.yaml / .toml），为空时使用内嵌的 data/config.yaml")
	fade       = flag.Float64("fade", -1, "每帧拖尾衰减比例 [0, 1]，小于 0 时使用配置中的 render.trailAlpha")
	frameMs    = flag.Int("frame", 33, "帧间隔（毫秒）")
	noiseKind  = flag.String("noise", "", "覆盖噪声类型（perlin / simplex）")
	seed       = flag.Int64("seed", 0, "覆盖噪声种子")
)

// Preview 终端预览
type Preview struct {
	screen       tcell.Screen
	cfg          *config.FieldConfig
	fieldSystem  *systems.FieldSystem
	renderSystem *systems.TerminalRenderSystem
	elapsedMs    float64
	paused       bool
}

// trailFade 返回终端拖尾的每帧衰减比例
// fadeFlag 小于 0 表示未指定，沿用 render.trailAlpha；结果限制在 [0, 1]
func trailFade(fadeFlag float64, cfg *config.FieldConfig) float64 {
	if fadeFlag < 0 {
		return utils.Clamp01(cfg.Render.TrailAlpha)
	}
	return utils.Clamp01(fadeFlag)
}

// NewPreview 创建终端预览
func NewPreview(cfg *config.FieldConfig, trail float64) (*Preview, error) {
	generator, err := cfg.NewGenerator()
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.Clear()

	return &Preview{
		screen:       screen,
		cfg:          cfg,
		fieldSystem:  systems.NewFieldSystem(generator, cfg.Field.Parallel),
		renderSystem: systems.NewTerminalRenderSystem(screen, float64(cfg.Canvas.Width), float64(cfg.Canvas.Height), trail),
	}, nil
}

// handleEvent 处理输入事件，返回 false 表示退出
func (p *Preview) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				p.paused = !p.paused
			}
		}
	case *tcell.EventResize:
		p.renderSystem.Resize()
	}
	return true
}

func (p *Preview) run() {
	interval := time.Duration(max(*frameMs, 1)) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- p.screen.PollEvent()
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if ev == nil || !p.handleEvent(ev) {
				return
			}

		case now := <-ticker.C:
			if !p.paused {
				p.elapsedMs += float64(now.Sub(last).Milliseconds())
			}
			last = now

			if err := p.fieldSystem.Update(p.cfg.AnimationTime(p.elapsedMs)); err != nil {
				log.Printf("[Preview] Field update failed: %v", err)
			}
			p.renderSystem.Draw(p.fieldSystem.Lines())
		}
	}
}

func main() {
	flag.Parse()

	// 终端被 tcell 接管，日志不能写到标准输出
	log.SetOutput(io.Discard)

	embedded.Init(data.FS)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}
	if _, err := (config.Overrides{Noise: *noiseKind, Seed: *seed}).Apply(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "配置无效: %v\n", err)
		os.Exit(1)
	}

	preview, err := NewPreview(cfg, trailFade(*fade, cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer preview.screen.Fini()

	preview.run()
}
