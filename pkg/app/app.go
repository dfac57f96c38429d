// Package app 提供曲线场查看器的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/tiranga/pkg/config"
	"github.com/decker502/tiranga/pkg/game"
	"github.com/decker502/tiranga/pkg/scenes"
	"github.com/decker502/tiranga/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Field 曲线场配置，为 nil 时使用内置默认值
	Field *config.FieldConfig
}

// App 是查看器的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	fieldScene               *scenes.FieldScene
	verbose                  bool
	showHUD                  bool // 显示帧率与动画时间
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化查看器
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	fieldCfg := cfg.Field
	if fieldCfg == nil {
		fieldCfg = config.DefaultFieldConfig()
	}

	fieldScene, err := scenes.NewFieldScene(fieldCfg)
	if err != nil {
		return nil, fmt.Errorf("曲线场场景创建失败: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(fieldScene)

	log.Printf("[App] Canvas %dx%d, right solid band width %.2f",
		fieldCfg.Canvas.Width, fieldCfg.Canvas.Height, fieldCfg.RightSolidWidth())

	return &App{
		sceneManager: sceneManager,
		fieldScene:   fieldScene,
		verbose:      cfg.Verbose,
	}, nil
}

// WindowSize 返回窗口尺寸（画布尺寸 × window.scale）
func (a *App) WindowSize() (int, int) {
	cfg := a.fieldScene.Config()
	w := int(float64(cfg.Canvas.Width)*cfg.Window.Scale + 0.5)
	h := int(float64(cfg.Canvas.Height)*cfg.Window.Scale + 0.5)
	return max(w, 1), max(h, 1)
}

// Reload 提交新配置（可在配置监听 goroutine 中调用）
func (a *App) Reload(cfg *config.FieldConfig) {
	a.sceneManager.Reload(cfg)
}

// Update 更新查看器逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			w, h := a.WindowSize()
			ebiten.SetWindowSize(w, h)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", w, h)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			// 退出全屏
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	// 两指触摸切换信息显示，单击 / 单指触摸暂停
	if isMultiTouchJustStarted() {
		a.showHUD = !a.showHUD
	} else if pressed, _, _ := isJustTouchedOrClicked(); pressed {
		a.fieldScene.TogglePause()
	}

	// 空格暂停
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.fieldScene.TogglePause()
	}

	// H 切换信息显示
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		a.showHUD = !a.showHUD
	}

	// Escape / Q 退出（移动端由系统管理生命周期）
	if !utils.IsMobile() && (inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ)) {
		log.Printf("[App] Quit requested")
		return ebiten.Termination
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)

	if a.showHUD {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f  TPS: %.1f  t: %.3f  paused: %v",
			ebiten.ActualFPS(), ebiten.ActualTPS(), a.fieldScene.Time(), a.fieldScene.IsPaused()))
	}
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	// 使用线性滤波绘制画面，提高缩放质量
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸（即画布尺寸）
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := a.fieldScene.Config()
	return cfg.Canvas.Width, cfg.Canvas.Height
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
