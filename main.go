// Tiranga 曲线场查看器
//
// 用法：
//
//	go run . --verbose
//	go run . --config=field.toml --watch
//	go run . --noise=simplex --seed=7
//
// 按键：F11 全屏，空格或单击暂停，H 显示帧率，Esc / Q 退出
package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/tiranga/data"
	"github.com/decker502/tiranga/pkg/app"
	"github.com/decker502/tiranga/pkg/config"
	"github.com/decker502/tiranga/pkg/embedded"
)

const appName = "tiranga"

var (
	configPath   = flag.String("config", "", "配置文件路径（.yaml / .yml / .toml），为空时使用内置配置")
	verbose      = flag.Bool("verbose", false, "详细日志")
	watch        = flag.Bool("watch", false, "监听配置文件变化并热重载（需要 --config）")
	noiseKind    = flag.String("noise", "", "覆盖噪声类型（perlin / simplex）")
	seed         = flag.Int64("seed", 0, "覆盖噪声种子（0 表示使用配置中的值）")
	ignoreUser   = flag.Bool("no-user-config", false, "忽略用户数据目录中的覆盖配置")
	parallelFlag = flag.Bool("parallel", false, "按线并行生成")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(data.FS)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	var userStore *gdata.Manager
	if !*ignoreUser {
		userStore = config.OpenUserStore(appName)
	}

	// 覆盖顺序：配置文件 < 用户覆盖 < 命令行参数
	overrides := config.Overrides{Noise: *noiseKind, Seed: *seed, Parallel: *parallelFlag}
	prepare := func(cfg *config.FieldConfig) error {
		if _, err := config.ApplyUserOverride(userStore, cfg); err != nil {
			log.Printf("[Main] Warning: %v", err)
		}
		_, err := overrides.Apply(cfg)
		return err
	}
	if err := prepare(cfg); err != nil {
		log.Fatalf("配置无效: %v", err)
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose: *verbose,
		Field:   cfg,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	if *watch {
		if *configPath == "" {
			log.Printf("[Main] --watch ignored: no --config given")
		} else {
			w, err := config.NewWatcher(*configPath, func(next *config.FieldConfig) {
				if err := prepare(next); err != nil {
					log.Printf("[Main] Reloaded config rejected: %v", err)
					return
				}
				gameApp.Reload(next)
			})
			if err != nil {
				log.Fatalf("配置监听失败: %v", err)
			}
			defer w.Close()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go w.Run(ctx)
			log.Printf("[Main] Watching %s", *configPath)
		}
	}

	// 设置窗口
	ebiten.SetWindowSize(gameApp.WindowSize())
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	// 拖尾效果依赖上一帧的内容
	ebiten.SetScreenClearedEveryFrame(false)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
