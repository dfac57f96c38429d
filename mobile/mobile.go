//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 手动构建：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.tiranga -o build/android/tiranga.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Tiranga.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/tiranga/data"
	"github.com/decker502/tiranga/pkg/app"
	"github.com/decker502/tiranga/pkg/config"
	"github.com/decker502/tiranga/pkg/embedded"
)

func init() {
	// 初始化嵌入资源
	embedded.Init(data.FS)

	cfg, err := config.LoadDefaultFieldConfig()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
	// 移动端直接按屏幕比例缩放，不需要窗口缩放
	cfg.Window.Scale = 1

	gameApp, err := app.NewApp(app.Config{
		Verbose: true,
		Field:   cfg,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	// 注册到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
