// cmd/render_frames/main.go
// 曲线场离线导出工具
//
// 用法：
//
//	go run ./cmd/render_frames --format=png --frames=120 --out=out/frames
//	go run ./cmd/render_frames --format=apng --frames=90 --scale=0.25 --out=out/field.png
//	go run ./cmd/render_frames --format=svg --frames=1 --start=5000 --out=out/svg
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/decker502/tiranga/data"
	"github.com/decker502/tiranga/pkg/config"
	"github.com/decker502/tiranga/pkg/embedded"
	"github.com/decker502/tiranga/pkg/export"
)

var (
	configPath = flag.String("config", "", "配置文件路径（.yaml / .toml），为空时使用内嵌的 data/config.yaml")
	format     = flag.String("format", "png", "导出格式：png / apng / svg")
	out        = flag.String("out", "out/frames", "输出目录（png / svg）或文件（apng）")
	frames     = flag.Int("frames", 60, "导出帧数")
	fps        = flag.Float64("fps", 30, "帧率")
	startMs    = flag.Float64("start", 0, "起始时间（毫秒）")
	warmup     = flag.Int("warmup", 30, "预热帧数（用于建立拖尾）")
	scale      = flag.Float64("scale", 0.5, "输出缩放")
	noiseKind  = flag.String("noise", "", "覆盖噪声类型（perlin / simplex）")
	seed       = flag.Int64("seed", 0, "覆盖噪声种子")
	verbose    = flag.Bool("verbose", false, "详细日志")
)

func main() {
	flag.Parse()

	if *verbose {
		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	}

	f, err := export.ParseFormat(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(2)
	}

	embedded.Init(data.FS)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
	if _, err := (config.Overrides{Noise: *noiseKind, Seed: *seed}).Apply(cfg); err != nil {
		log.Fatalf("配置无效: %v", err)
	}

	exporter, err := export.NewExporter(cfg, export.Options{
		Format:  f,
		Out:     *out,
		Frames:  *frames,
		FPS:     *fps,
		StartMs: *startMs,
		Warmup:  *warmup,
		Scale:   *scale,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	files, err := exporter.Run(ctx)
	if err != nil {
		log.Fatalf("导出失败（已写出 %d 个文件）: %v", len(files), err)
	}
	fmt.Printf("✓ 导出完成: %d 个文件 → %s\n", len(files), *out)
}
