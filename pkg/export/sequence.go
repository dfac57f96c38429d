package export

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"github.com/setanarut/apng"

	"github.com/decker502/tiranga/pkg/config"
	"github.com/decker502/tiranga/pkg/systems"
)

// apngFrameDelay APNG 每帧显示时间（1/100 秒）
const apngFrameDelay = 3

// Format 导出格式
type Format string

const (
	FormatPNG  Format = "png"  // 每帧一张 PNG
	FormatAPNG Format = "apng" // 单个 APNG 动画
	FormatSVG  Format = "svg"  // 每帧一个 SVG
)

// ParseFormat 解析导出格式
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatPNG, FormatAPNG, FormatSVG:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want png, apng or svg)", s)
	}
}

// Options 导出参数
type Options struct {
	Format  Format
	Out     string  // PNG / SVG 为输出目录，APNG 为输出文件
	Frames  int     // 导出帧数
	FPS     float64 // 帧率，决定帧间的动画时间间隔
	StartMs float64 // 起始时间（毫秒）
	Warmup  int     // 正式导出前预先渲染的帧数（建立拖尾）
	Scale   float64 // 输出缩放
}

// Exporter 离线导出器
type Exporter struct {
	cfg         *config.FieldConfig
	fieldSystem *systems.FieldSystem
	renderer    *RasterRenderer
	opts        Options
}

// NewExporter 创建导出器
func NewExporter(cfg *config.FieldConfig, opts Options) (*Exporter, error) {
	if opts.Frames < 1 {
		return nil, fmt.Errorf("frames must be >= 1, got %d", opts.Frames)
	}
	if opts.FPS <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %v", opts.FPS)
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Out == "" {
		return nil, fmt.Errorf("output path is empty")
	}

	generator, err := cfg.NewGenerator()
	if err != nil {
		return nil, err
	}

	return &Exporter{
		cfg:         cfg,
		fieldSystem: systems.NewFieldSystem(generator, true),
		renderer:    NewRasterRenderer(cfg, opts.Scale),
		opts:        opts,
	}, nil
}

// frameTime 返回第 k 帧（可为负，用于预热）的动画时间
func (e *Exporter) frameTime(k int) float64 {
	ms := e.opts.StartMs + float64(k)*1000/e.opts.FPS
	return e.cfg.AnimationTime(ms)
}

// step 生成并绘制第 k 帧
func (e *Exporter) step(k int) error {
	if err := e.fieldSystem.Update(e.frameTime(k)); err != nil {
		return err
	}
	if e.opts.Format != FormatSVG {
		e.renderer.DrawFrame(e.fieldSystem.Lines())
	}
	return nil
}

// Run 执行导出，返回写出的文件列表
func (e *Exporter) Run(ctx context.Context) ([]string, error) {
	for k := -e.opts.Warmup; k < 0; k++ {
		if err := e.step(k); err != nil {
			return nil, err
		}
	}

	if e.opts.Format != FormatAPNG {
		if err := os.MkdirAll(e.opts.Out, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var (
		written []string
		frames  []image.Image
	)
	for k := 0; k < e.opts.Frames; k++ {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if err := e.step(k); err != nil {
			return written, err
		}

		switch e.opts.Format {
		case FormatPNG:
			path := filepath.Join(e.opts.Out, fmt.Sprintf("frame_%04d.png", k))
			if err := gg.SavePNG(path, e.renderer.Image()); err != nil {
				return written, fmt.Errorf("failed to save %s: %w", path, err)
			}
			written = append(written, path)

		case FormatSVG:
			path := filepath.Join(e.opts.Out, fmt.Sprintf("frame_%04d.svg", k))
			if err := e.writeSVG(path); err != nil {
				return written, err
			}
			written = append(written, path)

		case FormatAPNG:
			frames = append(frames, e.renderer.Snapshot())
		}
	}

	if e.opts.Format == FormatAPNG {
		if dir := filepath.Dir(e.opts.Out); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		apng.Save(e.opts.Out, frames, apngFrameDelay)
		if _, err := os.Stat(e.opts.Out); err != nil {
			return nil, fmt.Errorf("apng not written: %w", err)
		}
		written = append(written, e.opts.Out)
	}

	log.Printf("[Export] Wrote %d file(s) (%s, %d frames)", len(written), e.opts.Format, e.opts.Frames)
	return written, nil
}

func (e *Exporter) writeSVG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteSVG(f, e.cfg, e.fieldSystem.Lines(), e.opts.Scale); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
