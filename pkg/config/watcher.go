package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// errEmptyConfig 读到空的配置文件（编辑器先截断再写入的中间状态）
var errEmptyConfig = errors.New("config file is empty")

// Watcher 监听配置文件变化并重新加载
//
// 监听的是配置文件所在目录：很多编辑器保存时会替换文件，
// 直接监听文件会在第一次保存后丢失事件。
type Watcher struct {
	path     string
	format   Format
	watcher  *fsnotify.Watcher
	onChange func(*FieldConfig)
}

// NewWatcher 创建配置监听器
//
// 参数：
//   - path: 配置文件路径
//   - onChange: 重新加载成功后回调（在 Run 所在的 goroutine 中调用）
func NewWatcher(path string, onChange func(*FieldConfig)) (*Watcher, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		format:   format,
		watcher:  fw,
		onChange: onChange,
	}, nil
}

// Run 处理文件事件，直到 ctx 取消或监听器关闭
// 重新加载失败时记录日志并保留旧配置
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.isConfigEvent(event) {
				continue
			}
			cfg, err := w.reload()
			if errors.Is(err, errEmptyConfig) {
				// 随后的写入事件会带来完整内容
				continue
			}
			if err != nil {
				log.Printf("[Config] Reload failed, keeping current config: %v", err)
				continue
			}
			if w.onChange != nil {
				w.onChange(cfg)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("[Config] Watcher error: %v", err)
		}
	}
}

// reload 读取并解析配置文件
// 文件为空（或只有空白）时返回 errEmptyConfig，不会退回默认配置
func (w *Watcher) reload() (*FieldConfig, error) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", w.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errEmptyConfig
	}

	cfg, warnings, err := ParseFieldConfig(data, w.format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", w.path, err)
	}
	logWarnings(warnings)

	log.Printf("[Config] Reloaded %s (%d lines x %d segments)", w.path, cfg.Field.LineCount, cfg.Field.SegmentCount)
	return cfg, nil
}

// Close 停止监听
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) isConfigEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create
}
