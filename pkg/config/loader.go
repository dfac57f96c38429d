package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/tiranga/pkg/embedded"
)

// DefaultConfigPath 嵌入的默认配置文件路径
const DefaultConfigPath = "data/config.yaml"

// Format 配置文件格式
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat 无法根据扩展名识别配置格式时返回
var ErrUnknownFormat = errors.New("unknown config format")

// FormatFromPath 根据扩展名判断配置格式
// .yaml / .yml 为 YAML，.toml 为 TOML
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// ParseFieldConfig 在默认配置之上解析配置数据
// 文件中缺省的字段保持默认值
//
// 参数：
//   - data: 配置文件内容
//   - format: 配置格式
//
// 返回：
//   - *FieldConfig: 合并并限幅后的配置
//   - []string: 校验产生的警告
//   - error: 解析或校验失败
func ParseFieldConfig(data []byte, format Format) (*FieldConfig, []string, error) {
	cfg := DefaultFieldConfig()

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, nil, fmt.Errorf("failed to parse yaml config: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, nil, fmt.Errorf("failed to parse toml config: %w", err)
		}
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	warnings, err := cfg.Validate()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, warnings, nil
}

// LoadFieldConfig 从磁盘加载配置文件，警告写入日志
func LoadFieldConfig(path string) (*FieldConfig, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, warnings, err := ParseFieldConfig(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logWarnings(warnings)

	log.Printf("[Config] Loaded %s (%d lines x %d segments, curve=%s, noise=%s)",
		path, cfg.Field.LineCount, cfg.Field.SegmentCount, cfg.Curve.Type, cfg.Noise.Kind)
	return cfg, nil
}

// LoadDefaultFieldConfig 加载嵌入的默认配置
// embedded 未初始化或文件缺失时返回内置默认值
func LoadDefaultFieldConfig() (*FieldConfig, error) {
	if !embedded.Exists(DefaultConfigPath) {
		log.Printf("[Config] %s not embedded, using built-in defaults", DefaultConfigPath)
		return DefaultFieldConfig(), nil
	}

	data, err := embedded.ReadFile(DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded config: %w", err)
	}

	cfg, warnings, err := ParseFieldConfig(data, FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded %s: %w", DefaultConfigPath, err)
	}
	logWarnings(warnings)
	return cfg, nil
}

// Load 按优先级加载配置：指定路径 > 嵌入默认配置
func Load(path string) (*FieldConfig, error) {
	if path == "" {
		return LoadDefaultFieldConfig()
	}
	return LoadFieldConfig(path)
}

func logWarnings(warnings []string) {
	for _, w := range warnings {
		log.Printf("[Config] Warning: %s", w)
	}
}
