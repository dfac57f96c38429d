package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/decker502/tiranga/data"
	"github.com/decker502/tiranga/pkg/embedded"
)

const yamlConfig = `
field:
  lineCount: 12
  segmentCount: 64
curve:
  type: chordal
colors:
  color3: "#00FF00"
zones:
  leftSolid: 0.2
`

const tomlConfig = `
[field]
lineCount = 12
segmentCount = 64

[curve]
type = "chordal"

[colors]
color3 = "#00FF00"

[zones]
leftSolid = 0.2
`

// TestFormatFromPath 测试扩展名识别
func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"field.yaml", FormatYAML, false},
		{"conf/field.YML", FormatYAML, false},
		{"field.toml", FormatTOML, false},
		{"field.json", "", true},
		{"field", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("error %v is not ErrUnknownFormat", err)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

// TestParseFieldConfigMergesDefaults 测试 YAML 与 TOML 解析结果一致且保留默认值
func TestParseFieldConfigMergesDefaults(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"YAML", yamlConfig, FormatYAML},
		{"TOML", tomlConfig, FormatTOML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, warnings, err := ParseFieldConfig([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("ParseFieldConfig() error: %v", err)
			}
			if len(warnings) != 0 {
				t.Errorf("unexpected warnings: %v", warnings)
			}

			if cfg.Field.LineCount != 12 || cfg.Field.SegmentCount != 64 {
				t.Errorf("lines = %d x %d, want 12 x 64", cfg.Field.LineCount, cfg.Field.SegmentCount)
			}
			if cfg.Curve.Type != "chordal" {
				t.Errorf("curve = %q, want chordal", cfg.Curve.Type)
			}
			if cfg.Colors.Color3 != "#00FF00" {
				t.Errorf("color3 = %q", cfg.Colors.Color3)
			}

			// 未出现的字段保持默认值
			def := DefaultFieldConfig()
			if cfg.Colors.Color1 != def.Colors.Color1 {
				t.Errorf("color1 = %q, want default", cfg.Colors.Color1)
			}
			if cfg.Zones.LeftSolid != 0.2 || cfg.Zones.LeftBlend != def.Zones.LeftBlend {
				t.Errorf("zones = %+v", cfg.Zones)
			}
			if cfg.Motion != def.Motion {
				t.Errorf("motion = %+v, want defaults", cfg.Motion)
			}
			if cfg.Canvas != def.Canvas {
				t.Errorf("canvas = %+v, want defaults", cfg.Canvas)
			}
		})
	}
}

// TestParseFieldConfigErrors 测试解析与校验错误
func TestParseFieldConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"YAML 语法错误", "field: [", FormatYAML},
		{"TOML 语法错误", "[field", FormatTOML},
		{"未知格式", "", Format("ini")},
		{"lineCount 为 0", "field:\n  lineCount: 0\n", FormatYAML},
		{"未知曲线类型", "[curve]\ntype = \"bezier\"\n", FormatTOML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ParseFieldConfig([]byte(tt.data), tt.format); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// TestLoadFieldConfig 测试从磁盘加载
func TestLoadFieldConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "field.toml")
	if err := os.WriteFile(path, []byte(tomlConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFieldConfig(path)
	if err != nil {
		t.Fatalf("LoadFieldConfig() error: %v", err)
	}
	if cfg.Field.LineCount != 12 {
		t.Errorf("LineCount = %d, want 12", cfg.Field.LineCount)
	}

	if _, err := LoadFieldConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

// TestLoadDefaultFieldConfig 测试加载嵌入的默认配置
func TestLoadDefaultFieldConfig(t *testing.T) {
	t.Cleanup(func() { embedded.Init(nil) })

	// 未初始化时退回内置默认值
	embedded.Init(nil)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Field.LineCount != DefaultFieldConfig().Field.LineCount {
		t.Errorf("LineCount = %d, want default", cfg.Field.LineCount)
	}

	embedded.Init(fstest.MapFS{
		"config.yaml": &fstest.MapFile{Data: []byte("field:\n  lineCount: 7\n")},
	})
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Field.LineCount != 7 {
		t.Errorf("LineCount = %d, want 7", cfg.Field.LineCount)
	}
}

// TestEmbeddedConfigMatchesDefaults 测试仓库内嵌的 data/config.yaml 能被加载且与内置默认值一致
func TestEmbeddedConfigMatchesDefaults(t *testing.T) {
	t.Cleanup(func() { embedded.Init(nil) })
	embedded.Init(data.FS)

	if !embedded.Exists(DefaultConfigPath) {
		t.Fatalf("%s not found in data.FS", DefaultConfigPath)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if *cfg != *DefaultFieldConfig() {
		t.Errorf("embedded config = %+v\nwant %+v", *cfg, *DefaultFieldConfig())
	}
}
