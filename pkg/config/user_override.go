package config

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/tiranga/pkg/utils"
)

// 用户覆盖配置在 gdata 中的存储位置
const (
	overrideObject   = "config"
	overrideProperty = "field"
)

// ApplyUserOverride 从 gdata 读取用户覆盖配置（YAML）并合并到 cfg
//
// 覆盖配置只读，本程序不会写回任何数据。
// gdataManager 为 nil 时为降级模式，直接返回。
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil
//   - cfg: 待覆盖的配置，失败时保持不变
//
// 返回：
//   - bool: 是否应用了覆盖
//   - error: 覆盖存在但无法读取或解析
func ApplyUserOverride(gdataManager *gdata.Manager, cfg *FieldConfig) (bool, error) {
	if gdataManager == nil || cfg == nil {
		return false, nil
	}

	if !gdataManager.ObjectPropExists(overrideObject, overrideProperty) {
		return false, nil
	}

	data, err := gdataManager.LoadObjectProp(overrideObject, overrideProperty)
	if err != nil {
		return false, fmt.Errorf("failed to load user override: %w", err)
	}

	merged := *cfg
	if err := yaml.Unmarshal(data, &merged); err != nil {
		return false, fmt.Errorf("failed to unmarshal user override: %w", err)
	}

	warnings, err := merged.Validate()
	if err != nil {
		return false, fmt.Errorf("invalid user override: %w", err)
	}
	logWarnings(warnings)

	*cfg = merged
	log.Printf("[Config] User override applied")
	return true, nil
}

// OpenUserStore 打开用户数据存储
// 失败时返回 nil 并记录警告（降级模式）
func OpenUserStore(appName string) *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[Config] Warning: storage dir not ready: %v", err)
	}

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Config] Warning: user store unavailable: %v", err)
		return nil
	}
	return m
}
