package scenes

import (
	"math"
	"testing"

	"github.com/decker502/tiranga/pkg/config"
)

func newTestFieldScene(t *testing.T) *FieldScene {
	t.Helper()
	s, err := NewFieldScene(config.DefaultFieldConfig())
	if err != nil {
		t.Fatalf("NewFieldScene() error: %v", err)
	}
	return s
}

// TestFieldSceneTime 测试动画时间推进与暂停
func TestFieldSceneTime(t *testing.T) {
	s := newTestFieldScene(t)

	s.Update(1.0)
	if got := s.Time(); math.Abs(got-0.32) > 1e-9 {
		t.Errorf("Time() after 1s = %v, want 0.32", got)
	}
	if lines := s.fieldSystem.Lines(); len(lines) != 30 {
		t.Fatalf("got %d lines, want 30", len(lines))
	}

	s.TogglePause()
	if !s.IsPaused() {
		t.Fatal("expected paused")
	}
	s.Update(1.0)
	if got := s.Time(); math.Abs(got-0.32) > 1e-9 {
		t.Errorf("Time() while paused = %v, want 0.32", got)
	}

	s.TogglePause()
	s.Update(0.5)
	if got := s.Time(); math.Abs(got-0.48) > 1e-9 {
		t.Errorf("Time() after resume = %v, want 0.48", got)
	}
}

// TestFieldSceneReload 测试配置热重载在下一次 Update 时生效
func TestFieldSceneReload(t *testing.T) {
	s := newTestFieldScene(t)
	s.Update(0.1)

	cfg := config.DefaultFieldConfig()
	cfg.Field.LineCount = 5
	cfg.Field.SegmentCount = 20
	s.Reload(cfg)

	// Update 之前仍使用旧配置
	if len(s.fieldSystem.Lines()) != 30 {
		t.Fatal("config applied before Update")
	}

	s.Update(0.1)
	lines := s.fieldSystem.Lines()
	if len(lines) != 5 || len(lines[0].Positions) != 20 {
		t.Fatalf("got %d lines x %d segments, want 5 x 20", len(lines), len(lines[0].Positions))
	}
	if s.Config() != cfg {
		t.Error("Config() did not return reloaded config")
	}
	if !s.needsClear {
		t.Error("screen should be cleared after reload")
	}

	// 动画时间不因重载而重置
	if got := s.Time(); math.Abs(got-0.064) > 1e-9 {
		t.Errorf("Time() = %v, want 0.064", got)
	}
}

// TestFieldSceneReloadInvalid 测试非法配置被拒绝并保留旧配置
func TestFieldSceneReloadInvalid(t *testing.T) {
	s := newTestFieldScene(t)
	old := s.Config()

	bad := config.DefaultFieldConfig()
	bad.Curve.Type = "bezier"
	s.Reload(bad)
	s.Update(0.1)

	if s.Config() != old {
		t.Error("invalid config replaced the current one")
	}
	if len(s.fieldSystem.Lines()) != 30 {
		t.Errorf("got %d lines, want 30", len(s.fieldSystem.Lines()))
	}
}
