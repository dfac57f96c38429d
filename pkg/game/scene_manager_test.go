package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/tiranga/pkg/config"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
}

// Update records that Update was called and stores the deltaTime.
func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// reloadableScene 支持热重载的模拟场景
type reloadableScene struct {
	MockScene
	cfg *config.FieldConfig
}

func (r *reloadableScene) Reload(cfg *config.FieldConfig) {
	r.cfg = cfg
}

// TestSceneManagerSwitchTo verifies that SwitchTo correctly changes the active scene.
func TestSceneManagerSwitchTo(t *testing.T) {
	sm := NewSceneManager()
	if sm.GetCurrentScene() != nil {
		t.Fatal("Expected no scene initially")
	}

	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)
	if sm.GetCurrentScene() != mockScene {
		t.Error("SwitchTo did not set the current scene correctly")
	}
}

// TestSceneManagerUpdateDraw verifies that Update and Draw reach the current scene.
func TestSceneManagerUpdateDraw(t *testing.T) {
	sm := NewSceneManager()

	// 没有场景时不应 panic
	sm.Update(0.016)
	sm.Draw(nil)

	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)
	sm.Update(0.016)
	sm.Draw(nil)

	if !mockScene.updateCalled || !mockScene.drawCalled {
		t.Errorf("update=%v draw=%v, want both called", mockScene.updateCalled, mockScene.drawCalled)
	}
	if mockScene.deltaTime != 0.016 {
		t.Errorf("Expected deltaTime 0.016, got %.3f", mockScene.deltaTime)
	}
}

// TestSceneManagerReload 测试配置热重载转发
func TestSceneManagerReload(t *testing.T) {
	tests := []struct {
		name  string
		scene Scene
		want  bool
	}{
		{"无场景", nil, false},
		{"不支持重载", &MockScene{}, false},
		{"支持重载", &reloadableScene{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewSceneManager()
			if tt.scene != nil {
				sm.SwitchTo(tt.scene)
			}
			cfg := config.DefaultFieldConfig()
			if got := sm.Reload(cfg); got != tt.want {
				t.Errorf("Reload() = %v, want %v", got, tt.want)
			}
			if r, ok := tt.scene.(*reloadableScene); ok && r.cfg != cfg {
				t.Error("config not forwarded")
			}
		})
	}
}
