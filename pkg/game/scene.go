package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/tiranga/pkg/config"
)

// Scene represents a viewer scene (the live curve field, a paused overlay...).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Reloadable 是一个可选接口，用于支持配置热重载
//
// Reload 可能在任意 goroutine 中调用（例如配置文件监听器），
// 实现者需要把新配置延迟到下一次 Update 再应用。
type Reloadable interface {
	Reload(cfg *config.FieldConfig)
}
