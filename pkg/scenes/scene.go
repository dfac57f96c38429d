package scenes

import (
	"github.com/decker502/tiranga/pkg/game"
)

// Scene is game.Scene re-exported for the scene implementations in this package.
type Scene = game.Scene

var (
	_ Scene           = (*FieldScene)(nil)
	_ game.Reloadable = (*FieldScene)(nil)
)
