package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a screen of the application (e.g. the loading screen).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Closer is implemented by scenes holding resources that must be released
// when the scene is unmounted: replaced by another scene, or at exit.
type Closer interface {
	Close()
}

// Resizable is implemented by scenes that react to the outside size of the
// window. Sizes are in device-independent pixels.
type Resizable interface {
	Resize(width, height int)
}
