package game

import (
	"go.uber.org/zap"

	"github.com/decker502/bearscene/pkg/logging"
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager manages the application's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo changes the active scene. The previous scene is closed if it
// implements Closer.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene == scene {
		return
	}
	sm.closeCurrent()
	sm.currentScene = scene
}

// GetCurrentScene returns the active scene, or nil.
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// Resize forwards the outside size to the active scene if it is Resizable.
func (sm *SceneManager) Resize(width, height int) {
	if r, ok := sm.currentScene.(Resizable); ok {
		r.Resize(width, height)
	}
}

// Close unmounts the active scene.
func (sm *SceneManager) Close() {
	sm.closeCurrent()
	sm.currentScene = nil
}

func (sm *SceneManager) closeCurrent() {
	if c, ok := sm.currentScene.(Closer); ok {
		logging.Named("SceneManager").Debug("closing scene", zap.String("scene", sceneName(sm.currentScene)))
		c.Close()
	}
}

func sceneName(s Scene) string {
	if n, ok := s.(interface{ Name() string }); ok {
		return n.Name()
	}
	return "unnamed"
}
