// Package app wraps the loading screen into an ebiten.Game.
//
// The wrapper keeps startup out of the main package so the desktop entry point
// (main.go) and the mobile binding (mobile/mobile.go) share it.
package app

import (
	"context"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/decker502/bearscene/pkg/config"
	"github.com/decker502/bearscene/pkg/embedded"
	"github.com/decker502/bearscene/pkg/game"
	"github.com/decker502/bearscene/pkg/logging"
	"github.com/decker502/bearscene/pkg/scenes"
	"github.com/decker502/bearscene/pkg/utils"
)

// Config is the startup configuration.
type Config struct {
	// Verbose enables debug logging
	Verbose bool

	// ConfigPath loads the scene configuration from disk instead of the
	// embedded data/scene.yaml
	ConfigPath string

	// Width and Height override the configured window size when non-zero
	Width  int
	Height int

	// Fetcher overrides where animation documents are read from; defaults to
	// the embedded assets
	Fetcher game.Fetcher

	// PixelRatio overrides the device scale factor of the current monitor
	PixelRatio func() float64
}

// App is the application wrapper. It implements ebiten.Game.
type App struct {
	sceneManager *game.SceneManager
	config       *config.SceneConfig
	pixelRatio   func() float64
	log          *zap.Logger

	outsideWidth  int
	outsideHeight int

	pendingWindowSizeReset   bool
	windowSizeResetCountdown int
}

// NewApp loads the configuration and mounts the loading scene.
//
// embedded.Init must be called first unless both ConfigPath and Fetcher are set.
func NewApp(cfg Config) (*App, error) {
	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	logging.SetLogger(logger)
	log := logging.Named("App")

	sceneCfg, err := loadSceneConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	if cfg.Width > 0 {
		sceneCfg.Window.Width = cfg.Width
	}
	if cfg.Height > 0 {
		sceneCfg.Window.Height = cfg.Height
	}

	fetcher := cfg.Fetcher
	if fetcher == nil {
		fetcher = game.EmbeddedFetcher()
	}
	pixelRatio := cfg.PixelRatio
	if pixelRatio == nil {
		pixelRatio = deviceScaleFactor
	}

	sceneManager := game.NewSceneManager()
	loading, err := scenes.NewLoadingScene(context.Background(), scenes.LoadingSceneOptions{
		Config:     sceneCfg,
		Fetcher:    fetcher,
		Width:      sceneCfg.Window.Width,
		Height:     sceneCfg.Window.Height,
		PixelRatio: pixelRatio,
	})
	if err != nil {
		return nil, err
	}
	sceneManager.SwitchTo(loading)

	log.Info("app started",
		zap.String("config", configSource(cfg.ConfigPath)),
		zap.Int("width", sceneCfg.Window.Width),
		zap.Int("height", sceneCfg.Window.Height))

	return &App{
		sceneManager:  sceneManager,
		config:        sceneCfg,
		pixelRatio:    pixelRatio,
		log:           log,
		outsideWidth:  sceneCfg.Window.Width,
		outsideHeight: sceneCfg.Window.Height,
	}, nil
}

func loadSceneConfig(path string) (*config.SceneConfig, error) {
	if path != "" {
		return config.LoadSceneConfig(path)
	}
	data, err := embedded.ReadFile(config.SceneConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded scene config: %w", err)
	}
	return config.ParseSceneConfig(data)
}

func configSource(path string) string {
	if path == "" {
		return "embedded:" + config.SceneConfigPath
	}
	return path
}

func deviceScaleFactor() float64 {
	return ebiten.Monitor().DeviceScaleFactor()
}

// Update advances the active scene by one tick.
func (a *App) Update() error {
	if !utils.IsMobile() {
		a.updateWindow()
	}
	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

// updateWindow handles the desktop fullscreen toggle (F11).
func (a *App) updateWindow() {
	// the window manager needs a few frames after leaving fullscreen
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.config.Window.Width, a.config.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			a.log.Debug("exit fullscreen")
		} else {
			ebiten.SetFullscreen(true)
		}
	}
}

// Draw draws the active scene.
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen letterboxes the offscreen image in black with linear filtering.
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout reports the outside size to the scene and renders at device
// resolution, matching the engine's canvas.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.outsideWidth || outsideHeight != a.outsideHeight {
		a.outsideWidth, a.outsideHeight = outsideWidth, outsideHeight
		a.sceneManager.Resize(outsideWidth, outsideHeight)
	}
	dpr := a.pixelRatio()
	return max(1, int(math.Round(float64(outsideWidth)*dpr))),
		max(1, int(math.Round(float64(outsideHeight)*dpr)))
}

// Close unmounts the scene and flushes the logger.
func (a *App) Close() {
	a.sceneManager.Close()
	_ = logging.Logger().Sync()
}

// GetSceneManager returns the scene manager.
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// SceneConfig returns the configuration the app was started with.
func (a *App) SceneConfig() *config.SceneConfig {
	return a.config
}
