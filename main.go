package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/bearscene/pkg/app"
	"github.com/decker502/bearscene/pkg/embedded"
)

func main() {
	verbose := flag.Bool("verbose", false, "enable debug logging")
	configPath := flag.String("config", "", "load the scene configuration from this file instead of the embedded one")
	width := flag.Int("width", 0, "initial window width (overrides the configuration)")
	height := flag.Int("height", 0, "initial window height (overrides the configuration)")
	flag.Parse()

	embedded.Init(assetsFS, dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Width:      *width,
		Height:     *height,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	window := gameApp.SceneConfig().Window
	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err = ebiten.RunGame(gameApp)
	gameApp.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "game loop exited: %v\n", err)
		os.Exit(1)
	}
}
