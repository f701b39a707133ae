//go:build mobile

// Package mobile is the ebitenmobile binding entry point.
//
// It is used to build the Android (.aar) and iOS (.xcframework) packages and is
// only compiled with -tags mobile:
//
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.bearscene -o build/android/bearscene.aar -v ./mobile
//	ebitenmobile bind -target ios -tags mobile -o build/ios/BearScene.xcframework -v ./mobile
package mobile

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/bearscene/pkg/app"
	"github.com/decker502/bearscene/pkg/embedded"
)

func init() {
	embedded.Init(assetsFS, dataFS)

	gameApp, err := app.NewApp(app.Config{Verbose: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	mobile.SetGame(gameApp)
}

// Dummy is an exported no-op so ebitenmobile recognizes the package.
func Dummy() {}
