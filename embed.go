// embed.go declares the embedded resources. It must sit next to assets/ and
// data/ because //go:embed only reaches files below the declaring package.
package main

import "embed"

//go:embed all:assets
var assetsFS embed.FS

//go:embed data/scene.yaml
var dataFS embed.FS
