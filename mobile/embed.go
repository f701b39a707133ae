//go:build mobile

// embed.go declares the resources embedded into the mobile binding.
//
// This file is only compiled with -tags mobile. assets/ and data/scene.yaml
// must be copied next to it first:
//
//	cp -r ../assets . && mkdir -p data && cp ../data/scene.yaml data/
//	go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed all:assets
var assetsFS embed.FS

//go:embed data/scene.yaml
var dataFS embed.FS
