// Package embedded gives other packages access to the files compiled into the
// binary.
//
// //go:embed can only reach files below the declaring package, so the
// embed.FS variables live next to assets/ and data/ in the main package
// (embed.go) and are handed to this package with Init before anything is
// loaded.
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// ErrNotInitialized is returned by every accessor before Init.
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

var (
	assetsFS    fs.FS
	dataFS      fs.FS
	initialized bool
)

// Init registers the embedded file systems. assets serves paths under
// "assets/", data serves paths under "data/".
func Init(assets, data fs.FS) {
	assetsFS = assets
	dataFS = data
	initialized = true
}

// IsInitialized reports whether Init has been called.
func IsInitialized() bool {
	return initialized
}

// resolve picks the file system for path by its prefix and returns the
// normalized path.
func resolve(path string) (fs.FS, string, error) {
	if !initialized {
		return nil, "", ErrNotInitialized
	}

	// embed.FS always uses forward slashes
	path = strings.TrimPrefix(filepath.ToSlash(path), "./")

	switch {
	case strings.HasPrefix(path, "assets/"):
		return assetsFS, path, nil
	case strings.HasPrefix(path, "data/"):
		return dataFS, path, nil
	}
	return nil, "", fmt.Errorf("unknown resource path prefix: %s (must start with 'assets/' or 'data/')", path)
}

// Open opens an embedded file. The path must start with "assets/" or "data/".
func Open(path string) (fs.File, error) {
	fsys, name, err := resolve(path)
	if err != nil {
		return nil, err
	}
	return fsys.Open(name)
}

// ReadFile reads an embedded file. The path must start with "assets/" or "data/".
func ReadFile(path string) ([]byte, error) {
	fsys, name, err := resolve(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(fsys, name)
}

// Exists reports whether path names an embedded file.
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob lists embedded files matching pattern.
func Glob(pattern string) ([]string, error) {
	fsys, name, err := resolve(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(fsys, name)
}
