//go:build !mobile

// stub.go keeps the package buildable without -tags mobile.
package mobile

// Dummy is an exported no-op so the package can be referenced on desktop builds.
func Dummy() {}
