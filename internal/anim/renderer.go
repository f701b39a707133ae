package anim

import "github.com/hajimehoshi/ebiten/v2"

// Renderer is the drawing contract artboards are composited through.
//
// Implementations keep a current transform and a stack of saved transforms.
// Transform and Translate pre-multiply onto the current transform, so the most
// recently applied operation is the first one applied to shape geometry.
type Renderer interface {
	// Save pushes the current transform.
	Save()

	// Restore pops the transform pushed by the matching Save.
	Restore()

	// Transform applies m in the current coordinate space.
	Transform(m ebiten.GeoM)

	// Translate moves the origin of the current coordinate space.
	Translate(x, y float64)

	// FillShape fills the shape geometry under the current transform.
	FillShape(s *Shape, alpha float64)
}
