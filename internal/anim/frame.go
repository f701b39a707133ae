package anim

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Pose is a fully resolved keyframe: every field has a concrete value.
type Pose struct {
	Visible bool
	X, Y    float64
	ScaleX  float64
	ScaleY  float64
	SkewX   float64 // degrees
	SkewY   float64 // degrees
	Alpha   float64
}

// restPose returns the pose of a shape that no animation touches.
func restPose(s *Shape) Pose {
	return Pose{
		Visible: true,
		X:       s.X,
		Y:       s.Y,
		ScaleX:  1,
		ScaleY:  1,
		Alpha:   1,
	}
}

// mergeFrames resolves a track's keyframes using cumulative inheritance:
// a nil field keeps the value of the previous frame, the first frame inherits
// from the rest pose.
func mergeFrames(rest Pose, frames []Frame) []Pose {
	merged := make([]Pose, len(frames))
	cur := rest
	for i, f := range frames {
		if f.FrameNum != nil {
			cur.Visible = *f.FrameNum != -1
		}
		if f.X != nil {
			cur.X = *f.X
		}
		if f.Y != nil {
			cur.Y = *f.Y
		}
		if f.ScaleX != nil {
			cur.ScaleX = *f.ScaleX
		}
		if f.ScaleY != nil {
			cur.ScaleY = *f.ScaleY
		}
		if f.SkewX != nil {
			cur.SkewX = *f.SkewX
		}
		if f.SkewY != nil {
			cur.SkewY = *f.SkewY
		}
		if f.Alpha != nil {
			cur.Alpha = *f.Alpha
		}
		merged[i] = cur
	}
	return merged
}

// lerpPose interpolates between two poses. Visibility is not interpolated,
// the first pose wins.
func lerpPose(a, b Pose, t float64) Pose {
	lerp := func(x, y float64) float64 { return x + (y-x)*t }
	return Pose{
		Visible: a.Visible,
		X:       lerp(a.X, b.X),
		Y:       lerp(a.Y, b.Y),
		ScaleX:  lerp(a.ScaleX, b.ScaleX),
		ScaleY:  lerp(a.ScaleY, b.ScaleY),
		SkewX:   lerp(a.SkewX, b.SkewX),
		SkewY:   lerp(a.SkewY, b.SkewY),
		Alpha:   lerp(a.Alpha, b.Alpha),
	}
}

// Matrix returns the pose transform mapping shape-local space (pivot at the
// origin) into artboard space.
//
//	a = cos(kx) * sx    c = -sin(ky) * sy    tx = x
//	b = sin(kx) * sx    d =  cos(ky) * sy    ty = y
func (p Pose) Matrix() ebiten.GeoM {
	kx := p.SkewX * math.Pi / 180
	ky := p.SkewY * math.Pi / 180

	var m ebiten.GeoM
	m.SetElement(0, 0, math.Cos(kx)*p.ScaleX)
	m.SetElement(1, 0, math.Sin(kx)*p.ScaleX)
	m.SetElement(0, 1, -math.Sin(ky)*p.ScaleY)
	m.SetElement(1, 1, math.Cos(ky)*p.ScaleY)
	m.SetElement(0, 2, p.X)
	m.SetElement(1, 2, p.Y)
	return m
}
