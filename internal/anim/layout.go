package anim

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Rect is an axis-aligned rectangle given by its min and max corners.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Fit controls how content is scaled into a frame.
type Fit int

const (
	// FitContain preserves aspect ratio and keeps the content entirely inside the frame.
	FitContain Fit = iota
	// FitCover preserves aspect ratio and fills the frame, cropping content.
	FitCover
	// FitFill stretches content to the frame on both axes.
	FitFill
	// FitWidth scales content to the frame width.
	FitWidth
	// FitHeight scales content to the frame height.
	FitHeight
	// FitNone draws content at its intrinsic size.
	FitNone
	// FitScaleDown behaves like FitContain but never enlarges content.
	FitScaleDown
)

func (f Fit) String() string {
	switch f {
	case FitContain:
		return "contain"
	case FitCover:
		return "cover"
	case FitFill:
		return "fill"
	case FitWidth:
		return "fitWidth"
	case FitHeight:
		return "fitHeight"
	case FitNone:
		return "none"
	case FitScaleDown:
		return "scaleDown"
	}
	return "unknown"
}

// Alignment anchors content inside a frame. X and Y range over [-1, 1]:
// -1 is left/top, 0 is center, 1 is right/bottom.
type Alignment struct {
	X, Y float64
}

var (
	AlignTopLeft      = Alignment{-1, -1}
	AlignTopCenter    = Alignment{0, -1}
	AlignTopRight     = Alignment{1, -1}
	AlignCenterLeft   = Alignment{-1, 0}
	AlignCenter       = Alignment{0, 0}
	AlignCenterRight  = Alignment{1, 0}
	AlignBottomLeft   = Alignment{-1, 1}
	AlignBottomCenter = Alignment{0, 1}
	AlignBottomRight  = Alignment{1, 1}
)

// Layout maps an artboard's intrinsic bounds onto a target rectangle of the
// drawing surface. Layout is a value: derive variants with CopyWith.
type Layout struct {
	Fit       Fit
	Alignment Alignment
	MinX      float64
	MinY      float64
	MaxX      float64
	MaxY      float64
}

// Frame returns the target rectangle.
func (l Layout) Frame() Rect {
	return Rect{MinX: l.MinX, MinY: l.MinY, MaxX: l.MaxX, MaxY: l.MaxY}
}

// LayoutOption overrides a single field when deriving a layout.
type LayoutOption func(*Layout)

func WithFit(f Fit) LayoutOption             { return func(l *Layout) { l.Fit = f } }
func WithAlignment(a Alignment) LayoutOption { return func(l *Layout) { l.Alignment = a } }
func WithMinX(v float64) LayoutOption        { return func(l *Layout) { l.MinX = v } }
func WithMinY(v float64) LayoutOption        { return func(l *Layout) { l.MinY = v } }
func WithMaxX(v float64) LayoutOption        { return func(l *Layout) { l.MaxX = v } }
func WithMaxY(v float64) LayoutOption        { return func(l *Layout) { l.MaxY = v } }

// WithFrame replaces the whole target rectangle.
func WithFrame(r Rect) LayoutOption {
	return func(l *Layout) {
		l.MinX, l.MinY, l.MaxX, l.MaxY = r.MinX, r.MinY, r.MaxX, r.MaxY
	}
}

// CopyWith returns a copy of l with the given overrides applied. l is not modified.
func (l Layout) CopyWith(opts ...LayoutOption) Layout {
	out := l
	for _, opt := range opts {
		opt(&out)
	}
	return out
}

// fitScale returns the scale factors for fitting content into frame.
func fitScale(fit Fit, frame, content Rect) (sx, sy float64) {
	cw, ch := content.Width(), content.Height()
	if cw == 0 || ch == 0 {
		return 1, 1
	}
	rx := frame.Width() / cw
	ry := frame.Height() / ch

	switch fit {
	case FitFill:
		return rx, ry
	case FitContain:
		s := math.Min(rx, ry)
		return s, s
	case FitCover:
		s := math.Max(rx, ry)
		return s, s
	case FitWidth:
		return rx, rx
	case FitHeight:
		return ry, ry
	case FitScaleDown:
		s := math.Min(math.Min(rx, ry), 1)
		return s, s
	}
	return 1, 1
}

// ComputeAlignment returns the transform placing content inside frame:
// the content anchor point is moved to the origin, scaled by the fit, then
// moved to the matching anchor point of the frame.
func ComputeAlignment(fit Fit, alignment Alignment, frame, content Rect) ebiten.GeoM {
	cw, ch := content.Width(), content.Height()
	fw, fh := frame.Width(), frame.Height()

	sx, sy := fitScale(fit, frame, content)

	var m ebiten.GeoM
	m.Translate(
		-content.MinX-cw/2-alignment.X*cw/2,
		-content.MinY-ch/2-alignment.Y*ch/2,
	)
	m.Scale(sx, sy)
	m.Translate(
		frame.MinX+fw/2+alignment.X*fw/2,
		frame.MinY+fh/2+alignment.Y*fh/2,
	)
	return m
}

// Align applies the alignment transform of content into frame to r.
func Align(r Renderer, fit Fit, alignment Alignment, frame, content Rect) {
	r.Transform(ComputeAlignment(fit, alignment, frame, content))
}
