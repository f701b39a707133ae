// Package render draws artboards onto an Ebitengine image.
package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/bearscene/internal/anim"
	"github.com/decker502/bearscene/pkg/engine"
)

// ellipseSegments is the number of fan segments used for ellipses.
const ellipseSegments = 32

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used as
// the source of untextured triangles.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.White)
	}
	return whitePixelImage
}

// CanvasRenderer implements engine.Renderer over an offscreen image sized to
// the canvas backing store. The host draws Image onto the screen.
type CanvasRenderer struct {
	canvas  *engine.Canvas
	target  *ebiten.Image
	current ebiten.GeoM
	stack   []ebiten.GeoM

	// reused between fills
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewCanvasRenderer returns a renderer bound to canvas. The backing image is
// allocated on the first Clear.
func NewCanvasRenderer(canvas *engine.Canvas) *CanvasRenderer {
	return &CanvasRenderer{canvas: canvas}
}

// Factory is an engine.RendererFactory producing CanvasRenderers.
func Factory(canvas *engine.Canvas) (engine.Renderer, error) {
	return NewCanvasRenderer(canvas), nil
}

// Image returns the backing image, or nil before the first Clear.
func (r *CanvasRenderer) Image() *ebiten.Image { return r.target }

// Clear resets the transform stack and clears the backing image, reallocating
// it when the canvas size changed.
func (r *CanvasRenderer) Clear() {
	r.current.Reset()
	r.stack = r.stack[:0]

	w, h := max(r.canvas.Width, 1), max(r.canvas.Height, 1)
	if r.target != nil {
		if b := r.target.Bounds(); b.Dx() == w && b.Dy() == h {
			r.target.Clear()
			return
		}
		r.target.Deallocate()
	}
	r.target = ebiten.NewImage(w, h)
}

// Save pushes the current transform.
func (r *CanvasRenderer) Save() {
	r.stack = append(r.stack, r.current)
}

// Restore pops the last saved transform. An unmatched Restore resets to identity.
func (r *CanvasRenderer) Restore() {
	if len(r.stack) == 0 {
		r.current.Reset()
		return
	}
	r.current = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

// Transform applies m in the current coordinate space.
func (r *CanvasRenderer) Transform(m ebiten.GeoM) {
	m.Concat(r.current)
	r.current = m
}

// Translate moves the origin of the current coordinate space.
func (r *CanvasRenderer) Translate(x, y float64) {
	var m ebiten.GeoM
	m.Translate(x, y)
	r.Transform(m)
}

// Current returns the current transform.
func (r *CanvasRenderer) Current() ebiten.GeoM { return r.current }

// Depth returns the number of saved transforms.
func (r *CanvasRenderer) Depth() int { return len(r.stack) }

// FillShape fills the shape geometry under the current transform.
func (r *CanvasRenderer) FillShape(s *anim.Shape, alpha float64) {
	if r.target == nil {
		return
	}
	r.vertices, r.indices = appendShape(r.vertices[:0], r.indices[:0], s, r.current, alpha)
	if len(r.indices) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	r.target.DrawTriangles(r.vertices, r.indices, ensureWhitePixel(), op)
}

// Release frees the backing image.
func (r *CanvasRenderer) Release() {
	if r.target != nil {
		r.target.Deallocate()
		r.target = nil
	}
}

// outline returns the shape polygon in shape-local space. The pivot is at the
// origin, so the box spans (-PivotX, -PivotY) to (Width-PivotX, Height-PivotY).
func outline(s *anim.Shape) [][2]float64 {
	x0, y0 := -s.PivotX, -s.PivotY
	x1, y1 := s.Width-s.PivotX, s.Height-s.PivotY

	switch s.Kind {
	case anim.ShapeTriangle:
		return [][2]float64{{(x0 + x1) / 2, y0}, {x1, y1}, {x0, y1}}
	case anim.ShapeEllipse:
		cx, cy := (x0+x1)/2, (y0+y1)/2
		rx, ry := s.Width/2, s.Height/2
		pts := make([][2]float64, ellipseSegments)
		for i := range pts {
			a := 2 * math.Pi * float64(i) / ellipseSegments
			pts[i] = [2]float64{cx + rx*math.Cos(a), cy + ry*math.Sin(a)}
		}
		return pts
	default:
		return [][2]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
	}
}

// appendShape appends the triangle fan of s transformed by m. Degenerate
// shapes produce nothing.
func appendShape(vs []ebiten.Vertex, is []uint16, s *anim.Shape, m ebiten.GeoM, alpha float64) ([]ebiten.Vertex, []uint16) {
	if s.Width <= 0 || s.Height <= 0 || alpha <= 0 {
		return vs, is
	}
	pts := outline(s)

	cr := float32(s.Color.R) / 0xff
	cg := float32(s.Color.G) / 0xff
	cb := float32(s.Color.B) / 0xff
	ca := float32(s.Color.A) / 0xff * float32(alpha)

	base := uint16(len(vs))
	for _, p := range pts {
		x, y := m.Apply(p[0], p[1])
		vs = append(vs, ebiten.Vertex{
			DstX: float32(x), DstY: float32(y),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		})
	}
	for i := 1; i+1 < len(pts); i++ {
		is = append(is, base, base+uint16(i), base+uint16(i+1))
	}
	return vs, is
}
