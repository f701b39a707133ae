package engine

import (
	"math"
	"time"

	"github.com/decker502/bearscene/internal/anim"
)

// Canvas is the drawing surface. Width and Height are backing-store pixels;
// StyleWidth and StyleHeight are the displayed size in device-independent
// units. After every applied resize Width = round(DPR * StyleWidth).
type Canvas struct {
	Width       int
	Height      int
	StyleWidth  float64
	StyleHeight float64
}

// Rect returns the full canvas rectangle in pixels.
func (c Canvas) Rect() anim.Rect {
	return anim.Rect{MaxX: float64(c.Width), MaxY: float64(c.Height)}
}

// resizeTo sets the style size and derives the pixel size from dpr.
func (c *Canvas) resizeTo(width, height, dpr float64) {
	c.StyleWidth = width
	c.StyleHeight = height
	c.Width = int(math.Round(width * dpr))
	c.Height = int(math.Round(height * dpr))
}

// Viewport reports the rendered size of the container the canvas fills.
type Viewport interface {
	Size() (width, height float64)
}

// ViewportFunc adapts a function to the Viewport interface.
type ViewportFunc func() (width, height float64)

func (f ViewportFunc) Size() (float64, float64) { return f() }

// FrameCallback receives the frame timestamp, measured from an arbitrary
// fixed origin.
type FrameCallback func(t time.Duration)

// FrameScheduler invokes a callback once, before the next displayed frame.
type FrameScheduler interface {
	RequestAnimationFrame(cb FrameCallback)
}

// Renderer is the drawing surface renderer the engine composites through.
type Renderer interface {
	anim.Renderer

	// Clear resets the transform stack and clears the canvas, matching the
	// backing store to the current canvas size.
	Clear()

	// Release frees the renderer's resources.
	Release()
}

// RendererFactory creates a renderer bound to the canvas. The renderer reads
// the canvas size on every Clear.
type RendererFactory func(canvas *Canvas) (Renderer, error)
