package engine

import (
	"go.uber.org/zap"

	"github.com/decker502/bearscene/internal/anim"
)

type resizeState struct {
	connected          bool
	pending            bool
	pendingW, pendingH float64
	appliedW, appliedH float64
}

func (e *Engine) connectResize(width, height float64) {
	e.resize = resizeState{
		connected: true,
		appliedW:  width,
		appliedH:  height,
	}
}

func (e *Engine) disconnectResize() {
	e.resize = resizeState{}
}

// ObserveResize records a new container size. Observations are coalesced:
// only the latest one is applied by the next FlushResize. Before Init and
// after Shutdown observations are ignored.
func (e *Engine) ObserveResize(width, height float64) {
	if !e.resize.connected {
		return
	}
	e.resize.pending = true
	e.resize.pendingW = width
	e.resize.pendingH = height
}

// FlushResize applies the pending observation if its size differs from the
// last applied one: the canvas is resized to DPR times the container size and
// the base layout is rebuilt over the new canvas. It reports whether a resize
// was applied.
func (e *Engine) FlushResize() bool {
	if !e.resize.connected || !e.resize.pending {
		return false
	}
	e.resize.pending = false

	w, h := e.resize.pendingW, e.resize.pendingH
	if w == e.resize.appliedW && h == e.resize.appliedH {
		return false
	}
	e.resize.appliedW, e.resize.appliedH = w, h

	e.canvas.resizeTo(w, h, e.pixelRatio())
	e.layout = e.layout.CopyWith(
		anim.WithFit(anim.FitContain),
		anim.WithFrame(e.canvas.Rect()),
	)
	e.layoutRebuild++

	e.log.Debug("canvas resized",
		zap.Float64("styleWidth", w),
		zap.Float64("styleHeight", h),
		zap.Int("width", e.canvas.Width),
		zap.Int("height", e.canvas.Height))
	return true
}

// LayoutRebuilds returns how many times a resize rebuilt the base layout.
func (e *Engine) LayoutRebuilds() int { return e.layoutRebuild }

// bandLayout restricts the base layout to the bottom band actors walk in.
func (e *Engine) bandLayout() anim.Layout {
	h := float64(e.canvas.Height)
	return e.layout.CopyWith(
		anim.WithMinY(h-e.cfg.Actors.BandHeight),
		anim.WithMaxY(h),
	)
}

// coverLayout fills the whole canvas with the background.
func (e *Engine) coverLayout() anim.Layout {
	return e.layout.CopyWith(
		anim.WithFit(anim.FitCover),
		anim.WithAlignment(anim.AlignBottomCenter),
	)
}
