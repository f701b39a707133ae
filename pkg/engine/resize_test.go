package engine

import (
	"context"
	"testing"

	"github.com/decker502/bearscene/internal/anim"
)

func TestResize_AppliesOncePerDistinctSize(t *testing.T) {
	hs := newHarness(t, withViewport(200, 100, 2))
	e := hs.engine

	// ignored before Init
	e.ObserveResize(999, 999)
	if e.FlushResize() {
		t.Fatal("Resize before Init must be ignored")
	}

	if err := e.Init(context.Background()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	// same size as at init: no rebuild
	e.ObserveResize(200, 100)
	if e.FlushResize() {
		t.Error("Unchanged size must not rebuild the layout")
	}
	if e.LayoutRebuilds() != 0 {
		t.Errorf("Expected 0 rebuilds, got %d", e.LayoutRebuilds())
	}

	// a burst of observations coalesces to the last one
	e.ObserveResize(300, 150)
	e.ObserveResize(320, 160)
	if !e.FlushResize() {
		t.Fatal("Expected the resize to apply")
	}
	if e.FlushResize() {
		t.Error("Nothing pending, FlushResize should be a no-op")
	}
	if e.LayoutRebuilds() != 1 {
		t.Errorf("Expected 1 rebuild, got %d", e.LayoutRebuilds())
	}

	c := e.Canvas()
	if c.Width != 640 || c.Height != 320 || c.StyleWidth != 320 || c.StyleHeight != 160 {
		t.Errorf("Expected 640x320 canvas styled 320x160, got %+v", c)
	}
	l := e.Layout()
	if l.Fit != anim.FitContain || l.Frame() != (anim.Rect{MaxX: 640, MaxY: 320}) {
		t.Errorf("Layout not rebuilt over the new canvas: %v %+v", l.Fit, l.Frame())
	}
	if l.Alignment != anim.AlignBottomLeft {
		t.Errorf("Rebuild should keep the alignment, got %v", l.Alignment)
	}

	// observing the applied size again is a no-op
	e.ObserveResize(320, 160)
	if e.FlushResize() || e.LayoutRebuilds() != 1 {
		t.Error("Re-observing the applied size must not rebuild")
	}

	// going back to the initial size is a distinct change
	e.ObserveResize(200, 100)
	if !e.FlushResize() || e.LayoutRebuilds() != 2 {
		t.Error("Expected a second rebuild")
	}
}

func TestResize_PixelRatioChange(t *testing.T) {
	hs := newHarness(t, withViewport(100, 100, 1))
	e := hs.engine
	if err := e.Init(context.Background()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	// DPR is read when the resize is applied
	hs.dpr = 1.5
	e.ObserveResize(101, 101)
	e.FlushResize()
	c := e.Canvas()
	if c.Width != 152 || c.Height != 152 {
		t.Errorf("Expected round(1.5*101) = 152, got %dx%d", c.Width, c.Height)
	}
}

func TestResize_MovesEvictionThreshold(t *testing.T) {
	hs := newRunningHarness(t)
	e := hs.engine
	id := e.Actors()[0]

	ts := hs.frames(0, 150) // x = 200
	e.ObserveResize(90, 100)
	e.FlushResize() // threshold drops to 180

	hs.frames(ts, 1)
	if _, ok := e.Actor(id); ok {
		t.Error("Actor should be evicted against the resized canvas")
	}
}
