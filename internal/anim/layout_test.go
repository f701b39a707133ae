package anim

import (
	"testing"
)

func TestComputeAlignment(t *testing.T) {
	content := Rect{MaxX: 100, MaxY: 50}

	tests := []struct {
		name      string
		fit       Fit
		alignment Alignment
		frame     Rect
		// content corner (in) must land on (want)
		inX, inY     float64
		wantX, wantY float64
	}{
		{
			name: "Contain bottom-left keeps bottom-left corner",
			fit:  FitContain, alignment: AlignBottomLeft,
			frame: Rect{MaxX: 400, MaxY: 400},
			inX:   0, inY: 50, wantX: 0, wantY: 400,
		},
		{
			name: "Contain scales by the limiting axis",
			fit:  FitContain, alignment: AlignBottomLeft,
			frame: Rect{MaxX: 400, MaxY: 400},
			inX:   100, inY: 0, wantX: 400, wantY: 200,
		},
		{
			name: "Cover bottom-center fills height",
			fit:  FitCover, alignment: AlignBottomCenter,
			frame: Rect{MaxX: 200, MaxY: 200},
			inX:   50, inY: 0, wantX: 100, wantY: 0,
		},
		{
			name: "Cover bottom-center anchors bottom",
			fit:  FitCover, alignment: AlignBottomCenter,
			frame: Rect{MaxX: 200, MaxY: 200},
			inX:   50, inY: 50, wantX: 100, wantY: 200,
		},
		{
			name: "Band frame with offset",
			fit:  FitContain, alignment: AlignBottomLeft,
			frame: Rect{MinY: 700, MaxX: 1000, MaxY: 1000},
			inX:   0, inY: 0, wantX: 0, wantY: 700,
		},
		{
			name: "None centers at intrinsic size",
			fit:  FitNone, alignment: AlignCenter,
			frame: Rect{MaxX: 300, MaxY: 150},
			inX:   0, inY: 0, wantX: 100, wantY: 50,
		},
		{
			name: "Fill stretches both axes",
			fit:  FitFill, alignment: AlignTopLeft,
			frame: Rect{MaxX: 300, MaxY: 300},
			inX:   100, inY: 50, wantX: 300, wantY: 300,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ComputeAlignment(tt.fit, tt.alignment, tt.frame, content)
			x, y := m.Apply(tt.inX, tt.inY)
			if !approx(x, tt.wantX) || !approx(y, tt.wantY) {
				t.Errorf("(%g, %g) -> (%g, %g), want (%g, %g)", tt.inX, tt.inY, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestFitScale(t *testing.T) {
	content := Rect{MaxX: 100, MaxY: 50}
	frame := Rect{MaxX: 50, MaxY: 100}

	tests := []struct {
		fit    Fit
		sx, sy float64
	}{
		{FitContain, 0.5, 0.5},
		{FitCover, 2, 2},
		{FitFill, 0.5, 2},
		{FitWidth, 0.5, 0.5},
		{FitHeight, 2, 2},
		{FitNone, 1, 1},
		{FitScaleDown, 0.5, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.fit.String(), func(t *testing.T) {
			sx, sy := fitScale(tt.fit, frame, content)
			if !approx(sx, tt.sx) || !approx(sy, tt.sy) {
				t.Errorf("fitScale = (%g, %g), want (%g, %g)", sx, sy, tt.sx, tt.sy)
			}
		})
	}

	// ScaleDown never enlarges
	sx, _ := fitScale(FitScaleDown, Rect{MaxX: 1000, MaxY: 1000}, content)
	if sx != 1 {
		t.Errorf("ScaleDown enlarged content: %g", sx)
	}
}

func TestLayout_CopyWith(t *testing.T) {
	base := Layout{Fit: FitContain, Alignment: AlignBottomLeft, MaxX: 800, MaxY: 600}

	band := base.CopyWith(WithMinY(300), WithMaxY(600))
	cover := base.CopyWith(WithFit(FitCover), WithAlignment(AlignBottomCenter))

	if base.MinY != 0 || base.Fit != FitContain {
		t.Errorf("CopyWith must not modify the receiver, got %+v", base)
	}
	if band.MinY != 300 || band.Fit != FitContain || band.Alignment != AlignBottomLeft {
		t.Errorf("Unexpected band layout %+v", band)
	}
	if cover.Fit != FitCover || cover.Alignment != AlignBottomCenter || cover.Frame() != base.Frame() {
		t.Errorf("Unexpected cover layout %+v", cover)
	}

	resized := base.CopyWith(WithFrame(Rect{MaxX: 1024, MaxY: 768}))
	if resized.MaxX != 1024 || resized.MaxY != 768 || resized.MinX != 0 {
		t.Errorf("Unexpected resized layout %+v", resized)
	}
}

func TestAlign_AppliesTransform(t *testing.T) {
	r := &recordingRenderer{}
	Align(r, FitContain, AlignBottomLeft, Rect{MaxX: 200, MaxY: 200}, Rect{MaxX: 100, MaxY: 100})
	x, y := r.current.Apply(100, 100)
	if !approx(x, 200) || !approx(y, 200) {
		t.Errorf("Align produced (%g, %g), want (200, 200)", x, y)
	}
}
