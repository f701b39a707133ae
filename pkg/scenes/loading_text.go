package scenes

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Headline is the title shown above the percentage.
const Headline = "Bear with us"

const (
	headlineSize = 36
	labelSize    = 30
	lineGap      = 8
)

var shadowColor = color.RGBA{A: 128}

// LoadingLabel formats the percentage line. Zero shows an ellipsis.
func LoadingLabel(percent float64) string {
	if percent <= 0 {
		return "Loading..."
	}
	return fmt.Sprintf("Loading %d%%", int(percent))
}

// LoadingText draws the centered headline and percentage, white with a soft
// drop shadow.
type LoadingText struct {
	source *text.GoTextFaceSource
}

// NewLoadingText loads the bundled Go Regular font.
func NewLoadingText() (*LoadingText, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source: %w", err)
	}
	return &LoadingText{source: source}, nil
}

// Draw renders both lines centered on screen. scale is the device pixel ratio.
func (lt *LoadingText) Draw(screen *ebiten.Image, percent, scale float64) {
	headline := &text.GoTextFace{Source: lt.source, Size: headlineSize * scale}
	label := &text.GoTextFace{Source: lt.source, Size: labelSize * scale}

	b := screen.Bounds()
	cx, cy := float64(b.Dx())/2, float64(b.Dy())/2
	_, headlineH := text.Measure(Headline, headline, 0)
	_, labelH := text.Measure(LoadingLabel(percent), label, 0)
	gap := lineGap * scale
	top := cy - (headlineH+gap+labelH)/2

	lt.drawLine(screen, Headline, headline, cx, top, scale)
	lt.drawLine(screen, LoadingLabel(percent), label, cx, top+headlineH+gap, scale)
}

func (lt *LoadingText) drawLine(screen *ebiten.Image, s string, face *text.GoTextFace, cx, y, scale float64) {
	shadowOp := &text.DrawOptions{}
	shadowOp.GeoM.Translate(cx+scale, y+scale)
	shadowOp.ColorScale.ScaleWithColor(shadowColor)
	shadowOp.PrimaryAlign = text.AlignCenter
	text.Draw(screen, s, face, shadowOp)

	mainOp := &text.DrawOptions{}
	mainOp.GeoM.Translate(cx, y)
	mainOp.ColorScale.ScaleWithColor(color.White)
	mainOp.PrimaryAlign = text.AlignCenter
	text.Draw(screen, s, face, mainOp)
}
