package scenes

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestLoadingLabel(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		want    string
	}{
		{"not started", 0, "Loading..."},
		{"single digit", 4.5, "Loading 4%"},
		{"first tick", 12.567, "Loading 12%"},
		{"slow phase", 70.483, "Loading 70%"},
		{"almost there", 99.994, "Loading 99%"},
		{"complete", 100, "Loading 100%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LoadingLabel(tt.percent); got != tt.want {
				t.Errorf("LoadingLabel(%v) = %q, want %q", tt.percent, got, tt.want)
			}
		})
	}
}

func TestLoadingText_Draw(t *testing.T) {
	lt, err := NewLoadingText()
	if err != nil {
		t.Fatalf("NewLoadingText() error = %v", err)
	}
	screen := ebiten.NewImage(320, 240)
	lt.Draw(screen, 42, 1)
	lt.Draw(screen, 0, 2)
}
