package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/decker502/bearscene/pkg/config"
	"github.com/decker502/bearscene/pkg/game"
)

func TestSimulate_BundledAssets(t *testing.T) {
	var out bytes.Buffer
	stats, err := simulate(t.Context(), &out, game.FSFetcher(os.DirFS("../..")), config.DefaultSceneConfig(), options{
		Frames:      600,
		Width:       200,
		Height:      100,
		PixelRatio:  1,
		Seed:        7,
		ReportEvery: 0,
	})
	if err != nil {
		t.Fatalf("simulate() error = %v", err)
	}

	if stats.Frames != 600 {
		t.Errorf("Frames = %d, want 600", stats.Frames)
	}
	// 10 simulated seconds with a spawn at most every 3.5s
	if stats.Spawned < 1+2 {
		t.Errorf("Spawned = %d, want at least 3", stats.Spawned)
	}
	// an actor crosses x > 400 after 190 frames
	if stats.Evicted < 1 {
		t.Errorf("Evicted = %d, want at least 1", stats.Evicted)
	}
	if stats.Live != stats.Spawned-stats.Evicted {
		t.Errorf("Live = %d, want spawned-evicted = %d", stats.Live, stats.Spawned-stats.Evicted)
	}
}
