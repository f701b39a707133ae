// simulate_scene runs the scene engine headless for a number of frames and
// prints the actor pool statistics. Spawns follow the configured random
// interval on the simulated clock.
//
//	go run ./cmd/simulate_scene -frames 3600 -width 1280 -height 720
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/bearscene/internal/anim"
	"github.com/decker502/bearscene/pkg/config"
	"github.com/decker502/bearscene/pkg/engine"
	"github.com/decker502/bearscene/pkg/game"
	"github.com/decker502/bearscene/pkg/logging"
	"github.com/decker502/bearscene/pkg/utils"
)

// frameTime is the simulated display refresh period.
const frameTime = time.Second / 60

type options struct {
	Frames      int
	Width       int
	Height      int
	PixelRatio  float64
	Seed        uint64
	ReportEvery int
}

func main() {
	var opts options
	flag.IntVar(&opts.Frames, "frames", 600, "number of frames to simulate")
	flag.IntVar(&opts.Width, "width", 800, "viewport width")
	flag.IntVar(&opts.Height, "height", 600, "viewport height")
	flag.Float64Var(&opts.PixelRatio, "dpr", 1, "device pixel ratio")
	flag.Uint64Var(&opts.Seed, "seed", 1, "random seed for spawn delays and walk variants")
	flag.IntVar(&opts.ReportEvery, "report", 60, "print statistics every N frames (0 disables)")
	configPath := flag.String("config", "", "scene configuration file (defaults to the built-in one)")
	root := flag.String("root", ".", "directory document paths are relative to")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	logger, err := logging.New(*verbose)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	logging.SetLogger(logger)
	defer logger.Sync()

	cfg := config.DefaultSceneConfig()
	if *configPath != "" {
		if cfg, err = config.LoadSceneConfig(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	stats, err := simulate(context.Background(), os.Stdout, game.FSFetcher(os.DirFS(*root)), cfg, opts)
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}
	fmt.Printf("\nDone: %d frames, %d spawned, %d evicted, %d live\n",
		stats.Frames, stats.Spawned, stats.Evicted, stats.Live)
}

// frameQueue is a FrameScheduler stepped by hand.
type frameQueue struct {
	pending []engine.FrameCallback
}

func (q *frameQueue) RequestAnimationFrame(cb engine.FrameCallback) {
	q.pending = append(q.pending, cb)
}

func (q *frameQueue) step(t time.Duration) {
	cbs := q.pending
	q.pending = nil
	for _, cb := range cbs {
		cb(t)
	}
}

// nullRenderer discards drawing and counts filled shapes.
type nullRenderer struct {
	depth int
	fills int
}

func (r *nullRenderer) Save()                          { r.depth++ }
func (r *nullRenderer) Restore()                       { r.depth = max(0, r.depth-1) }
func (r *nullRenderer) Transform(ebiten.GeoM)          {}
func (r *nullRenderer) Translate(float64, float64)     {}
func (r *nullRenderer) FillShape(*anim.Shape, float64) { r.fills++ }
func (r *nullRenderer) Clear()                         { r.depth = 0 }
func (r *nullRenderer) Release()                       {}

func simulate(ctx context.Context, w io.Writer, fetcher game.Fetcher, cfg *config.SceneConfig, opts options) (engine.Stats, error) {
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	queue := &frameQueue{}
	renderer := &nullRenderer{}

	e, err := engine.New(engine.Options{
		Config:  cfg,
		Fetcher: fetcher,
		Viewport: engine.ViewportFunc(func() (float64, float64) {
			return float64(opts.Width), float64(opts.Height)
		}),
		PixelRatio:  func() float64 { return opts.PixelRatio },
		Scheduler:   queue,
		NewRenderer: func(*engine.Canvas) (engine.Renderer, error) { return renderer, nil },
		Rand:        rng,
	})
	if err != nil {
		return engine.Stats{}, err
	}
	if err := e.Init(ctx); err != nil {
		return engine.Stats{}, err
	}
	defer e.Shutdown()
	if err := e.Run(); err != nil {
		return engine.Stats{}, err
	}

	spawner := utils.NewRandomInterval(func() {
		if _, err := e.AddBear(); err != nil {
			fmt.Fprintf(w, "spawn failed: %v\n", err)
		}
	}, cfg.Spawn.MinInterval(), cfg.Spawn.MaxInterval(), rng)
	defer spawner.Clear()

	c := e.Canvas()
	fmt.Fprintf(w, "Canvas %dx%d, eviction at x > %g\n", c.Width, c.Height, cfg.Actors.EvictionFactor*float64(c.Width))

	var now time.Duration
	for i := 0; i < opts.Frames; i++ {
		spawner.Advance(frameTime)
		queue.step(now)
		now += frameTime

		if err := e.Err(); err != nil {
			return e.Stats(), err
		}
		if opts.ReportEvery > 0 && (i+1)%opts.ReportEvery == 0 {
			s := e.Stats()
			fmt.Fprintf(w, "frame %5d  t=%6.2fs  live=%3d  spawned=%3d  evicted=%3d  fills=%d\n",
				s.Frames, now.Seconds(), s.Live, s.Spawned, s.Evicted, renderer.fills)
		}
	}
	return e.Stats(), nil
}
