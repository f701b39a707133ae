package scenes

import (
	"context"
	"fmt"
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/decker502/bearscene/pkg/config"
	"github.com/decker502/bearscene/pkg/engine"
	"github.com/decker502/bearscene/pkg/game"
	"github.com/decker502/bearscene/pkg/logging"
	"github.com/decker502/bearscene/pkg/render"
	"github.com/decker502/bearscene/pkg/utils"
)

const (
	barWidth  = 240
	barHeight = 6
	barMargin = 24
)

var (
	backgroundColor = color.White
	barTrackColor   = color.RGBA{R: 255, G: 255, B: 255, A: 96}
	barFillColor    = color.RGBA{R: 255, G: 255, B: 255, A: 230}
)

// LoadingSceneOptions configures a LoadingScene.
type LoadingSceneOptions struct {
	Config  *config.SceneConfig
	Fetcher game.Fetcher

	// Width and Height are the initial outside size in device-independent pixels
	Width  int
	Height int

	// PixelRatio returns the device pixel ratio; defaults to 1
	PixelRatio func() float64

	// Now is the clock frame timestamps are taken from; defaults to time.Now
	Now func() time.Time

	Rand *rand.Rand
}

// LoadingScene is the "Bear with us" screen. It owns one engine and plays the
// host for it: frame requests are served from Draw, the spawn and progress
// timers and the resize flush run from Update.
type LoadingScene struct {
	cfg        *config.SceneConfig
	engine     *engine.Engine
	renderer   *render.CanvasRenderer
	pixelRatio func() float64
	now        func() time.Time
	start      time.Time
	log        *zap.Logger

	// pending animation frame callbacks
	frameQueue []engine.FrameCallback

	spawnTimer    *utils.RandomInterval
	progressTimer *utils.RandomInterval
	progress      *Progress
	text          *LoadingText

	width, height int
	closed        bool
}

// NewLoadingScene creates the scene, initializes its engine and starts the
// frame loop and timers. An error means the assets could not be loaded.
func NewLoadingScene(ctx context.Context, opts LoadingSceneOptions) (*LoadingScene, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultSceneConfig()
	}
	s := &LoadingScene{
		cfg:        cfg,
		pixelRatio: opts.PixelRatio,
		now:        opts.Now,
		width:      opts.Width,
		height:     opts.Height,
		progress:   NewProgress(cfg.Progress),
		log:        logging.Named("LoadingScene"),
	}
	if s.pixelRatio == nil {
		s.pixelRatio = func() float64 { return 1 }
	}
	if s.now == nil {
		s.now = time.Now
	}

	var err error
	s.text, err = NewLoadingText()
	if err != nil {
		return nil, err
	}

	s.engine, err = engine.New(engine.Options{
		Config:     cfg,
		Fetcher:    opts.Fetcher,
		Viewport:   engine.ViewportFunc(s.viewportSize),
		PixelRatio: s.pixelRatio,
		Scheduler:  s,
		NewRenderer: func(c *engine.Canvas) (engine.Renderer, error) {
			s.renderer = render.NewCanvasRenderer(c)
			return s.renderer, nil
		},
		Rand:   opts.Rand,
		Logger: logging.Named("Engine"),
	})
	if err != nil {
		return nil, err
	}
	if err := s.engine.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize scene: %w", err)
	}

	s.start = s.now()
	if err := s.engine.Run(); err != nil {
		s.engine.Shutdown()
		return nil, err
	}

	s.spawnTimer = utils.NewRandomInterval(s.spawn, cfg.Spawn.MinInterval(), cfg.Spawn.MaxInterval(), opts.Rand)
	s.progressTimer = utils.NewInterval(s.tickProgress, cfg.Progress.Interval())

	s.log.Info("loading scene mounted",
		zap.Int("width", s.width),
		zap.Int("height", s.height))
	return s, nil
}

// Name identifies the scene in logs.
func (s *LoadingScene) Name() string { return "loading" }

func (s *LoadingScene) viewportSize() (float64, float64) {
	return float64(s.width), float64(s.height)
}

// RequestAnimationFrame queues cb for the next Draw.
func (s *LoadingScene) RequestAnimationFrame(cb engine.FrameCallback) {
	s.frameQueue = append(s.frameQueue, cb)
}

func (s *LoadingScene) spawn() {
	if _, err := s.engine.AddBear(); err != nil {
		s.log.Warn("spawn failed", zap.Error(err))
	}
}

func (s *LoadingScene) tickProgress() {
	s.progress.Tick()
	if s.progress.Done() {
		s.progressTimer.Clear()
	}
}

// Update advances the timers and applies a pending resize.
func (s *LoadingScene) Update(deltaTime float64) {
	if s.closed {
		return
	}
	dt := time.Duration(deltaTime * float64(time.Second))
	s.spawnTimer.Advance(dt)
	s.progressTimer.Advance(dt)
	s.progress.Update(deltaTime)
	s.engine.FlushResize()
}

// Draw runs the queued animation frames and composites the canvas, the
// progress bar and the loading text onto screen.
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	if s.closed {
		return
	}

	queued := s.frameQueue
	s.frameQueue = nil
	t := s.now().Sub(s.start)
	for _, cb := range queued {
		cb(t)
	}

	if img := s.renderer.Image(); img != nil && s.engine.State() == engine.StateRunning {
		screen.DrawImage(img, nil)
	}

	scale := s.pixelRatio()
	s.drawProgressBar(screen, scale)
	s.text.Draw(screen, s.progress.Percent(), scale)
}

func (s *LoadingScene) drawProgressBar(screen *ebiten.Image, scale float64) {
	b := screen.Bounds()
	w := float32(barWidth * scale)
	h := float32(barHeight * scale)
	x := (float32(b.Dx()) - w) / 2
	y := float32(b.Dy()) - float32(barMargin*scale) - h

	vector.DrawFilledRect(screen, x, y, w, h, barTrackColor, true)
	if filled := w * float32(s.progress.Shown()/100); filled > 0 {
		vector.DrawFilledRect(screen, x, y, filled, h, barFillColor, true)
	}
}

// Resize records the new outside size; the engine applies it on the next Update.
func (s *LoadingScene) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.engine.ObserveResize(float64(width), float64(height))
}

// Close cancels the timers and shuts the engine down.
func (s *LoadingScene) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.spawnTimer.Clear()
	s.progressTimer.Clear()
	s.frameQueue = nil
	s.engine.Shutdown()
	s.log.Info("loading scene unmounted", zap.Any("stats", s.engine.Stats()))
}

// Engine exposes the scene's engine.
func (s *LoadingScene) Engine() *engine.Engine { return s.engine }

// Progress exposes the simulated progress.
func (s *LoadingScene) Progress() *Progress { return s.progress }

var (
	_ game.Scene            = (*LoadingScene)(nil)
	_ game.Closer           = (*LoadingScene)(nil)
	_ game.Resizable        = (*LoadingScene)(nil)
	_ engine.FrameScheduler = (*LoadingScene)(nil)
)
