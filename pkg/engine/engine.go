// Package engine runs the loading scene: a looping background artboard with a
// pool of walking actors composited onto one canvas.
//
// The engine is driven entirely by its host. The host supplies the frame
// scheduler, the container viewport and the device pixel ratio, calls
// AddBear from its spawn timer, forwards container resizes through
// ObserveResize/FlushResize and calls Shutdown when the scene is unmounted.
// None of the methods are safe for concurrent use.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/decker502/bearscene/internal/anim"
	"github.com/decker502/bearscene/pkg/components"
	"github.com/decker502/bearscene/pkg/config"
	"github.com/decker502/bearscene/pkg/ecs"
	"github.com/decker502/bearscene/pkg/game"
	"github.com/decker502/bearscene/pkg/logging"
)

// State is the engine lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateReady
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

var (
	// ErrNotReady is returned by operations that need a successful Init.
	ErrNotReady = errors.New("engine not initialized")

	// ErrAlreadyInitialized is returned by a second Init.
	ErrAlreadyInitialized = errors.New("engine already initialized")
)

// Options configures an Engine. Viewport, Scheduler, NewRenderer and Fetcher
// are required.
type Options struct {
	Config      *config.SceneConfig // defaults to config.DefaultSceneConfig()
	Fetcher     game.Fetcher
	Viewport    Viewport
	PixelRatio  func() float64 // defaults to 1
	Scheduler   FrameScheduler
	NewRenderer RendererFactory
	Rand        *rand.Rand  // variant source; nil uses the global source
	Logger      *zap.Logger // defaults to logging.Named("Engine")
}

// Engine owns the scene state: canvas, documents, background, layout and the
// actor pool.
type Engine struct {
	cfg        *config.SceneConfig
	viewport   Viewport
	pixelRatio func() float64
	scheduler  FrameScheduler
	newRender  RendererFactory
	rng        *rand.Rand
	log        *zap.Logger

	state    State
	canvas   Canvas
	runtime  *anim.Runtime
	store    *game.AssetStore
	renderer Renderer

	walkDoc       *anim.Document
	background    *anim.Artboard
	backgroundSM  *anim.StateMachineInstance
	layout        anim.Layout
	entities      *ecs.EntityManager
	spawned       int
	evicted       int
	frames        int
	lastTime      time.Duration // valid once latched
	latched       bool
	frameErr      error
	shutdown      bool
	resize        resizeState
	layoutRebuild int
}

// New validates opts and returns an uninitialized engine.
func New(opts Options) (*Engine, error) {
	if opts.Viewport == nil {
		return nil, errors.New("engine: Viewport is required")
	}
	if opts.Scheduler == nil {
		return nil, errors.New("engine: Scheduler is required")
	}
	if opts.NewRenderer == nil {
		return nil, errors.New("engine: NewRenderer is required")
	}
	if opts.Fetcher == nil {
		return nil, errors.New("engine: Fetcher is required")
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultSceneConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	pixelRatio := opts.PixelRatio
	if pixelRatio == nil {
		pixelRatio = func() float64 { return 1 }
	}
	log := opts.Logger
	if log == nil {
		log = logging.Named("Engine")
	}

	e := &Engine{
		cfg:        cfg,
		viewport:   opts.Viewport,
		pixelRatio: pixelRatio,
		scheduler:  opts.Scheduler,
		newRender:  opts.NewRenderer,
		rng:        opts.Rand,
		log:        log,
		entities:   ecs.NewEntityManager(),
	}
	e.runtime = anim.NewRuntime()
	e.store = game.NewAssetStore(e.runtime, opts.Fetcher)
	return e, nil
}

// Init loads the assets and prepares the scene. On failure everything
// acquired so far is released and the engine is stopped.
//
// Fetch and decode failures are *game.AssetLoadError; missing artboards,
// state machines or inputs are *game.AssetContractError.
func (e *Engine) Init(ctx context.Context) error {
	if e.state != StateUninitialized {
		return ErrAlreadyInitialized
	}
	if err := e.init(ctx); err != nil {
		e.log.Error("init failed", zap.Error(err))
		e.releaseAll()
		e.state = StateStopped
		return err
	}
	e.state = StateReady
	e.log.Info("engine ready",
		zap.Int("canvasWidth", e.canvas.Width),
		zap.Int("canvasHeight", e.canvas.Height))
	return nil
}

func (e *Engine) init(ctx context.Context) error {
	var err error

	// renderer bound to the canvas
	e.renderer, err = e.newRender(&e.canvas)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	docs, err := e.store.LoadDocuments(ctx, e.cfg.Assets.WalkDocument, e.cfg.Assets.BackgroundDocument)
	if err != nil {
		return err
	}
	e.walkDoc = docs[0]
	bgDoc := docs[1]

	e.background, err = e.store.Artboard(bgDoc, e.cfg.Background.Artboard)
	if err != nil {
		return err
	}
	e.backgroundSM, err = e.store.StateMachine(bgDoc, e.background, e.cfg.Background.StateMachine)
	if err != nil {
		return err
	}

	// the first actor starts on the first walk cycle
	if _, err := e.addActor(0); err != nil {
		return err
	}

	w, h := e.viewport.Size()
	e.canvas.resizeTo(w, h, e.pixelRatio())
	e.layout = anim.Layout{
		Fit:       anim.FitContain,
		Alignment: anim.AlignBottomLeft,
		MaxX:      float64(e.canvas.Width),
		MaxY:      float64(e.canvas.Height),
	}
	e.connectResize(w, h)
	return nil
}

// Shutdown stops the frame loop, disconnects resize handling and releases
// every actor, the background, the documents and the renderer. It is
// idempotent and safe in any state.
func (e *Engine) Shutdown() {
	if e.shutdown {
		return
	}
	e.shutdown = true
	e.state = StateStopped
	e.releaseAll()
	e.log.Info("engine shut down", zap.Int("frames", e.frames))
}

func (e *Engine) releaseAll() {
	e.disconnectResize()

	for _, id := range e.entities.Entities() {
		if actor, ok := ecs.GetComponent[*components.ActorComponent](e.entities, id); ok {
			actor.Release()
		}
		e.entities.DestroyEntity(id)
	}
	e.entities.RemoveMarkedEntities()

	if e.backgroundSM != nil {
		e.backgroundSM.Release()
		e.backgroundSM = nil
	}
	if e.background != nil {
		e.background.Release()
		e.background = nil
	}
	e.store.Release()
	e.walkDoc = nil

	if e.renderer != nil {
		e.renderer.Release()
		e.renderer = nil
	}
}

// State returns the lifecycle state.
func (e *Engine) State() State { return e.state }

// Err returns the failure that stopped the frame loop, if any.
func (e *Engine) Err() error { return e.frameErr }

// Canvas returns the current canvas dimensions.
func (e *Engine) Canvas() Canvas { return e.canvas }

// Layout returns the base layout.
func (e *Engine) Layout() anim.Layout { return e.layout }

// Runtime returns the animation runtime; its LiveHandles count drops to zero
// after Shutdown.
func (e *Engine) Runtime() *anim.Runtime { return e.runtime }

// Frames returns the number of completed frames.
func (e *Engine) Frames() int { return e.frames }

// Stats summarizes the actor pool.
type Stats struct {
	Live    int
	Spawned int
	Evicted int
	Frames  int
}

// Stats returns pool counters since Init.
func (e *Engine) Stats() Stats {
	return Stats{
		Live:    e.entities.EntityCount(),
		Spawned: e.spawned,
		Evicted: e.evicted,
		Frames:  e.frames,
	}
}
