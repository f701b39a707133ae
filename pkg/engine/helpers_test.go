package engine

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/decker502/bearscene/internal/anim"
	"github.com/decker502/bearscene/pkg/config"
	"github.com/decker502/bearscene/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// walkDocument has one walk cycle per walkType value plus a boolean input
// used by contract tests.
func walkDocument(variants int) string {
	var b strings.Builder
	b.WriteString(`<document version="1">
  <artboard name="Different Walks Main" width="100" height="50">
    <shape name="body" kind="ellipse" x="50" y="25" w="40" h="20" px="20" py="10" color="#7a4a2a"/>
    <shape name="head" kind="ellipse" x="80" y="15" w="16" h="16" px="8" py="8" color="#7a4a2a"/>
`)
	for i := 0; i < variants; i++ {
		fmt.Fprintf(&b, `    <animation name="walk_%d" fps="12" loop="true">
      <track shape="body"><t><y>25</y></t><t><y>%d</y></t></track>
    </animation>
`, i, 23-i)
	}
	b.WriteString(`    <statemachine name="State Machine 1">
      <input name="walkType" type="number" value="3"/>
      <input name="paused" type="boolean" value="0"/>
`)
	for i := 0; i < variants; i++ {
		fmt.Fprintf(&b, `      <state name="walk %d" animation="walk_%d" input="walkType" equals="%d"/>
`, i, i, i)
	}
	b.WriteString(`    </statemachine>
  </artboard>
</document>`)
	return b.String()
}

const backgroundDocument = `<document version="1">
  <artboard name="New Artboard" width="400" height="200">
    <shape name="sky" kind="rect" w="400" h="200" color="#9fd3f0"/>
    <shape name="ground" kind="rect" y="160" w="400" h="40" color="#3d7a32"/>
    <animation name="idle" fps="24" loop="true">
      <track shape="sky"><t><a>1</a></t><t><a>0.9</a></t></track>
    </animation>
    <statemachine name="State Machine 1">
      <state name="idle" animation="idle"/>
    </statemachine>
  </artboard>
</document>`

func testAssets() fstest.MapFS {
	return fstest.MapFS{
		"assets/scene/walk_cycles.anim": {Data: []byte(walkDocument(6))},
		"assets/scene/forest.anim":      {Data: []byte(backgroundDocument)},
	}
}

// fakeScheduler queues frame callbacks until the test steps them.
type fakeScheduler struct {
	queue []FrameCallback
}

func (s *fakeScheduler) RequestAnimationFrame(cb FrameCallback) {
	s.queue = append(s.queue, cb)
}

// step runs the callbacks queued so far with timestamp t.
func (s *fakeScheduler) step(t time.Duration) {
	queued := s.queue
	s.queue = nil
	for _, cb := range queued {
		cb(t)
	}
}

type fill struct {
	shape string
	at    ebiten.GeoM
}

// recordingRenderer keeps a canvas-style transform stack and records fills.
type recordingRenderer struct {
	canvas   *Canvas
	current  ebiten.GeoM
	stack    []ebiten.GeoM
	maxDepth int
	clears   int
	fills    []fill
	released bool
	panicOn  string
}

func (r *recordingRenderer) Save() {
	r.stack = append(r.stack, r.current)
	r.maxDepth = max(r.maxDepth, len(r.stack))
}

func (r *recordingRenderer) Restore() {
	r.current = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *recordingRenderer) Transform(m ebiten.GeoM) {
	m.Concat(r.current)
	r.current = m
}

func (r *recordingRenderer) Translate(x, y float64) {
	var m ebiten.GeoM
	m.Translate(x, y)
	r.Transform(m)
}

func (r *recordingRenderer) FillShape(s *anim.Shape, alpha float64) {
	if s.Name == r.panicOn {
		panic("fill failed: " + s.Name)
	}
	r.fills = append(r.fills, fill{shape: s.Name, at: r.current})
}

func (r *recordingRenderer) Clear() {
	r.clears++
	r.current = ebiten.GeoM{}
	r.stack = r.stack[:0]
	r.fills = r.fills[:0]
}

func (r *recordingRenderer) Release() { r.released = true }

type harness struct {
	engine    *Engine
	scheduler *fakeScheduler
	renderer  *recordingRenderer
	width     float64
	height    float64
	dpr       float64
}

type harnessOption func(*harness, *Options)

func withAssets(fsys fstest.MapFS) harnessOption {
	return func(_ *harness, o *Options) { o.Fetcher = game.FSFetcher(fsys) }
}

func withConfig(mutate func(*config.SceneConfig)) harnessOption {
	return func(_ *harness, o *Options) {
		cfg := config.DefaultSceneConfig()
		mutate(cfg)
		o.Config = cfg
	}
}

func withViewport(w, h, dpr float64) harnessOption {
	return func(hs *harness, _ *Options) {
		hs.width, hs.height, hs.dpr = w, h, dpr
	}
}

// newHarness builds an uninitialized engine over a 200x100 container at DPR 1.
func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()
	hs := &harness{
		scheduler: &fakeScheduler{},
		width:     200,
		height:    100,
		dpr:       1,
	}
	o := Options{
		Fetcher:  game.FSFetcher(testAssets()),
		Viewport: ViewportFunc(func() (float64, float64) { return hs.width, hs.height }),
		PixelRatio: func() float64 {
			return hs.dpr
		},
		Scheduler: hs.scheduler,
		NewRenderer: func(c *Canvas) (Renderer, error) {
			hs.renderer = &recordingRenderer{canvas: c}
			return hs.renderer, nil
		},
		Rand: rand.New(rand.NewPCG(42, 1024)),
	}
	for _, opt := range opts {
		opt(hs, &o)
	}

	e, err := New(o)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	hs.engine = e
	return hs
}

// newRunningHarness initializes the engine and starts the loop.
func newRunningHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()
	hs := newHarness(t, opts...)
	if err := hs.engine.Init(t.Context()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := hs.engine.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return hs
}

// frames steps n frames, 16ms apart, starting at start.
func (hs *harness) frames(start time.Duration, n int) time.Duration {
	t := start
	for i := 0; i < n; i++ {
		hs.scheduler.step(t)
		t += 16 * time.Millisecond
	}
	return t
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
