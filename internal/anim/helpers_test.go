package anim

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

const walkerDocument = `<document version="1">
  <artboard name="Walker" width="100" height="50">
    <shape name="body" kind="rect" x="10" y="20" w="30" h="10" px="15" py="5" color="#ff0000"/>
    <shape name="leg" kind="ellipse" x="50" y="40" w="4" h="8"/>
    <animation name="slow" fps="10" loop="true">
      <track shape="body"><t><x>0</x></t><t><x>10</x></t></track>
    </animation>
    <animation name="fast" fps="10">
      <track shape="leg"><t><y>0</y></t><t/><t><y>20</y><f>-1</f></t></track>
    </animation>
    <statemachine name="SM">
      <input name="speed" type="number" value="0"/>
      <input name="on" type="boolean" value="1"/>
      <state name="fast" animation="fast" input="speed" equals="1"/>
      <state name="idle" animation="slow"/>
    </statemachine>
  </artboard>
  <artboard name="Empty" width="10" height="10"/>
</document>`

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func loadWalker(t *testing.T) (*Runtime, *Document) {
	t.Helper()
	rt := NewRuntime()
	doc, err := rt.Load([]byte(walkerDocument))
	if err != nil {
		t.Fatalf("Failed to load walker document: %v", err)
	}
	return rt, doc
}

func newWalker(t *testing.T) (*Runtime, *Artboard, *StateMachineInstance) {
	t.Helper()
	rt, doc := loadWalker(t)
	ab, err := doc.ArtboardByName("Walker")
	if err != nil {
		t.Fatalf("ArtboardByName failed: %v", err)
	}
	def, err := ab.StateMachineByName("SM")
	if err != nil {
		t.Fatalf("StateMachineByName failed: %v", err)
	}
	sm, err := rt.NewStateMachineInstance(def, ab)
	if err != nil {
		t.Fatalf("NewStateMachineInstance failed: %v", err)
	}
	return rt, ab, sm
}

// recordingRenderer records draw calls and tracks the transform stack.
type recordingRenderer struct {
	current ebiten.GeoM
	stack   []ebiten.GeoM
	fills   []recordedFill
	depth   int
}

type recordedFill struct {
	shape  string
	alpha  float64
	matrix ebiten.GeoM
}

func (r *recordingRenderer) Save() {
	r.stack = append(r.stack, r.current)
	r.depth++
}

func (r *recordingRenderer) Restore() {
	r.current = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.depth--
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

func (r *recordingRenderer) FillShape(s *Shape, alpha float64) {
	r.fills = append(r.fills, recordedFill{shape: s.Name, alpha: alpha, matrix: r.current})
}
