package components

import (
	"testing"

	"github.com/decker502/bearscene/internal/anim"
)

const testDocument = `<document version="1">
  <artboard name="Walker" width="100" height="50">
    <shape name="body" kind="rect" w="30" h="10"/>
    <animation name="walk" fps="10" loop="true">
      <track shape="body"><t><x>0</x></t><t><x>10</x></t></track>
    </animation>
    <statemachine name="SM">
      <input name="walkType" type="number" value="0"/>
      <state name="walk" animation="walk"/>
    </statemachine>
  </artboard>
</document>`

func newTestActor(t *testing.T) (*ActorComponent, *anim.Runtime) {
	t.Helper()
	rt := anim.NewRuntime()
	doc, err := rt.Load([]byte(testDocument))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	t.Cleanup(doc.Release)

	ab, err := doc.ArtboardByName("Walker")
	if err != nil {
		t.Fatalf("ArtboardByName() error = %v", err)
	}
	def, err := ab.StateMachineByName("SM")
	if err != nil {
		t.Fatalf("StateMachineByName() error = %v", err)
	}
	sm, err := rt.NewStateMachineInstance(def, ab)
	if err != nil {
		t.Fatalf("NewStateMachineInstance() error = %v", err)
	}
	variant, _ := sm.Input(0).AsNumber()
	return &ActorComponent{Artboard: ab, StateMachine: sm, Variant: variant, XPosition: -550}, rt
}

func TestActorComponent_Release(t *testing.T) {
	actor, rt := newTestActor(t)

	if actor.Released() {
		t.Fatal("New actor reported as released")
	}
	before := rt.LiveHandles()

	actor.Release()
	if !actor.Released() {
		t.Error("Actor not released after Release()")
	}
	if got := rt.LiveHandles(); got != before-2 {
		t.Errorf("LiveHandles = %d, want %d", got, before-2)
	}

	// second release must not touch the handle table again
	actor.Release()
	if got := rt.LiveHandles(); got != before-2 {
		t.Errorf("LiveHandles after double release = %d, want %d", got, before-2)
	}
}

func TestActorComponent_ReleasePartial(t *testing.T) {
	actor, _ := newTestActor(t)
	sm := actor.StateMachine
	actor.StateMachine = nil
	defer sm.Release()

	actor.Release()
	if !actor.Released() {
		t.Error("Actor with only an artboard not released")
	}
}
