package components

import "github.com/decker502/bearscene/internal/anim"

// ActorComponent is a walking character spawned by the scene.
// The actor exclusively owns Artboard and StateMachine and releases both when
// it is evicted.
type ActorComponent struct {
	Artboard     *anim.Artboard
	StateMachine *anim.StateMachineInstance

	// Variant is the "walkType" input selecting one of the walk cycles
	Variant *anim.NumberInput

	// XPosition is the horizontal offset in canvas pixels. It only grows.
	XPosition float64
}

// Release frees the actor's runtime handles. Calling it twice is a no-op.
func (a *ActorComponent) Release() {
	if a.StateMachine != nil {
		a.StateMachine.Release()
	}
	if a.Artboard != nil {
		a.Artboard.Release()
	}
}

// Released reports whether both handles have been freed.
func (a *ActorComponent) Released() bool {
	return (a.StateMachine == nil || a.StateMachine.Released()) &&
		(a.Artboard == nil || a.Artboard.Released())
}
