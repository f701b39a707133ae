package anim

import "fmt"

// Artboard is an instantiated drawable scene. It is exclusively owned by one
// actor (or the scene background) and must be released by that owner.
type Artboard struct {
	runtime  *Runtime
	handle   Handle
	def      *ArtboardDef
	pending  []Pose // written by state machines
	poses    []Pose // committed by Advance, used by Draw
	time     float64
	released bool
}

func newArtboard(rt *Runtime, def *ArtboardDef) *Artboard {
	ab := &Artboard{
		runtime: rt,
		handle:  rt.acquire("artboard"),
		def:     def,
		pending: make([]Pose, len(def.Shapes)),
		poses:   make([]Pose, len(def.Shapes)),
	}
	for i := range def.Shapes {
		ab.pending[i] = restPose(&def.Shapes[i])
	}
	copy(ab.poses, ab.pending)
	return ab
}

// Name returns the artboard name.
func (ab *Artboard) Name() string { return ab.def.Name }

// Handle returns the runtime handle of this instance.
func (ab *Artboard) Handle() Handle { return ab.handle }

// Bounds returns the artboard bounds in artwork units.
func (ab *Artboard) Bounds() Rect { return ab.def.Bounds }

// Time returns the artboard clock in seconds.
func (ab *Artboard) Time() float64 { return ab.time }

// Definition returns the shared definition this artboard was instantiated from.
func (ab *Artboard) Definition() *ArtboardDef { return ab.def }

// Pose returns the committed pose of the i-th shape.
func (ab *Artboard) Pose(i int) Pose { return ab.poses[i] }

// StateMachineByName returns the named state machine definition of this artboard.
func (ab *Artboard) StateMachineByName(name string) (*StateMachineDef, error) {
	for _, sm := range ab.def.StateMachines {
		if sm.Name == name {
			return sm, nil
		}
	}
	return nil, fmt.Errorf("state machine %q on artboard %q: %w", name, ab.def.Name, ErrNotFound)
}

// Advance moves the artboard clock by elapsed seconds and commits the poses
// applied by its state machines since the last call.
func (ab *Artboard) Advance(elapsed float64) {
	if ab.released {
		return
	}
	ab.time += elapsed
	copy(ab.poses, ab.pending)
}

// Draw fills every visible shape in document order. Each shape is bracketed by
// Save/Restore so its pose never leaks into the next one.
func (ab *Artboard) Draw(r Renderer) {
	if ab.released {
		return
	}
	for i := range ab.def.Shapes {
		p := ab.poses[i]
		if !p.Visible || p.Alpha <= 0 {
			continue
		}
		r.Save()
		r.Transform(p.Matrix())
		r.FillShape(&ab.def.Shapes[i], min(p.Alpha, 1))
		r.Restore()
	}
}

// Release frees the artboard. Further calls are no-ops.
func (ab *Artboard) Release() {
	if ab.released {
		return
	}
	ab.released = true
	ab.runtime.release(ab.handle)
}

// Released reports whether Release has been called.
func (ab *Artboard) Released() bool { return ab.released }

func (ab *Artboard) applyPose(i int, p Pose) {
	ab.pending[i] = p
}
